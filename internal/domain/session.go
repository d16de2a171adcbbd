package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// SessionType categorizes what the user did during a learning session.
type SessionType string

// Supported session types.
const (
	SessionTypeStory        SessionType = "STORY"
	SessionTypeReview       SessionType = "REVIEW"
	SessionTypePlacement    SessionType = "PLACEMENT"
	SessionTypeFreePractice SessionType = "FREE_PRACTICE"
)

// Session-specific validation errors.
var (
	ErrSessionIDEmpty     = errors.New("session ID cannot be empty")
	ErrSessionUserIDEmpty = errors.New("session user ID cannot be empty")
	ErrSessionNotEnded    = errors.New("session has not ended")
)

// LearningSession is one bounded period of study. Ended sessions feed the
// streak calculation; an open session (EndedAt nil) does not count.
type LearningSession struct {
	ID            uuid.UUID   `json:"id"`
	UserID        uuid.UUID   `json:"user_id"`
	Type          SessionType `json:"type"`
	StoryID       *uuid.UUID  `json:"story_id,omitempty"`
	WordsReviewed int         `json:"words_reviewed"`
	WordsCorrect  int         `json:"words_correct"`
	StartedAt     time.Time   `json:"started_at"`
	EndedAt       *time.Time  `json:"ended_at,omitempty"`
}

// NewLearningSession starts a session for the user now.
func NewLearningSession(userID uuid.UUID, sessionType SessionType) (*LearningSession, error) {
	session := &LearningSession{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      sessionType,
		StartedAt: time.Now().UTC(),
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate checks if the LearningSession has valid data.
func (s *LearningSession) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSessionIDEmpty
	}
	if s.UserID == uuid.Nil {
		return ErrSessionUserIDEmpty
	}
	if !s.Type.Valid() {
		return ErrInvalidSessionType
	}
	return nil
}

// Ended reports whether the session has been closed.
func (s *LearningSession) Ended() bool {
	return s.EndedAt != nil
}

// Valid reports whether the session type is one of the known values.
func (t SessionType) Valid() bool {
	switch t {
	case SessionTypeStory, SessionTypeReview, SessionTypePlacement, SessionTypeFreePractice:
		return true
	default:
		return false
	}
}
