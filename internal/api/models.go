package api

import (
	"github.com/google/uuid"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required,min=1,max=100"`
	Password    string `json:"password"     validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// SubmitReviewRequest defines the payload for grading one word review.
// Quality is a pointer so that a missing field is distinguishable from a
// legitimate rating of zero.
type SubmitReviewRequest struct {
	Quality *int `json:"quality" validate:"required,gte=0,lte=5"`
}

// GenerateStoryRequest defines the payload for requesting a new story.
// All fields are optional; an empty body generates a story at the user's
// current level about a default topic.
type GenerateStoryRequest struct {
	Topic          string      `json:"topic,omitempty"            validate:"omitempty,max=200"`
	IncludeWordIDs []uuid.UUID `json:"include_word_ids,omitempty" validate:"omitempty,max=5"`
	FocusGrammarID *uuid.UUID  `json:"focus_grammar_id,omitempty"`
	Level          string      `json:"level,omitempty"            validate:"omitempty,oneof=A1 A2 B1 B2"`
}

// CompleteStoryRequest defines the payload for marking a story finished.
type CompleteStoryRequest struct {
	Rating *int `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
}

// SubmitAnswerRequest defines the payload for answering an exercise.
type SubmitAnswerRequest struct {
	Answer string `json:"answer" validate:"required,min=1"`
}

// CreateWordRequest defines the payload for adding a vocabulary word.
type CreateWordRequest struct {
	Hindi        string   `json:"hindi"              validate:"required,min=1"`
	Romanized    string   `json:"romanized"          validate:"required,min=1"`
	English      string   `json:"english"            validate:"required,min=1"`
	PartOfSpeech string   `json:"part_of_speech"     validate:"required"`
	CEFRLevel    string   `json:"cefr_level"         validate:"required,oneof=A1 A2 B1 B2"`
	Tags         []string `json:"tags,omitempty"`
	Notes        string   `json:"notes,omitempty"`
}

// CreateConceptRequest defines the payload for adding a grammar concept.
type CreateConceptRequest struct {
	Name            string      `json:"name"                       validate:"required,min=1"`
	Slug            string      `json:"slug"                       validate:"required,min=1"`
	Description     string      `json:"description"                validate:"required,min=1"`
	CEFRLevel       string      `json:"cefr_level"                 validate:"required,oneof=A1 A2 B1 B2"`
	SortOrder       int         `json:"sort_order"                 validate:"gte=0"`
	PrerequisiteIDs []uuid.UUID `json:"prerequisite_ids,omitempty"`
}

// StartSessionRequest defines the payload for opening a learning session.
type StartSessionRequest struct {
	Type    string     `json:"type"               validate:"required,oneof=STORY REVIEW PLACEMENT FREE_PRACTICE"`
	StoryID *uuid.UUID `json:"story_id,omitempty"`
}

// EndSessionRequest defines the payload for closing a learning session.
type EndSessionRequest struct {
	WordsReviewed int `json:"words_reviewed" validate:"gte=0"`
	WordsCorrect  int `json:"words_correct"  validate:"gte=0"`
}

// UserResponse defines the profile payload for the authenticated user.
type UserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   string `json:"created_at"`
}
