package review

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monkesay/monke-api/internal/domain"
	"github.com/monkesay/monke-api/internal/domain/srs"
	"github.com/monkesay/monke-api/internal/store"
)

// fakeProgressStore covers the review paths: a locked read followed by an
// update, routed through WithTx. Everything else panics via the embedded
// nil interface.
type fakeProgressStore struct {
	store.WordProgressStore

	row *domain.UserWordProgress

	lockedReads int
	updated     *domain.UserWordProgress
	inTx        bool
}

func (f *fakeProgressStore) GetByIDForUpdate(
	ctx context.Context,
	id, userID uuid.UUID,
) (*domain.UserWordProgress, error) {
	f.lockedReads++
	if f.row == nil || f.row.ID != id || f.row.UserID != userID {
		return nil, store.ErrWordProgressNotFound
	}
	copied := *f.row
	return &copied, nil
}

func (f *fakeProgressStore) Update(ctx context.Context, progress *domain.UserWordProgress) error {
	f.updated = progress
	return nil
}

func (f *fakeProgressStore) WithTx(tx *sql.Tx) store.WordProgressStore {
	f.inTx = true
	return f
}

type fakeStoryStore struct {
	store.StoryStore
}

func newTestReviewService(t *testing.T, progressStore *fakeProgressStore) (ReviewService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	svc := NewReviewService(db, progressStore, &fakeStoryStore{}, srs.NewDefaultService(), slog.Default())
	return svc, mock
}

func dueProgress(userID uuid.UUID) *domain.UserWordProgress {
	past := time.Now().UTC().Add(-24 * time.Hour)
	return &domain.UserWordProgress{
		ID:            uuid.New(),
		UserID:        userID,
		WordID:        uuid.New(),
		Status:        domain.WordStatusLearning,
		Familiarity:   0.5,
		TimesReviewed: 4,
		TimesCorrect:  2,
		NextReviewAt:  &past,
		IntervalDays:  6,
		EaseFactor:    2.5,
		Source:        domain.WordSourceStory,
		CreatedAt:     past,
	}
}

func TestSubmitReviewPersistsRescheduledRow(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	row := dueProgress(userID)
	progressStore := &fakeProgressStore{row: row}
	svc, mock := newTestReviewService(t, progressStore)

	mock.ExpectBegin()
	mock.ExpectCommit()

	before := time.Now().UTC()
	updated, err := svc.SubmitReview(context.Background(), userID, row.ID, ReviewSubmission{Quality: 5})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.True(t, progressStore.inTx, "store must be switched onto the transaction")
	assert.Equal(t, 1, progressStore.lockedReads, "progress must be loaded with a row lock")
	require.NotNil(t, progressStore.updated)
	assert.Same(t, progressStore.updated, updated, "persisted row and returned row must match")

	// The scheduling update: interval, ease, counters, next review time.
	assert.Equal(t, row.TimesReviewed+1, updated.TimesReviewed)
	assert.Equal(t, row.TimesCorrect+1, updated.TimesCorrect)
	assert.Greater(t, updated.IntervalDays, row.IntervalDays)
	assert.Greater(t, updated.EaseFactor, row.EaseFactor)
	require.NotNil(t, updated.NextReviewAt)
	assert.True(t, updated.NextReviewAt.After(before))

	// The input row is untouched; only the persisted copy changed.
	assert.Equal(t, 4, row.TimesReviewed)
	assert.Equal(t, float64(6), row.IntervalDays)
}

func TestSubmitReviewRollsBackWhenRowMissing(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	progressStore := &fakeProgressStore{}
	svc, mock := newTestReviewService(t, progressStore)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.SubmitReview(context.Background(), userID, uuid.New(), ReviewSubmission{Quality: 3})
	assert.ErrorIs(t, err, ErrProgressNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Nil(t, progressStore.updated)
}

func TestSubmitReviewHidesOtherUsersRows(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	row := dueProgress(owner)
	progressStore := &fakeProgressStore{row: row}
	svc, mock := newTestReviewService(t, progressStore)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.SubmitReview(context.Background(), uuid.New(), row.ID, ReviewSubmission{Quality: 3})
	assert.ErrorIs(t, err, ErrProgressNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitReviewRejectsQualityOutOfRange(t *testing.T) {
	t.Parallel()

	progressStore := &fakeProgressStore{}
	svc, mock := newTestReviewService(t, progressStore)

	for _, quality := range []int{-1, 6} {
		_, err := svc.SubmitReview(context.Background(), uuid.New(), uuid.New(), ReviewSubmission{Quality: quality})
		assert.ErrorIs(t, err, ErrInvalidQuality, "quality %d", quality)
	}

	// No transaction is ever opened for an invalid grade.
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, 0, progressStore.lockedReads)
}
