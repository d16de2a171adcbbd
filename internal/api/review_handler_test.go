package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monkesay/monke-api/internal/api/shared"
	"github.com/monkesay/monke-api/internal/domain"
	"github.com/monkesay/monke-api/internal/service/review"
)

// stubReviewService implements review.ReviewService with canned results.
type stubReviewService struct {
	due       []*review.DueWord
	summary   *review.Summary
	submitted *domain.UserWordProgress
	err       error
}

func (s *stubReviewService) ListDue(ctx context.Context, userID uuid.UUID, limit int) ([]*review.DueWord, error) {
	return s.due, s.err
}

func (s *stubReviewService) SubmitReview(
	ctx context.Context,
	userID uuid.UUID,
	progressID uuid.UUID,
	submission review.ReviewSubmission,
) (*domain.UserWordProgress, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.submitted, nil
}

func (s *stubReviewService) GetSummary(ctx context.Context, userID uuid.UUID) (*review.Summary, error) {
	return s.summary, s.err
}

// withUserID puts the user ID into the request context the way the auth
// middleware would.
func withUserID(req *http.Request, userID uuid.UUID) *http.Request {
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

func newReviewRouter(svc review.ReviewService) http.Handler {
	handler := NewReviewHandler(svc, slog.Default())
	r := chi.NewRouter()
	r.Get("/api/reviews/due", handler.ListDue)
	r.Get("/api/reviews/summary", handler.GetSummary)
	r.Post("/api/reviews/{id}/submit", handler.SubmitReview)
	return r
}

func TestListDue(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	word := &domain.Word{ID: uuid.New(), Hindi: "पानी", Romanized: "paani", English: "water"}
	svc := &stubReviewService{
		due: []*review.DueWord{
			{Progress: &domain.UserWordProgress{ID: uuid.New(), UserID: userID, WordID: word.ID}, Word: word},
		},
	}

	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/reviews/due", nil), userID)
	recorder := httptest.NewRecorder()
	newReviewRouter(svc).ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var due []*review.DueWord
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&due))
	require.Len(t, due, 1)
	assert.Equal(t, "paani", due[0].Word.Romanized)
}

func TestListDueRequiresAuth(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/reviews/due", nil)
	recorder := httptest.NewRecorder()
	newReviewRouter(&stubReviewService{}).ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestGetReviewSummary(t *testing.T) {
	t.Parallel()

	next := time.Now().UTC().Add(4 * time.Hour)
	svc := &stubReviewService{
		summary: &review.Summary{WordsDue: 7, WordsReviewedToday: 3, NextReviewAt: &next},
	}

	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/reviews/summary", nil), uuid.New())
	recorder := httptest.NewRecorder()
	newReviewRouter(svc).ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var summary review.Summary
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&summary))
	assert.Equal(t, 7, summary.WordsDue)
	assert.Equal(t, 3, summary.WordsReviewedToday)
}

func TestSubmitReview(t *testing.T) {
	t.Parallel()

	progressID := uuid.New()

	tests := []struct {
		name       string
		payload    string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "valid submission",
			payload:    `{"quality": 4}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "quality zero is valid",
			payload:    `{"quality": 0}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing quality",
			payload:    `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "quality out of range",
			payload:    `{"quality": 6}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "progress not found",
			payload:    `{"quality": 4}`,
			serviceErr: review.ErrProgressNotFound,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubReviewService{
				submitted: &domain.UserWordProgress{ID: progressID},
				err:       tt.serviceErr,
			}

			req := httptest.NewRequest(
				http.MethodPost,
				"/api/reviews/"+progressID.String()+"/submit",
				bytes.NewBufferString(tt.payload),
			)
			req.Header.Set("Content-Type", "application/json")
			recorder := httptest.NewRecorder()
			newReviewRouter(svc).ServeHTTP(recorder, withUserID(req, uuid.New()))

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

func TestSubmitReviewRejectsMalformedID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(
		http.MethodPost,
		"/api/reviews/not-a-uuid/submit",
		bytes.NewBufferString(`{"quality": 4}`),
	)
	recorder := httptest.NewRecorder()
	newReviewRouter(&stubReviewService{}).ServeHTTP(recorder, withUserID(req, uuid.New()))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
