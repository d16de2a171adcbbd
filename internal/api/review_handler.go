package api

import (
	"log/slog"
	"net/http"

	"github.com/monkesay/monke-api/internal/api/shared"
	"github.com/monkesay/monke-api/internal/platform/logger"
	"github.com/monkesay/monke-api/internal/service/review"
)

// ReviewHandler handles spaced repetition review HTTP requests.
type ReviewHandler struct {
	reviewService review.ReviewService
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService review.ReviewService, logger *slog.Logger) *ReviewHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReviewHandler")
	}

	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "review_handler")),
	}
}

// ListDue handles GET /api/reviews/due requests.
func (h *ReviewHandler) ListDue(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	due, err := h.reviewService.ListDue(r.Context(), userID, queryInt(r, "limit"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list due words")
		return
	}

	log.Debug("listed due words",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(due)))
	shared.RespondWithJSON(w, r, http.StatusOK, due)
}

// GetSummary handles GET /api/reviews/summary requests.
func (h *ReviewHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	summary, err := h.reviewService.GetSummary(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to summarize review queue")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

// SubmitReview handles POST /api/reviews/{id}/submit requests, where {id}
// is the word progress row being reviewed.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, progressID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation error", err)
		return
	}

	updated, err := h.reviewService.SubmitReview(r.Context(), userID, progressID, review.ReviewSubmission{
		Quality: *req.Quality,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit review")
		return
	}

	log.Debug("review submitted",
		slog.String("user_id", userID.String()),
		slog.String("progress_id", progressID.String()),
		slog.Int("quality", *req.Quality))
	shared.RespondWithJSON(w, r, http.StatusOK, updated)
}
