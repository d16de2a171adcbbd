package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/monkesay/monke-api/internal/api/shared"
	"github.com/monkesay/monke-api/internal/domain"
	"github.com/monkesay/monke-api/internal/platform/logger"
	"github.com/monkesay/monke-api/internal/service/progress"
	"github.com/monkesay/monke-api/internal/store"
)

// UserHandler handles profile, progress, and learning session requests.
type UserHandler struct {
	userStore       store.UserStore
	progressService progress.ProgressService
	logger          *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(
	userStore store.UserStore,
	progressService progress.ProgressService,
	logger *slog.Logger,
) *UserHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}

	return &UserHandler{
		userStore:       userStore,
		progressService: progressService,
		logger:          logger.With(slog.String("component", "user_handler")),
	}
}

// GetProfile handles GET /api/user/profile requests.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load profile")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UserResponse{
		ID:          user.ID.String(),
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt.Format(time.RFC3339),
	})
}

// GetStats handles GET /api/user/stats requests. It returns the compact
// dashboard figures.
func (h *UserHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	stats, err := h.progressService.GetStats(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute stats")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// GetProgress handles GET /api/user/progress requests. It returns the
// detailed progress report.
func (h *UserHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	report, err := h.progressService.GetReport(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute progress report")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, report)
}

// StartSession handles POST /api/sessions requests.
func (h *UserHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req StartSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	session, err := h.progressService.StartSession(
		r.Context(),
		userID,
		domain.SessionType(req.Type),
		req.StoryID,
	)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to start session")
		return
	}

	log.Debug("session started",
		slog.String("user_id", userID.String()),
		slog.String("session_id", session.ID.String()),
		slog.String("type", string(session.Type)))
	shared.RespondWithJSON(w, r, http.StatusCreated, session)
}

// EndSession handles POST /api/sessions/{id}/end requests.
func (h *UserHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, sessionID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req EndSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	session, err := h.progressService.EndSession(r.Context(), userID, sessionID, progress.SessionUpdate{
		WordsReviewed: req.WordsReviewed,
		WordsCorrect:  req.WordsCorrect,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to end session")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, session)
}
