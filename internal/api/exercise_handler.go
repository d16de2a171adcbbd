package api

import (
	"log/slog"
	"net/http"

	"github.com/monkesay/monke-api/internal/api/shared"
	"github.com/monkesay/monke-api/internal/platform/logger"
	"github.com/monkesay/monke-api/internal/service/exercise"
)

// ExerciseHandler handles exercise grading HTTP requests.
type ExerciseHandler struct {
	exerciseService exercise.ExerciseService
	logger          *slog.Logger
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService exercise.ExerciseService, logger *slog.Logger) *ExerciseHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ExerciseHandler")
	}

	return &ExerciseHandler{
		exerciseService: exerciseService,
		logger:          logger.With(slog.String("component", "exercise_handler")),
	}
}

// GetExercise handles GET /api/exercises/{id} requests.
func (h *ExerciseHandler) GetExercise(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, exerciseID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	result, err := h.exerciseService.Get(r.Context(), userID, exerciseID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get exercise")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// SubmitAnswer handles POST /api/exercises/{id}/submit requests. The answer
// is graded and the attempt recorded.
func (h *ExerciseHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, exerciseID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	result, err := h.exerciseService.Submit(r.Context(), userID, exerciseID, req.Answer)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit answer")
		return
	}

	log.Debug("exercise answer submitted",
		slog.String("user_id", userID.String()),
		slog.String("exercise_id", exerciseID.String()),
		slog.Bool("correct", result.Result.Correct))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// EvaluateAnswer handles POST /api/exercises/{id}/evaluate requests. The
// answer is graded but no attempt is recorded.
func (h *ExerciseHandler) EvaluateAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, exerciseID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	result, err := h.exerciseService.Evaluate(r.Context(), userID, exerciseID, req.Answer)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to evaluate answer")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// ListAttempts handles GET /api/exercises/{id}/attempts requests.
func (h *ExerciseHandler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, exerciseID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	attempts, err := h.exerciseService.ListAttempts(r.Context(), userID, exerciseID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list attempts")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, attempts)
}
