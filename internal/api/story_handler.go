package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/monkesay/monke-api/internal/api/shared"
	"github.com/monkesay/monke-api/internal/domain"
	"github.com/monkesay/monke-api/internal/platform/logger"
	"github.com/monkesay/monke-api/internal/service/story"
)

// StoryHandler handles story generation and reading HTTP requests.
type StoryHandler struct {
	storyService story.StoryService
	logger       *slog.Logger
}

// NewStoryHandler creates a new StoryHandler.
func NewStoryHandler(storyService story.StoryService, logger *slog.Logger) *StoryHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StoryHandler")
	}

	return &StoryHandler{
		storyService: storyService,
		logger:       logger.With(slog.String("component", "story_handler")),
	}
}

// ListStories handles GET /api/stories requests. The completed query
// parameter filters the listing; limit and offset page it.
func (h *StoryHandler) ListStories(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	req := story.ListRequest{
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}
	if raw := r.URL.Query().Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid completed filter")
			return
		}
		req.Completed = &completed
	}

	stories, err := h.storyService.List(r.Context(), userID, req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list stories")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stories)
}

// CheckReadiness handles GET /api/stories/ready requests.
func (h *StoryHandler) CheckReadiness(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	readiness, err := h.storyService.CheckReadiness(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to check story readiness")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, readiness)
}

// GenerateStory handles POST /api/stories/generate requests. Generation
// calls out to the language model, so this is the slowest endpoint in the
// API; the request context bounds the wait.
func (h *StoryHandler) GenerateStory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req GenerateStoryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	generated, err := h.storyService.Generate(r.Context(), userID, story.GenerateRequest{
		Topic:          req.Topic,
		IncludeWordIDs: req.IncludeWordIDs,
		FocusGrammarID: req.FocusGrammarID,
		LevelOverride:  domain.CEFRLevel(req.Level),
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate story")
		return
	}

	log.Info("story generated",
		slog.String("user_id", userID.String()),
		slog.String("story_id", generated.ID.String()),
		slog.String("level", string(generated.CEFRLevel)))
	shared.RespondWithJSON(w, r, http.StatusCreated, generated)
}

// GetStory handles GET /api/stories/{id} requests.
func (h *StoryHandler) GetStory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, storyID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	result, err := h.storyService.Get(r.Context(), userID, storyID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get story")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// ListStoryExercises handles GET /api/stories/{id}/exercises requests.
func (h *StoryHandler) ListStoryExercises(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, storyID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	exercises, err := h.storyService.ListExercises(r.Context(), userID, storyID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list exercises")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, exercises)
}

// CompleteStory handles POST /api/stories/{id}/complete requests.
func (h *StoryHandler) CompleteStory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, storyID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	// The body is optional; completing without a rating is fine.
	var req CompleteStoryRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := shared.DecodeJSON(r, &req); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
			return
		}
		if err := shared.Validate.Struct(req); err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
			return
		}
	}

	completed, err := h.storyService.Complete(r.Context(), userID, storyID, req.Rating)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to complete story")
		return
	}

	log.Debug("story completed",
		slog.String("user_id", userID.String()),
		slog.String("story_id", storyID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, completed)
}
