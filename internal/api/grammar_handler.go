package api

import (
	"log/slog"
	"net/http"

	"github.com/monkesay/monke-api/internal/api/shared"
	"github.com/monkesay/monke-api/internal/domain"
	"github.com/monkesay/monke-api/internal/platform/logger"
	"github.com/monkesay/monke-api/internal/service/grammar"
)

// GrammarHandler handles grammar curriculum HTTP requests.
type GrammarHandler struct {
	grammarService grammar.GrammarService
	logger         *slog.Logger
}

// NewGrammarHandler creates a new GrammarHandler.
func NewGrammarHandler(grammarService grammar.GrammarService, logger *slog.Logger) *GrammarHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for GrammarHandler")
	}

	return &GrammarHandler{
		grammarService: grammarService,
		logger:         logger.With(slog.String("component", "grammar_handler")),
	}
}

// ListConcepts handles GET /api/grammar requests. Every concept is paired
// with the user's progress; untouched concepts show as LOCKED.
func (h *GrammarHandler) ListConcepts(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	result, err := h.grammarService.ListWithProgress(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list grammar concepts")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// GetConcept handles GET /api/grammar/{id} requests.
func (h *GrammarHandler) GetConcept(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	_, conceptID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	concept, err := h.grammarService.GetConcept(r.Context(), conceptID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get grammar concept")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, concept)
}

// CreateConcept handles POST /api/grammar requests.
func (h *GrammarHandler) CreateConcept(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if _, ok := getUserIDFromContext(r); !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateConceptRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	concept, err := domain.NewGrammarConcept(
		req.Name,
		req.Slug,
		req.Description,
		domain.CEFRLevel(req.CEFRLevel),
		req.SortOrder,
	)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid concept data", err)
		return
	}
	concept.PrerequisiteIDs = req.PrerequisiteIDs

	if err := h.grammarService.CreateConcept(r.Context(), concept); err != nil {
		HandleAPIError(w, r, err, "Failed to create grammar concept")
		return
	}

	log.Debug("grammar concept created", slog.String("concept_id", concept.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, concept)
}

// UnlockConcept handles POST /api/grammar/{id}/unlock requests.
func (h *GrammarHandler) UnlockConcept(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, conceptID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	progress, err := h.grammarService.Unlock(r.Context(), userID, conceptID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to unlock grammar concept")
		return
	}

	log.Debug("grammar concept unlocked",
		slog.String("user_id", userID.String()),
		slog.String("concept_id", conceptID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, progress)
}
