package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/monkesay/monke-api/internal/api/shared"
	"github.com/monkesay/monke-api/internal/domain"
	"github.com/monkesay/monke-api/internal/platform/logger"
	"github.com/monkesay/monke-api/internal/service/words"
)

// WordHandler handles vocabulary inventory HTTP requests.
type WordHandler struct {
	wordService words.WordService
	logger      *slog.Logger
}

// NewWordHandler creates a new WordHandler.
func NewWordHandler(wordService words.WordService, logger *slog.Logger) *WordHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for WordHandler")
	}

	return &WordHandler{
		wordService: wordService,
		logger:      logger.With(slog.String("component", "word_handler")),
	}
}

// ListWords handles GET /api/words requests. Status, level, search, limit,
// and offset come from query parameters.
func (h *WordHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	req := words.ListRequest{
		Status: domain.WordStatus(r.URL.Query().Get("status")),
		Level:  domain.CEFRLevel(r.URL.Query().Get("level")),
		Search: r.URL.Query().Get("search"),
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}

	result, err := h.wordService.List(r.Context(), userID, req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list words")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// SearchWords handles GET /api/words/search requests.
func (h *WordHandler) SearchWords(w http.ResponseWriter, r *http.Request) {
	if _, ok := getUserIDFromContext(r); !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	query := r.URL.Query().Get("q")
	limit := queryInt(r, "limit")

	result, err := h.wordService.Search(r.Context(), query, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to search words")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// GetWord handles GET /api/words/{id} requests.
func (h *WordHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, wordID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	result, err := h.wordService.Get(r.Context(), userID, wordID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get word")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// CreateWord handles POST /api/words requests.
func (h *WordHandler) CreateWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if _, ok := getUserIDFromContext(r); !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateWordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	word, err := domain.NewWord(
		req.Hindi,
		req.Romanized,
		req.English,
		domain.PartOfSpeech(req.PartOfSpeech),
		domain.CEFRLevel(req.CEFRLevel),
	)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid word data", err)
		return
	}
	word.Tags = req.Tags
	word.Notes = req.Notes

	if err := h.wordService.Create(r.Context(), word); err != nil {
		HandleAPIError(w, r, err, "Failed to create word")
		return
	}

	log.Debug("word created", slog.String("word_id", word.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, word)
}

// MarkWordKnown handles POST /api/words/{id}/known requests.
func (h *WordHandler) MarkWordKnown(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, wordID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	progress, err := h.wordService.MarkKnown(r.Context(), userID, wordID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to mark word as known")
		return
	}

	log.Debug("word marked known",
		slog.String("user_id", userID.String()),
		slog.String("word_id", wordID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, progress)
}

// queryInt parses an integer query parameter, returning zero when the
// parameter is absent or malformed. Services apply their own defaults.
func queryInt(r *http.Request, name string) int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return value
}
