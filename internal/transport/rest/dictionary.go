package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/derdiedas/backend/internal/domain"
)

type dictionaryService interface {
	Lookup(ctx context.Context, lemma string) (domain.Word, error)
	Stats(ctx context.Context) (domain.WordStats, error)
}

// DictionaryHandler serves dictionary lookups and aggregate stats.
type DictionaryHandler struct {
	log  *slog.Logger
	dict dictionaryService
}

// NewDictionaryHandler creates a DictionaryHandler.
func NewDictionaryHandler(logger *slog.Logger, dict dictionaryService) *DictionaryHandler {
	return &DictionaryHandler{log: logger, dict: dict}
}

// Lookup handles GET /api/dictionary/{lemma}.
func (h *DictionaryHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	word, err := h.dict.Lookup(r.Context(), r.PathValue("lemma"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, word)
}

// Stats handles GET /api/dictionary/stats.
func (h *DictionaryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dict.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
