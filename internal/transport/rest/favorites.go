package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/derdiedas/backend/internal/domain"
)

type favoritesService interface {
	List(ctx context.Context) ([]domain.Favorite, error)
	Save(ctx context.Context, f domain.Favorite) error
	Remove(ctx context.Context, lemma string) error
}

// FavoritesHandler serves the saved-words list.
type FavoritesHandler struct {
	log       *slog.Logger
	favorites favoritesService
}

// NewFavoritesHandler creates a FavoritesHandler.
func NewFavoritesHandler(logger *slog.Logger, favorites favoritesService) *FavoritesHandler {
	return &FavoritesHandler{log: logger, favorites: favorites}
}

// List handles GET /api/favorites.
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.favorites.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if favorites == nil {
		favorites = []domain.Favorite{}
	}
	writeJSON(w, http.StatusOK, favorites)
}

// Save handles POST /api/favorites.
func (h *FavoritesHandler) Save(w http.ResponseWriter, r *http.Request) {
	var f domain.Favorite
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		writeError(w, domain.NewValidationError("body", "invalid JSON"))
		return
	}
	if err := h.favorites.Save(r.Context(), f); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Remove handles DELETE /api/favorites/{lemma}.
func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.favorites.Remove(r.Context(), r.PathValue("lemma")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
