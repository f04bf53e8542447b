package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/derdiedas/backend/internal/domain"
	"github.com/derdiedas/backend/internal/service/declension"
)

type decliner interface {
	Decline(ctx context.Context, in declension.Input) (*domain.DeclensionTable, error)
}

// DeclensionHandler serves declension table generation.
type DeclensionHandler struct {
	log      *slog.Logger
	decliner decliner
}

// NewDeclensionHandler creates a DeclensionHandler.
func NewDeclensionHandler(logger *slog.Logger, d decliner) *DeclensionHandler {
	return &DeclensionHandler{log: logger, decliner: d}
}

// Decline handles POST /api/declension.
func (h *DeclensionHandler) Decline(w http.ResponseWriter, r *http.Request) {
	var in declension.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, domain.NewValidationError("body", "invalid JSON"))
		return
	}

	table, err := h.decliner.Decline(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}
