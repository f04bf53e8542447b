// Package favorites implements the user's saved-words list.
package favorites

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/derdiedas/backend/internal/domain"
)

type favoriteRepo interface {
	List(ctx context.Context) ([]domain.Favorite, error)
	Put(ctx context.Context, f domain.Favorite) error
	Delete(ctx context.Context, lemma string) error
}

// Service implements favorites operations.
type Service struct {
	log       *slog.Logger
	favorites favoriteRepo
}

// NewService creates a new Favorites service.
func NewService(logger *slog.Logger, favorites favoriteRepo) *Service {
	return &Service{
		log:       logger.With("service", "favorites"),
		favorites: favorites,
	}
}

// List returns all saved words, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Favorite, error) {
	return s.favorites.List(ctx)
}

// Save stores a word in the favorites list. Saving an already saved lemma
// overwrites it rather than failing.
func (s *Service) Save(ctx context.Context, f domain.Favorite) error {
	f.Lemma = domain.NormalizeLemma(f.Lemma)
	if err := f.Validate(); err != nil {
		return err
	}
	if err := s.favorites.Put(ctx, f); err != nil {
		return fmt.Errorf("save favorite: %w", err)
	}
	return nil
}

// Remove deletes a saved word by lemma.
func (s *Service) Remove(ctx context.Context, lemma string) error {
	normalized := domain.NormalizeLemma(lemma)
	if normalized == "" {
		return domain.NewValidationError("lemma", "must not be empty")
	}
	return s.favorites.Delete(ctx, normalized)
}
