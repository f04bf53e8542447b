// Package dictionary implements the dictionary cache business logic on top
// of the word repository. All lemmas are normalized here; repositories only
// ever see normalized keys.
package dictionary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/derdiedas/backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type wordRepo interface {
	Lookup(ctx context.Context, lemma string) (domain.Word, error)
	LookupBatch(ctx context.Context, lemmas []string) (map[string]domain.Word, error)
	Upsert(ctx context.Context, w domain.Word) error
	UpsertBatch(ctx context.Context, words []domain.Word) (int, error)
	IncrementFrequency(ctx context.Context, lemma string) error
	Stats(ctx context.Context) (domain.WordStats, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements dictionary cache operations.
type Service struct {
	log   *slog.Logger
	words wordRepo
}

// NewService creates a new Dictionary service.
func NewService(logger *slog.Logger, words wordRepo) *Service {
	return &Service{
		log:   logger.With("service", "dictionary"),
		words: words,
	}
}

// Lookup returns the cached entry for a lemma (case-insensitive exact match).
func (s *Service) Lookup(ctx context.Context, lemma string) (domain.Word, error) {
	normalized := domain.NormalizeLemma(lemma)
	if normalized == "" {
		return domain.Word{}, domain.NewValidationError("lemma", "must not be empty")
	}
	return s.words.Lookup(ctx, normalized)
}

// LookupBatch returns cached entries for the given lemmas, keyed by normalized
// lemma. Empty and duplicate lemmas are ignored; an empty effective input
// returns an empty map without a storage round-trip.
func (s *Service) LookupBatch(ctx context.Context, lemmas []string) (map[string]domain.Word, error) {
	normalized := make([]string, 0, len(lemmas))
	seen := make(map[string]struct{}, len(lemmas))
	for _, lemma := range lemmas {
		n := domain.NormalizeLemma(lemma)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		normalized = append(normalized, n)
	}

	if len(normalized) == 0 {
		return map[string]domain.Word{}, nil
	}
	return s.words.LookupBatch(ctx, normalized)
}

// Upsert inserts the word or overwrites the gender and translations of an
// existing entry. Duplicate lemmas are the merge path, never an error.
func (s *Service) Upsert(ctx context.Context, w domain.Word) error {
	w.Lemma = domain.NormalizeLemma(w.Lemma)
	if err := w.Validate(); err != nil {
		return err
	}
	if err := s.words.Upsert(ctx, w); err != nil {
		return fmt.Errorf("upsert word: %w", err)
	}
	return nil
}

// RecordUsage bumps the frequency counter of a cached lemma.
func (s *Service) RecordUsage(ctx context.Context, lemma string) error {
	normalized := domain.NormalizeLemma(lemma)
	if normalized == "" {
		return domain.NewValidationError("lemma", "must not be empty")
	}
	return s.words.IncrementFrequency(ctx, normalized)
}

// Stats returns aggregate dictionary counts.
func (s *Service) Stats(ctx context.Context) (domain.WordStats, error) {
	return s.words.Stats(ctx)
}
