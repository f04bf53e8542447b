// Package word implements the dictionary cache repository on SQLite.
package word

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/derdiedas/backend/internal/adapter/sqlite"
	"github.com/derdiedas/backend/internal/domain"
)

// Repo provides word persistence backed by SQLite.
// Lemmas are expected to be normalized by the caller (see domain.NormalizeLemma).
type Repo struct {
	db *sql.DB
}

// New creates a new word repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

const wordColumns = "lemma, gender, translation_zh, translation_en, frequency, created_at, updated_at"

// Lookup returns the cached entry for a normalized lemma.
// Returns domain.ErrNotFound when the lemma is unseen.
func (r *Repo) Lookup(ctx context.Context, lemma string) (domain.Word, error) {
	query, args, err := sq.
		Select("lemma", "gender", "translation_zh", "translation_en", "frequency", "created_at", "updated_at").
		From("words").
		Where(sq.Eq{"lemma": lemma}).
		ToSql()
	if err != nil {
		return domain.Word{}, fmt.Errorf("build lookup query: %w", err)
	}

	w, err := scanWord(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return domain.Word{}, sqlite.MapError(err, "word", lemma)
	}
	return w, nil
}

// LookupBatch returns cached entries for the given normalized lemmas, keyed by
// lemma. Missing lemmas are simply absent from the result. An empty input
// yields an empty map without touching storage.
func (r *Repo) LookupBatch(ctx context.Context, lemmas []string) (map[string]domain.Word, error) {
	found := make(map[string]domain.Word, len(lemmas))
	if len(lemmas) == 0 {
		return found, nil
	}

	query, args, err := sq.
		Select("lemma", "gender", "translation_zh", "translation_en", "frequency", "created_at", "updated_at").
		From("words").
		Where(sq.Eq{"lemma": lemmas}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build batch lookup query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, "words", "batch")
	}
	defer rows.Close()

	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, sqlite.MapError(err, "words", "batch")
		}
		found[w.Lemma] = w
	}
	if err := rows.Err(); err != nil {
		return nil, sqlite.MapError(err, "words", "batch")
	}
	return found, nil
}

// Upsert inserts the word or, if the lemma already exists, overwrites its
// gender and translations and bumps updated_at. Frequency is preserved.
// A duplicate lemma is the merge path, never an error.
func (r *Repo) Upsert(ctx context.Context, w domain.Word) error {
	return r.upsert(ctx, r.db, w)
}

// UpsertBatch upserts all words inside a single transaction and returns the
// number of words written.
func (r *Repo) UpsertBatch(ctx context.Context, words []domain.Word) (int, error) {
	if len(words) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, sqlite.MapError(err, "words", "batch")
	}
	defer tx.Rollback() //nolint:errcheck

	for _, w := range words {
		if err := r.upsert(ctx, tx, w); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, sqlite.MapError(err, "words", "batch")
	}
	return len(words), nil
}

// IncrementFrequency bumps the usage counter of a cached lemma.
// Unseen lemmas are a no-op.
func (r *Repo) IncrementFrequency(ctx context.Context, lemma string) error {
	query, args, err := sq.
		Update("words").
		Set("frequency", sq.Expr("frequency + 1")).
		Where(sq.Eq{"lemma": lemma}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build frequency update: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, "word", lemma)
	}
	return nil
}

// Stats returns the total word count and per-gender counts.
func (r *Repo) Stats(ctx context.Context) (domain.WordStats, error) {
	stats := domain.WordStats{ByGender: make(map[domain.Gender]int)}

	query, args, err := sq.
		Select("gender", "count(*)").
		From("words").
		GroupBy("gender").
		ToSql()
	if err != nil {
		return stats, fmt.Errorf("build stats query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return stats, sqlite.MapError(err, "words", "stats")
	}
	defer rows.Close()

	for rows.Next() {
		var gender domain.Gender
		var count int
		if err := rows.Scan(&gender, &count); err != nil {
			return stats, sqlite.MapError(err, "words", "stats")
		}
		stats.ByGender[gender] = count
		stats.TotalWords += count
	}
	if err := rows.Err(); err != nil {
		return stats, sqlite.MapError(err, "words", "stats")
	}
	return stats, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *Repo) upsert(ctx context.Context, ex execer, w domain.Word) error {
	query, args, err := sq.
		Insert("words").
		Columns("lemma", "gender", "translation_zh", "translation_en").
		Values(w.Lemma, w.Gender.String(), nullable(w.TranslationZh), nullable(w.TranslationEn)).
		Suffix(`ON CONFLICT (lemma) DO UPDATE SET
			gender = excluded.gender,
			translation_zh = excluded.translation_zh,
			translation_en = excluded.translation_en,
			updated_at = CURRENT_TIMESTAMP`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert query: %w", err)
	}

	if _, err := ex.ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, "word", w.Lemma)
	}
	return nil
}

// nullable maps an empty string to NULL so an upsert without translations
// does not clobber nothing-to-something distinctions in queries.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWord(row rowScanner) (domain.Word, error) {
	var (
		w      domain.Word
		gender string
		zh, en sql.NullString
	)
	if err := row.Scan(&w.Lemma, &gender, &zh, &en, &w.Frequency, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return domain.Word{}, err
	}
	w.Gender = domain.Gender(gender)
	w.TranslationZh = zh.String
	w.TranslationEn = en.String
	return w, nil
}
