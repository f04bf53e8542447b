// Package favorite implements the favorites repository on SQLite.
package favorite

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/derdiedas/backend/internal/adapter/sqlite"
	"github.com/derdiedas/backend/internal/domain"
)

// Repo provides favorites persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new favorites repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// List returns all favorites, most recently saved first.
func (r *Repo) List(ctx context.Context) ([]domain.Favorite, error) {
	query, args, err := sq.
		Select("lemma", "gender", "original", "created_at").
		From("favorites").
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, "favorites", "list")
	}
	defer rows.Close()

	var favorites []domain.Favorite
	for rows.Next() {
		var (
			f      domain.Favorite
			gender string
		)
		if err := rows.Scan(&f.Lemma, &gender, &f.Original, &f.CreatedAt); err != nil {
			return nil, sqlite.MapError(err, "favorites", "list")
		}
		f.Gender = domain.Gender(gender)
		favorites = append(favorites, f)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlite.MapError(err, "favorites", "list")
	}
	return favorites, nil
}

// Put saves a favorite, overwriting gender and original if the lemma was
// already saved. Saving twice is not an error.
func (r *Repo) Put(ctx context.Context, f domain.Favorite) error {
	query, args, err := sq.
		Insert("favorites").
		Columns("lemma", "gender", "original").
		Values(f.Lemma, f.Gender.String(), f.Original).
		Suffix(`ON CONFLICT (lemma) DO UPDATE SET
			gender = excluded.gender,
			original = excluded.original`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build put query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, "favorite", f.Lemma)
	}
	return nil
}

// Delete removes a favorite by normalized lemma.
// Returns domain.ErrNotFound if nothing was removed.
func (r *Repo) Delete(ctx context.Context, lemma string) error {
	query, args, err := sq.
		Delete("favorites").
		Where(sq.Eq{"lemma": lemma}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return sqlite.MapError(err, "favorite", lemma)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return sqlite.MapError(err, "favorite", lemma)
	}
	if affected == 0 {
		return fmt.Errorf("favorite %q: %w", lemma, domain.ErrNotFound)
	}
	return nil
}
