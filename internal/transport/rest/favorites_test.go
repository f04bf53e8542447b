package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derdiedas/backend/internal/domain"
)

type mockFavorites struct {
	ListFunc   func(ctx context.Context) ([]domain.Favorite, error)
	SaveFunc   func(ctx context.Context, f domain.Favorite) error
	RemoveFunc func(ctx context.Context, lemma string) error
}

func (m *mockFavorites) List(ctx context.Context) ([]domain.Favorite, error) {
	return m.ListFunc(ctx)
}

func (m *mockFavorites) Save(ctx context.Context, f domain.Favorite) error {
	return m.SaveFunc(ctx, f)
}

func (m *mockFavorites) Remove(ctx context.Context, lemma string) error {
	return m.RemoveFunc(ctx, lemma)
}

func TestFavoritesListEmpty(t *testing.T) {
	t.Parallel()

	h := NewFavoritesHandler(testLogger(), &mockFavorites{
		ListFunc: func(ctx context.Context) ([]domain.Favorite, error) {
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String(), "empty list must serialize as [], not null")
}

func TestFavoritesSave(t *testing.T) {
	t.Parallel()

	var saved domain.Favorite
	h := NewFavoritesHandler(testLogger(), &mockFavorites{
		SaveFunc: func(ctx context.Context, f domain.Favorite) error {
			saved = f
			return nil
		},
	})

	body := `{"lemma":"Hund","gender":"m","original":"Hund"}`
	req := httptest.NewRequest(http.MethodPost, "/api/favorites", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Save(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "Hund", saved.Lemma)
}

func TestFavoritesRemoveNotFound(t *testing.T) {
	t.Parallel()

	h := NewFavoritesHandler(testLogger(), &mockFavorites{
		RemoveFunc: func(ctx context.Context, lemma string) error {
			return domain.ErrNotFound
		},
	})

	mux := NewRouter(Handlers{Favorites: h})
	req := httptest.NewRequest(http.MethodDelete, "/api/favorites/hund", nil)
	rec := httptest.NewRecorder()

	// Other handlers are nil; only the favorites route is exercised.
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}
