package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derdiedas/backend/internal/domain"
)

type mockDictionary struct {
	LookupFunc func(ctx context.Context, lemma string) (domain.Word, error)
	StatsFunc  func(ctx context.Context) (domain.WordStats, error)
}

func (m *mockDictionary) Lookup(ctx context.Context, lemma string) (domain.Word, error) {
	return m.LookupFunc(ctx, lemma)
}

func (m *mockDictionary) Stats(ctx context.Context) (domain.WordStats, error) {
	return m.StatsFunc(ctx)
}

func TestDictionaryLookup(t *testing.T) {
	t.Parallel()

	h := NewDictionaryHandler(testLogger(), &mockDictionary{
		LookupFunc: func(ctx context.Context, lemma string) (domain.Word, error) {
			assert.Equal(t, "hund", lemma)
			return domain.Word{Lemma: "hund", Gender: domain.GenderMasculine, TranslationZh: "狗"}, nil
		},
	})

	mux := NewRouter(Handlers{Dictionary: h})
	req := httptest.NewRequest(http.MethodGet, "/api/dictionary/hund", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var word domain.Word
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &word))
	assert.Equal(t, "狗", word.TranslationZh)
}

func TestDictionaryLookupNotFound(t *testing.T) {
	t.Parallel()

	h := NewDictionaryHandler(testLogger(), &mockDictionary{
		LookupFunc: func(ctx context.Context, lemma string) (domain.Word, error) {
			return domain.Word{}, domain.ErrNotFound
		},
	})

	mux := NewRouter(Handlers{Dictionary: h})
	req := httptest.NewRequest(http.MethodGet, "/api/dictionary/nope", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDictionaryStatsRouting(t *testing.T) {
	t.Parallel()

	h := NewDictionaryHandler(testLogger(), &mockDictionary{
		LookupFunc: func(ctx context.Context, lemma string) (domain.Word, error) {
			t.Error("stats path must not hit the lookup handler")
			return domain.Word{}, nil
		},
		StatsFunc: func(ctx context.Context) (domain.WordStats, error) {
			return domain.WordStats{
				TotalWords: 2,
				ByGender:   map[domain.Gender]int{domain.GenderMasculine: 1, domain.GenderFeminine: 1},
			}, nil
		},
	})

	mux := NewRouter(Handlers{Dictionary: h})
	req := httptest.NewRequest(http.MethodGet, "/api/dictionary/stats", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var stats domain.WordStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.TotalWords)
	assert.Equal(t, 1, stats.ByGender[domain.GenderMasculine])
}
