package word

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derdiedas/backend/internal/adapter/sqlite"
	"github.com/derdiedas/backend/internal/domain"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	db, err := sqlite.OpenInMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db)
}

func TestUpsertAndLookup(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	err := repo.Upsert(ctx, domain.Word{
		Lemma:         "hund",
		Gender:        domain.GenderMasculine,
		TranslationZh: "狗",
		TranslationEn: "dog",
	})
	require.NoError(t, err)

	got, err := repo.Lookup(ctx, "hund")
	require.NoError(t, err)
	assert.Equal(t, "hund", got.Lemma)
	assert.Equal(t, domain.GenderMasculine, got.Gender)
	assert.Equal(t, "狗", got.TranslationZh)
	assert.Equal(t, "dog", got.TranslationEn)
	assert.Equal(t, 0, got.Frequency)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestLookupNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Lookup(context.Background(), "katze")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpsertIsIdempotentMerge(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	w := domain.Word{Lemma: "tür", Gender: domain.GenderFeminine, TranslationEn: "door"}
	require.NoError(t, repo.Upsert(ctx, w))
	// Second identical upsert must not error and must keep a single row.
	require.NoError(t, repo.Upsert(ctx, w))

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalWords)

	got, err := repo.Lookup(ctx, "tür")
	require.NoError(t, err)
	assert.Equal(t, "door", got.TranslationEn)
}

func TestUpsertOverwritesFields(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, domain.Word{Lemma: "see", Gender: domain.GenderMasculine}))
	require.NoError(t, repo.Upsert(ctx, domain.Word{
		Lemma:         "see",
		Gender:        domain.GenderFeminine,
		TranslationEn: "sea",
	}))

	got, err := repo.Lookup(ctx, "see")
	require.NoError(t, err)
	assert.Equal(t, domain.GenderFeminine, got.Gender)
	assert.Equal(t, "sea", got.TranslationEn)
}

func TestLookupBatch(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, domain.Word{Lemma: "hund", Gender: domain.GenderMasculine}))
	require.NoError(t, repo.Upsert(ctx, domain.Word{Lemma: "katze", Gender: domain.GenderFeminine}))

	found, err := repo.LookupBatch(ctx, []string{"hund", "katze", "buch"})
	require.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Contains(t, found, "hund")
	assert.Contains(t, found, "katze")
	assert.NotContains(t, found, "buch")
}

func TestLookupBatchEmptyInput(t *testing.T) {
	repo := newTestRepo(t)

	found, err := repo.LookupBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestUpsertBatch(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	n, err := repo.UpsertBatch(ctx, []domain.Word{
		{Lemma: "hund", Gender: domain.GenderMasculine},
		{Lemma: "katze", Gender: domain.GenderFeminine},
		{Lemma: "haus", Gender: domain.GenderNeuter},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalWords)
}

func TestIncrementFrequency(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, domain.Word{Lemma: "hund", Gender: domain.GenderMasculine}))
	require.NoError(t, repo.IncrementFrequency(ctx, "hund"))
	require.NoError(t, repo.IncrementFrequency(ctx, "hund"))
	// Unseen lemma is a no-op, not an error.
	require.NoError(t, repo.IncrementFrequency(ctx, "katze"))

	got, err := repo.Lookup(ctx, "hund")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Frequency)
}

func TestStatsByGender(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, domain.Word{Lemma: "hund", Gender: domain.GenderMasculine}))
	require.NoError(t, repo.Upsert(ctx, domain.Word{Lemma: "tisch", Gender: domain.GenderMasculine}))
	require.NoError(t, repo.Upsert(ctx, domain.Word{Lemma: "katze", Gender: domain.GenderFeminine}))
	require.NoError(t, repo.Upsert(ctx, domain.Word{Lemma: "leute", Gender: domain.GenderPlural}))

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalWords)
	assert.Equal(t, 2, stats.ByGender[domain.GenderMasculine])
	assert.Equal(t, 1, stats.ByGender[domain.GenderFeminine])
	assert.Equal(t, 1, stats.ByGender[domain.GenderPlural])
	assert.Equal(t, 0, stats.ByGender[domain.GenderNeuter])
}
