package adapters

import (
	"context"
	"testing"

	"storefront/internal/core/cache"
	"storefront/internal/features/hero/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepository(t *testing.T) (*RedisDeckRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	adapter, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	return NewRedisDeckRepository(adapter), mr
}

func TestRedisDeckRepository_SaveGet(t *testing.T) {
	repo, mr := newRepository(t)
	ctx := context.Background()

	deck := domain.SampleDeck("home")
	require.NoError(t, repo.Save(ctx, &deck))

	assert.True(t, mr.Exists("hero:deck:home"))

	got, err := repo.Get(ctx, "home")
	require.NoError(t, err)
	assert.Equal(t, deck.Name, got.Name)
	require.Len(t, got.Slides, 2)
	assert.Equal(t, deck.Slides[0].CTA, got.Slides[0].CTA)
	assert.True(t, got.Slides[0].Priority)
}

func TestRedisDeckRepository_GetNotFound(t *testing.T) {
	repo, _ := newRepository(t)

	deck, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrDeckNotFound)
	assert.Nil(t, deck)
}

func TestRedisDeckRepository_GetCorrupt(t *testing.T) {
	repo, mr := newRepository(t)
	require.NoError(t, mr.Set("hero:deck:broken", "{not json"))

	_, err := repo.Get(context.Background(), "broken")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDeckNotFound)
}

func TestRedisDeckRepository_ListDelete(t *testing.T) {
	repo, _ := newRepository(t)
	ctx := context.Background()

	for _, name := range []string{"summer", "home"} {
		deck := domain.SampleDeck(name)
		require.NoError(t, repo.Save(ctx, &deck))
	}

	names, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"home", "summer"}, names)

	require.NoError(t, repo.Delete(ctx, "home"))

	names, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"summer"}, names)

	_, err = repo.Get(ctx, "home")
	assert.ErrorIs(t, err, domain.ErrDeckNotFound)
}
