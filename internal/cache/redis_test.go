package cache_test

import (
	"context"
	"testing"

	"watchmatch/backend/internal/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) *cache.RedisCache {
	t.Helper()
	server := miniredis.RunT(t)
	return cache.New(server.Addr(), "", 0)
}

func TestGenreTableRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := setupCache(t)

	table, err := c.GetGenreTable(ctx)
	require.NoError(t, err)
	assert.Nil(t, table, "miss should return nil table")

	want := map[string]int{"horror": 27, "comedy": 35}
	require.NoError(t, c.SetGenreTable(ctx, want))

	table, err = c.GetGenreTable(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, table)
}

func TestMovieRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := setupCache(t)

	payload, err := c.GetMovie(ctx, 603)
	require.NoError(t, err)
	assert.Nil(t, payload)

	require.NoError(t, c.SetMovie(ctx, 603, []byte(`{"id":603,"title":"The Matrix"}`)))

	payload, err = c.GetMovie(ctx, 603)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":603,"title":"The Matrix"}`, string(payload))
}

func TestNilCacheIsPermanentMiss(t *testing.T) {
	ctx := context.Background()
	var c *cache.RedisCache

	table, err := c.GetGenreTable(ctx)
	assert.NoError(t, err)
	assert.Nil(t, table)

	assert.NoError(t, c.SetGenreTable(ctx, map[string]int{"horror": 27}))
	assert.Error(t, c.Ping(ctx))
}
