package tmdb_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"watchmatch/backend/internal/tmdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeTMDB(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestGenreIDsCaseInsensitiveDropsUnknown(t *testing.T) {
	server := fakeTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/genre/movie/list", r.URL.Path)
		require.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		json.NewEncoder(w).Encode(map[string]any{
			"genres": []map[string]any{
				{"id": 27, "name": "Horror"},
				{"id": 35, "name": "Comedy"},
			},
		})
	})

	client := tmdb.NewClient("test-key", tmdb.WithBaseURL(server.URL))
	ids, err := client.GenreIDs(context.Background(), []string{"horror", "COMEDY", "Telenovela"})
	require.NoError(t, err)
	assert.Equal(t, []int{27, 35}, ids)
}

func TestDiscoverBuildsGenreFilter(t *testing.T) {
	var gotQuery map[string][]string
	server := fakeTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/discover/movie", r.URL.Path)
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]any{
			"page":          2,
			"total_pages":   10,
			"total_results": 200,
			"results": []map[string]any{
				{"id": 603, "title": "The Matrix", "vote_average": 8.2},
			},
		})
	})

	client := tmdb.NewClient("test-key", tmdb.WithBaseURL(server.URL))
	page, err := client.Discover(context.Background(), 2, []int{27, 35})
	require.NoError(t, err)

	assert.Equal(t, []string{"27|35"}, gotQuery["with_genres"])
	assert.Equal(t, []string{"2"}, gotQuery["page"])
	assert.Equal(t, []string{"popularity.desc"}, gotQuery["sort_by"])
	assert.Equal(t, []string{"false"}, gotQuery["include_adult"])
	assert.Equal(t, []string{"100"}, gotQuery["vote_count.gte"])

	require.Len(t, page.Results, 1)
	assert.Equal(t, "The Matrix", page.Results[0].Title)
	assert.Equal(t, 10, page.TotalPages)
}

func TestDiscoverOmitsGenreFilterWhenEmpty(t *testing.T) {
	server := fakeTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("with_genres"))
		json.NewEncoder(w).Encode(map[string]any{"page": 1, "results": []any{}})
	})

	client := tmdb.NewClient("test-key", tmdb.WithBaseURL(server.URL))
	page, err := client.Discover(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Empty(t, page.Results)
}

func TestDetail(t *testing.T) {
	server := fakeTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/movie/603", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"id":           603,
			"title":        "The Matrix",
			"overview":     "A hacker learns the truth.",
			"poster_path":  "/poster.jpg",
			"release_date": "1999-03-31",
			"vote_average": 8.2,
		})
	})

	client := tmdb.NewClient("test-key", tmdb.WithBaseURL(server.URL))
	movie, err := client.Detail(context.Background(), 603)
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", movie.Title)
	assert.Equal(t, "/poster.jpg", movie.PosterPath)
}

func TestRetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	server := fakeTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "upstream hiccup", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":    603,
			"title": "The Matrix",
		})
	})

	client := tmdb.NewClient("test-key", tmdb.WithBaseURL(server.URL))
	movie, err := client.Detail(context.Background(), 603)
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", movie.Title)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := fakeTMDB(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad key", http.StatusUnauthorized)
	})

	client := tmdb.NewClient("bad-key", tmdb.WithBaseURL(server.URL))
	_, err := client.Detail(context.Background(), 603)
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}
