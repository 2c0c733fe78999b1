// Package tmdb is a thin client for The Movie Database API: discovery,
// detail, and genre-name→id lookup. Responses are passed through to the
// API layer mostly untouched.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"watchmatch/backend/internal/apperr"
	"watchmatch/backend/internal/cache"
	"watchmatch/backend/internal/logger"
)

const (
	defaultBaseURL     = "https://api.themoviedb.org/3"
	defaultHTTPTimeout = 10 * time.Second
	maxAttempts        = 3
	retryBackoff       = 200 * time.Millisecond
)

// Client wraps the TMDB v3 API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      *cache.RedisCache
}

// Option customizes the TMDB client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithCache attaches a Redis cache for the genre table and movie details.
func WithCache(rc *cache.RedisCache) Option {
	return func(c *Client) {
		c.cache = rc
	}
}

// NewClient constructs a TMDB API client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

// Movie captures the subset of TMDB movie fields the application uses.
type Movie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	ReleaseDate  string  `json:"release_date"`
}

// DiscoverPage is one page of discovery results.
type DiscoverPage struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

type genreListResponse struct {
	Genres []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}

// Discover fetches one page of popular movies, optionally filtered to the
// given genre ids. Query constants match the reference deployment:
// English originals, adult excluded, at least 100 votes.
func (c *Client) Discover(ctx context.Context, page int, genreIDs []int) (*DiscoverPage, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("language", "en-US")
	params.Set("sort_by", "popularity.desc")
	params.Set("include_adult", "false")
	params.Set("page", strconv.Itoa(page))
	params.Set("with_original_language", "en")
	params.Set("vote_count.gte", "100")
	if len(genreIDs) > 0 {
		ids := make([]string, len(genreIDs))
		for i, id := range genreIDs {
			ids[i] = strconv.Itoa(id)
		}
		params.Set("with_genres", strings.Join(ids, "|"))
	}

	body, err := c.getJSON(ctx, "/discover/movie", params)
	if err != nil {
		return nil, err
	}
	var result DiscoverPage
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, apperr.Upstream("failed to decode discover response", err)
	}
	return &result, nil
}

// Detail fetches the full detail payload for a movie, cache-first when a
// cache is attached.
func (c *Client) Detail(ctx context.Context, tmdbID int) (*Movie, error) {
	if cached, err := c.cache.GetMovie(ctx, tmdbID); err == nil && cached != nil {
		var movie Movie
		if err := json.Unmarshal(cached, &movie); err == nil {
			return &movie, nil
		}
	}

	params := url.Values{}
	params.Set("language", "en-US")
	body, err := c.getJSON(ctx, fmt.Sprintf("/movie/%d", tmdbID), params)
	if err != nil {
		return nil, err
	}
	var movie Movie
	if err := json.Unmarshal(body, &movie); err != nil {
		return nil, apperr.Upstream("failed to decode movie detail", err)
	}

	if err := c.cache.SetMovie(ctx, tmdbID, body); err != nil {
		logger.Warn("failed to cache movie detail", "tmdb_id", tmdbID, "err", err)
	}
	return &movie, nil
}

// GenreIDs resolves genre names to TMDB genre ids. The match is
// case-insensitive and unknown names are silently dropped.
func (c *Client) GenreIDs(ctx context.Context, names []string) ([]int, error) {
	table, err := c.genreTable(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(names))
	for _, name := range names {
		if id, ok := table[strings.ToLower(name)]; ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (c *Client) genreTable(ctx context.Context) (map[string]int, error) {
	if table, err := c.cache.GetGenreTable(ctx); err == nil && table != nil {
		return table, nil
	}

	body, err := c.getJSON(ctx, "/genre/movie/list", url.Values{})
	if err != nil {
		return nil, err
	}
	var list genreListResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, apperr.Upstream("failed to decode genre list", err)
	}
	table := make(map[string]int, len(list.Genres))
	for _, g := range list.Genres {
		table[strings.ToLower(g.Name)] = g.ID
	}

	if err := c.cache.SetGenreTable(ctx, table); err != nil {
		logger.Warn("failed to cache genre table", "err", err)
	}
	return table, nil
}

// getJSON performs a GET against the API with the api key attached.
// Transport failures and 5xx responses are retried with a bounded
// backoff; these requests are idempotent.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values) ([]byte, error) {
	params.Set("api_key", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt-1) * retryBackoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, apperr.Upstream("failed to build catalog request", err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			lastErr = fmt.Errorf("tmdb: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
			continue
		}
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, apperr.Upstream("catalog request rejected",
				fmt.Errorf("tmdb: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
		}
		return body, nil
	}
	if lastErr == nil {
		lastErr = errors.New("tmdb: request failed")
	}
	return nil, apperr.Upstream("catalog unavailable", lastErr)
}
