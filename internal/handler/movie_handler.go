package handler

import (
	"net/http"
	"strconv"

	"watchmatch/backend/internal/apperr"
	"watchmatch/backend/internal/logger"
	"watchmatch/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// SwipeInput defines the structure for recording a swipe.
type SwipeInput struct {
	TmdbID int   `json:"tmdbId" binding:"required" example:"603"`
	Liked  *bool `json:"liked" binding:"required"`
}

// SwipeResponse is the recorded swipe plus the outcome of match
// detection. MovieTitle is set only when a new match was created.
type SwipeResponse struct {
	ID         uint   `json:"id"`
	UserID     uint   `json:"userId"`
	TmdbID     int    `json:"tmdbId"`
	Liked      bool   `json:"liked"`
	Match      bool   `json:"match"`
	MovieTitle string `json:"movieTitle,omitempty"`
}

// endregion

// DiscoverMovies godoc
// @Summary      Discover movies
// @Description  Fetches a page of movies from the catalog, genre-filtered when the caller is authenticated and has genre preferences.
// @Tags         movies
// @Produce      json
// @Param        page  query  int  false  "Page number"  default(1)
// @Success      200  {object}  tmdb.DiscoverPage
// @Failure      404  {object}  ErrorResponse "Empty result page"
// @Failure      500  {object}  ErrorResponse "Upstream failure"
// @Router       /movies/discover [get]
func (h *Handler) DiscoverMovies(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	ctx := c.Request.Context()

	var genreIDs []int
	if userID, ok := c.Get("userID"); ok {
		user, err := h.store.GetUser(ctx, userID.(uint))
		if err == nil && user.Preferences != nil && len(user.Preferences.Genres) > 0 {
			genreIDs, err = h.catalog.GenreIDs(ctx, user.Preferences.Genres)
			if err != nil {
				// Genre lookup failure degrades to an unfiltered page.
				logger.Warn("genre lookup failed", "err", err)
				genreIDs = nil
			}
		}
	}

	result, err := h.catalog.Discover(ctx, page, genreIDs)
	if err != nil {
		logger.Error("discover failed", "page", page, "err", err)
		apperr.Respond(c, err)
		return
	}
	if len(result.Results) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No movies found"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// MovieDetail godoc
// @Summary      Get movie detail
// @Description  Fetches catalog detail for one movie.
// @Tags         movies
// @Produce      json
// @Param        id  path  int  true  "TMDB movie ID"
// @Success      200  {object}  tmdb.Movie
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse "Upstream failure"
// @Router       /movies/{id} [get]
func (h *Handler) MovieDetail(c *gin.Context) {
	tmdbID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movie ID"})
		return
	}

	movie, err := h.catalog.Detail(c.Request.Context(), tmdbID)
	if err != nil {
		logger.Error("movie detail failed", "tmdb_id", tmdbID, "err", err)
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, movie)
}

// RecordSwipe godoc
// @Summary      Record a swipe
// @Description  Records a like/dislike on a movie and reports whether it produced a new match with the user's partner.
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SwipeInput true "Swipe"
// @Success      200  {object}  SwipeResponse
// @Failure      400  {object}  ErrorResponse "Invalid payload"
// @Failure      401  {object}  ErrorResponse
// @Router       /movies/swipe [post]
func (h *Handler) RecordSwipe(c *gin.Context) {
	var input SwipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid swipe data"})
		return
	}

	ctx := c.Request.Context()
	userID := currentUserID(c)

	swipe, match, err := h.store.RecordSwipe(ctx, userID, input.TmdbID, *input.Liked)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	response := SwipeResponse{
		ID:     swipe.ID,
		UserID: swipe.UserID,
		TmdbID: swipe.TmdbID,
		Liked:  swipe.Liked,
	}

	if match != nil {
		response.Match = true
		// The title is notification garnish; a catalog failure here must
		// not undo the recorded match.
		if movie, err := h.catalog.Detail(ctx, input.TmdbID); err == nil {
			response.MovieTitle = movie.Title
		} else {
			logger.Warn("match title lookup failed", "tmdb_id", input.TmdbID, "err", err)
		}
		logger.Info("match created", "tmdb_id", input.TmdbID, "user1", match.User1ID, "user2", match.User2ID)
	}

	c.JSON(http.StatusOK, response)
}

// ListMatches godoc
// @Summary      List matches
// @Description  Lists the authenticated user's matches in insertion order.
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.Match
// @Failure      401  {object}  ErrorResponse
// @Router       /matches [get]
func (h *Handler) ListMatches(c *gin.Context) {
	matches, err := h.store.MatchesFor(c.Request.Context(), currentUserID(c))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	if matches == nil {
		matches = []models.Match{}
	}
	c.JSON(http.StatusOK, matches)
}
