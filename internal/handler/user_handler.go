package handler

import (
	"net/http"

	"watchmatch/backend/internal/apperr"
	"watchmatch/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// PreferencesInput defines the structure for a preferences update. The
// stored preferences are replaced as a whole, not merged.
type PreferencesInput struct {
	Genres         []string `json:"genres"`
	Platforms      []string `json:"platforms"`
	FavoriteActors []string `json:"favoriteActors"`
}

// UpdatePreferences godoc
// @Summary      Update preferences
// @Description  Replaces the authenticated user's catalog preferences.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PreferencesInput true "Preferences"
// @Success      200  {object}  UserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /user/preferences [patch]
func (h *Handler) UpdatePreferences(c *gin.Context) {
	var input PreferencesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prefs := &models.Preferences{
		Genres:         input.Genres,
		Platforms:      input.Platforms,
		FavoriteActors: input.FavoriteActors,
	}

	user, err := h.store.UpdateUserPreferences(c.Request.Context(), currentUserID(c), prefs)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}
