package handler

import (
	"watchmatch/backend/internal/models"
	"watchmatch/backend/internal/store"
	"watchmatch/backend/internal/tmdb"

	"github.com/gin-gonic/gin"
)

// Handler carries the dependencies of the API layer. The store and
// catalog client are constructed in main and injected here; no handler
// reaches for process-wide singletons.
type Handler struct {
	store   *store.Store
	catalog *tmdb.Client
}

// New creates the handler set.
func New(st *store.Store, catalog *tmdb.Client) *Handler {
	return &Handler{store: st, catalog: catalog}
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// UserResponse defines the structure for a user profile. The password
// hash never leaves the store boundary.
type UserResponse struct {
	ID          uint                `json:"id" example:"1"`
	Username    string              `json:"username" example:"moviefan"`
	PartnerID   *uint               `json:"partnerId"`
	Preferences *models.Preferences `json:"preferences"`
}

func newUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		PartnerID:   user.PartnerID,
		Preferences: user.Preferences,
	}
}

func currentUserID(c *gin.Context) uint {
	userID, _ := c.Get("userID")
	return userID.(uint)
}
