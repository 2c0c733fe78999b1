package auth

import (
	"net/http"
	"strings"

	"watchmatch/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware rejects requests without a valid bearer token and sets
// the authenticated user's ID on the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := bearerUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		c.Set("userID", userID)
		c.Next()
	}
}

// OptionalAuthMiddleware inspects for a token and sets the userID if present
// and valid, but does not fail if the token is missing or invalid.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := bearerUserID(c); ok {
			c.Set("userID", userID)
		}
		c.Next()
	}
}

func bearerUserID(c *gin.Context) (uint, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return 0, false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}
	userID, err := jwt.ParseUserID(parts[1])
	if err != nil {
		return 0, false
	}
	return userID, true
}
