package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"campuslibrary/internal/auth"
	"campuslibrary/internal/models"
	"campuslibrary/internal/repositories"
)

const contextUserKey = "currentUser"

// Authenticate is the single authorization boundary: it resolves the bearer
// token to a session, loads the user, and attaches it to the request context.
// Role checks happen here (via RequireAdmin), never in individual handlers.
func Authenticate(sessions *auth.Store, userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
			return
		}

		session, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
				return
			}
			logrus.WithError(err).Error("Authenticate: session lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
			return
		}

		user, err := userRepo.GetByID(nil, session.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}

		c.Set(contextUserKey, user)
		c.Set("sessionToken", token)
		c.Next()
	}
}

// RequireRole gates a route to one enumerated role.
func RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil || user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden"})
			return
		}
		c.Next()
	}
}

// RequireAdmin gates a route to admin users.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(models.UserRoleAdmin)
}
