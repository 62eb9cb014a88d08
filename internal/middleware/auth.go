package middleware

import (
	"net/http"

	"backoffice/internal/models"

	"github.com/gin-gonic/gin"
)

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			abort(c, http.StatusUnauthorized, "login required")
			return
		}
		c.Next()
	}
}

func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := map[models.UserRole]struct{}{}
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "login required")
			return
		}

		if _, ok := roleSet[user.Role]; !ok {
			abort(c, http.StatusForbidden, "access denied")
			return
		}
		c.Next()
	}
}
