package middleware

import (
	"context"

	"backoffice/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const currentUserKey = "CurrentUser"

type UserLookup interface {
	Get(ctx context.Context, id string) (models.User, error)
}

// InjectUser кладёт в контекст оператора из сессии. Сессия удалённого
// оператора очищается.
func InjectUser(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		if uid, ok := sess.Get("user_id").(string); ok && uid != "" {
			user, err := users.Get(c.Request.Context(), uid)
			if err == nil {
				c.Set(currentUserKey, user)
			} else {
				sess.Clear()
				_ = sess.Save()
			}
		}

		c.Next()
	}
}

func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return models.User{}, false
	}
	u, ok := v.(models.User)
	return u, ok
}
