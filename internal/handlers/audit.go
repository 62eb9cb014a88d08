package handlers

import (
	"net/http"

	"backoffice/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAuditLog mounts the read-only audit list; clearing goes through guards.
func (a *API) RegisterAuditLog(rg *gin.RouterGroup, guards ...gin.HandlerFunc) {
	r := a.AuditLogs
	g := rg.Group("/" + r.Name)
	g.GET("", r.List)
	g.GET("/ids", r.SelectAll)
	g.POST("/export", r.Export)
	g.GET("/:id", r.Get)
	g.DELETE("", append(guards, a.ClearAuditLog)...)
}

func (a *API) ClearAuditLog(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	a.Audit.Clear(c.Request.Context(), user.Actor())
	c.Status(http.StatusNoContent)
}
