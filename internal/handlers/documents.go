package handlers

import (
	"net/http"

	"backoffice/internal/middleware"
	"backoffice/internal/models"

	"github.com/gin-gonic/gin"
)

// CandidateDocument redirects to a candidate attachment (cv, passport,
// certificate) and records the download.
func (a *API) CandidateDocument(c *gin.Context) {
	candidate, ok := a.Candidates.Store.Get(models.ID(c.Param("id")))
	if !ok {
		RespondError(c, http.StatusNotFound, "candidate not found", nil)
		return
	}

	kind := c.Param("kind")
	url, ok := candidate.Document(kind)
	if !ok {
		RespondError(c, http.StatusNotFound, "document not found", nil)
		return
	}

	user, _ := middleware.CurrentUser(c)
	a.Audit.LogAction(c.Request.Context(), models.ActionDownload, models.ModuleCandidates,
		candidate.ID, candidate.Name, user.Actor(), nil,
		map[string]any{"document": kind, "request_id": middleware.GetRequestID(c)})

	c.Redirect(http.StatusFound, url)
}
