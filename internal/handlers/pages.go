package handlers

import (
	"net/http"

	"backoffice/internal/models"

	"github.com/gin-gonic/gin"
)

const recentActivity = 5

// Dashboard: сводка для главной страницы админки.
func (a *API) Dashboard(c *gin.Context) {
	newCandidates := 0
	for _, cand := range a.Stores.Candidates.Items() {
		if cand.Status == models.CandidateNew {
			newCandidates++
		}
	}

	activeJobs := 0
	for _, j := range a.Stores.Jobs.Items() {
		if j.Active {
			activeJobs++
		}
	}

	openRequests := 0
	for _, r := range a.Stores.EmployerRequests.Items() {
		if r.Status != "closed" {
			openRequests++
		}
	}

	published := 0
	for _, p := range a.Stores.BlogPosts.Items() {
		if p.IsPublished {
			published++
		}
	}

	unread := 0
	for _, n := range a.Stores.Notifications.Items() {
		if !n.Read {
			unread++
		}
	}

	logs := a.Stores.AuditLogs.Items()
	if len(logs) > recentActivity {
		logs = logs[:recentActivity]
	}

	c.JSON(http.StatusOK, gin.H{
		"candidates":          a.Stores.Candidates.Len(),
		"newCandidates":       newCandidates,
		"activeJobs":          activeJobs,
		"openRequests":        openRequests,
		"publishedPosts":      published,
		"unreadNotifications": unread,
		"recentActivity":      logs,
		"dataMode":            a.Mode.Current().DataMode,
	})
}
