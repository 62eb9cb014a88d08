package handlers

import (
	"net/http"

	"backoffice/internal/middleware"
	"backoffice/internal/models"
	"backoffice/internal/store"

	"github.com/gin-gonic/gin"
)

type statusForm struct {
	Status string `json:"status" form:"status" binding:"required"`
}

// ChangeCandidateStatus двигает кандидата по воронке с учётом роли.
func (a *API) ChangeCandidateStatus(c *gin.Context) {
	var form statusForm
	if err := c.ShouldBind(&form); err != nil {
		RespondError(c, http.StatusBadRequest, "status is required", err)
		return
	}

	id := models.ID(c.Param("id"))
	candidate, ok := a.Candidates.Store.Get(id)
	if !ok {
		RespondError(c, http.StatusNotFound, "candidate not found", nil)
		return
	}

	next := models.CandidateStatus(form.Status)
	switch next {
	case models.CandidateNew,
		models.CandidateReviewing,
		models.CandidateShortlisted,
		models.CandidateHired,
		models.CandidateRejected,
		models.CandidateArchived:
	default:
		RespondError(c, http.StatusBadRequest, "unknown status", nil)
		return
	}

	user, _ := middleware.CurrentUser(c)
	if !canChangeCandidateStatus(user.Role, candidate.Status, next) {
		RespondError(c, http.StatusForbidden, "status change not allowed", nil)
		return
	}

	updated, ok := a.Candidates.Store.Update(c.Request.Context(), id, store.Patch{"status": string(next)})
	if !ok {
		RespondError(c, http.StatusUnprocessableEntity, "could not update candidate", nil)
		return
	}

	action := models.ActionUpdate
	if next == models.CandidateArchived {
		action = models.ActionArchive
	}
	a.Candidates.log(c, action, updated, []models.FieldChange{
		{Field: "status", From: string(candidate.Status), To: string(next)},
	}, nil)

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// логика ролей
func canChangeCandidateStatus(role models.UserRole, current, next models.CandidateStatus) bool {
	if current == next {
		return false
	}

	switch role {

	case models.RoleAdmin:
		return true

	case models.RoleRecruiter:
		if next == models.CandidateRejected {
			return current != models.CandidateArchived && current != models.CandidateHired
		}
		switch current {
		case models.CandidateNew:
			return next == models.CandidateReviewing
		case models.CandidateReviewing:
			return next == models.CandidateShortlisted
		case models.CandidateShortlisted:
			return next == models.CandidateHired
		case models.CandidateRejected, models.CandidateHired:
			return next == models.CandidateArchived
		}
		return false

	default:
		return false
	}
}
