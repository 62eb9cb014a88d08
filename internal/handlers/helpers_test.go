package handlers

import (
	"testing"

	"backoffice/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "ma***@example.com", maskEmail("maria.santos@example.com"))
	assert.Equal(t, "ab***@x.io", maskEmail("ab@x.io"))
	assert.Equal(t, "***", maskEmail("no-at-sign"))
	assert.Equal(t, "***", maskEmail("@example.com"))
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "**************01", maskPhone("+63 917 555 0101"))
	assert.Equal(t, "***", maskPhone("1234"))
	assert.Equal(t, "***67", maskPhone("12367"))
}

func TestCanChangeCandidateStatus(t *testing.T) {
	cases := []struct {
		role     models.UserRole
		from, to models.CandidateStatus
		want     bool
	}{
		{models.RoleAdmin, models.CandidateNew, models.CandidateHired, true},
		{models.RoleAdmin, models.CandidateNew, models.CandidateNew, false},
		{models.RoleRecruiter, models.CandidateNew, models.CandidateReviewing, true},
		{models.RoleRecruiter, models.CandidateNew, models.CandidateHired, false},
		{models.RoleRecruiter, models.CandidateReviewing, models.CandidateShortlisted, true},
		{models.RoleRecruiter, models.CandidateShortlisted, models.CandidateHired, true},
		{models.RoleRecruiter, models.CandidateShortlisted, models.CandidateRejected, true},
		{models.RoleRecruiter, models.CandidateHired, models.CandidateRejected, false},
		{models.RoleRecruiter, models.CandidateHired, models.CandidateArchived, true},
		{models.RoleRecruiter, models.CandidateArchived, models.CandidateNew, false},
		{models.RoleEditor, models.CandidateNew, models.CandidateReviewing, false},
		{models.RoleViewer, models.CandidateNew, models.CandidateReviewing, false},
	}
	for _, tc := range cases {
		got := canChangeCandidateStatus(tc.role, tc.from, tc.to)
		assert.Equal(t, tc.want, got, "%s: %s -> %s", tc.role, tc.from, tc.to)
	}
}
