package models

type CandidateStatus string

const (
	CandidateNew         CandidateStatus = "new"
	CandidateReviewing   CandidateStatus = "reviewing"
	CandidateShortlisted CandidateStatus = "shortlisted"
	CandidateHired       CandidateStatus = "hired"
	CandidateRejected    CandidateStatus = "rejected"
	CandidateArchived    CandidateStatus = "archived"
)

// Candidate: заявка соискателя из формы на странице вакансий.
type Candidate struct {
	ID             ID              `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Nationality    string          `json:"nationality"`
	Experience     string          `json:"experience"` // "0-2", "3-5", "5+"
	Position       string          `json:"position"`
	Status         CandidateStatus `json:"status"`
	CVURL          string          `json:"cv_url"`
	PassportURL    string          `json:"passport_url"`
	CertificateURL string          `json:"certificate_url"`
	Notes          string          `json:"notes"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
}

func (c Candidate) RecordID() ID        { return c.ID }
func (c Candidate) DisplayName() string { return c.Name }

// Document returns the URL of a named attachment.
func (c Candidate) Document(kind string) (string, bool) {
	switch kind {
	case "cv":
		return c.CVURL, c.CVURL != ""
	case "passport":
		return c.PassportURL, c.PassportURL != ""
	case "certificate":
		return c.CertificateURL, c.CertificateURL != ""
	}
	return "", false
}
