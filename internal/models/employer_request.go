package models

type EmployerRequest struct {
	ID                   ID     `json:"id"`
	FirmName             string `json:"firm_name"`
	ContactName          string `json:"contact_name"`
	ContactEmail         string `json:"contact_email"`
	Phone                string `json:"phone"`
	Position             string `json:"position"`
	PreferredNationality string `json:"preferred_nationality"`
	Headcount            Number `json:"headcount"`
	Status               string `json:"status"` // new, contacted, closed
	Message              string `json:"message"`
	CreatedAt            string `json:"created_at"`
	UpdatedAt            string `json:"updated_at"`
}

func (e EmployerRequest) RecordID() ID        { return e.ID }
func (e EmployerRequest) DisplayName() string { return e.FirmName }
