package models

type JobPosting struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Country     string `json:"country"`
	Location    string `json:"location"`
	WorkType    string `json:"work_type"` // full-time, part-time, remote, hybrid
	Experience  string `json:"experience"`
	SalaryMin   Number `json:"salary_min"`
	SalaryMax   Number `json:"salary_max"`
	Currency    string `json:"currency"`
	Active      Flag   `json:"active"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func (j JobPosting) RecordID() ID        { return j.ID }
func (j JobPosting) DisplayName() string { return j.Title }

// Status is the value the status filter matches against.
func (j JobPosting) Status() string {
	if j.Active {
		return "active"
	}
	return "inactive"
}
