package models

type Notification struct {
	ID        ID     `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"` // candidate, employer_request, system
	Link      string `json:"link"`
	Read      Flag   `json:"read"`
	CreatedAt string `json:"created_at"`
}

func (n Notification) RecordID() ID        { return n.ID }
func (n Notification) DisplayName() string { return n.Title }
