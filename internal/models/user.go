package models

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleEditor    UserRole = "editor"    // блог
	RoleRecruiter UserRole = "recruiter" // кандидаты, вакансии, заявки работодателей
	RoleViewer    UserRole = "viewer"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleRecruiter, RoleViewer:
		return true
	}
	return false
}

// User: оператор бэк-офиса.
type User struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	Name         string   `json:"name"`
	PasswordHash string   `json:"password_hash"`
	Role         UserRole `json:"role"`
}

func (u User) Actor() Actor {
	return Actor{ID: u.ID, Name: u.Name, Email: u.Username, Role: u.Role}
}
