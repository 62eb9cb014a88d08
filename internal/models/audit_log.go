package models

type AuditAction string

const (
	ActionCreate     AuditAction = "create"
	ActionUpdate     AuditAction = "update"
	ActionDelete     AuditAction = "delete"
	ActionArchive    AuditAction = "archive"
	ActionActivate   AuditAction = "activate"
	ActionDeactivate AuditAction = "deactivate"
	ActionPublish    AuditAction = "publish"
	ActionUnpublish  AuditAction = "unpublish"
	ActionDownload   AuditAction = "download"
)

type AuditModule string

const (
	ModuleCandidates       AuditModule = "candidates"
	ModuleJobs             AuditModule = "jobs"
	ModuleEmployerRequests AuditModule = "employer_requests"
	ModuleBlog             AuditModule = "blog"
)

// Actor: кто совершил действие (оператор бэк-офиса).
type Actor struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

type FieldChange struct {
	Field string `json:"field"`
	From  any    `json:"from"`
	To    any    `json:"to"`
}

// AuditLog не изменяется после записи.
type AuditLog struct {
	ID           ID             `json:"id"`
	Timestamp    string         `json:"timestamp"`
	Actor        Actor          `json:"actor"`
	Action       AuditAction    `json:"action"`
	Module       AuditModule    `json:"module"`
	ResourceID   ID             `json:"resource_id"`
	ResourceName string         `json:"resource_name"`
	Changes      []FieldChange  `json:"changes,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

func (l AuditLog) RecordID() ID        { return l.ID }
func (l AuditLog) DisplayName() string { return l.ResourceName }
