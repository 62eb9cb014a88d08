package handlers

import (
	"backoffice/internal/accounts"
	"backoffice/internal/audit"
	"backoffice/internal/listview"
	"backoffice/internal/mode"
	"backoffice/internal/models"
	"backoffice/internal/store"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// API holds everything the HTTP handlers need.
type API struct {
	Stores   *store.Stores
	Audit    *audit.Logger
	Mode     *mode.Resolver
	Accounts *accounts.Directory

	Candidates       *Resource[models.Candidate]
	Jobs             *Resource[models.JobPosting]
	EmployerRequests *Resource[models.EmployerRequest]
	BlogPosts        *Resource[models.BlogPost]
	AuditLogs        *Resource[models.AuditLog]
	Notifications    *Resource[models.Notification]
	Settings         *Resource[models.Setting]

	markdown goldmark.Markdown
}

func NewAPI(stores *store.Stores, logger *audit.Logger, resolver *mode.Resolver, dir *accounts.Directory, prefs *listview.PageSizePrefs) *API {
	return &API{
		Stores:   stores,
		Audit:    logger,
		Mode:     resolver,
		Accounts: dir,

		Candidates: &Resource[models.Candidate]{
			Name:     "candidates",
			Store:    stores.Candidates,
			View:     CandidateView(),
			Audit:    logger,
			Prefs:    prefs,
			Module:   models.ModuleCandidates,
			Required: []string{"name", "email"},
			UpdateAction: func(before, after models.Candidate) models.AuditAction {
				if after.Status == models.CandidateArchived && before.Status != models.CandidateArchived {
					return models.ActionArchive
				}
				return models.ActionUpdate
			},
			Columns: candidateColumns,
			Row:     candidateRow,
			Redact: func(c models.Candidate) models.Candidate {
				c.Email = maskEmail(c.Email)
				c.Phone = maskPhone(c.Phone)
				c.PassportURL = ""
				return c
			},
		},
		Jobs: &Resource[models.JobPosting]{
			Name:     "jobs",
			Store:    stores.Jobs,
			View:     JobView(),
			Audit:    logger,
			Prefs:    prefs,
			Module:   models.ModuleJobs,
			Required: []string{"title"},
			ToggleActions: map[string][2]models.AuditAction{
				"active": {models.ActionActivate, models.ActionDeactivate},
			},
			Columns: jobColumns,
			Row:     jobRow,
		},
		EmployerRequests: &Resource[models.EmployerRequest]{
			Name:     "employer-requests",
			Store:    stores.EmployerRequests,
			View:     EmployerRequestView(),
			Audit:    logger,
			Prefs:    prefs,
			Module:   models.ModuleEmployerRequests,
			Required: []string{"firm_name", "contact_email"},
			Columns:  employerRequestColumns,
			Row:      employerRequestRow,
			Redact: func(e models.EmployerRequest) models.EmployerRequest {
				e.ContactEmail = maskEmail(e.ContactEmail)
				e.Phone = maskPhone(e.Phone)
				return e
			},
		},
		BlogPosts: &Resource[models.BlogPost]{
			Name:     "blog-posts",
			Store:    stores.BlogPosts,
			View:     BlogPostView(),
			Audit:    logger,
			Prefs:    prefs,
			Module:   models.ModuleBlog,
			Required: []string{"title"},
			ToggleActions: map[string][2]models.AuditAction{
				"publish": {models.ActionPublish, models.ActionUnpublish},
			},
			Columns: blogColumns,
			Row:     blogRow,
		},
		AuditLogs: &Resource[models.AuditLog]{
			Name:    "audit-logs",
			Store:   stores.AuditLogs,
			View:    AuditLogView(),
			Prefs:   prefs,
			Columns: auditColumns,
			Row:     auditRow,
		},
		Notifications: &Resource[models.Notification]{
			Name:        "notifications",
			Store:       stores.Notifications,
			View:        NotificationView(),
			Prefs:       prefs,
			OpenToggles: []string{"read"},
		},
		Settings: &Resource[models.Setting]{
			Name:     "settings",
			Store:    stores.Settings,
			View:     SettingView(),
			Prefs:    prefs,
			Required: []string{"key"},
		},

		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}
