package handlers

import (
	"fmt"
	"time"

	"backoffice/internal/export"
	"backoffice/internal/listview"
	"backoffice/internal/models"
)

func CandidateView() *listview.Engine[models.Candidate] {
	return listview.New(listview.Config[models.Candidate]{
		Search: []func(models.Candidate) string{
			func(c models.Candidate) string { return c.Name },
			func(c models.Candidate) string { return c.Email },
			func(c models.Candidate) string { return c.Position },
			func(c models.Candidate) string { return c.Phone },
		},
		Filters: []listview.Filter[models.Candidate]{
			{Field: "status", Mode: listview.Exact, Value: func(c models.Candidate) string { return string(c.Status) }},
			{Field: "nationality", Mode: listview.Exact, Value: func(c models.Candidate) string { return c.Nationality }},
			{Field: "experience", Mode: listview.Exact, Value: func(c models.Candidate) string { return c.Experience }},
			{Field: "position", Mode: listview.Contains, Value: func(c models.Candidate) string { return c.Position }},
		},
		Sorts: []listview.SortKey[models.Candidate]{
			listview.ByString("name", func(c models.Candidate) string { return c.Name }),
			listview.ByString("position", func(c models.Candidate) string { return c.Position }),
			listview.ByString("status", func(c models.Candidate) string { return string(c.Status) }),
			listview.ByTime("created_at", func(c models.Candidate) time.Time { return models.ParseTime(c.CreatedAt) }),
		},
		ID: func(c models.Candidate) string { return c.ID.String() },
	})
}

func JobView() *listview.Engine[models.JobPosting] {
	return listview.New(listview.Config[models.JobPosting]{
		Search: []func(models.JobPosting) string{
			func(j models.JobPosting) string { return j.Title },
			func(j models.JobPosting) string { return j.Description },
			func(j models.JobPosting) string { return j.Location },
		},
		Filters: []listview.Filter[models.JobPosting]{
			{Field: "status", Mode: listview.Exact, Value: models.JobPosting.Status},
			{Field: "country", Mode: listview.Exact, Value: func(j models.JobPosting) string { return j.Country }},
			{Field: "experience", Mode: listview.Exact, Value: func(j models.JobPosting) string { return j.Experience }},
			{Field: "work_type", Mode: listview.Exact, Value: func(j models.JobPosting) string { return j.WorkType }},
			{Field: "location", Mode: listview.Contains, Value: func(j models.JobPosting) string { return j.Location }},
		},
		Sorts: []listview.SortKey[models.JobPosting]{
			listview.ByString("title", func(j models.JobPosting) string { return j.Title }),
			listview.ByString("country", func(j models.JobPosting) string { return j.Country }),
			listview.ByNumber("salary_min", func(j models.JobPosting) float64 { return float64(j.SalaryMin) }),
			listview.ByNumber("salary_max", func(j models.JobPosting) float64 { return float64(j.SalaryMax) }),
			listview.ByTime("created_at", func(j models.JobPosting) time.Time { return models.ParseTime(j.CreatedAt) }),
		},
		ID: func(j models.JobPosting) string { return j.ID.String() },
	})
}

func EmployerRequestView() *listview.Engine[models.EmployerRequest] {
	return listview.New(listview.Config[models.EmployerRequest]{
		Search: []func(models.EmployerRequest) string{
			func(e models.EmployerRequest) string { return e.FirmName },
			func(e models.EmployerRequest) string { return e.ContactName },
			func(e models.EmployerRequest) string { return e.ContactEmail },
			func(e models.EmployerRequest) string { return e.Position },
		},
		Filters: []listview.Filter[models.EmployerRequest]{
			{Field: "status", Mode: listview.Exact, Value: func(e models.EmployerRequest) string { return e.Status }},
			{Field: "preferred_nationality", Mode: listview.Exact, Value: func(e models.EmployerRequest) string { return e.PreferredNationality }},
		},
		Sorts: []listview.SortKey[models.EmployerRequest]{
			listview.ByString("firm_name", func(e models.EmployerRequest) string { return e.FirmName }),
			listview.ByNumber("headcount", func(e models.EmployerRequest) float64 { return float64(e.Headcount) }),
			listview.ByTime("created_at", func(e models.EmployerRequest) time.Time { return models.ParseTime(e.CreatedAt) }),
		},
		ID: func(e models.EmployerRequest) string { return e.ID.String() },
	})
}

func BlogPostView() *listview.Engine[models.BlogPost] {
	return listview.New(listview.Config[models.BlogPost]{
		Search: []func(models.BlogPost) string{
			func(p models.BlogPost) string { return p.Title },
			func(p models.BlogPost) string { return p.Excerpt },
			func(p models.BlogPost) string { return p.Author },
		},
		Filters: []listview.Filter[models.BlogPost]{
			{Field: "status", Mode: listview.Exact, Value: models.BlogPost.Status},
			{Field: "category", Mode: listview.Exact, Value: func(p models.BlogPost) string { return p.CategorySlug }},
			{Field: "author", Mode: listview.Contains, Value: func(p models.BlogPost) string { return p.Author }},
		},
		Sorts: []listview.SortKey[models.BlogPost]{
			listview.ByString("title", func(p models.BlogPost) string { return p.Title }),
			listview.ByString("category", func(p models.BlogPost) string { return p.Category }),
			listview.ByTime("published_at", func(p models.BlogPost) time.Time { return models.ParseTime(p.PublishedAt) }),
			listview.ByTime("created_at", func(p models.BlogPost) time.Time { return models.ParseTime(p.CreatedAt) }),
		},
		ID: func(p models.BlogPost) string { return p.ID.String() },
	})
}

func AuditLogView() *listview.Engine[models.AuditLog] {
	return listview.New(listview.Config[models.AuditLog]{
		Search: []func(models.AuditLog) string{
			func(l models.AuditLog) string { return l.ResourceName },
			func(l models.AuditLog) string { return l.Actor.Name },
			func(l models.AuditLog) string { return l.Actor.Email },
		},
		Filters: []listview.Filter[models.AuditLog]{
			{Field: "module", Mode: listview.Exact, Value: func(l models.AuditLog) string { return string(l.Module) }},
			{Field: "action", Mode: listview.Exact, Value: func(l models.AuditLog) string { return string(l.Action) }},
			{Field: "actor", Mode: listview.Exact, Value: func(l models.AuditLog) string { return l.Actor.Email }},
		},
		Sorts: []listview.SortKey[models.AuditLog]{
			listview.ByTime("timestamp", func(l models.AuditLog) time.Time { return models.ParseTime(l.Timestamp) }),
			listview.ByString("resource_name", func(l models.AuditLog) string { return l.ResourceName }),
		},
		ID: func(l models.AuditLog) string { return l.ID.String() },
	})
}

func NotificationView() *listview.Engine[models.Notification] {
	return listview.New(listview.Config[models.Notification]{
		Search: []func(models.Notification) string{
			func(n models.Notification) string { return n.Title },
			func(n models.Notification) string { return n.Message },
		},
		Filters: []listview.Filter[models.Notification]{
			{Field: "type", Mode: listview.Exact, Value: func(n models.Notification) string { return n.Type }},
			{Field: "read", Mode: listview.Exact, Value: func(n models.Notification) string { return fmt.Sprint(bool(n.Read)) }},
		},
		Sorts: []listview.SortKey[models.Notification]{
			listview.ByTime("created_at", func(n models.Notification) time.Time { return models.ParseTime(n.CreatedAt) }),
		},
		ID: func(n models.Notification) string { return n.ID.String() },
	})
}

func SettingView() *listview.Engine[models.Setting] {
	return listview.New(listview.Config[models.Setting]{
		Search: []func(models.Setting) string{
			func(s models.Setting) string { return s.Key },
			func(s models.Setting) string { return s.Value },
		},
		Filters: []listview.Filter[models.Setting]{
			{Field: "group", Mode: listview.Exact, Value: func(s models.Setting) string { return s.Group }},
		},
		Sorts: []listview.SortKey[models.Setting]{
			listview.ByString("key", func(s models.Setting) string { return s.Key }),
			listview.ByString("group", func(s models.Setting) string { return s.Group }),
		},
		ID: func(s models.Setting) string { return s.ID.String() },
	})
}

// колонки PDF-выгрузки

var candidateColumns = []export.Column{
	{Title: "ID", Width: 0.5}, {Title: "Name", Width: 2}, {Title: "Email", Width: 2.5},
	{Title: "Position", Width: 2.5}, {Title: "Nationality", Width: 1.5}, {Title: "Status", Width: 1.2},
}

func candidateRow(c models.Candidate) []string {
	return []string{c.ID.String(), c.Name, c.Email, c.Position, c.Nationality, string(c.Status)}
}

var jobColumns = []export.Column{
	{Title: "ID", Width: 0.5}, {Title: "Title", Width: 3}, {Title: "Country", Width: 1.8},
	{Title: "Location", Width: 1.5}, {Title: "Salary", Width: 1.8}, {Title: "Status", Width: 1},
}

func jobRow(j models.JobPosting) []string {
	salary := fmt.Sprintf("%.0f-%.0f %s", float64(j.SalaryMin), float64(j.SalaryMax), j.Currency)
	return []string{j.ID.String(), j.Title, j.Country, j.Location, salary, j.Status()}
}

var employerRequestColumns = []export.Column{
	{Title: "ID", Width: 0.5}, {Title: "Firm", Width: 2.5}, {Title: "Contact", Width: 2},
	{Title: "Email", Width: 2.5}, {Title: "Position", Width: 2}, {Title: "Headcount", Width: 1}, {Title: "Status", Width: 1},
}

func employerRequestRow(e models.EmployerRequest) []string {
	return []string{e.ID.String(), e.FirmName, e.ContactName, e.ContactEmail, e.Position, fmt.Sprintf("%.0f", float64(e.Headcount)), e.Status}
}

var blogColumns = []export.Column{
	{Title: "ID", Width: 0.5}, {Title: "Title", Width: 3.5}, {Title: "Category", Width: 1.5},
	{Title: "Author", Width: 1.5}, {Title: "Status", Width: 1}, {Title: "Published", Width: 1.5},
}

func blogRow(p models.BlogPost) []string {
	return []string{p.ID.String(), p.Title, p.Category, p.Author, p.Status(), p.PublishedAt}
}

var auditColumns = []export.Column{
	{Title: "Time", Width: 1.8}, {Title: "Operator", Width: 2}, {Title: "Action", Width: 1},
	{Title: "Module", Width: 1.5}, {Title: "Resource", Width: 3},
}

func auditRow(l models.AuditLog) []string {
	return []string{l.Timestamp, l.Actor.Email, string(l.Action), string(l.Module), l.ResourceName}
}
