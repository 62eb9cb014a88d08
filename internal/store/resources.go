package store

import (
	"encoding/json"
	"strings"
	"time"

	"backoffice/internal/models"
)

// AuditCapacity is the number of audit entries kept.
const AuditCapacity = 1000

func decodeAs[T any](raw json.RawMessage) (T, error) {
	var v T
	err := json.Unmarshal(raw, &v)
	return v, err
}

func normalizeCandidate(raw json.RawMessage) (models.Candidate, error) {
	c, err := decodeAs[models.Candidate](raw)
	if err != nil {
		return c, err
	}
	if c.Status == "" {
		c.Status = models.CandidateNew
	}
	return c, nil
}

func Candidates() Definition[models.Candidate] {
	return Definition[models.Candidate]{
		Name:         "candidates",
		Path:         "candidates",
		Normalize:    normalizeCandidate,
		Seed:         seedOf[models.Candidate]("candidates.yaml", normalizeCandidate),
		CreatedField: "created_at",
		UpdatedField: "updated_at",
	}
}

type jobWire struct {
	models.JobPosting
	Country  models.Relation `json:"country"`
	IsActive *models.Flag    `json:"is_active"`
}

func normalizeJob(raw json.RawMessage) (models.JobPosting, error) {
	var w jobWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return models.JobPosting{}, err
	}
	j := w.JobPosting
	j.Country = w.Country.Label()
	if w.IsActive != nil {
		j.Active = *w.IsActive
	}
	return j, nil
}

func Jobs() Definition[models.JobPosting] {
	return Definition[models.JobPosting]{
		Name:      "jobs",
		Path:      "jobs",
		Normalize: normalizeJob,
		Seed:      seedOf[models.JobPosting]("jobs.yaml", normalizeJob),
		Toggles: map[string]Toggle[models.JobPosting]{
			"active": {
				Field:  "active",
				Action: "toggle-status",
				Get:    func(j models.JobPosting) bool { return bool(j.Active) },
				Set: func(j *models.JobPosting, v bool, now time.Time) {
					j.Active = models.Flag(v)
					j.UpdatedAt = models.FormatTime(now)
				},
			},
		},
		CreatedField: "created_at",
		UpdatedField: "updated_at",
	}
}

func normalizeEmployerRequest(raw json.RawMessage) (models.EmployerRequest, error) {
	r, err := decodeAs[models.EmployerRequest](raw)
	if err != nil {
		return r, err
	}
	if r.Status == "" {
		r.Status = "new"
	}
	return r, nil
}

func EmployerRequests() Definition[models.EmployerRequest] {
	return Definition[models.EmployerRequest]{
		Name:         "employer-requests",
		Path:         "employer-requests",
		Normalize:    normalizeEmployerRequest,
		Seed:         seedOf[models.EmployerRequest]("employer_requests.yaml", normalizeEmployerRequest),
		CreatedField: "created_at",
		UpdatedField: "updated_at",
	}
}

type blogWire struct {
	models.BlogPost
	Category models.Relation `json:"category"`
	Author   models.Relation `json:"author"`
}

// normalizeBlogPost flattens category and author into labels. category_slug
// comes from the embedded category, then from an explicit field, then from
// the category name.
func normalizeBlogPost(raw json.RawMessage) (models.BlogPost, error) {
	var w blogWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return models.BlogPost{}, err
	}
	p := w.BlogPost
	p.Category = w.Category.Label()
	p.Author = w.Author.Label()

	switch {
	case w.Category.Kind == models.RelationInline && w.Category.Slug != "":
		p.CategorySlug = w.Category.Slug
	case p.CategorySlug != "":
	default:
		p.CategorySlug = models.Slugify(p.Category)
	}
	if p.Slug == "" {
		p.Slug = models.Slugify(p.Title)
	}
	if !p.IsPublished {
		p.PublishedAt = ""
	}
	return p, nil
}

// deriveBlogPost keeps slug in sync with title unless the caller sets one.
func deriveBlogPost(prev *models.BlogPost, patch Patch, now time.Time) {
	if s, ok := patch["slug"].(string); ok && strings.TrimSpace(s) != "" {
		patch["slug"] = models.Slugify(s)
	} else if title, ok := patch["title"].(string); ok {
		patch["slug"] = models.Slugify(title)
	}

	if prev == nil && truthy(patch["is_published"]) {
		if s, _ := patch["published_at"].(string); s == "" {
			patch["published_at"] = models.FormatTime(now)
		}
	}
	if prev != nil {
		if v, ok := patch["is_published"]; ok && truthy(v) != bool(prev.IsPublished) {
			if truthy(v) {
				patch["published_at"] = models.FormatTime(now)
			} else {
				patch["published_at"] = ""
			}
		}
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "1" || strings.EqualFold(t, "true")
	case float64:
		return t != 0
	case int:
		return t != 0
	}
	return false
}

func BlogPosts() Definition[models.BlogPost] {
	return Definition[models.BlogPost]{
		Name:      "blog-posts",
		Path:      "blog-posts",
		Normalize: normalizeBlogPost,
		Seed:      seedOf[models.BlogPost]("blog_posts.yaml", normalizeBlogPost),
		Derive:    deriveBlogPost,
		Toggles: map[string]Toggle[models.BlogPost]{
			"publish": {
				Field:  "is_published",
				Action: "toggle-publish",
				Get:    func(p models.BlogPost) bool { return bool(p.IsPublished) },
				Set: func(p *models.BlogPost, v bool, now time.Time) {
					p.IsPublished = models.Flag(v)
					if v {
						p.PublishedAt = models.FormatTime(now)
					} else {
						p.PublishedAt = ""
					}
					p.UpdatedAt = models.FormatTime(now)
				},
			},
		},
		CreatedField: "created_at",
		UpdatedField: "updated_at",
	}
}

func AuditLogs() Definition[models.AuditLog] {
	return Definition[models.AuditLog]{
		Name:      "audit-logs",
		Path:      "audit-logs",
		Normalize: decodeAs[models.AuditLog],
		Capacity:  AuditCapacity,
	}
}

func Notifications() Definition[models.Notification] {
	return Definition[models.Notification]{
		Name:      "notifications",
		Path:      "notifications",
		Normalize: decodeAs[models.Notification],
		Seed:      seedOf[models.Notification]("notifications.yaml", decodeAs[models.Notification]),
		Toggles: map[string]Toggle[models.Notification]{
			"read": {
				Field:  "read",
				Action: "mark-read",
				Get:    func(n models.Notification) bool { return bool(n.Read) },
				Set:    func(n *models.Notification, v bool, _ time.Time) { n.Read = models.Flag(v) },
			},
		},
		CreatedField: "created_at",
	}
}

func Settings() Definition[models.Setting] {
	return Definition[models.Setting]{
		Name:      "settings",
		Path:      "settings",
		Normalize: decodeAs[models.Setting],
		Seed:      seedOf[models.Setting]("settings.yaml", decodeAs[models.Setting]),
	}
}
