package models

type BlogPost struct {
	ID           ID     `json:"id"`
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	Excerpt      string `json:"excerpt"`
	Content      string `json:"content"` // markdown
	Category     string `json:"category"`
	CategorySlug string `json:"category_slug"`
	Author       string `json:"author"`
	IsPublished  Flag   `json:"is_published"`
	PublishedAt  string `json:"published_at"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func (p BlogPost) RecordID() ID        { return p.ID }
func (p BlogPost) DisplayName() string { return p.Title }

func (p BlogPost) Status() string {
	if p.IsPublished {
		return "published"
	}
	return "draft"
}
