package store

import (
	"context"
	"sort"

	"backoffice/internal/models"
)

// Fetcher is the type-erased view of a Store used by the refresh endpoint
// and the CLI.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context)
	Len() int
	LastError() string
	OnConfirm(fn func(Result))
	Wait()
}

// Stores is the set of resource stores of one process.
type Stores struct {
	Candidates       *Store[models.Candidate]
	Jobs             *Store[models.JobPosting]
	EmployerRequests *Store[models.EmployerRequest]
	BlogPosts        *Store[models.BlogPost]
	AuditLogs        *Store[models.AuditLog]
	Notifications    *Store[models.Notification]
	Settings         *Store[models.Setting]
}

func NewStores(deps Deps, opts ...Option) *Stores {
	return &Stores{
		Candidates:       New(Candidates(), deps, opts...),
		Jobs:             New(Jobs(), deps, opts...),
		EmployerRequests: New(EmployerRequests(), deps, opts...),
		BlogPosts:        New(BlogPosts(), deps, opts...),
		AuditLogs:        New(AuditLogs(), deps, opts...),
		Notifications:    New(Notifications(), deps, opts...),
		Settings:         New(Settings(), deps, opts...),
	}
}

func (s *Stores) All() []Fetcher {
	return []Fetcher{
		s.Candidates, s.Jobs, s.EmployerRequests, s.BlogPosts,
		s.AuditLogs, s.Notifications, s.Settings,
	}
}

func (s *Stores) ByName(name string) (Fetcher, bool) {
	for _, f := range s.All() {
		if f.Name() == name {
			return f, true
		}
	}
	return nil, false
}

func (s *Stores) Names() []string {
	names := make([]string, 0, 7)
	for _, f := range s.All() {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

func (s *Stores) OnConfirm(fn func(Result)) {
	for _, f := range s.All() {
		f.OnConfirm(fn)
	}
}

// Wait blocks until every store has finished its background confirmations.
func (s *Stores) Wait() {
	for _, f := range s.All() {
		f.Wait()
	}
}
