package listview

import "slices"

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// PageSizes are the page sizes an operator can pick.
var PageSizes = []int{5, 10, 25, 50}

const DefaultPageSize = 10

// Any is the filter value meaning "no constraint".
const Any = "all"

// State is the filter/sort/page input of a list. It is a value: every
// transition returns a new State.
type State struct {
	Query    string            `json:"q"`
	Filters  map[string]string `json:"filters,omitempty"`
	SortBy   string            `json:"sort,omitempty"` // пусто = порядок источника
	SortDir  Direction         `json:"dir,omitempty"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

func NewState(pageSize int) State {
	return State{Page: 1, PageSize: ValidPageSize(pageSize)}
}

// ValidPageSize maps anything outside PageSizes to the default.
func ValidPageSize(n int) int {
	if slices.Contains(PageSizes, n) {
		return n
	}
	return DefaultPageSize
}

func (s State) WithQuery(q string) State {
	s.Query = q
	s.Page = 1
	return s
}

// WithFilter sets a field filter; "" or Any removes it.
func (s State) WithFilter(field, value string) State {
	filters := make(map[string]string, len(s.Filters)+1)
	for k, v := range s.Filters {
		filters[k] = v
	}
	if isNoop(value) {
		delete(filters, field)
	} else {
		filters[field] = value
	}
	s.Filters = filters
	s.Page = 1
	return s
}

// ToggleSort sorts by field ascending, or flips the direction when field is
// already the sort key.
func (s State) ToggleSort(field string) State {
	if s.SortBy == field && s.SortDir == Asc {
		s.SortDir = Desc
	} else {
		s.SortBy = field
		s.SortDir = Asc
	}
	s.Page = 1
	return s
}

func (s State) WithSort(field string, dir Direction) State {
	s.SortBy = field
	s.SortDir = dir
	if dir != Desc {
		s.SortDir = Asc
	}
	if field == "" {
		s.SortDir = ""
	}
	s.Page = 1
	return s
}

func (s State) WithPage(page int) State {
	s.Page = page
	return s
}

func (s State) WithPageSize(n int) State {
	s.PageSize = ValidPageSize(n)
	s.Page = 1
	return s
}

func isNoop(v string) bool {
	return v == "" || v == Any
}
