// Package listview computes the visible window of an admin table:
// filter, then stable sort, then paginate. Compute is a pure function of
// the items and the State.
package listview

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type MatchMode uint8

const (
	Exact    MatchMode = iota // enum-like поля: статус, страна, опыт
	Contains                  // свободный текст, без учёта регистра
)

type Filter[T any] struct {
	Field string
	Mode  MatchMode
	Value func(T) string
}

type keyKind uint8

const (
	stringKey keyKind = iota
	numberKey
	timeKey
)

type SortKey[T any] struct {
	Field string
	kind  keyKind
	str   func(T) string
	num   func(T) float64
	tm    func(T) time.Time
}

// ByString orders by locale collation (case still breaks ties).
func ByString[T any](field string, get func(T) string) SortKey[T] {
	return SortKey[T]{Field: field, kind: stringKey, str: get}
}

func ByNumber[T any](field string, get func(T) float64) SortKey[T] {
	return SortKey[T]{Field: field, kind: numberKey, num: get}
}

// ByTime orders by instant; unparseable values sort as the zero time.
func ByTime[T any](field string, get func(T) time.Time) SortKey[T] {
	return SortKey[T]{Field: field, kind: timeKey, tm: get}
}

type Config[T any] struct {
	// Search lists the fields the free-text query looks at.
	Search  []func(T) string
	Filters []Filter[T]
	Sorts   []SortKey[T]
	ID      func(T) string
	Locale  language.Tag
}

type Engine[T any] struct {
	cfg     Config[T]
	filters map[string]Filter[T]
	sorts   map[string]SortKey[T]
}

func New[T any](cfg Config[T]) *Engine[T] {
	if cfg.Locale == language.Und {
		cfg.Locale = language.English
	}
	e := &Engine[T]{
		cfg:     cfg,
		filters: make(map[string]Filter[T], len(cfg.Filters)),
		sorts:   make(map[string]SortKey[T], len(cfg.Sorts)),
	}
	for _, f := range cfg.Filters {
		e.filters[f.Field] = f
	}
	for _, k := range cfg.Sorts {
		e.sorts[k.Field] = k
	}
	return e
}

// Filterable reports whether field has a declared filter.
func (e *Engine[T]) Filterable(field string) bool {
	_, ok := e.filters[field]
	return ok
}

func (e *Engine[T]) Sortable(field string) bool {
	_, ok := e.sorts[field]
	return ok
}

func (e *Engine[T]) ID(item T) string {
	return e.cfg.ID(item)
}

type Result[T any] struct {
	Items         []T `json:"items"`
	FilteredCount int `json:"filteredCount"`
	Total         int `json:"total"`
	Page          int `json:"page"`
	PageSize      int `json:"pageSize"`
	TotalPages    int `json:"totalPages"`
	From          int `json:"from"` // 1-based, 0 for an empty list
	To            int `json:"to"`

	// Filtered is the whole filtered and sorted list, the scope of bulk
	// selection.
	Filtered []T `json:"-"`
}

func (e *Engine[T]) Compute(items []T, st State) Result[T] {
	filtered := e.Filter(items, st)
	e.sort(filtered, st)

	size := st.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	n := len(filtered)
	totalPages := max(1, (n+size-1)/size)
	page := min(max(st.Page, 1), totalPages)

	lo := min((page-1)*size, n)
	hi := min(page*size, n)

	res := Result[T]{
		Items:         filtered[lo:hi:hi],
		FilteredCount: n,
		Total:         len(items),
		Page:          page,
		PageSize:      size,
		TotalPages:    totalPages,
		To:            hi,
		Filtered:      filtered,
	}
	if hi > lo {
		res.From = lo + 1
	}
	return res
}

// Filter returns the items passing the query and every active field filter,
// in source order. Filters on undeclared fields are ignored.
func (e *Engine[T]) Filter(items []T, st State) []T {
	fold := cases.Fold()
	query := fold.String(strings.TrimSpace(st.Query))

	type active struct {
		f     Filter[T]
		value string
	}
	var preds []active
	for field, v := range st.Filters {
		f, ok := e.filters[field]
		if !ok || isNoop(v) {
			continue
		}
		if f.Mode == Contains {
			v = fold.String(v)
		}
		preds = append(preds, active{f: f, value: v})
	}

	out := make([]T, 0, len(items))
	for _, it := range items {
		if query != "" && !e.matchesQuery(fold, it, query) {
			continue
		}
		ok := true
		for _, p := range preds {
			got := p.f.Value(it)
			if p.f.Mode == Contains {
				ok = strings.Contains(fold.String(got), p.value)
			} else {
				ok = got == p.value
			}
			if !ok {
				break
			}
		}
		if ok {
			out = append(out, it)
		}
	}
	return out
}

func (e *Engine[T]) matchesQuery(fold cases.Caser, it T, query string) bool {
	for _, get := range e.cfg.Search {
		if strings.Contains(fold.String(get(it)), query) {
			return true
		}
	}
	return false
}

func (e *Engine[T]) sort(items []T, st State) {
	key, ok := e.sorts[st.SortBy]
	if !ok || st.SortBy == "" {
		return
	}

	var compare func(a, b T) int
	switch key.kind {
	case stringKey:
		col := collate.New(e.cfg.Locale)
		compare = func(a, b T) int { return col.CompareString(key.str(a), key.str(b)) }
	case numberKey:
		compare = func(a, b T) int { return cmp.Compare(key.num(a), key.num(b)) }
	case timeKey:
		compare = func(a, b T) int { return key.tm(a).Compare(key.tm(b)) }
	}

	if st.SortDir == Desc {
		asc := compare
		compare = func(a, b T) int { return -asc(a, b) }
	}
	slices.SortStableFunc(items, compare)
}
