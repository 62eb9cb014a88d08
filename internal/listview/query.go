package listview

import (
	"net/url"
	"strconv"
	"strings"
)

var reserved = map[string]bool{"q": true, "sort": true, "dir": true, "page": true, "page_size": true}

// ParseQuery builds a State from URL parameters: q, sort, dir, page,
// page_size and filters given either as filter[field]=v or field=v. Plain
// field parameters only count when e declares that filter.
func ParseQuery[T any](values url.Values, e *Engine[T], defaultSize int) State {
	st := NewState(defaultSize)
	if v := values.Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			st = st.WithPageSize(n)
		}
	}

	st = st.WithQuery(values.Get("q"))
	for key, vals := range values {
		if len(vals) == 0 || reserved[key] {
			continue
		}
		field := key
		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") {
			field = key[len("filter[") : len(key)-1]
		}
		if e.Filterable(field) {
			st = st.WithFilter(field, vals[0])
		}
	}

	if field := values.Get("sort"); field != "" && e.Sortable(field) {
		st = st.WithSort(field, Direction(strings.ToLower(values.Get("dir"))))
	}
	if n, err := strconv.Atoi(values.Get("page")); err == nil {
		st = st.WithPage(n)
	}
	return st
}
