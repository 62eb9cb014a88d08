package listview

import "slices"

// Selection is the set of ids picked for a bulk action. It is scoped to the
// filtered list, not the current page. Ids that drop out of the filtered
// list are left in place.
type Selection struct {
	ids map[string]struct{}
}

func NewSelection(ids ...string) *Selection {
	s := &Selection{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

func (s *Selection) Toggle(id string) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

func (s *Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// SelectAll adds every id of the filtered list, whatever page it is on.
func SelectAll[T any](s *Selection, e *Engine[T], filtered []T) {
	for _, it := range filtered {
		s.ids[e.ID(it)] = struct{}{}
	}
}

// AllSelected reports whether every filtered item is selected (the header
// checkbox state). False for an empty list.
func AllSelected[T any](s *Selection, e *Engine[T], filtered []T) bool {
	if len(filtered) == 0 {
		return false
	}
	for _, it := range filtered {
		if !s.Has(e.ID(it)) {
			return false
		}
	}
	return true
}

func (s *Selection) Clear() {
	clear(s.ids)
}

func (s *Selection) Len() int { return len(s.ids) }

// IDs returns the selected ids sorted.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
