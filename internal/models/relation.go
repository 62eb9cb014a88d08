package models

import (
	"bytes"
	"encoding/json"
)

type RelationKind uint8

const (
	RelationNone   RelationKind = iota
	RelationScalar              // "category": "Tax"
	RelationInline              // "category": {"id": 3, "name": "Tax", "slug": "tax"}
)

// Relation is a field the API returns either flat or as an embedded object.
// It only lives on wire structs; canonical records carry plain strings.
type Relation struct {
	Kind RelationKind
	ID   ID
	Name string
	Slug string
}

func (r *Relation) UnmarshalJSON(b []byte) error {
	*r = Relation{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s != "" {
			*r = Relation{Kind: RelationScalar, Name: s}
		}
	case '{':
		var obj struct {
			ID    ID     `json:"id"`
			Name  string `json:"name"`
			Title string `json:"title"`
			Slug  string `json:"slug"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return nil
		}
		name := obj.Name
		if name == "" {
			name = obj.Title
		}
		*r = Relation{Kind: RelationInline, ID: obj.ID, Name: name, Slug: obj.Slug}
	default:
		// голый id без имени
		var id ID
		if err := json.Unmarshal(b, &id); err == nil && id != "" {
			*r = Relation{Kind: RelationScalar, ID: id}
		}
	}
	return nil
}

// Label is the human-readable part, empty when absent.
func (r Relation) Label() string { return r.Name }
