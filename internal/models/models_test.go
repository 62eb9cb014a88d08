package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_AcceptsNumberAndString(t *testing.T) {
	var v struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 42, "b": "x-7", "c": null}`), &v))
	assert.Equal(t, ID("42"), v.A)
	assert.Equal(t, ID("x-7"), v.B)
	assert.Equal(t, ID(""), v.C)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 42, "b": "x-7", "c": ""}`, string(out))

	n, ok := v.A.Int()
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)
	_, ok = ID("007").Int()
	assert.False(t, ok)
}

func TestFlag(t *testing.T) {
	cases := map[string]bool{
		`true`: true, `false`: false, `1`: true, `0`: false,
		`"1"`: true, `"true"`: true, `"0"`: false, `null`: false, `""`: false,
	}
	for in, want := range cases {
		var f Flag
		require.NoError(t, json.Unmarshal([]byte(in), &f), in)
		assert.Equal(t, want, bool(f), in)
	}
}

func TestNumber(t *testing.T) {
	var v struct {
		A Number `json:"a"`
		B Number `json:"b"`
		C Number `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 1500.5, "b": "2500.00", "c": "n/a"}`), &v))
	assert.Equal(t, Number(1500.5), v.A)
	assert.Equal(t, Number(2500), v.B)
	assert.Equal(t, Number(0), v.C)
}

func TestRelation_Shapes(t *testing.T) {
	var v struct {
		Scalar Relation `json:"scalar"`
		Inline Relation `json:"inline"`
		Titled Relation `json:"titled"`
		Bare   Relation `json:"bare"`
		Null   Relation `json:"null"`
		Empty  Relation `json:"empty"`
		Odd    Relation `json:"odd"`
	}
	raw := `{
		"scalar": "Tax",
		"inline": {"id": 3, "name": "Payroll", "slug": "payroll"},
		"titled": {"id": "u1", "title": "Jane Doe"},
		"bare": 9,
		"null": null,
		"empty": "",
		"odd": [1, 2]
	}`
	require.NoError(t, json.Unmarshal([]byte(raw), &v))

	assert.Equal(t, Relation{Kind: RelationScalar, Name: "Tax"}, v.Scalar)
	assert.Equal(t, Relation{Kind: RelationInline, ID: "3", Name: "Payroll", Slug: "payroll"}, v.Inline)
	assert.Equal(t, "Jane Doe", v.Titled.Label())
	assert.Equal(t, Relation{Kind: RelationScalar, ID: "9"}, v.Bare)
	assert.Equal(t, RelationNone, v.Null.Kind)
	assert.Equal(t, RelationNone, v.Empty.Kind)
	assert.Equal(t, RelationNone, v.Odd.Kind)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "payroll-tax-2024", Slugify("Payroll & Tax 2024"))
	assert.Equal(t, "cafe-creme", Slugify("  Café Crème! "))
	assert.Equal(t, "", Slugify("!!!"))
	assert.Equal(t, Slugify("Year-end closing"), Slugify("Year-end closing"))
}

func TestParseTime(t *testing.T) {
	assert.False(t, ParseTime("2024-03-01T10:00:00.000000Z").IsZero())
	assert.False(t, ParseTime("2024-03-01 10:00:00").IsZero())
	assert.False(t, ParseTime("2024-03-01").IsZero())
	assert.True(t, ParseTime("yesterday").IsZero())
}
