package store

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed seed/*.yaml
var seedFS embed.FS

// seedOf decodes an embedded YAML list once and runs every entry through
// normalize, the same path API payloads take.
func seedOf[T any](file string, normalize func(json.RawMessage) (T, error)) func() []T {
	load := sync.OnceValue(func() []T {
		items, err := loadSeed(file, normalize)
		if err != nil {
			panic(fmt.Sprintf("seed %s: %v", file, err))
		}
		return items
	})
	return func() []T {
		src := load()
		out := make([]T, len(src))
		copy(out, src)
		return out
	}
}

func loadSeed[T any](file string, normalize func(json.RawMessage) (T, error)) ([]T, error) {
	b, err := seedFS.ReadFile("seed/" + file)
	if err != nil {
		return nil, err
	}
	var rows []map[string]any
	if err := yaml.Unmarshal(b, &rows); err != nil {
		return nil, err
	}

	items := make([]T, 0, len(rows))
	for i, row := range rows {
		raw, err := json.Marshal(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		item, err := normalize(raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}
