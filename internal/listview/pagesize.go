package listview

import (
	"context"
	"strconv"

	"backoffice/internal/storage"
)

// PageSizePrefs remembers the chosen page size per admin page.
type PageSizePrefs struct {
	kv storage.KV
}

func NewPageSizePrefs(kv storage.KV) *PageSizePrefs {
	return &PageSizePrefs{kv: kv}
}

func pageSizeKey(page string) string {
	return storage.Key("page-size", page)
}

// Get returns the stored size for page or DefaultPageSize.
func (p *PageSizePrefs) Get(ctx context.Context, page string) int {
	b, err := p.kv.Get(ctx, pageSizeKey(page))
	if err != nil {
		return DefaultPageSize
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return DefaultPageSize
	}
	return ValidPageSize(n)
}

func (p *PageSizePrefs) Set(ctx context.Context, page string, size int) (int, error) {
	size = ValidPageSize(size)
	return size, p.kv.Set(ctx, pageSizeKey(page), []byte(strconv.Itoa(size)))
}
