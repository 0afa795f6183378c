package collector

import (
	"context"
	"fmt"
	"strings"

	"TempHarvest/internal/model"
)

// Fetcher defines the interface for fetching one month page.
type Fetcher interface {
	Fetch(ctx context.Context, url string, headers map[string]string) ([]byte, error)
	Name() string
}

// DefaultURLTemplate matches https://<host>/<city>/<YYYY><MM>.html.
const DefaultURLTemplate = "{base}/{city}/{year}{month}.html"

// URLBuilder expands a template for a month. Supported placeholders are
// {base}, {city}, {year} and {month} (zero-padded to two digits).
type URLBuilder struct {
	BaseURL  string
	City     string
	Template string
}

// URL returns the page address for key.
func (b URLBuilder) URL(key model.MonthKey) string {
	tmpl := b.Template
	if tmpl == "" {
		tmpl = DefaultURLTemplate
	}
	return strings.NewReplacer(
		"{base}", strings.TrimRight(b.BaseURL, "/"),
		"{city}", b.City,
		"{year}", fmt.Sprintf("%04d", key.Year),
		"{month}", fmt.Sprintf("%02d", key.Month),
	).Replace(tmpl)
}
