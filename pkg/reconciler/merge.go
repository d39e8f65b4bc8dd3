package reconciler

import (
	"context"
	"strings"

	"golang.org/x/text/cases"

	"github.com/agentstation/starlist/pkg/catalogs"
	"github.com/agentstation/starlist/pkg/logging"
	"github.com/agentstation/starlist/pkg/matcher"
)

// Merge appends to category every item that does not match an entry already
// there, including entries appended earlier by the same call. Identity is
// matcher.Match under the category's policy. Nothing is ever removed.
// It returns the number of items added.
func Merge(ctx context.Context, cat *catalogs.Catalog, items []catalogs.Item, category catalogs.Category) (int, error) {
	logger := logging.FromContext(ctx)

	added := 0
	for _, item := range items {
		if i, tier := matcher.FindIn(cat.Entries(category), item, category); i >= 0 {
			logger.Debug().
				Str("category", category.String()).
				Str("title", item.Title).
				Str("url", item.URL).
				Stringer("tier", tier).
				Msg("skipping duplicate")
			continue
		}

		if err := cat.Append(catalogs.Entry{Item: item, Category: category}); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

var folder = cases.Fold()

// SortKey returns the key entries are ordered by: the case-folded title,
// or the name part of a scoped "@scope/name" package title.
func SortKey(title string) string {
	title = strings.TrimSpace(title)
	if strings.HasPrefix(title, "@") {
		if _, name, ok := strings.Cut(title, "/"); ok && name != "" {
			title = name
		}
	}
	return folder.String(title)
}

// Sort orders every category by SortKey. Ties keep their order.
func Sort(cat *catalogs.Catalog) {
	for _, category := range catalogs.Categories() {
		cat.SortStable(category, func(a, b catalogs.Entry) int {
			return strings.Compare(SortKey(a.Title), SortKey(b.Title))
		})
	}
}
