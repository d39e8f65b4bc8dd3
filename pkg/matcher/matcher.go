// Package matcher decides when two catalog items denote the same add-on.
//
// Three predicates are provided, from strict to loose:
//
//   - IsDuplicate: same normalized URL or same repository name.
//   - IsSameTitle: same title, ignoring case.
//   - IsLikelySameTheme: the fuzzy theme keys of the two items overlap.
//
// IsDuplicate applies to every category. The two looser predicates are only
// meaningful for themes, where the same project is often listed once by its
// demo site and once by its repository.
package matcher

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/agentstation/starlist/pkg/catalogs"
	"github.com/agentstation/starlist/pkg/normalize"
)

// Tier reports which predicate matched two items.
type Tier int

const (
	// TierNone means the items are distinct.
	TierNone Tier = iota
	// TierExact means the URLs or repository names are equal.
	TierExact
	// TierTitle means the titles are equal ignoring case.
	TierTitle
	// TierFuzzy means the theme keys overlap.
	TierFuzzy
)

// String returns the tier name used in log fields.
func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierTitle:
		return "title"
	case TierFuzzy:
		return "fuzzy"
	default:
		return "none"
	}
}

var folder = cases.Fold()

// IsDuplicate reports whether a and b have equal non-empty normalized URLs
// or equal non-empty repository names.
func IsDuplicate(a, b catalogs.Item) bool {
	if ua := normalize.URL(a.URL); ua != "" && ua == normalize.URL(b.URL) {
		return true
	}
	if sa := normalize.RepoSlug(a.URL); sa != "" && sa == normalize.RepoSlug(b.URL) {
		return true
	}
	return false
}

// IsSameTitle reports whether the trimmed titles of a and b are non-empty
// and equal under case folding.
func IsSameTitle(a, b catalogs.Item) bool {
	ta := folder.String(strings.TrimSpace(a.Title))
	if ta == "" {
		return false
	}
	return ta == folder.String(strings.TrimSpace(b.Title))
}

// IsLikelySameTheme compares the theme keys of each item's title and
// repository name. Any non-empty pair where one key contains the other is a
// match, so "Nova" and github.com/x/starlight-theme-nova are the same theme.
func IsLikelySameTheme(a, b catalogs.Item) bool {
	for _, ka := range themeKeys(a) {
		for _, kb := range themeKeys(b) {
			if strings.Contains(ka, kb) || strings.Contains(kb, ka) {
				return true
			}
		}
	}
	return false
}

// themeKeys returns the non-empty theme keys of the item's title and slug.
func themeKeys(item catalogs.Item) []string {
	keys := make([]string, 0, 2)
	if k := normalize.ThemeKey(item.Title); k != "" {
		keys = append(keys, k)
	}
	if k := normalize.ThemeKey(normalize.RepoSlug(item.URL)); k != "" {
		keys = append(keys, k)
	}
	return keys
}

// Match applies the policy of category and returns the tier that matched.
// Only themes use the title and fuzzy tiers.
func Match(a, b catalogs.Item, category catalogs.Category) Tier {
	if IsDuplicate(a, b) {
		return TierExact
	}
	if category != catalogs.CategoryTheme {
		return TierNone
	}
	if IsSameTitle(a, b) {
		return TierTitle
	}
	if IsLikelySameTheme(a, b) {
		return TierFuzzy
	}
	return TierNone
}

// FindIn returns the index of the first entry of existing that matches item
// under the policy of category, with the tier that matched, or -1.
func FindIn(existing []catalogs.Entry, item catalogs.Item, category catalogs.Category) (int, Tier) {
	for i, e := range existing {
		if tier := Match(e.Item, item, category); tier != TierNone {
			return i, tier
		}
	}
	return -1, TierNone
}
