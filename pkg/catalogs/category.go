package catalogs

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is the closed set of kinds an entry can belong to.
// The zero value means "uncategorized" and is only meaningful on a
// candidate that has not been classified yet.
type Category string

// Category values.
const (
	CategoryPlugin   Category = "plugin"
	CategoryTheme    Category = "theme"
	CategoryTool     Category = "tool"
	CategoryShowcase Category = "showcase"
	CategoryArticle  Category = "article"
	CategoryVideo    Category = "video"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{
		CategoryPlugin,
		CategoryTheme,
		CategoryTool,
		CategoryShowcase,
		CategoryArticle,
		CategoryVideo,
	}
}

// ParseCategory maps a label onto a category. Singular and plural forms are
// accepted, case-insensitively.
func ParseCategory(s string) (Category, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSuffix(s, "s")
	c := Category(s)
	return c, c.IsValid()
}

// IsValid reports whether c is one of the six categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryPlugin, CategoryTheme, CategoryTool, CategoryShowcase, CategoryArticle, CategoryVideo:
		return true
	}
	return false
}

// String returns the string representation of a category.
func (c Category) String() string {
	return string(c)
}

// Plural returns the plural label used as YAML key, e.g. "themes".
func (c Category) Plural() string {
	return string(c) + "s"
}

// Title returns the heading used when rendering, e.g. "Themes".
func (c Category) Title() string {
	return cases.Title(language.English).String(c.Plural())
}
