package catalogs

import (
	"slices"
	"strings"

	"github.com/agentstation/starlist/pkg/errors"
)

// Item is a candidate record describing an add-on, as handed over by an
// origin. Two items are never assumed equal by comparing fields; identity is
// decided by the matcher package.
type Item struct {
	Title       string   `yaml:"title" json:"title"`
	URL         string   `yaml:"url" json:"url"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Keywords    []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
}

// NewItem builds an item with trimmed fields. Keywords are treated as a set:
// blanks and repeats are dropped, first occurrence order is kept.
func NewItem(title, url, description string, keywords ...string) Item {
	item := Item{
		Title:       strings.TrimSpace(title),
		URL:         strings.TrimSpace(url),
		Description: strings.TrimSpace(description),
	}
	seen := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		item.Keywords = append(item.Keywords, k)
	}
	return item
}

// HasKeyword reports whether the item carries keyword k.
func (i Item) HasKeyword(k string) bool {
	return slices.Contains(i.Keywords, k)
}

// clone returns a copy that shares no memory with i.
func (i Item) clone() Item {
	i.Keywords = slices.Clone(i.Keywords)
	return i
}

// Entry is an item admitted into the catalog.
type Entry struct {
	Item     `yaml:",inline"`
	Category Category `yaml:"-" json:"category"`
}

// NewEntry admits item under category. Categories outside the closed set
// are rejected.
func NewEntry(item Item, category Category) (Entry, error) {
	if !category.IsValid() {
		return Entry{}, &errors.ValidationError{
			Field:   "category",
			Value:   string(category),
			Message: "unknown category " + `"` + string(category) + `"`,
		}
	}
	return Entry{Item: item.clone(), Category: category}, nil
}

// Verdict is the outcome of validating one URL.
type Verdict struct {
	URL  string `json:"url"`
	Live bool   `json:"live"`
}
