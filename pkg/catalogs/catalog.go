// Package catalogs defines the add-on catalog: the closed set of categories,
// candidate items, admitted entries and the per-category ordered catalog,
// together with its YAML persistence.
//
// A Catalog is not safe for concurrent mutation. The pipeline only touches
// it after every concurrent fetch and validation has joined.
package catalogs

import (
	"slices"
)

// Catalog maps each category to its ordered entries. Within a run it is
// append-only: nothing admitted is ever removed.
type Catalog struct {
	entries map[Category][]Entry
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{entries: make(map[Category][]Entry)}
}

// Entries returns a copy of the entries of category c, in catalog order.
func (c *Catalog) Entries(category Category) []Entry {
	return slices.Clone(c.entries[category])
}

// All returns every entry, categories in display order.
func (c *Catalog) All() []Entry {
	var all []Entry
	for _, category := range Categories() {
		all = append(all, c.entries[category]...)
	}
	return all
}

// Append adds e at the end of its category.
func (c *Catalog) Append(e Entry) error {
	checked, err := NewEntry(e.Item, e.Category)
	if err != nil {
		return err
	}
	c.entries[checked.Category] = append(c.entries[checked.Category], checked)
	return nil
}

// Count returns the number of entries in category c.
func (c *Catalog) Count(category Category) int {
	return len(c.entries[category])
}

// Len returns the total number of entries.
func (c *Catalog) Len() int {
	n := 0
	for _, entries := range c.entries {
		n += len(entries)
	}
	return n
}

// SortStable reorders the entries of one category. Order is a display
// concern, so reordering does not violate the append-only rule.
func (c *Catalog) SortStable(category Category, cmp func(a, b Entry) int) {
	slices.SortStableFunc(c.entries[category], cmp)
}

// Clone returns a deep copy of the catalog.
func (c *Catalog) Clone() *Catalog {
	out := New()
	for category, entries := range c.entries {
		cloned := make([]Entry, len(entries))
		for i, e := range entries {
			cloned[i] = Entry{Item: e.Item.clone(), Category: e.Category}
		}
		out.entries[category] = cloned
	}
	return out
}
