package catalogs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/starlist/pkg/constants"
	"github.com/agentstation/starlist/pkg/errors"
)

// Load reads a catalog from a YAML file keyed by plural category names:
//
//	themes:
//	  - title: Nova
//	    url: https://nova.dev
//	plugins: []
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, errors.WrapResource("load", "catalog", path, err)
	}
	return cat, nil
}

// Parse decodes the YAML form of a catalog. Unknown top-level keys are an error.
func Parse(data []byte) (*Catalog, error) {
	var doc map[string][]Item
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}

	cat := New()
	for key, items := range doc {
		category, ok := ParseCategory(key)
		if !ok {
			return nil, errors.NewValidationError("category", key, "unknown catalog section "+`"`+key+`"`)
		}
		for _, item := range items {
			entry, err := NewEntry(NewItem(item.Title, item.URL, item.Description, item.Keywords...), category)
			if err != nil {
				return nil, err
			}
			cat.entries[category] = append(cat.entries[category], entry)
		}
	}
	return cat, nil
}

// MarshalYAML renders the catalog with sections in display order.
// Empty categories are omitted.
func (c *Catalog) MarshalYAML() ([]byte, error) {
	doc := yaml.MapSlice{}
	for _, category := range Categories() {
		entries := c.entries[category]
		if len(entries) == 0 {
			continue
		}
		items := make([]Item, len(entries))
		for i, e := range entries {
			items[i] = e.Item
		}
		doc = append(doc, yaml.MapItem{Key: category.Plural(), Value: items})
	}

	data, err := yaml.MarshalWithOptions(doc,
		yaml.Indent(2),
		yaml.IndentSequence(true),
	)
	if err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}
	return data, nil
}

// Save writes the catalog to path, creating parent directories.
// The file is replaced atomically.
func (c *Catalog) Save(path string) error {
	data, err := c.MarshalYAML()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))+"-*.yaml")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.WrapIO("write", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("close", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("chmod", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("move", path, err)
	}
	return nil
}
