package showcase

import (
	"bytes"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/starlist/pkg/catalogs"
	"github.com/agentstation/starlist/pkg/errors"
)

// entry is one showcase record. Files hold either a single record or a list.
type entry struct {
	Title       string   `yaml:"title"`
	URL         string   `yaml:"url"`
	Description string   `yaml:"description"`
	Categories  []string `yaml:"categories"`
}

// Parser reads showcase YAML. Categories become item keywords.
type Parser struct{}

// Parse implements sources.Parser. Records without a title or URL are dropped.
func (Parser) Parse(r io.Reader) ([]catalogs.Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapIO("read", "showcase document", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var records []entry
	if bytes.HasPrefix(data, []byte("-")) {
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, errors.WrapParse("yaml", "", err)
		}
	} else {
		var single entry
		if err := yaml.Unmarshal(data, &single); err != nil {
			return nil, errors.WrapParse("yaml", "", err)
		}
		records = []entry{single}
	}

	items := make([]catalogs.Item, 0, len(records))
	for _, rec := range records {
		item := catalogs.NewItem(rec.Title, rec.URL, rec.Description, rec.Categories...)
		if item.Title == "" || item.URL == "" {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}
