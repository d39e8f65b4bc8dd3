package feed

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/agentstation/starlist/pkg/catalogs"
	"github.com/agentstation/starlist/pkg/errors"
)

// maxDescription caps descriptions taken from feed summaries.
const maxDescription = 280

// Parser reads RSS, Atom and JSON feeds. Feed categories become keywords.
type Parser struct{}

// Parse implements sources.Parser. Entries without a title or link are dropped.
func (Parser) Parse(r io.Reader) ([]catalogs.Item, error) {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, errors.WrapParse("feed", "", err)
	}

	items := make([]catalogs.Item, 0, len(feed.Items))
	for _, it := range feed.Items {
		if it == nil {
			continue
		}
		item := catalogs.NewItem(it.Title, it.Link, plainText(it.Description), it.Categories...)
		if item.Title == "" || item.URL == "" {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// plainText strips markup from a feed summary and shortens it.
func plainText(html string) string {
	if html == "" {
		return ""
	}
	text := html
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")

	if runes := []rune(text); len(runes) > maxDescription {
		text = strings.TrimSpace(string(runes[:maxDescription])) + "…"
	}
	return text
}
