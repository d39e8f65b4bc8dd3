package page

import (
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/agentstation/starlist/pkg/catalogs"
	"github.com/agentstation/starlist/pkg/errors"
)

// DefaultSelector matches list links and the headings that group them.
const DefaultSelector = "h2, h3, li a[href]"

// Parser extracts links from an HTML page, typically an "awesome" list.
// The text of the closest preceding heading is attached to each item as a
// keyword, so that a section named "Themes" can categorize its links.
type Parser struct {
	// Base resolves relative links. Links that stay relative are dropped.
	Base *url.URL
	// Selector overrides DefaultSelector.
	Selector string
}

// Parse implements sources.Parser.
func (p Parser) Parse(r io.Reader) ([]catalogs.Item, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.WrapParse("html", "", err)
	}

	selector := p.Selector
	if selector == "" {
		selector = DefaultSelector
	}

	var (
		items   []catalogs.Item
		section string
	)
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		if goquery.NodeName(sel) != "a" {
			section = text(sel)
			return
		}

		href, _ := sel.Attr("href")
		link, ok := p.resolve(href)
		if !ok {
			return
		}
		title := text(sel)
		if title == "" {
			return
		}
		items = append(items, catalogs.NewItem(title, link, description(sel), section))
	})
	return items, nil
}

// resolve turns href into an absolute http(s) URL.
func (p Parser) resolve(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if p.Base != nil {
		u = p.Base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	u.Fragment = ""
	return u.String(), true
}

// description is the text of the list item around the link, minus the
// link itself and leading separators.
func description(a *goquery.Selection) string {
	li := a.Closest("li")
	if li.Length() == 0 {
		return ""
	}
	full := text(li)
	rest := strings.TrimSpace(strings.Replace(full, text(a), "", 1))
	return strings.TrimSpace(strings.TrimLeft(rest, "-–—:| "))
}

func text(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
