// Package render writes the catalog as markdown and injects it into a
// document between the starlist sentinel markers.
package render

import (
	"io"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/starlist/pkg/catalogs"
	"github.com/agentstation/starlist/pkg/errors"
)

// Markdown renders every non-empty category as a level-2 heading followed
// by a bullet list of links, in display order.
func Markdown(w io.Writer, cat *catalogs.Catalog) error {
	doc := md.NewMarkdown(w)
	for _, category := range catalogs.Categories() {
		entries := cat.Entries(category)
		if len(entries) == 0 {
			continue
		}
		bullets := make([]string, len(entries))
		for i, e := range entries {
			bullets[i] = bullet(e)
		}
		doc.H2(category.Title()).LF().BulletList(bullets...).LF()
	}
	if err := doc.Build(); err != nil {
		return errors.WrapIO("write", "markdown", err)
	}
	return nil
}

// String renders the catalog to a string.
func String(cat *catalogs.Catalog) (string, error) {
	var b strings.Builder
	if err := Markdown(&b, cat); err != nil {
		return "", err
	}
	return strings.TrimSpace(b.String()), nil
}

func bullet(e catalogs.Entry) string {
	line := md.Link(escape(e.Title), escapeURL(e.URL))
	if e.Description != "" {
		line += " - " + oneLine(e.Description)
	}
	return line
}

// escape keeps brackets in titles from closing the link text early.
func escape(s string) string {
	return strings.NewReplacer("[", `\[`, "]", `\]`).Replace(s)
}

// escapeURL percent-encodes the characters that end a markdown link target.
func escapeURL(s string) string {
	return strings.NewReplacer(" ", "%20", "(", "%28", ")", "%29").Replace(s)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
