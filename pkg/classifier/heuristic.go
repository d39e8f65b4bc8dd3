package classifier

import (
	"strings"

	"github.com/agentstation/starlist/pkg/catalogs"
)

// toolWords mark an add-on that lives outside the site build.
var toolWords = []string{"vscode", "vs code", "cli", "generator"}

// Fallback categorizes items by keyword, without any service.
func Fallback(items []catalogs.Item) []catalogs.Category {
	out := make([]catalogs.Category, len(items))
	for i, item := range items {
		out[i] = Guess(item)
	}
	return out
}

// Guess returns theme when the name or description mentions "theme", tool
// when they mention an editor, CLI or generator, and plugin otherwise.
func Guess(item catalogs.Item) catalogs.Category {
	name := strings.ToLower(item.Title)
	text := name + " " + strings.ToLower(item.Description)

	if strings.Contains(text, "theme") {
		return catalogs.CategoryTheme
	}
	for _, w := range toolWords {
		if strings.Contains(text, w) {
			return catalogs.CategoryTool
		}
	}
	return catalogs.CategoryPlugin
}
