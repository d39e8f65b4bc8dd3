package classifier

import (
	"fmt"
	"strings"

	"github.com/agentstation/starlist/pkg/catalogs"
)

// SystemInstruction describes the three categories to the service.
const SystemInstruction = `You categorize add-ons for the Starlight documentation framework.

Every add-on is exactly one of:
- "theme": changes the visual appearance of a Starlight site (colors, fonts, layout skins).
  Examples: "starlight-theme-rapide", "Catppuccin for Starlight", "starlight-theme-nova".
- "plugin": extends Starlight behavior at build or run time through its plugin API or
  Astro integrations (sidebars, blogs, search, link validation, diagrams).
  Examples: "starlight-blog", "starlight-links-validator", "starlight-image-zoom".
- "tool": stands outside the site build: editor extensions, CLIs, generators, converters,
  templates and other developer utilities.
  Examples: "Starlight VS Code snippets", "create-starlight-docs CLI", "docs generator".

Rules:
- A package that only ships CSS or a color scheme is a theme, even if it uses the plugin API.
- A package that adds components or pages is a plugin, even if it also ships styles.
- When unsure between plugin and tool, prefer plugin.

Reply with a JSON object mapping each item index to its category, for example:
{"0": "plugin", "1": "theme", "2": "tool"}`

// Prompt lists the items, one per line, as "i. name | url | description".
func Prompt(items []catalogs.Item) string {
	var b strings.Builder
	b.WriteString("Categorize these add-ons:\n\n")
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s | %s | %s\n", i, oneLine(item.Title), oneLine(item.URL), oneLine(item.Description))
	}
	return b.String()
}

// oneLine keeps an item on its own line of the prompt.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
