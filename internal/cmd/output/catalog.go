package output

import (
	"strconv"

	"github.com/agentstation/starlist/internal/cmd/emoji"
	"github.com/agentstation/starlist/pkg/catalogs"
)

// maxCell caps the width of free-text cells in tables.
const maxCell = 60

// EntriesToTableData lays out catalog entries, one row each.
func EntriesToTableData(entries []catalogs.Entry) Data {
	data := Data{Headers: []string{"CATEGORY", "TITLE", "URL", "DESCRIPTION"}}
	for _, e := range entries {
		data.Rows = append(data.Rows, []string{e.Category.String(), e.Title, e.URL, clip(e.Description)})
	}
	return data
}

// VerdictsToTableData lays out validation verdicts.
func VerdictsToTableData(verdicts []catalogs.Verdict) Data {
	data := Data{Headers: []string{"URL", "STATUS"}}
	for _, v := range verdicts {
		status := emoji.Error + " dead"
		if v.Live {
			status = emoji.Success + " live"
		}
		data.Rows = append(data.Rows, []string{v.URL, status})
	}
	return data
}

// Classification pairs an item with the category it was given.
type Classification struct {
	Title    string            `json:"title" yaml:"title"`
	URL      string            `json:"url,omitempty" yaml:"url,omitempty"`
	Category catalogs.Category `json:"category" yaml:"category"`
}

// ClassificationsToTableData lays out classifier output.
func ClassificationsToTableData(rows []Classification) Data {
	data := Data{Headers: []string{"TITLE", "URL", "CATEGORY"}}
	for _, r := range rows {
		data.Rows = append(data.Rows, []string{r.Title, r.URL, r.Category.String()})
	}
	return data
}

// CountsToTableData lays out per-category counts in display order.
func CountsToTableData(counts map[catalogs.Category]int) Data {
	data := Data{Headers: []string{"CATEGORY", "COUNT"}}
	for _, c := range catalogs.Categories() {
		data.Rows = append(data.Rows, []string{c.Plural(), strconv.Itoa(counts[c])})
	}
	return data
}

func clip(s string) string {
	r := []rune(s)
	if len(r) <= maxCell {
		return s
	}
	return string(r[:maxCell-1]) + "…"
}
