package classifier

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"

	"github.com/agentstation/starlist/pkg/catalogs"
)

// ParseReply extracts categories for n items from a free-text reply. The
// first JSON object, or array holding at least one string, anywhere in the
// text is used: arrays are read by position, objects by the decimal index as
// key. Bracketed numbers in prose ("item [0]") are skipped. Missing or
// unknown labels become plugin. ok is false when the reply holds no usable
// JSON at all.
func ParseReply(reply string, n int) (labels []catalogs.Category, ok bool) {
	list, object, ok := firstJSON(reply)
	if !ok {
		return nil, false
	}

	labels = make([]catalogs.Category, n)
	for i := range labels {
		switch {
		case object != nil:
			labels[i] = Label(object[strconv.Itoa(i)])
		case i < len(list):
			labels[i] = Label(list[i])
		default:
			labels[i] = catalogs.CategoryPlugin
		}
	}
	return labels, true
}

// Label maps a service label onto theme, tool or plugin.
func Label(v any) catalogs.Category {
	s, _ := v.(string)
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "theme"):
		return catalogs.CategoryTheme
	case strings.Contains(s, "tool"):
		return catalogs.CategoryTool
	default:
		return catalogs.CategoryPlugin
	}
}

// firstJSON returns the first JSON value of s that can carry labels: an
// object, or an array with a string element.
func firstJSON(s string) (list []any, object map[string]any, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] != '{' && s[i] != '[' {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(s[i:]))
		var v any
		if err := dec.Decode(&v); err != nil {
			continue
		}
		switch v := v.(type) {
		case map[string]any:
			return nil, v, true
		case []any:
			if slices.ContainsFunc(v, isString) {
				return v, nil, true
			}
		}
	}
	return nil, nil, false
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}
