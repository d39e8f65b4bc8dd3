// Package normalize derives comparison keys from free-form titles and URLs.
// Every function is pure and total: no I/O, no errors, same output for the
// same input.
package normalize

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// codeHosts are the hosts whose URLs carry an <owner>/<repo> path.
var codeHosts = map[string]bool{
	"github.com":    true,
	"gitlab.com":    true,
	"codeberg.org":  true,
	"bitbucket.org": true,
}

// themeNoise lists the substrings removed by ThemeKey, longest first so
// "docs" is stripped before "doc".
var themeNoise = []string{"starlight", "theme", "astro", "docs", "doc"}

var (
	schemePrefix = regexp.MustCompile(`^[a-z][a-z0-9+.-]*://`)
	separators   = regexp.MustCompile(`[\s._/-]+`)
)

// URL lower-cases u, trims surrounding whitespace and strips the trailing
// slash. Repeated slashes are stripped too so that URL(URL(u)) == URL(u).
func URL(u string) string {
	u = strings.ToLower(strings.TrimSpace(u))
	return strings.TrimRightFunc(u, func(r rune) bool {
		return r == '/' || unicode.IsSpace(r)
	})
}

// Repo returns the owner and repository name of a GitHub repository URL.
func Repo(u string) (owner, name string, ok bool) {
	host, owner, name, ok := repoParts(u)
	if !ok || host != "github.com" {
		return "", "", false
	}
	return owner, name, true
}

// RepoSlug returns the repository name of a URL on a known code host, or
// "" when the URL does not have the <host>/<owner>/<repo> shape.
func RepoSlug(u string) string {
	_, _, name, ok := repoParts(u)
	if !ok {
		return ""
	}
	return name
}

// repoParts splits a code host URL into host, owner and repository name,
// all lower-cased. A trailing ".git" is removed from the name.
func repoParts(raw string) (host, owner, name string, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", "", false
	}
	// git+https://github.com/... as found in registry metadata
	raw = strings.TrimPrefix(raw, "git+")
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", "", "", false
	}

	host = strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	if !codeHosts[host] {
		return "", "", "", false
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 2 || segments[0] == "" || segments[1] == "" {
		return "", "", "", false
	}

	owner = strings.ToLower(segments[0])
	name = strings.ToLower(strings.TrimSuffix(segments[1], ".git"))
	if name == "" {
		return "", "", "", false
	}
	return host, owner, name, true
}

// ThemeKey reduces text to a fuzzy identity key for visual themes. A demo
// site URL, a repository URL and a package name of the same theme usually
// collapse to the same key, e.g. "Starlight Theme Galaxy" and
// "starlight-galaxy-theme" both become "galaxy".
func ThemeKey(text string) string {
	key := strings.ToLower(strings.TrimSpace(text))
	key = schemePrefix.ReplaceAllString(key, "")
	key = strings.TrimPrefix(key, "www.")

	for _, noise := range themeNoise {
		key = strings.ReplaceAll(key, noise, "")
	}
	key = separators.ReplaceAllString(key, "-")

	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, key)
}
