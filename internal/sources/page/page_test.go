package page

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/starlist/pkg/catalogs"
	"github.com/agentstation/starlist/pkg/sources"
)

const awesome = `<!doctype html>
<html><body>
<h1>Awesome Starlight</h1>
<nav><a href="/about">About</a></nav>
<h2>Themes</h2>
<ul>
  <li><a href="https://github.com/x/starlight-theme-nova">Nova</a> - A calm theme.</li>
  <li><a href="#top">Back to top</a></li>
</ul>
<h2>Community</h2>
<ul>
  <li><a href="https://github.com/hideoo/starlight-blog#readme">starlight-blog</a>: Add a blog.</li>
  <li><a href="/local">Local page</a></li>
  <li><a href="mailto:hi@example.com">Mail</a></li>
</ul>
</body></html>`

func TestParser(t *testing.T) {
	base, _ := url.Parse("https://awesome.example.com/list")
	items, err := Parser{Base: base}.Parse(strings.NewReader(awesome))
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "Nova", items[0].Title)
	assert.Equal(t, "https://github.com/x/starlight-theme-nova", items[0].URL)
	assert.Equal(t, "A calm theme.", items[0].Description)
	assert.Equal(t, []string{"Themes"}, items[0].Keywords)

	assert.Equal(t, "https://github.com/hideoo/starlight-blog", items[1].URL, "fragment is dropped")
	assert.Equal(t, "Add a blog.", items[1].Description)
	assert.Equal(t, []string{"Community"}, items[1].Keywords)

	assert.Equal(t, "https://awesome.example.com/local", items[2].URL)
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/awesome" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(awesome))
	}))
	defer srv.Close()

	src := New(WithURLs(srv.URL + "/awesome"))
	assert.Equal(t, sources.PageID, src.ID())

	got, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2, "links to the page's own host are ignored")

	assert.Equal(t, catalogs.CategoryTheme, got[0].Category)
	assert.False(t, got[1].Categorized())
}

func TestFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := New(WithURLs(srv.URL + "/x")).Fetch(context.Background())
	assert.Error(t, err)
}
