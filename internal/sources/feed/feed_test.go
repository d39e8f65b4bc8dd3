package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/starlist/pkg/catalogs"
	"github.com/agentstation/starlist/pkg/sources"
)

const rss = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Docs Weekly</title>
  <link>https://weekly.example.com</link>
  <description>News</description>
  <item>
    <title>Building docs with Starlight</title>
    <link>https://blog.example.com/starlight-docs</link>
    <description>&lt;p&gt;A &lt;b&gt;guide&lt;/b&gt; to docs.&lt;/p&gt;</description>
    <category>astro</category>
  </item>
  <item>
    <title>Starlight in 100 seconds</title>
    <link>https://www.youtube.com/watch?v=abc</link>
  </item>
  <item>
    <title>Unrelated post</title>
    <link>https://blog.example.com/other</link>
  </item>
  <item>
    <title>No link</title>
  </item>
</channel>
</rss>`

func TestParser(t *testing.T) {
	items, err := Parser{}.Parse(strings.NewReader(rss))
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "Building docs with Starlight", items[0].Title)
	assert.Equal(t, "A guide to docs.", items[0].Description)
	assert.Equal(t, []string{"astro"}, items[0].Keywords)

	_, err = Parser{}.Parse(strings.NewReader("not a feed"))
	assert.Error(t, err)
}

func TestCategorize(t *testing.T) {
	assert.Equal(t, catalogs.CategoryVideo, Categorize("https://www.youtube.com/watch?v=abc"))
	assert.Equal(t, catalogs.CategoryVideo, Categorize("https://youtu.be/abc"))
	assert.Equal(t, catalogs.CategoryVideo, Categorize("https://vimeo.com/123"))
	assert.Equal(t, catalogs.CategoryArticle, Categorize("https://notyoutube.com/x"))
	assert.Equal(t, catalogs.CategoryArticle, Categorize("https://blog.example.com"))
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rss.xml" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rss))
	}))
	defer srv.Close()

	src := New(WithURLs(srv.URL+"/rss.xml", srv.URL+"/missing.xml"), WithFilter("Starlight"))
	assert.Equal(t, sources.FeedID, src.ID())

	got, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, catalogs.CategoryArticle, got[0].Category)
	assert.Equal(t, catalogs.CategoryVideo, got[1].Category)
	assert.Equal(t, sources.FeedID, got[1].Source)
}

func TestFetchAllFeedsFail(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := New(WithURLs(srv.URL + "/a")).Fetch(context.Background())
	assert.Error(t, err)

	got, err := New().Fetch(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, got)
}
