package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/starlist/pkg/sources"
)

func object(name, repo, homepage, description string, keywords ...string) map[string]any {
	return map[string]any{
		"package": map[string]any{
			"name":        name,
			"description": description,
			"keywords":    keywords,
			"links": map[string]any{
				"npm":        "https://www.npmjs.com/package/" + name,
				"homepage":   homepage,
				"repository": repo,
			},
		},
	}
}

func TestFetch(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/-/v1/search", r.URL.Path)
		queries = append(queries, r.URL.Query().Get("text"))
		from, _ := strconv.Atoi(r.URL.Query().Get("from"))

		var objects []any
		switch from {
		case 0:
			objects = []any{
				object("starlight-blog", "https://github.com/HiDeoo/starlight-blog", "https://starlight-blog.dev", "Blog plugin", "starlight-plugin", "blog", "blog"),
				object("starlight-theme-nova", "", "https://nova.dev", "A theme"),
			}
		case 2:
			objects = []any{
				object("starlight-links", "", "", "Links"),
				object("starlight-blog", "https://github.com/HiDeoo/starlight-blog", "", "repeated"),
			}
		default:
			t.Errorf("unexpected page from=%d", from)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"objects": objects, "total": 4})
	}))
	defer srv.Close()

	src := New(WithBaseURL(srv.URL), WithPageSize(2), WithQuery("keywords:starlight"))
	assert.Equal(t, sources.RegistryID, src.ID())

	got, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "starlight-blog", got[0].Item.Title)
	assert.Equal(t, "https://github.com/HiDeoo/starlight-blog", got[0].Item.URL)
	assert.Equal(t, []string{"starlight-plugin", "blog"}, got[0].Item.Keywords)
	assert.False(t, got[0].Categorized())
	assert.Equal(t, sources.RegistryID, got[0].Source)

	assert.Equal(t, "https://nova.dev", got[1].Item.URL)
	assert.Equal(t, "https://www.npmjs.com/package/starlight-links", got[2].Item.URL)
	assert.Equal(t, []string{"keywords:starlight", "keywords:starlight"}, queries)
}

func TestFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, "down")
	}))
	defer srv.Close()

	_, err := New(WithBaseURL(srv.URL)).Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry")
}
