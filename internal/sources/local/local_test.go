package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/starlist/pkg/catalogs"
	"github.com/agentstation/starlist/pkg/errors"
	"github.com/agentstation/starlist/pkg/sources"
)

func TestFetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
themes:
  - title: Nova
    url: https://nova.dev
tools:
  - title: Snippets
    url: https://marketplace.visualstudio.com/items?itemName=x.snippets
`), 0o644))

	src := New(WithCatalogPath(path))
	assert.Equal(t, sources.LocalID, src.ID())

	got, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, catalogs.CategoryTheme, got[0].Category)
	assert.Equal(t, "Nova", got[0].Item.Title)
	assert.Equal(t, catalogs.CategoryTool, got[1].Category)
}

func TestFetchErrors(t *testing.T) {
	_, err := New().Fetch(context.Background())
	assert.True(t, errors.IsConfigError(err))

	_, err = New(WithCatalogPath(filepath.Join(t.TempDir(), "missing.yaml"))).Fetch(context.Background())
	assert.Error(t, err)
}
