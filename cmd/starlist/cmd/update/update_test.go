package update

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/starlist/internal/cmd/application"
	"github.com/agentstation/starlist/pkg/catalogs"
	"github.com/agentstation/starlist/pkg/constants"
	"github.com/agentstation/starlist/pkg/errors"
	"github.com/agentstation/starlist/pkg/sources"
)

type staticSource struct {
	candidates []sources.Candidate
	fetches    *int
}

func (s staticSource) ID() sources.ID { return sources.RegistryID }

func (s staticSource) Fetch(context.Context) ([]sources.Candidate, error) {
	if s.fetches != nil {
		*s.fetches++
	}
	return s.candidates, nil
}

func TestExecuteDryRunWithoutTarget(t *testing.T) {
	var out bytes.Buffer
	catalogPath := filepath.Join(t.TempDir(), "catalog.yaml")

	app := &application.Mock{
		StdoutFunc: func() io.Writer { return &out },
		SourcesFunc: func([]string) ([]sources.Source, error) {
			return []sources.Source{staticSource{candidates: []sources.Candidate{
				{Item: catalogs.NewItem("starlight-theme-nova", "https://github.com/acme/nova", ""), Source: sources.RegistryID},
				{Item: catalogs.NewItem("starlight-blog", "https://github.com/hideoo/starlight-blog", ""), Source: sources.RegistryID},
			}}}, nil
		},
	}

	err := Execute(context.Background(), app, &Flags{DryRun: true, Catalog: catalogPath})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "## Plugins")
	assert.Contains(t, out.String(), "## Themes")
	assert.Contains(t, out.String(), "[starlight-theme-nova](https://github.com/acme/nova)")
	assert.NoFileExists(t, catalogPath)
}

func TestExecuteSavesCatalog(t *testing.T) {
	catalogPath := filepath.Join(t.TempDir(), "catalog.yaml")

	app := &application.Mock{
		SourcesFunc: func([]string) ([]sources.Source, error) {
			return []sources.Source{staticSource{candidates: []sources.Candidate{
				{Item: catalogs.NewItem("Guide", "https://blog.dev/guide", ""), Category: catalogs.CategoryArticle, Source: sources.RegistryID},
			}}}, nil
		},
	}

	require.NoError(t, Execute(context.Background(), app, &Flags{Catalog: catalogPath}))

	cat, err := catalogs.Load(catalogPath)
	require.NoError(t, err)
	assert.Equal(t, 1, cat.Count(catalogs.CategoryArticle))
}

func TestExecuteMissingMarkerKeepsCatalog(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "catalog.yaml")
	targetPath := filepath.Join(dir, "README.md")
	original := "articles:\n  - title: Old\n    url: https://blog.dev/old\n"
	require.NoError(t, os.WriteFile(catalogPath, []byte(original), constants.FilePermissions))
	require.NoError(t, os.WriteFile(targetPath, []byte("# No markers\n"), constants.FilePermissions))

	fetches := 0
	app := &application.Mock{
		BaselineFunc: func(path string) (*catalogs.Catalog, error) { return catalogs.Load(path) },
		SourcesFunc: func([]string) ([]sources.Source, error) {
			return []sources.Source{staticSource{fetches: &fetches, candidates: []sources.Candidate{
				{Item: catalogs.NewItem("Guide", "https://blog.dev/guide", ""), Category: catalogs.CategoryArticle, Source: sources.RegistryID},
			}}}, nil
		},
	}

	err := Execute(context.Background(), app, &Flags{Catalog: catalogPath, Target: targetPath})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMarkerMissing)
	assert.Zero(t, fetches, "no origin is contacted when the target has no markers")

	data, err := os.ReadFile(catalogPath)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}
