package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/starlist/pkg/catalogs"
)

type stub struct {
	id   ID
	name string
}

func (s stub) ID() ID { return s.id }

func (s stub) Fetch(context.Context) ([]Candidate, error) { return nil, nil }

func TestSourcesKeepInsertionOrder(t *testing.T) {
	srcs := NewSources(stub{id: FeedID}, stub{id: RegistryID}, stub{id: PageID})
	assert.Equal(t, []ID{FeedID, RegistryID, PageID}, srcs.IDs())

	srcs.Add(stub{id: RegistryID, name: "replacement"})
	assert.Equal(t, 3, srcs.Len())
	assert.Equal(t, []ID{FeedID, RegistryID, PageID}, srcs.IDs())

	got, ok := srcs.Get(RegistryID)
	assert.True(t, ok)
	assert.Equal(t, "replacement", got.(stub).name)

	list := srcs.List()
	assert.Equal(t, FeedID, list[0].ID())
}

func TestCandidateCategorized(t *testing.T) {
	assert.False(t, Candidate{}.Categorized())
	assert.True(t, Candidate{Category: catalogs.CategoryTheme}.Categorized())
}
