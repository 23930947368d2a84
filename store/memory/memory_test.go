package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/nativeimport/model"
	"github.com/lehigh-university-libraries/nativeimport/store"
)

const fixtureYAML = `
contexts:
  - id: 1
    path: jpk
    primary_locale: en_US
  - id: 2
    path: other
    primary_locale: fr_CA
submissions:
  - id: 42
    context_id: 1
    locale: en_US
    current_publication_id: 7
user_groups:
  - id: 14
    context_id: 1
    name:
      en_US: Author
      fr_CA: Auteur
  - id: 3
    context_id: 1
    name:
      en_US: Journal manager
  - id: 20
    context_id: 2
    name:
      en_US: Author
`

func TestParseFixture(t *testing.T) {
	s, err := ParseFixture([]byte(fixtureYAML))
	require.NoError(t, err)
	ctx := context.Background()

	sub, err := s.Submission(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "en_US", sub.Locale)
	assert.Equal(t, int64(7), sub.CurrentPublicationID())

	c, err := s.Context(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "fr_CA", c.PrimaryLocale)

	groups, err := s.UserGroupsByContextID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, int64(3), groups[0].ID, "groups must be ordered by id")
	assert.Equal(t, int64(14), groups[1].ID)
	assert.True(t, groups[1].HasName("Auteur"))
}

func TestParseFixtureUnknownContext(t *testing.T) {
	_, err := ParseFixture([]byte("submissions:\n  - id: 1\n    context_id: 9\n"))
	require.Error(t, err)
}

func TestLoadFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0644))

	s, err := LoadFixture(path)
	require.NoError(t, err)
	_, err = s.Submission(context.Background(), 42)
	require.NoError(t, err)

	_, err = LoadFixture(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestNotFound(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Submission(ctx, 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Context(ctx, 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestInsertAuthorAssignsIDs(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := s.NewDataObject()
	first.GivenName.Set("en_US", "Jane")
	id1, err := s.InsertAuthor(ctx, first)
	require.NoError(t, err)

	id2, err := s.InsertAuthor(ctx, model.NewAuthor())
	require.NoError(t, err)

	assert.Equal(t, int64(1), id1)
	assert.Equal(t, int64(2), id2)
	assert.Equal(t, id1, first.ID)

	got, ok := s.Author(id1)
	require.True(t, ok)
	assert.Equal(t, "Jane", got.GivenName.Get("en_US"))
	assert.Len(t, s.Authors(), 2)
}
