package author

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/nativeimport/deployment"
	"github.com/lehigh-university-libraries/nativeimport/model"
	"github.com/lehigh-university-libraries/nativeimport/native"
)

func TestImportAuthorsDocument(t *testing.T) {
	fx := newFixture(t)
	registry := native.NewRegistry()
	registry.Register(fx.filter)
	im := native.NewImporter(registry, nil)

	file, err := os.Open("testdata/authors.xml")
	require.NoError(t, err)
	defer file.Close()

	objs, err := im.Import(context.Background(), fx.deployment, file)
	require.NoError(t, err)
	require.Len(t, objs, 3)

	authors := fx.store.Authors()
	require.Len(t, authors, 3)

	jane := objs[0].(*model.Author)
	assert.Equal(t, "Jeanne", jane.GivenName.Get("fr_CA"))
	assert.Equal(t, "<p>Jane studies metadata.</p>", jane.Biography.Get("en_US"))
	assert.True(t, jane.PrimaryContact)
	assert.Equal(t, 0, jane.Seq)

	pierre := objs[1].(*model.Author)
	require.NotNil(t, pierre.UserGroupID)
	assert.Equal(t, int64(15), *pierre.UserGroupID)
	assert.False(t, pierre.PrimaryContact)
	assert.Equal(t, 1, pierre.Seq)

	anon := objs[2].(*model.Author)
	assert.Nil(t, anon.UserGroupID)
	assert.Equal(t, 2, anon.Seq)

	assert.Equal(t, 1, fx.deployment.Count(deployment.CodeUnknownUserGroup))
	assert.Equal(t, 1, fx.deployment.Count(deployment.CodeMissingGivenName))
	assert.Len(t, fx.deployment.ProcessedObjects(deployment.AssocTypeAuthor), 3)
}
