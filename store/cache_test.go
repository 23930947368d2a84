package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/nativeimport/model"
)

type countingGroups struct {
	calls  map[int64]int
	groups map[int64][]*model.UserGroup
	err    error
}

func (c *countingGroups) UserGroupsByContextID(_ context.Context, contextID int64) ([]*model.UserGroup, error) {
	c.calls[contextID]++
	if c.err != nil {
		return nil, c.err
	}
	return c.groups[contextID], nil
}

func TestCachedUserGroupsHitsStoreOncePerContext(t *testing.T) {
	backing := &countingGroups{
		calls: map[int64]int{},
		groups: map[int64][]*model.UserGroup{
			1: {{ID: 14, ContextID: 1, Name: model.Localized{"en_US": "Author"}}},
			2: {{ID: 30, ContextID: 2, Name: model.Localized{"en_US": "Translator"}}},
		},
	}
	cached := NewCachedUserGroups(backing, 8, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		groups, err := cached.UserGroupsByContextID(ctx, 1)
		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, int64(14), groups[0].ID)
	}
	_, err := cached.UserGroupsByContextID(ctx, 2)
	require.NoError(t, err)

	assert.Equal(t, 1, backing.calls[1])
	assert.Equal(t, 1, backing.calls[2])

	cached.Invalidate(1)
	_, err = cached.UserGroupsByContextID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, backing.calls[1])
}

func TestCachedUserGroupsDoesNotCacheErrors(t *testing.T) {
	boom := errors.New("connection reset")
	backing := &countingGroups{calls: map[int64]int{}, err: boom}
	cached := NewCachedUserGroups(backing, 8, time.Minute)

	_, err := cached.UserGroupsByContextID(context.Background(), 1)
	require.ErrorIs(t, err, boom)

	backing.err = nil
	_, err = cached.UserGroupsByContextID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, backing.calls[1])
}

func TestDryRunNeverWrites(t *testing.T) {
	d := DryRun{}
	a := model.NewAuthor()

	id, err := d.InsertAuthor(context.Background(), a)
	require.NoError(t, err)
	assert.Zero(t, id)
	assert.Zero(t, a.ID)
}
