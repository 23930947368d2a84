package store

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/lehigh-university-libraries/nativeimport/metrics"
	"github.com/lehigh-university-libraries/nativeimport/model"
)

// CachedUserGroups caches user group lists per context with a TTL.
// Cached slices are shared; callers must not modify them.
type CachedUserGroups struct {
	next  UserGroupStore
	cache *expirable.LRU[int64, []*model.UserGroup]
}

// NewCachedUserGroups wraps next with an LRU of at most size contexts.
func NewCachedUserGroups(next UserGroupStore, size int, ttl time.Duration) *CachedUserGroups {
	return &CachedUserGroups{
		next:  next,
		cache: expirable.NewLRU[int64, []*model.UserGroup](size, nil, ttl),
	}
}

// UserGroupsByContextID returns cached groups or loads them from the wrapped store.
func (c *CachedUserGroups) UserGroupsByContextID(ctx context.Context, contextID int64) ([]*model.UserGroup, error) {
	if groups, ok := c.cache.Get(contextID); ok {
		metrics.UserGroupCacheHits.Inc()
		return groups, nil
	}
	metrics.UserGroupCacheMisses.Inc()

	groups, err := c.next.UserGroupsByContextID(ctx, contextID)
	if err != nil {
		return nil, err
	}
	c.cache.Add(contextID, groups)
	return groups, nil
}

// Invalidate drops the cached groups of a context.
func (c *CachedUserGroups) Invalidate(contextID int64) {
	c.cache.Remove(contextID)
}
