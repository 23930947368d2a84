// Package metrics defines Prometheus counters for native imports.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthorsImported counts author records inserted.
	AuthorsImported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nativeimport_authors_imported_total",
		Help: "Author records inserted by native imports.",
	})

	// Problems counts non-fatal problems recorded, by code.
	Problems = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nativeimport_problems_total",
		Help: "Non-fatal problems recorded during native imports.",
	}, []string{"code"})

	// UserGroupCacheHits counts user group lookups served from cache.
	UserGroupCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nativeimport_user_group_cache_hits_total",
		Help: "User group lookups served from the in-memory cache.",
	})

	// UserGroupCacheMisses counts user group lookups that reached the store.
	UserGroupCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nativeimport_user_group_cache_misses_total",
		Help: "User group lookups that reached the backing store.",
	})
)

// WriteTextfile writes the default registry in text exposition format,
// for the node exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
