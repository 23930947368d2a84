package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lehigh-university-libraries/nativeimport/config"
	"github.com/lehigh-university-libraries/nativeimport/locale"
	"github.com/lehigh-university-libraries/nativeimport/store"
	"github.com/lehigh-university-libraries/nativeimport/store/memory"
	"github.com/lehigh-university-libraries/nativeimport/store/postgres"
)

// environment bundles the collaborators an import run needs.
type environment struct {
	cfg         *config.Config
	catalog     *locale.Catalog
	authors     store.AuthorStore
	groups      store.UserGroupStore
	submissions store.SubmissionStore
	close       func()
}

func loadCatalog(cfg *config.Config) (*locale.Catalog, error) {
	catalog, err := locale.New(locale.Options{
		DefaultLocale: cfg.DefaultLocale,
		UILocale:      cfg.UILocale,
		Supported:     cfg.Locales,
	})
	if err != nil {
		return nil, fmt.Errorf("loading message catalogs: %w", err)
	}
	if cfg.CatalogDir != "" {
		if err := catalog.LoadFromDirectory(cfg.CatalogDir); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// openEnvironment loads configuration and opens the stores. A fixture file
// selects in-memory stores; otherwise the configured database is used.
func openEnvironment(ctx context.Context, fixture string, logger *slog.Logger) (*environment, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	env := &environment{cfg: cfg, catalog: catalog, close: func() {}}

	if fixture != "" {
		s, err := memory.LoadFixture(fixture)
		if err != nil {
			return nil, err
		}
		env.authors, env.groups, env.submissions = s, s, s
		logger.Debug("using fixture stores", "fixture", fixture)
	} else {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("no database configured: set database_url, NATIVEIMPORT_DATABASE_URL or --fixture")
		}
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		s := postgres.New(pool)
		env.authors, env.groups, env.submissions = s, s, s
		env.close = pool.Close
	}

	env.groups = store.NewCachedUserGroups(env.groups, cfg.Cache.Size, cfg.Cache.TTL)
	return env, nil
}
