package postgres

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/lehigh-university-libraries/nativeimport/model"
	"github.com/lehigh-university-libraries/nativeimport/store"
)

func TestMigrateURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/ojs?sslmode=disable", "pgx5://u:p@db:5432/ojs?sslmode=disable"},
		{"postgresql://u:p@db/ojs", "pgx5://u:p@db/ojs"},
		{"pgx5://u:p@db/ojs", "pgx5://u:p@db/ojs"},
	}
	for _, tt := range tests {
		if got := migrateURL(tt.in); got != tt.want {
			t.Errorf("migrateURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// setupTestDB starts PostgreSQL in a container and applies migrations.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("skipping integration test: TEST_INTEGRATION not set")
	}

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		tcpostgres.WithDatabase("nativeimport_test"),
		tcpostgres.WithUsername("nativeimport"),
		tcpostgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminating container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, Migrate(dsn, logger))
	// Second run is a no-op.
	require.NoError(t, Migrate(dsn, logger))

	pool, err := Connect(ctx, dsn, logger)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	seed := []string{
		`INSERT INTO journals (journal_id, path, primary_locale) VALUES (1, 'jpk', 'en_US')`,
		`INSERT INTO submissions (submission_id, context_id, locale) VALUES (42, 1, 'en_US')`,
		`INSERT INTO publications (publication_id, submission_id) VALUES (7, 42)`,
		`UPDATE submissions SET current_publication_id = 7 WHERE submission_id = 42`,
		`INSERT INTO user_groups (user_group_id, context_id) VALUES (14, 1), (3, 1), (99, 1)`,
		`INSERT INTO user_group_settings (user_group_id, locale, setting_name, setting_value) VALUES
			(14, 'en_US', 'name', 'Author'),
			(14, 'fr_CA', 'name', 'Auteur'),
			(14, 'en_US', 'abbrev', 'AU'),
			(3, 'en_US', 'name', 'Journal manager')`,
	}
	for _, q := range seed {
		_, err := pool.Exec(ctx, q)
		require.NoError(t, err, q)
	}

	return pool
}

func TestStoreIntegration(t *testing.T) {
	pool := setupTestDB(t)
	s := New(pool)
	ctx := context.Background()

	t.Run("submission and context", func(t *testing.T) {
		sub, err := s.Submission(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, int64(1), sub.ContextID)
		assert.Equal(t, int64(7), sub.CurrentPublicationID())

		c, err := s.Context(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "jpk", c.Path)

		_, err = s.Submission(ctx, 1000)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("user groups ordered with names", func(t *testing.T) {
		groups, err := s.UserGroupsByContextID(ctx, 1)
		require.NoError(t, err)
		require.Len(t, groups, 3)
		assert.Equal(t, []int64{3, 14, 99}, []int64{groups[0].ID, groups[1].ID, groups[2].ID})
		assert.True(t, groups[1].HasName("Auteur"))
		assert.False(t, groups[1].HasName("AU"), "only name settings are names")
		assert.Empty(t, groups[2].Names())
	})

	t.Run("insert and reload author", func(t *testing.T) {
		a := s.NewDataObject()
		a.PublicationID = 7
		a.PrimaryContact = true
		a.SetUserGroupID(14)
		a.GivenName.Set("en_US", "Jane")
		a.GivenName.Set("fr_CA", "Jeanne")
		a.FamilyName.Set("en_US", "Doe")
		a.Email = "j@x.org"
		a.ORCID = "https://orcid.org/0000-0001-2345-6789"
		a.Seq = 2

		id, err := s.InsertAuthor(ctx, a)
		require.NoError(t, err)
		assert.NotZero(t, id)
		assert.Equal(t, id, a.ID)

		got, err := s.Author(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, model.Localized{"en_US": "Jane", "fr_CA": "Jeanne"}, got.GivenName)
		assert.Equal(t, "Doe", got.FamilyName.Get("en_US"))
		assert.Equal(t, "j@x.org", got.Email)
		assert.Equal(t, a.ORCID, got.ORCID)
		assert.True(t, got.PrimaryContact)
		require.NotNil(t, got.UserGroupID)
		assert.Equal(t, int64(14), *got.UserGroupID)
		assert.Equal(t, 2, got.Seq)
	})

	t.Run("insert without user group", func(t *testing.T) {
		a := s.NewDataObject()
		a.PublicationID = 7
		id, err := s.InsertAuthor(ctx, a)
		require.NoError(t, err)

		got, err := s.Author(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, got.UserGroupID)
	})

	t.Run("insert failure rolls back", func(t *testing.T) {
		a := s.NewDataObject()
		a.PublicationID = 12345
		a.GivenName.Set("en_US", "Orphan")
		_, err := s.InsertAuthor(ctx, a)
		require.Error(t, err)
		assert.Zero(t, a.ID)

		var n int
		require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM author_settings WHERE setting_value = 'Orphan'`).Scan(&n))
		assert.Zero(t, n)
	})
}
