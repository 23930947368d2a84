package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/nativeimport/config"
	"github.com/lehigh-university-libraries/nativeimport/store/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("no database configured: set database_url or NATIVEIMPORT_DATABASE_URL")
		}
		return postgres.Migrate(cfg.DatabaseURL, slog.Default())
	},
}
