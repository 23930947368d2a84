// Package cmd provides CLI commands for nativeimport.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var configFile string

func setupLogger() {
	logLevel := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "INFO"
	}

	var level slog.Level
	switch logLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	logger := slog.New(handler)

	slog.SetDefault(logger)
}

var rootCmd = &cobra.Command{
	Use:   "nativeimport",
	Short: "Import native XML author metadata into a publishing platform database",
	Long: `nativeimport reads the platform's native XML export format and writes
author records attached to a submission's current publication.

User groups are matched by name, localized fields honour the locale
attribute, and problems that do not prevent the import are reported
after the run.

Examples:
  nativeimport migrate
  nativeimport import --submission 42 -i authors.xml
  nativeimport validate --submission 42 -i authors.xml --format json
  nativeimport import --submission 42 --fixture seed.yaml < authors.xml`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	setupLogger()
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: ~/.nativeimport/config.yaml)")
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(localesCmd)
}
