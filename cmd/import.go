package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/nativeimport/deployment"
	"github.com/lehigh-university-libraries/nativeimport/metrics"
	"github.com/lehigh-university-libraries/nativeimport/native"
	"github.com/lehigh-university-libraries/nativeimport/native/author"
	"github.com/lehigh-university-libraries/nativeimport/report"
	"github.com/lehigh-university-libraries/nativeimport/store"
)

type importOptions struct {
	input        string
	submissionID int64
	fixture      string
	format       string
	pretty       bool
	dryRun       bool
}

var importOpts importOptions

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import authors from native XML",
	Long: `Import <author> elements into the current publication of a submission.

The document root may be <authors> or a single <author>.
Input defaults to stdin.

Examples:
  nativeimport import --submission 42 -i authors.xml
  cat authors.xml | nativeimport import --submission 42 --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, importOpts)
	},
}

func addImportFlags(cmd *cobra.Command, opts *importOptions) {
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Input file (default: stdin)")
	cmd.Flags().Int64VarP(&opts.submissionID, "submission", "s", 0, "Target submission id")
	cmd.Flags().StringVar(&opts.fixture, "fixture", "", "YAML fixture to use instead of the database")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Report format (text, json)")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Pretty-print JSON report")
	_ = cmd.MarkFlagRequired("submission")
}

func init() {
	addImportFlags(importCmd, &importOpts)
}

func runImport(cmd *cobra.Command, opts importOptions) (err error) {
	ctx := cmd.Context()
	logger := slog.Default()

	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown report format %q", opts.format)
	}

	var input io.Reader
	if opts.input != "" {
		f, err := os.Open(opts.input)
		if err != nil {
			return fmt.Errorf("opening input file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing input file: %w", cerr)
			}
		}()
		input = f
	} else {
		input = cmd.InOrStdin()
	}

	env, err := openEnvironment(ctx, opts.fixture, logger)
	if err != nil {
		return err
	}
	defer env.close()

	submission, err := env.submissions.Submission(ctx, opts.submissionID)
	if err != nil {
		return fmt.Errorf("loading submission: %w", err)
	}
	journal, err := env.submissions.Context(ctx, submission.ContextID)
	if err != nil {
		return fmt.Errorf("loading context: %w", err)
	}

	d := deployment.New(journal, submission)
	logger = logger.With("deployment", d.ID.String())

	authors := env.authors
	if opts.dryRun {
		authors = store.DryRun{AuthorStore: authors}
	}

	registry := native.NewRegistry()
	registry.Register(author.New(authors, env.groups, env.catalog, logger))

	objects, err := native.NewImporter(registry, logger).Import(ctx, d, input)
	if err != nil {
		return fmt.Errorf("importing: %w", err)
	}

	summary := report.Build(d, objects, opts.dryRun)
	out := cmd.OutOrStdout()
	if opts.format == "json" {
		err = summary.WriteJSON(out, opts.pretty)
	} else {
		err = summary.WriteText(out)
	}
	if err != nil {
		return err
	}

	if env.cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(env.cfg.MetricsTextfile); err != nil {
			logger.Warn("metrics not written", "error", err)
		}
	}

	if opts.dryRun && d.HasErrors() {
		return fmt.Errorf("validation found %d problems", len(d.Errors()))
	}
	return nil
}
