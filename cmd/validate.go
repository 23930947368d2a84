package cmd

import (
	"github.com/spf13/cobra"
)

var validateOpts = importOptions{dryRun: true}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check native XML authors without writing them",
	Long: `Map every <author> element exactly as import would, but skip the
database insert. Exits non-zero when any problem is recorded.

Examples:
  nativeimport validate --submission 42 -i authors.xml
  nativeimport validate --submission 42 --fixture seed.yaml -i authors.xml --format json --pretty`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd, validateOpts)
	},
}

func init() {
	addImportFlags(validateCmd, &validateOpts)
}
