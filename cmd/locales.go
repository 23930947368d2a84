package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/nativeimport/config"
)

var localesCmd = &cobra.Command{
	Use:   "locales",
	Short: "List supported locales",
	Long:  `List the locale codes problems can be reported for, with their display names.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		catalog, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		all := catalog.AllLocales()
		codes := make([]string, 0, len(all))
		for code := range all {
			codes = append(codes, code)
		}
		sort.Strings(codes)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Supported locales:")
		for _, code := range codes {
			marker := ""
			if code == catalog.UILocale() {
				marker = " (ui)"
			}
			fmt.Fprintf(out, "  %s - %s%s\n", code, all[code], marker)
		}
		return nil
	},
}
