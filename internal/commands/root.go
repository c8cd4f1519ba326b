package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/farthing-dev/farthing/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "farthing",
		Short:   "Import bank statements into a categorized personal ledger",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.dir, "dir", "", "data directory (default $FARTHING_DIR or ~/.farthing)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(newInitCommand(opts))
	rootCmd.AddCommand(newImportCommand(opts))
	rootCmd.AddCommand(newAccountsCommand(opts))
	rootCmd.AddCommand(newCategoriesCommand(opts))
	rootCmd.AddCommand(newRulesCommand(opts))
	rootCmd.AddCommand(newOrphansCommand(opts))
	rootCmd.AddCommand(newSuggestCommand(opts))
	rootCmd.AddCommand(newValidateCommand(opts))
	rootCmd.AddCommand(newExportCommand(opts))
	rootCmd.AddCommand(newRestoreCommand(opts))

	return rootCmd
}
