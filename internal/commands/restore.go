package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/farthing-dev/farthing/internal/ledger"
)

func newRestoreCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <file>",
		Short: "Replace the ledger with the contents of a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.open()
			if err != nil {
				return err
			}
			defer env.Close()
			return runRestore(cmd.OutOrStdout(), env, args[0])
		},
	}
}

func runRestore(out io.Writer, env *appEnv, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("opening export file: %w", err)
	}
	defer f.Close()

	// The export is fully parsed before anything is written, so a corrupt
	// file leaves the ledger untouched.
	snap, err := ledger.ReadExport(f)
	if err != nil {
		return err
	}

	if err := env.db.Save(snap); err != nil {
		return err
	}

	fmt.Fprintf(out, "Restored %s from %s\n", describeSnapshot(snap), file)
	return nil
}
