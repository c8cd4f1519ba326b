package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/farthing-dev/farthing/internal/ledger"
	"github.com/farthing-dev/farthing/internal/model"
)

func newExportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the full ledger as JSON, to a file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.open()
			if err != nil {
				return err
			}
			defer env.Close()

			file := ""
			if len(args) > 0 {
				file = args[0]
			}
			return runExport(cmd.OutOrStdout(), env, file)
		},
	}
}

func runExport(out io.Writer, env *appEnv, file string) error {
	snap := env.store.Snapshot()

	if file == "" {
		return ledger.WriteExport(out, snap, time.Now())
	}

	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if err := ledger.WriteExport(f, snap, time.Now()); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}

	fmt.Fprintf(out, "Exported %s to %s\n", describeSnapshot(snap), file)
	return nil
}

func describeSnapshot(snap model.Snapshot) string {
	return fmt.Sprintf("%d transactions, %d accounts, %d categories, %d rules",
		len(snap.Transactions), len(snap.Accounts), len(snap.Categories), len(snap.Rules))
}
