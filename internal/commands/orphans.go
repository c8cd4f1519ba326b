package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/farthing-dev/farthing/internal/reconcile"
)

func newOrphansCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "orphans",
		Short: "List transfers with no counterpart in another account",
		Long: `Orphans scans TRANSFER transactions for ones missing an opposite-signed
counterpart in a different account within the configured date and amount
tolerances. A transfer without a counterpart usually means the other
account's statement has not been imported yet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.open()
			if err != nil {
				return err
			}
			defer env.Close()
			return runOrphans(cmd.OutOrStdout(), env)
		},
	}
}

func runOrphans(out io.Writer, env *appEnv) error {
	snap := env.store.Snapshot()

	orphanIDs := reconcile.DetectOrphanTransfers(
		snap.Transactions,
		env.cfg.Transfers.Days,
		decimal.NewFromFloat(env.cfg.Transfers.Amount),
	)
	if len(orphanIDs) == 0 {
		fmt.Fprintln(out, "No orphan transfers")
		return nil
	}

	accountNames := make(map[string]string, len(snap.Accounts))
	for _, a := range snap.Accounts {
		accountNames[a.ID] = a.Name
	}
	orphans := make(map[string]bool, len(orphanIDs))
	for _, id := range orphanIDs {
		orphans[id] = true
	}

	color.New(color.FgYellow, color.Bold).Fprintf(out, "%d orphan transfers\n", len(orphanIDs))
	for _, t := range snap.Transactions {
		if !orphans[t.ID] {
			continue
		}
		name := accountNames[t.AccountID]
		if name == "" {
			name = t.AccountID
		}
		fmt.Fprintf(out, "  %s  %10s  %-20s %s\n",
			t.Date.Format("2006-01-02"), t.Amount.StringFixed(2), name, t.Description)
	}
	return nil
}
