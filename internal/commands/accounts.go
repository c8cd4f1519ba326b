package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newAccountsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage bank accounts",
	}
	cmd.AddCommand(newAccountsAddCommand(opts))
	cmd.AddCommand(newAccountsListCommand(opts))
	cmd.AddCommand(newAccountsRemoveCommand(opts))
	return cmd
}

func newAccountsAddCommand(opts *rootOptions) *cobra.Command {
	var bank string
	var colorName string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a bank account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.open()
			if err != nil {
				return err
			}
			defer env.Close()
			return runAccountsAdd(cmd.OutOrStdout(), env, args[0], colorName, bank)
		},
	}

	cmd.Flags().StringVar(&bank, "bank", "other", "institution layout: cba, ing or other")
	cmd.Flags().StringVar(&colorName, "color", "", "display color")

	return cmd
}

func runAccountsAdd(out io.Writer, env *appEnv, name, colorName, bank string) error {
	account, err := env.store.AddAccount(name, colorName, bank)
	if err != nil {
		return err
	}
	if err := env.save(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Added account %q (bank: %s)\n", account.Name, account.BankID)
	return nil
}

func newAccountsListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.open()
			if err != nil {
				return err
			}
			defer env.Close()
			return runAccountsList(cmd.OutOrStdout(), env)
		},
	}
}

func runAccountsList(out io.Writer, env *appEnv) error {
	snap := env.store.Snapshot()
	if len(snap.Accounts) == 0 {
		fmt.Fprintln(out, "No accounts yet")
		return nil
	}

	counts := make(map[string]int)
	for _, t := range snap.Transactions {
		counts[t.AccountID]++
	}
	for _, a := range snap.Accounts {
		fmt.Fprintf(out, "%-24s bank=%-6s %d transactions\n", a.Name, a.BankID, counts[a.ID])
	}
	return nil
}

func newAccountsRemoveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove an account, leaving its transactions in place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.open()
			if err != nil {
				return err
			}
			defer env.Close()
			return runAccountsRemove(cmd.OutOrStdout(), env, args[0])
		},
	}
}

func runAccountsRemove(out io.Writer, env *appEnv, name string) error {
	account, ok := env.store.AccountByName(name)
	if !ok {
		return fmt.Errorf("unknown account %q", name)
	}
	if err := env.store.RemoveAccount(account.ID); err != nil {
		return err
	}
	if err := env.save(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Removed account %q; its transactions stay in the ledger\n", account.Name)
	return nil
}
