package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newCategoriesCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage transaction categories",
	}
	cmd.AddCommand(newCategoriesAddCommand(opts))
	cmd.AddCommand(newCategoriesListCommand(opts))
	cmd.AddCommand(newCategoriesRemoveCommand(opts))
	return cmd
}

func newCategoriesAddCommand(opts *rootOptions) *cobra.Command {
	var colorName string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.open()
			if err != nil {
				return err
			}
			defer env.Close()
			return runCategoriesAdd(cmd.OutOrStdout(), env, args[0], colorName)
		},
	}

	cmd.Flags().StringVar(&colorName, "color", "", "display color")

	return cmd
}

func runCategoriesAdd(out io.Writer, env *appEnv, name, colorName string) error {
	cat, err := env.store.AddCategory(name, colorName)
	if err != nil {
		return err
	}
	if err := env.save(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Added category %q\n", cat.Name)
	return nil
}

func newCategoriesListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.open()
			if err != nil {
				return err
			}
			defer env.Close()
			return runCategoriesList(cmd.OutOrStdout(), env)
		},
	}
}

func runCategoriesList(out io.Writer, env *appEnv) error {
	snap := env.store.Snapshot()
	if len(snap.Categories) == 0 {
		fmt.Fprintln(out, "No categories yet")
		return nil
	}

	counts := make(map[string]int)
	for _, t := range snap.Transactions {
		if t.CategoryID != "" {
			counts[t.CategoryID]++
		}
	}
	for _, c := range snap.Categories {
		fmt.Fprintf(out, "%-24s %d transactions\n", c.Name, counts[c.ID])
	}
	return nil
}

func newCategoriesRemoveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a category, uncategorizing its transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.open()
			if err != nil {
				return err
			}
			defer env.Close()
			return runCategoriesRemove(cmd.OutOrStdout(), env, args[0])
		},
	}
}

func runCategoriesRemove(out io.Writer, env *appEnv, name string) error {
	cat, ok := env.store.CategoryByName(name)
	if !ok {
		return fmt.Errorf("unknown category %q", name)
	}

	// Counted before removal so the summary can say what was detached.
	snap := env.store.Snapshot()
	var detached, droppedRules int
	for _, t := range snap.Transactions {
		if t.CategoryID == cat.ID {
			detached++
		}
	}
	for _, r := range snap.Rules {
		if r.CategoryID == cat.ID {
			droppedRules++
		}
	}

	if err := env.store.RemoveCategory(cat.ID); err != nil {
		return err
	}
	if err := env.save(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Removed category %q: %d transactions uncategorized, %d rules dropped\n",
		cat.Name, detached, droppedRules)
	return nil
}
