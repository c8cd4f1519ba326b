package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/farthing-dev/farthing/internal/model"
)

func newRulesCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage categorization rules",
		Long: `Rules assign categories to imported transactions by matching their
descriptions. They are tried top to bottom and the first match wins, so
order matters; use "rules mv" to reprioritize.`,
	}
	cmd.AddCommand(newRulesListCommand(opts))
	cmd.AddCommand(newRulesAddCommand(opts))
	cmd.AddCommand(newRulesRemoveCommand(opts))
	cmd.AddCommand(newRulesMoveCommand(opts))
	return cmd
}

func newRulesListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rules in evaluation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.open()
			if err != nil {
				return err
			}
			defer env.Close()
			return runRulesList(cmd.OutOrStdout(), env)
		},
	}
}

func runRulesList(out io.Writer, env *appEnv) error {
	snap := env.store.Snapshot()
	if len(snap.Rules) == 0 {
		fmt.Fprintln(out, "No rules yet")
		return nil
	}

	names := make(map[string]string, len(snap.Categories))
	for _, c := range snap.Categories {
		names[c.ID] = c.Name
	}
	for i, r := range snap.Rules {
		pattern := r.Pattern
		if r.CaseSensitive {
			pattern += " (case-sensitive)"
		}
		fmt.Fprintf(out, "%3d. [%s] %s -> %s (%s)\n",
			i+1, r.MatchType, pattern, names[r.CategoryID], r.TargetType)
	}
	return nil
}

func newRulesAddCommand(opts *rootOptions) *cobra.Command {
	var categoryName string
	var match string
	var target string
	var caseSensitive bool

	cmd := &cobra.Command{
		Use:   "add <pattern>",
		Short: "Add a rule at the end of the list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.open()
			if err != nil {
				return err
			}
			defer env.Close()
			return runRulesAdd(cmd.OutOrStdout(), env, args[0], categoryName, match, target, caseSensitive)
		},
	}

	cmd.Flags().StringVar(&categoryName, "category", "", "category to assign (required)")
	_ = cmd.MarkFlagRequired("category")
	cmd.Flags().StringVar(&match, "match", "contains", "match type: contains or regex")
	cmd.Flags().StringVar(&target, "type", "ALL", "transaction type the rule targets: INCOME, EXPENSE, TRANSFER or ALL")
	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "match case exactly")

	return cmd
}

func runRulesAdd(out io.Writer, env *appEnv, pattern, categoryName, match, target string, caseSensitive bool) error {
	cat, ok := env.store.CategoryByName(categoryName)
	if !ok {
		return fmt.Errorf("unknown category %q", categoryName)
	}

	rule, err := env.store.AddRule(model.CategoryRule{
		MatchType:     model.MatchType(match),
		Pattern:       pattern,
		CategoryID:    cat.ID,
		TargetType:    model.TransactionType(strings.ToUpper(target)),
		CaseSensitive: caseSensitive,
	})
	if err != nil {
		return err
	}
	if err := env.save(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Added rule: [%s] %s -> %s\n", rule.MatchType, rule.Pattern, cat.Name)
	return nil
}

func newRulesRemoveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <position>",
		Short: "Remove the rule at a list position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.open()
			if err != nil {
				return err
			}
			defer env.Close()
			return runRulesRemove(cmd.OutOrStdout(), env, args[0])
		},
	}
}

func runRulesRemove(out io.Writer, env *appEnv, position string) error {
	snap := env.store.Snapshot()
	i, err := parsePosition(position, len(snap.Rules))
	if err != nil {
		return err
	}

	rule := snap.Rules[i]
	if err := env.store.RemoveRule(rule.ID); err != nil {
		return err
	}
	if err := env.save(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Removed rule %d: [%s] %s\n", i+1, rule.MatchType, rule.Pattern)
	return nil
}

func newRulesMoveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <from> <to>",
		Short: "Move a rule to a new list position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.open()
			if err != nil {
				return err
			}
			defer env.Close()
			return runRulesMove(cmd.OutOrStdout(), env, args[0], args[1])
		},
	}
}

func runRulesMove(out io.Writer, env *appEnv, fromArg, toArg string) error {
	snap := env.store.Snapshot()
	from, err := parsePosition(fromArg, len(snap.Rules))
	if err != nil {
		return err
	}
	to, err := parsePosition(toArg, len(snap.Rules))
	if err != nil {
		return err
	}
	if from == to {
		return nil
	}

	ids := make([]string, 0, len(snap.Rules))
	for _, r := range snap.Rules {
		ids = append(ids, r.ID)
	}
	id := ids[from]
	ids = append(ids[:from], ids[from+1:]...)
	ids = append(ids[:to], append([]string{id}, ids[to:]...)...)

	env.store.ReorderRules(ids)
	if err := env.save(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Moved rule %d to position %d\n", from+1, to+1)
	return nil
}

// parsePosition converts a 1-based list position argument to a slice index.
func parsePosition(arg string, n int) (int, error) {
	pos, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q", arg)
	}
	if pos < 1 || pos > n {
		return 0, fmt.Errorf("position %d out of range 1-%d", pos, n)
	}
	return pos - 1, nil
}
