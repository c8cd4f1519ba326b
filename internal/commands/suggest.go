package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/farthing-dev/farthing/internal/ledger"
	"github.com/farthing-dev/farthing/internal/model"
	"github.com/farthing-dev/farthing/internal/suggest"
)

func newSuggestCommand(opts *rootOptions) *cobra.Command {
	var apply bool
	var minConfidence float64
	var useAI bool

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest categories for uncategorized transactions",
		Long: `Suggest trains a naive Bayes classifier on the descriptions of already
categorized transactions and ranks category guesses for the rest. With
--ai, candidates are instead sent to the configured Claude model for
review; the API key is read from ANTHROPIC_API_KEY.

Suggestions are printed only. Pass --apply to write the ones at or above
--min-confidence back to the ledger.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.open()
			if err != nil {
				return err
			}
			defer env.Close()
			return runSuggest(cmd.OutOrStdout(), env, apply, minConfidence, useAI)
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "write suggestions at or above --min-confidence to the ledger")
	cmd.Flags().Float64Var(&minConfidence, "min-confidence", 0.7, "confidence required to apply a suggestion")
	cmd.Flags().BoolVar(&useAI, "ai", false, "review candidates with the configured AI model")

	return cmd
}

func runSuggest(out io.Writer, env *appEnv, apply bool, minConfidence float64, useAI bool) error {
	snap := env.store.Snapshot()

	classifier, err := suggest.Train(snap.Transactions)
	if errors.Is(err, suggest.ErrNotEnoughHistory) {
		fmt.Fprintln(out, "Not enough categorized history to learn from; categorize a few transactions first")
		return nil
	}
	if err != nil {
		return err
	}

	var candidates []suggest.Candidate
	for _, t := range snap.Transactions {
		if t.CategoryID != "" {
			continue
		}
		candidates = append(candidates, suggest.Candidate{
			Transaction: t,
			Hints:       classifier.Suggest(t.Description, 3),
		})
	}
	if len(candidates) == 0 {
		fmt.Fprintln(out, "No uncategorized transactions")
		return nil
	}

	if useAI {
		return runSuggestAI(out, env, snap.Categories, candidates, apply, minConfidence)
	}

	names := make(map[string]string, len(snap.Categories))
	for _, c := range snap.Categories {
		names[c.ID] = c.Name
	}

	applied := 0
	for _, cand := range candidates {
		printCandidate(out, cand.Transaction)
		if len(cand.Hints) == 0 {
			fmt.Fprintln(out, "    no suggestion")
			continue
		}
		for i, h := range cand.Hints {
			fmt.Fprintf(out, "    %d. %s (%.0f%%)\n", i+1, names[h.CategoryID], h.Confidence*100)
		}

		if apply && cand.Hints[0].Confidence >= minConfidence {
			categoryID := cand.Hints[0].CategoryID
			if _, err := env.store.UpdateTransaction(cand.Transaction.ID, ledger.TransactionPatch{CategoryID: &categoryID}); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(out, "    applied %s\n", names[categoryID])
			applied++
		}
	}

	return finishApply(out, env, apply, applied, len(candidates))
}

func runSuggestAI(out io.Writer, env *appEnv, categories []model.Category, candidates []suggest.Candidate, apply bool, minConfidence float64) error {
	if !env.cfg.AI.Enabled {
		return errors.New("ai review is disabled, set ai.enabled in farthing.yaml")
	}
	reviewer, err := suggest.NewReviewer(env.cfg.AI.Model, int64(env.cfg.AI.MaxTokens))
	if err != nil {
		return err
	}

	assignments, err := reviewer.Review(env.ctx(), categories, candidates)
	if err != nil {
		return err
	}

	applied := 0
	for i, a := range assignments {
		printCandidate(out, candidates[i].Transaction)
		if a.Category == "" {
			fmt.Fprintln(out, "    no suggestion")
			continue
		}
		fmt.Fprintf(out, "    %s (%.0f%%) %s\n", a.Category, a.Confidence*100, a.Reasoning)

		if apply && a.Confidence >= minConfidence {
			// Names outside the ledger's category set are shown but
			// never written back.
			cat, ok := env.store.CategoryByName(a.Category)
			if !ok {
				continue
			}
			categoryID := cat.ID
			if _, err := env.store.UpdateTransaction(candidates[i].Transaction.ID, ledger.TransactionPatch{CategoryID: &categoryID}); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(out, "    applied %s\n", cat.Name)
			applied++
		}
	}

	return finishApply(out, env, apply, applied, len(candidates))
}

func printCandidate(out io.Writer, t model.Transaction) {
	fmt.Fprintf(out, "%s  %10s  %s\n", t.Date.Format("2006-01-02"), t.Amount.StringFixed(2), t.Description)
}

func finishApply(out io.Writer, env *appEnv, apply bool, applied, total int) error {
	if !apply {
		return nil
	}
	if err := env.save(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Applied %d of %d suggestions\n", applied, total)
	return nil
}
