package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/farthing-dev/farthing/internal/importer"
	"github.com/farthing-dev/farthing/internal/importlog"
	"github.com/farthing-dev/farthing/internal/pipeline"
	"github.com/farthing-dev/farthing/internal/reconcile"
	"github.com/farthing-dev/farthing/internal/review"
)

func newImportCommand(opts *rootOptions) *cobra.Command {
	var accountName string
	var onDuplicate string

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a bank statement CSV, or everything waiting in the inbox",
		Long: `Import parses a bank statement export, skips malformed rows, flags
potential duplicates against the ledger and categorizes what remains.

With a file argument only that file is imported. Without one, every
statement in <data-dir>/import/ is imported and moved to
import/processed/ afterwards.`,
		Args: cobra.MaximumNArgs(1),
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
			return runImport(cmd.OutOrStdout(), env, file, accountName, onDuplicate)
		},
	}

	cmd.Flags().StringVar(&accountName, "account", "", "account the statement belongs to (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&onDuplicate, "on-duplicate", "ask", "duplicate handling: ask, keep, add or merge")

	return cmd
}

// statementJob is one file queued for import. Inbox files are archived
// after a completed run; explicitly named files stay where they are.
type statementJob struct {
	path    string
	name    string
	inInbox bool
}

func runImport(out io.Writer, env *appEnv, file, accountName, onDuplicate string) error {
	account, ok := env.store.AccountByName(accountName)
	if !ok {
		return fmt.Errorf("unknown account %q, add it with \"farthing accounts add\"", accountName)
	}

	decider, err := deciderFor(onDuplicate, out)
	if err != nil {
		return err
	}

	var jobs []statementJob
	if file != "" {
		jobs = append(jobs, statementJob{path: file, name: filepath.Base(file)})
	} else {
		files, err := importer.Scan(env.dir)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintf(out, "Nothing to import in %s\n", filepath.Join(env.dir, "import"))
			return nil
		}
		for _, f := range files {
			jobs = append(jobs, statementJob{path: f.Path, name: f.Name, inInbox: true})
		}
	}

	p := pipeline.New(env.store, importer.DefaultRegistry(), decider, reconcile.Options{
		AmountTolerance:   decimal.NewFromFloat(env.cfg.Duplicates.Amount),
		DateToleranceDays: env.cfg.Duplicates.Days,
	})

	var entries []importlog.Entry
	for _, job := range jobs {
		res, err := p.Import(env.ctx(), job.path, account, env.cfg.Currency)
		if err != nil {
			return fmt.Errorf("%s: %w", job.name, err)
		}

		printImportSummary(out, job.name, res)

		entries = append(entries, importlog.Entry{
			Timestamp:  time.Now(),
			File:       job.name,
			Account:    account.Name,
			Parsed:     res.Parsed,
			Skipped:    res.Skips.Count(),
			Duplicates: res.Duplicates,
			Merged:     res.Merged,
			Kept:       res.Kept,
			Added:      len(res.Added),
		})

		// An abandoned review stays in the inbox so the flagged rows can
		// be revisited with a fresh run.
		if job.inInbox && !res.Abandoned {
			if err := importer.MarkProcessed(env.dir, job.name); err != nil {
				return err
			}
		}
	}

	if err := env.save(); err != nil {
		return err
	}

	if err := importlog.Append(env.dir, entries); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write import log: %v\n", err)
	}
	return nil
}

// deciderFor maps the --on-duplicate flag to a duplicate decider.
func deciderFor(mode string, out io.Writer) (review.Decider, error) {
	switch mode {
	case "ask":
		return review.NewPrompt(out), nil
	case "keep":
		return review.FixedDecider{Decision: reconcile.KeepExisting}, nil
	case "add":
		return review.FixedDecider{Decision: reconcile.AddAsNew}, nil
	case "merge":
		return review.FixedDecider{Decision: reconcile.Merge}, nil
	default:
		return nil, fmt.Errorf("unknown --on-duplicate mode %q", mode)
	}
}

func printImportSummary(out io.Writer, name string, res pipeline.Result) {
	color.New(color.Bold).Fprintln(out, name)

	fmt.Fprintf(out, "  parsed %d rows", res.Parsed)
	if n := res.Skips.Count(); n > 0 {
		fmt.Fprintf(out, ", skipped %d", n)
	}
	fmt.Fprintln(out)

	warn := color.New(color.FgYellow)
	for _, s := range res.Skips.Skips {
		warn.Fprintf(out, "    line %d: %s\n", s.Line, s.Reason)
	}

	if res.Duplicates > 0 {
		fmt.Fprintf(out, "  %d possible duplicates: %d merged, %d kept as existing\n",
			res.Duplicates, res.Merged, res.Kept)
	}
	if res.Abandoned {
		warn.Fprintln(out, "  review abandoned, unresolved candidates kept as existing")
	}

	fmt.Fprintf(out, "  added %d transactions\n", len(res.Added))
}
