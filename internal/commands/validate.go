package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/farthing-dev/farthing/internal/ledger"
)

func newValidateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the ledger for referential and semantic problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.open()
			if err != nil {
				return err
			}
			defer env.Close()
			return runValidate(cmd.OutOrStdout(), env)
		},
	}
}

func runValidate(out io.Writer, env *appEnv) error {
	problems := ledger.Validate(env.store.Snapshot())
	if len(problems) == 0 {
		color.New(color.FgGreen).Fprintln(out, "Ledger is consistent")
		return nil
	}

	for _, p := range problems {
		fmt.Fprintln(out, p.Error())
	}
	return fmt.Errorf("%d validation problems", len(problems))
}
