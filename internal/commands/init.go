package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/farthing-dev/farthing/internal/config"
	"github.com/farthing-dev/farthing/internal/ledger"
	"github.com/farthing-dev/farthing/internal/model"
)

func newInitCommand(opts *rootOptions) *cobra.Command {
	var currency string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new farthing ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := opts.dataDir()
			if err != nil {
				return err
			}
			return runInit(cmd.OutOrStdout(), dir, currency)
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "AUD", "default currency for imported transactions")

	return cmd
}

func runInit(out io.Writer, dir, currency string) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already contains a farthing ledger", dir)
	}

	dirs := []string{
		"logs",
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(cfgPath, config.Default(currency)); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	db, err := ledger.Open(filepath.Join(dir, dbFile))
	if err != nil {
		return err
	}
	defer db.Close()

	snap := model.Snapshot{Categories: ledger.DefaultCategories()}
	if err := db.Save(snap); err != nil {
		return err
	}

	fmt.Fprintf(out, "Initialized farthing ledger at %s\n", dir)
	fmt.Fprintf(out, "Drop bank statements into %s and run \"farthing import\"\n", filepath.Join(dir, "import"))
	return nil
}
