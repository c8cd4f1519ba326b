package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/farthing-dev/farthing/internal/classify"
	"github.com/farthing-dev/farthing/internal/importer"
	"github.com/farthing-dev/farthing/internal/ledger"
	"github.com/farthing-dev/farthing/internal/logger"
	"github.com/farthing-dev/farthing/internal/model"
	"github.com/farthing-dev/farthing/internal/reconcile"
	"github.com/farthing-dev/farthing/internal/review"
)

// Pipeline wires a statement import end to end: read the file, resolve
// columns for the account's bank, normalize rows, walk the duplicate
// queue through a Decider, classify the survivors and write everything
// to the store.
type Pipeline struct {
	store    *ledger.Store
	registry *importer.Registry
	decider  review.Decider
	dupOpts  reconcile.Options
}

// New creates a Pipeline. The decider is consulted once per potential
// duplicate; pass a review.FixedDecider for non-interactive runs.
func New(store *ledger.Store, registry *importer.Registry, decider review.Decider, dupOpts reconcile.Options) *Pipeline {
	return &Pipeline{
		store:    store,
		registry: registry,
		decider:  decider,
		dupOpts:  dupOpts,
	}
}

// Result summarizes one import run.
type Result struct {
	Parsed     int
	Skips      importer.SkipReport
	Duplicates int
	Merged     int
	Kept       int
	Added      []model.Transaction
	Abandoned  bool
}

// Import runs the full flow for one statement file against one account.
// The store is only mutated after every duplicate decision has been
// collected; on error the caller should discard the store without saving.
func (p *Pipeline) Import(ctx context.Context, path string, account model.Account, currency string) (Result, error) {
	log := logger.FromContext(ctx).With().Str("file", filepath.Base(path)).Str("account", account.Name).Logger()

	if !importer.IsSupportedFile(path) {
		return Result{}, fmt.Errorf("%w: %s", importer.ErrInvalidFileType, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	records, err := importer.ReadRecords(f)
	if err != nil {
		return Result{}, err
	}
	if len(records) == 0 {
		return Result{}, importer.ErrNoTransactions
	}

	mapping, err := p.registry.ResolveColumns(account.BankID, records[0])
	if err != nil {
		return Result{}, err
	}

	imported, skips, err := importer.Normalize(records, mapping)
	if err != nil {
		return Result{}, err
	}
	log.Info().Int("rows", len(imported)).Int("skipped", skips.Count()).Msg("parsed statement")

	snap := p.store.Snapshot()
	dups := reconcile.FindPotentialDuplicates(snap.Transactions, imported, account.ID, p.dupOpts)

	result := Result{
		Parsed:     len(imported),
		Skips:      *skips,
		Duplicates: len(dups),
	}

	session := reconcile.NewSession(dups)
	for {
		dup, ok := session.Next()
		if !ok {
			break
		}
		decision, err := p.decider.Decide(dup)
		if errors.Is(err, review.ErrAbandoned) {
			session.Abandon()
			result.Abandoned = true
			log.Info().Msg("duplicate review abandoned, keeping existing entries")
			break
		}
		if err != nil {
			return Result{}, err
		}
		if err := session.Resolve(decision); err != nil {
			return Result{}, err
		}
	}

	patches := session.Patches()
	survivors := session.Survivors(imported)
	result.Merged = len(patches)
	result.Kept = (len(imported) - len(survivors)) - len(patches)

	classifier := classify.New(log)
	txns := make([]model.Transaction, 0, len(survivors))
	for _, in := range survivors {
		txType, categoryID := classifier.Classify(in, snap.Rules, snap.Categories)
		txns = append(txns, model.Transaction{
			Date:         in.Date,
			Description:  in.Description,
			Amount:       in.Amount,
			Currency:     currency,
			CategoryID:   categoryID,
			AccountID:    account.ID,
			Type:         txType,
			OriginalData: in.Raw,
		})
	}

	result.Added = p.store.AddTransactions(txns)
	for _, patch := range patches {
		date := patch.Date
		desc := patch.Description
		if _, err := p.store.UpdateTransaction(patch.TransactionID, ledger.TransactionPatch{
			Date:        &date,
			Description: &desc,
		}); err != nil {
			return Result{}, err
		}
	}

	log.Info().
		Int("added", len(result.Added)).
		Int("merged", result.Merged).
		Int("kept", result.Kept).
		Msg("import complete")
	return result, nil
}
