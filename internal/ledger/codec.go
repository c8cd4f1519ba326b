package ledger

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/farthing-dev/farthing/internal/model"
)

// exportVersion identifies the export document layout.
const exportVersion = 1

// Export is the portable JSON form of the ledger, used for backups and for
// moving data between machines.
type Export struct {
	Version      int                  `json:"version"`
	ExportedAt   time.Time            `json:"exportedAt"`
	Transactions []model.Transaction  `json:"transactions"`
	Accounts     []model.Account      `json:"accounts"`
	Categories   []model.Category     `json:"categories"`
	Rules        []model.CategoryRule `json:"rules"`
}

// WriteExport writes the snapshot as indented JSON.
func WriteExport(w io.Writer, snap model.Snapshot, now time.Time) error {
	doc := Export{
		Version:      exportVersion,
		ExportedAt:   now.UTC(),
		Transactions: snap.Transactions,
		Accounts:     snap.Accounts,
		Categories:   snap.Categories,
		Rules:        snap.Rules,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	return nil
}

// ReadExport parses an export document into a snapshot. Nothing is applied
// here; a corrupt or unsupported file errors out before the caller touches
// its current state.
func ReadExport(r io.Reader) (model.Snapshot, error) {
	var doc Export
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return model.Snapshot{}, fmt.Errorf("parsing export: %w", err)
	}
	if doc.Version != exportVersion {
		return model.Snapshot{}, fmt.Errorf("unsupported export version %d", doc.Version)
	}
	return model.Snapshot{
		Transactions: doc.Transactions,
		Accounts:     doc.Accounts,
		Categories:   doc.Categories,
		Rules:        doc.Rules,
	}, nil
}
