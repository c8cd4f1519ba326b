package model

// Snapshot is a read-only copy of the full ledger state.
type Snapshot struct {
	Transactions []Transaction  `json:"transactions"`
	Accounts     []Account      `json:"accounts"`
	Categories   []Category     `json:"categories"`
	Rules        []CategoryRule `json:"rules"`
}

// Clone returns a copy with independent slices, so callers can hold a
// snapshot while the source keeps mutating.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Transactions: append([]Transaction(nil), s.Transactions...),
		Accounts:     append([]Account(nil), s.Accounts...),
		Categories:   append([]Category(nil), s.Categories...),
		Rules:        append([]CategoryRule(nil), s.Rules...),
	}
}

// PotentialDuplicate pairs an incoming statement row with the ledger
// transaction it appears to duplicate. Index is the row's position in the
// imported batch. Produced by duplicate detection, consumed one at a time
// during merge resolution, never persisted.
type PotentialDuplicate struct {
	Existing Transaction
	Incoming ImportedTransaction
	Index    int
}
