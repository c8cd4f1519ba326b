package reconcile

import (
	"errors"
	"fmt"
	"time"

	"github.com/farthing-dev/farthing/internal/model"
)

// Decision is the caller's resolution for one potential duplicate.
type Decision int

const (
	// Merge overwrites the existing transaction's date and description
	// with the incoming statement values, keeping user-entered fields.
	Merge Decision = iota
	// KeepExisting discards the incoming candidate.
	KeepExisting
	// AddAsNew inserts the incoming row alongside the existing one.
	AddAsNew
)

// MergePatch carries the fields a merge decision copies onto an existing
// transaction. Category, notes and account assignments stay as they are.
type MergePatch struct {
	TransactionID string
	Date          time.Time
	Description   string
}

// Session walks a queue of potential duplicates one at a time, collecting
// a decision for each. Merge and keep-existing consume the incoming row's
// index so it is excluded from the final insert; add-as-new leaves it in.
type Session struct {
	queue    []model.PotentialDuplicate
	cursor   int
	consumed map[int]bool
	patches  []MergePatch
}

// NewSession creates a Session over the detected duplicates.
func NewSession(duplicates []model.PotentialDuplicate) *Session {
	return &Session{queue: duplicates, consumed: make(map[int]bool)}
}

// Next returns the current unresolved candidate, or false when the queue
// is exhausted.
func (s *Session) Next() (model.PotentialDuplicate, bool) {
	s.skipConsumed()
	if s.cursor >= len(s.queue) {
		return model.PotentialDuplicate{}, false
	}
	return s.queue[s.cursor], true
}

// Resolve applies the decision for the current candidate and advances the
// queue.
func (s *Session) Resolve(d Decision) error {
	s.skipConsumed()
	if s.cursor >= len(s.queue) {
		return errors.New("no unresolved candidate")
	}
	item := s.queue[s.cursor]
	switch d {
	case Merge:
		s.patches = append(s.patches, MergePatch{
			TransactionID: item.Existing.ID,
			Date:          item.Incoming.Date,
			Description:   item.Incoming.Description,
		})
		s.consumed[item.Index] = true
	case KeepExisting:
		s.consumed[item.Index] = true
	case AddAsNew:
		// Stays unconsumed and is inserted as an independent transaction.
	default:
		return fmt.Errorf("unknown decision %d", d)
	}
	s.cursor++
	return nil
}

// Abandon resolves the current and all remaining candidates as
// keep-existing. Closing the prompt mid-queue must not insert rows the
// user never ruled on.
func (s *Session) Abandon() {
	for s.cursor < len(s.queue) {
		s.consumed[s.queue[s.cursor].Index] = true
		s.cursor++
	}
}

// Done reports whether every candidate has been resolved.
func (s *Session) Done() bool {
	s.skipConsumed()
	return s.cursor >= len(s.queue)
}

// Patches returns the merge patches collected so far, in decision order.
func (s *Session) Patches() []MergePatch {
	return s.patches
}

// Survivors filters the imported batch down to the rows not consumed by a
// merge or keep-existing decision, preserving input order.
func (s *Session) Survivors(incoming []model.ImportedTransaction) []model.ImportedTransaction {
	var out []model.ImportedTransaction
	for i, txn := range incoming {
		if s.consumed[i] {
			continue
		}
		out = append(out, txn)
	}
	return out
}

func (s *Session) skipConsumed() {
	for s.cursor < len(s.queue) && s.consumed[s.queue[s.cursor].Index] {
		s.cursor++
	}
}
