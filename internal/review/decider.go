package review

import (
	"errors"

	"github.com/farthing-dev/farthing/internal/model"
	"github.com/farthing-dev/farthing/internal/reconcile"
)

// ErrAbandoned is returned by a Decider when the user quits review early.
// The import continues, but the unresolved rows keep their existing ledger
// entries rather than being inserted behind the user's back.
var ErrAbandoned = errors.New("duplicate review abandoned")

// Decider resolves one potential duplicate at a time during an import.
type Decider interface {
	Decide(dup model.PotentialDuplicate) (reconcile.Decision, error)
}

// FixedDecider resolves every candidate the same way. It backs the
// import command's --on-duplicate keep|add|merge modes, where no terminal
// interaction is wanted.
type FixedDecider struct {
	Decision reconcile.Decision
}

func (d FixedDecider) Decide(model.PotentialDuplicate) (reconcile.Decision, error) {
	return d.Decision, nil
}
