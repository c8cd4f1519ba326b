package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/farthing-dev/farthing/internal/model"
)

// DetectOrphanTransfers returns the ids of TRANSFER transactions that have
// no inverse-amount TRANSFER counterpart in a different account within the
// given tolerances. A transfer out of one account should normally show up
// as a transfer into another; the ones that don't are worth a look.
//
// The scan is read-only and quadratic, which is fine for a personal ledger
// checked on demand.
func DetectOrphanTransfers(txns []model.Transaction, dateToleranceDays int, amountTolerance decimal.Decimal) []string {
	var orphans []string
	for _, t := range txns {
		if t.Type != model.TypeTransfer {
			continue
		}
		if !hasCounterpart(txns, t, dateToleranceDays, amountTolerance) {
			orphans = append(orphans, t.ID)
		}
	}
	return orphans
}

func hasCounterpart(txns []model.Transaction, t model.Transaction, days int, amountTol decimal.Decimal) bool {
	for _, o := range txns {
		if o.Type != model.TypeTransfer || o.AccountID == t.AccountID {
			continue
		}
		if o.Amount.Add(t.Amount).Abs().GreaterThanOrEqual(amountTol) {
			continue
		}
		if daysApart(o.Date, t.Date) > days {
			continue
		}
		return true
	}
	return false
}
