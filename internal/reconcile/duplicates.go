package reconcile

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/farthing-dev/farthing/internal/model"
)

// Options bound how far apart two transactions may sit and still count as
// the same.
type Options struct {
	AmountTolerance   decimal.Decimal
	DateToleranceDays int
}

// DefaultOptions matches amounts within a cent, dated at most a day apart.
func DefaultOptions() Options {
	return Options{
		AmountTolerance:   decimal.NewFromFloat(0.01),
		DateToleranceDays: 1,
	}
}

// FindPotentialDuplicates pairs each incoming transaction, in input order,
// with the first existing ledger transaction in the same account whose
// amount and date fall within tolerance. At most one match is recorded per
// incoming transaction; the scan is greedy, so result quality depends on
// ledger order. Unmatched rows are genuinely new.
func FindPotentialDuplicates(existing []model.Transaction, incoming []model.ImportedTransaction, accountID string, opts Options) []model.PotentialDuplicate {
	var dups []model.PotentialDuplicate
	for i, in := range incoming {
		for _, ex := range existing {
			if ex.AccountID != accountID {
				continue
			}
			if ex.Amount.Sub(in.Amount).Abs().GreaterThanOrEqual(opts.AmountTolerance) {
				continue
			}
			if daysApart(ex.Date, in.Date) > opts.DateToleranceDays {
				continue
			}
			dups = append(dups, model.PotentialDuplicate{Existing: ex, Incoming: in, Index: i})
			break
		}
	}
	return dups
}

// daysApart returns the absolute calendar-day difference between two dates,
// ignoring time of day.
func daysApart(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	d := int(au.Sub(bu).Hours() / 24)
	if d < 0 {
		return -d
	}
	return d
}
