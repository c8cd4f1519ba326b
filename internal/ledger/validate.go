package ledger

import (
	"fmt"
	"regexp"

	"github.com/farthing-dev/farthing/internal/model"
)

// ValidationError describes a single consistency problem in the ledger.
type ValidationError struct {
	RecordID    string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s]: %s", e.RecordID, e.Description)
}

// Validate checks referential integrity and type conventions across the
// ledger. Problems are reported, never repaired; deleting an account
// legitimately leaves its transactions behind, and this is where they
// surface.
func Validate(snap model.Snapshot) []ValidationError {
	var errs []ValidationError

	accounts := make(map[string]bool, len(snap.Accounts))
	for _, a := range snap.Accounts {
		accounts[a.ID] = true
	}
	categories := make(map[string]bool, len(snap.Categories))
	for _, c := range snap.Categories {
		categories[c.ID] = true
	}

	seen := make(map[string]bool, len(snap.Transactions))
	for _, t := range snap.Transactions {
		if seen[t.ID] {
			errs = append(errs, ValidationError{t.ID, "duplicate transaction id"})
		}
		seen[t.ID] = true

		if !t.Type.IsValid() {
			errs = append(errs, ValidationError{t.ID, fmt.Sprintf("invalid type %q", t.Type)})
		}
		// A positive EXPENSE is a refund, so only the income sign is checked.
		if t.Type == model.TypeIncome && t.Amount.Sign() <= 0 {
			errs = append(errs, ValidationError{t.ID, fmt.Sprintf("INCOME with non-positive amount %s", t.Amount)})
		}
		if t.AccountID == "" {
			errs = append(errs, ValidationError{t.ID, "no account"})
		} else if !accounts[t.AccountID] {
			errs = append(errs, ValidationError{t.ID, fmt.Sprintf("unknown account %s", t.AccountID)})
		}
		if t.CategoryID != "" && !categories[t.CategoryID] {
			errs = append(errs, ValidationError{t.ID, fmt.Sprintf("unknown category %s", t.CategoryID)})
		}
	}

	for _, r := range snap.Rules {
		if !categories[r.CategoryID] {
			errs = append(errs, ValidationError{r.ID, fmt.Sprintf("rule assigns unknown category %s", r.CategoryID)})
		}
		if r.MatchType == model.MatchRegex {
			pattern := r.Pattern
			if !r.CaseSensitive {
				pattern = "(?i)" + pattern
			}
			if _, err := regexp.Compile(pattern); err != nil {
				errs = append(errs, ValidationError{r.ID, fmt.Sprintf("pattern does not compile: %v", err)})
			}
		}
	}

	return errs
}
