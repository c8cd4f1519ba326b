package importer

import (
	"fmt"

	"github.com/farthing-dev/farthing/internal/model"
)

// Layout resolves statement columns for one institution.
type Layout interface {
	Columns(headers []string) (model.ColumnMapping, error)
	Bank() string
}

// LayoutError reports a statement that does not match the institution's
// expected export format.
type LayoutError struct {
	Bank     string
	Expected string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("statement does not match the %s export format (expected %s)", e.Bank, e.Expected)
}

// CBALayout handles Commonwealth Bank exports, which usually ship without a
// header row.
type CBALayout struct{}

// cbaPositional is the fixed column order of a headerless CBA export.
var cbaPositional = model.ColumnMapping{
	Date:        "0",
	Amount:      "1",
	Description: "2",
	Balance:     "3",
}

// Bank returns the institution identifier.
func (l *CBALayout) Bank() string { return "cba" }

// Columns maps a CBA statement. When the first row is absent or does not
// look like a header row, or when any of date/amount/description cannot be
// resolved by name, columns fall back to fixed positional indices.
func (l *CBALayout) Columns(headers []string) (model.ColumnMapping, error) {
	if !headersRecognizable(headers) {
		return cbaPositional, nil
	}

	claimed := make(map[int]bool)
	m := model.ColumnMapping{
		Date:        claimHeader(headers, claimed, dateKeywords, ""),
		Amount:      claimHeader(headers, claimed, amountKeywords, "balance"),
		Description: claimHeader(headers, claimed, descriptionKeywords, ""),
		Balance:     claimHeader(headers, claimed, balanceKeywords, ""),
	}
	if m.Date == "" || m.Amount == "" || m.Description == "" {
		return cbaPositional, nil
	}
	return m, nil
}

// INGLayout handles ING exports, which always carry a header row with
// separate debit and credit columns.
type INGLayout struct{}

const ingExpected = "Date, Description and Debit/Credit columns"

// Bank returns the institution identifier.
func (l *INGLayout) Bank() string { return "ing" }

// Columns maps an ING statement. Date, description and at least one of
// debit/credit must resolve by name; there is no positional fallback.
func (l *INGLayout) Columns(headers []string) (model.ColumnMapping, error) {
	claimed := make(map[int]bool)
	var m model.ColumnMapping
	m.Date = claimHeader(headers, claimed, dateKeywords, "")
	m.Description = claimHeader(headers, claimed, descriptionKeywords, "")
	m.Balance = claimHeader(headers, claimed, balanceKeywords, "")
	m.Debit = claimHeader(headers, claimed, debitKeywords, "")
	m.Credit = claimHeader(headers, claimed, creditKeywords, "")
	if m.Date == "" || m.Description == "" || (m.Debit == "" && m.Credit == "") {
		return model.ColumnMapping{}, &LayoutError{Bank: l.Bank(), Expected: ingExpected}
	}
	return m, nil
}
