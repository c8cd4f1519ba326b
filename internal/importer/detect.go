package importer

import (
	"strings"

	"github.com/farthing-dev/farthing/internal/model"
)

// Keyword sets per semantic field, in priority order.
var (
	dateKeywords        = []string{"date", "transaction date", "posted date", "value date"}
	descriptionKeywords = []string{"description", "narrative", "details", "merchant", "payee"}
	amountKeywords      = []string{"amount", "value", "transaction"}
	debitKeywords       = []string{"debit", "withdrawal", "out"}
	creditKeywords      = []string{"credit", "deposit", "in"}
	balanceKeywords     = []string{"balance", "running balance"}
)

// recognizableKeywords decide whether a first row looks like a header row
// at all. Used by layouts with a positional fallback.
var recognizableKeywords = []string{"date", "amount", "description", "debit", "credit"}

// DetectColumns infers a column mapping from a header row. Fields resolve
// in a fixed order; for each, keywords are tried in priority order and the
// first header containing the keyword (case-insensitive substring) wins.
// Fields with no matching header stay unresolved. Balance resolves before
// debit/credit so a balance header is never mistaken for one of them.
func DetectColumns(headers []string) model.ColumnMapping {
	claimed := make(map[int]bool)
	var m model.ColumnMapping
	m.Date = claimHeader(headers, claimed, dateKeywords, "")
	m.Description = claimHeader(headers, claimed, descriptionKeywords, "")
	m.Amount = claimHeader(headers, claimed, amountKeywords, "balance")
	m.Balance = claimHeader(headers, claimed, balanceKeywords, "")
	m.Debit = claimHeader(headers, claimed, debitKeywords, "")
	m.Credit = claimHeader(headers, claimed, creditKeywords, "")
	return m
}

// claimHeader returns the first unclaimed header containing any of the
// keywords, trying keywords in priority order, and claims it. A header
// already claimed by an earlier field is never considered again, so the
// "transaction" amount keyword cannot capture a Transaction Date column.
// Headers containing exclude never match.
func claimHeader(headers []string, claimed map[int]bool, keywords []string, exclude string) string {
	for _, kw := range keywords {
		for i, h := range headers {
			if claimed[i] {
				continue
			}
			lower := strings.ToLower(strings.TrimSpace(h))
			if exclude != "" && strings.Contains(lower, exclude) {
				continue
			}
			if strings.Contains(lower, kw) {
				claimed[i] = true
				return h
			}
		}
	}
	return ""
}

// headersRecognizable reports whether any header mentions a known field.
func headersRecognizable(headers []string) bool {
	for _, h := range headers {
		lower := strings.ToLower(h)
		for _, kw := range recognizableKeywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}
