package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farthing-dev/farthing/internal/model"
)

// ErrInvalidFileType reports an unsupported statement file extension.
var ErrInvalidFileType = errors.New("invalid file type")

// ErrNoTransactions reports a statement from which no rows survived
// normalization.
var ErrNoTransactions = errors.New("no transactions found in statement")

// dateFormats are tried in order; the first that yields a valid calendar
// date wins. dd/MM comes before MM/dd, so "03/04/2024" is 3 April.
var dateFormats = []string{
	"02/01/2006",
	"01/02/2006",
	"2006-01-02",
	"02-01-2006",
	"01-02-2006",
	"2/1/2006",
	"1/2/2006",
}

// SkipReport accumulates rows dropped during normalization and why.
// Malformed rows never abort an import; they land here instead.
type SkipReport struct {
	Skips []Skip
}

// Skip is one dropped row.
type Skip struct {
	Line   int
	Reason string
}

func (r *SkipReport) add(line int, reason string) {
	r.Skips = append(r.Skips, Skip{Line: line, Reason: reason})
}

// Count returns the number of dropped rows.
func (r *SkipReport) Count() int { return len(r.Skips) }

// IsSupportedFile reports whether the path looks like a statement file.
func IsSupportedFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".csv" || ext == ".txt"
}

// ReadRecords decodes every record of a delimited statement. Quoting is
// lax and ragged rows are tolerated; bank exports are rarely tidy.
func ReadRecords(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement: %w", err)
	}
	return records, nil
}

// Normalize converts decoded records into imported transactions using the
// resolved column mapping. In positional mode every record is data; with a
// named mapping the first record is the header row. Rows without a
// parseable date or amount are dropped and recorded in the SkipReport.
// Returns ErrNoTransactions when nothing survives.
func Normalize(records [][]string, mapping model.ColumnMapping) ([]model.ImportedTransaction, *SkipReport, error) {
	report := &SkipReport{}
	if len(records) == 0 {
		return nil, report, ErrNoTransactions
	}

	var headers []string
	start := 0
	if !mapping.Positional() {
		headers = records[0]
		start = 1
	}

	var txns []model.ImportedTransaction
	for i := start; i < len(records); i++ {
		var row model.Row
		if headers != nil {
			row = model.NewNamedRow(headers, records[i])
		} else {
			row = model.NewPositionalRow(records[i])
		}

		txn, err := normalizeRow(row, mapping)
		if err != nil {
			report.add(i+1, err.Error())
			continue
		}
		txns = append(txns, txn)
	}

	if len(txns) == 0 {
		return nil, report, ErrNoTransactions
	}
	return txns, report, nil
}

func normalizeRow(row model.Row, m model.ColumnMapping) (model.ImportedTransaction, error) {
	dateStr, _ := row.Get(m.Date)
	if strings.TrimSpace(dateStr) == "" {
		return model.ImportedTransaction{}, errors.New("missing date")
	}

	date, err := parseDate(dateStr)
	if err != nil {
		return model.ImportedTransaction{}, err
	}

	amount, err := parseSigned(row, m)
	if err != nil {
		return model.ImportedTransaction{}, err
	}

	desc := "Unknown"
	if v, ok := row.Get(m.Description); ok && strings.TrimSpace(v) != "" {
		desc = strings.TrimSpace(v)
	}

	return model.ImportedTransaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Raw:         row.Map(),
	}, nil
}

// parseDate tries each supported format in order and normalizes the result
// to midnight UTC.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateFormats {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseSigned resolves the signed amount for a row: either a single amount
// column, or credit minus debit when the mapping splits them.
func parseSigned(row model.Row, m model.ColumnMapping) (decimal.Decimal, error) {
	if m.Amount != "" {
		v, _ := row.Get(m.Amount)
		return parseAmount(v)
	}

	if m.Debit == "" && m.Credit == "" {
		return decimal.Decimal{}, errors.New("no amount column mapped")
	}

	debit, err := parseOptional(row, m.Debit)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("debit: %w", err)
	}
	credit, err := parseOptional(row, m.Credit)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("credit: %w", err)
	}
	return credit.Sub(debit), nil
}

// parseAmount parses a currency string after stripping everything except
// digits, '.' and '-'.
func parseAmount(s string) (decimal.Decimal, error) {
	cleaned := cleanAmount(s)
	if cleaned == "" {
		return decimal.Decimal{}, errors.New("missing amount")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("unparseable amount %q", strings.TrimSpace(s))
	}
	return d, nil
}

// parseOptional parses a possibly-unmapped or blank debit/credit value,
// treating missing as zero.
func parseOptional(row model.Row, key string) (decimal.Decimal, error) {
	if key == "" {
		return decimal.Zero, nil
	}
	v, ok := row.Get(key)
	if !ok || strings.TrimSpace(v) == "" {
		return decimal.Zero, nil
	}
	return parseAmount(v)
}

// cleanAmount strips currency symbols, thousand separators and spaces.
func cleanAmount(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
}
