package model

import (
	"errors"
	"strconv"
)

// ColumnMapping associates semantic fields with a statement's columns. Each
// value is either a header name or a stringified positional index; empty
// means unresolved. Computed once per import and immutable afterwards.
type ColumnMapping struct {
	Date        string
	Description string
	Amount      string
	Debit       string
	Credit      string
	Balance     string
}

// Validate enforces the mapping invariant: date and description are always
// required, and either a single amount column or both debit and credit.
func (m ColumnMapping) Validate() error {
	if m.Date == "" {
		return errors.New("no date column")
	}
	if m.Description == "" {
		return errors.New("no description column")
	}
	if m.Amount == "" && (m.Debit == "" || m.Credit == "") {
		return errors.New("no amount column and no debit/credit pair")
	}
	return nil
}

// Positional reports whether rows should be decoded as ordered field lists
// rather than header-keyed maps. The date column decides for the whole
// mapping.
func (m ColumnMapping) Positional() bool {
	return isIndex(m.Date)
}

// Row is one decoded statement row. It answers field lookups by header name
// or by stringified positional index without callers knowing which
// representation the mapping uses.
type Row struct {
	headers []string
	fields  []string
}

// NewNamedRow builds a Row whose fields sit under a header row.
func NewNamedRow(headers, fields []string) Row {
	return Row{headers: headers, fields: fields}
}

// NewPositionalRow builds a Row addressed only by column index.
func NewPositionalRow(fields []string) Row {
	return Row{fields: fields}
}

// Get resolves a mapping value to the row's field. A pure-digit key is an
// index lookup, anything else a header lookup. ok is false when the key is
// empty, out of range or names an unknown header.
func (r Row) Get(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	if isIndex(key) {
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= len(r.fields) {
			return "", false
		}
		return r.fields[i], true
	}
	for i, h := range r.headers {
		if h == key && i < len(r.fields) {
			return r.fields[i], true
		}
	}
	return "", false
}

// Map renders the row for persistence as a transaction's original data:
// header name to value, or stringified index to value when headerless.
func (r Row) Map() map[string]string {
	out := make(map[string]string, len(r.fields))
	for i, v := range r.fields {
		if i < len(r.headers) {
			out[r.headers[i]] = v
		} else {
			out[strconv.Itoa(i)] = v
		}
	}
	return out
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
