package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies the semantic direction of a transaction.
type TransactionType string

const (
	TypeIncome   TransactionType = "INCOME"
	TypeExpense  TransactionType = "EXPENSE"
	TypeTransfer TransactionType = "TRANSFER"

	// TypeAll is only valid as a rule target, never on a transaction.
	TypeAll TransactionType = "ALL"
)

// IsValid reports whether t is a type a transaction may carry.
func (t TransactionType) IsValid() bool {
	return t == TypeIncome || t == TypeExpense || t == TypeTransfer
}

// ImportedTransaction is a normalized bank CSV row, not yet in the ledger.
type ImportedTransaction struct {
	Date        time.Time         `json:"date"`
	Description string            `json:"description"`
	Amount      decimal.Decimal   `json:"amount"` // negative = debit, positive = credit
	Raw         map[string]string `json:"rawData,omitempty"`
}

// Transaction is a ledger entry, created by import or manual entry.
type Transaction struct {
	ID            string            `json:"id"`
	Date          time.Time         `json:"date"`
	Description   string            `json:"description"`
	Amount        decimal.Decimal   `json:"amount"`
	Currency      string            `json:"currency"`
	CategoryID    string            `json:"categoryId,omitempty"` // empty = uncategorized
	AccountID     string            `json:"accountId"`
	Type          TransactionType   `json:"type"`
	IsManualEntry bool              `json:"isManualEntry"`
	Notes         string            `json:"notes,omitempty"`
	OriginalData  map[string]string `json:"originalData,omitempty"`
}
