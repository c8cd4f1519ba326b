package model

// Account is a bank account transactions belong to. BankID selects the
// column detection strategy applied when importing statements for it.
// Deleting an account does not cascade-delete its transactions.
type Account struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	BankID string `json:"bankId"`
}
