package ledger

import (
	"github.com/google/uuid"

	"github.com/farthing-dev/farthing/internal/model"
)

// DefaultCategories returns the starter category set for a new ledger.
func DefaultCategories() []model.Category {
	defs := []struct {
		name  string
		color string
	}{
		{"Groceries", "green"},
		{"Eating Out", "yellow"},
		{"Transport", "cyan"},
		{"Rent", "magenta"},
		{"Utilities", "blue"},
		{"Health", "white"},
		{"Entertainment", "red"},
		{"Salary", "green"},
		{"Refunds", "green"},
	}
	out := make([]model.Category, len(defs))
	for i, d := range defs {
		out[i] = model.Category{ID: uuid.NewString(), Name: d.name, Color: d.color}
	}
	return out
}
