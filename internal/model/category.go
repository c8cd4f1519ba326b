package model

// Category labels transactions for reporting.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// MatchType selects how a rule pattern is applied to a description.
type MatchType string

const (
	MatchContains MatchType = "contains"
	MatchRegex    MatchType = "regex"
)

// CategoryRule assigns a category to transactions whose description matches
// a pattern. Rules form a single ordered sequence; evaluation order is
// significant and the first matching rule wins.
type CategoryRule struct {
	ID            string          `json:"id"`
	MatchType     MatchType       `json:"matchType"`
	Pattern       string          `json:"pattern"`
	CategoryID    string          `json:"categoryId"`
	TargetType    TransactionType `json:"targetType"` // INCOME, EXPENSE, TRANSFER or ALL
	CaseSensitive bool            `json:"caseSensitive,omitempty"`
}

// AppliesTo reports whether the rule targets the given transaction type.
func (r CategoryRule) AppliesTo(t TransactionType) bool {
	return r.TargetType == TypeAll || r.TargetType == t
}
