package classify

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/farthing-dev/farthing/internal/model"
)

// Transfer keyword sets per amount sign. The two sets differ on the last
// entry and the asymmetry is intentional.
var (
	positiveTransferKeywords = []string{"transfer", "xfer", "payment sent"}
	negativeTransferKeywords = []string{"transfer", "xfer", "payment received"}
)

// refundKeywords mark positive amounts that are money returned on an
// expense rather than income.
var refundKeywords = []string{"refund", "reversal", "reversed", "credit", "return", "chargeback"}

// refundsCategoryName is the designated category refunds redirect to.
const refundsCategoryName = "Refunds"

// Classifier assigns types and categories to transactions.
type Classifier struct {
	log zerolog.Logger
}

// New creates a Classifier.
func New(log zerolog.Logger) *Classifier {
	return &Classifier{log: log}
}

// InferType derives a transaction's semantic type from its amount sign and
// description: positive is income, negative (or zero) is expense, unless a
// transfer keyword reclassifies it as a transfer.
func InferType(amount decimal.Decimal, description string) model.TransactionType {
	desc := strings.ToLower(description)
	if amount.Sign() > 0 {
		if containsAny(desc, positiveTransferKeywords) {
			return model.TypeTransfer
		}
		return model.TypeIncome
	}
	if containsAny(desc, negativeTransferKeywords) {
		return model.TypeTransfer
	}
	return model.TypeExpense
}

// MatchCategory returns the category of the first rule matching the
// description, honoring rule order. Only rules targeting the transaction
// type (or ALL) are considered. An invalid regex pattern is logged and
// treated as non-matching; later rules are still evaluated. Empty means
// uncategorized.
func (c *Classifier) MatchCategory(description string, rules []model.CategoryRule, txType model.TransactionType) string {
	for _, rule := range rules {
		if !rule.AppliesTo(txType) {
			continue
		}
		if c.ruleMatches(rule, description) {
			return rule.CategoryID
		}
	}
	return ""
}

// Classify infers the transaction type and assigns a category from the
// rule sequence. A positive amount carrying a refund keyword is forced to
// EXPENSE and redirected to the Refunds category when one exists; this
// override takes priority over rule matching.
func (c *Classifier) Classify(txn model.ImportedTransaction, rules []model.CategoryRule, categories []model.Category) (model.TransactionType, string) {
	if txn.Amount.Sign() > 0 && containsAny(strings.ToLower(txn.Description), refundKeywords) {
		if refunds := findCategory(categories, refundsCategoryName); refunds != "" {
			return model.TypeExpense, refunds
		}
	}

	txType := InferType(txn.Amount, txn.Description)
	return txType, c.MatchCategory(txn.Description, rules, txType)
}

func (c *Classifier) ruleMatches(rule model.CategoryRule, description string) bool {
	switch rule.MatchType {
	case model.MatchContains:
		if rule.CaseSensitive {
			return strings.Contains(description, rule.Pattern)
		}
		return strings.Contains(strings.ToLower(description), strings.ToLower(rule.Pattern))
	case model.MatchRegex:
		pattern := rule.Pattern
		if !rule.CaseSensitive {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			c.log.Warn().Err(err).Str("rule", rule.ID).Str("pattern", rule.Pattern).Msg("skipping rule with invalid pattern")
			return false
		}
		return re.MatchString(description)
	default:
		return false
	}
}

func findCategory(categories []model.Category, name string) string {
	for _, cat := range categories {
		if strings.EqualFold(cat.Name, name) {
			return cat.ID
		}
	}
	return ""
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
