package ledger

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farthing-dev/farthing/internal/model"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("not found")

// Store holds the ledger in memory and serializes mutations. Persistence
// is the caller's concern; pair it with a DB or an export file.
type Store struct {
	mu    sync.Mutex
	state model.Snapshot
}

// NewStore creates a Store seeded from a snapshot.
func NewStore(snap model.Snapshot) *Store {
	return &Store{state: snap.Clone()}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// AddTransactions appends transactions to the ledger, assigning an id to
// any that lack one, and returns the stored records.
func (s *Store) AddTransactions(txns []model.Transaction) []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	added := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		s.state.Transactions = append(s.state.Transactions, t)
		added = append(added, t)
	}
	return added
}

// TransactionPatch carries the fields an update may change. Nil fields are
// left alone.
type TransactionPatch struct {
	Date        *time.Time
	Description *string
	Amount      *decimal.Decimal
	CategoryID  *string
	Type        *model.TransactionType
	Notes       *string
}

// UpdateTransaction applies a patch to one transaction and returns the
// updated record.
func (s *Store) UpdateTransaction(id string, patch TransactionPatch) (model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Transactions {
		t := &s.state.Transactions[i]
		if t.ID != id {
			continue
		}
		if patch.Date != nil {
			t.Date = *patch.Date
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.Amount != nil {
			t.Amount = *patch.Amount
		}
		if patch.CategoryID != nil {
			t.CategoryID = *patch.CategoryID
		}
		if patch.Type != nil {
			t.Type = *patch.Type
		}
		if patch.Notes != nil {
			t.Notes = *patch.Notes
		}
		return *t, nil
	}
	return model.Transaction{}, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
}

// RemoveTransaction deletes one transaction.
func (s *Store) RemoveTransaction(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.state.Transactions {
		if t.ID == id {
			s.state.Transactions = append(s.state.Transactions[:i], s.state.Transactions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("transaction %s: %w", id, ErrNotFound)
}

// AddAccount creates an account. Names are unique, ignoring case.
func (s *Store) AddAccount(name, color, bankID string) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Account{}, errors.New("account name is required")
	}
	for _, a := range s.state.Accounts {
		if strings.EqualFold(a.Name, name) {
			return model.Account{}, fmt.Errorf("account %q already exists", a.Name)
		}
	}
	acct := model.Account{
		ID:     uuid.NewString(),
		Name:   name,
		Color:  color,
		BankID: strings.ToLower(strings.TrimSpace(bankID)),
	}
	s.state.Accounts = append(s.state.Accounts, acct)
	return acct, nil
}

// RemoveAccount deletes the account record only. Transactions that
// reference it stay in the ledger and show up in validation as dangling.
func (s *Store) RemoveAccount(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.state.Accounts {
		if a.ID == id {
			s.state.Accounts = append(s.state.Accounts[:i], s.state.Accounts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("account %s: %w", id, ErrNotFound)
}

// Account returns an account by id.
func (s *Store) Account(id string) (model.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.state.Accounts {
		if a.ID == id {
			return a, true
		}
	}
	return model.Account{}, false
}

// AccountByName returns an account by name, ignoring case.
func (s *Store) AccountByName(name string) (model.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.state.Accounts {
		if strings.EqualFold(a.Name, name) {
			return a, true
		}
	}
	return model.Account{}, false
}

// AddCategory creates a category. Names are unique, ignoring case.
func (s *Store) AddCategory(name, color string) (model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, errors.New("category name is required")
	}
	for _, c := range s.state.Categories {
		if strings.EqualFold(c.Name, name) {
			return model.Category{}, fmt.Errorf("category %q already exists", c.Name)
		}
	}
	cat := model.Category{ID: uuid.NewString(), Name: name, Color: color}
	s.state.Categories = append(s.state.Categories, cat)
	return cat, nil
}

// RemoveCategory deletes a category, clears it from any transactions that
// carry it, and drops the rules that assign it.
func (s *Store) RemoveCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, c := range s.state.Categories {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	s.state.Categories = append(s.state.Categories[:idx], s.state.Categories[idx+1:]...)

	for i := range s.state.Transactions {
		if s.state.Transactions[i].CategoryID == id {
			s.state.Transactions[i].CategoryID = ""
		}
	}

	var rules []model.CategoryRule
	for _, r := range s.state.Rules {
		if r.CategoryID != id {
			rules = append(rules, r)
		}
	}
	s.state.Rules = rules
	return nil
}

// Category returns a category by id.
func (s *Store) Category(id string) (model.Category, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.state.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return model.Category{}, false
}

// CategoryByName returns a category by name, ignoring case.
func (s *Store) CategoryByName(name string) (model.Category, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.state.Categories {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return model.Category{}, false
}

// AddRule appends a rule to the end of the evaluation order. The pattern
// is validated up front so a bad regex is rejected at entry rather than
// silently skipped during matching.
func (s *Store) AddRule(rule model.CategoryRule) (model.CategoryRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rule.Pattern = strings.TrimSpace(rule.Pattern)
	if rule.Pattern == "" {
		return model.CategoryRule{}, errors.New("rule pattern is required")
	}
	switch rule.MatchType {
	case model.MatchContains:
	case model.MatchRegex:
		pattern := rule.Pattern
		if !rule.CaseSensitive {
			pattern = "(?i)" + pattern
		}
		if _, err := regexp.Compile(pattern); err != nil {
			return model.CategoryRule{}, fmt.Errorf("invalid pattern: %w", err)
		}
	default:
		return model.CategoryRule{}, fmt.Errorf("unknown match type %q", rule.MatchType)
	}
	if rule.TargetType == "" {
		rule.TargetType = model.TypeAll
	}
	if rule.TargetType != model.TypeAll && !rule.TargetType.IsValid() {
		return model.CategoryRule{}, fmt.Errorf("unknown target type %q", rule.TargetType)
	}
	if !s.categoryExists(rule.CategoryID) {
		return model.CategoryRule{}, fmt.Errorf("category %s: %w", rule.CategoryID, ErrNotFound)
	}
	rule.ID = uuid.NewString()
	s.state.Rules = append(s.state.Rules, rule)
	return rule, nil
}

// RemoveRule deletes one rule.
func (s *Store) RemoveRule(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.state.Rules {
		if r.ID == id {
			s.state.Rules = append(s.state.Rules[:i], s.state.Rules[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("rule %s: %w", id, ErrNotFound)
}

// ReorderRules replaces the rule evaluation order. Unknown ids are ignored,
// duplicates count once, and rules omitted from ids keep their previous
// relative order at the end, so a stale caller can never drop rules.
func (s *Store) ReorderRules(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byID := make(map[string]model.CategoryRule, len(s.state.Rules))
	for _, r := range s.state.Rules {
		byID[r.ID] = r
	}
	ordered := make([]model.CategoryRule, 0, len(s.state.Rules))
	placed := make(map[string]bool, len(ids))
	for _, id := range ids {
		r, ok := byID[id]
		if !ok || placed[id] {
			continue
		}
		ordered = append(ordered, r)
		placed[id] = true
	}
	for _, r := range s.state.Rules {
		if !placed[r.ID] {
			ordered = append(ordered, r)
		}
	}
	s.state.Rules = ordered
}

func (s *Store) categoryExists(id string) bool {
	for _, c := range s.state.Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
