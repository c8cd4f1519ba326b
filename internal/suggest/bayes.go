package suggest

import (
	"errors"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/jbrukh/bayesian"

	"github.com/farthing-dev/farthing/internal/model"
)

// ErrNotEnoughHistory is returned when fewer than two categories have
// categorized transactions to learn from.
var ErrNotEnoughHistory = errors.New("not enough categorized history to train on")

// Suggestion pairs a category id with a normalized confidence.
type Suggestion struct {
	CategoryID string
	Confidence float64
}

// Model is a naive Bayes classifier trained on the descriptions of
// already-categorized ledger transactions.
type Model struct {
	classifier *bayesian.Classifier
	classes    []bayesian.Class
}

// Train builds a Model from transactions that carry a category. Classes
// follow first appearance in the ledger, so training is deterministic.
func Train(txns []model.Transaction) (*Model, error) {
	var classes []bayesian.Class
	seen := make(map[string]bool)
	for _, t := range txns {
		if t.CategoryID == "" || seen[t.CategoryID] {
			continue
		}
		seen[t.CategoryID] = true
		classes = append(classes, bayesian.Class(t.CategoryID))
	}
	if len(classes) < 2 {
		return nil, ErrNotEnoughHistory
	}

	cl := bayesian.NewClassifierTfIdf(classes...)
	for _, t := range txns {
		if t.CategoryID == "" {
			continue
		}
		terms := tokenize(t.Description)
		if len(terms) == 0 {
			continue
		}
		cl.Learn(terms, bayesian.Class(t.CategoryID))
	}
	cl.ConvertTermsFreqToTfIdf()

	return &Model{classifier: cl, classes: classes}, nil
}

// Suggest returns up to max category suggestions for a description, best
// first. Confidences are softmax-normalized log scores, so they sum to 1
// across all trained categories.
func (m *Model) Suggest(description string, max int) []Suggestion {
	terms := tokenize(description)
	if len(terms) == 0 || max <= 0 {
		return nil
	}
	scores, _, _ := m.classifier.LogScores(terms)

	maxScore := scores[0]
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}
	var sum float64
	exps := make([]float64, len(scores))
	for i, s := range scores {
		exps[i] = math.Exp(s - maxScore)
		sum += exps[i]
	}

	suggestions := make([]Suggestion, len(scores))
	for i := range scores {
		suggestions[i] = Suggestion{
			CategoryID: string(m.classes[i]),
			Confidence: exps[i] / sum,
		}
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})
	if len(suggestions) > max {
		suggestions = suggestions[:max]
	}
	return suggestions
}

// tokenize lowercases a description and splits it into classifier terms,
// treating anything that is not a letter or digit as a separator.
func tokenize(desc string) []string {
	desc = strings.ToLower(desc)
	desc = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, desc)
	return strings.Fields(desc)
}
