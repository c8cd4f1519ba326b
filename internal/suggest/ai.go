package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/farthing-dev/farthing/internal/model"
)

// ErrNoAPIKey is returned when AI review is enabled but the environment
// does not carry a key.
var ErrNoAPIKey = errors.New("ANTHROPIC_API_KEY is not set")

const defaultMaxTokens = 8192

// Reviewer asks Claude to categorize transactions the local model is not
// confident about. Construct one only when ai.enabled is set in the
// config; everything works without it.
type Reviewer struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewReviewer builds a Reviewer. The API key comes from the environment
// and never touches the config file.
func NewReviewer(modelName string, maxTokens int64) (*Reviewer, error) {
	key := os.Getenv("ANTHROPIC_API_KEY")
	if key == "" {
		return nil, ErrNoAPIKey
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Reviewer{
		client:    anthropic.NewClient(option.WithAPIKey(key)),
		model:     modelName,
		maxTokens: maxTokens,
	}, nil
}

// Candidate is one uncategorized transaction plus the local model's hints.
type Candidate struct {
	Transaction model.Transaction
	Hints       []Suggestion
}

// Assignment is Claude's pick for one candidate, by input order. Category
// is a category name, or empty when the model declined to choose.
type Assignment struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

type aiResponse struct {
	Assignments []Assignment `json:"assignments"`
}

type reviewCategory struct {
	Name string `json:"name"`
}

type reviewHint struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

type reviewTxn struct {
	Date        string       `json:"date"`
	Description string       `json:"description"`
	Amount      string       `json:"amount"`
	Hints       []reviewHint `json:"hints,omitempty"`
}

type reviewDocument struct {
	Categories   []reviewCategory `json:"categories"`
	Transactions []reviewTxn      `json:"transactions"`
}

// Review sends the candidates to Claude and returns one assignment per
// candidate, in input order.
func (r *Reviewer) Review(ctx context.Context, categories []model.Category, candidates []Candidate) ([]Assignment, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	prompt, err := buildPrompt(categories, candidates)
	if err != nil {
		return nil, err
	}

	message, err := r.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(r.model),
		MaxTokens: r.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("claude API call: %w", err)
	}

	var text string
	for _, block := range message.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return parseAssignments(text, len(candidates))
}

func buildPrompt(categories []model.Category, candidates []Candidate) (string, error) {
	names := make(map[string]string, len(categories))
	doc := reviewDocument{}
	for _, c := range categories {
		names[c.ID] = c.Name
		doc.Categories = append(doc.Categories, reviewCategory{Name: c.Name})
	}
	for _, cand := range candidates {
		t := cand.Transaction
		rt := reviewTxn{
			Date:        t.Date.Format("2006-01-02"),
			Description: t.Description,
			Amount:      t.Amount.String(),
		}
		for _, h := range cand.Hints {
			name, ok := names[h.CategoryID]
			if !ok {
				continue
			}
			rt.Hints = append(rt.Hints, reviewHint{Category: name, Confidence: h.Confidence})
		}
		doc.Transactions = append(doc.Transactions, rt)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding review payload: %w", err)
	}

	prompt := `You categorize personal bank transactions.

Each transaction below may include "hints": category guesses from a local
statistical model with confidence scores in 0-1. Trust a hint when the
description clearly supports it; ignore it when the description is generic
text like "PAYMENT" or "EFTPOS 1234".

Reply with a JSON object only:

{
  "assignments": [
    {"category": "Groceries", "confidence": 0.9, "reasoning": "supermarket name"}
  ]
}

Rules:
- Return exactly one assignment per transaction, in input order.
- "category" must be one of the provided category names, or "" if unsure.
- "confidence" is 0-1. "reasoning" is at most ten words.

Data:

`
	return prompt + string(data), nil
}

// parseAssignments pulls the JSON object out of the response text, which
// may be wrapped in markdown fences, and checks it covers every candidate.
func parseAssignments(text string, want int) ([]Assignment, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON object in response")
	}
	var resp aiResponse
	if err := json.Unmarshal([]byte(text[start:end+1]), &resp); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if len(resp.Assignments) != want {
		return nil, fmt.Errorf("expected %d assignments, got %d", want, len(resp.Assignments))
	}
	return resp.Assignments, nil
}
