package review

import (
	"fmt"
	"io"
	"unicode"

	"github.com/eiannone/keyboard"
	"github.com/fatih/color"

	"github.com/farthing-dev/farthing/internal/model"
	"github.com/farthing-dev/farthing/internal/reconcile"
)

// Prompt is the interactive duplicate reviewer. For each candidate it
// renders the ledger row next to the incoming statement row and reads a
// single key.
type Prompt struct {
	out     io.Writer
	readKey func() (rune, keyboard.Key, error)
}

// NewPrompt creates a Prompt writing to out and reading the keyboard.
func NewPrompt(out io.Writer) *Prompt {
	return &Prompt{out: out, readKey: keyboard.GetSingleKey}
}

// Decide renders the candidate and blocks until the user picks
// [m]erge, [k]eep, [a]dd or [q]uit. Unrecognized keys re-prompt.
func (p *Prompt) Decide(dup model.PotentialDuplicate) (reconcile.Decision, error) {
	p.render(dup)
	for {
		ch, key, err := p.readKey()
		if err != nil {
			return 0, fmt.Errorf("reading key: %w", err)
		}
		if key == keyboard.KeyEsc || key == keyboard.KeyCtrlC {
			return 0, ErrAbandoned
		}
		switch unicode.ToLower(ch) {
		case 'm':
			return reconcile.Merge, nil
		case 'k':
			return reconcile.KeepExisting, nil
		case 'a':
			return reconcile.AddAsNew, nil
		case 'q':
			return 0, ErrAbandoned
		}
	}
}

func (p *Prompt) render(dup model.PotentialDuplicate) {
	fmt.Fprintln(p.out)
	color.New(color.FgYellow, color.Bold).Fprintf(p.out, "Possible duplicate (statement row %d)\n", dup.Index+1)

	fmt.Fprintf(p.out, "  in ledger: %s  %10s  %s\n",
		dup.Existing.Date.Format("2006-01-02"),
		amountString(dup.Existing.Amount.StringFixed(2), dup.Existing.Amount.Sign()),
		dup.Existing.Description)
	fmt.Fprintf(p.out, "  incoming:  %s  %10s  %s\n",
		dup.Incoming.Date.Format("2006-01-02"),
		amountString(dup.Incoming.Amount.StringFixed(2), dup.Incoming.Amount.Sign()),
		dup.Incoming.Description)

	fmt.Fprintf(p.out, "[m]erge statement details  [k]eep existing  [a]dd as new  [q]uit review: ")
}

func amountString(s string, sign int) string {
	if sign < 0 {
		return color.RedString(s)
	}
	return color.GreenString(s)
}
