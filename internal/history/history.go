// Package history records the guesses of one game and the feedback each
// received, in turn order.
package history

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bent101/go-wordle-helper/internal/feedback"
)

var (
	ErrDuplicateGuess = errors.New("guess already in history")
	ErrInvalidGuess   = errors.New("guess must be 5 lowercase letters")
)

type Entry struct {
	Guess    string
	Feedback feedback.Feedback
}

func (e Entry) String() string {
	return e.Guess + ":" + e.Feedback.String()
}

// History is append-only. The zero value is an empty history.
type History struct {
	entries []Entry
	index   map[string]int
}

func New() *History {
	return &History{}
}

// Add appends the feedback for guess. A word can only be recorded once.
func (h *History) Add(guess string, fb feedback.Feedback) error {
	if !feedback.IsWord(guess) {
		return fmt.Errorf("%w: %q", ErrInvalidGuess, guess)
	}
	if _, ok := h.index[guess]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateGuess, guess)
	}
	if h.index == nil {
		h.index = make(map[string]int)
	}
	h.index[guess] = len(h.entries)
	h.entries = append(h.entries, Entry{Guess: guess, Feedback: fb})
	return nil
}

func (h *History) Len() int {
	if h == nil {
		return 0
	}
	return len(h.entries)
}

// Entries returns a copy of the history in turn order.
func (h *History) Entries() []Entry {
	if h == nil {
		return nil
	}
	ret := make([]Entry, len(h.entries))
	copy(ret, h.entries)
	return ret
}

func (h *History) Lookup(guess string) (feedback.Feedback, bool) {
	if h == nil {
		return feedback.Feedback{}, false
	}
	i, ok := h.index[guess]
	if !ok {
		return feedback.Feedback{}, false
	}
	return h.entries[i].Feedback, true
}

func (h *History) String() string {
	parts := make([]string, 0, h.Len())
	for _, e := range h.Entries() {
		parts = append(parts, e.String())
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// FromPairs builds a history from alternating guess and feedback strings,
// e.g. the command line arguments "raise bybbg cloud bbgbb".
func FromPairs(args []string) (*History, error) {
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("history needs guess/feedback pairs, got %d values", len(args))
	}
	h := New()
	for i := 0; i < len(args); i += 2 {
		guess := feedback.Normalize(args[i])
		fb, err := feedback.Parse(feedback.Normalize(args[i+1]))
		if err != nil {
			return nil, fmt.Errorf("feedback for %q: %w", guess, err)
		}
		if err := h.Add(guess, fb); err != nil {
			return nil, err
		}
	}
	return h, nil
}
