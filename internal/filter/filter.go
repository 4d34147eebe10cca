// Package filter narrows a candidate word list to the words consistent with
// the feedback a guess received.
package filter

import (
	"github.com/bent101/go-wordle-helper/internal/bitvec"
	"github.com/bent101/go-wordle-helper/internal/feedback"
	"github.com/bent101/go-wordle-helper/internal/history"
)

// Matcher is one guess and its feedback compiled into a word predicate.
// Each position's rule reads only the guess and its feedback, so the rules
// can be checked in any order and applying a Matcher twice changes nothing.
type Matcher struct {
	guess string
	fb    feedback.Feedback
	valid bool

	// copies of each letter the guess had marked yellow or green
	present [26]int
	// copies of each letter the guess had marked yellow
	yellow [26]int
}

func Compile(guess string, fb feedback.Feedback) *Matcher {
	m := &Matcher{guess: guess, fb: fb, valid: feedback.IsWord(guess)}
	if !m.valid {
		return m
	}
	for i := 0; i < feedback.Length; i++ {
		c := guess[i] - 'a'
		switch fb[i] {
		case feedback.Green:
			m.present[c]++
		case feedback.Yellow:
			m.present[c]++
			m.yellow[c]++
		}
	}
	return m
}

// Match reports whether word could be the solution given the feedback. A
// matcher compiled from a malformed guess matches nothing.
//
//   - green: the word has the guessed letter at that position.
//   - yellow: the word has a different letter there, and at least as many
//     copies of the letter outside this feedback's green positions as the
//     guess had yellows for it.
//   - black: the word has a different letter there, and no more copies of
//     the letter in total than the guess had marked yellow or green.
func (m *Matcher) Match(word string) bool {
	if !m.valid || !feedback.IsWord(word) {
		return false
	}
	for i := 0; i < feedback.Length; i++ {
		c := m.guess[i]
		switch m.fb[i] {
		case feedback.Green:
			if word[i] != c {
				return false
			}
		case feedback.Yellow:
			if word[i] == c {
				return false
			}
			if feedback.CountLetter(word, c, m.fb, feedback.MaskBlack|feedback.MaskYellow) < m.yellow[c-'a'] {
				return false
			}
		case feedback.Black:
			if word[i] == c {
				return false
			}
			if feedback.Count(word, c) > m.present[c-'a'] {
				return false
			}
		}
	}
	return true
}

// Count is the number of candidates that match, without allocating.
func (m *Matcher) Count(candidates []string) int {
	n := 0
	for _, w := range candidates {
		if m.Match(w) {
			n++
		}
	}
	return n
}

// Mask marks the indices of the candidates that match.
func (m *Matcher) Mask(candidates []string) *bitvec.Bitvec {
	bv := bitvec.New(len(candidates))
	for i, w := range candidates {
		if m.Match(w) {
			bv.Set(i)
		}
	}
	return bv
}

// Apply returns the candidates consistent with guess having received fb, in
// their original order. The input slice is not modified.
func Apply(candidates []string, guess string, fb feedback.Feedback) []string {
	return Select(candidates, Compile(guess, fb).Mask(candidates))
}

// ApplyString is Apply for raw feedback text. Malformed feedback leaves the
// candidates unchanged and returns feedback.ErrInvalidFeedback.
func ApplyString(candidates []string, guess, raw string) ([]string, error) {
	fb, err := feedback.Parse(raw)
	if err != nil {
		return candidates, err
	}
	return Apply(candidates, guess, fb), nil
}

// ApplyHistory applies every entry of h, intersecting one mask per entry.
func ApplyHistory(candidates []string, h *history.History) []string {
	mask := bitvec.Full(len(candidates))
	for _, e := range h.Entries() {
		if mask.Count == 0 {
			break
		}
		mask = mask.And(Compile(e.Guess, e.Feedback).Mask(candidates))
	}
	return Select(candidates, mask)
}

// Select returns the candidates whose index is set in mask.
func Select(candidates []string, mask *bitvec.Bitvec) []string {
	ret := make([]string, 0, mask.Count)
	for _, i := range mask.Indices() {
		ret = append(ret, candidates[i])
	}
	return ret
}
