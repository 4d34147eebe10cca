// Package fallback builds candidate words straight from the letter
// constraints of a game's history, for when the solution is not in the
// dictionary.
package fallback

import (
	"errors"
	"slices"

	"github.com/bits-and-blooms/bitset"

	"github.com/bent101/go-wordle-helper/internal/feedback"
	"github.com/bent101/go-wordle-helper/internal/filter"
	"github.com/bent101/go-wordle-helper/internal/history"
)

// ErrContradiction means no string at all satisfies the history, so some
// feedback must have been entered wrong.
var ErrContradiction = errors.New("no word satisfies the feedback history")

const letters = 26

// Alphabet returns the letters that may still appear in the solution: every
// letter except those a guess used without any yellow or green mark.
func Alphabet(h *history.History) *bitset.BitSet {
	alpha := bitset.New(letters)
	for i := uint(0); i < letters; i++ {
		alpha.Set(i)
	}
	for _, e := range h.Entries() {
		for i := 0; i < feedback.Length; i++ {
			c := e.Guess[i]
			if feedback.CountLetter(e.Guess, c, e.Feedback, feedback.Present) == 0 {
				alpha.Clear(uint(c - 'a'))
			}
		}
	}
	return alpha
}

// Template returns the letters known green at each position, 0 where
// unknown. Later guesses win if the history disagrees with itself.
func Template(h *history.History) [feedback.Length]byte {
	var tmpl [feedback.Length]byte
	for _, e := range h.Entries() {
		for i, s := range e.Feedback {
			if s == feedback.Green {
				tmpl[i] = e.Guess[i]
			}
		}
	}
	return tmpl
}

// slots lists, per position, the letters worth trying there. Open slots get
// the alphabet minus any letter a guess had at that position without a green.
func slots(h *history.History) [feedback.Length][]byte {
	alpha := Alphabet(h)
	tmpl := Template(h)
	entries := h.Entries()

	var ret [feedback.Length][]byte
	for pos := 0; pos < feedback.Length; pos++ {
		if tmpl[pos] != 0 {
			ret[pos] = []byte{tmpl[pos]}
			continue
		}
		allowed := alpha.Clone()
		for _, e := range entries {
			if e.Feedback[pos] != feedback.Green {
				allowed.Clear(uint(e.Guess[pos] - 'a'))
			}
		}
		for i, ok := allowed.NextSet(0); ok; i, ok = allowed.NextSet(i + 1) {
			ret[pos] = append(ret[pos], byte('a'+i))
		}
	}
	return ret
}

// Each calls yield with every word, in alphabetical order, that fits the
// known greens, uses only surviving letters and passes every entry of h.
// It stops early when yield returns false.
func Each(h *history.History, yield func(string) bool) {
	choices := slots(h)
	for _, c := range choices {
		if len(c) == 0 {
			return
		}
	}

	entries := h.Entries()
	matchers := make([]*filter.Matcher, len(entries))
	for i, e := range entries {
		matchers[i] = filter.Compile(e.Guess, e.Feedback)
	}

	// odometer over the slot choices, last position turning fastest
	var idx [feedback.Length]int
	buf := make([]byte, feedback.Length)
	for {
		for pos := range buf {
			buf[pos] = choices[pos][idx[pos]]
		}
		word := string(buf)
		if matchesAll(matchers, word) && !yield(word) {
			return
		}

		pos := feedback.Length - 1
		for ; pos >= 0; pos-- {
			idx[pos]++
			if idx[pos] < len(choices[pos]) {
				break
			}
			idx[pos] = 0
		}
		if pos < 0 {
			return
		}
	}
}

func matchesAll(matchers []*filter.Matcher, word string) bool {
	for _, m := range matchers {
		if !m.Match(word) {
			return false
		}
	}
	return true
}

// Generate collects Each into a sorted, duplicate free list. An empty
// result is ErrContradiction.
func Generate(h *history.History) ([]string, error) {
	var words []string
	Each(h, func(w string) bool {
		words = append(words, w)
		return true
	})
	slices.Sort(words)
	words = slices.Compact(words)
	if len(words) == 0 {
		return nil, ErrContradiction
	}
	return words, nil
}
