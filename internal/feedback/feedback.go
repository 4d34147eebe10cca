// Package feedback encodes and decodes the per-letter clues the game returns
// for a guess.
package feedback

import (
	"errors"
	"fmt"
	"strings"
)

// Length is the number of letters in every word and clue.
const Length = 5

// Rejected is the input a player types when the game refused the guess as
// not being a word.
const Rejected = "xxxxx"

var ErrInvalidFeedback = errors.New("feedback must be 5 characters of b, y or g")

type Symbol uint8

const (
	Black Symbol = iota
	Yellow
	Green
)

var symbolChars = [...]byte{Black: 'b', Yellow: 'y', Green: 'g'}

func (s Symbol) String() string {
	if int(s) >= len(symbolChars) {
		return "?"
	}
	return string(symbolChars[s])
}

// Mask selects a subset of symbols for CountLetter.
type Mask uint8

const (
	MaskBlack  Mask = 1 << Black
	MaskYellow Mask = 1 << Yellow
	MaskGreen  Mask = 1 << Green

	// Present counts positions marked yellow or green.
	Present = MaskYellow | MaskGreen
	// Any counts every occurrence regardless of the clue.
	Any = MaskBlack | MaskYellow | MaskGreen
)

func (m Mask) Has(s Symbol) bool {
	return m&(1<<s) != 0
}

// Feedback is the clue for each letter position of one guess. It only has
// meaning alongside the guess that produced it.
type Feedback [Length]Symbol

// AllGreen is the feedback of a solved game.
var AllGreen = Feedback{Green, Green, Green, Green, Green}

// Parse reads a clue string such as "bygbb".
func Parse(s string) (Feedback, error) {
	var fb Feedback
	if len(s) != Length {
		return fb, fmt.Errorf("%w: got %q", ErrInvalidFeedback, s)
	}
	for i := 0; i < Length; i++ {
		switch s[i] {
		case 'b':
			fb[i] = Black
		case 'y':
			fb[i] = Yellow
		case 'g':
			fb[i] = Green
		default:
			return fb, fmt.Errorf("%w: got %q", ErrInvalidFeedback, s)
		}
	}
	return fb, nil
}

// MustParse is Parse for literals known to be well formed.
func MustParse(s string) Feedback {
	fb, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return fb
}

// IsValid reports whether s is a well formed clue string.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Normalize trims and lowercases raw player input.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (f Feedback) String() string {
	b := make([]byte, Length)
	for i, s := range f {
		b[i] = symbolChars[s]
	}
	return string(b)
}

func (f Feedback) Solved() bool {
	return f == AllGreen
}

// Rank is the feedback read as a base 3 number, first position most
// significant.
func (f Feedback) Rank() uint8 {
	var ret uint8
	for _, s := range f {
		ret = ret*3 + uint8(s)
	}
	return ret
}

func FromRank(rank uint8) Feedback {
	var fb Feedback
	for i := Length - 1; i >= 0; i-- {
		fb[i] = Symbol(rank % 3)
		rank /= 3
	}
	return fb
}

// SpaceSize is the number of distinct feedback values, 3^5.
const SpaceSize = 243

var space = func() []Feedback {
	ret := make([]Feedback, SpaceSize)
	for r := range SpaceSize {
		ret[r] = FromRank(uint8(r))
	}
	return ret
}()

// Space returns every feedback value in rank order. The slice is shared and
// must not be modified.
func Space() []Feedback {
	return space
}

// CountLetter counts the positions of word holding letter whose symbol in fb
// is selected by mask.
func CountLetter(word string, letter byte, fb Feedback, mask Mask) int {
	n := 0
	for i := 0; i < Length && i < len(word); i++ {
		if word[i] == letter && mask.Has(fb[i]) {
			n++
		}
	}
	return n
}

// Count counts every occurrence of letter in word.
func Count(word string, letter byte) int {
	return strings.Count(word, string(letter))
}

// Encode returns the feedback the game gives for guess when the solution is
// actual. Greens are assigned first; the remaining letters become yellow
// left to right while unmatched copies of the letter are left in actual.
func Encode(guess, actual string) Feedback {
	var fb Feedback
	var unmatched [26]int

	for i := 0; i < Length; i++ {
		if guess[i] == actual[i] {
			fb[i] = Green
		} else {
			unmatched[actual[i]-'a']++
		}
	}

	for i := 0; i < Length; i++ {
		if fb[i] == Green {
			continue
		}
		c := guess[i] - 'a'
		if unmatched[c] > 0 {
			fb[i] = Yellow
			unmatched[c]--
		}
	}

	return fb
}

// IsWord reports whether s is a playable word: exactly 5 lowercase ASCII
// letters.
func IsWord(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < Length; i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}
