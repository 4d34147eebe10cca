// Package dictionary holds the known playable words and their frequency
// ranking.
package dictionary

import (
	"cmp"
	"slices"

	"github.com/bent101/go-wordle-helper/internal/feedback"
)

// Ranker scores how common a word is. Higher is more common. It is only
// used for ordering.
type Ranker interface {
	Rank(word string) float64
}

// Frequencies is a Ranker backed by corpus counts. Missing words rank 0.
type Frequencies map[string]float64

func (f Frequencies) Rank(word string) float64 {
	return f[word]
}

// SortByFrequency returns a copy of words ordered most common first, ties
// broken alphabetically.
func SortByFrequency(words []string, r Ranker) []string {
	ret := slices.Clone(words)
	if r == nil {
		slices.Sort(ret)
		return ret
	}
	slices.SortStableFunc(ret, func(a, b string) int {
		if c := cmp.Compare(r.Rank(b), r.Rank(a)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return ret
}

// Dictionary is an immutable, frequency ordered set of known words.
type Dictionary struct {
	words  []string
	known  map[string]struct{}
	ranker Ranker
}

// New keeps the playable words of words, dropping duplicates.
func New(words []string, r Ranker) *Dictionary {
	known := make(map[string]struct{}, len(words))
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if !feedback.IsWord(w) {
			continue
		}
		if _, ok := known[w]; ok {
			continue
		}
		known[w] = struct{}{}
		kept = append(kept, w)
	}
	return &Dictionary{
		words:  SortByFrequency(kept, r),
		known:  known,
		ranker: r,
	}
}

// With returns a dictionary with includes added and excludes removed.
func (d *Dictionary) With(includes, excludes []string) *Dictionary {
	drop := make(map[string]struct{}, len(excludes))
	for _, w := range excludes {
		drop[w] = struct{}{}
	}
	words := make([]string, 0, len(d.words)+len(includes))
	for _, w := range append(slices.Clone(d.words), includes...) {
		if _, ok := drop[w]; !ok {
			words = append(words, w)
		}
	}
	return New(words, d.ranker)
}

// Words returns the words most common first. The caller owns the slice.
func (d *Dictionary) Words() []string {
	return slices.Clone(d.words)
}

func (d *Dictionary) Len() int {
	return len(d.words)
}

func (d *Dictionary) Known(word string) bool {
	_, ok := d.known[word]
	return ok
}

func (d *Dictionary) Rank(word string) float64 {
	if d.ranker == nil {
		return 0
	}
	return d.ranker.Rank(word)
}

// Sort orders words most common first using the dictionary's ranker.
func (d *Dictionary) Sort(words []string) []string {
	return SortByFrequency(words, d.ranker)
}
