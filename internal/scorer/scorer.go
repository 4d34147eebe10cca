// Package scorer simulates a guess against a candidate list and rates how
// well the resulting partitions narrow the list down.
//
// The rating is a hand-tuned heuristic: the mean, spread and worst case of
// the partition sizes, scaled by three weights. It is not an entropy
// calculation and makes no optimality claim.
package scorer

import (
	"math"

	"github.com/bent101/go-wordle-helper/internal/feedback"
	"github.com/bent101/go-wordle-helper/internal/filter"
)

// Record holds, for one guess, the number of candidates left under every
// feedback value that leaves at least one.
type Record struct {
	Word  string
	Sizes []int
}

// Score filters candidates by every feedback in space. It only reads
// candidates and space, so calls for different guesses may run concurrently.
func Score(guess string, candidates []string, space []feedback.Feedback) Record {
	rec := Record{Word: guess}
	for _, fb := range space {
		if n := filter.Compile(guess, fb).Count(candidates); n > 0 {
			rec.Sizes = append(rec.Sizes, n)
		}
	}
	return rec
}

type Weights struct {
	// FrequencyBase and FrequencyScale give the rarity weight
	// base + (poolSize-rank)/(poolSize*scale).
	FrequencyBase  float64 `yaml:"frequency_base"`
	FrequencyScale float64 `yaml:"frequency_scale"`
	// UnknownWordPenalty multiplies guesses missing from the dictionary.
	UnknownWordPenalty float64 `yaml:"unknown_word_penalty"`
	// VarianceSentinel stands in for the variance of fewer than two sizes.
	VarianceSentinel float64 `yaml:"variance_sentinel"`
}

func DefaultWeights() Weights {
	return Weights{
		FrequencyBase:      0.8,
		FrequencyScale:     5,
		UnknownWordPenalty: 5,
		VarianceSentinel:   100000,
	}
}

// Evaluator turns Records into composite scores for one selection call.
// Lower is better.
type Evaluator struct {
	weights  Weights
	poolSize int
	targets  map[string]struct{}
	known    func(string) bool
}

// NewEvaluator prepares scoring for a pool of poolSize guesses simulated
// against targets. known reports dictionary membership; nil treats every
// word as known.
func NewEvaluator(w Weights, poolSize int, targets []string, known func(string) bool) *Evaluator {
	set := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		set[t] = struct{}{}
	}
	return &Evaluator{weights: w, poolSize: poolSize, targets: set, known: known}
}

// Detail is the breakdown of one composite score.
type Detail struct {
	Mean, Variance, Max float64

	RarityWeight       float64
	PlausibilityWeight float64
	UnknownWeight      float64

	Score float64
}

// Explain scores rec, where rank is the guess's index in the frequency
// sorted pool.
func (e *Evaluator) Explain(rec Record, rank int) Detail {
	if len(rec.Sizes) == 0 {
		return Detail{Score: math.Inf(1)}
	}

	d := Detail{
		Mean: mean(rec.Sizes),
		Max:  float64(maxOf(rec.Sizes)),
	}
	if v, ok := variance(rec.Sizes); ok {
		d.Variance = v
	} else {
		d.Variance = e.weights.VarianceSentinel
	}

	d.RarityWeight = e.weights.FrequencyBase
	if e.poolSize > 0 && e.weights.FrequencyScale != 0 {
		d.RarityWeight += float64(e.poolSize-rank) / (float64(e.poolSize) * e.weights.FrequencyScale)
	}

	d.PlausibilityWeight = 1
	if _, ok := e.targets[rec.Word]; ok {
		d.PlausibilityWeight = 1 - 1/float64(len(e.targets)+1)
	}

	d.UnknownWeight = 1
	if e.known != nil && !e.known(rec.Word) {
		d.UnknownWeight = e.weights.UnknownWordPenalty
	}

	d.Score = (d.Mean + d.Variance + d.Max) * d.RarityWeight * d.PlausibilityWeight * d.UnknownWeight
	return d
}

func (e *Evaluator) Composite(rec Record, rank int) float64 {
	return e.Explain(rec, rank).Score
}
