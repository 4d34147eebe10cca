// Package selector picks the next guess for a candidate set.
package selector

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/bent101/go-wordle-helper/internal/fallback"
	"github.com/bent101/go-wordle-helper/internal/history"
	"github.com/bent101/go-wordle-helper/internal/memo"
	"github.com/bent101/go-wordle-helper/internal/scorer"
)

// ErrNoCandidates means there is nothing left to guess. The game cannot
// continue, so it matches fallback.ErrContradiction.
var ErrNoCandidates = fmt.Errorf("no candidate words left to guess: %w", fallback.ErrContradiction)

type Config struct {
	// Opening is the first guess of every game.
	Opening string
	// From turn LateTurn on, the most common candidate is guessed directly.
	LateTurn int
	// Candidate sets smaller than SmallSet are guessed directly.
	SmallSet int

	// ScalingConstant and MinPool bound how many of the most common
	// candidates join the guess pool: n - ScalingConstant*ln(n-2), at least
	// MinPool.
	ScalingConstant float64
	MinPool         int
	// Candidate sets larger than TargetCutoff are simulated against only
	// their first 1/TargetDivisor.
	TargetCutoff  int
	TargetDivisor int

	// Workers bounds the scoring goroutines. 0 means runtime.NumCPU().
	Workers int

	// ProbeWords form the guess pool, with memoized recommendations, once the
	// candidates come from fallback generation.
	ProbeWords []string

	Weights scorer.Weights
}

func DefaultConfig() Config {
	return Config{
		Opening:         "raise",
		LateTurn:        6,
		SmallSet:        3,
		ScalingConstant: 1220,
		MinPool:         10,
		TargetCutoff:    200,
		TargetDivisor:   5,
		ProbeWords:      DefaultProbeWords(),
		Weights:         scorer.DefaultWeights(),
	}
}

// DefaultProbeWords are real words heavy in rare letters.
func DefaultProbeWords() []string {
	return []string{
		"glyph", "lymph", "quite", "nymph", "chuck", "yucky", "whomp", "vouch",
		"pudgy", "moody", "mooch", "jumpy", "howdy", "guppy", "fuzzy", "goofy",
		"cuddy", "cocky", "helix", "latex", "zaxes", "kylix", "bemix", "capax",
		"capex", "minxy", "oxbow", "xylyl", "pyxes", "proxy",
	}
}

// Dictionary is what the selector needs from the known word list.
type Dictionary interface {
	Known(word string) bool
	// Sort orders words most common first.
	Sort(words []string) []string
}

// Progress receives one Add per scored guess.
type Progress interface {
	Add(n int) error
	Finish() error
}

type Source string

const (
	SourceOpening  Source = "opening"
	SourceLateGame Source = "late-game"
	SourceSmallSet Source = "small-set"
	SourceMemo     Source = "memo"
	SourceScored   Source = "scored"
)

// Scored is one simulated guess with its score breakdown.
type Scored struct {
	Record scorer.Record
	Detail scorer.Detail
}

// Ranking is the guesses to try, best first.
type Ranking struct {
	Guesses []string
	Source  Source
	// Key is the fingerprint of the candidate set the ranking was built for.
	Key string
	// Scores is set for SourceScored, in the same order as Guesses.
	Scores []Scored
}

// Pop removes and returns the best remaining guess.
func (r *Ranking) Pop() (string, bool) {
	if len(r.Guesses) == 0 {
		return "", false
	}
	w := r.Guesses[0]
	r.Guesses = r.Guesses[1:]
	if len(r.Scores) > 0 {
		r.Scores = r.Scores[1:]
	}
	return w, true
}

type Request struct {
	// Candidates are the possible solutions, most common first.
	Candidates []string
	History    *history.History
	// Fallback is set once the candidates were generated from letter
	// constraints rather than taken from the dictionary.
	Fallback bool
	// Rejected words were refused by the game and are never suggested.
	// Words already in History are never suggested either.
	Rejected []string
	// Pool overrides the guess pool for the scoring pass.
	Pool []string
}

type Selector struct {
	cfg         Config
	dict        Dictionary
	memo        memo.Store
	logger      *zap.Logger
	newProgress func(total int) Progress
}

type Option func(*Selector)

func WithMemo(store memo.Store) Option {
	return func(s *Selector) { s.memo = store }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Selector) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithProgress reports scoring progress to a fresh Progress per pass.
func WithProgress(fn func(total int) Progress) Option {
	return func(s *Selector) { s.newProgress = fn }
}

func New(cfg Config, dict Dictionary, opts ...Option) *Selector {
	s := &Selector{
		cfg:    cfg,
		dict:   dict,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select ranks the next guesses. In order: the opening on an empty
// history, the most common candidate once the game is late, the rarest
// candidate when only a couple remain, a memoized answer for this exact
// candidate set, and otherwise a full scoring pass.
func (s *Selector) Select(ctx context.Context, req Request) (Ranking, error) {
	start := time.Now()
	rejected := make(map[string]struct{}, len(req.Rejected)+req.History.Len())
	for _, w := range req.Rejected {
		rejected[w] = struct{}{}
	}
	for _, e := range req.History.Entries() {
		rejected[e.Guess] = struct{}{}
	}
	allowed := func(w string) bool {
		_, bad := rejected[w]
		return !bad
	}

	if req.History.Len() == 0 && s.cfg.Opening != "" && allowed(s.cfg.Opening) {
		return s.done(Ranking{Guesses: []string{s.cfg.Opening}, Source: SourceOpening}, req, start), nil
	}

	candidates := slices.DeleteFunc(slices.Clone(req.Candidates), func(w string) bool { return !allowed(w) })
	if len(candidates) == 0 {
		return Ranking{}, ErrNoCandidates
	}
	key := memo.Fingerprint(candidates)

	turn := req.History.Len() + 1
	if s.cfg.LateTurn > 0 && turn >= s.cfg.LateTurn {
		return s.done(Ranking{Guesses: candidates, Source: SourceLateGame, Key: key}, req, start), nil
	}

	if len(candidates) < s.cfg.SmallSet {
		slices.Reverse(candidates)
		return s.done(Ranking{Guesses: candidates, Source: SourceSmallSet, Key: key}, req, start), nil
	}

	if s.memo != nil {
		if w, ok := s.memo.Get(key); ok && allowed(w) {
			return s.done(Ranking{Guesses: []string{w}, Source: SourceMemo, Key: key}, req, start), nil
		}
	}

	targets := s.targets(candidates)
	pool := s.pool(req, candidates, targets, allowed)
	if len(pool) == 0 {
		return Ranking{}, ErrNoCandidates
	}

	scored, err := s.score(ctx, pool, targets)
	if err != nil {
		return Ranking{}, err
	}

	r := Ranking{Source: SourceScored, Key: key, Scores: scored}
	for _, sc := range scored {
		r.Guesses = append(r.Guesses, sc.Record.Word)
	}
	return s.done(r, req, start), nil
}

func (s *Selector) done(r Ranking, req Request, start time.Time) Ranking {
	best := ""
	if len(r.Guesses) > 0 {
		best = r.Guesses[0]
	}
	s.logger.Debug("selected guess",
		zap.String("guess", best),
		zap.String("source", string(r.Source)),
		zap.Int("turn", req.History.Len()+1),
		zap.Int("candidates", len(req.Candidates)),
		zap.Int("ranked", len(r.Guesses)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return r
}

// targets is the prefix of the candidates the pool is simulated against.
func (s *Selector) targets(candidates []string) []string {
	n := len(candidates)
	if s.cfg.TargetCutoff > 0 && s.cfg.TargetDivisor > 0 && n > s.cfg.TargetCutoff {
		return candidates[:max(1, n/s.cfg.TargetDivisor)]
	}
	return candidates
}

// PoolSize is how many of n candidates, most common first, join the guess
// pool. It shrinks logarithmically as n grows, never below minPool.
func PoolSize(n int, scalingConstant float64, minPool int) int {
	if n <= 2 {
		return n
	}
	scaled := n - int(scalingConstant*math.Log(float64(n-2)))
	return min(n, max(minPool, min(scaled, n)))
}

func (s *Selector) pool(req Request, candidates, targets []string, allowed func(string) bool) []string {
	var pool []string
	switch {
	case req.Pool != nil:
		pool = slices.Clone(req.Pool)
	case req.Fallback:
		if rec, ok := s.memo.(interface{ Recommendations() []string }); ok {
			pool = append(pool, rec.Recommendations()...)
		}
		pool = append(pool, s.cfg.ProbeWords...)
	default:
		size := PoolSize(len(candidates), s.cfg.ScalingConstant, s.cfg.MinPool)
		pool = append(slices.Clone(candidates[:size]), targets...)
	}

	ret := distinct(pool, allowed)
	if len(ret) == 0 && req.Fallback && req.Pool == nil {
		// every probe has been played
		ret = distinct(slices.Clone(targets), allowed)
	}
	if s.dict != nil {
		return s.dict.Sort(ret)
	}
	return ret
}

func distinct(words []string, allowed func(string) bool) []string {
	seen := make(map[string]struct{}, len(words))
	ret := words[:0]
	for _, w := range words {
		if _, dup := seen[w]; dup || !allowed(w) {
			continue
		}
		seen[w] = struct{}{}
		ret = append(ret, w)
	}
	return ret
}

func (s *Selector) known(w string) bool {
	return s.dict == nil || s.dict.Known(w)
}
