// Package game drives one game: it asks the selector for a guess, applies
// the feedback the player reports, and falls back to generated candidates
// when the dictionary runs dry.
package game

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/bent101/go-wordle-helper/internal/dictionary"
	"github.com/bent101/go-wordle-helper/internal/fallback"
	"github.com/bent101/go-wordle-helper/internal/feedback"
	"github.com/bent101/go-wordle-helper/internal/filter"
	"github.com/bent101/go-wordle-helper/internal/history"
	"github.com/bent101/go-wordle-helper/internal/memo"
	"github.com/bent101/go-wordle-helper/internal/selector"
)

// ErrNoSuggestion is returned by Report when no guess is outstanding.
var ErrNoSuggestion = errors.New("no guess has been suggested")

// ErrSolved is returned by Suggest once the solution is known.
var ErrSolved = errors.New("game already solved")

// WordLog records words the game accepted or refused. memo.FileStore
// implements it.
type WordLog interface {
	Exclude(word string) error
	Include(word string) error
}

type Outcome int

const (
	// Continue means the feedback was applied and the game goes on.
	Continue Outcome = iota
	// Rejected means the game refused the guess as not a word.
	Rejected
	// Solved means the guess was the solution.
	Solved
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Rejected:
		return "rejected"
	case Solved:
		return "solved"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

type Session struct {
	sel    *selector.Selector
	dict   *dictionary.Dictionary
	store  memo.Store
	words  WordLog
	logger *zap.Logger

	candidates []string
	history    *history.History
	fallback   bool
	rejected   []string

	ranking    selector.Ranking
	suggestion string
	solution   string
}

type Option func(*Session)

func WithMemo(store memo.Store) Option {
	return func(s *Session) { s.store = store }
}

func WithWordLog(log WordLog) Option {
	return func(s *Session) { s.words = log }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New starts a game over the whole dictionary.
func New(sel *selector.Selector, dict *dictionary.Dictionary, opts ...Option) *Session {
	s := &Session{
		sel:        sel,
		dict:       dict,
		logger:     zap.NewNop(),
		candidates: dict.Words(),
		history:    history.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resume replays feedback the player already has, e.g. from a game started
// elsewhere. If it eliminates every dictionary word, candidates are
// generated from the letter constraints. An all-green entry ends the game.
func Resume(sel *selector.Selector, dict *dictionary.Dictionary, h *history.History, opts ...Option) (*Session, error) {
	s := New(sel, dict, opts...)
	for _, e := range h.Entries() {
		if err := s.history.Add(e.Guess, e.Feedback); err != nil {
			return nil, err
		}
		if e.Feedback.Solved() {
			s.solution = e.Guess
		}
	}
	if s.solution != "" {
		s.candidates = []string{s.solution}
		return s, nil
	}
	s.candidates = dict.Sort(filter.ApplyHistory(s.candidates, s.history))
	if len(s.candidates) == 0 {
		if err := s.regenerate(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Session) Candidates() []string {
	return slices.Clone(s.candidates)
}

func (s *Session) History() *history.History {
	return s.history
}

// Turn is the 1-based number of the next guess.
func (s *Session) Turn() int {
	return s.history.Len() + 1
}

// Fallback reports whether the candidates were generated rather than taken
// from the dictionary.
func (s *Session) Fallback() bool {
	return s.fallback
}

// Solution returns the solved word, if the game is over.
func (s *Session) Solution() (string, bool) {
	return s.solution, s.solution != ""
}

// Ranking is what remains of the current ranking after the last suggestion.
func (s *Session) Ranking() selector.Ranking {
	return s.ranking
}

// Suggest returns the next guess to play. Repeated calls without a Report
// return the same word.
func (s *Session) Suggest(ctx context.Context) (string, error) {
	if s.solution != "" {
		return "", ErrSolved
	}
	if s.suggestion != "" {
		return s.suggestion, nil
	}

	w, ok := s.ranking.Pop()
	if !ok {
		r, err := s.sel.Select(ctx, selector.Request{
			Candidates: s.candidates,
			History:    s.history,
			Fallback:   s.fallback,
			Rejected:   s.rejected,
		})
		if err != nil {
			return "", err
		}
		s.ranking = r
		if w, ok = s.ranking.Pop(); !ok {
			return "", selector.ErrNoCandidates
		}
	}
	s.suggestion = w
	return w, nil
}

// Report applies the player's feedback for the outstanding suggestion. raw
// is either a b/y/g string or feedback.Rejected. Malformed input returns
// feedback.ErrInvalidFeedback and leaves the game untouched. A history that
// no word can satisfy returns fallback.ErrContradiction.
func (s *Session) Report(raw string) (Outcome, error) {
	if s.suggestion == "" {
		return Continue, ErrNoSuggestion
	}
	raw = feedback.Normalize(raw)
	guess := s.suggestion

	if raw == feedback.Rejected {
		s.reject(guess)
		return Rejected, nil
	}

	fb, err := feedback.Parse(raw)
	if err != nil {
		return Continue, err
	}

	if fb.Solved() {
		if s.fallback || !s.dict.Known(guess) {
			s.include(guess)
		}
		s.suggestion = ""
		s.solution = guess
		s.candidates = []string{guess}
		return Solved, nil
	}

	before := s.candidates
	key := s.ranking.Key
	if err := s.history.Add(guess, fb); err != nil {
		return Continue, err
	}
	s.candidates = s.dict.Sort(filter.Apply(s.candidates, guess, fb))
	s.suggestion = ""
	s.ranking = selector.Ranking{}

	if !s.dict.Known(guess) {
		s.include(guess)
	}
	s.remember(key, before, guess)

	s.logger.Debug("applied feedback",
		zap.String("guess", guess),
		zap.String("feedback", fb.String()),
		zap.Int("before", len(before)),
		zap.Int("after", len(s.candidates)),
	)

	if len(s.candidates) == 0 {
		if err := s.regenerate(); err != nil {
			return Continue, err
		}
	}
	return Continue, nil
}

// reject drops a word the game refused. The rest of the current ranking is
// kept, so the next Suggest offers the runner-up.
func (s *Session) reject(word string) {
	s.suggestion = ""
	if !slices.Contains(s.rejected, word) {
		s.rejected = append(s.rejected, word)
	}
	s.candidates = slices.DeleteFunc(s.candidates, func(w string) bool { return w == word })
	// the ranking was built for a set that still held word
	s.ranking.Key = ""
	if s.words != nil {
		if err := s.words.Exclude(word); err != nil {
			s.logger.Warn("could not record rejected word", zap.String("word", word), zap.Error(err))
		}
	}
}

func (s *Session) include(word string) {
	if s.words == nil {
		return
	}
	if err := s.words.Include(word); err != nil {
		s.logger.Warn("could not record accepted word", zap.String("word", word), zap.Error(err))
	}
}

// remember memoizes guess as the answer for the candidate set it was
// played against. key is the ranking's fingerprint of that set, if it has one.
func (s *Session) remember(key string, candidates []string, guess string) {
	if s.store == nil || len(candidates) == 0 {
		return
	}
	if key == "" {
		key = memo.Fingerprint(candidates)
	}
	if err := s.store.Put(key, guess); err != nil {
		s.logger.Warn("could not record memoized guess", zap.Error(err))
	}
}

func (s *Session) regenerate() error {
	s.logger.Info("no dictionary word fits the feedback, generating candidates",
		zap.Stringer("history", s.history))

	words, err := fallback.Generate(s.history)
	if err != nil {
		return err
	}
	drop := make(map[string]struct{}, len(s.rejected))
	for _, w := range s.rejected {
		drop[w] = struct{}{}
	}
	if el, ok := s.words.(interface{ Excluded() []string }); ok {
		for _, w := range el.Excluded() {
			drop[w] = struct{}{}
		}
	}
	words = slices.DeleteFunc(words, func(w string) bool {
		_, bad := drop[w]
		return bad
	})
	if len(words) == 0 {
		return fallback.ErrContradiction
	}
	s.candidates = s.dict.Sort(words)
	s.fallback = true
	s.ranking = selector.Ranking{}
	return nil
}
