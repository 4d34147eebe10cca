package game

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bent101/go-wordle-helper/internal/dictionary"
	"github.com/bent101/go-wordle-helper/internal/fallback"
	"github.com/bent101/go-wordle-helper/internal/feedback"
	"github.com/bent101/go-wordle-helper/internal/history"
	"github.com/bent101/go-wordle-helper/internal/memo"
	"github.com/bent101/go-wordle-helper/internal/selector"
)

var testWords = []string{
	"raise", "arise", "stare", "crane", "slate", "trace", "crate", "react",
	"caret", "cater", "later", "alter", "alert", "irate", "terse", "tears",
}

func testDict(words ...string) *dictionary.Dictionary {
	if len(words) == 0 {
		words = testWords
	}
	freqs := dictionary.Frequencies{}
	for i, w := range words {
		freqs[w] = float64(len(words) - i)
	}
	return dictionary.New(words, freqs)
}

func testSelector(dict *dictionary.Dictionary, store memo.Store) *selector.Selector {
	cfg := selector.DefaultConfig()
	cfg.Workers = 2
	cfg.ProbeWords = []string{"glyph", "nymph", "whomp"}
	return selector.New(cfg, dict, selector.WithMemo(store))
}

func openStore(t *testing.T) *memo.FileStore {
	t.Helper()
	store, err := memo.OpenFile(filepath.Join(t.TempDir(), "mem.txt"))
	require.NoError(t, err)
	return store
}

// play answers every suggestion with the feedback for solution.
func play(t *testing.T, s *Session, solution string) int {
	t.Helper()
	ctx := context.Background()
	for turn := 1; turn <= 30; turn++ {
		guess, err := s.Suggest(ctx)
		require.NoError(t, err)
		outcome, err := s.Report(feedback.Encode(guess, solution).String())
		require.NoError(t, err)
		if outcome == Solved {
			assert.Equal(t, solution, guess)
			return turn
		}
		if s.Fallback() || slices.Contains(testWords, solution) {
			assert.Contains(t, s.Candidates(), solution)
		}
	}
	t.Fatalf("did not find %q", solution)
	return 0
}

func TestPlaysToSolution(t *testing.T) {
	for _, solution := range []string{"later", "tears", "crane", "raise"} {
		t.Run(solution, func(t *testing.T) {
			store := openStore(t)
			dict := testDict()
			s := New(testSelector(dict, store), dict, WithMemo(store), WithWordLog(store))

			turns := play(t, s, solution)
			assert.LessOrEqual(t, turns, 8)
			assert.False(t, s.Fallback())

			if solution != "raise" {
				w, ok := store.Get(memo.Fingerprint(dict.Words()))
				assert.True(t, ok)
				assert.Equal(t, "raise", w)
			}
		})
	}
}

func TestMemoizedAnswerIsReused(t *testing.T) {
	store := memo.NewMemoryStore()
	dict := testDict()
	s := New(testSelector(dict, store), dict, WithMemo(store))

	_, err := s.Suggest(context.Background())
	require.NoError(t, err)
	// raise against cater leaves caret, cater and later
	_, err = s.Report(feedback.Encode("raise", "cater").String())
	require.NoError(t, err)
	require.Len(t, s.Candidates(), 3)

	w, ok := store.Get(memo.Fingerprint(dict.Words()))
	require.True(t, ok)
	assert.Equal(t, "raise", w)

	require.NoError(t, store.Put(memo.Fingerprint(s.Candidates()), "terse"))
	guess, err := s.Suggest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "terse", guess)
	assert.Equal(t, selector.SourceMemo, s.Ranking().Source)
}

func TestSuggestIsStableUntilReport(t *testing.T) {
	dict := testDict()
	s := New(testSelector(dict, nil), dict)
	a, err := s.Suggest(context.Background())
	require.NoError(t, err)
	b, err := s.Suggest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 1, s.Turn())
}

func TestRejectedGuess(t *testing.T) {
	store := openStore(t)
	dict := testDict()
	s := New(testSelector(dict, store), dict, WithWordLog(store))

	guess, err := s.Suggest(context.Background())
	require.NoError(t, err)
	require.Equal(t, "raise", guess)

	outcome, err := s.Report(" XXXXX ")
	require.NoError(t, err)
	assert.Equal(t, Rejected, outcome)
	assert.NotContains(t, s.Candidates(), "raise")
	assert.Equal(t, []string{"raise"}, store.Excluded())
	assert.Equal(t, 1, s.Turn())

	next, err := s.Suggest(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, "raise", next)

	// the runner-up of the same ranking is offered after a second refusal
	remaining := s.Ranking().Guesses
	require.NotEmpty(t, remaining)
	_, err = s.Report(feedback.Rejected)
	require.NoError(t, err)
	again, err := s.Suggest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, remaining[0], again)
}

func TestMalformedFeedbackLeavesGameUntouched(t *testing.T) {
	dict := testDict()
	s := New(testSelector(dict, nil), dict)

	_, err := s.Report("bbbbb")
	assert.ErrorIs(t, err, ErrNoSuggestion)

	guess, err := s.Suggest(context.Background())
	require.NoError(t, err)
	_, err = s.Report("bbgq")
	assert.ErrorIs(t, err, feedback.ErrInvalidFeedback)
	assert.Equal(t, dict.Len(), len(s.Candidates()))
	assert.Equal(t, 0, s.History().Len())

	again, err := s.Suggest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, guess, again)
}

func TestFallbackWhenDictionaryRunsDry(t *testing.T) {
	store := openStore(t)
	dict := testDict("slate", "alert", "raise", "crane")
	s := New(testSelector(dict, store), dict, WithMemo(store), WithWordLog(store))

	// the solution "craze" is not in the dictionary
	turns := play(t, s, "craze")
	assert.True(t, s.Fallback())
	assert.Greater(t, turns, 1)
	assert.Contains(t, store.Included(), "craze")
}

// brokenStore fails every write, like a memory file on a full disk.
type brokenStore struct{}

var errBroken = errors.New("disk full")

func (brokenStore) Get(string) (string, bool) { return "", false }
func (brokenStore) Put(string, string) error  { return errBroken }
func (brokenStore) Exclude(string) error      { return errBroken }
func (brokenStore) Include(string) error      { return errBroken }

func TestStoreWriteFailuresAreNotFatal(t *testing.T) {
	dict := testDict("slate", "alert", "raise", "crane")
	var store brokenStore
	s := New(testSelector(dict, store), dict, WithMemo(store), WithWordLog(store))

	guess, err := s.Suggest(context.Background())
	require.NoError(t, err)
	require.Equal(t, "raise", guess)
	outcome, err := s.Report(feedback.Rejected)
	require.NoError(t, err)
	assert.Equal(t, Rejected, outcome)

	// craze is not in the dictionary, so solving it records it as a word
	turns := play(t, s, "craze")
	assert.True(t, s.Fallback())
	assert.Greater(t, turns, 1)
	w, ok := s.Solution()
	assert.True(t, ok)
	assert.Equal(t, "craze", w)
}

func TestMemoUsesRankingKey(t *testing.T) {
	store := memo.NewMemoryStore()
	dict := testDict()
	s := New(testSelector(dict, store), dict, WithMemo(store))
	ctx := context.Background()

	_, err := s.Suggest(ctx)
	require.NoError(t, err)
	_, err = s.Report(feedback.Encode("raise", "cater").String())
	require.NoError(t, err)
	guess, err := s.Suggest(ctx)
	require.NoError(t, err)
	key := s.Ranking().Key
	require.NotEmpty(t, key)
	assert.Equal(t, memo.Fingerprint(s.Candidates()), key)

	solution := "later"
	if guess == solution {
		solution = "caret"
	}
	_, err = s.Report(feedback.Encode(guess, solution).String())
	require.NoError(t, err)
	w, ok := store.Get(key)
	require.True(t, ok)
	assert.Equal(t, guess, w)
}

func TestResumeSolvedGame(t *testing.T) {
	dict := testDict()
	h, err := history.FromPairs([]string{"raise", feedback.Encode("raise", "cater").String(), "cater", "ggggg"})
	require.NoError(t, err)

	s, err := Resume(testSelector(dict, nil), dict, h)
	require.NoError(t, err)
	w, ok := s.Solution()
	assert.True(t, ok)
	assert.Equal(t, "cater", w)
	assert.Equal(t, []string{"cater"}, s.Candidates())

	_, err = s.Suggest(context.Background())
	assert.ErrorIs(t, err, ErrSolved)
	_, err = s.Report("ggggg")
	assert.ErrorIs(t, err, ErrNoSuggestion)
}

func TestSuggestAfterSolve(t *testing.T) {
	dict := testDict()
	s := New(testSelector(dict, nil), dict)
	play(t, s, "raise")
	_, err := s.Suggest(context.Background())
	assert.ErrorIs(t, err, ErrSolved)
}

func TestResume(t *testing.T) {
	dict := testDict()
	h, err := history.FromPairs([]string{"raise", feedback.Encode("raise", "cater").String()})
	require.NoError(t, err)

	s, err := Resume(testSelector(dict, nil), dict, h)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Turn())
	assert.Contains(t, s.Candidates(), "cater")
	assert.NotContains(t, s.Candidates(), "raise")
	assert.False(t, s.Fallback())
}

func TestResumeGeneratesWhenNothingFits(t *testing.T) {
	dict := testDict("slate", "alert", "raise")
	h, err := history.FromPairs([]string{"crane", "gggbg"})
	require.NoError(t, err)

	s, err := Resume(testSelector(dict, nil), dict, h)
	require.NoError(t, err)
	assert.True(t, s.Fallback())
	assert.Len(t, s.Candidates(), 25)
}

func TestContradiction(t *testing.T) {
	dict := testDict("slate", "alert", "raise")
	h, err := history.FromPairs([]string{"crane", "ggggg", "slate", "ggggg"})
	require.NoError(t, err)

	_, err = Resume(testSelector(dict, nil), dict, h)
	assert.ErrorIs(t, err, fallback.ErrContradiction)
}

func TestContradictionDuringPlay(t *testing.T) {
	dict := testDict("slate", "alert", "raise")
	h, err := history.FromPairs([]string{"crane", "gggbg"})
	require.NoError(t, err)
	s, err := Resume(testSelector(dict, nil), dict, h)
	require.NoError(t, err)

	_, err = s.Suggest(context.Background())
	require.NoError(t, err)
	// the first letter cannot be both c and a
	s.suggestion = "adieu"
	_, err = s.Report("gbbbb")
	assert.ErrorIs(t, err, fallback.ErrContradiction)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "solved", Solved.String())
	assert.Equal(t, "rejected", Rejected.String())
	assert.Equal(t, "continue", Continue.String())
	assert.Equal(t, "Outcome(9)", Outcome(9).String())
}
