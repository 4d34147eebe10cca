package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bent101/go-wordle-helper/internal/feedback"
	"github.com/bent101/go-wordle-helper/internal/history"
)

var words = []string{
	"apple", "angle", "ankle", "ample", "allot", "atoll", "alloy", "llama",
	"raise", "arise", "stare", "crane", "slate", "there", "three", "eerie",
	"elope", "geese", "emcee", "evoke", "abode", "speed", "abide", "sissy",
	"mamma", "puppy", "kayak", "level", "fluff", "jazzy", "queue", "vivid",
	"hello", "world", "pizza", "sassy", "tatty", "eager", "agree", "eagle",
}

func TestScenarioApple(t *testing.T) {
	dict := []string{"apple", "angle", "ankle", "ample"}

	fb := feedback.Encode("apple", "ankle")
	require.Equal(t, "gbbgg", fb.String())
	assert.Equal(t, []string{"angle", "ankle"}, Apply(dict, "apple", fb))

	// angle and ankle only differ where apple has a black p, so a second guess
	// separates them.
	fb = feedback.Encode("angle", "ankle")
	require.Equal(t, "ggbgg", fb.String())
	assert.Equal(t, []string{"ankle"}, Apply(Apply(dict, "apple", feedback.MustParse("gbbgg")), "angle", fb))
}

func TestDuplicateLetters(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		guess, fb  string
		want       []string
	}{
		{
			name:       "double l, single a",
			candidates: []string{"allot", "atoll", "alloy", "alarm", "slyly", "ileal", "aloha", "llama"},
			guess:      "llama",
			fb:         "ygybb",
			want:       []string{"allot", "alloy", "ileal"},
		},
		{
			name:       "black caps letter count",
			candidates: []string{"elope", "eerie", "there", "emcee", "evoke", "abode"},
			guess:      "geese",
			fb:         "bybbg",
			want:       []string{"elope", "evoke"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyString(tt.candidates, tt.guess, tt.fb)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ApplyString() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRoundTripKeepsActual(t *testing.T) {
	for _, guess := range words {
		for _, actual := range words {
			fb := feedback.Encode(guess, actual)
			assert.True(t, Compile(guess, fb).Match(actual), "%s vs %s (%s)", guess, actual, fb)
		}
	}
}

func TestEncodedFeedbackPartitionsCandidates(t *testing.T) {
	// Every candidate is kept by its own encoded feedback, so the filtered
	// sets cover the candidate list.
	for _, guess := range []string{"raise", "llama", "geese", "sissy"} {
		seen := map[string]bool{}
		for _, actual := range words {
			for _, w := range Apply(words, guess, feedback.Encode(guess, actual)) {
				seen[w] = true
			}
		}
		assert.Len(t, seen, len(words), guess)
	}
}

func TestIdempotentAndMonotonic(t *testing.T) {
	for _, guess := range []string{"raise", "llama", "eerie"} {
		for _, fb := range feedback.Space() {
			once := Apply(words, guess, fb)
			twice := Apply(once, guess, fb)
			assert.LessOrEqual(t, len(once), len(words))
			if diff := cmp.Diff(once, twice); diff != "" {
				t.Fatalf("%s %s not idempotent (-once +twice):\n%s", guess, fb, diff)
			}
		}
	}
}

func TestOrderIndependent(t *testing.T) {
	pairs := []struct {
		guess string
		fb    feedback.Feedback
	}{
		{"raise", feedback.Encode("raise", "stare")},
		{"crane", feedback.Encode("crane", "stare")},
		{"geese", feedback.Encode("geese", "eagle")},
		{"llama", feedback.Encode("llama", "alloy")},
	}
	for _, a := range pairs {
		for _, b := range pairs {
			ab := Apply(Apply(words, a.guess, a.fb), b.guess, b.fb)
			ba := Apply(Apply(words, b.guess, b.fb), a.guess, a.fb)
			if diff := cmp.Diff(ab, ba); diff != "" {
				t.Errorf("%s then %s differs (-ab +ba):\n%s", a.guess, b.guess, diff)
			}
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := []string{"apple", "angle", "ankle", "ample"}
	orig := append([]string(nil), in...)
	_ = Apply(in, "apple", feedback.MustParse("gbbgg"))
	assert.Equal(t, orig, in)
}

func TestApplyStringInvalid(t *testing.T) {
	in := []string{"apple", "angle"}
	got, err := ApplyString(in, "apple", "gbbg")
	assert.ErrorIs(t, err, feedback.ErrInvalidFeedback)
	assert.Equal(t, in, got)
}

func TestContradictoryFeedbackYieldsNothing(t *testing.T) {
	// a green that no candidate can satisfy is not an error, only an empty set
	got := Apply([]string{"apple", "angle"}, "zzzzz", feedback.AllGreen)
	assert.Empty(t, got)
}

func TestMalformedWordsNeverMatch(t *testing.T) {
	m := Compile("raise", feedback.MustParse("bbbbb"))
	assert.False(t, m.Match("toolong"))
	assert.False(t, m.Match("Dumbo"))
	assert.False(t, Compile("rai", feedback.MustParse("bbbbb")).Match("dummy"))
}

func TestCountAndMask(t *testing.T) {
	m := Compile("apple", feedback.MustParse("gbbgg"))
	dict := []string{"apple", "angle", "ankle", "ample"}
	assert.Equal(t, 2, m.Count(dict))
	assert.Equal(t, []int{1, 2}, m.Mask(dict).Indices())
}

func TestApplyHistory(t *testing.T) {
	h := history.New()
	require.NoError(t, h.Add("raise", feedback.Encode("raise", "stare")))
	require.NoError(t, h.Add("crane", feedback.Encode("crane", "stare")))

	got := ApplyHistory(words, h)
	want := Apply(Apply(words, "raise", feedback.Encode("raise", "stare")), "crane", feedback.Encode("crane", "stare"))
	assert.Equal(t, want, got)
	assert.Contains(t, got, "stare")

	assert.Equal(t, words, ApplyHistory(words, history.New()))
}
