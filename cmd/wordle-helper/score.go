package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bent101/go-wordle-helper/internal/feedback"
	"github.com/bent101/go-wordle-helper/internal/filter"
	"github.com/bent101/go-wordle-helper/internal/game"
	"github.com/bent101/go-wordle-helper/internal/history"
	"github.com/bent101/go-wordle-helper/internal/selector"
)

var (
	scoreAfter      []string
	scorePartitions bool
)

var scoreCmd = &cobra.Command{
	Use:   "score guess...",
	Short: "Show how the given guesses would split the candidates",
	Long: `Prints the score breakdown of each guess against the candidates left by
--after, lower being better. With --partitions it also lists every
feedback the guess could receive and how many candidates would remain.

Example:
  wordle-helper score crane slate --after raise:bybbg --partitions`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScore,
}

func afterPairs(after []string) ([]string, error) {
	var pairs []string
	for _, a := range after {
		guess, fb, ok := strings.Cut(a, ":")
		if !ok {
			return nil, fmt.Errorf("expected guess:feedback, got %q", a)
		}
		pairs = append(pairs, guess, fb)
	}
	return pairs, nil
}

func runScore(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	pairs, err := afterPairs(scoreAfter)
	if err != nil {
		return err
	}
	h, err := history.FromPairs(pairs)
	if err != nil {
		return err
	}
	s, err := game.Resume(a.sel, a.dict, h, game.WithLogger(logger))
	if err != nil {
		return err
	}

	guesses := make([]string, 0, len(args))
	for _, g := range args {
		g = feedback.Normalize(g)
		if !feedback.IsWord(g) {
			return fmt.Errorf("%q is not a five letter word", g)
		}
		guesses = append(guesses, g)
	}

	candidates := s.Candidates()
	scored, err := a.sel.Explain(commandContext(cmd), guesses, candidates)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d candidates\n", len(candidates))
	for _, sc := range scored {
		printScore(out, sc)
		if scorePartitions {
			printPartitions(out, sc.Record.Word, candidates)
		}
	}
	return nil
}

func printScore(out io.Writer, sc selector.Scored) {
	d := sc.Detail
	fmt.Fprintf(out, "%s  score %.2f  mean %.2f  variance %.2f  max %.0f  x%.3f x%.3f x%.0f\n",
		sc.Record.Word, d.Score, d.Mean, d.Variance, d.Max,
		d.RarityWeight, d.PlausibilityWeight, d.UnknownWeight)
}

// printPartitions lists each reachable feedback for word with the number
// of candidates it leaves, largest first.
func printPartitions(out io.Writer, word string, candidates []string) {
	type partition struct {
		fb    feedback.Feedback
		count int
	}

	var parts []partition
	for _, fb := range feedback.Space() {
		if n := filter.Compile(word, fb).Count(candidates); n > 0 {
			parts = append(parts, partition{fb, n})
		}
	}

	sort.SliceStable(parts, func(i, j int) bool {
		return parts[i].count > parts[j].count
	})

	for _, p := range parts {
		fmt.Fprintln(out, "  "+render(p.fb, word), p.count)
	}
}
