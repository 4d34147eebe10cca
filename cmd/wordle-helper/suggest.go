package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bent101/go-wordle-helper/internal/game"
	"github.com/bent101/go-wordle-helper/internal/history"
	"github.com/bent101/go-wordle-helper/internal/selector"
)

var suggestTop int

var suggestCmd = &cobra.Command{
	Use:   "suggest [guess feedback]...",
	Short: "Print the best next guesses without starting a game",
	Args:  pairArgs,
	RunE:  runSuggest,
}

func runSuggest(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	h, err := history.FromPairs(args)
	if err != nil {
		return err
	}
	s, err := game.Resume(a.sel, a.dict, h, game.WithLogger(logger))
	if err != nil {
		return err
	}
	if word, ok := s.Solution(); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "Already solved: %s\n", word)
		return nil
	}
	r, err := a.sel.Select(commandContext(cmd), selector.Request{
		Candidates: s.Candidates(),
		History:    s.History(),
		Fallback:   s.Fallback(),
		Rejected:   a.store.Excluded(),
	})
	if err != nil {
		return err
	}
	printRanking(cmd.OutOrStdout(), r, len(s.Candidates()), suggestTop)
	return nil
}

func printRanking(out io.Writer, r selector.Ranking, candidates, top int) {
	fmt.Fprintf(out, "%d candidates left (%s)\n", candidates, r.Source)
	for i, w := range r.Guesses {
		if i == top {
			break
		}
		line := fmt.Sprintf("%2d. %s", i+1, w)
		if i < len(r.Scores) {
			line += fmt.Sprintf("  %.2f", r.Scores[i].Detail.Score)
		}
		fmt.Fprintln(out, line)
	}
}
