package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bent101/go-wordle-helper/internal/fallback"
	"github.com/bent101/go-wordle-helper/internal/feedback"
	"github.com/bent101/go-wordle-helper/internal/game"
	"github.com/bent101/go-wordle-helper/internal/history"
)

func runPlay(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	h, err := history.FromPairs(args)
	if err != nil {
		return err
	}
	s, err := game.Resume(a.sel, a.dict, h,
		game.WithMemo(a.store),
		game.WithWordLog(a.store),
		game.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	return play(commandContext(cmd), s, cmd.InOrStdin(), cmd.OutOrStdout())
}

// play runs the prompt loop until the game is solved, the input ends, or no
// word fits the feedback any more.
func play(ctx context.Context, s *game.Session, in io.Reader, out io.Writer) error {
	if word, ok := s.Solution(); ok {
		solved(out, s, word)
		return nil
	}
	scanner := bufio.NewScanner(in)
	announced := false
	for {
		if s.Fallback() && !announced {
			fmt.Fprintln(out, "No dictionary word fits, guessing from the letters instead.")
			announced = true
		}
		guess, err := s.Suggest(ctx)
		if errors.Is(err, fallback.ErrContradiction) {
			fmt.Fprintln(out, "Every word that fits has been refused.")
			return err
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Turn %d, %d candidates left. Try: %s\n", s.Turn(), len(s.Candidates()), guess)
		if next := s.Ranking().Guesses; len(next) > 0 {
			fmt.Fprintf(out, "Also good: %s\n", strings.Join(next[:min(len(next), 3)], ", "))
		}

		for {
			fmt.Fprint(out, "Feedback (b/y/g, xxxxx if refused): ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			outcome, err := s.Report(scanner.Text())
			if errors.Is(err, feedback.ErrInvalidFeedback) {
				fmt.Fprintln(out, "Enter five of b, y and g, e.g. bygbb.")
				continue
			}
			if errors.Is(err, fallback.ErrContradiction) {
				fmt.Fprintf(out, "No word fits %s. Check the feedback you entered.\n", s.History())
				return err
			}
			if err != nil {
				return err
			}

			switch outcome {
			case game.Solved:
				solved(out, s, guess)
				return nil
			case game.Rejected:
				fmt.Fprintf(out, "Skipping %s.\n", guess)
			default:
				if fb, ok := s.History().Lookup(guess); ok {
					fmt.Fprintln(out, render(fb, guess))
				}
			}
			break
		}
	}
}

// solved prints the solution and the game as rows of coloured squares.
func solved(out io.Writer, s *game.Session, word string) {
	rows := make([]string, 0, s.History().Len()+1)
	for _, e := range s.History().Entries() {
		if !e.Feedback.Solved() {
			rows = append(rows, e.Feedback.Emoji())
		}
	}
	rows = append(rows, feedback.AllGreen.Emoji())
	fmt.Fprintf(out, "%s Solved in %d.\n", render(feedback.AllGreen, word), len(rows))
	fmt.Fprintln(out, strings.Join(rows, "\n"))
}
