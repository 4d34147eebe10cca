// Command wordle-helper suggests guesses for a five letter word game and
// narrows the candidates from the feedback you type back.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/bent101/go-wordle-helper/internal/config"
	"github.com/bent101/go-wordle-helper/internal/dictionary"
	"github.com/bent101/go-wordle-helper/internal/feedback"
	"github.com/bent101/go-wordle-helper/internal/logging"
	"github.com/bent101/go-wordle-helper/internal/memo"
	"github.com/bent101/go-wordle-helper/internal/selector"
)

var (
	// Global flags
	configPath string
	verbose    bool
	noColor    bool
	noProgress bool
	wordsPath  string
	freqPath   string
	memoryPath string
	workers    int

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "wordle-helper [guess feedback]...",
	Short: "Interactive helper for five letter word guessing games",
	Long: `wordle-helper suggests a guess, you play it, and you type back the
feedback the game showed: one letter per position, b for black (absent),
y for yellow (present elsewhere) and g for green (right spot). Type xxxxx
if the game did not accept the word.

Pass guess/feedback pairs to pick up a game already in progress:
  wordle-helper raise bybbg cloud bbgbb`,
	Args: pairArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cmd)
		if err != nil {
			return err
		}
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			noColor = true
		}
		logger, err = logging.New(cfg.Logging, verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runPlay,
}

func pairArgs(cmd *cobra.Command, args []string) error {
	if len(args)%2 != 0 {
		return fmt.Errorf("expected guess/feedback pairs, got %d arguments", len(args))
	}
	return nil
}

// loadConfig reads the config file and lets explicitly set flags win.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("words") {
		c.Paths.Words = wordsPath
	}
	if flags.Changed("freq") {
		c.Paths.Frequencies = freqPath
	}
	if flags.Changed("memory") {
		c.Paths.Memory = memoryPath
	}
	if flags.Changed("workers") {
		c.Workers = workers
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// app is what every command needs: the dictionary with the memory file's
// overlay applied, the memory file, and a selector over both.
type app struct {
	dict  *dictionary.Dictionary
	store *memo.FileStore
	sel   *selector.Selector
}

func setup() (*app, error) {
	store, err := memo.OpenFile(cfg.Paths.Memory)
	if err != nil {
		// play on with whatever was read; a broken memory file only loses hints
		logger.Warn("could not read memory file", zap.String("path", cfg.Paths.Memory), zap.Error(err))
	}
	dict, err := dictionary.Load(cfg.Paths.Words, cfg.Paths.Frequencies)
	if err != nil {
		return nil, err
	}
	dict = dict.With(store.Included(), store.Excluded())
	logger.Debug("loaded dictionary",
		zap.Int("words", dict.Len()),
		zap.Int("included", len(store.Included())),
		zap.Int("excluded", len(store.Excluded())),
		zap.String("memory", store.Path()),
	)

	opts := []selector.Option{selector.WithMemo(store), selector.WithLogger(logger)}
	if !noProgress {
		opts = append(opts, selector.WithProgress(newProgressBar))
	}
	return &app{
		dict:  dict,
		store: store,
		sel:   selector.New(cfg.Selector(), dict, opts...),
	}, nil
}

func newProgressBar(total int) selector.Progress {
	return progressbar.Default(int64(total), "scoring guesses")
}

func render(fb feedback.Feedback, word string) string {
	if noColor {
		return word + " " + fb.String()
	}
	return fb.ColoredWord(word)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Print feedback as letters instead of coloured tiles")
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "Hide the scoring progress bar")
	rootCmd.PersistentFlags().StringVar(&wordsPath, "words", "", "Word list, one word per line (or set WORDLE_HELPER_WORDS)")
	rootCmd.PersistentFlags().StringVar(&freqPath, "freq", "", "Word frequency file of 'word count' lines (or set WORDLE_HELPER_FREQUENCIES)")
	rootCmd.PersistentFlags().StringVar(&memoryPath, "memory", "", "Memory file (or set WORDLE_HELPER_MEMORY)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "Scoring goroutines, 0 for one per CPU (or set WORDLE_HELPER_WORKERS)")

	suggestCmd.Flags().IntVarP(&suggestTop, "top", "n", 5, "How many guesses to list")
	scoreCmd.Flags().StringSliceVar(&scoreAfter, "after", nil, "Feedback already received, as guess:feedback")
	scoreCmd.Flags().BoolVar(&scorePartitions, "partitions", false, "List the candidates left by each feedback")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")

	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(initCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
