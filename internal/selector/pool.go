package selector

import (
	"context"
	"runtime"
	"slices"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bent101/go-wordle-helper/internal/feedback"
	"github.com/bent101/go-wordle-helper/internal/scorer"
)

func (s *Selector) workers() int {
	if s.cfg.Workers > 0 {
		return s.cfg.Workers
	}
	return runtime.NumCPU()
}

// score simulates every pool word against targets on a bounded set of
// goroutines. Each goroutine writes only its own slot, and the result is
// sorted by composite score with pool order breaking ties, so the ranking
// does not depend on completion order.
func (s *Selector) score(ctx context.Context, pool, targets []string) ([]Scored, error) {
	start := time.Now()
	space := feedback.Space()
	records := make([]scorer.Record, len(pool))

	var progress Progress
	if s.newProgress != nil {
		progress = s.newProgress(len(pool))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers())
	for i, guess := range pool {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records[i] = scorer.Score(guess, targets, space)
			if progress != nil {
				_ = progress.Add(1)
			}
			return nil
		})
	}
	err := g.Wait()
	if progress != nil {
		_ = progress.Finish()
	}
	if err != nil {
		return nil, err
	}

	eval := scorer.NewEvaluator(s.cfg.Weights, len(pool), targets, s.known)
	scored := make([]Scored, len(records))
	order := make([]int, len(records))
	for i, rec := range records {
		scored[i] = Scored{Record: rec, Detail: eval.Explain(rec, i)}
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scored[order[a]].Detail.Score < scored[order[b]].Detail.Score
	})
	ret := make([]Scored, len(order))
	for i, idx := range order {
		ret[i] = scored[idx]
	}

	s.logger.Debug("scored guess pool",
		zap.Int("pool", len(pool)),
		zap.Int("targets", len(targets)),
		zap.Int("workers", s.workers()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return ret, nil
}

// Explain scores the given guesses against candidates without any of the
// shortcut rules. Guesses are ranked by frequency, as Select ranks its pool,
// but returned in the order given.
func (s *Selector) Explain(ctx context.Context, guesses, candidates []string) ([]Scored, error) {
	pool := distinct(slices.Clone(guesses), func(string) bool { return true })
	if s.dict != nil {
		pool = s.dict.Sort(pool)
	}
	scored, err := s.score(ctx, pool, s.targets(candidates))
	if err != nil {
		return nil, err
	}
	byWord := make(map[string]Scored, len(scored))
	for _, sc := range scored {
		byWord[sc.Record.Word] = sc
	}
	ret := make([]Scored, 0, len(guesses))
	for _, g := range guesses {
		if sc, ok := byWord[g]; ok {
			ret = append(ret, sc)
			delete(byWord, g)
		}
	}
	return ret, nil
}
