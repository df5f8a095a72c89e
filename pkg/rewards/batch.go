package rewards

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/go-go-golems/grillo/pkg/similarity"
	"github.com/go-go-golems/grillo/pkg/toolcall"
)

// Example carries the per-example outcome handed to the observer. Exactly one
// of Format and Action is set, depending on the entry point.
type Example struct {
	Index  int
	Score  float64
	Format *FormatBreakdown
	Action *ActionBreakdown
}

// Engine scores batches of (completion, reference) pairs. Examples are
// independent, so batches are fanned out across workers with no shared
// mutable state.
type Engine struct {
	format  *FormatScorer
	action  *ActionScorer
	workers int

	// observer, when set, receives every example's breakdown. It is called
	// from worker goroutines and must be safe for concurrent use.
	observer func(Example)
}

type EngineOption func(*Engine)

// WithTokenizer threads the model's tokenizer into the similarity scorer so
// field similarity reflects the same sub-word granularity the model is
// trained on.
func WithTokenizer(t similarity.Tokenizer) EngineOption {
	return func(e *Engine) {
		e.format = NewFormatScorer(WithFormatTokenizer(t))
	}
}

func WithToolRegistry(r *toolcall.Registry) EngineOption {
	return func(e *Engine) {
		e.action = NewActionScorer(WithRegistry(r))
	}
}

func WithWorkers(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

func WithObserver(fn func(Example)) EngineOption {
	return func(e *Engine) {
		e.observer = fn
	}
}

func NewEngine(options ...EngineOption) *Engine {
	ret := &Engine{
		format:  NewFormatScorer(),
		action:  NewActionScorer(),
		workers: runtime.NumCPU(),
	}
	for _, o := range options {
		o(ret)
	}
	return ret
}

// ScoreFormat returns the format-compliance reward for each pair, in input
// order. A malformed reference aborts the batch; malformed completions only
// lower their own score.
func (e *Engine) ScoreFormat(ctx context.Context, completions, references []string) ([]float64, error) {
	if len(completions) != len(references) {
		return nil, errors.Errorf("batch size mismatch: %d completions, %d references", len(completions), len(references))
	}

	scores := make([]float64, len(completions))
	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(e.workers)
	for i := range completions {
		i := i
		eg.Go(func() error {
			breakdown, err := e.format.Score(completions[i], references[i])
			if err != nil {
				return errors.Wrapf(err, "example %d", i)
			}
			scores[i] = breakdown.Score
			e.observe(Example{Index: i, Score: breakdown.Score, Format: breakdown})
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	log.Debug().Int("examples", len(scores)).Msg("rewards: format batch scored")
	return scores, nil
}

// ScoreAction returns the action-correctness reward for each pair, in input
// order.
func (e *Engine) ScoreAction(ctx context.Context, completions, references []string) ([]float64, error) {
	if len(completions) != len(references) {
		return nil, errors.Errorf("batch size mismatch: %d completions, %d references", len(completions), len(references))
	}

	scores := make([]float64, len(completions))
	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(e.workers)
	for i := range completions {
		i := i
		eg.Go(func() error {
			breakdown := e.action.Score(completions[i], references[i])
			scores[i] = breakdown.Score
			e.observe(Example{Index: i, Score: breakdown.Score, Action: breakdown})
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	log.Debug().Int("examples", len(scores)).Msg("rewards: action batch scored")
	return scores, nil
}

func (e *Engine) observe(example Example) {
	if e.observer != nil {
		e.observer(example)
	}
}
