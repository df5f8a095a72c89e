package cmds

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/go-go-golems/grillo/pkg/events"
	"github.com/go-go-golems/grillo/pkg/rewards"
	"github.com/go-go-golems/grillo/pkg/similarity"
	"github.com/go-go-golems/grillo/pkg/toolcall"
)

type scoreSummary struct {
	Mode      string  `json:"mode"`
	Examples  int     `json:"examples"`
	Mean      float64 `json:"mean"`
	Perfect   int     `json:"perfect"`
	Imperfect []int   `json:"imperfect,omitempty"`
}

// NewScoreCommand builds the score command, which runs the reward engine over
// a JSONL dataset and reports every example that falls short of full reward.
// It doubles as a dataset self-check: references scored against themselves
// should all come out at 1.0.
func NewScoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a JSONL dataset of completion/reference pairs",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc := &RunConfig{
				Mode:    "format",
				Workers: 0,
			}
			if path, _ := cmd.Flags().GetString("run-config"); path != "" {
				loaded, err := LoadRunConfig(path)
				if err != nil {
					return err
				}
				rc = loaded
			}

			// command line flags win over the run config
			if cmd.Flags().Changed("mode") || rc.Mode == "" {
				rc.Mode, _ = cmd.Flags().GetString("mode")
			}
			if cmd.Flags().Changed("dataset") || rc.Dataset == "" {
				rc.Dataset, _ = cmd.Flags().GetString("dataset")
			}
			if cmd.Flags().Changed("tokenizer") {
				rc.Tokenizer, _ = cmd.Flags().GetString("tokenizer")
			}
			if cmd.Flags().Changed("tokenizer-model") {
				rc.TokenizerModel, _ = cmd.Flags().GetString("tokenizer-model")
			}
			if cmd.Flags().Changed("workers") {
				rc.Workers, _ = cmd.Flags().GetInt("workers")
			}
			if cmd.Flags().Changed("stream") {
				rc.Stream, _ = cmd.Flags().GetBool("stream")
			}

			if rc.Dataset == "" {
				return errors.New("no dataset given, use --dataset or a run config")
			}
			if rc.Mode != "format" && rc.Mode != "action" {
				return errors.Errorf("unknown mode %q, expected format or action", rc.Mode)
			}

			return runScore(cmd.Context(), rc)
		},
	}

	cmd.Flags().String("run-config", "", "YAML run config (flags override it)")
	cmd.Flags().String("mode", "format", "Reward to compute (format, action)")
	cmd.Flags().String("dataset", "", "JSONL dataset of {completion, reference} rows")
	cmd.Flags().String("tokenizer", "", "Tiktoken encoding for field similarity (e.g. cl100k_base)")
	cmd.Flags().String("tokenizer-model", "", "Model name to resolve the tokenizer from")
	cmd.Flags().Int("workers", 0, "Scoring workers (default: number of CPUs)")
	cmd.Flags().Bool("stream", false, "Stream per-example breakdowns as JSON lines")

	return cmd
}

func runScore(ctx context.Context, rc *RunConfig) error {
	rows, err := ReadDataset(rc.Dataset)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return errors.Errorf("dataset %s is empty", rc.Dataset)
	}

	completions := make([]string, len(rows))
	references := make([]string, len(rows))
	for i, row := range rows {
		completions[i] = row.Completion
		references[i] = row.Reference
	}

	options := []rewards.EngineOption{
		rewards.WithToolRegistry(toolcall.DefaultRegistry()),
	}
	if rc.Workers > 0 {
		options = append(options, rewards.WithWorkers(rc.Workers))
	}

	switch {
	case rc.TokenizerModel != "":
		t, err := similarity.NewTiktokenTokenizerForModel(rc.TokenizerModel)
		if err != nil {
			return err
		}
		options = append(options, rewards.WithTokenizer(t))
	case rc.Tokenizer != "":
		t, err := similarity.NewTiktokenTokenizer(rc.Tokenizer)
		if err != nil {
			return err
		}
		options = append(options, rewards.WithTokenizer(t))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var router *events.EventRouter
	if rc.Stream {
		router, err = events.NewEventRouter(events.WithVerbose(viper.GetBool("verbose")))
		if err != nil {
			return err
		}
		defer func() {
			_ = router.Close()
		}()

		encoder := json.NewEncoder(os.Stdout)
		router.AddScoredHandler("stream-breakdowns", func(_ context.Context, event *events.ScoredEvent) error {
			return encoder.Encode(event)
		})

		go func() {
			if err := router.Run(ctx); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Msg("event router stopped")
			}
		}()
		<-router.Running()

		options = append(options, rewards.WithObserver(func(example rewards.Example) {
			if err := router.PublishScored(events.NewScoredEvent(example)); err != nil {
				log.Error().Err(err).Int("index", example.Index).Msg("could not publish scoring event")
			}
		}))
	}

	engine := rewards.NewEngine(options...)

	var scores []float64
	if rc.Mode == "action" {
		scores, err = engine.ScoreAction(ctx, completions, references)
	} else {
		scores, err = engine.ScoreFormat(ctx, completions, references)
	}
	if err != nil {
		return err
	}

	summary := scoreSummary{Mode: rc.Mode, Examples: len(scores)}
	total := 0.0
	for i, score := range scores {
		total += score
		if score >= 1.0 {
			summary.Perfect++
		} else {
			summary.Imperfect = append(summary.Imperfect, i)
		}
	}
	summary.Mean = total / float64(len(scores))

	payload, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not marshal summary")
	}
	fmt.Println(string(payload))

	if len(summary.Imperfect) > 0 {
		log.Warn().
			Int("imperfect", len(summary.Imperfect)).
			Float64("mean", summary.Mean).
			Msg("some examples scored below full reward")
	}
	return nil
}
