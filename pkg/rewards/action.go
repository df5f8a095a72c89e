package rewards

import (
	"strings"

	"github.com/go-go-golems/grillo/pkg/similarity"
	"github.com/go-go-golems/grillo/pkg/toolcall"
)

// ActionBreakdown details the action-correctness scoring of one
// (completion, reference) pair.
type ActionBreakdown struct {
	ThinkPresent bool `json:"think_present"`

	// ToolExpected is set when the reference answers with a tool call; the
	// candidate is then judged by schema tier instead of text similarity.
	ToolExpected bool                 `json:"tool_expected"`
	Tier         toolcall.Tier        `json:"-"`
	TierName     string               `json:"tier,omitempty"`
	Invocation   *toolcall.Invocation `json:"invocation,omitempty"`

	Similarity float64 `json:"similarity,omitempty"`
	Score      float64 `json:"score"`
}

// ActionScorer computes the action-correctness reward: tool-call schema
// validity when the reference calls a tool, answer-text similarity otherwise.
// Pure and stateless; safe for concurrent use.
type ActionScorer struct {
	registry *toolcall.Registry
}

type ActionScorerOption func(*ActionScorer)

func WithRegistry(r *toolcall.Registry) ActionScorerOption {
	return func(as *ActionScorer) {
		as.registry = r
	}
}

func NewActionScorer(options ...ActionScorerOption) *ActionScorer {
	ret := &ActionScorer{
		registry: toolcall.DefaultRegistry(),
	}
	for _, o := range options {
		o(ret)
	}
	return ret
}

// Score judges the candidate's post-reasoning answer against the reference's.
// Tool-call correctness is judged purely against the schema, not against the
// reference's argument values: several argument choices may satisfy a
// procedure step.
func (as *ActionScorer) Score(completion, reference string) *ActionBreakdown {
	breakdown := &ActionBreakdown{}

	if !strings.Contains(completion, "</think>") {
		return breakdown
	}
	breakdown.ThinkPresent = true

	candAnswer := afterReasoning(completion)
	refAnswer := afterReasoning(reference)

	if toolcall.HasSpan(refAnswer) {
		breakdown.ToolExpected = true
		breakdown.Tier = toolcall.TierNoToolCall
		if span, ok := toolcall.FirstSpan(candAnswer); ok {
			inv := toolcall.Parse(span)
			breakdown.Invocation = &inv
			breakdown.Tier = as.registry.Validate(inv)
		}
		breakdown.TierName = breakdown.Tier.String()
		breakdown.Score = breakdown.Tier.Weight()
		return breakdown
	}

	breakdown.Similarity = similarity.RougeL(candAnswer, refAnswer)
	breakdown.Score = breakdown.Similarity
	return breakdown
}

// afterReasoning returns the trimmed text after the last reasoning span end
// marker, or the whole trimmed text when no marker exists.
func afterReasoning(text string) string {
	if idx := strings.LastIndex(text, "</think>"); idx >= 0 {
		text = text[idx+len("</think>"):]
	}
	return strings.TrimSpace(text)
}
