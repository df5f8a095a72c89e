package rewards

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/go-go-golems/grillo/pkg/similarity"
	"github.com/go-go-golems/grillo/pkg/thinking"
)

// Per-increment weights of the format-compliance reward. They are sized so a
// block with all six fields present, a valid procedure, a valid and matching
// step, and perfect similarity on the four free-text fields scores exactly
// MaxFormatScore: 0.10 + 6*0.05 + 0.10 + 0.05 + 0.05 + 4*0.10 = 1.0.
const (
	weightThinkPresence   = 0.10
	weightFieldPresence   = 0.05
	weightProcedureValid  = 0.10
	weightStepValid       = 0.05
	weightStepMatch       = 0.05
	weightFieldSimilarity = 0.10

	MaxFormatScore = 1.0
)

var thinkRe = regexp.MustCompile(`(?s)<think>(.*?)</think>`)

// FieldBreakdown records the sub-checks of a single field.
type FieldBreakdown struct {
	Present    bool    `json:"present"`
	Valid      bool    `json:"valid,omitempty"`
	Match      bool    `json:"match,omitempty"`
	Similarity float64 `json:"similarity,omitempty"`
	Score      float64 `json:"score"`
}

// FormatBreakdown details which format sub-checks passed for one
// (completion, reference) pair. Created fresh per pair, never persisted.
type FormatBreakdown struct {
	ThinkPresent bool `json:"think_present"`

	// Diagnostics: recorded, but not weighted into Score.
	OrderViolation      bool `json:"order_violation,omitempty"`
	StepPolicyViolation bool `json:"step_policy_violation,omitempty"`

	Fields map[string]FieldBreakdown `json:"fields,omitempty"`
	Score  float64                   `json:"score"`
}

// FormatScorer computes the format-compliance reward of a completion against
// a reference. Pure and stateless; safe for concurrent use.
type FormatScorer struct {
	scorer *similarity.Scorer
}

type FormatScorerOption func(*FormatScorer)

func WithFormatTokenizer(t similarity.Tokenizer) FormatScorerOption {
	return func(fs *FormatScorer) {
		fs.scorer = similarity.NewScorer(similarity.WithTokenizer(t))
	}
}

func NewFormatScorer(options ...FormatScorerOption) *FormatScorer {
	ret := &FormatScorer{
		scorer: similarity.NewScorer(),
	}
	for _, o := range options {
		o(ret)
	}
	return ret
}

// Score returns the format-compliance reward breakdown. A completion without
// a reasoning span scores a hard zero. A reference that does not conform to
// the expected grammar is an upstream data bug and returns an error.
func (fs *FormatScorer) Score(completion, reference string) (*FormatBreakdown, error) {
	refMatch := thinkRe.FindStringSubmatch(reference)
	if refMatch == nil {
		return nil, errors.New("reference has no reasoning span")
	}

	breakdown := &FormatBreakdown{
		Fields: map[string]FieldBreakdown{},
	}

	candMatch := thinkRe.FindStringSubmatch(completion)
	if candMatch == nil {
		return breakdown, nil
	}
	breakdown.ThinkPresent = true

	candRecord := thinking.Extract(strings.TrimSpace(candMatch[1]))
	refRecord := thinking.Extract(strings.TrimSpace(refMatch[1]))
	breakdown.OrderViolation = candRecord.OrderViolation

	score := weightThinkPresence
	for _, field := range thinking.Fields() {
		ref := refRecord.Value(field)
		if !ref.Present {
			return nil, errors.Errorf("reference is missing the %s field", field)
		}

		cand := candRecord.Value(field)
		fb := FieldBreakdown{Present: cand.Present}
		if cand.Present {
			fb.Score += weightFieldPresence

			switch field {
			case thinking.FieldProcedure:
				if thinking.ValidProcedure(cand.Text) {
					fb.Valid = true
					fb.Score += weightProcedureValid
				}
			case thinking.FieldStep:
				fb = fs.scoreStep(breakdown, candRecord, cand.Text, ref.Text, fb)
			default:
				fb = fs.scoreFreeText(cand.Text, ref.Text, fb)
			}
		}

		score += fb.Score
		breakdown.Fields[field.String()] = fb
	}

	breakdown.Score = score
	return breakdown, nil
}

// scoreStep awards the format bonus for a grammatical Step field and a match
// bonus when candidate and reference reduce to the same structural form. A
// step that breaches the sentinel policy forfeits both bonuses.
func (fs *FormatScorer) scoreStep(breakdown *FormatBreakdown, candRecord *thinking.Record, cand, ref string, fb FieldBreakdown) FieldBreakdown {
	procedure := candRecord.Value(thinking.FieldProcedure).Text
	if thinking.StepPolicyViolation(procedure, cand) {
		breakdown.StepPolicyViolation = true
		return fb
	}
	if !thinking.ValidStepFormat(cand) {
		return fb
	}

	fb.Valid = true
	fb.Score += weightStepValid

	if thinking.StepsMatch(thinking.ParseStepReference(cand), thinking.ParseStepReference(ref)) {
		fb.Match = true
		fb.Score += weightStepMatch
	}
	return fb
}

// scoreFreeText awards full credit when candidate and reference are both
// empty, exact-match credit when both are too short for n-grams to be
// meaningful, and similarity-proportional credit otherwise.
func (fs *FormatScorer) scoreFreeText(cand, ref string, fb FieldBreakdown) FieldBreakdown {
	switch {
	case cand == "" && ref == "":
		fb.Similarity = 1.0
		fb.Score += weightFieldSimilarity
	case len(strings.Fields(cand)) < 2 && len(strings.Fields(ref)) < 2:
		if cand == ref {
			fb.Similarity = 1.0
			fb.Score += weightFieldSimilarity
		}
	default:
		fb.Similarity = fs.scorer.Score(cand, ref)
		fb.Score += fb.Similarity * weightFieldSimilarity
	}
	return fb
}
