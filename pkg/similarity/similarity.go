package similarity

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Tokenizer maps text to the ordered sequence of sub-word token ids the
// scored model reasons over. Implementations must be safe for concurrent use.
type Tokenizer interface {
	Tokenize(text string) ([]int, error)
}

const DefaultNGramSize = 2

// Scorer computes a symmetric n-gram overlap coefficient between two text
// spans. When no tokenizer is configured, whitespace tokens are used.
type Scorer struct {
	tokenizer Tokenizer
	n         int
}

type ScorerOption func(*Scorer)

func WithTokenizer(t Tokenizer) ScorerOption {
	return func(s *Scorer) {
		s.tokenizer = t
	}
}

func WithNGramSize(n int) ScorerOption {
	return func(s *Scorer) {
		if n > 0 {
			s.n = n
		}
	}
}

func NewScorer(options ...ScorerOption) *Scorer {
	ret := &Scorer{
		n: DefaultNGramSize,
	}
	for _, o := range options {
		o(ret)
	}
	return ret
}

// Score returns the Dice coefficient over contiguous n-gram multisets of the
// two token sequences, in [0,1]. Either side having fewer than n tokens
// scores 0.
func (s *Scorer) Score(candidate, reference string) float64 {
	if candidate == "" || reference == "" {
		return 0.0
	}

	candTokens := s.tokens(candidate)
	refTokens := s.tokens(reference)
	if len(candTokens) < s.n || len(refTokens) < s.n {
		return 0.0
	}

	candCounts := ngramCounts(candTokens, s.n)
	refCounts := ngramCounts(refTokens, s.n)

	overlap := 0
	total := 0
	for gram, count := range candCounts {
		if other, ok := refCounts[gram]; ok {
			overlap += min(count, other)
		}
		total += count
	}
	for _, count := range refCounts {
		total += count
	}

	if total == 0 {
		return 0.0
	}
	return 2.0 * float64(overlap) / float64(total)
}

func (s *Scorer) tokens(text string) []string {
	if s.tokenizer != nil {
		ids, err := s.tokenizer.Tokenize(text)
		if err != nil {
			// degrade to whitespace tokens instead of failing the reward
			log.Warn().Err(err).Msg("similarity: tokenizer failed, falling back to whitespace tokens")
		} else {
			out := make([]string, len(ids))
			for i, id := range ids {
				out[i] = strconv.Itoa(id)
			}
			return out
		}
	}
	return strings.Fields(text)
}

func ngramCounts(tokens []string, n int) map[string]int {
	counts := make(map[string]int, len(tokens))
	for i := 0; i+n <= len(tokens); i++ {
		gram := strings.Join(tokens[i:i+n], "\x1f")
		counts[gram]++
	}
	return counts
}
