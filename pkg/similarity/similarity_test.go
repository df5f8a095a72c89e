package similarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokenizer struct {
	ids map[string][]int
}

func (s *staticTokenizer) Tokenize(text string) ([]int, error) {
	return s.ids[text], nil
}

func TestScoreSymmetricAndReflexive(t *testing.T) {
	scorer := NewScorer()

	a := "khách hàng quên mật khẩu ứng dụng"
	b := "khách hàng không đăng nhập được"

	assert.InDelta(t, scorer.Score(a, b), scorer.Score(b, a), 1e-9)
	assert.InDelta(t, 1.0, scorer.Score(a, a), 1e-9)
}

func TestScoreShortInputs(t *testing.T) {
	scorer := NewScorer()

	// fewer than n tokens on either side scores zero
	assert.Equal(t, 0.0, scorer.Score("one", "one"))
	assert.Equal(t, 0.0, scorer.Score("", "a b c"))
	assert.Equal(t, 0.0, scorer.Score("a b c", ""))
}

func TestScoreDisjoint(t *testing.T) {
	scorer := NewScorer()
	assert.Equal(t, 0.0, scorer.Score("a b c d", "e f g h"))
}

func TestScorePartialOverlap(t *testing.T) {
	scorer := NewScorer()

	// bigrams of "a b c": {ab, bc}; of "a b d": {ab, bd}; overlap 1, total 4
	got := scorer.Score("a b c", "a b d")
	assert.InDelta(t, 0.5, got, 1e-9)
}

func TestScoreWithTokenizer(t *testing.T) {
	tok := &staticTokenizer{ids: map[string][]int{
		"hello world": {101, 204, 305},
		"hello there": {101, 204, 412},
	}}
	scorer := NewScorer(WithTokenizer(tok))

	// bigrams: {(101,204), (204,305)} vs {(101,204), (204,412)}
	got := scorer.Score("hello world", "hello there")
	assert.InDelta(t, 0.5, got, 1e-9)
}

func TestScoreRepeatedNGrams(t *testing.T) {
	scorer := NewScorer()

	// "a a a" has bigram (a,a) twice; "a a" has it once; 2*1/(2+1)
	got := scorer.Score("a a a", "a a")
	assert.InDelta(t, 2.0/3.0, got, 1e-9)
}

func TestRougeL(t *testing.T) {
	require.InDelta(t, 1.0, RougeL("xin chào quý khách", "xin chào quý khách"), 1e-9)
	require.Equal(t, 0.0, RougeL("", "xin chào"))
	require.Equal(t, 0.0, RougeL("xin chào", ""))
	require.Equal(t, 0.0, RougeL("a b c", "d e f"))

	// lcs("a b c d", "a c d e") = 3; p = 3/4, r = 3/4
	got := RougeL("a b c d", "a c d e")
	if math.Abs(got-0.75) > 1e-9 {
		t.Fatalf("expected 0.75, got %f", got)
	}
}

func TestRougeLSymmetricFMeasure(t *testing.T) {
	a := "đơn hàng của anh đang chờ duyệt"
	b := "đơn hàng đang chờ NPP duyệt"
	assert.InDelta(t, RougeL(a, b), RougeL(b, a), 1e-9)
}
