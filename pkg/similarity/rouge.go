package similarity

import "strings"

// RougeL computes the ROUGE-L F-measure between candidate and reference over
// whitespace tokens: the longest common subsequence length normalized into
// precision against the candidate and recall against the reference.
func RougeL(candidate, reference string) float64 {
	if candidate == "" || reference == "" {
		return 0.0
	}

	candTokens := strings.Fields(candidate)
	refTokens := strings.Fields(reference)
	if len(candTokens) == 0 || len(refTokens) == 0 {
		return 0.0
	}

	lcs := lcsLength(candTokens, refTokens)
	if lcs == 0 {
		return 0.0
	}

	precision := float64(lcs) / float64(len(candTokens))
	recall := float64(lcs) / float64(len(refTokens))
	return 2.0 * precision * recall / (precision + recall)
}

// lcsLength is the standard two-row DP, O(len(a)*len(b)) time, O(len(b)) space.
func lcsLength(a, b []string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
