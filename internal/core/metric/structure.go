package metric

import (
	"github.com/baditaflorin/go_token_metrics/internal/core/align"
)

// ReorderingScore measures how much the relative order of LCS-matched tokens
// changed, independent of insertions, deletions, and substitutions.
//
// The LCS selects the matched tokens in before; a single left-to-right cursor
// then maps each matched token to its next occurrence in after, and the two
// index sequences feed Kendall-tau. This cursor re-scan, not the raw LCS
// backtrack path, defines the correspondence, and it is a compatibility
// contract: downstream consumers depend on the exact mapping, so it must stay
// as is even where the cursor fails to track a valid occurrence.
//
// Fewer than two matched tokens leave no pairs to compare, score 0. A cursor
// scan that exhausts after before mapping every matched token also scores 0.
func ReorderingScore(before, after []int, _ map[string]interface{}) map[string]float64 {
	length, indicesBefore := align.LongestCommonSubsequence(before, after)
	if length < 2 {
		return map[string]float64{"value": 0.0}
	}

	indicesAfter := make([]int, 0, length)
	afterPos := 0
	for _, beforeIdx := range indicesBefore {
		target := before[beforeIdx]
		for afterPos < len(after) {
			if after[afterPos] == target {
				indicesAfter = append(indicesAfter, afterPos)
				afterPos++
				break
			}
			afterPos++
		}
	}

	if len(indicesAfter) != len(indicesBefore) {
		return map[string]float64{"value": 0.0}
	}

	_, norm, err := align.KendallTau(indicesBefore, indicesAfter)
	if err != nil {
		return map[string]float64{"value": 0.0}
	}

	return map[string]float64{"value": norm}
}

// SpanPerturbationIndex measures how much of the original sequence falls
// outside the LCS, and in how many contiguous spans. The value is the
// fraction of before positions not matched by the LCS; "spans" counts the
// contiguous perturbed runs.
func SpanPerturbationIndex(before, after []int, _ map[string]interface{}) map[string]float64 {
	m := len(before)
	if m == 0 {
		return map[string]float64{"value": 0.0, "spans": 0.0}
	}

	_, indices := align.LongestCommonSubsequence(before, after)
	matched := make([]bool, m)
	for _, idx := range indices {
		matched[idx] = true
	}

	perturbed := 0
	spans := 0
	inSpan := false
	for i := 0; i < m; i++ {
		if matched[i] {
			inSpan = false
			continue
		}
		perturbed++
		if !inSpan {
			spans++
			inSpan = true
		}
	}

	return map[string]float64{
		"value": float64(perturbed) / float64(m),
		"spans": float64(spans),
	}
}

// MergeSplitIndex measures token-count imbalance between the two sequences,
// a proxy for tokens merging or splitting under the transformation:
// |m - n| / (m + n), defined as 0 when both sequences are empty.
func MergeSplitIndex(before, after []int, _ map[string]interface{}) map[string]float64 {
	m, n := len(before), len(after)
	if m+n == 0 {
		return map[string]float64{"value": 0.0}
	}

	diff := m - n
	if diff < 0 {
		diff = -diff
	}

	return map[string]float64{"value": float64(diff) / float64(m+n)}
}

// BoundaryHitRate measures the fraction of boundary-token occurrences in
// before that did not survive into after. The boundary token ids come from
// the context key "boundary_tokens" (map[int]struct{}); an absent or empty
// set yields 0.
func BoundaryHitRate(before, after []int, context map[string]interface{}) map[string]float64 {
	boundary, ok := context["boundary_tokens"].(map[int]struct{})
	if !ok || len(boundary) == 0 {
		return map[string]float64{"value": 0.0}
	}

	countsAfter := tokenCounts(after)

	total := 0
	hits := 0
	remaining := make(map[int]int, len(boundary))
	for t, c := range countsAfter {
		if _, isBoundary := boundary[t]; isBoundary {
			remaining[t] = c
		}
	}
	for _, t := range before {
		if _, isBoundary := boundary[t]; !isBoundary {
			continue
		}
		total++
		if remaining[t] > 0 {
			remaining[t]--
		} else {
			hits++
		}
	}

	if total == 0 {
		return map[string]float64{"value": 0.0}
	}

	return map[string]float64{"value": float64(hits) / float64(total)}
}
