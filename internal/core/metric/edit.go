// Package metric implements the pure metric functions computed over a pair of
// token sequences. Every function has the shape
// (before, after, context) -> map of sub-metric values, never fails, and
// resolves statistical degeneracies (empty sequences, zero denominators) by
// returning documented sentinel values.
package metric

import (
	"github.com/baditaflorin/go_token_metrics/internal/core/align"
)

// NormalizedEditDistance computes the Damerau-Levenshtein distance normalized
// by the longer sequence length.
func NormalizedEditDistance(before, after []int, _ map[string]interface{}) map[string]float64 {
	_, norm := align.DamerauLevenshtein(before, after)
	return map[string]float64{"value": norm}
}

// LCSRetention computes the fraction of the original sequence preserved as a
// common subsequence. Asymmetric: normalized by len(before), and defined as
// 0 when before is empty.
func LCSRetention(before, after []int, _ map[string]interface{}) map[string]float64 {
	m := len(before)
	if m == 0 {
		return map[string]float64{"value": 0.0}
	}

	length, _ := align.LongestCommonSubsequence(before, after)
	return map[string]float64{"value": float64(length) / float64(m)}
}

// PositionMatchRate computes the fraction of LCS-aligned positions holding
// identical tokens.
func PositionMatchRate(before, after []int, _ map[string]interface{}) map[string]float64 {
	return map[string]float64{"value": align.PositionWiseMatchRate(before, after, true)}
}
