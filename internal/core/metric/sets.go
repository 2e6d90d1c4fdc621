package metric

import "math"

// JaccardSetDistance computes 1 - |A∩B|/|A∪B| over the distinct-token sets of
// both sequences. Two empty sequences are identical sets, distance 0.
func JaccardSetDistance(before, after []int, _ map[string]interface{}) map[string]float64 {
	setBefore := make(map[int]struct{}, len(before))
	for _, t := range before {
		setBefore[t] = struct{}{}
	}
	setAfter := make(map[int]struct{}, len(after))
	for _, t := range after {
		setAfter[t] = struct{}{}
	}

	if len(setBefore) == 0 && len(setAfter) == 0 {
		return map[string]float64{"value": 0.0}
	}

	intersection := 0
	for t := range setBefore {
		if _, ok := setAfter[t]; ok {
			intersection++
		}
	}
	union := len(setBefore) + len(setAfter) - intersection

	return map[string]float64{"value": 1.0 - float64(intersection)/float64(union)}
}

// JaccardBagDistance computes 1 - Σmin(count)/Σmax(count) over the token
// multisets, accounting for token frequencies. Two empty sequences are
// identical bags, distance 0.
func JaccardBagDistance(before, after []int, _ map[string]interface{}) map[string]float64 {
	countsBefore := tokenCounts(before)
	countsAfter := tokenCounts(after)

	if len(countsBefore) == 0 && len(countsAfter) == 0 {
		return map[string]float64{"value": 0.0}
	}

	minSum, maxSum := 0, 0
	for t, cb := range countsBefore {
		ca := countsAfter[t]
		if cb < ca {
			minSum += cb
			maxSum += ca
		} else {
			minSum += ca
			maxSum += cb
		}
	}
	for t, ca := range countsAfter {
		if _, seen := countsBefore[t]; !seen {
			maxSum += ca
		}
	}

	if maxSum == 0 {
		return map[string]float64{"value": 0.0}
	}

	return map[string]float64{"value": 1.0 - float64(minSum)/float64(maxSum)}
}

// LengthRatio reports the length ratio n/m and its absolute deviation from 1.
// Both empty is defined as the identity ratio 1.0; an empty before with a
// non-empty after yields +Inf for both values as an explicit sentinel.
func LengthRatio(before, after []int, _ map[string]interface{}) map[string]float64 {
	m, n := len(before), len(after)

	if m == 0 && n == 0 {
		return map[string]float64{"ratio": 1.0, "delta": 0.0}
	}
	if m == 0 {
		return map[string]float64{"ratio": math.Inf(1), "delta": math.Inf(1)}
	}

	ratio := float64(n) / float64(m)
	return map[string]float64{"ratio": ratio, "delta": math.Abs(1.0 - ratio)}
}

func tokenCounts(seq []int) map[int]int {
	counts := make(map[int]int, len(seq))
	for _, t := range seq {
		counts[t]++
	}
	return counts
}
