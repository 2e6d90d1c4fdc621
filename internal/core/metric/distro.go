package metric

import "math"

// DefaultEpsilon is the smoothing constant applied to token distributions
// when the context does not supply an "epsilon" value.
const DefaultEpsilon = 1e-8

// CosineDistance computes 1 - cosine similarity between the token frequency
// vectors built over the union vocabulary. Both sequences empty yields 0;
// exactly one empty yields the maximal distance 1.
func CosineDistance(before, after []int, _ map[string]interface{}) map[string]float64 {
	countsBefore := tokenCounts(before)
	countsAfter := tokenCounts(after)

	if len(countsBefore) == 0 && len(countsAfter) == 0 {
		return map[string]float64{"value": 0.0}
	}
	if len(countsBefore) == 0 || len(countsAfter) == 0 {
		return map[string]float64{"value": 1.0}
	}

	dot, normBefore, normAfter := 0.0, 0.0, 0.0
	for t, cb := range countsBefore {
		fb := float64(cb)
		normBefore += fb * fb
		if ca, ok := countsAfter[t]; ok {
			dot += fb * float64(ca)
		}
	}
	for _, ca := range countsAfter {
		fa := float64(ca)
		normAfter += fa * fa
	}

	magnitude := math.Sqrt(normBefore) * math.Sqrt(normAfter)
	if magnitude == 0 {
		return map[string]float64{"value": 1.0}
	}

	distance := 1.0 - dot/magnitude
	return map[string]float64{"value": clamp01(distance)}
}

// JensenShannonDivergence computes the Jensen-Shannon divergence between the
// smoothed token distributions, normalized to [0,1] by ln 2. The smoothing
// epsilon comes from the context key "epsilon" when present.
func JensenShannonDivergence(before, after []int, context map[string]interface{}) map[string]float64 {
	epsilon := contextEpsilon(context)

	countsBefore := tokenCounts(before)
	countsAfter := tokenCounts(after)

	m, n := len(before), len(after)
	if m == 0 && n == 0 {
		return map[string]float64{"value": 0.0}
	}

	vocab := make(map[int]struct{}, len(countsBefore)+len(countsAfter))
	for t := range countsBefore {
		vocab[t] = struct{}{}
	}
	for t := range countsAfter {
		vocab[t] = struct{}{}
	}
	if len(vocab) == 0 {
		return map[string]float64{"value": 0.0}
	}

	vocabSize := float64(len(vocab))
	totalP := float64(m) + epsilon*vocabSize
	totalQ := float64(n) + epsilon*vocabSize

	jsd := 0.0
	for t := range vocab {
		p := (float64(countsBefore[t]) + epsilon) / totalP
		q := (float64(countsAfter[t]) + epsilon) / totalQ
		mix := 0.5 * (p + q)
		jsd += 0.5*p*math.Log(p/mix) + 0.5*q*math.Log(q/mix)
	}

	return map[string]float64{"value": clamp01(jsd / math.Ln2)}
}

// EntropyDelta computes the change in Shannon entropy (bits) between the two
// token distributions: positive when the transformation made the
// distribution more uniform, negative when it concentrated it.
func EntropyDelta(before, after []int, context map[string]interface{}) map[string]float64 {
	epsilon := contextEpsilon(context)

	hBefore := smoothedEntropy(before, epsilon)
	hAfter := smoothedEntropy(after, epsilon)

	return map[string]float64{
		"delta":  hAfter - hBefore,
		"before": hBefore,
		"after":  hAfter,
	}
}

func smoothedEntropy(seq []int, epsilon float64) float64 {
	if len(seq) == 0 {
		return 0.0
	}

	counts := tokenCounts(seq)
	total := float64(len(seq)) + epsilon*float64(len(counts))

	entropy := 0.0
	for _, c := range counts {
		p := (float64(c) + epsilon) / total
		entropy -= p * math.Log2(p)
	}
	return entropy
}

func contextEpsilon(context map[string]interface{}) float64 {
	if v, ok := context["epsilon"].(float64); ok {
		return v
	}
	return DefaultEpsilon
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
