// Package align provides the sequence alignment kernels the metric functions
// are built on: Damerau-Levenshtein distance with unrestricted transpositions,
// longest common subsequence, Kendall-tau distance, and a position-wise match
// rate. All functions are pure and operate on integer token id sequences.
package align

// DamerauLevenshtein computes the edit distance between two token sequences
// with unit-cost insertion, deletion, substitution, and transposition. The
// transposition operation is unrestricted: a "last match" table tracks the
// most recent row and column where each symbol occurred, so swaps separated
// by intervening edits are still counted as a single transposition.
//
// The second return value is the raw distance normalized by the longer
// sequence length: 0.0 for identical sequences (including both empty), 1.0
// when one side is empty and the other is not.
func DamerauLevenshtein(seq1, seq2 []int) (int, float64) {
	m, n := len(seq1), len(seq2)

	if m == 0 {
		if n == 0 {
			return 0, 0.0
		}
		return n, 1.0
	}
	if n == 0 {
		return m, 1.0
	}

	// Offset table with a sentinel border row/column so the transposition
	// lookup never indexes out of range.
	inf := m + n
	dp := make([][]int, m+2)
	for i := range dp {
		dp[i] = make([]int, n+2)
		for j := range dp[i] {
			dp[i][j] = inf
		}
	}
	for i := 0; i <= m; i++ {
		dp[i+1][1] = i
	}
	for j := 0; j <= n; j++ {
		dp[1][j+1] = j
	}

	// lastMatch[s] is the last row index where symbol s appeared in seq1.
	lastMatch := make(map[int]int, m)

	for i := 1; i <= m; i++ {
		lastMatchJ := 0
		for j := 1; j <= n; j++ {
			cost := 1
			if seq1[i-1] == seq2[j-1] {
				cost = 0
			}
			lastI := lastMatch[seq2[j-1]]
			lastJ := lastMatchJ

			if seq1[i-1] == seq2[j-1] {
				lastMatchJ = j
			}

			best := dp[i][j] + cost // substitution or match
			if v := dp[i+1][j] + 1; v < best {
				best = v // insertion
			}
			if v := dp[i][j+1] + 1; v < best {
				best = v // deletion
			}
			if v := dp[lastI][lastJ] + (i - lastI - 1) + 1 + (j - lastJ - 1); v < best {
				best = v // transposition
			}
			dp[i+1][j+1] = best
		}
		lastMatch[seq1[i-1]] = i
	}

	raw := dp[m+1][n+1]
	maxLen := m
	if n > maxLen {
		maxLen = n
	}
	return raw, float64(raw) / float64(maxLen)
}

// LongestCommonSubsequence computes the LCS length of two token sequences and
// the indices in seq1 of one witness subsequence, in ascending order.
//
// The backtrack is deterministic: when the extension scores tie, the cursor in
// seq1 advances. Downstream reordering scoring relies on this exact tie-break
// to obtain a stable index mapping, so it must not change.
func LongestCommonSubsequence(seq1, seq2 []int) (int, []int) {
	m, n := len(seq1), len(seq2)

	if m == 0 || n == 0 {
		return 0, nil
	}

	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if seq1[i-1] == seq2[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else if dp[i-1][j] >= dp[i][j-1] {
				dp[i][j] = dp[i-1][j]
			} else {
				dp[i][j] = dp[i][j-1]
			}
		}
	}

	length := dp[m][n]
	indices := make([]int, 0, length)
	i, j := m, n
	for i > 0 && j > 0 {
		switch {
		case seq1[i-1] == seq2[j-1]:
			indices = append(indices, i-1)
			i--
			j--
		case dp[i-1][j] >= dp[i][j-1]:
			i--
		default:
			j--
		}
	}

	// The backtrack collects indices right-to-left; restore ascending order.
	for a, b := 0, len(indices)-1; a < b; a, b = a+1, b-1 {
		indices[a], indices[b] = indices[b], indices[a]
	}

	return length, indices
}

// KendallTau counts the pairs (i < j) whose relative order disagrees between
// the two rankings, and returns the count normalized by n(n-1)/2. The inputs
// must have equal length; rankings of length zero or one have no pairs and
// yield (0, 0.0).
func KendallTau(rank1, rank2 []int) (int, float64, error) {
	n := len(rank1)
	if n != len(rank2) {
		return 0, 0, &LengthMismatchError{Len1: n, Len2: len(rank2)}
	}
	if n <= 1 {
		return 0, 0.0, nil
	}

	inversions := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if (rank1[i] < rank1[j]) != (rank2[i] < rank2[j]) {
				inversions++
			}
		}
	}

	maxInversions := n * (n - 1) / 2
	return inversions, float64(inversions) / float64(maxInversions), nil
}

// PositionWiseMatchRate computes the fraction of positions holding identical
// tokens. With alignByLCS set, positions are matched through the LCS and the
// rate is LCS length over the longer sequence length; otherwise tokens are
// compared index by index with no alignment.
//
// Two empty sequences match perfectly (1.0); exactly one empty yields 0.0.
func PositionWiseMatchRate(seq1, seq2 []int, alignByLCS bool) float64 {
	m, n := len(seq1), len(seq2)

	if m == 0 && n == 0 {
		return 1.0
	}
	if m == 0 || n == 0 {
		return 0.0
	}

	maxLen := m
	if n > maxLen {
		maxLen = n
	}

	if alignByLCS {
		length, _ := LongestCommonSubsequence(seq1, seq2)
		return float64(length) / float64(maxLen)
	}

	matches := 0
	limit := m
	if n < limit {
		limit = n
	}
	for i := 0; i < limit; i++ {
		if seq1[i] == seq2[i] {
			matches++
		}
	}
	return float64(matches) / float64(maxLen)
}
