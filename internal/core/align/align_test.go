package align

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDamerauLevenshtein(t *testing.T) {
	tests := []struct {
		name     string
		seq1     []int
		seq2     []int
		wantRaw  int
		wantNorm float64
	}{
		{name: "both empty", seq1: nil, seq2: nil, wantRaw: 0, wantNorm: 0.0},
		{name: "first empty", seq1: nil, seq2: []int{1, 2, 3}, wantRaw: 3, wantNorm: 1.0},
		{name: "second empty", seq1: []int{1, 2}, seq2: nil, wantRaw: 2, wantNorm: 1.0},
		{name: "identical", seq1: []int{0, 1, 2}, seq2: []int{0, 1, 2}, wantRaw: 0, wantNorm: 0.0},
		{name: "adjacent transposition", seq1: []int{0, 1, 2}, seq2: []int{0, 2, 1}, wantRaw: 1, wantNorm: 1.0 / 3.0},
		{name: "pair swap", seq1: []int{7, 9}, seq2: []int{9, 7}, wantRaw: 1, wantNorm: 0.5},
		{name: "single insertion", seq1: []int{0, 1, 2}, seq2: []int{0, 1, 2, 3}, wantRaw: 1, wantNorm: 0.25},
		{name: "single deletion", seq1: []int{0, 1, 2, 3}, seq2: []int{0, 1, 3}, wantRaw: 1, wantNorm: 0.25},
		{name: "substitution", seq1: []int{0, 1, 2}, seq2: []int{0, 9, 2}, wantRaw: 1, wantNorm: 1.0 / 3.0},
		{name: "disjoint", seq1: []int{0, 1, 2}, seq2: []int{9, 10, 11}, wantRaw: 3, wantNorm: 1.0},
		{name: "non-adjacent transposition", seq1: []int{1, 2, 3}, seq2: []int{3, 2, 1}, wantRaw: 2, wantNorm: 2.0 / 3.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw, norm := DamerauLevenshtein(tc.seq1, tc.seq2)
			assert.Equal(t, tc.wantRaw, raw)
			assert.InDelta(t, tc.wantNorm, norm, 1e-9)
		})
	}
}

func TestDamerauLevenshteinSymmetry(t *testing.T) {
	pairs := [][2][]int{
		{{0, 1, 2, 3}, {3, 2, 1, 0}},
		{{5, 5, 5}, {5, 6}},
		{{1, 2, 3, 4, 5}, {1, 3, 2, 5, 4}},
		{{}, {42}},
	}

	for _, p := range pairs {
		raw12, norm12 := DamerauLevenshtein(p[0], p[1])
		raw21, norm21 := DamerauLevenshtein(p[1], p[0])
		assert.Equal(t, raw12, raw21)
		assert.InDelta(t, norm12, norm21, 1e-9)
		assert.GreaterOrEqual(t, norm12, 0.0)
		assert.LessOrEqual(t, norm12, 1.0)
	}
}

func TestDamerauLevenshteinIdentity(t *testing.T) {
	seqs := [][]int{nil, {1}, {1, 2, 3}, {9, 9, 9, 9}, {3, 1, 4, 1, 5, 9, 2, 6}}
	for _, s := range seqs {
		raw, norm := DamerauLevenshtein(s, s)
		assert.Equal(t, 0, raw)
		assert.Equal(t, 0.0, norm)
	}
}

func TestLongestCommonSubsequence(t *testing.T) {
	tests := []struct {
		name        string
		seq1        []int
		seq2        []int
		wantLen     int
		wantIndices []int
	}{
		{name: "both empty", seq1: nil, seq2: nil, wantLen: 0, wantIndices: nil},
		{name: "one empty", seq1: []int{1, 2}, seq2: nil, wantLen: 0, wantIndices: nil},
		{name: "identical", seq1: []int{0, 1, 2}, seq2: []int{0, 1, 2}, wantLen: 3, wantIndices: []int{0, 1, 2}},
		{name: "prefix retained", seq1: []int{0, 1, 2}, seq2: []int{0, 1, 2, 3}, wantLen: 3, wantIndices: []int{0, 1, 2}},
		{name: "swap keeps two", seq1: []int{0, 1, 2}, seq2: []int{0, 2, 1}, wantLen: 2},
		{name: "reversal keeps one", seq1: []int{0, 1, 2, 3}, seq2: []int{3, 2, 1, 0}, wantLen: 1},
		{name: "no overlap", seq1: []int{0, 1}, seq2: []int{2, 3}, wantLen: 0, wantIndices: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			length, indices := LongestCommonSubsequence(tc.seq1, tc.seq2)
			assert.Equal(t, tc.wantLen, length)
			assert.Len(t, indices, tc.wantLen)
			if tc.wantIndices != nil {
				assert.Equal(t, tc.wantIndices, indices)
			}
			// Indices must be strictly ascending positions into seq1.
			for i := 1; i < len(indices); i++ {
				assert.Less(t, indices[i-1], indices[i])
			}
		})
	}
}

func TestLongestCommonSubsequenceSelf(t *testing.T) {
	s := []int{4, 8, 15, 16, 23, 42}
	length, indices := LongestCommonSubsequence(s, s)
	require.Equal(t, len(s), length)
	require.Equal(t, []int{0, 1, 2, 3, 4, 5}, indices)
}

func TestLongestCommonSubsequenceMonotonic(t *testing.T) {
	seq1 := []int{1, 2, 3, 4}
	seq2 := []int{1, 3}
	base, _ := LongestCommonSubsequence(seq1, seq2)

	// Appending a token present in seq1 must not shrink the LCS.
	grown, _ := LongestCommonSubsequence(seq1, append(append([]int{}, seq2...), 4))
	assert.GreaterOrEqual(t, grown, base)
}

func TestKendallTau(t *testing.T) {
	tests := []struct {
		name     string
		rank1    []int
		rank2    []int
		wantInv  int
		wantNorm float64
	}{
		{name: "both empty", rank1: nil, rank2: nil, wantInv: 0, wantNorm: 0.0},
		{name: "single element", rank1: []int{5}, rank2: []int{9}, wantInv: 0, wantNorm: 0.0},
		{name: "agreement", rank1: []int{0, 1, 2}, rank2: []int{0, 1, 2}, wantInv: 0, wantNorm: 0.0},
		{name: "one inversion", rank1: []int{0, 1, 2}, rank2: []int{0, 2, 1}, wantInv: 1, wantNorm: 1.0 / 3.0},
		{name: "full reversal", rank1: []int{0, 1, 2, 3}, rank2: []int{3, 2, 1, 0}, wantInv: 6, wantNorm: 1.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inv, norm, err := KendallTau(tc.rank1, tc.rank2)
			require.NoError(t, err)
			assert.Equal(t, tc.wantInv, inv)
			assert.InDelta(t, tc.wantNorm, norm, 1e-9)
		})
	}
}

func TestKendallTauLengthMismatch(t *testing.T) {
	_, _, err := KendallTau([]int{1, 2, 3}, []int{1, 2})
	require.Error(t, err)

	var mismatch *LengthMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 3, mismatch.Len1)
	assert.Equal(t, 2, mismatch.Len2)
}

func TestPositionWiseMatchRate(t *testing.T) {
	tests := []struct {
		name    string
		seq1    []int
		seq2    []int
		aligned bool
		want    float64
	}{
		{name: "both empty", seq1: nil, seq2: nil, aligned: true, want: 1.0},
		{name: "one empty", seq1: []int{1}, seq2: nil, aligned: true, want: 0.0},
		{name: "identical aligned", seq1: []int{0, 1, 2}, seq2: []int{0, 1, 2}, aligned: true, want: 1.0},
		{name: "substitution aligned", seq1: []int{0, 1, 2}, seq2: []int{0, 9, 2}, aligned: true, want: 2.0 / 3.0},
		{name: "swap aligned", seq1: []int{0, 1, 2}, seq2: []int{0, 2, 1}, aligned: true, want: 2.0 / 3.0},
		{name: "reversal aligned", seq1: []int{0, 1, 2, 3}, seq2: []int{3, 2, 1, 0}, aligned: true, want: 0.25},
		{name: "raw positional", seq1: []int{0, 1, 2}, seq2: []int{0, 2, 1}, aligned: false, want: 1.0 / 3.0},
		{name: "raw shorter second", seq1: []int{0, 1, 2, 3}, seq2: []int{0, 1}, aligned: false, want: 0.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := PositionWiseMatchRate(tc.seq1, tc.seq2, tc.aligned)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func benchSequences(n int) ([]int, []int) {
	seq1 := make([]int, n)
	seq2 := make([]int, n)
	for i := 0; i < n; i++ {
		seq1[i] = i % 97
		seq2[i] = (i*7 + 3) % 97
	}
	return seq1, seq2
}

func BenchmarkDamerauLevenshtein(b *testing.B) {
	seq1, seq2 := benchSequences(256)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		DamerauLevenshtein(seq1, seq2)
	}
}

func BenchmarkLongestCommonSubsequence(b *testing.B) {
	seq1, seq2 := benchSequences(256)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		LongestCommonSubsequence(seq1, seq2)
	}
}
