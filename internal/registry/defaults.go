package registry

import (
	"github.com/baditaflorin/go_token_metrics/internal/core/metric"
)

func boolPtr(v bool) *bool { return &v }

func unitBounded() *[2]float64 { return &[2]float64{0.0, 1.0} }

func unitNorm() NormHints {
	return NormHints{DefaultRange: [2]float64{0.0, 1.0}, PreferredTransform: "identity"}
}

// defaultSpecs returns the standard metric set: edit and overlap (ned, lcsr,
// pmr), set-based (jsdset, jsdbag), structural (rord), and length (lr).
func defaultSpecs() []MetricSpec {
	return []MetricSpec{
		{
			ID:   "ned",
			Name: "Normalized Edit Distance (Damerau-Levenshtein)",
			Fn:   metric.NormalizedEditDistance,
			Semantics: Semantics{
				Type:          "distance",
				HigherIsWorse: boolPtr(true),
				Symmetric:     true,
				Bounded:       unitBounded(),
			},
			Norm: unitNorm(),
		},
		{
			ID:   "lcsr",
			Name: "LCS Retention Rate",
			Fn:   metric.LCSRetention,
			Semantics: Semantics{
				Type:          "distance",
				HigherIsWorse: boolPtr(false),
				Symmetric:     false, // normalized by |before|
				Bounded:       unitBounded(),
			},
			Norm: unitNorm(),
		},
		{
			ID:   "pmr",
			Name: "Position-wise Match Rate",
			Fn:   metric.PositionMatchRate,
			Semantics: Semantics{
				Type:          "distance",
				HigherIsWorse: boolPtr(false),
				Symmetric:     false,
				Bounded:       unitBounded(),
			},
			Norm: unitNorm(),
		},
		{
			ID:   "jsdset",
			Name: "Jaccard Set Distance",
			Fn:   metric.JaccardSetDistance,
			Semantics: Semantics{
				Type:          "distance",
				HigherIsWorse: boolPtr(true),
				Symmetric:     true,
				Bounded:       unitBounded(),
			},
			Norm: unitNorm(),
		},
		{
			ID:   "jsdbag",
			Name: "Jaccard Multiset (Bag) Distance",
			Fn:   metric.JaccardBagDistance,
			Semantics: Semantics{
				Type:          "distance",
				HigherIsWorse: boolPtr(true),
				Symmetric:     true,
				Bounded:       unitBounded(),
			},
			Norm: unitNorm(),
		},
		{
			ID:   "rord",
			Name: "Reordering Score (Kendall-tau)",
			Fn:   metric.ReorderingScore,
			Semantics: Semantics{
				Type:          "structure",
				HigherIsWorse: boolPtr(true),
				Symmetric:     false,
				Bounded:       unitBounded(),
			},
			Norm: unitNorm(),
		},
		{
			ID:   "lr",
			Name: "Length Ratio",
			Fn:   metric.LengthRatio,
			Semantics: Semantics{
				Type:      "complexity",
				Symmetric: false,
			},
			Norm: NormHints{DefaultRange: [2]float64{0.5, 2.0}, PreferredTransform: "log"},
		},
	}
}

// extensionSpecs returns the optional metric set: distributional (cosdist,
// jsdiv, h_delta), complexity (c_delta), and the structural extensions (spi,
// msi, bhr). bhr declares a context requirement and is skipped by ComputeAll
// unless boundary tokens are supplied.
func extensionSpecs() []MetricSpec {
	return []MetricSpec{
		{
			ID:   "cosdist",
			Name: "Cosine Distance on Token Frequencies",
			Fn:   metric.CosineDistance,
			Semantics: Semantics{
				Type:          "distribution",
				HigherIsWorse: boolPtr(true),
				Symmetric:     true,
				Bounded:       unitBounded(),
			},
			Norm: unitNorm(),
		},
		{
			ID:   "jsdiv",
			Name: "Jensen-Shannon Divergence",
			Fn:   metric.JensenShannonDivergence,
			Semantics: Semantics{
				Type:          "distribution",
				HigherIsWorse: boolPtr(true),
				Symmetric:     true,
				Bounded:       unitBounded(),
			},
			Norm: unitNorm(),
		},
		{
			ID:   "h_delta",
			Name: "Entropy Delta",
			Fn:   metric.EntropyDelta,
			Semantics: Semantics{
				Type:      "distribution",
				Symmetric: false,
			},
			Norm: NormHints{DefaultRange: [2]float64{-3.0, 3.0}, PreferredTransform: "identity"},
		},
		{
			ID:   "c_delta",
			Name: "Compression Delta",
			Fn:   metric.CompressionDelta,
			Semantics: Semantics{
				Type:      "complexity",
				Symmetric: false,
			},
			Norm: NormHints{DefaultRange: [2]float64{-1.0, 1.0}, PreferredTransform: "identity"},
		},
		{
			ID:   "spi",
			Name: "Span Perturbation Index",
			Fn:   metric.SpanPerturbationIndex,
			Semantics: Semantics{
				Type:          "structure",
				HigherIsWorse: boolPtr(true),
				Symmetric:     false,
				Bounded:       unitBounded(),
			},
			Norm: unitNorm(),
		},
		{
			ID:   "msi",
			Name: "Merge-Split Index",
			Fn:   metric.MergeSplitIndex,
			Semantics: Semantics{
				Type:      "structure",
				Symmetric: true,
				Bounded:   unitBounded(),
			},
			Norm: unitNorm(),
		},
		{
			ID:   "bhr",
			Name: "Boundary Hit Rate",
			Fn:   metric.BoundaryHitRate,
			Semantics: Semantics{
				Type:          "structure",
				HigherIsWorse: boolPtr(true),
				Symmetric:     false,
				Bounded:       unitBounded(),
			},
			Norm:     unitNorm(),
			Requires: []string{"boundary_tokens"},
		},
	}
}

// NewDefaultRegistry creates a registry pre-loaded with the standard seven
// metrics: ned, lcsr, pmr, jsdset, jsdbag, rord, lr.
func NewDefaultRegistry() *Registry {
	r := New()
	for _, spec := range defaultSpecs() {
		if err := r.Register(spec); err != nil {
			// The built-in specs are statically valid and unique.
			panic(err)
		}
	}
	return r
}

// NewExtendedRegistry creates a registry with the default set plus the
// distributional, complexity, and structural extension metrics.
func NewExtendedRegistry() *Registry {
	r := NewDefaultRegistry()
	for _, spec := range extensionSpecs() {
		if err := r.Register(spec); err != nil {
			panic(err)
		}
	}
	return r
}
