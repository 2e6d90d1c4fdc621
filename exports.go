package tokenmetrics

import (
	"io"

	"github.com/baditaflorin/go_token_metrics/internal/adapters/normalizer"
	"github.com/baditaflorin/go_token_metrics/internal/adapters/source"
	"github.com/baditaflorin/go_token_metrics/internal/adapters/store"
	"github.com/baditaflorin/go_token_metrics/internal/adapters/tokenizer"
	"github.com/baditaflorin/go_token_metrics/internal/ports"
	"github.com/baditaflorin/go_token_metrics/internal/registry"
	"github.com/baditaflorin/go_token_metrics/internal/session"
)

// Re-exports of the port interfaces and adapter packages, so library
// consumers can reach everything the examples use without touching internal
// paths.

type (
	// Logger is the structured logging interface accepted by WithLogger.
	Logger = ports.Logger
	// Normalizer rewrites text before tokenization.
	Normalizer = ports.Normalizer

	// Registry is the metric directory backing an engine.
	Registry = registry.Registry
	// MetricSpec describes one registered metric.
	MetricSpec = registry.MetricSpec
	// MetricFn computes one metric over a pair of token sequences.
	MetricFn = registry.MetricFn
	// Semantics is the interpretation metadata carried by a MetricSpec.
	Semantics = registry.Semantics
	// NormHints carries display normalization hints.
	NormHints = registry.NormHints

	// JSONLStore persists observation records and run manifests.
	JSONLStore = store.JSONLStore
	// StoreOption configures a JSONLStore.
	StoreOption = store.StoreOption

	// LineSource streams an io.Reader line by line as batch inputs.
	LineSource = source.LineSource
	// LineOption configures a LineSource.
	LineOption = source.LineOption

	// WhitespaceTokenizer splits on whitespace with a growing vocabulary.
	WhitespaceTokenizer = tokenizer.WhitespaceTokenizer
	// WhitespaceOption configures a WhitespaceTokenizer.
	WhitespaceOption = tokenizer.WhitespaceOption
	// RuneTokenizer encodes text as Unicode code points.
	RuneTokenizer = tokenizer.RuneTokenizer

	// MetricsSession is the interactive session returned by Engine.Session.
	MetricsSession = session.MetricsSession
	// BatchProcessor is the streaming processor returned by Engine.Batch.
	BatchProcessor = session.BatchProcessor

	// MissingDependencyError reports a metric computed without a declared
	// context dependency.
	MissingDependencyError = registry.MissingDependencyError
)

var (
	// ErrManifestNotFound reports a manifest lookup for an unknown run id.
	ErrManifestNotFound = store.ErrManifestNotFound
	// ErrNoTokenizers reports a computation attempted without any tokenizer.
	ErrNoTokenizers = session.ErrNoTokenizers
	// ErrDuplicateMetric reports a registration under a taken id.
	ErrDuplicateMetric = registry.ErrDuplicateMetric
	// ErrMetricNotFound reports a lookup of an unregistered metric id.
	ErrMetricNotFound = registry.ErrMetricNotFound
)

// NewMetricRegistry creates an empty metric registry.
func NewMetricRegistry() *Registry {
	return registry.New()
}

// NewDefaultRegistry creates a registry with the standard metric set.
func NewDefaultRegistry() *Registry {
	return registry.NewDefaultRegistry()
}

// NewExtendedRegistry creates a registry with the standard set plus the
// distributional, complexity, and structural extension metrics.
func NewExtendedRegistry() *Registry {
	return registry.NewExtendedRegistry()
}

// NewJSONLStore creates an observation store rooted at dir.
func NewJSONLStore(dir string, opts ...StoreOption) (*JSONLStore, error) {
	return store.NewJSONLStore(dir, opts...)
}

// WithStoreLogger sets the store logger.
func WithStoreLogger(logger Logger) StoreOption {
	return store.WithStoreLogger(logger)
}

// NewLineSource creates a line source over r.
func NewLineSource(r io.Reader, opts ...LineOption) *LineSource {
	return source.NewLineSource(r, opts...)
}

// WithMaxLineSize overrides the maximum accepted line length.
func WithMaxLineSize(size int) LineOption {
	return source.WithMaxLineSize(size)
}

// NewWhitespaceTokenizer creates an empty-vocabulary whitespace tokenizer.
func NewWhitespaceTokenizer(opts ...WhitespaceOption) *WhitespaceTokenizer {
	return tokenizer.NewWhitespaceTokenizer(opts...)
}

// WithTokenizerNormalizer applies a normalization pass before splitting.
func WithTokenizerNormalizer(n Normalizer) WhitespaceOption {
	return tokenizer.WithNormalizer(n)
}

// NewRuneTokenizer creates a rune tokenizer.
func NewRuneTokenizer() *RuneTokenizer {
	return tokenizer.NewRuneTokenizer()
}

// NewDefaultNormalizer creates the default lowercasing normalizer.
func NewDefaultNormalizer() Normalizer {
	return normalizer.NewDefaultNormalizer()
}

// NewFastNormalizer creates the table-driven normalizer for hot paths.
func NewFastNormalizer() Normalizer {
	return normalizer.NewFastNormalizer()
}
