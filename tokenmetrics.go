// Package tokenmetrics computes similarity and divergence metrics between
// token sequences: a text is tokenized before and after a transformation, and
// a registry of metrics quantifies how much the transformation disturbed the
// sequence. The package wires sensible defaults, the standard metric set, a
// whitespace tokenizer, and a structured logger, all overridable through
// functional options.
package tokenmetrics

import (
	"github.com/baditaflorin/go_token_metrics/internal/adapters/logger"
	"github.com/baditaflorin/go_token_metrics/internal/adapters/normalizer"
	"github.com/baditaflorin/go_token_metrics/internal/adapters/tokenizer"
	"github.com/baditaflorin/go_token_metrics/internal/core/domain"
	"github.com/baditaflorin/go_token_metrics/internal/ports"
	"github.com/baditaflorin/go_token_metrics/internal/registry"
	"github.com/baditaflorin/go_token_metrics/internal/session"
)

// Re-exported types so most callers only import this package.
type (
	// Result is the outcome of one interactive comparison.
	Result = domain.SessionResult
	// Observation is one computed metrics record.
	Observation = domain.Observation
	// RunManifest describes a completed run.
	RunManifest = domain.RunManifest
	// TextTransformer rewrites a text; nil means identity.
	TextTransformer = session.TextTransformer
	// Tokenizer converts text into token id sequences.
	Tokenizer = ports.Tokenizer
	// ComputeParams carries the inputs for Engine.ComputeOnce.
	ComputeParams = session.ComputeParams
	// BatchParams carries the inputs for batch processing.
	BatchParams = session.BatchParams
)

// Config holds configuration for an Engine.
type Config struct {
	// Registry supplies the metric set. Defaults to the standard set.
	Registry *registry.Registry
	// Tokenizers are the default adapters. Defaults to a whitespace
	// tokenizer with punctuation-stripping normalization.
	Tokenizers []ports.Tokenizer
	// Context is passed to every metric computation.
	Context map[string]interface{}
	// Logger for tracing computation steps.
	Logger ports.Logger
}

// Option defines a functional option for configuring the engine.
type Option func(*Config)

// WithRegistry sets a custom metric registry.
func WithRegistry(r *registry.Registry) Option {
	return func(cfg *Config) {
		cfg.Registry = r
	}
}

// WithExtendedMetrics replaces the standard metric set with the extended one,
// which adds distributional and complexity metrics.
func WithExtendedMetrics() Option {
	return func(cfg *Config) {
		cfg.Registry = registry.NewExtendedRegistry()
	}
}

// WithTokenizers sets the default tokenizer adapters.
func WithTokenizers(tokenizers ...ports.Tokenizer) Option {
	return func(cfg *Config) {
		cfg.Tokenizers = tokenizers
	}
}

// WithContext sets the context map passed to metric computation.
func WithContext(context map[string]interface{}) Option {
	return func(cfg *Config) {
		cfg.Context = context
	}
}

// WithLogger sets a custom logger.
func WithLogger(l ports.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = l
	}
}

// Engine is the top-level entry point: it owns a metric registry and default
// tokenizers, and hands out sessions and batch processors bound to them.
type Engine struct {
	config  Config
	session *session.MetricsSession
}

// New creates an engine with the provided functional options.
// If no logger is provided, a default logger is created.
func New(opts ...Option) *Engine {
	cfg := Config{
		Context: map[string]interface{}{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Registry == nil {
		cfg.Registry = registry.NewDefaultRegistry()
	}
	if len(cfg.Tokenizers) == 0 {
		cfg.Tokenizers = []ports.Tokenizer{
			tokenizer.NewWhitespaceTokenizer(
				tokenizer.WithNormalizer(normalizer.NewDefaultNormalizer()),
			),
		}
	}
	if cfg.Logger == nil {
		log, err := logger.NewStdLogger()
		if err != nil {
			panic(err)
		}
		cfg.Logger = log
	}

	return &Engine{
		config: cfg,
		session: session.NewMetricsSession(
			session.WithRegistry(cfg.Registry),
			session.WithTokenizers(cfg.Tokenizers...),
			session.WithContext(cfg.Context),
			session.WithLogger(cfg.Logger),
		),
	}
}

// Compare computes all registered metrics between two already-transformed
// texts, one observation per tokenizer.
func (e *Engine) Compare(textBefore, textAfter string) (*Result, error) {
	return e.session.ComputeOnce(session.ComputeParams{
		TextBefore: textBefore,
		Transform: func(string) (string, error) {
			return textAfter, nil
		},
		TransformID: "replace",
	})
}

// ComputeOnce applies a transform to a text and computes all registered
// metrics over the before/after token sequences.
func (e *Engine) ComputeOnce(p ComputeParams) (*Result, error) {
	return e.session.ComputeOnce(p)
}

// Session returns the engine's interactive session, exposing its tokenization
// cache controls.
func (e *Engine) Session() *session.MetricsSession {
	return e.session
}

// Batch creates a streaming processor bound to the engine's registry and
// tokenizers.
func (e *Engine) Batch() *session.BatchProcessor {
	return session.NewBatchProcessor(
		e.config.Registry,
		e.config.Tokenizers,
		session.WithBatchContext(e.config.Context),
		session.WithBatchLogger(e.config.Logger),
	)
}

// Registry returns the engine's metric registry.
func (e *Engine) Registry() *registry.Registry {
	return e.config.Registry
}

// Close flushes and closes the engine's logger.
func (e *Engine) Close() error {
	return e.config.Logger.Close()
}
