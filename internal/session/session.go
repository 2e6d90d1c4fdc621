// Package session provides the orchestration layer over the metric registry:
// an interactive metrics session with tokenizer-level caching, and a
// streaming batch processor.
package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/baditaflorin/go_token_metrics/internal/core/domain"
	"github.com/baditaflorin/go_token_metrics/internal/ports"
	"github.com/baditaflorin/go_token_metrics/internal/registry"
)

// TextTransformer rewrites a text. Implementations must be deterministic per
// invocation for a given configuration; a nil transformer means identity.
type TextTransformer func(text string) (string, error)

// ErrNoTokenizers reports a computation attempted without any tokenizer.
var ErrNoTokenizers = errors.New("at least one tokenizer is required")

// cacheKey identifies a tokenization result by tokenizer identity and the
// exact input text.
type cacheKey struct {
	tokenizer string
	text      string
}

// MetricsSession orchestrates single-shot interactive computations. It caches
// token sequences per (tokenizer, text) so repeated recomputation over the
// same inputs, the common pattern when a UI re-runs after a parameter edit,
// tokenizes each text at most once per adapter. The cache grows until
// ClearCache; the session owns no other mutable state.
//
// A session is not safe for concurrent use. Shard inputs across independent
// sessions for parallelism.
type MetricsSession struct {
	registry   *registry.Registry
	tokenizers []ports.Tokenizer
	context    map[string]interface{}
	logger     ports.Logger
	cache      map[cacheKey][]int
}

// SessionOption configures a MetricsSession.
type SessionOption func(*MetricsSession)

// WithRegistry sets the metric registry. Defaults to the standard set.
func WithRegistry(r *registry.Registry) SessionOption {
	return func(s *MetricsSession) { s.registry = r }
}

// WithTokenizers sets the session's default tokenizer adapters.
func WithTokenizers(tokenizers ...ports.Tokenizer) SessionOption {
	return func(s *MetricsSession) { s.tokenizers = tokenizers }
}

// WithContext sets the context map passed to metric computation.
func WithContext(context map[string]interface{}) SessionOption {
	return func(s *MetricsSession) { s.context = context }
}

// WithLogger sets the session logger.
func WithLogger(logger ports.Logger) SessionOption {
	return func(s *MetricsSession) { s.logger = logger }
}

// NewMetricsSession creates a session with the default registry unless
// overridden by options.
func NewMetricsSession(opts ...SessionOption) *MetricsSession {
	s := &MetricsSession{
		context: map[string]interface{}{},
		cache:   make(map[cacheKey][]int),
		logger:  noopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = registry.NewDefaultRegistry()
	}
	return s
}

// Registry returns the registry backing this session.
func (s *MetricsSession) Registry() *registry.Registry {
	return s.registry
}

// RegisterTokenizer appends a tokenizer to the session's default set.
func (s *MetricsSession) RegisterTokenizer(tok ports.Tokenizer) {
	s.tokenizers = append(s.tokenizers, tok)
}

// ClearCache drops all cached tokenizations. Callers own invalidation: call
// this when the input text domain changes or a tokenizer's vocabulary drifts.
func (s *MetricsSession) ClearCache() {
	s.cache = make(map[cacheKey][]int)
}

// CacheSize returns the number of cached tokenizations.
func (s *MetricsSession) CacheSize() int {
	return len(s.cache)
}

// ComputeParams carries the inputs for ComputeOnce.
type ComputeParams struct {
	// TextBefore is the original text.
	TextBefore string
	// Transform rewrites the text; nil means identity.
	Transform TextTransformer
	// TransformID identifies the transform in results. Defaults to
	// "identity".
	TransformID string
	// Tokenizers overrides the session's default adapters when non-empty.
	Tokenizers []ports.Tokenizer
	// InputType categorizes the input (e.g. "adhoc", "news", "code").
	InputType string
	// StoreText retains the before/after text on each observation.
	StoreText bool
}

// ComputeOnce applies the transform once, tokenizes the before and after
// texts with every adapter (through the cache), computes all registered
// metrics, and returns one observation per tokenizer.
//
// Transform and tokenizer failures are not caught or retried here; they
// surface directly to the caller.
func (s *MetricsSession) ComputeOnce(p ComputeParams) (*domain.SessionResult, error) {
	adapters := p.Tokenizers
	if len(adapters) == 0 {
		adapters = s.tokenizers
	}
	if len(adapters) == 0 {
		return nil, ErrNoTokenizers
	}

	transformID := p.TransformID
	if transformID == "" {
		transformID = "identity"
	}
	inputType := p.InputType
	if inputType == "" {
		inputType = "adhoc"
	}

	textAfter := p.TextBefore
	if p.Transform != nil {
		var err error
		textAfter, err = p.Transform(p.TextBefore)
		if err != nil {
			return nil, fmt.Errorf("transform %q: %w", transformID, err)
		}
	}

	runID := "session-" + uuid.NewString()
	s.logger.Debug("starting session computation",
		"run_id", runID,
		"transform_id", transformID,
		"tokenizers", len(adapters),
	)

	observations := make([]*domain.Observation, 0, len(adapters))
	for _, adapter := range adapters {
		tokensBefore, err := s.encode(adapter, p.TextBefore)
		if err != nil {
			return nil, fmt.Errorf("tokenizer %q: %w", adapter.Name(), err)
		}
		tokensAfter, err := s.encode(adapter, textAfter)
		if err != nil {
			return nil, fmt.Errorf("tokenizer %q: %w", adapter.Name(), err)
		}

		metrics := s.registry.ComputeAll(tokensBefore, tokensAfter, s.context)

		var textBeforePtr, textAfterPtr *string
		if p.StoreText {
			tb, ta := p.TextBefore, textAfter
			textBeforePtr, textAfterPtr = &tb, &ta
		}

		observations = append(observations, domain.NewObservation(domain.ObservationParams{
			RunID:         runID,
			ObservationID: fmt.Sprintf("%s_%s", runID, adapter.Name()),
			InputID:       "input_0",
			InputType:     inputType,
			TransformID:   transformID,
			TokenizerID:   adapter.Name(),
			TokensBefore:  tokensBefore,
			TokensAfter:   tokensAfter,
			Metrics:       metrics,
			TextBefore:    textBeforePtr,
			TextAfter:     textAfterPtr,
			Context:       map[string]interface{}{"tokenizer_name": adapter.Name()},
		}))
	}

	return &domain.SessionResult{
		RunID:        runID,
		TransformID:  transformID,
		TextBefore:   p.TextBefore,
		TextAfter:    textAfter,
		Observations: observations,
	}, nil
}

// encode tokenizes text through the session cache. Cached sequences are
// returned as copies so callers cannot corrupt the cache.
func (s *MetricsSession) encode(tok ports.Tokenizer, text string) ([]int, error) {
	key := cacheKey{tokenizer: tok.Name(), text: text}
	if cached, ok := s.cache[key]; ok {
		out := make([]int, len(cached))
		copy(out, cached)
		return out, nil
	}

	tokens, err := tok.Encode(text)
	if err != nil {
		return nil, err
	}

	stored := make([]int, len(tokens))
	copy(stored, tokens)
	s.cache[key] = stored

	out := make([]int, len(tokens))
	copy(out, tokens)
	return out, nil
}

// noopLogger discards all messages; the default until WithLogger is applied.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) Close() error                 { return nil }
