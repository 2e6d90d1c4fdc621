package session

import (
	"fmt"
	"iter"

	"github.com/google/uuid"

	"github.com/baditaflorin/go_token_metrics/internal/core/domain"
	"github.com/baditaflorin/go_token_metrics/internal/ports"
	"github.com/baditaflorin/go_token_metrics/internal/registry"
)

// BatchProcessor streams many inputs through one transform and N tokenizers,
// producing observations lazily. It buffers nothing: the consumer's pull rate
// is the only flow control. There is no internal retry; a transform or
// tokenization failure ends the stream with that error, and the driving code
// owns any per-item failure policy.
//
// Like the session, a processor provides no internal synchronization; shard
// the input stream across independent processors for parallelism.
type BatchProcessor struct {
	registry   *registry.Registry
	tokenizers []ports.Tokenizer
	context    map[string]interface{}
	logger     ports.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchContext sets the context map passed to metric computation.
func WithBatchContext(context map[string]interface{}) BatchOption {
	return func(b *BatchProcessor) { b.context = context }
}

// WithBatchLogger sets the processor logger.
func WithBatchLogger(logger ports.Logger) BatchOption {
	return func(b *BatchProcessor) { b.logger = logger }
}

// NewBatchProcessor creates a processor over the given registry and
// tokenizer adapters.
func NewBatchProcessor(reg *registry.Registry, tokenizers []ports.Tokenizer, opts ...BatchOption) *BatchProcessor {
	b := &BatchProcessor{
		registry:   reg,
		tokenizers: tokenizers,
		context:    map[string]interface{}{},
		logger:     noopLogger{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BatchParams carries the inputs for Process.
type BatchParams struct {
	// Transform rewrites each text; nil means identity.
	Transform TextTransformer
	// TransformID identifies the transform in results.
	TransformID string
	// InputType categorizes the inputs.
	InputType string
	// GroupID optionally tags all observations with a group.
	GroupID string
	// RunID identifies the run; a fresh unique id is generated when empty.
	RunID string
	// StoreText retains the before/after text on each observation.
	StoreText bool
}

// Process streams the texts through the transform and every tokenizer,
// yielding one observation per (input, tokenizer) pair. Inputs are assigned
// stable ids "input_{index}" in consumption order.
//
// The returned sequence is finite, lazy, and single-use: re-consumption
// requires calling Process again (and will re-run the transform). On error
// the sequence yields (nil, err) once and stops.
func (b *BatchProcessor) Process(texts iter.Seq[string], p BatchParams) iter.Seq2[*domain.Observation, error] {
	runID := p.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	inputType := p.InputType
	if inputType == "" {
		inputType = "default"
	}

	return func(yield func(*domain.Observation, error) bool) {
		inputIdx := 0
		for textBefore := range texts {
			inputID := fmt.Sprintf("input_%d", inputIdx)
			inputIdx++

			textAfter := textBefore
			if p.Transform != nil {
				var err error
				textAfter, err = p.Transform(textBefore)
				if err != nil {
					yield(nil, fmt.Errorf("transform %q on %s: %w", p.TransformID, inputID, err))
					return
				}
			}

			for _, tok := range b.tokenizers {
				tokensBefore, err := tok.Encode(textBefore)
				if err != nil {
					yield(nil, fmt.Errorf("tokenizer %q on %s: %w", tok.Name(), inputID, err))
					return
				}
				tokensAfter, err := tok.Encode(textAfter)
				if err != nil {
					yield(nil, fmt.Errorf("tokenizer %q on %s: %w", tok.Name(), inputID, err))
					return
				}

				metrics := b.registry.ComputeAll(tokensBefore, tokensAfter, b.context)

				var textBeforePtr, textAfterPtr *string
				if p.StoreText {
					tb, ta := textBefore, textAfter
					textBeforePtr, textAfterPtr = &tb, &ta
				}

				obs := domain.NewObservation(domain.ObservationParams{
					RunID:         runID,
					ObservationID: fmt.Sprintf("%s_%s_%s", runID, inputID, tok.Name()),
					InputID:       inputID,
					InputType:     inputType,
					TransformID:   p.TransformID,
					GroupID:       p.GroupID,
					TokenizerID:   tok.Name(),
					TokensBefore:  tokensBefore,
					TokensAfter:   tokensAfter,
					Metrics:       metrics,
					TextBefore:    textBeforePtr,
					TextAfter:     textAfterPtr,
					Context:       map[string]interface{}{"vocab_hash": tok.VocabHash()},
				})

				if !yield(obs, nil) {
					return
				}
			}
		}

		b.logger.Debug("batch complete", "run_id", runID, "inputs", inputIdx)
	}
}

// ProcessSlice is a convenience wrapper over Process for in-memory inputs.
func (b *BatchProcessor) ProcessSlice(texts []string, p BatchParams) iter.Seq2[*domain.Observation, error] {
	return b.Process(func(yield func(string) bool) {
		for _, t := range texts {
			if !yield(t) {
				return
			}
		}
	}, p)
}

// Manifest builds a run manifest for a completed batch: the tokenizer names,
// the registered metric ids, and the observation count.
func (b *BatchProcessor) Manifest(runID, createdAt string, config map[string]interface{}, numObservations int, seed *int64) *domain.RunManifest {
	names := make([]string, len(b.tokenizers))
	for i, tok := range b.tokenizers {
		names[i] = tok.Name()
	}

	return &domain.RunManifest{
		RunID:           runID,
		CreatedAt:       createdAt,
		Config:          config,
		Tokenizers:      names,
		Metrics:         b.registry.MetricIDs(),
		NumObservations: numObservations,
		Seed:            seed,
	}
}
