package tokenmetrics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_token_metrics/internal/registry"
	"github.com/baditaflorin/go_token_metrics/internal/session"
)

// quietEngine builds an engine that does not touch stdout.
func quietEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithLogger(discardLogger{})}, opts...)
	return New(opts...)
}

type discardLogger struct{}

func (discardLogger) Debug(string, ...interface{}) {}
func (discardLogger) Info(string, ...interface{})  {}
func (discardLogger) Warn(string, ...interface{})  {}
func (discardLogger) Error(string, ...interface{}) {}
func (discardLogger) Close() error                 { return nil }

func TestCompareIdenticalTexts(t *testing.T) {
	engine := quietEngine(t)

	result, err := engine.Compare("the quick brown fox", "the quick brown fox")
	require.NoError(t, err)
	require.Len(t, result.Observations, 1)

	metrics := result.Observations[0].Metrics
	assert.InDelta(t, 0.0, metrics["ned.value"], 1e-12)
	assert.InDelta(t, 1.0, metrics["lcsr.value"], 1e-12)
	assert.InDelta(t, 1.0, metrics["pmr.value"], 1e-12)
	assert.InDelta(t, 0.0, metrics["jsdset.value"], 1e-12)
}

func TestCompareDisjointTexts(t *testing.T) {
	engine := quietEngine(t)

	result, err := engine.Compare("alpha beta gamma", "delta epsilon zeta")
	require.NoError(t, err)

	metrics := result.Observations[0].Metrics
	assert.InDelta(t, 1.0, metrics["ned.value"], 1e-12)
	assert.InDelta(t, 0.0, metrics["lcsr.value"], 1e-12)
	assert.InDelta(t, 1.0, metrics["jsdset.value"], 1e-12)
}

func TestComputeOnceWithTransform(t *testing.T) {
	engine := quietEngine(t)

	result, err := engine.ComputeOnce(ComputeParams{
		TextBefore:  "one two three four",
		Transform:   func(s string) (string, error) { return strings.ToUpper(s), nil },
		TransformID: "upper",
	})
	require.NoError(t, err)
	assert.Equal(t, "upper", result.TransformID)
	assert.Equal(t, "ONE TWO THREE FOUR", result.TextAfter)

	// The default tokenizer normalizes case, so upper-casing is a no-op
	// at the token level.
	metrics := result.Observations[0].Metrics
	assert.InDelta(t, 0.0, metrics["ned.value"], 1e-12)
}

func TestExtendedMetricsOption(t *testing.T) {
	engine := quietEngine(t, WithExtendedMetrics())

	result, err := engine.Compare("a b c", "a c b")
	require.NoError(t, err)

	metrics := result.Observations[0].Metrics
	assert.Contains(t, metrics, "cosdist.value")
	assert.Contains(t, metrics, "jsdiv.value")
	assert.Contains(t, metrics, "c_delta.value")
	// bhr needs boundary tokens in context and is skipped without them.
	assert.NotContains(t, metrics, "bhr.value")
}

func TestWithRegistryOption(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register(registry.MetricSpec{
		ID:   "lenonly",
		Name: "Length only",
		Fn: func(before, after []int, _ map[string]interface{}) map[string]float64 {
			return map[string]float64{"m": float64(len(before)), "n": float64(len(after))}
		},
	}))

	engine := quietEngine(t, WithRegistry(reg))
	result, err := engine.Compare("a b", "a b c")
	require.NoError(t, err)

	metrics := result.Observations[0].Metrics
	assert.Equal(t, map[string]float64{"lenonly.m": 2, "lenonly.n": 3}, metrics)
}

func TestBatchBoundToEngine(t *testing.T) {
	engine := quietEngine(t)
	processor := engine.Batch()

	var count int
	for obs, err := range processor.ProcessSlice([]string{"a b", "c d"}, session.BatchParams{TransformID: "identity"}) {
		require.NoError(t, err)
		assert.NotEmpty(t, obs.Metrics)
		count++
	}
	assert.Equal(t, 2, count)
}
