package tokenmetrics_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tokenmetrics "github.com/baditaflorin/go_token_metrics"
)

type silentLogger struct{}

func (silentLogger) Debug(string, ...interface{}) {}
func (silentLogger) Info(string, ...interface{})  {}
func (silentLogger) Warn(string, ...interface{})  {}
func (silentLogger) Error(string, ...interface{}) {}
func (silentLogger) Close() error                 { return nil }

// The full batch pipeline, line source through JSONL store, must be reachable
// without importing anything but the root package.
func TestBatchPersistenceFlow(t *testing.T) {
	engine := tokenmetrics.New(tokenmetrics.WithLogger(silentLogger{}))
	defer engine.Close()

	lines := tokenmetrics.NewLineSource(strings.NewReader("a b c\nd e f\n"))
	processor := engine.Batch()

	observations := processor.Process(lines.Lines(), tokenmetrics.BatchParams{
		RunID:       "run-pub",
		TransformID: "identity",
	})

	store, err := tokenmetrics.NewJSONLStore(t.TempDir(), tokenmetrics.WithStoreLogger(silentLogger{}))
	require.NoError(t, err)

	count, path, err := store.WriteObservations("run-pub", observations, false)
	require.NoError(t, err)
	require.NoError(t, lines.Err())
	assert.Equal(t, 2, count)
	assert.NotEmpty(t, path)

	manifest := processor.Manifest(
		"run-pub",
		time.Now().UTC().Format(time.RFC3339),
		map[string]interface{}{"transform": "identity"},
		count,
		nil,
	)
	_, err = store.WriteManifest(manifest)
	require.NoError(t, err)

	got, err := store.ReadManifest("run-pub")
	require.NoError(t, err)
	assert.Equal(t, count, got.NumObservations)

	_, err = store.ReadManifest("missing")
	assert.ErrorIs(t, err, tokenmetrics.ErrManifestNotFound)
}

func TestCustomRegistryAndTokenizer(t *testing.T) {
	reg := tokenmetrics.NewMetricRegistry()
	require.NoError(t, reg.Register(tokenmetrics.MetricSpec{
		ID:   "len",
		Name: "Length",
		Fn: func(before, after []int, _ map[string]interface{}) map[string]float64 {
			return map[string]float64{"m": float64(len(before)), "n": float64(len(after))}
		},
	}))

	engine := tokenmetrics.New(
		tokenmetrics.WithLogger(silentLogger{}),
		tokenmetrics.WithRegistry(reg),
		tokenmetrics.WithTokenizers(tokenmetrics.NewRuneTokenizer()),
	)
	defer engine.Close()

	result, err := engine.Compare("ab", "abc")
	require.NoError(t, err)
	metrics := result.Observations[0].Metrics
	assert.Equal(t, 2.0, metrics["len.m"])
	assert.Equal(t, 3.0, metrics["len.n"])
}

func TestWhitespaceTokenizerWithNormalizer(t *testing.T) {
	tok := tokenmetrics.NewWhitespaceTokenizer(
		tokenmetrics.WithTokenizerNormalizer(tokenmetrics.NewFastNormalizer()),
	)

	upper, err := tok.Encode("Hello, World!")
	require.NoError(t, err)
	lower, err := tok.Encode("hello world")
	require.NoError(t, err)
	assert.Equal(t, upper, lower)
}
