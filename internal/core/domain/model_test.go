package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenHash(t *testing.T) {
	// Deterministic, order sensitive, 16 hex characters.
	h1 := TokenHash([]int{0, 1, 2})
	h2 := TokenHash([]int{0, 1, 2})
	h3 := TokenHash([]int{2, 1, 0})

	assert.Len(t, h1, 16)
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)

	// Negative ids encode via the signed 4-byte representation.
	assert.NotEqual(t, TokenHash([]int{-1}), TokenHash([]int{1}))

	// Empty sequence hashes the empty byte string.
	assert.Len(t, TokenHash(nil), 16)
}

func TestNewObservationDerivedFields(t *testing.T) {
	obs := NewObservation(ObservationParams{
		RunID:         "run-1",
		ObservationID: "run-1_input_0_ws",
		InputID:       "input_0",
		InputType:     "adhoc",
		TransformID:   "identity",
		TokenizerID:   "ws",
		TokensBefore:  []int{0, 1, 2},
		TokensAfter:   []int{0, 2, 1},
		Metrics:       map[string]float64{"ned.value": 1.0 / 3.0},
	})

	assert.Equal(t, 3, obs.M)
	assert.Equal(t, 3, obs.N)
	assert.Equal(t, TokenHash([]int{0, 1, 2}), obs.TokensBeforeHash)
	assert.Equal(t, TokenHash([]int{0, 2, 1}), obs.TokensAfterHash)
	assert.NotEqual(t, obs.TokensBeforeHash, obs.TokensAfterHash)
}

func TestObservationToRecord(t *testing.T) {
	text := "hello world"
	obs := NewObservation(ObservationParams{
		RunID:         "run-1",
		ObservationID: "run-1_input_0_ws",
		InputID:       "input_0",
		InputType:     "demo",
		TransformID:   "uppercase",
		TokenizerID:   "ws",
		TokensBefore:  []int{0, 1},
		TokensAfter:   []int{0, 1, 2},
		Metrics:       map[string]float64{"lr.ratio": 1.5, "lr.delta": 0.5},
		TextBefore:    &text,
		Context:       map[string]interface{}{"vocab_hash": "abc123"},
	})

	record := obs.ToRecord(false)

	assert.Equal(t, "run-1", record["run_id"])
	assert.Equal(t, 2, record["m"])
	assert.Equal(t, 3, record["n"])
	assert.Equal(t, 1.5, record["metric_lr.ratio"])
	assert.Equal(t, 0.5, record["metric_lr.delta"])
	assert.Equal(t, "hello world", record["text_before"])
	assert.Equal(t, "abc123", record["context_vocab_hash"])

	_, hasText := record["text_after"]
	assert.False(t, hasText)
	_, hasTokens := record["tokens_before"]
	assert.False(t, hasTokens)

	withTokens := obs.ToRecord(true)
	assert.Equal(t, []int{0, 1}, withTokens["tokens_before"])
	assert.Equal(t, []int{0, 1, 2}, withTokens["tokens_after"])
}

func TestRunManifestRoundTrip(t *testing.T) {
	seed := int64(42)
	tests := []struct {
		name     string
		manifest *RunManifest
	}{
		{
			name: "with seed",
			manifest: &RunManifest{
				RunID:           "run-1",
				CreatedAt:       "2026-08-25T12:00:00Z",
				Config:          map[string]interface{}{"transform_id": "uppercase", "store_text": true},
				Tokenizers:      []string{"ws", "rune"},
				Metrics:         []string{"ned", "lcsr", "pmr"},
				NumObservations: 12,
				Seed:            &seed,
			},
		},
		{
			name: "absent seed",
			manifest: &RunManifest{
				RunID:           "run-2",
				CreatedAt:       "2026-08-25T13:00:00Z",
				Config:          map[string]interface{}{},
				Tokenizers:      []string{"ws"},
				Metrics:         []string{"ned"},
				NumObservations: 0,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, err := tc.manifest.ToJSON()
			require.NoError(t, err)

			got, err := ManifestFromJSON(data)
			require.NoError(t, err)

			assert.Equal(t, tc.manifest.RunID, got.RunID)
			assert.Equal(t, tc.manifest.CreatedAt, got.CreatedAt)
			assert.Equal(t, tc.manifest.Tokenizers, got.Tokenizers)
			assert.Equal(t, tc.manifest.Metrics, got.Metrics)
			assert.Equal(t, tc.manifest.NumObservations, got.NumObservations)
			if tc.manifest.Seed == nil {
				assert.Nil(t, got.Seed)
			} else {
				require.NotNil(t, got.Seed)
				assert.Equal(t, *tc.manifest.Seed, *got.Seed)
			}
		})
	}
}

func TestSessionResultMetricsByTokenizer(t *testing.T) {
	result := &SessionResult{
		RunID:       "run-1",
		TransformID: "identity",
		Observations: []*Observation{
			NewObservation(ObservationParams{
				TokenizerID:  "ws",
				TokensBefore: []int{0},
				TokensAfter:  []int{0},
				Metrics:      map[string]float64{"ned.value": 0.0},
			}),
		},
	}

	byTok := result.MetricsByTokenizer()
	require.Contains(t, byTok, "ws")
	assert.Equal(t, 0.0, byTok["ws"]["ned.value"])
}
