// Package domain holds the data model shared by the session, batch, and
// storage layers: observations, session results, and run manifests.
package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/valyala/bytebufferpool"
)

// TokenHash returns the fingerprint of a token sequence: the first 16 hex
// characters of SHA-256 over the tokens encoded as 4-byte little-endian
// signed integers, concatenated in order.
func TokenHash(tokens []int) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	var scratch [4]byte
	for _, t := range tokens {
		binary.LittleEndian.PutUint32(scratch[:], uint32(int32(t)))
		buf.Write(scratch[:]) //nolint:errcheck // ByteBuffer.Write never fails
	}

	sum := sha256.Sum256(buf.B)
	return hex.EncodeToString(sum[:])[:16]
}

// Observation is one computed metrics record for a (run, input, transform,
// tokenizer) combination. The token fingerprints are derived once at
// construction and never change afterwards, so equality and serialization
// stay deterministic.
type Observation struct {
	RunID         string
	ObservationID string
	InputID       string
	InputType     string
	TransformID   string
	GroupID       string
	TokenizerID   string

	TokensBefore []int
	TokensAfter  []int
	M            int
	N            int

	// Metrics maps "{metric_id}.{key}" to computed values.
	Metrics map[string]float64

	TokensBeforeHash string
	TokensAfterHash  string

	// TextBefore and TextAfter are retained only when the caller asked for
	// text storage.
	TextBefore *string
	TextAfter  *string

	Context map[string]interface{}
}

// ObservationParams carries the inputs for NewObservation.
type ObservationParams struct {
	RunID         string
	ObservationID string
	InputID       string
	InputType     string
	TransformID   string
	GroupID       string
	TokenizerID   string
	TokensBefore  []int
	TokensAfter   []int
	Metrics       map[string]float64
	TextBefore    *string
	TextAfter     *string
	Context       map[string]interface{}
}

// NewObservation builds an Observation, deriving the sequence lengths and
// token fingerprints from the supplied sequences.
func NewObservation(p ObservationParams) *Observation {
	return &Observation{
		RunID:            p.RunID,
		ObservationID:    p.ObservationID,
		InputID:          p.InputID,
		InputType:        p.InputType,
		TransformID:      p.TransformID,
		GroupID:          p.GroupID,
		TokenizerID:      p.TokenizerID,
		TokensBefore:     p.TokensBefore,
		TokensAfter:      p.TokensAfter,
		M:                len(p.TokensBefore),
		N:                len(p.TokensAfter),
		Metrics:          p.Metrics,
		TokensBeforeHash: TokenHash(p.TokensBefore),
		TokensAfterHash:  TokenHash(p.TokensAfter),
		TextBefore:       p.TextBefore,
		TextAfter:        p.TextAfter,
		Context:          p.Context,
	}
}

// ToRecord flattens the observation into a single record suitable for a
// persistence collaborator. Metric values become "metric_{id}.{key}" columns
// and context entries become "context_{key}" columns. Raw token sequences are
// included only when includeTokens is set; they are expensive at scale.
func (o *Observation) ToRecord(includeTokens bool) map[string]interface{} {
	record := map[string]interface{}{
		"run_id":             o.RunID,
		"observation_id":     o.ObservationID,
		"input_id":           o.InputID,
		"input_type":         o.InputType,
		"transform_id":       o.TransformID,
		"group_id":           o.GroupID,
		"tokenizer_id":       o.TokenizerID,
		"m":                  o.M,
		"n":                  o.N,
		"tokens_before_hash": o.TokensBeforeHash,
		"tokens_after_hash":  o.TokensAfterHash,
	}

	for k, v := range o.Metrics {
		record["metric_"+k] = v
	}

	if o.TextBefore != nil {
		record["text_before"] = *o.TextBefore
	}
	if o.TextAfter != nil {
		record["text_after"] = *o.TextAfter
	}

	if includeTokens {
		record["tokens_before"] = o.TokensBefore
		record["tokens_after"] = o.TokensAfter
	}

	for k, v := range o.Context {
		record["context_"+k] = v
	}

	return record
}

// SessionResult groups the observations of a single interactive computation:
// one per tokenizer. It is immutable once returned by the session.
type SessionResult struct {
	RunID        string
	TransformID  string
	TextBefore   string
	TextAfter    string
	Observations []*Observation
}

// MetricsByTokenizer returns the metric maps keyed by tokenizer id.
func (r *SessionResult) MetricsByTokenizer() map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(r.Observations))
	for _, obs := range r.Observations {
		metrics := make(map[string]float64, len(obs.Metrics))
		for k, v := range obs.Metrics {
			metrics[k] = v
		}
		out[obs.TokenizerID] = metrics
	}
	return out
}

// RunManifest describes a metrics computation run: the configuration and
// context needed to reproduce it.
type RunManifest struct {
	RunID           string                 `json:"runId"`
	CreatedAt       string                 `json:"createdAt"`
	Config          map[string]interface{} `json:"config"`
	Tokenizers      []string               `json:"tokenizers"`
	Metrics         []string               `json:"metrics"`
	NumObservations int                    `json:"numObservations"`
	Seed            *int64                 `json:"seed,omitempty"`
}

// ToJSON serializes the manifest to its JSON envelope.
func (m *RunManifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal run manifest: %w", err)
	}
	return data, nil
}

// ManifestFromJSON deserializes a manifest from its JSON envelope. An absent
// seed round-trips as a nil Seed.
func ManifestFromJSON(data []byte) (*RunManifest, error) {
	var m RunManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal run manifest: %w", err)
	}
	return &m, nil
}
