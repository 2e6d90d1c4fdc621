// Package store persists observation records and run manifests. Observations
// are written as JSON Lines so a batch stream can be drained directly to
// disk without buffering; manifests are standalone JSON documents keyed by
// run id.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"

	"github.com/baditaflorin/go_token_metrics/internal/core/domain"
	"github.com/baditaflorin/go_token_metrics/internal/ports"
)

// ErrManifestNotFound reports a manifest lookup for an unknown run id.
var ErrManifestNotFound = errors.New("run manifest not found")

// JSONLStore writes observation records and manifests under one directory.
type JSONLStore struct {
	dir    string
	logger ports.Logger
}

// StoreOption configures a JSONLStore.
type StoreOption func(*JSONLStore)

// WithStoreLogger sets the store logger.
func WithStoreLogger(logger ports.Logger) StoreOption {
	return func(s *JSONLStore) { s.logger = logger }
}

// NewJSONLStore creates a store rooted at dir, creating it when missing.
func NewJSONLStore(dir string, opts ...StoreOption) (*JSONLStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	s := &JSONLStore{dir: dir, logger: nopLogger{}}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// WriteObservations drains the observation sequence into
// "observations_{runId}.jsonl", one record per line. The stream's own error,
// if any, aborts the write and is returned. Returns the number of records
// written and the output path.
func (s *JSONLStore) WriteObservations(runID string, observations iter.Seq2[*domain.Observation, error], includeTokens bool) (int, string, error) {
	path := filepath.Join(s.dir, fmt.Sprintf("observations_%s.jsonl", runID))

	f, err := os.Create(path)
	if err != nil {
		return 0, "", fmt.Errorf("create observations file: %w", err)
	}
	defer f.Close()

	count, err := s.writeRecords(f, observations, includeTokens)
	if err != nil {
		return count, path, err
	}
	if err := f.Sync(); err != nil {
		return count, path, fmt.Errorf("sync observations file: %w", err)
	}

	s.logger.Info("wrote observations", "run_id", runID, "count", count, "path", path)
	return count, path, nil
}

func (s *JSONLStore) writeRecords(w io.Writer, observations iter.Seq2[*domain.Observation, error], includeTokens bool) (int, error) {
	enc := json.NewEncoder(w)
	count := 0
	for obs, err := range observations {
		if err != nil {
			return count, fmt.Errorf("observation stream: %w", err)
		}
		if err := enc.Encode(obs.ToRecord(includeTokens)); err != nil {
			return count, fmt.Errorf("encode observation %q: %w", obs.ObservationID, err)
		}
		count++
	}
	return count, nil
}

// WriteManifest stores the manifest as "manifest_{runId}.json".
func (s *JSONLStore) WriteManifest(m *domain.RunManifest) (string, error) {
	data, err := m.ToJSON()
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, fmt.Sprintf("manifest_%s.json", m.RunID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}

	s.logger.Info("wrote manifest", "run_id", m.RunID, "path", path)
	return path, nil
}

// ReadManifest loads the manifest for runID. Unknown run ids fail with
// ErrManifestNotFound.
func (s *JSONLStore) ReadManifest(runID string) (*domain.RunManifest, error) {
	path := filepath.Join(s.dir, fmt.Sprintf("manifest_%s.json", runID))

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrManifestNotFound, runID)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return domain.ManifestFromJSON(data)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Close() error                 { return nil }
