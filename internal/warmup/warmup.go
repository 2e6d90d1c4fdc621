// Package warmup primes the metrics pipeline before serving traffic: it runs
// synthetic computations so the DP tables, hash buffers, and compression
// state are allocated and the byte buffer pool is populated ahead of the
// first real request.
package warmup

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_token_metrics/internal/ports"
	"github.com/baditaflorin/go_token_metrics/internal/registry"
)

// Config defines configuration for warming up the pipeline
type Config struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Sample text size for warmup
	SampleTextSize int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultConfig returns the default warmup configuration
func DefaultConfig() Config {
	return Config{
		Concurrency:    runtime.NumCPU(),
		Iterations:     1000,
		SampleTextSize: 1000,
		Duration:       5 * time.Second,
		ForceGC:        true,
	}
}

// Manager handles pipeline warmup operations
type Manager struct {
	logger   ports.Logger
	registry *registry.Registry
	config   Config
}

// NewManager creates a new warmup manager over the given registry
func NewManager(logger ports.Logger, reg *registry.Registry, config Config) *Manager {
	return &Manager{
		logger:   logger,
		registry: reg,
		config:   config,
	}
}

// WarmUp runs synthetic metric computations across the full registry. Each
// routine tokenizes its own sample texts, so the shared registry only sees
// concurrent reads.
func (wm *Manager) WarmUp(ctx context.Context) {
	startTime := time.Now()
	wm.logger.Info("Starting pipeline warmup",
		"metrics", wm.registry.Len(),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	original := generateSampleText(wm.config.SampleTextSize)
	similar := generateSimilarText(original, 0.1)
	different := generateSimilarText(original, 0.5)

	var wg sync.WaitGroup
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			base := tokenize(original)
			variants := [][]int{base, tokenize(similar), tokenize(different)}

			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-warmupCtx.Done():
					return
				default:
				}

				_ = wm.registry.ComputeAll(base, variants[j%len(variants)], nil)
			}
		}()
	}
	wg.Wait()

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("Pipeline warmup completed",
		"duration", time.Since(startTime),
	)
}

// tokenize maps words to sequential ids, enough to produce realistic token
// sequences without a full tokenizer adapter.
func tokenize(text string) []int {
	vocab := make(map[string]int)
	words := strings.Fields(text)
	ids := make([]int, 0, len(words))
	for _, w := range words {
		id, ok := vocab[w]
		if !ok {
			id = len(vocab)
			vocab[w] = id
		}
		ids = append(ids, id)
	}
	return ids
}

// generateSampleText creates sample text of the specified size
func generateSampleText(size int) string {
	words := []string{
		"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog",
		"hello", "world", "lorem", "ipsum", "dolor", "sit", "amet", "consectetur",
		"adipiscing", "elit", "sed", "do", "eiusmod", "tempor", "incididunt",
		"ut", "labore", "et", "dolore", "magna", "aliqua",
	}

	var sb strings.Builder
	wordsNeeded := size / 5 // Assuming average word length of 5

	for i := 0; i < wordsNeeded; i++ {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(words[i%len(words)])
	}

	result := sb.String()
	if len(result) > size {
		return result[:size]
	}
	return result
}

// generateSimilarText creates a text similar to the original with the
// specified difference ratio
func generateSimilarText(original string, diffRatio float64) string {
	words := strings.Fields(original)
	changeCount := int(float64(len(words)) * diffRatio)

	replacements := []string{
		"replaced", "modified", "changed", "altered", "updated",
		"different", "unique", "new", "fresh", "novel",
	}

	newWords := make([]string, len(words))
	copy(newWords, words)

	for i := 0; i < changeCount && i < len(newWords); i++ {
		newWords[i] = replacements[i%len(replacements)]
	}

	return strings.Join(newWords, " ")
}
