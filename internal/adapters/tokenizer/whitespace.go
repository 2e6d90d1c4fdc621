// Package tokenizer provides built-in tokenizer adapters for testing, demos,
// and environments without an external tokenizer. Production deployments are
// expected to plug in their own ports.Tokenizer implementations.
package tokenizer

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/baditaflorin/go_token_metrics/internal/ports"
)

// WhitespaceTokenizer splits text on whitespace and assigns sequential
// integer ids as new words appear. The vocabulary grows monotonically, so a
// given word always maps to the same id within one tokenizer instance.
//
// Not safe for concurrent use; the vocabulary map is unsynchronized.
type WhitespaceTokenizer struct {
	vocab      map[string]int
	nextID     int
	normalizer ports.Normalizer
}

// WhitespaceOption configures a WhitespaceTokenizer.
type WhitespaceOption func(*WhitespaceTokenizer)

// WithNormalizer applies a normalization pass before splitting.
func WithNormalizer(n ports.Normalizer) WhitespaceOption {
	return func(t *WhitespaceTokenizer) { t.normalizer = n }
}

// NewWhitespaceTokenizer creates an empty-vocabulary whitespace tokenizer.
func NewWhitespaceTokenizer(opts ...WhitespaceOption) *WhitespaceTokenizer {
	t := &WhitespaceTokenizer{vocab: make(map[string]int)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Encode splits text on whitespace and returns the word ids, extending the
// vocabulary for unseen words.
func (t *WhitespaceTokenizer) Encode(text string) ([]int, error) {
	if t.normalizer != nil {
		text = t.normalizer.Normalize(text)
	}
	if text == "" {
		return []int{}, nil
	}

	words := strings.Fields(text)
	ids := make([]int, 0, len(words))
	for _, w := range words {
		id, ok := t.vocab[w]
		if !ok {
			id = t.nextID
			t.vocab[w] = id
			t.nextID++
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Name returns the tokenizer identifier.
func (t *WhitespaceTokenizer) Name() string {
	return "simple-whitespace"
}

// VocabSize returns the current vocabulary size.
func (t *WhitespaceTokenizer) VocabSize() int {
	return len(t.vocab)
}

// VocabHash returns the fingerprint of the sorted vocabulary, so vocabulary
// growth between runs is detectable.
func (t *WhitespaceTokenizer) VocabHash() string {
	words := make([]string, 0, len(t.vocab))
	for w := range t.vocab {
		words = append(words, w)
	}
	sort.Strings(words)

	sum := sha256.Sum256([]byte(strings.Join(words, ",")))
	return hex.EncodeToString(sum[:])[:16]
}
