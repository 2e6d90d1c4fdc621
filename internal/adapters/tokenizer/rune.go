package tokenizer

import (
	"crypto/sha256"
	"encoding/hex"
	"unicode/utf8"
)

// RuneTokenizer encodes text as Unicode code points, one token per rune. The
// vocabulary is the full code space and never changes, so the adapter is
// stateless and deterministic across instances.
type RuneTokenizer struct{}

// NewRuneTokenizer creates a rune tokenizer.
func NewRuneTokenizer() *RuneTokenizer {
	return &RuneTokenizer{}
}

// Encode returns the code point of each rune in text.
func (t *RuneTokenizer) Encode(text string) ([]int, error) {
	ids := make([]int, 0, utf8.RuneCountInString(text))
	for _, r := range text {
		ids = append(ids, int(r))
	}
	return ids, nil
}

// Name returns the tokenizer identifier.
func (t *RuneTokenizer) Name() string {
	return "rune"
}

// VocabSize returns the size of the Unicode code space.
func (t *RuneTokenizer) VocabSize() int {
	return utf8.MaxRune + 1
}

// VocabHash returns a fixed fingerprint; the rune vocabulary never changes.
func (t *RuneTokenizer) VocabHash() string {
	sum := sha256.Sum256([]byte("rune-codepoints"))
	return hex.EncodeToString(sum[:])[:16]
}
