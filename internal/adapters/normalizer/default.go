// Package normalizer provides text normalization strategies applied before
// tokenization.
package normalizer

import (
	"strings"
	"unicode"

	"github.com/baditaflorin/go_token_metrics/internal/ports"
)

// DefaultNormalizer lowercases text and replaces punctuation with spaces, so
// punctuation does not fuse with adjacent words during whitespace splitting.
type DefaultNormalizer struct{}

// NewDefaultNormalizer creates the default normalizer.
func NewDefaultNormalizer() ports.Normalizer {
	return &DefaultNormalizer{}
}

// Normalize converts the input text to lower case and replaces punctuation
// with spaces.
func (n *DefaultNormalizer) Normalize(text string) string {
	text = strings.ToLower(text)
	var sb strings.Builder
	for _, r := range text {
		if unicode.IsPunct(r) {
			sb.WriteRune(' ')
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
