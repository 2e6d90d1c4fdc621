package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/go_token_metrics/internal/adapters/normalizer"
)

func TestWhitespaceTokenizerSequentialIDs(t *testing.T) {
	tok := NewWhitespaceTokenizer()

	ids, err := tok.Encode("hello world")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, ids)

	// Repeated words reuse their ids.
	ids, err = tok.Encode("hello world hello")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 0}, ids)

	assert.Equal(t, 2, tok.VocabSize())
}

func TestWhitespaceTokenizerEmptyText(t *testing.T) {
	tok := NewWhitespaceTokenizer()
	ids, err := tok.Encode("")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestWhitespaceTokenizerDeterministic(t *testing.T) {
	tok := NewWhitespaceTokenizer()
	first, err := tok.Encode("a b c a")
	require.NoError(t, err)
	second, err := tok.Encode("a b c a")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestWhitespaceTokenizerVocabHash(t *testing.T) {
	tok := NewWhitespaceTokenizer()
	empty := tok.VocabHash()
	assert.Len(t, empty, 16)

	_, err := tok.Encode("new words")
	require.NoError(t, err)
	grown := tok.VocabHash()
	assert.NotEqual(t, empty, grown)

	// Hash depends on vocabulary content, not insertion order.
	other := NewWhitespaceTokenizer()
	_, err = other.Encode("words new")
	require.NoError(t, err)
	assert.Equal(t, grown, other.VocabHash())
}

func TestWhitespaceTokenizerWithNormalizer(t *testing.T) {
	tok := NewWhitespaceTokenizer(WithNormalizer(normalizer.NewDefaultNormalizer()))

	upper, err := tok.Encode("Hello, World!")
	require.NoError(t, err)
	lower, err := tok.Encode("hello world")
	require.NoError(t, err)
	assert.Equal(t, upper, lower)
}

func TestRuneTokenizer(t *testing.T) {
	tok := NewRuneTokenizer()

	ids, err := tok.Encode("abc")
	require.NoError(t, err)
	assert.Equal(t, []int{97, 98, 99}, ids)

	ids, err = tok.Encode("")
	require.NoError(t, err)
	assert.Empty(t, ids)

	// Multi-byte runes encode as single tokens.
	ids, err = tok.Encode("héllo")
	require.NoError(t, err)
	assert.Len(t, ids, 5)
	assert.Equal(t, int('é'), ids[1])

	assert.Len(t, tok.VocabHash(), 16)
	assert.Equal(t, tok.VocabHash(), NewRuneTokenizer().VocabHash())
}
