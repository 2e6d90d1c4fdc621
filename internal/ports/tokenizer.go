package ports

// Tokenizer adapts an underlying tokenizer implementation to a uniform API.
// Implementations must be deterministic: identical text with an identical
// vocabulary state always yields the same token ids.
type Tokenizer interface {
	// Encode converts text into an ordered sequence of integer token ids.
	// An empty string encodes to an empty sequence.
	Encode(text string) ([]int, error)

	// Name returns a unique identifier for this tokenizer, used for grouping
	// results and as part of the session token cache key.
	Name() string

	// VocabSize returns the number of tokens in the vocabulary. May be
	// approximate for unbounded tokenizers.
	VocabSize() int

	// VocabHash returns a short hex fingerprint of the vocabulary, so that
	// vocabulary drift between runs is detectable.
	VocabHash() string
}
