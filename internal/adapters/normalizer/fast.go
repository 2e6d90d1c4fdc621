package normalizer

import (
	"sync"
	"unicode"

	"github.com/baditaflorin/go_token_metrics/internal/ports"
)

// FastNormalizer matches DefaultNormalizer semantics with a precomputed
// decision table for ASCII and pooled output buffers. Intended for hot paths
// like the HTTP server, where every request normalizes before tokenizing.
type FastNormalizer struct {
	// asciiTable maps each ASCII byte to its action:
	// 0 = keep, 1 = replace with space, 2 = lowercase.
	asciiTable [128]byte

	bufferPool sync.Pool
}

// NewFastNormalizer creates a fast normalizer with precomputed tables.
func NewFastNormalizer() ports.Normalizer {
	n := &FastNormalizer{
		bufferPool: sync.Pool{
			New: func() interface{} {
				buffer := make([]byte, 0, 1024)
				return &buffer
			},
		},
	}

	for i := 0; i < 128; i++ {
		r := rune(i)
		switch {
		case unicode.IsPunct(r):
			n.asciiTable[i] = 1
		case unicode.IsUpper(r):
			n.asciiTable[i] = 2
		default:
			n.asciiTable[i] = 0
		}
	}

	return n
}

// Normalize converts the input text to lower case and replaces punctuation
// with spaces.
func (n *FastNormalizer) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}

	buffer := n.bufferPool.Get().(*[]byte)
	if cap(*buffer) < len(text) {
		*buffer = make([]byte, 0, len(text))
	}
	out := (*buffer)[:0]

	asciiOnly := true
	for i := 0; i < len(text); i++ {
		if text[i] >= 128 {
			asciiOnly = false
			break
		}
	}

	if asciiOnly {
		for i := 0; i < len(text); i++ {
			b := text[i]
			switch n.asciiTable[b] {
			case 0:
				out = append(out, b)
			case 1:
				out = append(out, ' ')
			case 2:
				out = append(out, b+('a'-'A'))
			}
		}
	} else {
		for _, r := range text {
			switch {
			case r < 128:
				switch n.asciiTable[r] {
				case 0:
					out = append(out, byte(r))
				case 1:
					out = append(out, ' ')
				case 2:
					out = append(out, byte(r)+('a'-'A'))
				}
			case unicode.IsPunct(r):
				out = append(out, ' ')
			default:
				out = append(out, string(unicode.ToLower(r))...)
			}
		}
	}

	s := string(out)

	*buffer = out[:0]
	n.bufferPool.Put(buffer)

	return s
}
