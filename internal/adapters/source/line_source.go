// Package source provides input adapters that feed text streams into the
// batch processor without materializing them in memory.
package source

import (
	"bufio"
	"io"
	"iter"
)

// DefaultMaxLineSize bounds a single input line, 1MB.
const DefaultMaxLineSize = 1024 * 1024

// LineSource streams an io.Reader line by line as batch inputs. Lines are
// yielded lazily, so throughput is controlled entirely by the consumer's
// pull rate. Empty lines are skipped.
//
// Scanning errors do not surface inside the sequence; check Err after the
// sequence is drained, bufio.Scanner style.
type LineSource struct {
	reader      io.Reader
	maxLineSize int
	count       int
	err         error
}

// LineOption configures a LineSource.
type LineOption func(*LineSource)

// WithMaxLineSize overrides the maximum accepted line length.
func WithMaxLineSize(size int) LineOption {
	return func(s *LineSource) { s.maxLineSize = size }
}

// NewLineSource creates a line source over r.
func NewLineSource(r io.Reader, opts ...LineOption) *LineSource {
	s := &LineSource{reader: r, maxLineSize: DefaultMaxLineSize}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lines returns the lazy line sequence. Single-use: the underlying reader is
// consumed as the sequence advances.
func (s *LineSource) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		scanner := bufio.NewScanner(s.reader)
		initial := 4096
		if s.maxLineSize < initial {
			initial = s.maxLineSize
		}
		scanner.Buffer(make([]byte, 0, initial), s.maxLineSize)

		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			s.count++
			if !yield(line) {
				return
			}
		}
		s.err = scanner.Err()
	}
}

// Count returns the number of non-empty lines yielded so far.
func (s *LineSource) Count() int {
	return s.count
}

// Err returns the scanning error encountered, if any. Valid once the
// sequence has been drained.
func (s *LineSource) Err() error {
	return s.err
}
