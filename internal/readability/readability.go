// Package readability measures how hard a text is to read. The metric is
// pluggable: the built-in Flesch formula only understands Latin-script
// text, and callers are expected to treat a measurement error as a
// neutral signal rather than a failure.
package readability

import "errors"

// ErrUnsupportedScript is returned when a text contains no words the
// metric knows how to measure (e.g. pure CJK content for Flesch).
var ErrUnsupportedScript = errors.New("readability: no measurable words in text")

// Metric scores a text's readability. Implementations are stateless and
// safe for concurrent use.
type Metric interface {
	Score(text string) (float64, error)
}
