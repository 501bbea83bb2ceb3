// Package tokenize provides the language-aware segmentation and keyword
// ranking the curation engine depends on. Implementations are built once
// at startup and are read-only afterwards.
package tokenize

// Extractor segments text into tokens and ranks its keywords by
// importance. Implementations must be deterministic (stable order for
// equal-weight terms) and safe for concurrent use after construction.
type Extractor interface {
	// Cut splits text into an ordered list of tokens.
	Cut(text string) []string
	// TopKeywords returns up to k terms ranked by importance.
	TopKeywords(text string, k int) []string
}
