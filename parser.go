package gitlad

import "io"

// Parser parses raw unified-diff output into domain types.
type Parser interface {
	// Parse reads diff content and returns one FileDiff per changed file.
	// It returns a *ParseError for malformed file or hunk headers.
	Parse(r io.Reader) ([]FileDiff, error)
}
