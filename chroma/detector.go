package chroma

import (
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/actionshrimp/gitlad"
)

// Compile-time interface verification.
var _ gitlad.LanguageDetector = (*Detector)(nil)

// Detector maps file paths to chroma language names.
type Detector struct{}

// NewDetector creates a new filename-based language detector.
func NewDetector() *Detector {
	return &Detector{}
}

// DetectFromPath returns the chroma language name for the path, or an
// empty string when no lexer matches.
func (d *Detector) DetectFromPath(path string) string {
	lexer := lexers.Match(path)
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}
