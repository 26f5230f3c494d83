// Package mock provides mock implementations of gitlad interfaces for
// testing.
package mock

import (
	"context"
	"io"

	"github.com/actionshrimp/gitlad"
)

// Compile-time interface verification.
var _ gitlad.Parser = (*Parser)(nil)
var _ gitlad.Loader = (*Loader)(nil)
var _ gitlad.Applier = (*Applier)(nil)
var _ gitlad.Tokenizer = (*Tokenizer)(nil)
var _ gitlad.LanguageDetector = (*LanguageDetector)(nil)

// Parser is a mock implementation of gitlad.Parser.
type Parser struct {
	ParseFn func(r io.Reader) ([]gitlad.FileDiff, error)
}

func (p *Parser) Parse(r io.Reader) ([]gitlad.FileDiff, error) {
	return p.ParseFn(r)
}

// Loader is a mock implementation of gitlad.Loader.
type Loader struct {
	LoadFn func(ctx context.Context) (*gitlad.Snapshot, error)
}

func (l *Loader) Load(ctx context.Context) (*gitlad.Snapshot, error) {
	return l.LoadFn(ctx)
}

// Applier is a mock implementation of gitlad.Applier.
type Applier struct {
	ApplyFn func(ctx context.Context, patch string, target gitlad.ApplyTarget) error
}

func (a *Applier) Apply(ctx context.Context, patch string, target gitlad.ApplyTarget) error {
	return a.ApplyFn(ctx, patch, target)
}

// Tokenizer is a mock implementation of gitlad.Tokenizer.
type Tokenizer struct {
	TokenizeFn func(language, source string) []gitlad.Token
}

func (t *Tokenizer) Tokenize(language, source string) []gitlad.Token {
	return t.TokenizeFn(language, source)
}

// LanguageDetector is a mock implementation of gitlad.LanguageDetector.
type LanguageDetector struct {
	DetectFromPathFn func(path string) string
}

func (d *LanguageDetector) DetectFromPath(path string) string {
	return d.DetectFromPathFn(path)
}
