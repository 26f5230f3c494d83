// Package chroma provides syntax highlighting using the chroma library.
package chroma

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/actionshrimp/gitlad"
)

// Compile-time interface verification.
var _ gitlad.Tokenizer = (*Tokenizer)(nil)

// Tokenizer extracts syntax tokens using chroma.
type Tokenizer struct{}

// NewTokenizer creates a new chroma-based tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize splits source code into styled tokens for the given language.
// It returns nil when the language is unknown or lexing fails, which the
// caller treats as "render unstyled". An empty source yields an empty
// slice, not nil.
func (t *Tokenizer) Tokenize(language, source string) []gitlad.Token {
	if source == "" {
		return []gitlad.Token{}
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		return nil
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return nil
	}

	var tokens []gitlad.Token
	for token := iterator(); token != chroma.EOF; token = iterator() {
		tokens = append(tokens, gitlad.Token{
			Text:  token.Value,
			Style: tokenStyle(token.Type),
		})
	}
	return tokens
}

// tokenStyle maps a chroma token type to a display style. Colors are
// loosely based on the One Dark theme. Specific name types are matched
// before the broad Name category so builtins and functions keep their own
// colors.
func tokenStyle(tt chroma.TokenType) gitlad.Style {
	switch tt {
	case chroma.NameBuiltin, chroma.NameBuiltinPseudo:
		return gitlad.Style{Foreground: "#e5c07b"}
	case chroma.NameFunction, chroma.NameFunctionMagic:
		return gitlad.Style{Foreground: "#61afef"}
	}

	switch {
	case tt.InCategory(chroma.Keyword):
		return gitlad.Style{Foreground: "#c678dd", Bold: true}
	case tt.InCategory(chroma.Comment):
		return gitlad.Style{Foreground: "#5c6370"}
	case tt.InSubCategory(chroma.LiteralString):
		return gitlad.Style{Foreground: "#98c379"}
	case tt.InSubCategory(chroma.LiteralNumber):
		return gitlad.Style{Foreground: "#d19a66"}
	case tt.InCategory(chroma.Operator):
		return gitlad.Style{Foreground: "#56b6c2"}
	case tt.InCategory(chroma.Name):
		return gitlad.Style{Foreground: "#e06c75"}
	default:
		return gitlad.Style{}
	}
}
