package gitlad

// Token is a run of source text with a single visual style.
type Token struct {
	Text  string
	Style Style
}

// Style describes how a token is displayed. Colors are hex strings; the
// zero value means the terminal default.
type Style struct {
	Foreground string
	Bold       bool
}

// Tokenizer splits source code into syntax tokens for a language.
type Tokenizer interface {
	// Tokenize returns nil when the language is not supported.
	Tokenize(language, source string) []Token
}

// LanguageDetector maps a file path to the language name used by the
// tokenizer.
type LanguageDetector interface {
	DetectFromPath(path string) string
}
