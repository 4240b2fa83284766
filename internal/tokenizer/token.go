// Package tokenizer converts source text into normalized, position-tagged
// tokens. Lexical analysis itself is delegated to a pluggable Lexer
// (tree-sitter grammars where available, a generic scanner otherwise); this
// package owns only the skip/normalize policy layered on top.
package tokenizer

import "fmt"

// NormalizationLevel controls how aggressively token values are rewritten
// before comparison.
type NormalizationLevel int

const (
	// Exact keeps every token's literal text.
	Exact NormalizationLevel = iota
	// Identifiers rewrites identifier-like tokens to the placeholder "ID".
	Identifiers
	// Literals additionally rewrites string/number literals to "LIT".
	Literals
)

// String renders the normalization level the way it appears in CLI help
// and config error messages.
func (l NormalizationLevel) String() string {
	switch l {
	case Exact:
		return "exact"
	case Identifiers:
		return "identifiers"
	case Literals:
		return "literals"
	default:
		return fmt.Sprintf("NormalizationLevel(%d)", int(l))
	}
}

const (
	idPlaceholder  = "ID"
	litPlaceholder = "LIT"
)

// Token is an immutable, normalized, position-tagged lexeme.
type Token struct {
	Value  string
	Line   int
	Column int
}

// ErrNoLexer is returned by Tokenize when no registered Lexer recognizes
// the file's extension (and content-guessing, where supported, also fails).
type ErrNoLexer struct {
	Filename string
}

func (e *ErrNoLexer) Error() string {
	return fmt.Sprintf("no lexer available for %q", e.Filename)
}
