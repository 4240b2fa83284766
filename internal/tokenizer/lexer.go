package tokenizer

// LexemeKind classifies a raw lexeme before any tokenizer-level
// normalization. It mirrors the Pygments token-type groups the original
// implementation (cpitd.tokenizer) dispatched on.
type LexemeKind int

const (
	// KindOther covers operators, punctuation and keywords: always kept,
	// never normalized.
	KindOther LexemeKind = iota
	// KindWhitespace is always discarded.
	KindWhitespace
	// KindComment is always discarded (all subtypes: line, block, preproc, hashbang).
	KindComment
	// KindIdentifier is rewritten to "ID" at NormalizationLevel >= Identifiers.
	KindIdentifier
	// KindLiteral is rewritten to "LIT" at NormalizationLevel >= Literals.
	KindLiteral
)

// Lexeme is one raw unit yielded by a Lexer, in source order. Position
// fields are the lexeme's 1-based line and 0-based column of its first
// character; a Lexer that cannot report exact positions (a purely textual
// scanner) MAY leave Line/Column unset and rely on Tokenize's fallback
// line/column bookkeeping (see the Lexer doc below).
type Lexeme struct {
	Kind   LexemeKind
	Text   string
	Line   int
	Column int
}

// Lexer performs lexical analysis of one source file. Implementations are
// the "external multi-language lexer" the tokeniser consumes; selecting one
// by filename/content is the Registry's job, not the core's.
//
// Two lexing strategies exist in this module:
//
//   - Lexers backed by a tree-sitter grammar walk the parsed concrete
//     syntax tree's leaves, which already carry exact source positions, and
//     report them directly on each Lexeme.
//   - The generic fallback lexer scans raw text without building any tree
//     and does not know its own position ahead of time; it reports
//     Line == 0 for every lexeme and lets Tokenize derive positions by
//     counting newlines across the lexeme stream, exactly as the lexeme's
//     source order and text dictate. This is the same bookkeeping strategy
//     pygments-backed tokenizers need, because pygments lexemes also carry
//     no position of their own.
type Lexer interface {
	Lex(source []byte) ([]Lexeme, error)
}
