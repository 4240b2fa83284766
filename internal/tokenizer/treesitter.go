package tokenizer

import (
	"fmt"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// treeSitterLexer tokenizes by parsing source with a tree-sitter grammar and
// walking the resulting concrete syntax tree's leaves in order: a leaf node
// (ChildCount() == 0) is exactly a lexical token, already carrying its own
// exact line/column, so no manual position bookkeeping is needed here. The
// parser is not goroutine-safe, so access is serialized the same way the
// teacher's pooled parser does it.
type treeSitterLexer struct {
	mu         sync.Mutex
	parser     *tree_sitter.Parser
	identKinds map[string]bool
	litKinds   map[string]bool
	commKinds  map[string]bool
}

func newTreeSitterLexer(lang *tree_sitter.Language, identKinds, litKinds, commKinds map[string]bool) *treeSitterLexer {
	p := tree_sitter.NewParser()
	if err := p.SetLanguage(lang); err != nil {
		panic(fmt.Sprintf("tokenizer: set language: %v", err))
	}
	return &treeSitterLexer{parser: p, identKinds: identKinds, litKinds: litKinds, commKinds: commKinds}
}

func (l *treeSitterLexer) Lex(source []byte) ([]Lexeme, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tree := l.parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter: parse returned nil")
	}
	defer tree.Close()

	var lexemes []Lexeme
	l.walkLeaves(tree.RootNode(), source, &lexemes)
	return lexemes, nil
}

func (l *treeSitterLexer) walkLeaves(n *tree_sitter.Node, source []byte, out *[]Lexeme) {
	if n == nil {
		return
	}
	count := n.ChildCount()
	if count == 0 {
		if n.StartByte() == n.EndByte() {
			return
		}
		start := n.StartPosition()
		*out = append(*out, Lexeme{
			Kind:   l.classify(n.Kind()),
			Text:   n.Utf8Text(source),
			Line:   int(start.Row) + 1,
			Column: int(start.Column),
		})
		return
	}
	for i := uint(0); i < count; i++ {
		l.walkLeaves(n.Child(i), source, out)
	}
}

func (l *treeSitterLexer) classify(kind string) LexemeKind {
	switch {
	case l.commKinds[kind]:
		return KindComment
	case l.identKinds[kind]:
		return KindIdentifier
	case l.litKinds[kind]:
		return KindLiteral
	default:
		return KindOther
	}
}

type treeSitterEntry struct {
	extensions []string
	lang       LanguageInfo
	lexer      Lexer
}

// treeSitterLexers builds the set of grammar-backed lexers this module
// ships bindings for. Identifier/literal/comment node-kind classification
// mirrors the per-grammar kind tables a tree-sitter-backed clone scanner
// needs to turn a grammar's terminal symbols into lexical token classes.
func treeSitterLexers() []treeSitterEntry {
	return []treeSitterEntry{
		{
			extensions: []string{".go"},
			lang:       LanguageInfo{Name: "go"},
			lexer: newTreeSitterLexer(
				tree_sitter.NewLanguage(tree_sitter_go.Language()),
				map[string]bool{"identifier": true, "field_identifier": true, "type_identifier": true, "package_identifier": true},
				map[string]bool{"interpreted_string_literal": true, "raw_string_literal": true, "int_literal": true, "float_literal": true, "imaginary_literal": true, "rune_literal": true},
				map[string]bool{"comment": true},
			),
		},
		{
			extensions: []string{".py", ".pyi"},
			lang:       LanguageInfo{Name: "python", Aliases: []string{"py"}},
			lexer: newTreeSitterLexer(
				tree_sitter.NewLanguage(tree_sitter_python.Language()),
				map[string]bool{"identifier": true},
				map[string]bool{"string_start": true, "string_content": true, "string_end": true, "integer": true, "float": true},
				map[string]bool{"comment": true},
			),
		},
		{
			extensions: []string{".ts"},
			lang:       LanguageInfo{Name: "typescript", Aliases: []string{"ts"}},
			lexer: newTreeSitterLexer(
				tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
				map[string]bool{"identifier": true, "property_identifier": true, "type_identifier": true, "shorthand_property_identifier": true},
				map[string]bool{"string_fragment": true, "number": true, "regex_pattern": true},
				map[string]bool{"comment": true},
			),
		},
		{
			extensions: []string{".tsx"},
			lang:       LanguageInfo{Name: "tsx"},
			lexer: newTreeSitterLexer(
				tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTSX()),
				map[string]bool{"identifier": true, "property_identifier": true, "type_identifier": true, "shorthand_property_identifier": true},
				map[string]bool{"string_fragment": true, "number": true, "regex_pattern": true},
				map[string]bool{"comment": true},
			),
		},
		{
			extensions: []string{".js", ".jsx", ".mjs", ".cjs"},
			lang:       LanguageInfo{Name: "javascript", Aliases: []string{"js"}},
			lexer: newTreeSitterLexer(
				tree_sitter.NewLanguage(tree_sitter_javascript.Language()),
				map[string]bool{"identifier": true, "property_identifier": true, "shorthand_property_identifier": true},
				map[string]bool{"string_fragment": true, "number": true, "regex_pattern": true},
				map[string]bool{"comment": true},
			),
		},
	}
}
