package tokenizer

import "strings"

// syntax configures genericLexer for one family of C-like or script-like
// languages: which byte sequences start a line comment, which pairs delimit
// a block comment, which bytes open a quoted string literal, and the
// language's reserved words.
type syntax struct {
	lineComments  []string
	blockComments [][2]string
	quotes        []byte
	keywords      map[string]bool
}

// keywordSet builds a lookup set from a list of reserved words.
func keywordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// genericLexer is the textual fallback backend: a hand-rolled scanner with
// no grammar behind it, used for every extension this module recognizes but
// has no tree-sitter binding for. It never knows its own line/column (every
// Lexeme it yields has Line == 0), relying on Tokenize's newline-counting
// fallback, exactly as a position-agnostic lexer would.
type genericLexer struct {
	syntax syntax
}

func newGenericLexer(s syntax) *genericLexer {
	return &genericLexer{syntax: s}
}

func (g *genericLexer) Lex(source []byte) ([]Lexeme, error) {
	var out []Lexeme
	i, n := 0, len(source)

	for i < n {
		c := source[i]

		if isSpace(c) {
			j := i + 1
			for j < n && isSpace(source[j]) {
				j++
			}
			out = append(out, Lexeme{Kind: KindWhitespace, Text: string(source[i:j])})
			i = j
			continue
		}

		if open, ok := g.matchBlockComment(source[i:]); ok {
			end := strings.Index(string(source[i+len(open.open):]), open.close)
			var j int
			if end < 0 {
				j = n
			} else {
				j = i + len(open.open) + end + len(open.close)
			}
			out = append(out, Lexeme{Kind: KindComment, Text: string(source[i:j])})
			i = j
			continue
		}

		if prefix, ok := g.matchLineComment(source[i:]); ok {
			j := i + len(prefix)
			for j < n && source[j] != '\n' {
				j++
			}
			out = append(out, Lexeme{Kind: KindComment, Text: string(source[i:j])})
			i = j
			continue
		}

		if isQuote(c, g.syntax.quotes) {
			j := scanString(source, i)
			out = append(out, Lexeme{Kind: KindLiteral, Text: string(source[i:j])})
			i = j
			continue
		}

		if isDigit(c) {
			j := i + 1
			for j < n && (isAlnum(source[j]) || source[j] == '.') {
				j++
			}
			out = append(out, Lexeme{Kind: KindLiteral, Text: string(source[i:j])})
			i = j
			continue
		}

		if isIdentStart(c) {
			j := i + 1
			for j < n && isIdentPart(source[j]) {
				j++
			}
			text := string(source[i:j])
			kind := KindIdentifier
			if g.syntax.keywords[text] {
				kind = KindOther
			}
			out = append(out, Lexeme{Kind: kind, Text: text})
			i = j
			continue
		}

		out = append(out, Lexeme{Kind: KindOther, Text: string(source[i : i+1])})
		i++
	}

	return out, nil
}

type blockDelim struct{ open, close string }

func (g *genericLexer) matchBlockComment(rest []byte) (blockDelim, bool) {
	for _, pair := range g.syntax.blockComments {
		if strings.HasPrefix(string(rest), pair[0]) {
			return blockDelim{open: pair[0], close: pair[1]}, true
		}
	}
	return blockDelim{}, false
}

func (g *genericLexer) matchLineComment(rest []byte) (string, bool) {
	for _, p := range g.syntax.lineComments {
		if strings.HasPrefix(string(rest), p) {
			return p, true
		}
	}
	return "", false
}

// scanString consumes a quoted literal starting at i, honoring backslash
// escapes, and returns the index just past the closing quote (or end of
// source if unterminated).
func scanString(source []byte, i int) int {
	quote := source[i]
	j := i + 1
	for j < len(source) {
		if source[j] == '\\' && j+1 < len(source) {
			j += 2
			continue
		}
		if source[j] == quote {
			return j + 1
		}
		j++
	}
	return j
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
func isAlnum(c byte) bool { return isAlpha(c) || isDigit(c) }
func isIdentStart(c byte) bool {
	return isAlpha(c) || c == '_' || c >= 0x80
}
func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }
func isSymbol(c byte) bool {
	return !isSpace(c) && !isAlnum(c) && c != '_' && c < 0x80
}
func isQuote(c byte, quotes []byte) bool {
	for _, q := range quotes {
		if c == q {
			return true
		}
	}
	return false
}

type genericPreset struct {
	extensions []string
	lang       LanguageInfo
	syntax     syntax
}

// genericPresets lists the languages served by the textual fallback
// scanner: broad C-family and script-family coverage beyond the five
// tree-sitter grammars this module ships.
func genericPresets() []genericPreset {
	cFamily := syntax{
		lineComments:  []string{"//"},
		blockComments: [][2]string{{"/*", "*/"}},
		quotes:        []byte{'"', '\''},
	}
	hashFamily := syntax{
		lineComments: []string{"#"},
		quotes:       []byte{'"', '\''},
	}
	dashFamily := syntax{
		lineComments:  []string{"--"},
		blockComments: [][2]string{{"--[[", "]]"}},
		quotes:        []byte{'"', '\''},
	}

	withKeywords := func(s syntax, words ...string) syntax {
		s.keywords = keywordSet(words...)
		return s
	}

	return []genericPreset{
		{extensions: []string{".c", ".h"}, lang: LanguageInfo{Name: "c"}, syntax: withKeywords(cFamily,
			"auto", "break", "case", "char", "const", "continue", "default", "do", "double",
			"else", "enum", "extern", "float", "for", "goto", "if", "int", "long", "register",
			"return", "short", "signed", "sizeof", "static", "struct", "switch", "typedef",
			"union", "unsigned", "void", "volatile", "while")},
		{extensions: []string{".cc", ".cpp", ".cxx", ".hpp", ".hh"}, lang: LanguageInfo{Name: "c++", Aliases: []string{"cpp"}}, syntax: withKeywords(cFamily,
			"alignas", "alignof", "and", "asm", "auto", "bool", "break", "case", "catch",
			"char", "class", "const", "constexpr", "const_cast", "continue", "decltype",
			"default", "delete", "do", "double", "dynamic_cast", "else", "enum", "explicit",
			"export", "extern", "false", "float", "for", "friend", "goto", "if", "inline",
			"int", "long", "mutable", "namespace", "new", "noexcept", "nullptr", "operator",
			"or", "private", "protected", "public", "register", "reinterpret_cast", "return",
			"short", "signed", "sizeof", "static", "static_assert", "static_cast", "struct",
			"switch", "template", "this", "throw", "true", "try", "typedef", "typeid",
			"typename", "union", "unsigned", "using", "virtual", "void", "volatile", "wchar_t",
			"while")},
		{extensions: []string{".java"}, lang: LanguageInfo{Name: "java"}, syntax: withKeywords(cFamily,
			"abstract", "assert", "boolean", "break", "byte", "case", "catch", "char",
			"class", "const", "continue", "default", "do", "double", "else", "enum",
			"extends", "final", "finally", "float", "for", "goto", "if", "implements",
			"import", "instanceof", "int", "interface", "long", "native", "new", "package",
			"private", "protected", "public", "return", "short", "static", "strictfp",
			"super", "switch", "synchronized", "this", "throw", "throws", "transient",
			"try", "void", "volatile", "while", "true", "false", "null")},
		{extensions: []string{".cs"}, lang: LanguageInfo{Name: "csharp", Aliases: []string{"c#"}}, syntax: withKeywords(cFamily,
			"abstract", "as", "base", "bool", "break", "byte", "case", "catch", "char",
			"checked", "class", "const", "continue", "decimal", "default", "delegate",
			"do", "double", "else", "enum", "event", "explicit", "extern", "false",
			"finally", "fixed", "float", "for", "foreach", "goto", "if", "implicit",
			"in", "int", "interface", "internal", "is", "lock", "long", "namespace",
			"new", "null", "object", "operator", "out", "override", "params", "private",
			"protected", "public", "readonly", "ref", "return", "sbyte", "sealed",
			"short", "sizeof", "stackalloc", "static", "string", "struct", "switch",
			"this", "throw", "true", "try", "typeof", "uint", "ulong", "unchecked",
			"unsafe", "ushort", "using", "virtual", "void", "volatile", "while")},
		{extensions: []string{".rs"}, lang: LanguageInfo{Name: "rust"}, syntax: withKeywords(cFamily,
			"as", "break", "const", "continue", "crate", "dyn", "else", "enum", "extern",
			"false", "fn", "for", "if", "impl", "in", "let", "loop", "match", "mod",
			"move", "mut", "pub", "ref", "return", "self", "Self", "static", "struct",
			"super", "trait", "true", "type", "unsafe", "use", "where", "while", "async",
			"await")},
		{extensions: []string{".kt", ".kts"}, lang: LanguageInfo{Name: "kotlin"}, syntax: withKeywords(cFamily,
			"as", "break", "class", "continue", "do", "else", "false", "for", "fun",
			"if", "in", "interface", "is", "null", "object", "package", "return",
			"super", "this", "throw", "true", "try", "typealias", "val", "var",
			"when", "while")},
		{extensions: []string{".swift"}, lang: LanguageInfo{Name: "swift"}, syntax: withKeywords(cFamily,
			"as", "break", "case", "catch", "class", "continue", "default", "defer",
			"do", "else", "enum", "extension", "fallthrough", "false", "for", "func",
			"guard", "if", "import", "in", "init", "is", "let", "nil", "protocol",
			"repeat", "return", "self", "Self", "static", "struct", "switch", "throw",
			"throws", "true", "try", "var", "where", "while")},
		{extensions: []string{".scala"}, lang: LanguageInfo{Name: "scala"}, syntax: withKeywords(cFamily,
			"abstract", "case", "catch", "class", "def", "do", "else", "extends",
			"false", "final", "finally", "for", "forSome", "if", "implicit", "import",
			"lazy", "match", "new", "null", "object", "override", "package", "private",
			"protected", "return", "sealed", "super", "this", "throw", "trait", "true",
			"try", "type", "val", "var", "while", "with", "yield")},
		{extensions: []string{".php"}, lang: LanguageInfo{Name: "php"}, syntax: withKeywords(cFamily,
			"abstract", "and", "array", "as", "break", "case", "catch", "class",
			"clone", "const", "continue", "declare", "default", "do", "echo", "else",
			"elseif", "empty", "endif", "endforeach", "endwhile", "extends", "final",
			"finally", "for", "foreach", "function", "global", "if", "implements",
			"include", "instanceof", "interface", "isset", "list", "namespace", "new",
			"or", "print", "private", "protected", "public", "require", "return",
			"static", "switch", "throw", "trait", "try", "unset", "use", "var",
			"while", "xor", "true", "false", "null")},
		{extensions: []string{".m", ".mm"}, lang: LanguageInfo{Name: "objective-c"}, syntax: withKeywords(cFamily,
			"auto", "break", "case", "char", "const", "continue", "default", "do",
			"double", "else", "enum", "extern", "float", "for", "goto", "if", "int",
			"long", "register", "return", "short", "signed", "sizeof", "static",
			"struct", "switch", "typedef", "union", "unsigned", "void", "volatile",
			"while", "id", "self", "super", "nil", "YES", "NO", "interface",
			"implementation", "protocol", "property", "synthesize")},
		{extensions: []string{".rb"}, lang: LanguageInfo{Name: "ruby"}, syntax: withKeywords(hashFamily,
			"alias", "and", "begin", "break", "case", "class", "def", "defined?",
			"do", "else", "elsif", "end", "ensure", "false", "for", "if", "in",
			"module", "next", "nil", "not", "or", "redo", "rescue", "retry",
			"return", "self", "super", "then", "true", "undef", "unless", "until",
			"when", "while", "yield")},
		{extensions: []string{".sh", ".bash", ".zsh"}, lang: LanguageInfo{Name: "shell", Aliases: []string{"sh", "bash"}}, syntax: withKeywords(hashFamily,
			"case", "do", "done", "elif", "else", "esac", "fi", "for", "function",
			"if", "in", "select", "then", "until", "while", "local", "readonly",
			"export", "return")},
		{extensions: []string{".pl", ".pm"}, lang: LanguageInfo{Name: "perl"}, syntax: withKeywords(hashFamily,
			"and", "cmp", "continue", "do", "else", "elsif", "eq", "for", "foreach",
			"ge", "gt", "if", "last", "le", "local", "lt", "my", "ne", "next",
			"not", "or", "our", "package", "return", "sub", "unless", "until",
			"use", "while", "xor")},
		{extensions: []string{".yaml", ".yml"}, lang: LanguageInfo{Name: "yaml"}, syntax: withKeywords(hashFamily,
			"true", "false", "null", "yes", "no", "on", "off")},
		{extensions: []string{".lua"}, lang: LanguageInfo{Name: "lua"}, syntax: withKeywords(dashFamily,
			"and", "break", "do", "else", "elseif", "end", "false", "for", "function",
			"goto", "if", "in", "local", "nil", "not", "or", "repeat", "return",
			"then", "true", "until", "while")},
		{extensions: []string{".sql"}, lang: LanguageInfo{Name: "sql"}, syntax: withKeywords(dashFamily,
			"select", "from", "where", "insert", "into", "values", "update", "set",
			"delete", "create", "table", "drop", "alter", "join", "inner", "left",
			"right", "outer", "on", "as", "and", "or", "not", "null", "is", "in",
			"group", "by", "order", "having", "union", "distinct", "limit", "offset",
			"primary", "key", "foreign", "references", "default", "index", "view",
			"case", "when", "then", "else", "end")},
	}
}
