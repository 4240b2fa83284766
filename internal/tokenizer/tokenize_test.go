package tokenizer

import "testing"

// fakeLexer lets tests drive Tokenize's normalization/position logic without
// depending on a real tree-sitter grammar.
type fakeLexer struct {
	lexemes []Lexeme
}

func (f *fakeLexer) Lex(source []byte) ([]Lexeme, error) {
	return f.lexemes, nil
}

func registryWithFake(lx *fakeLexer) *Registry {
	r := &Registry{byExt: make(map[string]registryEntry)}
	r.byExt[".fake"] = registryEntry{lexer: lx, lang: LanguageInfo{Name: "fake"}}
	return r
}

func TestTokenize_DropsWhitespaceAndComments(t *testing.T) {
	lx := &fakeLexer{lexemes: []Lexeme{
		{Kind: KindIdentifier, Text: "foo", Line: 1, Column: 0},
		{Kind: KindWhitespace, Text: " ", Line: 1, Column: 3},
		{Kind: KindComment, Text: "# hi", Line: 1, Column: 4},
		{Kind: KindOther, Text: "+", Line: 2, Column: 0},
	}}
	toks, err := Tokenize(registryWithFake(lx), []byte("ignored"), "x.fake", Exact)
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2: %+v", len(toks), toks)
	}
	if toks[0].Value != "foo" || toks[1].Value != "+" {
		t.Fatalf("got %+v", toks)
	}
}

func TestTokenize_NormalizationLevels(t *testing.T) {
	lx := &fakeLexer{lexemes: []Lexeme{
		{Kind: KindIdentifier, Text: "counter", Line: 1, Column: 0},
		{Kind: KindLiteral, Text: "42", Line: 1, Column: 8},
		{Kind: KindOther, Text: "+", Line: 1, Column: 10},
	}}

	exact, _ := Tokenize(registryWithFake(lx), nil, "x.fake", Exact)
	if exact[0].Value != "counter" || exact[1].Value != "42" {
		t.Fatalf("Exact: got %+v", exact)
	}

	ids, _ := Tokenize(registryWithFake(lx), nil, "x.fake", Identifiers)
	if ids[0].Value != "ID" || ids[1].Value != "42" {
		t.Fatalf("Identifiers: got %+v", ids)
	}

	lits, _ := Tokenize(registryWithFake(lx), nil, "x.fake", Literals)
	if lits[0].Value != "ID" || lits[1].Value != "LIT" {
		t.Fatalf("Literals: got %+v", lits)
	}
}

func TestTokenize_FallbackPositionCounting(t *testing.T) {
	// Line == 0 triggers the newline-counting cursor.
	lx := &fakeLexer{lexemes: []Lexeme{
		{Kind: KindIdentifier, Text: "a"},
		{Kind: KindWhitespace, Text: "\n"},
		{Kind: KindIdentifier, Text: "bb"},
		{Kind: KindWhitespace, Text: " "},
		{Kind: KindIdentifier, Text: "c"},
	}}
	toks, err := Tokenize(registryWithFake(lx), nil, "x.fake", Exact)
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3: %+v", len(toks), toks)
	}
	if toks[0].Line != 1 || toks[0].Column != 0 {
		t.Fatalf("a: got line=%d col=%d", toks[0].Line, toks[0].Column)
	}
	if toks[1].Line != 2 || toks[1].Column != 0 {
		t.Fatalf("bb: got line=%d col=%d", toks[1].Line, toks[1].Column)
	}
	if toks[2].Line != 2 || toks[2].Column != 3 {
		t.Fatalf("c: got line=%d col=%d", toks[2].Line, toks[2].Column)
	}
}

func TestTokenize_ExplicitPositionsUsedWhenNonZero(t *testing.T) {
	lx := &fakeLexer{lexemes: []Lexeme{
		{Kind: KindIdentifier, Text: "a", Line: 5, Column: 10},
	}}
	toks, err := Tokenize(registryWithFake(lx), nil, "x.fake", Exact)
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].Line != 5 || toks[0].Column != 10 {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestTokenize_NoLexerForExtension(t *testing.T) {
	r := &Registry{byExt: make(map[string]registryEntry)}
	_, err := Tokenize(r, []byte("x"), "x.unknown", Exact)
	if err == nil {
		t.Fatal("expected ErrNoLexer")
	}
	var noLexer *ErrNoLexer
	if !asErrNoLexer(err, &noLexer) {
		t.Fatalf("expected *ErrNoLexer, got %T: %v", err, err)
	}
}

func asErrNoLexer(err error, target **ErrNoLexer) bool {
	e, ok := err.(*ErrNoLexer)
	if !ok {
		return false
	}
	*target = e
	return true
}
