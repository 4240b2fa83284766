package tokenizer

import "strings"

// Tokenize converts source into an ordered Token sequence using the lexer
// the registry selects for filenameHint, applying the given normalization
// level. Whitespace and comments are dropped, surviving lexemes are renamed
// per level, and line/column bookkeeping advances across every lexeme,
// skipped or not.
func Tokenize(reg *Registry, source []byte, filenameHint string, level NormalizationLevel) ([]Token, error) {
	lexer, ok := reg.Select(filenameHint, source)
	if !ok {
		return nil, &ErrNoLexer{Filename: filenameHint}
	}

	lexemes, err := lexer.Lex(source)
	if err != nil {
		return nil, err
	}

	tokens := make([]Token, 0, len(lexemes))
	line, col := 1, 0

	for _, lx := range lexemes {
		tokLine, tokCol := lx.Line, lx.Column
		if tokLine == 0 {
			tokLine, tokCol = line, col
		}

		if lx.Kind != KindWhitespace && lx.Kind != KindComment {
			tokens = append(tokens, Token{
				Value:  normalize(lx, level),
				Line:   tokLine,
				Column: tokCol,
			})
		}

		if lx.Line == 0 {
			line, col = advance(line, col, lx.Text)
		}
	}

	return tokens, nil
}

// advance updates the (line, column) cursor past value, the same rule
// regardless of whether value was kept or discarded: count embedded
// newlines; if any, the column resets to the length of the text after the
// last one, otherwise the column grows by the text's length.
func advance(line, col int, value string) (int, int) {
	if n := strings.Count(value, "\n"); n > 0 {
		last := value[strings.LastIndexByte(value, '\n')+1:]
		return line + n, len(last)
	}
	return line, col + len(value)
}

func normalize(lx Lexeme, level NormalizationLevel) string {
	switch {
	case level >= Identifiers && lx.Kind == KindIdentifier:
		return idPlaceholder
	case level >= Literals && lx.Kind == KindLiteral:
		return litPlaceholder
	default:
		return lx.Text
	}
}
