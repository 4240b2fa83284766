package linehash

import (
	"testing"

	"github.com/ingo-eichhorst/cpitd/internal/tokenizer"
)

func tok(value string, line, col int) tokenizer.Token {
	return tokenizer.Token{Value: value, Line: line, Column: col}
}

func TestHashLines_EmptyInput(t *testing.T) {
	if got := HashLines(nil); got != nil {
		t.Fatalf("HashLines(nil) = %v, want nil", got)
	}
}

func TestHashLines_GroupsByLineAndOrdersAscending(t *testing.T) {
	tokens := []tokenizer.Token{
		tok("b", 2, 0),
		tok("a", 1, 0),
		tok("c", 1, 2),
	}

	got := HashLines(tokens)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Line != 1 || got[0].TokenCount != 2 {
		t.Fatalf("got[0] = %+v", got[0])
	}
	if got[1].Line != 2 || got[1].TokenCount != 1 {
		t.Fatalf("got[1] = %+v", got[1])
	}
}

func TestHashLines_OrderDependent(t *testing.T) {
	ab := HashLines([]tokenizer.Token{tok("a", 1, 0), tok("b", 1, 1)})
	ba := HashLines([]tokenizer.Token{tok("b", 1, 0), tok("a", 1, 1)})

	if ab[0].HashValue == ba[0].HashValue {
		t.Fatalf("expected different hashes for different token order")
	}
}

func TestHashLines_JoinCannotCauseFalseCollision(t *testing.T) {
	// "ab" split as one token vs "a","b" split as two tokens must not collide,
	// even though naive concatenation of the values would.
	one := HashLines([]tokenizer.Token{tok("ab", 1, 0)})
	two := HashLines([]tokenizer.Token{tok("a", 1, 0), tok("b", 1, 1)})

	if one[0].HashValue == two[0].HashValue {
		t.Fatalf("expected no collision between \"ab\" and \"a\",\"b\"")
	}
}

func TestHashLines_IdenticalTokenSequencesAgree(t *testing.T) {
	a := HashLines([]tokenizer.Token{tok("x", 5, 0), tok("y", 5, 1)})
	b := HashLines([]tokenizer.Token{tok("x", 9, 0), tok("y", 9, 1)})

	if a[0].HashValue != b[0].HashValue {
		t.Fatalf("expected equal hashes for identical token value sequences")
	}
	if a[0].TokenCount != b[0].TokenCount {
		t.Fatalf("expected equal token counts")
	}
}
