// Package linehash groups tokens by source line and computes one
// order-dependent hash per non-empty line.
package linehash

import (
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/ingo-eichhorst/cpitd/internal/tokenizer"
)

// LineHash is an immutable per-line digest: an order-dependent hash over the
// ordered token values on that line, plus how many tokens contributed.
type LineHash struct {
	HashValue  uint64
	Line       int
	TokenCount int
}

// HashLines partitions tokens by Line and computes one LineHash per line
// that has at least one token, in ascending line order. The hash is
// order-dependent: token values are joined with a separator that cannot
// appear inside a normalized token value (tree-sitter/generic lexemes never
// contain NUL) before hashing, so "a b" and "ab" never collide.
func HashLines(tokens []tokenizer.Token) []LineHash {
	if len(tokens) == 0 {
		return nil
	}

	byLine := make(map[int][]string)
	lines := make([]int, 0)
	for _, t := range tokens {
		if _, ok := byLine[t.Line]; !ok {
			lines = append(lines, t.Line)
		}
		byLine[t.Line] = append(byLine[t.Line], t.Value)
	}

	sort.Ints(lines)

	out := make([]LineHash, 0, len(lines))
	for _, line := range lines {
		values := byLine[line]
		out = append(out, LineHash{
			HashValue:  hashValues(values),
			Line:       line,
			TokenCount: len(values),
		})
	}
	return out
}

func hashValues(values []string) uint64 {
	return xxhash.Sum64String(strings.Join(values, "\x00"))
}
