// Package hashtree builds a fixed-alignment, level-wise binary hash tree
// over a file's per-line hashes.
package hashtree

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/ingo-eichhorst/cpitd/internal/linehash"
)

// maxLevel caps tree height: level 8 covers at most 2^8 = 256 lines.
const maxLevel = 8

// Node is an immutable node of the hash tree: a level-0 node wraps exactly
// one LineHash; a level-k node (k>=1) wraps exactly two adjacent level-(k-1)
// nodes at fixed alignment.
type Node struct {
	HashValue  uint64
	StartLine  int
	EndLine    int
	Level      int
	TokenCount int
}

// Build constructs the tree's levels from lineHashes, which must already be
// sorted ascending by line (as linehash.HashLines returns them). Levels[0]
// holds one node per input line hash; each subsequent level pairs adjacent
// nodes of the previous level at fixed alignment (0-1, 2-3, ...). A trailing
// unpaired node does not promote. Building stops when the current level has
// fewer than 2 nodes (so a level of exactly one node is still emitted and is
// the last one), or after producing level maxLevel. Empty input yields no
// levels.
func Build(lineHashes []linehash.LineHash) [][]Node {
	if len(lineHashes) == 0 {
		return nil
	}

	level0 := make([]Node, len(lineHashes))
	for i, lh := range lineHashes {
		level0[i] = Node{
			HashValue:  lh.HashValue,
			StartLine:  lh.Line,
			EndLine:    lh.Line,
			Level:      0,
			TokenCount: lh.TokenCount,
		}
	}

	levels := [][]Node{level0}
	cur := level0

	for lvl := 1; lvl <= maxLevel; lvl++ {
		if len(cur) < 2 {
			break
		}
		next := make([]Node, 0, len(cur)/2)
		for i := 0; i+1 < len(cur); i += 2 {
			l, r := cur[i], cur[i+1]
			next = append(next, Node{
				HashValue:  combine(l.HashValue, r.HashValue),
				StartLine:  l.StartLine,
				EndLine:    r.EndLine,
				Level:      lvl,
				TokenCount: l.TokenCount + r.TokenCount,
			})
		}
		levels = append(levels, next)
		cur = next
	}

	return levels
}

// combine is the order-dependent 2-input hash used to derive a parent
// node's hash from its two children: left and right are distinguishable, so
// combine(a, b) != combine(b, a) for a != b.
func combine(left, right uint64) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], left)
	binary.LittleEndian.PutUint64(buf[8:16], right)
	return xxhash.Sum64(buf[:])
}
