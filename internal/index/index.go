// Package index accumulates hash-tree nodes from every scanned file into a
// hash-collision multimap and emits candidate clone matches from it.
package index

import (
	"github.com/ingo-eichhorst/cpitd/internal/hashtree"
)

// NodeLocation pairs a hash-tree node with the file it came from.
type NodeLocation struct {
	FilePath string
	Node     hashtree.Node
}

// overlaps reports whether l and r cover any line in common.
func (l NodeLocation) overlaps(r NodeLocation) bool {
	return l.Node.StartLine <= r.Node.EndLine && r.Node.StartLine <= l.Node.EndLine
}

// CloneMatch is a candidate clone: two locations sharing a hash-tree node
// hash at the same level.
type CloneMatch struct {
	Left       NodeLocation
	Right      NodeLocation
	Level      int
	SharedHash uint64
}

// bucketMin and bucketMax bound a hash bucket's size: below bucketMin there
// is nothing to pair, above bucketMax the hash is "noise" (e.g. a one-token
// line like "}" or "pass" recurring across hundreds of files) and would
// otherwise blow up pairwise output.
const (
	bucketMin = 2
	bucketMax = 100
)

// Index is the collision index: a mapping from hash value to every
// NodeLocation sharing it, in insertion order. It is owned by one scan.
type Index struct {
	buckets map[uint64][]NodeLocation
}

// New returns an empty Index.
func New() *Index {
	return &Index{buckets: make(map[uint64][]NodeLocation)}
}

// AddFile appends every node of every level of a file's hash tree to the
// index, in level-0-to-k, left-to-right order.
func (ix *Index) AddFile(filePath string, levels [][]hashtree.Node) {
	for _, level := range levels {
		for _, node := range level {
			loc := NodeLocation{FilePath: filePath, Node: node}
			ix.buckets[node.HashValue] = append(ix.buckets[node.HashValue], loc)
		}
	}
}

// FindMatches enumerates every candidate CloneMatch across all buckets.
// Buckets smaller than bucketMin or larger than bucketMax are skipped
// entirely. Within a surviving bucket, every unordered pair (left, right)
// with left preceding right in insertion order is considered; a pair is
// skipped if either node's token count is below minTokenCount, or if both
// locations are in the same file and their line ranges overlap.
func (ix *Index) FindMatches(minTokenCount int) []CloneMatch {
	var matches []CloneMatch

	for hash, locs := range ix.buckets {
		if len(locs) < bucketMin || len(locs) > bucketMax {
			continue
		}

		for i := 0; i < len(locs); i++ {
			left := locs[i]
			if left.Node.TokenCount < minTokenCount {
				continue
			}
			for j := i + 1; j < len(locs); j++ {
				right := locs[j]
				if right.Node.TokenCount < minTokenCount {
					continue
				}
				if left.FilePath == right.FilePath && left.overlaps(right) {
					continue
				}
				matches = append(matches, CloneMatch{
					Left:       left,
					Right:      right,
					Level:      left.Node.Level,
					SharedHash: hash,
				})
			}
		}
	}

	return matches
}
