// Package aggregate merges raw clone matches per file pair into contiguous,
// deduplicated clone groups and assembles the final clone reports.
package aggregate

import (
	"sort"

	"github.com/ingo-eichhorst/cpitd/internal/index"
)

// LineRange is a 1-based inclusive line range.
type LineRange struct {
	Start int
	End   int
}

// Contains reports whether r fully contains o (closed-interval containment).
func (r LineRange) Contains(o LineRange) bool {
	return r.Start <= o.Start && o.End <= r.End
}

// CloneGroup is one contiguous cloned line range shared by two files.
type CloneGroup struct {
	LinesA     LineRange
	LinesB     LineRange
	LineCount  int
	TokenCount int
}

// CloneReport lists every surviving clone group between one pair of files.
type CloneReport struct {
	FileA            string
	FileB            string
	Groups           []CloneGroup
	TotalClonedLines int
}

// filePair canonicalizes a match's two sides so FileA <= FileB lexically.
type filePair struct {
	fileA, fileB string
}

// DefaultMinGroupTokens is the floor below which a coalesced or
// pass-through group is dropped before subsumption dedup.
const DefaultMinGroupTokens = 10

// Aggregate merges matches into CloneReports, one per file pair in which at
// least one group survives. minGroupTokens <= 0 uses DefaultMinGroupTokens.
func Aggregate(matches []index.CloneMatch, minGroupTokens int) []CloneReport {
	if minGroupTokens <= 0 {
		minGroupTokens = DefaultMinGroupTokens
	}

	level0 := make(map[filePair][]index.CloneMatch)
	higher := make(map[filePair][]index.CloneMatch)

	for _, m := range matches {
		left, right := m.Left, m.Right
		if left.FilePath > right.FilePath {
			left, right = right, left
		}
		pair := filePair{fileA: left.FilePath, fileB: right.FilePath}
		canon := index.CloneMatch{Left: left, Right: right, Level: m.Level, SharedHash: m.SharedHash}
		if m.Level == 0 {
			level0[pair] = append(level0[pair], canon)
		} else {
			higher[pair] = append(higher[pair], canon)
		}
	}

	pairs := make(map[filePair]bool)
	for p := range level0 {
		pairs[p] = true
	}
	for p := range higher {
		pairs[p] = true
	}

	var reports []CloneReport
	for pair := range pairs {
		groups := coalesceLevel0(level0[pair])
		groups = append(groups, passThrough(higher[pair])...)
		groups = filterMinTokens(groups, minGroupTokens)
		groups = dedupSubsumed(groups)
		if len(groups) == 0 {
			continue
		}

		sort.Slice(groups, func(i, j int) bool {
			return groupLess(groups[i], groups[j])
		})

		total := 0
		for _, g := range groups {
			total += g.LineCount
		}

		reports = append(reports, CloneReport{
			FileA:            pair.fileA,
			FileB:            pair.fileB,
			Groups:           groups,
			TotalClonedLines: total,
		})
	}

	sort.Slice(reports, func(i, j int) bool {
		if reports[i].FileA != reports[j].FileA {
			return reports[i].FileA < reports[j].FileA
		}
		return reports[i].FileB < reports[j].FileB
	})

	return reports
}

// groupLess orders groups by (file_a, lines_a) — file_a is constant within
// a report, so this reduces to ordering by LinesA, with LinesB as a
// deterministic tiebreak. A tie on LinesA alone is possible: one range in
// file A can recur against several disjoint ranges in file B (the same
// block duplicated more than once), and matches feeding this sort arrive
// via map iteration, whose order Go does not guarantee across runs. Without
// the LinesB tiebreak, sort.Slice (not a stable sort) would let that
// nondeterminism leak into report ordering.
func groupLess(a, b CloneGroup) bool {
	if a.LinesA.Start != b.LinesA.Start {
		return a.LinesA.Start < b.LinesA.Start
	}
	if a.LinesA.End != b.LinesA.End {
		return a.LinesA.End < b.LinesA.End
	}
	if a.LinesB.Start != b.LinesB.Start {
		return a.LinesB.Start < b.LinesB.Start
	}
	return a.LinesB.End < b.LinesB.End
}

// coalesceLevel0 sorts level-0 matches by (left.start, right.start) and
// merges runs where both sides advance by exactly one line at a time.
func coalesceLevel0(matches []index.CloneMatch) []CloneGroup {
	if len(matches) == 0 {
		return nil
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Left.Node.StartLine != matches[j].Left.Node.StartLine {
			return matches[i].Left.Node.StartLine < matches[j].Left.Node.StartLine
		}
		return matches[i].Right.Node.StartLine < matches[j].Right.Node.StartLine
	})

	var groups []CloneGroup
	first := matches[0]
	aStart, aEnd := first.Left.Node.StartLine, first.Left.Node.StartLine
	bStart, bEnd := first.Right.Node.StartLine, first.Right.Node.StartLine
	tokenSum := first.Left.Node.TokenCount

	closeGroup := func() {
		groups = append(groups, CloneGroup{
			LinesA:     LineRange{Start: aStart, End: aEnd},
			LinesB:     LineRange{Start: bStart, End: bEnd},
			LineCount:  aEnd - aStart + 1,
			TokenCount: tokenSum,
		})
	}

	for _, m := range matches[1:] {
		if m.Left.Node.StartLine == aEnd+1 && m.Right.Node.StartLine == bEnd+1 {
			aEnd = m.Left.Node.StartLine
			bEnd = m.Right.Node.StartLine
			tokenSum += m.Left.Node.TokenCount
			continue
		}
		closeGroup()
		aStart, aEnd = m.Left.Node.StartLine, m.Left.Node.StartLine
		bStart, bEnd = m.Right.Node.StartLine, m.Right.Node.StartLine
		tokenSum = m.Left.Node.TokenCount
	}
	closeGroup()

	return groups
}

// passThrough turns every level >= 1 match into a whole CloneGroup.
func passThrough(matches []index.CloneMatch) []CloneGroup {
	groups := make([]CloneGroup, 0, len(matches))
	for _, m := range matches {
		groups = append(groups, CloneGroup{
			LinesA:     LineRange{Start: m.Left.Node.StartLine, End: m.Left.Node.EndLine},
			LinesB:     LineRange{Start: m.Right.Node.StartLine, End: m.Right.Node.EndLine},
			LineCount:  m.Left.Node.EndLine - m.Left.Node.StartLine + 1,
			TokenCount: m.Left.Node.TokenCount,
		})
	}
	return groups
}

func filterMinTokens(groups []CloneGroup, minGroupTokens int) []CloneGroup {
	kept := groups[:0]
	for _, g := range groups {
		if g.TokenCount >= minGroupTokens {
			kept = append(kept, g)
		}
	}
	return kept
}

// dedupSubsumed drops any group contained (both sides, closed intervals) in
// an already kept group of the same file pair; a group with the same ranges
// as a kept one counts as contained. Groups are considered largest-first so
// a subsuming group is always inserted before the groups it subsumes.
func dedupSubsumed(groups []CloneGroup) []CloneGroup {
	if len(groups) == 0 {
		return nil
	}

	ordered := make([]CloneGroup, len(groups))
	copy(ordered, groups)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].LineCount > ordered[j].LineCount
	})

	var kept []CloneGroup
	for _, g := range ordered {
		subsumed := false
		for _, k := range kept {
			if k.LinesA.Contains(g.LinesA) && k.LinesB.Contains(g.LinesB) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			kept = append(kept, g)
		}
	}
	return kept
}
