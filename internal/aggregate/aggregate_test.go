package aggregate

import (
	"testing"

	"github.com/ingo-eichhorst/cpitd/internal/hashtree"
	"github.com/ingo-eichhorst/cpitd/internal/index"
)

func loc(file string, start, end, level, tokens int) index.NodeLocation {
	return index.NodeLocation{
		FilePath: file,
		Node:     hashtree.Node{StartLine: start, EndLine: end, Level: level, TokenCount: tokens},
	}
}

func match(left, right index.NodeLocation, level int) index.CloneMatch {
	return index.CloneMatch{Left: left, Right: right, Level: level, SharedHash: 1}
}

// Scenario 1: winnowing-equivalent identity — 8 consecutive level-0 matches
// between two files coalesce into one group spanning the whole range.
func TestAggregate_WinnowingEquivalentIdentity(t *testing.T) {
	var matches []index.CloneMatch
	for line := 1; line <= 8; line++ {
		matches = append(matches, match(loc("a.go", line, line, 0, 2), loc("b.go", line, line, 0, 2)))
	}

	reports := Aggregate(matches, 10)
	if len(reports) != 1 {
		t.Fatalf("reports = %d, want 1", len(reports))
	}
	r := reports[0]
	if len(r.Groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(r.Groups))
	}
	g := r.Groups[0]
	if g.LinesA != (LineRange{1, 8}) || g.LinesB != (LineRange{1, 8}) {
		t.Fatalf("lines = %+v / %+v", g.LinesA, g.LinesB)
	}
	if g.LineCount != 8 {
		t.Fatalf("line count = %d, want 8", g.LineCount)
	}
}

// Scenario 2: consecutive merge — one 3-line run plus one unrelated single
// line produce two groups; the single line is pruned by min_group_tokens.
func TestAggregate_ConsecutiveMergeWithPruning(t *testing.T) {
	var matches []index.CloneMatch
	for i := 0; i < 3; i++ {
		matches = append(matches, match(loc("a.go", 1+i, 1+i, 0, 5), loc("b.go", 10+i, 10+i, 0, 5)))
	}
	matches = append(matches, match(loc("a.go", 5, 5, 0, 3), loc("b.go", 20, 20, 0, 3)))

	reports := Aggregate(matches, 10)
	if len(reports) != 1 {
		t.Fatalf("reports = %d, want 1", len(reports))
	}
	if len(reports[0].Groups) != 1 {
		t.Fatalf("groups = %d, want 1 (lone line pruned below min_group_tokens)", len(reports[0].Groups))
	}
	g := reports[0].Groups[0]
	if g.LinesA != (LineRange{1, 3}) || g.LinesB != (LineRange{10, 12}) {
		t.Fatalf("unexpected surviving group %+v", g)
	}
}

// Scenario 3: subsumption — four level-0 matches coalescing to (1,4)/(1,4)
// plus one level-2 match over the same range collapse to a single group.
func TestAggregate_Subsumption(t *testing.T) {
	var matches []index.CloneMatch
	for i := 0; i < 4; i++ {
		matches = append(matches, match(loc("a.go", 1+i, 1+i, 0, 4), loc("b.go", 1+i, 1+i, 0, 4)))
	}
	matches = append(matches, match(loc("a.go", 1, 4, 2, 16), loc("b.go", 1, 4, 2, 16)))

	reports := Aggregate(matches, 10)
	if len(reports) != 1 {
		t.Fatalf("reports = %d, want 1", len(reports))
	}
	if len(reports[0].Groups) != 1 {
		t.Fatalf("groups = %d, want 1 (level-2 subsumes coalesced level-0 group)", len(reports[0].Groups))
	}
	if reports[0].Groups[0].LineCount != 4 {
		t.Fatalf("line count = %d, want 4", reports[0].Groups[0].LineCount)
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	if got := Aggregate(nil, 10); got != nil {
		t.Fatalf("Aggregate(nil) = %v, want nil", got)
	}
}

func TestAggregate_CanonicalizesFileOrder(t *testing.T) {
	matches := []index.CloneMatch{
		match(loc("z.go", 1, 1, 0, 20), loc("a.go", 1, 1, 0, 20)),
	}
	reports := Aggregate(matches, 10)
	if len(reports) != 1 {
		t.Fatalf("reports = %d, want 1", len(reports))
	}
	if reports[0].FileA != "a.go" || reports[0].FileB != "z.go" {
		t.Fatalf("file pair = %s/%s, want a.go/z.go", reports[0].FileA, reports[0].FileB)
	}
}

// TestAggregate_GroupOrderDeterministicOnTiedLinesA covers the case where a
// single range in file A recurs against two disjoint ranges in file B (a
// block duplicated twice in B); both groups tie on LinesA, so ordering must
// fall back to LinesB regardless of which order the matches arrive in.
func TestAggregate_GroupOrderDeterministicOnTiedLinesA(t *testing.T) {
	forward := []index.CloneMatch{
		match(loc("a.go", 1, 5, 1, 20), loc("b.go", 1, 5, 1, 20)),
		match(loc("a.go", 1, 5, 1, 20), loc("b.go", 20, 24, 1, 20)),
	}
	reversed := []index.CloneMatch{forward[1], forward[0]}

	for _, matches := range [][]index.CloneMatch{forward, reversed} {
		reports := Aggregate(matches, 10)
		if len(reports) != 1 || len(reports[0].Groups) != 2 {
			t.Fatalf("unexpected reports: %+v", reports)
		}
		if reports[0].Groups[0].LinesB.Start != 1 || reports[0].Groups[1].LinesB.Start != 20 {
			t.Fatalf("group order not deterministic by LinesB: %+v", reports[0].Groups)
		}
	}
}

func TestAggregate_ReportsSortedByFilePair(t *testing.T) {
	matches := []index.CloneMatch{
		match(loc("b.go", 1, 1, 0, 20), loc("c.go", 1, 1, 0, 20)),
		match(loc("a.go", 1, 1, 0, 20), loc("b.go", 2, 2, 0, 20)),
	}
	reports := Aggregate(matches, 10)
	if len(reports) != 2 {
		t.Fatalf("reports = %d, want 2", len(reports))
	}
	if reports[0].FileA != "a.go" || reports[1].FileA != "b.go" {
		t.Fatalf("unexpected report order: %s then %s", reports[0].FileA, reports[1].FileA)
	}
}
