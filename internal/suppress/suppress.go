// Package suppress implements the two-pass, pattern-based clone suppression
// filter: a direct glob-pattern match against source lines, followed by
// sibling propagation to transitively suppressed clone pairs.
package suppress

import (
	"github.com/gobwas/glob"

	"github.com/ingo-eichhorst/cpitd/internal/aggregate"
)

// contextLines is the fixed number of lines of context included above each
// suppression-checked range; decorator-like lines (e.g. "@abstractmethod")
// typically sit immediately above the cloned body they annotate. Not a
// tunable.
const contextLines = 1

// ReadSource loads the full text of path, or reports it absent. An absent
// file contributes no lines to the pattern check, so that side never causes
// a match; the group is still suppressed in stage 1 if the other side's
// lines match.
type ReadSource func(path string) (string, bool)

// location is a suppressed (file, range) pair recorded during stage 1.
type location struct {
	file  string
	start int
	end   int
}

func (l location) overlaps(file string, start, end int) bool {
	return l.file == file && l.start <= end && start <= l.end
}

// Filter applies the two-pass suppression filter to reports and returns the
// surviving reports, recomputing total_cloned_lines. An empty pattern list
// is the identity transform.
func Filter(reports []aggregate.CloneReport, patterns []string, read ReadSource) []aggregate.CloneReport {
	if len(patterns) == 0 {
		return reports
	}

	globs := compilePatterns(patterns)
	cache := newSourceCache(read)

	var suppressed []location
	var stage1 []aggregate.CloneReport

	for _, r := range reports {
		var kept []aggregate.CloneGroup
		for _, g := range r.Groups {
			if matchesAnyPattern(r.FileA, g.LinesA, r.FileB, g.LinesB, globs, cache) {
				suppressed = append(suppressed,
					location{file: r.FileA, start: g.LinesA.Start, end: g.LinesA.End},
					location{file: r.FileB, start: g.LinesB.Start, end: g.LinesB.End},
				)
				continue
			}
			kept = append(kept, g)
		}
		if len(kept) > 0 {
			stage1 = append(stage1, rebuild(r.FileA, r.FileB, kept))
		}
	}

	var stage2 []aggregate.CloneReport
	for _, r := range stage1 {
		var kept []aggregate.CloneGroup
		for _, g := range r.Groups {
			aSuppressed := overlapsAny(suppressed, r.FileA, g.LinesA.Start, g.LinesA.End)
			bSuppressed := overlapsAny(suppressed, r.FileB, g.LinesB.Start, g.LinesB.End)
			if aSuppressed && bSuppressed {
				continue
			}
			kept = append(kept, g)
		}
		if len(kept) > 0 {
			stage2 = append(stage2, rebuild(r.FileA, r.FileB, kept))
		}
	}

	return stage2
}

func overlapsAny(locs []location, file string, start, end int) bool {
	for _, l := range locs {
		if l.overlaps(file, start, end) {
			return true
		}
	}
	return false
}

func rebuild(fileA, fileB string, groups []aggregate.CloneGroup) aggregate.CloneReport {
	total := 0
	for _, g := range groups {
		total += g.LineCount
	}
	return aggregate.CloneReport{FileA: fileA, FileB: fileB, Groups: groups, TotalClonedLines: total}
}

// compilePatterns compiles each suppression pattern with fnmatch semantics:
// "*" matches any run of characters, including "/". This deliberately
// differs from a path-glob compiler (github.com/bmatcuk/doublestar, used by
// internal/discovery for --ignore path matching): suppression patterns are
// matched against arbitrary source-line text, not file paths, so "/" is not
// a segment boundary here. A pattern that fails to compile is dropped
// silently rather than failing the whole filter.
func compilePatterns(patterns []string) []glob.Glob {
	var out []glob.Glob
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			continue
		}
		out = append(out, g)
	}
	return out
}

// matchesAnyPattern reports whether any line extracted from either side
// (each expanded one line above, clamped at line 1) matches any pattern.
func matchesAnyPattern(fileA string, rangeA aggregate.LineRange, fileB string, rangeB aggregate.LineRange, globs []glob.Glob, cache *sourceCache) bool {
	return sideMatches(fileA, rangeA, globs, cache) || sideMatches(fileB, rangeB, globs, cache)
}

func sideMatches(file string, r aggregate.LineRange, globs []glob.Glob, cache *sourceCache) bool {
	lines, ok := cache.lines(file)
	if !ok {
		return false
	}

	start := r.Start - contextLines
	if start < 1 {
		start = 1
	}

	for lineNo := start; lineNo <= r.End; lineNo++ {
		if lineNo-1 >= len(lines) {
			continue
		}
		text := lines[lineNo-1]
		for _, g := range globs {
			if g.Match(text) {
				return true
			}
		}
	}
	return false
}
