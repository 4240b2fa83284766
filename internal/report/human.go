package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/ingo-eichhorst/cpitd/internal/aggregate"
)

// Clone-size tiers for color coding the human-readable report: small clones
// are routine, large ones deserve a second look.
const (
	sizeGreenMax  = 10 // line_count at or below: green
	sizeYellowMax = 30 // line_count at or below: yellow; above is red
)

// WriteHuman renders reports in the fixed human-readable text format.
func WriteHuman(w io.Writer, reports []aggregate.CloneReport) error {
	if len(reports) == 0 {
		_, err := fmt.Fprint(w, "No clones detected.\n")
		return err
	}

	if _, err := fmt.Fprintf(w, "Found potential clones in %d file pair(s):\n\n", len(reports)); err != nil {
		return err
	}

	for _, r := range reports {
		if _, err := fmt.Fprintf(w, "  %s  <->  %s\n", r.FileA, r.FileB); err != nil {
			return err
		}
		for _, g := range r.Groups {
			sizeColor := colorForSize(g.LineCount)
			line := fmt.Sprintf("    Lines %d-%d <-> Lines %d-%d (%d lines, %d tokens)\n",
				g.LinesA.Start, g.LinesA.End, g.LinesB.Start, g.LinesB.End, g.LineCount, g.TokenCount)
			if _, err := sizeColor.Fprint(w, line); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "    Total cloned lines: %d\n\n", r.TotalClonedLines); err != nil {
			return err
		}
	}

	return nil
}

func colorForSize(lineCount int) *color.Color {
	switch {
	case lineCount <= sizeGreenMax:
		return color.New(color.FgGreen)
	case lineCount <= sizeYellowMax:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
