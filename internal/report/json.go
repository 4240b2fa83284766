package report

import (
	"encoding/json"
	"io"

	"github.com/ingo-eichhorst/cpitd/internal/aggregate"
)

// jsonReport is the top-level JSON output shape.
type jsonReport struct {
	CloneReports []jsonCloneReport `json:"clone_reports"`
	TotalPairs   int               `json:"total_pairs"`
}

type jsonCloneReport struct {
	FileA            string           `json:"file_a"`
	FileB            string           `json:"file_b"`
	TotalClonedLines int              `json:"total_cloned_lines"`
	Groups           []jsonCloneGroup `json:"groups"`
}

type jsonCloneGroup struct {
	LinesA     [2]int `json:"lines_a"`
	LinesB     [2]int `json:"lines_b"`
	LineCount  int    `json:"line_count"`
	TokenCount int    `json:"token_count"`
}

// WriteJSON renders reports to w using the fixed JSON schema.
func WriteJSON(w io.Writer, reports []aggregate.CloneReport) error {
	out := jsonReport{
		CloneReports: make([]jsonCloneReport, 0, len(reports)),
		TotalPairs:   len(reports),
	}

	for _, r := range reports {
		jr := jsonCloneReport{
			FileA:            r.FileA,
			FileB:            r.FileB,
			TotalClonedLines: r.TotalClonedLines,
			Groups:           make([]jsonCloneGroup, 0, len(r.Groups)),
		}
		for _, g := range r.Groups {
			jr.Groups = append(jr.Groups, jsonCloneGroup{
				LinesA:     [2]int{g.LinesA.Start, g.LinesA.End},
				LinesB:     [2]int{g.LinesB.Start, g.LinesB.End},
				LineCount:  g.LineCount,
				TokenCount: g.TokenCount,
			})
		}
		out.CloneReports = append(out.CloneReports, jr)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
