package layout

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Report contains metadata about a rendered document for quality analysis.
type Report struct {
	ID          string       `json:"id"`
	Title       string       `json:"title,omitempty"`
	PageCount   int          `json:"page_count"`
	EntryCount  int          `json:"entry_count"`
	SourcePages int          `json:"source_pages"`
	PaperSaving float64      `json:"paper_saving_percent"`
	Pages       []ReportPage `json:"pages"`
	Warnings    []string     `json:"warnings"`
}

// ReportPage describes a single output page in the report.
type ReportPage struct {
	PageNumber int          `json:"page_number"`
	Group      string       `json:"group"`
	GroupPage  int          `json:"group_page"`
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	Rotated    bool         `json:"rotated"`
	EmptyCells int          `json:"empty_cells"`
	Cells      []ReportCell `json:"cells,omitempty"`
}

// ReportCell describes a single placement in the report.
type ReportCell struct {
	CellIndex    int     `json:"cell_index"`
	Entry        string  `json:"entry"`
	Blank        bool    `json:"blank"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	W            float64 `json:"w"`
	H            float64 `json:"h"`
	Rotation     int     `json:"rotation"`
	EffectiveDPI float64 `json:"effective_dpi,omitempty"`
	LowRes       bool    `json:"low_res"`
}

// NewReport summarizes a plan.
func NewReport(plan *Plan, opts GlobalOptions) *Report {
	r := &Report{
		ID:          uuid.New().String(),
		Title:       opts.Title,
		PageCount:   plan.TotalPages(),
		EntryCount:  plan.EntryCount,
		SourcePages: plan.SourcePages,
		PaperSaving: PaperSaving(plan.SourcePages, plan.TotalPages()),
		Warnings:    []string{},
	}

	for _, page := range plan.Pages {
		rp := ReportPage{
			PageNumber: page.Number,
			Group:      page.Group,
			GroupPage:  page.GroupPage,
			Width:      page.Grid.Page.W,
			Height:     page.Grid.Page.H,
			Rotated:    page.Rotated,
			EmptyCells: page.EmptyCells(),
		}
		for _, pl := range page.Placements {
			cell := ReportCell{
				CellIndex: pl.CellIndex,
				Entry:     pl.Entry.String(),
				Blank:     pl.Entry.IsBlank(),
				X:         round2(pl.Box.X),
				Y:         round2(pl.Box.Y),
				W:         round2(pl.Box.W),
				H:         round2(pl.Box.H),
				Rotation:  pl.Rotation,
			}
			if !cell.Blank {
				cell.EffectiveDPI = math.Round(pl.EffectiveDPI)
				cell.LowRes = pl.EffectiveDPI < lowResDPIThreshold
				if cell.LowRes {
					r.Warnings = append(r.Warnings, fmt.Sprintf(
						"page %d cell %d: %s prints at %.0f dpi (below %.0f)",
						page.Number, pl.CellIndex, pl.Entry, pl.EffectiveDPI, lowResDPIThreshold))
				}
			}
			rp.Cells = append(rp.Cells, cell)
		}
		r.Pages = append(r.Pages, rp)
	}

	for _, w := range plan.Warnings {
		r.Warnings = append(r.Warnings, w.String())
	}
	return r
}

// PaperSaving returns the percentage of sheets saved compared with
// printing every source page on its own sheet.
func PaperSaving(sourcePages, outputPages int) float64 {
	if sourcePages <= 0 {
		return 0
	}
	return round2(float64(sourcePages-outputPages) / float64(sourcePages) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
