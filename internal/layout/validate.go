package layout

import "fmt"

// ValidationWarning describes a layout issue found on a planned page.
type ValidationWarning struct {
	PageNumber int
	CellIndex  int
	Message    string
	Severity   string // "error" or "warning"
}

func (w ValidationWarning) String() string {
	if w.CellIndex < 0 {
		return fmt.Sprintf("page %d: %s", w.PageNumber, w.Message)
	}
	return fmt.Sprintf("page %d cell %d: %s", w.PageNumber, w.CellIndex, w.Message)
}

// ValidateGrid checks that every cell lies inside the usable area and that
// no two cells overlap.
func ValidateGrid(g *Grid, pageNumber int) []ValidationWarning {
	var warnings []ValidationWarning
	const eps = 0.01
	u := g.Usable

	for i, c := range g.Cells {
		if c.W <= 0 || c.H <= 0 {
			warnings = append(warnings, ValidationWarning{
				PageNumber: pageNumber,
				CellIndex:  i,
				Message:    fmt.Sprintf("cell has non-positive size %.2fx%.2f", c.W, c.H),
				Severity:   "error",
			})
		}
		if c.X < u.X-eps || c.Right() > u.Right()+eps {
			warnings = append(warnings, ValidationWarning{
				PageNumber: pageNumber,
				CellIndex:  i,
				Message:    fmt.Sprintf("cell spans X %.2f..%.2f outside usable area %.2f..%.2f", c.X, c.Right(), u.X, u.Right()),
				Severity:   "error",
			})
		}
		if c.Y < u.Y-eps || c.Top() > u.Top()+eps {
			warnings = append(warnings, ValidationWarning{
				PageNumber: pageNumber,
				CellIndex:  i,
				Message:    fmt.Sprintf("cell spans Y %.2f..%.2f outside usable area %.2f..%.2f", c.Y, c.Top(), u.Y, u.Top()),
				Severity:   "error",
			})
		}
	}

	for i := 0; i < len(g.Cells); i++ {
		for j := i + 1; j < len(g.Cells); j++ {
			if rectsOverlap(g.Cells[i], g.Cells[j], eps) {
				warnings = append(warnings, ValidationWarning{
					PageNumber: pageNumber,
					CellIndex:  i,
					Message:    fmt.Sprintf("cell %d overlaps with cell %d", i, j),
					Severity:   "error",
				})
			}
		}
	}
	return warnings
}

// rectsOverlap checks if two rectangles overlap with tolerance.
func rectsOverlap(a, b Rect, eps float64) bool {
	if a.Right() <= b.X+eps || b.Right() <= a.X+eps {
		return false
	}
	if a.Top() <= b.Y+eps || b.Top() <= a.Y+eps {
		return false
	}
	return true
}

// validateConfig rejects enum values the engine does not know.
// Empty values fall back to their defaults.
func validateConfig(cfg GroupConfig) error {
	switch cfg.Rotation {
	case 0, 90, 180, 270:
	default:
		return invalidf("rotation must be 0, 90, 180 or 270, got %d", cfg.Rotation)
	}
	switch cfg.Fit {
	case "", FitContain, FitCover:
	default:
		return invalidf("unknown fit policy %q", cfg.Fit)
	}
	switch cfg.ImageOrientation {
	case "", OrientationKeep, OrientationForceLandscape, OrientationForcePortrait:
	default:
		return invalidf("unknown image orientation %q", cfg.ImageOrientation)
	}
	switch cfg.NumberAnchor {
	case "", AnchorBottomLeft, AnchorBottomRight, AnchorTopLeft, AnchorTopRight, AnchorCenter:
	default:
		return invalidf("unknown label anchor %q", cfg.NumberAnchor)
	}
	switch cfg.Quality {
	case "", QualityLow, QualityMedium, QualityHigh:
	default:
		return invalidf("unknown image quality %q", cfg.Quality)
	}
	switch cfg.Orientation {
	case "", Portrait, Landscape:
	default:
		return invalidf("unknown page orientation %q", cfg.Orientation)
	}
	if cfg.WatermarkOpacity < 0 || cfg.WatermarkOpacity > 1 {
		return invalidf("watermark opacity must be between 0 and 1, got %.2f", cfg.WatermarkOpacity)
	}
	if cfg.BorderWidth < 0 || cfg.NumberSize < 0 || cfg.WatermarkSize < 0 || cfg.HeaderFooterSize < 0 {
		return invalidf("sizes must not be negative")
	}
	return nil
}
