package layout

import "fmt"

const (
	labelInset    = 5.0
	ruleSpacingCm = 0.8
	ruleInset     = 6.0
	ruleLineWidth = 0.3
)

var (
	borderColor = Gray(0.8)
	labelColor  = Gray(0.3)
	ruleColor   = Gray(0.78)
	white       = Color{255, 255, 255}
)

// ComposePage draws the placements of one page in cell order.
func ComposePage(c Canvas, page PlannedPage) {
	cfg := page.Config
	for _, pl := range page.Placements {
		if pl.Entry.IsBlank() {
			composeBlank(c, pl, cfg)
			continue
		}

		if cfg.Border {
			c.StrokeRect(pl.Cell, cfg.BorderWidth, borderColor)
		}

		draw := ImageDraw{
			Key:      imageKey(pl.Entry),
			Image:    pl.Image,
			Quality:  cfg.Quality,
			Box:      pl.Box,
			Rotation: pl.Rotation,
		}
		if cfg.Fit == FitCover {
			clip := pl.Cell
			draw.Clip = &clip
		}
		c.DrawImage(draw)

		if pl.Label != "" {
			drawLabel(c, pl.Cell, pl.Label, cfg)
		}
	}
}

// composeBlank draws a spacer cell, ruled when requested.
func composeBlank(c Canvas, pl Placement, cfg GroupConfig) {
	c.FillRect(pl.Cell, white)
	if cfg.Border {
		c.StrokeRect(pl.Cell, cfg.BorderWidth, borderColor)
	}
	if !pl.Entry.Lined() {
		return
	}
	step := CmToUnits(ruleSpacingCm)
	x1, x2 := pl.Cell.X+ruleInset, pl.Cell.Right()-ruleInset
	if x2 <= x1 {
		return
	}
	for y := pl.Cell.Top() - step; y > pl.Cell.Y+step/2; y -= step {
		c.Line(x1, y, x2, y, ruleLineWidth, ruleColor)
	}
}

// drawLabel places a slide label inside cell at the configured anchor.
func drawLabel(c Canvas, cell Rect, label string, cfg GroupConfig) {
	size := cfg.withTextDefaults().NumberSize
	style := TextStyle{Size: size, Color: labelColor}
	w := c.TextWidth(label, style)
	x, y := labelPosition(cell, cfg.NumberAnchor, w, size)
	c.Text(x, y, label, style)
}

// labelPosition returns the baseline origin of a label of width w.
func labelPosition(cell Rect, anchor Anchor, w, size float64) (float64, float64) {
	switch anchor {
	case AnchorBottomRight:
		return cell.Right() - labelInset - w, cell.Y + labelInset
	case AnchorTopLeft:
		return cell.X + labelInset, cell.Top() - labelInset - size
	case AnchorTopRight:
		return cell.Right() - labelInset - w, cell.Top() - labelInset - size
	case AnchorCenter:
		return cell.X + (cell.W-w)/2, cell.Y + cell.H/2 - size/3
	default:
		return cell.X + labelInset, cell.Y + labelInset
	}
}

// imageKey identifies a source page; equal pages share one embedded image.
func imageKey(e PageEntry) string {
	return fmt.Sprintf("%s#%d", e.DocumentID(), e.PageIndex())
}
