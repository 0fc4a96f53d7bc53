package layout

// Rect is an axis-aligned rectangle in output units. The origin is the
// bottom-left corner of the page, Y grows upward.
type Rect struct {
	X, Y, W, H float64
}

// Right edge X.
func (r Rect) Right() float64 { return r.X + r.W }

// Top edge Y.
func (r Rect) Top() float64 { return r.Y + r.H }

// Grid is the cell geometry of one output page.
type Grid struct {
	Page       Size
	Columns    int
	Rows       int
	Spacing    float64
	CellWidth  float64
	CellHeight float64
	// Usable is the page area inside the margins.
	Usable Rect
	// Cells are in drawing order: row-major, top row first, left to right.
	Cells []Rect
}

// UsableWidth returns the horizontal space between the left and right margins.
func (g *Grid) UsableWidth() float64 { return g.Usable.W }

// UsableHeight returns the vertical space between the top and bottom margins.
func (g *Grid) UsableHeight() float64 { return g.Usable.H }

const (
	// maxGridCells bounds columns*rows of a single page.
	maxGridCells = 10000
	// minCellSize is the smallest cell edge in output units.
	minCellSize = 1.0
)

// PlanGrid computes the cells of a columns x rows grid on a page. Margins are
// in centimeters, spacing in output units. A configuration whose cells would
// be smaller than minCellSize on either edge, or that has more than
// maxGridCells cells, is an *InvalidLayoutError.
func PlanGrid(page Size, margins Margins, spacing float64, columns, rows int) (*Grid, error) {
	if columns < 1 || rows < 1 {
		return nil, invalidf("grid must have at least one column and one row, got %dx%d", columns, rows)
	}
	if columns > maxGridCells/rows {
		return nil, invalidf("grid %dx%d exceeds %d cells", columns, rows, maxGridCells)
	}
	if margins.Left < 0 || margins.Right < 0 || margins.Top < 0 || margins.Bottom < 0 {
		return nil, invalidf("margins must not be negative")
	}
	if spacing < 0 {
		return nil, invalidf("spacing must not be negative, got %.2f", spacing)
	}

	left := CmToUnits(margins.Left)
	right := CmToUnits(margins.Right)
	top := CmToUnits(margins.Top)
	bottom := CmToUnits(margins.Bottom)

	usableW := page.W - left - right
	usableH := page.H - top - bottom
	cellW := (usableW - float64(columns-1)*spacing) / float64(columns)
	cellH := (usableH - float64(rows-1)*spacing) / float64(rows)
	if cellW < minCellSize || cellH < minCellSize {
		e := invalidf("margins and spacing leave no room for cells: cell size %.2fx%.2f", cellW, cellH)
		e.CellWidth, e.CellHeight = cellW, cellH
		return nil, e
	}

	cells := make([]Rect, 0, columns*rows)
	for i := range rows {
		y := page.H - top - float64(i+1)*cellH - float64(i)*spacing
		for j := range columns {
			x := left + float64(j)*(cellW+spacing)
			cells = append(cells, Rect{X: x, Y: y, W: cellW, H: cellH})
		}
	}

	return &Grid{
		Page:       page,
		Columns:    columns,
		Rows:       rows,
		Spacing:    spacing,
		CellWidth:  cellW,
		CellHeight: cellH,
		Usable:     Rect{X: left, Y: bottom, W: usableW, H: usableH},
		Cells:      cells,
	}, nil
}

// gridForConfig plans the grid of a group configuration.
func gridForConfig(cfg GroupConfig) (*Grid, error) {
	page, err := Dimensions(cfg.PageSize, cfg.Orientation)
	if err != nil {
		return nil, invalidf("%v", err)
	}
	return PlanGrid(page, cfg.Margins, cfg.Spacing, cfg.Columns, cfg.Rows)
}
