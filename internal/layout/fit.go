package layout

// Fit is the drawn size of an image and its centering offset inside a cell.
type Fit struct {
	Width, Height float64
	OffsetX       float64
	OffsetY       float64
}

// FitImage scales an image with aspect ratio aspect (width/height) into a
// cellW x cellH cell. Contain keeps the image inside the cell; Cover makes it
// cover the cell completely, one dimension equal to the cell and the other
// overflowing. The drawn box is centered in the cell.
func FitImage(aspect, cellW, cellH float64, policy FitPolicy) (Fit, error) {
	if cellW <= 0 || cellH <= 0 {
		e := invalidf("insufficient space for image: cell %.2fx%.2f", cellW, cellH)
		e.CellWidth, e.CellHeight = cellW, cellH
		return Fit{}, e
	}
	if aspect <= 0 {
		return Fit{}, invalidf("image aspect ratio must be positive, got %.4f", aspect)
	}

	var w, h float64
	wider := aspect > cellW/cellH
	if policy == FitCover {
		wider = !wider
	}
	if wider {
		// width-driven
		w = cellW
		h = cellW / aspect
	} else {
		// height-driven
		h = cellH
		w = cellH * aspect
	}

	return Fit{
		Width:   w,
		Height:  h,
		OffsetX: (cellW - w) / 2,
		OffsetY: (cellH - h) / 2,
	}, nil
}
