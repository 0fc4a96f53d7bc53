package layout

import (
	"errors"
	"strconv"
)

type assemblerState int

const (
	stateBeforeFirstPage assemblerState = iota
	stateOnPage
	stateDone
)

const (
	pageNumberInsetX = 20.0
	pageNumberInsetY = 15.0
	minTextEdge      = 2.0
)

var (
	watermarkColor = Color{200, 200, 200}
	overlayColor   = Gray(0.3)
)

// errAssemblerDone is returned when pages are drawn after finishing.
var errAssemblerDone = errors.New("assembler already finished")

// Assembler drives a planned document onto a Canvas page by page. The global
// page number starts at 1 on the first page and grows by one on every
// following page break, across all groups.
type Assembler struct {
	canvas     Canvas
	opts       GlobalOptions
	state      assemblerState
	pageNumber int
}

// NewAssembler returns an assembler in its initial state.
func NewAssembler(c Canvas, opts GlobalOptions) *Assembler {
	return &Assembler{canvas: c, opts: opts}
}

// PageNumber returns the global number of the current page (0 before the first).
func (a *Assembler) PageNumber() int { return a.pageNumber }

// Draw composes every page of the plan and finishes the assembler.
func (a *Assembler) Draw(plan *Plan) error {
	for _, page := range plan.Pages {
		if err := a.drawPage(plan, page); err != nil {
			return err
		}
	}
	a.state = stateDone
	return nil
}

// beginPage starts a new output page. Only pages after the first count as
// a page break.
func (a *Assembler) beginPage(size Size) error {
	switch a.state {
	case stateBeforeFirstPage:
		a.pageNumber = 1
		a.state = stateOnPage
	case stateOnPage:
		a.pageNumber++
	case stateDone:
		return errAssemblerDone
	}
	a.canvas.AddPage(size)
	return nil
}

func (a *Assembler) drawPage(plan *Plan, page PlannedPage) error {
	if err := a.beginPage(page.Grid.Page); err != nil {
		return err
	}
	size := page.Grid.Page
	cfg := page.Config

	rotated := a.opts.BinderRotation && a.pageNumber%2 == 0
	if rotated {
		a.canvas.BeginRotation(180, size.W/2, size.H/2)
	}

	watermark := cfg.Watermark
	if watermark == "" {
		watermark = a.opts.Watermark
	}
	if watermark != "" {
		a.drawWatermark(watermark, cfg, size)
	}

	style := TextStyle{Size: headerFooterSize(cfg), Color: overlayColor}
	if cfg.Header != "" {
		text := ExpandTemplate(cfg.Header, a.pageNumber, plan.TotalPages(), plan.Date, page.Group)
		y := size.H - CmToUnits(cfg.Margins.Top)/2 - style.Size/3
		y = min(y, size.H-style.Size)
		a.drawCentered(text, y, size, style)
	}
	if cfg.Footer != "" {
		text := ExpandTemplate(cfg.Footer, a.pageNumber, plan.TotalPages(), plan.Date, page.Group)
		y := CmToUnits(cfg.Margins.Bottom)/2 - style.Size/3
		y = max(y, minTextEdge)
		a.drawCentered(text, y, size, style)
	}
	if a.opts.PageNumbers {
		label := strconv.Itoa(a.pageNumber)
		w := a.canvas.TextWidth(label, style)
		a.canvas.Text(size.W-pageNumberInsetX-w, pageNumberInsetY, label, style)
	}

	ComposePage(a.canvas, page)

	if rotated {
		a.canvas.EndRotation()
	}
	return nil
}

// drawWatermark renders text centered on the page, rotated 45 degrees.
func (a *Assembler) drawWatermark(text string, cfg GroupConfig, size Size) {
	cfg = cfg.withTextDefaults()
	fontSize, opacity := cfg.WatermarkSize, cfg.WatermarkOpacity
	style := TextStyle{Size: fontSize, Bold: true, Color: watermarkColor}
	cx, cy := size.W/2, size.H/2
	w := a.canvas.TextWidth(text, style)

	a.canvas.SetAlpha(opacity)
	a.canvas.BeginRotation(45, cx, cy)
	a.canvas.Text(cx-w/2, cy-fontSize/3, text, style)
	a.canvas.EndRotation()
	a.canvas.SetAlpha(1)
}

func (a *Assembler) drawCentered(text string, y float64, size Size, style TextStyle) {
	w := a.canvas.TextWidth(text, style)
	a.canvas.Text((size.W-w)/2, y, text, style)
}

func headerFooterSize(cfg GroupConfig) float64 {
	return cfg.withTextDefaults().HeaderFooterSize
}
