package layout

import (
	"fmt"

	"github.com/kozaktomas/slide-sheets/internal/pdfout"
)

// Draw replays a plan onto c.
func Draw(c Canvas, plan *Plan, opts GlobalOptions) error {
	return NewAssembler(c, opts).Draw(plan)
}

// RenderDocument plans, draws and serializes groups into a PDF. Nothing is
// drawn unless the whole document plans successfully.
func RenderDocument(groups []Group, images ImageSource, opts GlobalOptions) ([]byte, *Report, error) {
	plan, err := PlanDocument(groups, images, opts)
	if err != nil {
		return nil, nil, err
	}

	doc := pdfout.New(pdfout.Options{
		Title:   opts.Title,
		Creator: "slide-sheets",
		Date:    plan.Date,
	})
	if err := Draw(pdfCanvas{doc}, plan, opts); err != nil {
		return nil, nil, err
	}
	data, err := doc.Bytes()
	if err != nil {
		return nil, nil, fmt.Errorf("serializing document: %w", err)
	}
	return data, NewReport(plan, opts), nil
}

// pdfCanvas adapts a pdfout.Document to Canvas.
type pdfCanvas struct {
	doc *pdfout.Document
}

func (p pdfCanvas) AddPage(size Size) { p.doc.AddPage(size.W, size.H) }

func (p pdfCanvas) BeginRotation(angle, cx, cy float64) { p.doc.BeginRotation(angle, cx, cy) }

func (p pdfCanvas) EndRotation() { p.doc.EndRotation() }

func (p pdfCanvas) SetAlpha(alpha float64) { p.doc.SetAlpha(alpha) }

func (p pdfCanvas) StrokeRect(r Rect, lineWidth float64, c Color) {
	p.doc.StrokeRect(pdfRect(r), lineWidth, pdfColor(c))
}

func (p pdfCanvas) FillRect(r Rect, c Color) { p.doc.FillRect(pdfRect(r), pdfColor(c)) }

func (p pdfCanvas) Line(x1, y1, x2, y2, lineWidth float64, c Color) {
	p.doc.Line(x1, y1, x2, y2, lineWidth, pdfColor(c))
}

func (p pdfCanvas) DrawImage(img ImageDraw) {
	out := pdfout.Image{
		Key:          img.Key,
		Source:       img.Image,
		JPEGQuality:  img.Quality.JPEGQuality(),
		MaxDimension: img.Quality.MaxDimension(),
		Box:          pdfRect(img.Box),
		Rotation:     img.Rotation,
	}
	if img.Clip != nil {
		clip := pdfRect(*img.Clip)
		out.Clip = &clip
	}
	p.doc.DrawImage(out)
}

func (p pdfCanvas) Text(x, y float64, s string, style TextStyle) {
	p.doc.Text(x, y, s, style.Size, style.Bold, pdfColor(style.Color))
}

func (p pdfCanvas) TextWidth(s string, style TextStyle) float64 {
	return p.doc.TextWidth(s, style.Size, style.Bold)
}

func pdfRect(r Rect) pdfout.Rect { return pdfout.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H} }

func pdfColor(c Color) pdfout.Color { return pdfout.Color{R: c.R, G: c.G, B: c.B} }
