// Package pdfout writes PDF documents with go-pdf/fpdf. Coordinates passed
// to a Document use points with the origin at the bottom-left of the
// current page.
package pdfout

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

const fontFamily = "Helvetica"

// Color is an 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Rect is an axis-aligned rectangle, (X, Y) being its bottom-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Encoder produces the JPEG bytes of an image.
type Encoder interface {
	Encode(w io.Writer, jpegQuality, maxDimension int) error
}

// Image describes one image placement.
type Image struct {
	Key          string // equal keys at equal quality share one embedded copy
	Source       Encoder
	JPEGQuality  int
	MaxDimension int
	Box          Rect // bounds after rotation
	Rotation     int  // degrees counter-clockwise about the box center
	Clip         *Rect
}

// Options configure document metadata.
type Options struct {
	Title   string
	Creator string
	// Date is written as creation and modification date. Fixing it makes
	// the output byte-identical across runs.
	Date time.Time
}

// Document is a PDF being written page by page.
type Document struct {
	pdf        *fpdf.Fpdf
	pageHeight float64
	pages      int
	encodeErr  error
}

// New creates an empty document.
func New(opts Options) *Document {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: 595.28, Ht: 841.89},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCatalogSort(true)
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}
	if opts.Creator != "" {
		pdf.SetCreator(opts.Creator, true)
	}
	if !opts.Date.IsZero() {
		pdf.SetCreationDate(opts.Date)
		pdf.SetModificationDate(opts.Date)
	}
	pdf.SetFont(fontFamily, "", 10)
	return &Document{pdf: pdf}
}

// PageCount returns the number of pages added so far.
func (d *Document) PageCount() int { return d.pages }

// AddPage starts a new page of the given size in points.
func (d *Document) AddPage(width, height float64) {
	// fpdf swaps the size for "L"; "P" keeps width and height as given.
	d.pdf.AddPageFormat("P", fpdf.SizeType{Wd: width, Ht: height})
	d.pageHeight = height
	d.pages++
}

// y converts a bottom-left y coordinate to fpdf's top-left system.
func (d *Document) y(y float64) float64 { return d.pageHeight - y }

// BeginRotation rotates subsequent drawing by angle degrees
// counter-clockwise about (cx, cy) until EndRotation.
func (d *Document) BeginRotation(angle, cx, cy float64) {
	d.pdf.TransformBegin()
	d.pdf.TransformRotate(angle, cx, d.y(cy))
}

// EndRotation restores the state saved by BeginRotation.
func (d *Document) EndRotation() {
	d.pdf.TransformEnd()
}

// SetAlpha sets the opacity of subsequent drawing.
func (d *Document) SetAlpha(alpha float64) {
	d.pdf.SetAlpha(alpha, "Normal")
}

// StrokeRect outlines r.
func (d *Document) StrokeRect(r Rect, lineWidth float64, c Color) {
	d.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	d.pdf.SetLineWidth(lineWidth)
	d.pdf.Rect(r.X, d.y(r.Y+r.H), r.W, r.H, "D")
}

// FillRect fills r without outline.
func (d *Document) FillRect(r Rect, c Color) {
	d.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	d.pdf.Rect(r.X, d.y(r.Y+r.H), r.W, r.H, "F")
}

// Line draws a straight line.
func (d *Document) Line(x1, y1, x2, y2, lineWidth float64, c Color) {
	d.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	d.pdf.SetLineWidth(lineWidth)
	d.pdf.Line(x1, d.y(y1), x2, d.y(y2))
}

// DrawImage embeds img (once per key and quality) and places it.
func (d *Document) DrawImage(img Image) {
	name := fmt.Sprintf("%s@%d", img.Key, img.JPEGQuality)
	opts := fpdf.ImageOptions{ImageType: "JPG"}
	if d.pdf.GetImageInfo(name) == nil {
		var buf bytes.Buffer
		if err := img.Source.Encode(&buf, img.JPEGQuality, img.MaxDimension); err != nil {
			if d.encodeErr == nil {
				d.encodeErr = fmt.Errorf("encoding image %s: %w", img.Key, err)
			}
			return
		}
		d.pdf.RegisterImageOptionsReader(name, opts, &buf)
	}

	if img.Clip != nil {
		c := img.Clip
		d.pdf.ClipRect(c.X, d.y(c.Y+c.H), c.W, c.H, false)
	}

	b := img.Box
	cx, cy := b.X+b.W/2, b.Y+b.H/2
	w, h := b.W, b.H
	rotation := ((img.Rotation % 360) + 360) % 360
	if rotation == 90 || rotation == 270 {
		w, h = h, w
	}
	if rotation != 0 {
		d.BeginRotation(float64(rotation), cx, cy)
	}
	d.pdf.ImageOptions(name, cx-w/2, d.y(cy)-h/2, w, h, false, opts, 0, "")
	if rotation != 0 {
		d.EndRotation()
	}

	if img.Clip != nil {
		d.pdf.ClipEnd()
	}
}

// Text draws s with its baseline starting at (x, y).
func (d *Document) Text(x, y float64, s string, size float64, bold bool, c Color) {
	d.setFont(size, bold)
	d.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
	d.pdf.Text(x, d.y(y), encodeText(s))
}

// TextWidth returns the width of s in points at the given font size.
func (d *Document) TextWidth(s string, size float64, bold bool) float64 {
	d.setFont(size, bold)
	return d.pdf.GetStringWidth(encodeText(s))
}

func (d *Document) setFont(size float64, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	d.pdf.SetFont(fontFamily, style, size)
}

// Bytes finishes the document and returns the PDF.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write finishes the document and writes the PDF to w.
func (d *Document) Write(w io.Writer) error {
	if d.encodeErr != nil {
		return d.encodeErr
	}
	if d.pages == 0 {
		return fmt.Errorf("document has no pages")
	}
	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}
