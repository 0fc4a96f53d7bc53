package layout

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"time"
)

// testImage is a solid RasterImage of the given pixel size.
type testImage struct {
	w, h int
}

func (i testImage) Width() int  { return i.w }
func (i testImage) Height() int { return i.h }

func (i testImage) Encode(w io.Writer, quality, _ int) error {
	img := image.NewRGBA(image.Rect(0, 0, i.w, i.h))
	for y := range i.h {
		for x := range i.w {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}

// testDeck returns an ImageSet holding one document of n landscape pages.
func testDeck(id string, n int) ImageSet {
	pages := make([]RasterImage, n)
	for i := range pages {
		pages[i] = testImage{w: 160, h: 90}
	}
	return ImageSet{id: pages}
}

func entries(id string, n int) []PageEntry {
	out := make([]PageEntry, n)
	for i := range out {
		out[i] = RealEntry(id, i)
	}
	return out
}

var fixedDate = time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedDate }

// canvasOp is one recorded Canvas call.
type canvasOp struct {
	Kind  string
	Angle float64
	Text  string
	Rect  Rect
	Image ImageDraw
	Alpha float64
	X, Y  float64
}

// recordedPage collects the operations drawn on one page.
type recordedPage struct {
	Size Size
	Ops  []canvasOp
}

// recordingCanvas records every drawing call per page.
type recordingCanvas struct {
	Pages []*recordedPage
	depth int
}

func (c *recordingCanvas) add(op canvasOp) {
	if len(c.Pages) == 0 {
		panic(fmt.Sprintf("%s drawn before the first page", op.Kind))
	}
	p := c.Pages[len(c.Pages)-1]
	p.Ops = append(p.Ops, op)
}

func (c *recordingCanvas) AddPage(size Size) {
	if c.depth != 0 {
		panic("page added inside an open rotation")
	}
	c.Pages = append(c.Pages, &recordedPage{Size: size})
}

func (c *recordingCanvas) BeginRotation(angle, cx, cy float64) {
	c.depth++
	c.add(canvasOp{Kind: "rotate", Angle: angle, X: cx, Y: cy})
}

func (c *recordingCanvas) EndRotation() {
	c.depth--
	c.add(canvasOp{Kind: "end-rotate"})
}

func (c *recordingCanvas) SetAlpha(alpha float64) { c.add(canvasOp{Kind: "alpha", Alpha: alpha}) }

func (c *recordingCanvas) StrokeRect(r Rect, _ float64, _ Color) {
	c.add(canvasOp{Kind: "stroke", Rect: r})
}

func (c *recordingCanvas) FillRect(r Rect, _ Color) { c.add(canvasOp{Kind: "fill", Rect: r}) }

func (c *recordingCanvas) Line(x1, y1, _, _, _ float64, _ Color) {
	c.add(canvasOp{Kind: "line", X: x1, Y: y1})
}

func (c *recordingCanvas) DrawImage(img ImageDraw) { c.add(canvasOp{Kind: "image", Image: img}) }

func (c *recordingCanvas) Text(x, y float64, s string, _ TextStyle) {
	c.add(canvasOp{Kind: "text", Text: s, X: x, Y: y})
}

func (c *recordingCanvas) TextWidth(s string, style TextStyle) float64 {
	return float64(len(s)) * style.Size * 0.5
}

// rotated reports whether the page is wrapped in a 180 degree rotation.
func (p *recordedPage) rotated() bool {
	for _, op := range p.Ops {
		if op.Kind == "rotate" && op.Angle == 180 {
			return true
		}
	}
	return false
}

func (p *recordedPage) count(kind string) int {
	n := 0
	for _, op := range p.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

func (p *recordedPage) texts() []string {
	var out []string
	for _, op := range p.Ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}
