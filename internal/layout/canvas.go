package layout

// Color is an 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Gray returns the gray color with the given level (0 black, 1 white).
func Gray(level float64) Color {
	v := uint8(level*255 + 0.5)
	return Color{v, v, v}
}

// TextStyle describes how a string is drawn.
type TextStyle struct {
	Size  float64
	Bold  bool
	Color Color
}

// ImageDraw describes one image placement.
type ImageDraw struct {
	// Key identifies the image; equal keys share one embedded copy.
	Key     string
	Image   RasterImage
	Quality Quality
	// Box is the drawn bounding box after rotation.
	Box Rect
	// Rotation in degrees, counter-clockwise, applied about the box center.
	Rotation int
	// Clip, when set, limits drawing to the rectangle.
	Clip *Rect
}

// Canvas is the drawing surface the assembler composes onto. Coordinates
// are output units with the origin at the bottom-left of the current page.
type Canvas interface {
	AddPage(size Size)
	// BeginRotation rotates everything drawn until EndRotation by angle
	// degrees counter-clockwise about (cx, cy).
	BeginRotation(angle, cx, cy float64)
	EndRotation()
	SetAlpha(alpha float64)
	StrokeRect(r Rect, lineWidth float64, c Color)
	FillRect(r Rect, c Color)
	Line(x1, y1, x2, y2, lineWidth float64, c Color)
	DrawImage(img ImageDraw)
	// Text draws s with its baseline starting at (x, y).
	Text(x, y float64, s string, style TextStyle)
	TextWidth(s string, style TextStyle) float64
}
