// Package raster decodes source documents into page images for the layout
// engine.
package raster

import (
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

// Image is one decoded source page.
type Image struct {
	img image.Image
}

// FromImage wraps an already decoded image.
func FromImage(img image.Image) *Image {
	return &Image{img: img}
}

// Width in pixels.
func (i *Image) Width() int { return i.img.Bounds().Dx() }

// Height in pixels.
func (i *Image) Height() int { return i.img.Bounds().Dy() }

// Decoded returns the underlying image.
func (i *Image) Decoded() image.Image { return i.img }

// Encode writes the page as JPEG. When maxDimension is positive and the page
// is larger, it is first scaled down so its longest side fits.
func (i *Image) Encode(w io.Writer, jpegQuality, maxDimension int) error {
	img := i.img
	if maxDimension > 0 && (i.Width() > maxDimension || i.Height() > maxDimension) {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}
	if err := imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fmt.Errorf("encoding jpeg: %w", err)
	}
	return nil
}
