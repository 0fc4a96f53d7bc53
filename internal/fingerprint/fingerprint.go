// Package fingerprint computes difference hashes of decoded slides so that
// near-identical consecutive pages (animation builds) can be reported.
package fingerprint

import (
	"fmt"
	"image"
	"math/bits"

	"golang.org/x/image/draw"
)

// DefaultThreshold is the Hamming distance at or below which two slides
// count as near-duplicates.
const DefaultThreshold = 6

// Hash is a 64-bit difference hash.
type Hash uint64

func (h Hash) String() string { return fmt.Sprintf("%016x", uint64(h)) }

// DHash computes the difference hash of img.
func DHash(img image.Image) Hash {
	// 9 columns give 8 horizontal differences per row
	small := image.NewRGBA(image.Rect(0, 0, 9, 8))
	draw.BiLinear.Scale(small, small.Bounds(), img, img.Bounds(), draw.Over, nil)

	var hash uint64
	bit := 63
	for y := range 8 {
		for x := range 8 {
			if luma(small, x, y) > luma(small, x+1, y) {
				hash |= 1 << bit
			}
			bit--
		}
	}
	return Hash(hash)
}

// luma returns the ITU-R BT.601 brightness of a pixel (0-255).
func luma(img *image.RGBA, x, y int) float64 {
	c := img.RGBAAt(x, y)
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// HammingDistance returns the number of differing bits.
func HammingDistance(a, b Hash) int {
	return bits.OnesCount64(uint64(a ^ b))
}

// Similar reports whether two hashes are within threshold bits.
func Similar(a, b Hash, threshold int) bool {
	return HammingDistance(a, b) <= threshold
}

// Pair identifies two consecutive near-identical pages by index.
type Pair struct {
	First, Second int
	Distance      int
}

// ConsecutiveDuplicates returns every pair of neighbouring hashes within
// threshold.
func ConsecutiveDuplicates(hashes []Hash, threshold int) []Pair {
	var pairs []Pair
	for i := 1; i < len(hashes); i++ {
		if d := HammingDistance(hashes[i-1], hashes[i]); d <= threshold {
			pairs = append(pairs, Pair{First: i - 1, Second: i, Distance: d})
		}
	}
	return pairs
}
