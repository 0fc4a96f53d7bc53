package layout

import "fmt"

// UnitsPerCm is the number of output units (points) in one centimeter.
const UnitsPerCm = 28.35

// CmToUnits converts centimeters to output units.
func CmToUnits(cm float64) float64 {
	return cm * UnitsPerCm
}

// unitsPerInch is the number of output units (points) in one inch.
const unitsPerInch = 72.0

// EffectiveDPI is the print resolution of px pixels drawn across a length of
// units output units.
func EffectiveDPI(px int, units float64) float64 {
	return float64(px) * unitsPerInch / units
}

// Size is a width/height pair in output units.
type Size struct {
	W, H float64
}

// portrait dimensions in points
var pageSizes = map[PageSize]Size{
	PageSizeA4:     {595.28, 841.89},
	PageSizeA3:     {841.89, 1190.55},
	PageSizeLetter: {612, 792},
	PageSizeLegal:  {612, 1008},
}

// Dimensions returns the page size in output units for the given orientation.
func Dimensions(size PageSize, orientation Orientation) (Size, error) {
	s, ok := pageSizes[size]
	if !ok {
		return Size{}, fmt.Errorf("unknown page size %q", size)
	}
	if orientation == Landscape {
		s.W, s.H = s.H, s.W
	}
	return s, nil
}
