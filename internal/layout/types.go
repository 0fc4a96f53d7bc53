package layout

import (
	"fmt"
	"io"
	"time"
)

// PageSize names a supported output paper size.
type PageSize string

// Supported page sizes.
const (
	PageSizeA4     PageSize = "A4"
	PageSizeA3     PageSize = "A3"
	PageSizeLetter PageSize = "Letter"
	PageSizeLegal  PageSize = "Legal"
)

// Orientation of an output page.
type Orientation string

// Orientation constants.
const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// FitPolicy controls how a source image is scaled into its cell.
type FitPolicy string

// Fit policies.
const (
	FitContain FitPolicy = "contain" // whole image visible, letterboxed
	FitCover   FitPolicy = "cover"   // cell fully covered, overflow clipped
)

// ImageOrientation forces the drawn orientation of source images.
type ImageOrientation string

// Image orientation policies.
const (
	OrientationKeep           ImageOrientation = "keep"
	OrientationForceLandscape ImageOrientation = "landscape"
	OrientationForcePortrait  ImageOrientation = "portrait"
)

// Quality is the re-encoding tier used for embedded images.
type Quality string

// Quality tiers.
const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

// JPEGQuality returns the JPEG quality parameter for the tier.
func (q Quality) JPEGQuality() int {
	switch q {
	case QualityLow:
		return 50
	case QualityMedium:
		return 75
	default:
		return 92
	}
}

// MaxDimension returns the longest pixel side kept for the tier (0 = no downscale).
func (q Quality) MaxDimension() int {
	switch q {
	case QualityLow:
		return 1200
	case QualityMedium:
		return 2000
	default:
		return 0
	}
}

// Anchor is the position of a per-slide label inside its cell.
type Anchor string

// Label anchors.
const (
	AnchorBottomLeft  Anchor = "bottom-left"
	AnchorBottomRight Anchor = "bottom-right"
	AnchorTopLeft     Anchor = "top-left"
	AnchorTopRight    Anchor = "top-right"
	AnchorCenter      Anchor = "center"
)

// Margins in centimeters.
type Margins struct {
	Left, Right, Top, Bottom float64
}

// GroupConfig is the per-group layout configuration. The engine never mutates it.
type GroupConfig struct {
	PageSize    PageSize
	Orientation Orientation
	Columns     int
	Rows        int
	Margins     Margins // cm
	Spacing     float64 // points between cells

	Border      bool
	BorderWidth float64

	Numbering    bool
	NumberSize   float64
	NumberAnchor Anchor

	Quality          Quality
	Rotation         int // 0, 90, 180 or 270
	ImageOrientation ImageOrientation
	Fit              FitPolicy

	Watermark        string
	WatermarkSize    float64
	WatermarkOpacity float64

	Header           string
	Footer           string
	HeaderFooterSize float64
}

// CellsPerPage returns the number of grid cells on one output page.
func (c GroupConfig) CellsPerPage() int {
	return c.Columns * c.Rows
}

// DefaultGroupConfig mirrors the classic "four slides per landscape A4" sheet.
func DefaultGroupConfig() GroupConfig {
	return GroupConfig{
		PageSize:         PageSizeA4,
		Orientation:      Landscape,
		Columns:          2,
		Rows:             2,
		Margins:          Margins{Left: 1, Right: 1, Top: 1, Bottom: 1},
		Spacing:          20,
		Border:           true,
		BorderWidth:      0.5,
		Numbering:        true,
		NumberSize:       10,
		NumberAnchor:     AnchorBottomLeft,
		Quality:          QualityHigh,
		ImageOrientation: OrientationKeep,
		Fit:              FitContain,
		WatermarkSize:    60,
		WatermarkOpacity: 0.3,
		HeaderFooterSize: 9,
	}
}

// withTextDefaults fills unset text sizes and watermark opacity from
// DefaultGroupConfig.
func (c GroupConfig) withTextDefaults() GroupConfig {
	d := DefaultGroupConfig()
	if c.NumberSize <= 0 {
		c.NumberSize = d.NumberSize
	}
	if c.WatermarkSize <= 0 {
		c.WatermarkSize = d.WatermarkSize
	}
	if c.WatermarkOpacity <= 0 {
		c.WatermarkOpacity = d.WatermarkOpacity
	}
	if c.HeaderFooterSize <= 0 {
		c.HeaderFooterSize = d.HeaderFooterSize
	}
	return c
}

// PageEntry identifies one unit of content placed in a cell: either a real
// source page or a synthetic blank page. Use RealEntry or BlankEntry.
type PageEntry struct {
	kind       entryKind
	documentID string
	pageIndex  int
	lined      bool
}

type entryKind uint8

const (
	entryReal entryKind = iota
	entryBlank
)

// RealEntry references page pageIndex (0-based) of document documentID.
func RealEntry(documentID string, pageIndex int) PageEntry {
	return PageEntry{kind: entryReal, documentID: documentID, pageIndex: pageIndex}
}

// BlankEntry is a spacer page, optionally ruled.
func BlankEntry(lined bool) PageEntry {
	return PageEntry{kind: entryBlank, lined: lined}
}

// IsBlank reports whether the entry is a synthetic blank page.
func (e PageEntry) IsBlank() bool { return e.kind == entryBlank }

// Lined reports whether a blank entry is ruled.
func (e PageEntry) Lined() bool { return e.kind == entryBlank && e.lined }

// DocumentID of a real entry ("" for blanks).
func (e PageEntry) DocumentID() string { return e.documentID }

// PageIndex of a real entry (0-based, -1 for blanks).
func (e PageEntry) PageIndex() int {
	if e.kind == entryBlank {
		return -1
	}
	return e.pageIndex
}

func (e PageEntry) String() string {
	switch {
	case e.Lined():
		return "lined"
	case e.IsBlank():
		return "blank"
	default:
		return fmt.Sprintf("%s:%d", e.documentID, e.pageIndex+1)
	}
}

// Group is an independently configured batch of entries.
type Group struct {
	Name    string
	Entries []PageEntry
	Config  GroupConfig
}

// GlobalOptions apply across all groups of one render.
type GlobalOptions struct {
	Watermark      string // used by groups without their own watermark
	PageNumbers    bool   // ascending global page number, bottom right
	BinderRotation bool   // rotate even global pages by 180 degrees
	Title          string // document metadata title

	// LabelLength is how many runes of a document name are kept in
	// multi-document slide labels. Zero means DefaultLabelLength.
	LabelLength int
	// DocumentNames maps document ids to display names for labels.
	DocumentNames map[string]string
	// Now supplies the {date} substitution and PDF timestamps.
	// Nil means time.Now.
	Now func() time.Time
}

// DefaultLabelLength is the label truncation used when none is configured.
const DefaultLabelLength = 15

func (o GlobalOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o GlobalOptions) labelLength() int {
	if o.LabelLength > 0 {
		return o.LabelLength
	}
	return DefaultLabelLength
}

func (o GlobalOptions) documentName(id string) string {
	if name, ok := o.DocumentNames[id]; ok && name != "" {
		return name
	}
	return id
}

// RasterImage is a decoded source page.
type RasterImage interface {
	Width() int
	Height() int
	// Encode writes the image as JPEG with the given quality, first
	// downscaling so the longest side is at most maxDimension (0 = keep).
	Encode(w io.Writer, jpegQuality, maxDimension int) error
}

// ImageSource resolves decoded images by (document id, page index).
type ImageSource interface {
	Image(documentID string, pageIndex int) (RasterImage, bool)
}

// ImageSet is a simple in-memory ImageSource.
type ImageSet map[string][]RasterImage

// Image implements ImageSource.
func (s ImageSet) Image(documentID string, pageIndex int) (RasterImage, bool) {
	pages, ok := s[documentID]
	if !ok || pageIndex < 0 || pageIndex >= len(pages) {
		return nil, false
	}
	return pages[pageIndex], true
}
