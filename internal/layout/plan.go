package layout

import (
	"fmt"
	"time"
)

// lowResDPIThreshold flags images printed below this effective resolution.
const lowResDPIThreshold = 150.0

// Placement is one entry assigned to one cell.
type Placement struct {
	CellIndex int
	Cell      Rect
	Entry     PageEntry
	Image     RasterImage // nil for blank entries
	// Rotation is the effective image rotation after orientation forcing.
	Rotation int
	// Box is the drawn image box (rotated bounds), cell-centered.
	Box          Rect
	Label        string
	EffectiveDPI float64
}

// PlannedPage is one output page before drawing.
type PlannedPage struct {
	Number     int // global, 1-based
	Group      string
	GroupIndex int
	GroupPage  int // 1-based within the group
	Config     GroupConfig
	Grid       *Grid
	Rotated    bool // binder rotation applies
	Placements []Placement
}

// EmptyCells returns the number of unoccupied cells on the page.
func (p PlannedPage) EmptyCells() int {
	return len(p.Grid.Cells) - len(p.Placements)
}

// Plan is the fully validated page layout of one render.
type Plan struct {
	Pages       []PlannedPage
	EntryCount  int
	SourcePages int
	Date        time.Time
	Warnings    []ValidationWarning
}

// TotalPages returns the number of output pages.
func (p *Plan) TotalPages() int { return len(p.Pages) }

// PlanDocument lays out every group without drawing anything. All
// configuration and input errors surface here, so a render either produces
// a complete document or none at all.
func PlanDocument(groups []Group, images ImageSource, opts GlobalOptions) (*Plan, error) {
	total := 0
	for _, g := range groups {
		total += len(g.Entries)
	}
	if total == 0 {
		return nil, ErrEmptyInput
	}

	pb := &planBuilder{
		images:   images,
		opts:     opts,
		multiDoc: countDocuments(groups) > 1,
		plan:     &Plan{EntryCount: total, Date: opts.now()},
	}
	for gi, g := range groups {
		if err := pb.planGroup(gi, g); err != nil {
			return nil, err
		}
	}
	return pb.plan, nil
}

// planBuilder tracks state while planning pages across groups.
type planBuilder struct {
	images     ImageSource
	opts       GlobalOptions
	multiDoc   bool
	pageNumber int
	plan       *Plan
}

func (pb *planBuilder) planGroup(gi int, g Group) error {
	if len(g.Entries) == 0 {
		return nil
	}
	if err := validateConfig(g.Config); err != nil {
		return withGroup(err, g.Name)
	}
	grid, err := gridForConfig(g.Config)
	if err != nil {
		return withGroup(err, g.Name)
	}
	return pb.planPages(gi, g, grid)
}

// planPages fills successive pages of grid with the group's entries. Every
// page of a group shares one grid, so it is validated once and its warnings
// point at the group's first page.
func (pb *planBuilder) planPages(gi int, g Group, grid *Grid) error {
	pb.plan.Warnings = append(pb.plan.Warnings, ValidateGrid(grid, pb.pageNumber+1)...)

	groupPage := 0
	for slice := range Paginate(g.Entries, g.Config.CellsPerPage()) {
		pb.pageNumber++
		groupPage++
		page := PlannedPage{
			Number:     pb.pageNumber,
			Group:      g.Name,
			GroupIndex: gi,
			GroupPage:  groupPage,
			Config:     g.Config,
			Grid:       grid,
			Rotated:    pb.opts.BinderRotation && pb.pageNumber%2 == 0,
			Placements: make([]Placement, 0, len(slice)),
		}
		for i, entry := range slice {
			pl, err := pb.place(g, grid.Cells[i], entry)
			if err != nil {
				return withGroup(err, g.Name)
			}
			pl.CellIndex = i
			page.Placements = append(page.Placements, pl)
		}
		pb.plan.Pages = append(pb.plan.Pages, page)
	}
	return nil
}

// place resolves an entry's image and computes where it is drawn in cell.
func (pb *planBuilder) place(g Group, cell Rect, entry PageEntry) (Placement, error) {
	if entry.IsBlank() {
		return Placement{Cell: cell, Entry: entry, Box: cell}, nil
	}
	pb.plan.SourcePages++

	img, ok := pb.images.Image(entry.DocumentID(), entry.PageIndex())
	if !ok || img.Width() <= 0 || img.Height() <= 0 {
		return Placement{}, &MissingImageError{DocumentID: entry.DocumentID(), PageIndex: entry.PageIndex()}
	}

	rotation, w, h := orient(img.Width(), img.Height(), g.Config.Rotation, g.Config.ImageOrientation)
	fit, err := FitImage(float64(w)/float64(h), cell.W, cell.H, g.Config.Fit)
	if err != nil {
		return Placement{}, err
	}

	pl := Placement{
		Cell:     cell,
		Entry:    entry,
		Image:    img,
		Rotation: rotation,
		Box: Rect{
			X: cell.X + fit.OffsetX,
			Y: cell.Y + fit.OffsetY,
			W: fit.Width,
			H: fit.Height,
		},
		EffectiveDPI: EffectiveDPI(w, fit.Width),
	}
	if g.Config.Numbering {
		pl.Label = slideLabel(entry, pb.multiDoc, pb.opts)
	}
	return pl, nil
}

// orient applies the configured rotation and then, when the orientation
// policy contradicts the rotated bounds, a further quarter turn. It returns
// the effective rotation and the rotated pixel bounds.
func orient(width, height, rotation int, policy ImageOrientation) (int, int, int) {
	rotation = ((rotation % 360) + 360) % 360
	w, h := width, height
	if rotation == 90 || rotation == 270 {
		w, h = h, w
	}
	switch {
	case policy == OrientationForceLandscape && w < h,
		policy == OrientationForcePortrait && h < w:
		rotation = (rotation + 90) % 360
		w, h = h, w
	}
	return rotation, w, h
}

// countDocuments returns the number of distinct source documents referenced.
func countDocuments(groups []Group) int {
	seen := make(map[string]bool)
	for _, g := range groups {
		for _, e := range g.Entries {
			if !e.IsBlank() {
				seen[e.DocumentID()] = true
			}
		}
	}
	return len(seen)
}

// slideLabel is the per-cell label: the 1-based page number, prefixed with
// the (truncated) document name when several documents are combined.
func slideLabel(e PageEntry, multiDoc bool, opts GlobalOptions) string {
	if !multiDoc {
		return fmt.Sprintf("%d", e.PageIndex()+1)
	}
	name := []rune(opts.documentName(e.DocumentID()))
	if n := opts.labelLength(); len(name) > n {
		return fmt.Sprintf("%s… p%d", string(name[:n]), e.PageIndex()+1)
	}
	return fmt.Sprintf("%s p%d", string(name), e.PageIndex()+1)
}

// withGroup tags layout errors with the group they belong to.
func withGroup(err error, group string) error {
	switch e := err.(type) {
	case *InvalidLayoutError:
		e.Group = group
	case *MissingImageError:
		e.Group = group
	}
	return err
}
