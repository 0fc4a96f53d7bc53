package layout

import (
	"slices"
	"strings"
	"testing"
)

func drawGroups(t *testing.T, groups []Group, images ImageSource, opts GlobalOptions) (*recordingCanvas, *Assembler) {
	t.Helper()
	plan, err := PlanDocument(groups, images, opts)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	canvas := &recordingCanvas{}
	a := NewAssembler(canvas, opts)
	if err := a.Draw(plan); err != nil {
		t.Fatalf("draw: %v", err)
	}
	return canvas, a
}

func TestAssembler_BinderRotationAcrossGroups(t *testing.T) {
	groups := []Group{
		{Name: "one", Entries: entries("deck", 3), Config: gridConfig(1, 1)},
		{Name: "two", Entries: entries("deck", 2), Config: gridConfig(2, 1)},
	}
	canvas, a := drawGroups(t, groups, testDeck("deck", 3), GlobalOptions{BinderRotation: true, PageNumbers: true})

	if len(canvas.Pages) != 4 {
		t.Fatalf("expected 4 pages, got %d", len(canvas.Pages))
	}
	wantRotated := []bool{false, true, false, true}
	for i, p := range canvas.Pages {
		if p.rotated() != wantRotated[i] {
			t.Errorf("page %d: rotated = %v, want %v", i+1, p.rotated(), wantRotated[i])
		}
	}
	if a.PageNumber() != 4 {
		t.Errorf("expected final page number 4, got %d", a.PageNumber())
	}
	if got := canvas.Pages[3].count("image"); got != 2 {
		t.Errorf("expected 2 images on the group two page, got %d", got)
	}
}

func TestAssembler_RotationWrapsWholePage(t *testing.T) {
	groups := []Group{{Name: "g", Entries: entries("deck", 2), Config: gridConfig(1, 1)}}
	canvas, _ := drawGroups(t, groups, testDeck("deck", 2), GlobalOptions{BinderRotation: true})

	ops := canvas.Pages[1].Ops
	first, last := ops[0], ops[len(ops)-1]
	if first.Kind != "rotate" || first.Angle != 180 {
		t.Errorf("expected page to open with a 180 degree rotation, got %+v", first)
	}
	size := canvas.Pages[1].Size
	if first.X != size.W/2 || first.Y != size.H/2 {
		t.Errorf("expected rotation about the page center, got %.2f,%.2f", first.X, first.Y)
	}
	if last.Kind != "end-rotate" {
		t.Errorf("expected page to end by restoring rotation, got %+v", last)
	}
}

func TestAssembler_NoBinderRotation(t *testing.T) {
	groups := []Group{{Name: "g", Entries: entries("deck", 4), Config: gridConfig(1, 1)}}
	canvas, _ := drawGroups(t, groups, testDeck("deck", 4), GlobalOptions{})
	for i, p := range canvas.Pages {
		if p.rotated() {
			t.Errorf("page %d rotated without binder rotation", i+1)
		}
	}
}

func TestAssembler_GlobalPageNumbers(t *testing.T) {
	cfg := gridConfig(1, 1)
	cfg.Numbering = false
	groups := []Group{
		{Name: "a", Entries: entries("deck", 2), Config: cfg},
		{Name: "b", Entries: entries("deck", 3), Config: cfg},
	}
	canvas, _ := drawGroups(t, groups, testDeck("deck", 3), GlobalOptions{PageNumbers: true})

	for i, p := range canvas.Pages {
		texts := p.texts()
		want := []string{string(rune('1' + i))}
		if !slices.Equal(texts, want) {
			t.Errorf("page %d: texts %v, want %v", i+1, texts, want)
		}
	}
}

func TestAssembler_PageNumberBottomRight(t *testing.T) {
	cfg := gridConfig(1, 1)
	cfg.Numbering = false
	groups := []Group{{Name: "g", Entries: entries("deck", 1), Config: cfg}}
	canvas, _ := drawGroups(t, groups, testDeck("deck", 1), GlobalOptions{PageNumbers: true})

	page := canvas.Pages[0]
	for _, op := range page.Ops {
		if op.Kind != "text" {
			continue
		}
		if op.X < page.Size.W/2 || op.Y > page.Size.H/2 {
			t.Errorf("page number at %.2f,%.2f is not in the bottom right quadrant", op.X, op.Y)
		}
	}
}

func TestAssembler_Watermark(t *testing.T) {
	plain := gridConfig(1, 1)
	plain.Numbering = false
	own := plain
	own.Watermark = "CONFIDENTIAL"
	groups := []Group{
		{Name: "plain", Entries: entries("deck", 1), Config: plain},
		{Name: "own", Entries: entries("deck", 1), Config: own},
	}
	canvas, _ := drawGroups(t, groups, testDeck("deck", 1), GlobalOptions{Watermark: "DRAFT"})

	if texts := canvas.Pages[0].texts(); !slices.Equal(texts, []string{"DRAFT"}) {
		t.Errorf("page 1: expected global watermark, got %v", texts)
	}
	if texts := canvas.Pages[1].texts(); !slices.Equal(texts, []string{"CONFIDENTIAL"}) {
		t.Errorf("page 2: expected group watermark, got %v", texts)
	}

	ops := canvas.Pages[0].Ops
	kinds := make([]string, 0, 5)
	for _, op := range ops[:5] {
		kinds = append(kinds, op.Kind)
	}
	if !slices.Equal(kinds, []string{"alpha", "rotate", "text", "end-rotate", "alpha"}) {
		t.Errorf("unexpected watermark sequence %v", kinds)
	}
	if ops[0].Alpha != 0.3 || ops[1].Angle != 45 || ops[4].Alpha != 1 {
		t.Errorf("expected opacity 0.3 at 45 degrees then reset, got %+v %+v %+v", ops[0], ops[1], ops[4])
	}
}

func TestAssembler_NoWatermark(t *testing.T) {
	cfg := gridConfig(1, 1)
	cfg.Numbering = false
	groups := []Group{{Name: "g", Entries: entries("deck", 1), Config: cfg}}
	canvas, _ := drawGroups(t, groups, testDeck("deck", 1), GlobalOptions{})
	if n := canvas.Pages[0].count("text"); n != 0 {
		t.Errorf("expected no text, got %d", n)
	}
	if n := canvas.Pages[0].count("alpha"); n != 0 {
		t.Errorf("expected no alpha changes, got %d", n)
	}
}

func TestAssembler_HeaderFooter(t *testing.T) {
	cfg := gridConfig(1, 1)
	cfg.Numbering = false
	cfg.Header = "{group} - {page}/{pages}"
	cfg.Footer = "printed {date}"
	groups := []Group{{Name: "Lecture 1", Entries: entries("deck", 2), Config: cfg}}
	canvas, _ := drawGroups(t, groups, testDeck("deck", 2), GlobalOptions{Now: fixedNow})

	texts := canvas.Pages[1].texts()
	want := []string{"Lecture 1 - 2/2", "printed 2024-03-09"}
	if !slices.Equal(texts, want) {
		t.Errorf("expected %v, got %v", want, texts)
	}

	var header, footer canvasOp
	for _, op := range canvas.Pages[1].Ops {
		switch {
		case op.Kind == "text" && strings.HasPrefix(op.Text, "Lecture"):
			header = op
		case op.Kind == "text" && strings.HasPrefix(op.Text, "printed"):
			footer = op
		}
	}
	size := canvas.Pages[1].Size
	top := CmToUnits(cfg.Margins.Top)
	if header.Y < size.H-top || header.Y > size.H {
		t.Errorf("header baseline %.2f not inside the top margin", header.Y)
	}
	if footer.Y < 0 || footer.Y > CmToUnits(cfg.Margins.Bottom) {
		t.Errorf("footer baseline %.2f not inside the bottom margin", footer.Y)
	}
}

func TestAssembler_BorderBeforeImage(t *testing.T) {
	groups := []Group{{Name: "g", Entries: entries("deck", 4), Config: gridConfig(2, 2)}}
	canvas, _ := drawGroups(t, groups, testDeck("deck", 4), GlobalOptions{})

	var kinds []string
	for _, op := range canvas.Pages[0].Ops {
		kinds = append(kinds, op.Kind)
	}
	want := []string{
		"stroke", "image", "text",
		"stroke", "image", "text",
		"stroke", "image", "text",
		"stroke", "image", "text",
	}
	if !slices.Equal(kinds, want) {
		t.Errorf("expected %v, got %v", want, kinds)
	}
	if texts := canvas.Pages[0].texts(); !slices.Equal(texts, []string{"1", "2", "3", "4"}) {
		t.Errorf("expected labels 1-4 in cell order, got %v", texts)
	}
}

func TestAssembler_CoverClipsToCell(t *testing.T) {
	cfg := gridConfig(2, 1)
	cfg.Fit = FitCover
	groups := []Group{{Name: "g", Entries: entries("deck", 1), Config: cfg}}
	canvas, _ := drawGroups(t, groups, testDeck("deck", 1), GlobalOptions{})

	for _, op := range canvas.Pages[0].Ops {
		if op.Kind != "image" {
			continue
		}
		if op.Image.Clip == nil {
			t.Fatal("expected cover image to be clipped")
		}
		clip, box := *op.Image.Clip, op.Image.Box
		if box.W < clip.W-1e-9 || box.H < clip.H-1e-9 {
			t.Errorf("cover box %+v does not cover clip %+v", box, clip)
		}
	}
}

func TestAssembler_LinedBlank(t *testing.T) {
	cfg := gridConfig(2, 1)
	cfg.Border = false
	groups := []Group{{Name: "g", Entries: []PageEntry{BlankEntry(true), BlankEntry(false)}, Config: cfg}}
	canvas, _ := drawGroups(t, groups, ImageSet{}, GlobalOptions{})

	page := canvas.Pages[0]
	if page.count("image") != 0 {
		t.Error("blank entries must not draw images")
	}
	if page.count("fill") != 2 {
		t.Errorf("expected 2 filled cells, got %d", page.count("fill"))
	}
	if page.count("line") == 0 {
		t.Error("expected ruled lines in the lined blank")
	}
	if page.count("text") != 0 {
		t.Error("blank entries must not be labelled")
	}
}

func TestAssembler_DrawAfterDone(t *testing.T) {
	groups := []Group{{Name: "g", Entries: entries("deck", 1), Config: DefaultGroupConfig()}}
	plan, err := PlanDocument(groups, testDeck("deck", 1), GlobalOptions{})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	a := NewAssembler(&recordingCanvas{}, GlobalOptions{})
	if err := a.Draw(plan); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if err := a.Draw(plan); err == nil {
		t.Error("expected error when drawing with a finished assembler")
	}
}

func TestLabelPosition(t *testing.T) {
	cell := Rect{X: 100, Y: 100, W: 200, H: 100}
	tests := []struct {
		anchor Anchor
		x, y   float64
	}{
		{AnchorBottomLeft, 105, 105},
		{AnchorBottomRight, 275, 105},
		{AnchorTopLeft, 105, 185},
		{AnchorTopRight, 275, 185},
		{AnchorCenter, 190, 150 - 10.0/3},
		{"", 105, 105},
	}
	for _, tt := range tests {
		t.Run(string(tt.anchor), func(t *testing.T) {
			x, y := labelPosition(cell, tt.anchor, 20, 10)
			if x != tt.x || y != tt.y {
				t.Errorf("labelPosition(%s) = %.2f,%.2f; want %.2f,%.2f", tt.anchor, x, y, tt.x, tt.y)
			}
		})
	}
}

func TestAssembler_ZeroSizesUseDefaults(t *testing.T) {
	cfg := gridConfig(1, 1)
	cfg.Numbering = false
	cfg.Watermark = "DRAFT"
	cfg.WatermarkSize = 0
	cfg.WatermarkOpacity = 0
	groups := []Group{{Name: "g", Entries: entries("deck", 1), Config: cfg}}
	canvas, _ := drawGroups(t, groups, testDeck("deck", 1), GlobalOptions{})

	defaults := DefaultGroupConfig()
	ops := canvas.Pages[0].Ops
	if ops[0].Kind != "alpha" || ops[0].Alpha != defaults.WatermarkOpacity {
		t.Errorf("expected default watermark opacity %v, got %+v", defaults.WatermarkOpacity, ops[0])
	}
}

func TestWithTextDefaults(t *testing.T) {
	defaults := DefaultGroupConfig()
	got := GroupConfig{}.withTextDefaults()
	if got.NumberSize != defaults.NumberSize || got.WatermarkSize != defaults.WatermarkSize ||
		got.WatermarkOpacity != defaults.WatermarkOpacity || got.HeaderFooterSize != defaults.HeaderFooterSize {
		t.Errorf("expected sizes from DefaultGroupConfig, got %+v", got)
	}

	set := GroupConfig{NumberSize: 14, WatermarkSize: 30, WatermarkOpacity: 0.5, HeaderFooterSize: 11}
	if kept := set.withTextDefaults(); kept != set {
		t.Errorf("expected explicit sizes to be kept, got %+v", kept)
	}
}
