package layout

import "testing"

func TestValidateGrid_OutOfBounds(t *testing.T) {
	g := &Grid{
		Page:   Size{W: 300, H: 200},
		Usable: Rect{X: 10, Y: 10, W: 280, H: 180},
		Cells: []Rect{
			{X: 10, Y: 10, W: 100, H: 100},
			{X: 200, Y: 10, W: 100, H: 100}, // extends to 300, past 290
		},
	}
	warnings := ValidateGrid(g, 3)

	found := false
	for _, w := range warnings {
		if w.CellIndex == 1 && w.Severity == "error" && w.PageNumber == 3 {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected error for cell 1 beyond usable area, got %v", warnings)
	}
}

func TestValidateGrid_Overlap(t *testing.T) {
	g := &Grid{
		Usable: Rect{X: 0, Y: 0, W: 300, H: 200},
		Cells: []Rect{
			{X: 0, Y: 0, W: 150, H: 100},
			{X: 100, Y: 0, W: 150, H: 100},
		},
	}
	warnings := ValidateGrid(g, 1)

	found := false
	for _, w := range warnings {
		if w.Message == "cell 0 overlaps with cell 1" {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected overlap warning, got %v", warnings)
	}
}

func TestRectsOverlap_TouchingEdges(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 100, H: 100}
	b := Rect{X: 100, Y: 0, W: 100, H: 100}
	if rectsOverlap(a, b, 0.01) {
		t.Error("rectangles sharing an edge must not overlap")
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GroupConfig)
		wantErr bool
	}{
		{"defaults", func(*GroupConfig) {}, false},
		{"rotation 270", func(c *GroupConfig) { c.Rotation = 270 }, false},
		{"rotation 45", func(c *GroupConfig) { c.Rotation = 45 }, true},
		{"unknown fit", func(c *GroupConfig) { c.Fit = "stretch" }, true},
		{"unknown anchor", func(c *GroupConfig) { c.NumberAnchor = "middle" }, true},
		{"unknown quality", func(c *GroupConfig) { c.Quality = "ultra" }, true},
		{"opacity above one", func(c *GroupConfig) { c.WatermarkOpacity = 1.5 }, true},
		{"negative border", func(c *GroupConfig) { c.BorderWidth = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGroupConfig()
			tt.mutate(&cfg)
			err := validateConfig(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
