package layout

import (
	"math"
	"testing"
)

func TestEffectiveMapsBaseToVariant(t *testing.T) {
	tests := []struct {
		id       string
		dir      SplitDirection
		expected string
	}{
		{"single-top", SplitTopBottom, "single-top"},
		{"single-top", SplitLeftRight, "single-left"},
		{"dual-split", SplitLeftRight, "dual-split-lr"},
		{"triple-strip", SplitLeftRight, "triple-strip-lr"},
		{"quad-grid", SplitLeftRight, "quad-grid-lr"},
		{"full-bleed", SplitLeftRight, "full-bleed"},
		{"full-bleed", SplitTopBottom, "full-bleed"},
		// Stored variant ids normalize back to their base under tb.
		{"dual-split-lr", SplitTopBottom, "dual-split"},
		{"triple-strip-lr", SplitTopBottom, "triple-strip"},
		{"single-left", SplitTopBottom, "single-top"},
		{"single-left", SplitLeftRight, "single-left"},
	}

	for _, tt := range tests {
		got, err := Effective(tt.id, tt.dir)
		if err != nil {
			t.Fatalf("Effective(%q, %q): unexpected error: %v", tt.id, tt.dir, err)
		}
		if got.ID != tt.expected {
			t.Errorf("Effective(%q, %q): expected %q, got %q", tt.id, tt.dir, tt.expected, got.ID)
		}
	}
}

func TestEffectiveIsIdempotent(t *testing.T) {
	for _, d := range catalog {
		for _, dir := range []SplitDirection{SplitTopBottom, SplitLeftRight} {
			first, err := Effective(d.ID, dir)
			if err != nil {
				t.Fatalf("Effective(%q, %q): %v", d.ID, dir, err)
			}
			second, err := Effective(first.ID, dir)
			if err != nil {
				t.Fatalf("Effective(%q, %q): %v", first.ID, dir, err)
			}
			if first.ID != second.ID {
				t.Errorf("resolving %q twice under %q: %q then %q", d.ID, dir, first.ID, second.ID)
			}
		}
	}
}

func TestEffectiveUnknownID(t *testing.T) {
	if _, err := Effective("hexa-grid", SplitTopBottom); err == nil {
		t.Error("expected error for unknown layout id")
	}
}

func TestCatalogGeometry(t *testing.T) {
	for _, d := range catalog {
		if len(d.Slots) == 0 {
			t.Errorf("layout %q has no photo slots", d.ID)
		}
		if d.Grid.W <= 0 || d.Grid.H <= 0 {
			t.Errorf("layout %q has a degenerate grid region", d.ID)
		}
		for _, s := range d.Slots {
			if s.Rect.X < 0 || s.Rect.Y < 0 ||
				s.Rect.X+s.Rect.W > 1+1e-9 || s.Rect.Y+s.Rect.H > 1+1e-9 {
				t.Errorf("layout %q slot %q leaves the page: %+v", d.ID, s.ID, s.Rect)
			}
		}
	}
}

func TestSingleTopGeometry(t *testing.T) {
	d, ok := ByID("single-top")
	if !ok {
		t.Fatal("single-top missing from catalog")
	}
	if len(d.Slots) != 1 || d.Slots[0].ID != "main" {
		t.Fatalf("unexpected slots: %+v", d.Slots)
	}
	if math.Abs(d.Slots[0].Rect.H-0.55) > 1e-9 {
		t.Errorf("expected main slot height 0.55, got %f", d.Slots[0].Rect.H)
	}
	if math.Abs(d.Grid.Y-0.55) > 1e-9 || math.Abs(d.Grid.H-0.45) > 1e-9 {
		t.Errorf("unexpected grid region: %+v", d.Grid)
	}
}

func TestBaseIDsExcludeVariants(t *testing.T) {
	for _, id := range BaseIDs() {
		if _, isVariant := baseOf[id]; isVariant {
			t.Errorf("BaseIDs contains variant %q", id)
		}
	}
	if len(BaseIDs()) != 5 {
		t.Errorf("expected 5 base layouts, got %d", len(BaseIDs()))
	}
}
