// Package layout holds the static catalog of month-page layouts and the
// effective-layout resolver that maps a layout id plus a split direction
// to a concrete slot/grid geometry.
package layout

import (
	"fmt"

	"github.com/kozaktomas/photo-calendar/internal/pagesize"
)

// Rect is a normalized rectangle in page-fraction coordinates, origin at
// the top-left of the page. All values are in [0, 1].
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Slot is a named photo region within a layout.
type Slot struct {
	ID   string `json:"slotId"`
	Rect Rect   `json:"rect"`
}

// SplitDirection says whether photos and the calendar grid are stacked
// top/bottom or placed side by side left/right.
type SplitDirection string

const (
	SplitTopBottom SplitDirection = "tb"
	SplitLeftRight SplitDirection = "lr"
)

// Def is an immutable catalog entry: photo slots plus one grid region.
type Def struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Slots        []Slot                 `json:"slots"`
	Grid         Rect                   `json:"grid"`
	Orientations []pagesize.Orientation `json:"supportedOrientations"`
}

var bothOrientations = []pagesize.Orientation{pagesize.Portrait, pagesize.Landscape}

var catalog = []Def{
	{
		ID: "single-top", Name: "Single Top", Orientations: bothOrientations,
		Slots: []Slot{{ID: "main", Rect: Rect{X: 0, Y: 0, W: 1, H: 0.55}}},
		Grid:  Rect{X: 0, Y: 0.55, W: 1, H: 0.45},
	},
	{
		ID: "single-left", Name: "Single Left", Orientations: bothOrientations,
		Slots: []Slot{{ID: "main", Rect: Rect{X: 0, Y: 0, W: 0.5, H: 1}}},
		Grid:  Rect{X: 0.5, Y: 0, W: 0.5, H: 1},
	},
	{
		ID: "full-bleed", Name: "Full Bleed", Orientations: bothOrientations,
		Slots: []Slot{{ID: "main", Rect: Rect{X: 0, Y: 0, W: 1, H: 0.65}}},
		Grid:  Rect{X: 0, Y: 0.65, W: 1, H: 0.35},
	},
	{
		ID: "dual-split", Name: "Dual Split", Orientations: bothOrientations,
		Slots: []Slot{
			{ID: "a", Rect: Rect{X: 0, Y: 0, W: 0.5, H: 0.50}},
			{ID: "b", Rect: Rect{X: 0.5, Y: 0, W: 0.5, H: 0.50}},
		},
		Grid: Rect{X: 0, Y: 0.50, W: 1, H: 0.50},
	},
	{
		ID: "triple-strip", Name: "Triple Strip", Orientations: bothOrientations,
		Slots: []Slot{
			{ID: "a", Rect: Rect{X: 0, Y: 0, W: 1.0 / 3, H: 0.50}},
			{ID: "b", Rect: Rect{X: 1.0 / 3, Y: 0, W: 1.0 / 3, H: 0.50}},
			{ID: "c", Rect: Rect{X: 2.0 / 3, Y: 0, W: 1.0 / 3, H: 0.50}},
		},
		Grid: Rect{X: 0, Y: 0.50, W: 1, H: 0.50},
	},
	{
		ID: "quad-grid", Name: "Quad Grid", Orientations: bothOrientations,
		Slots: []Slot{
			{ID: "a", Rect: Rect{X: 0, Y: 0, W: 0.5, H: 0.25}},
			{ID: "b", Rect: Rect{X: 0.5, Y: 0, W: 0.5, H: 0.25}},
			{ID: "c", Rect: Rect{X: 0, Y: 0.25, W: 0.5, H: 0.25}},
			{ID: "d", Rect: Rect{X: 0.5, Y: 0.25, W: 0.5, H: 0.25}},
		},
		Grid: Rect{X: 0, Y: 0.50, W: 1, H: 0.50},
	},
	{
		ID: "dual-split-lr", Name: "Dual Split (LR)", Orientations: bothOrientations,
		Slots: []Slot{
			{ID: "a", Rect: Rect{X: 0, Y: 0, W: 0.25, H: 1}},
			{ID: "b", Rect: Rect{X: 0.25, Y: 0, W: 0.25, H: 1}},
		},
		Grid: Rect{X: 0.5, Y: 0, W: 0.5, H: 1},
	},
	{
		ID: "triple-strip-lr", Name: "Triple Strip (LR)", Orientations: bothOrientations,
		Slots: []Slot{
			{ID: "a", Rect: Rect{X: 0, Y: 0, W: 1.0 / 6, H: 1}},
			{ID: "b", Rect: Rect{X: 1.0 / 6, Y: 0, W: 1.0 / 6, H: 1}},
			{ID: "c", Rect: Rect{X: 2.0 / 6, Y: 0, W: 1.0 / 6, H: 1}},
		},
		Grid: Rect{X: 0.5, Y: 0, W: 0.5, H: 1},
	},
	{
		ID: "quad-grid-lr", Name: "Quad Grid (LR)", Orientations: bothOrientations,
		Slots: []Slot{
			{ID: "a", Rect: Rect{X: 0, Y: 0, W: 0.25, H: 0.5}},
			{ID: "b", Rect: Rect{X: 0.25, Y: 0, W: 0.25, H: 0.5}},
			{ID: "c", Rect: Rect{X: 0, Y: 0.5, W: 0.25, H: 0.5}},
			{ID: "d", Rect: Rect{X: 0.25, Y: 0.5, W: 0.25, H: 0.5}},
		},
		Grid: Rect{X: 0.5, Y: 0, W: 0.5, H: 1},
	},
}

// lrVariant maps each top/bottom base layout to its left/right variant.
// Layouts absent from this table (full-bleed) have no variant and resolve
// to themselves for either split direction.
var lrVariant = map[string]string{
	"single-top":   "single-left",
	"dual-split":   "dual-split-lr",
	"triple-strip": "triple-strip-lr",
	"quad-grid":    "quad-grid-lr",
}

var (
	byID   map[string]*Def
	baseOf map[string]string // inverse of lrVariant
)

func init() {
	byID = make(map[string]*Def, len(catalog))
	for i := range catalog {
		byID[catalog[i].ID] = &catalog[i]
	}
	baseOf = make(map[string]string, len(lrVariant))
	for base, variant := range lrVariant {
		if _, ok := byID[base]; !ok {
			panic("layout: variant table references unknown base layout " + base)
		}
		if _, ok := byID[variant]; !ok {
			panic("layout: variant table references unknown variant layout " + variant)
		}
		if _, dup := baseOf[variant]; dup {
			panic("layout: variant " + variant + " mapped from more than one base")
		}
		if _, isBase := lrVariant[variant]; isBase {
			panic("layout: " + variant + " cannot be both a base and a variant")
		}
		baseOf[variant] = base
	}
}

// ByID looks up a catalog entry by its id.
func ByID(id string) (*Def, bool) {
	d, ok := byID[id]
	return d, ok
}

// BaseIDs returns the ids of all base (top/bottom) layouts, the set a
// month may be assigned in project settings.
func BaseIDs() []string {
	var ids []string
	for _, d := range catalog {
		if _, isVariant := baseOf[d.ID]; !isVariant {
			ids = append(ids, d.ID)
		}
	}
	return ids
}

// Effective resolves a layout id against a split direction. The result is
// total over known ids and idempotent: resolving the returned layout's id
// with the same direction yields the same layout. Left/right-specific ids
// are normalized back to their base before the direction is applied, so a
// stored "-lr" id under a tb split still resolves to the base layout.
// An unknown id is a configuration error, never a silent default.
func Effective(id string, dir SplitDirection) (*Def, error) {
	if _, ok := byID[id]; !ok {
		return nil, fmt.Errorf("unknown layout id %q", id)
	}
	mapped := id
	if base, ok := baseOf[mapped]; ok {
		mapped = base
	}
	if dir == SplitLeftRight {
		if variant, ok := lrVariant[mapped]; ok {
			mapped = variant
		}
	}
	return byID[mapped], nil
}
