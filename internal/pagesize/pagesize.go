// Package pagesize maps named print sizes to physical and raster dimensions.
package pagesize

import (
	"fmt"
	"math"
)

// Key identifies one of the supported print sizes.
type Key string

const (
	Key5x7    Key = "5x7"
	KeyLetter Key = "Letter"
	KeyA4     Key = "A4"
	Key11x17  Key = "11x17"
	Key13x19  Key = "13x19"
)

// Orientation selects portrait or landscape output.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

const (
	// DocumentPPI is the resolution of PDF document space (points per inch).
	DocumentPPI = 72.0
	// DefaultExportDPI is the raster resolution used when compositing photos.
	DefaultExportDPI = 300.0
)

// Def holds the physical dimensions of a page size in portrait orientation.
type Def struct {
	WidthIn  float64
	HeightIn float64
}

var sizes = map[Key]Def{
	Key5x7:    {WidthIn: 5, HeightIn: 7},
	KeyLetter: {WidthIn: 8.5, HeightIn: 11},
	KeyA4:     {WidthIn: 8.27, HeightIn: 11.69},
	Key11x17:  {WidthIn: 11, HeightIn: 17},
	Key13x19:  {WidthIn: 13, HeightIn: 19},
}

// Size is an integer pixel (or point) dimension pair.
type Size struct {
	Width  int
	Height int
}

// Keys returns the supported page size keys in display order.
func Keys() []Key {
	return []Key{Key5x7, KeyLetter, KeyA4, Key11x17, Key13x19}
}

// Valid reports whether the key names a supported page size.
func Valid(key Key) bool {
	_, ok := sizes[key]
	return ok
}

// ComputePixelSize converts a page size key and orientation to integer
// dimensions at the given resolution (units per inch). Landscape swaps
// width and height before scaling. Rounding is half-away-from-zero so
// the same inputs always produce the same output at any resolution.
func ComputePixelSize(key Key, orientation Orientation, resolution float64) (Size, error) {
	def, ok := sizes[key]
	if !ok {
		return Size{}, fmt.Errorf("unknown page size %q", key)
	}
	widthIn, heightIn := def.WidthIn, def.HeightIn
	if orientation == Landscape {
		widthIn, heightIn = heightIn, widthIn
	}
	return Size{
		Width:  int(math.Round(widthIn * resolution)),
		Height: int(math.Round(heightIn * resolution)),
	}, nil
}
