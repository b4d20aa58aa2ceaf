package overlay

import (
	"fmt"

	"github.com/carbocation/submorph/geom"
)

// BoundingBox is inclusive on both ends, in pixel rows and columns.
type BoundingBox struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
}

// Geometry describes a whole reference region in physical units.
type Geometry struct {
	Pixels int

	// Area is in squared physical units; Width and Height in physical units.
	Area   float64
	Width  float64
	Height float64

	BoundingBox BoundingBox

	// Components is the number of 4-connected pieces the region is drawn in.
	Components int
}

// EmptyRegionError is returned when a mask has no pixel with the requested
// foreground value.
type EmptyRegionError struct {
	Foreground uint32
}

func (e *EmptyRegionError) Error() string {
	return fmt.Sprintf("No pixels with foreground value %d were found in the region mask", e.Foreground)
}

// RegionGeometry measures the region of mask whose pixels equal foreground.
// Width and height count the columns and rows the region spans, so a single
// pixel is one pixel wide, not zero.
func RegionGeometry(mask LabelGrid, foreground uint32, scale float64) (Geometry, error) {
	if err := geom.CheckScale(scale); err != nil {
		return Geometry{}, err
	}

	var out Geometry
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			if mask.Labels[y*mask.Width+x] != foreground {
				continue
			}

			if out.Pixels == 0 {
				out.BoundingBox = BoundingBox{MinRow: y, MaxRow: y, MinCol: x, MaxCol: x}
			}
			out.Pixels++

			if x < out.BoundingBox.MinCol {
				out.BoundingBox.MinCol = x
			}
			if x > out.BoundingBox.MaxCol {
				out.BoundingBox.MaxCol = x
			}
			out.BoundingBox.MaxRow = y
		}
	}

	if out.Pixels == 0 {
		return Geometry{}, &EmptyRegionError{Foreground: foreground}
	}

	bb := out.BoundingBox
	out.Area = float64(out.Pixels) * scale * scale
	out.Width = float64(bb.MaxCol-bb.MinCol+1) * scale
	out.Height = float64(bb.MaxRow-bb.MinRow+1) * scale
	out.Components = CountComponents(mask, foreground)

	return out, nil
}
