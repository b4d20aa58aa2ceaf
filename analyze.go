// Package submorph measures cells and amyloid plaques within the subiculum,
// split by the line perpendicular to the subiculum's midline.
package submorph

import (
	"fmt"

	"github.com/carbocation/submorph/geom"
	"github.com/carbocation/submorph/overlay"
	"github.com/carbocation/submorph/sides"
)

// DefaultRegionForeground is the mask value that marks the subiculum in the
// reference region mask.
const DefaultRegionForeground = 255

// Input is everything needed to analyze one section. Landmarks are in pixels.
type Input struct {
	Cells   overlay.LabelGrid
	Plaques overlay.LabelGrid
	Region  overlay.LabelGrid

	RegionForeground uint32

	// Scale is in micrometers per pixel
	Scale float64

	LeftLandmark  geom.Point
	RightLandmark geom.Point

	Cohort sides.Cohort
}

// Result is the complete measurement of one section, in micrometers.
type Result struct {
	Geometry     overlay.Geometry
	Midline      geom.LineModel
	DividingLine geom.LineModel
	Stats        sides.Result
}

// Analyze measures the reference region, builds the midline between the two
// landmarks and the dividing line perpendicular to it, and aggregates cells and
// plaques by side. It either returns a complete Result or an error.
func Analyze(in Input) (Result, error) {
	var out Result
	var err error

	out.Geometry, err = overlay.RegionGeometry(in.Region, in.RegionForeground, in.Scale)
	if err != nil {
		return Result{}, fmt.Errorf("reference region: %w", err)
	}

	out.Midline, err = geom.ConnectingLine(in.LeftLandmark, in.RightLandmark, in.Scale)
	if err != nil {
		return Result{}, fmt.Errorf("midline: %w", err)
	}

	out.DividingLine, err = geom.PerpendicularLine(out.Midline)
	if err != nil {
		return Result{}, fmt.Errorf("dividing line: %w", err)
	}

	out.Stats, err = sides.Aggregate(in.Cells, in.Plaques, in.Scale, in.Cohort, *out.Midline.Midpoint, out.DividingLine.Direction)
	if err != nil {
		return Result{}, fmt.Errorf("aggregating regions: %w", err)
	}

	return out, nil
}
