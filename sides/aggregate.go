package sides

import (
	"fmt"

	"github.com/carbocation/submorph/geom"
	"github.com/carbocation/submorph/overlay"
)

// RegionStats accumulates the regions of one population (cells or plaques)
// that fell on one side. Labels, Areas and Centroids are paired 1:1 and ordered
// by ascending label.
type RegionStats struct {
	Count int

	// Area is the summed area in squared physical units
	Area float64

	Labels    []uint32
	Areas     []float64
	Centroids []geom.Point
}

func (r *RegionStats) add(label uint32, area float64, centroid geom.Point) {
	r.Count++
	r.Area += area
	r.Labels = append(r.Labels, label)
	r.Areas = append(r.Areas, area)
	r.Centroids = append(r.Centroids, centroid)
}

// MeanArea is 0 when there are no regions.
func (r RegionStats) MeanArea() float64 {
	if r.Count == 0 {
		return 0
	}

	return r.Area / float64(r.Count)
}

type SideStats struct {
	Cells   RegionStats
	Plaques RegionStats

	// OverlapArea is the cell/plaque overlap on this side, measured after any
	// cohort-specific plaque removal.
	OverlapArea float64
}

type Totals struct {
	CellCount   int
	CellArea    float64
	PlaqueCount int
	PlaqueArea  float64

	// IntraPlaqueArea is the plaque area inside cell bodies, measured before
	// any cohort-specific plaque removal.
	IntraPlaqueArea float64

	// OverlapArea is Left.OverlapArea + Right.OverlapArea.
	OverlapArea float64
}

type Result struct {
	Left  SideStats
	Right SideStats
	Total Totals

	// Areas of every region regardless of side, in ascending label order
	CellAreas   []float64
	PlaqueAreas []float64
}

func (r *Result) side(s Side) *SideStats {
	if s == Left {
		return &r.Left
	}

	return &r.Right
}

// DimensionMismatchError is returned when the cell and plaque grids do not
// cover the same pixels.
type DimensionMismatchError struct {
	Cells, Plaques [2]int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("Cell mask is %dx%d but plaque mask is %dx%d", e.Cells[0], e.Cells[1], e.Plaques[0], e.Plaques[1])
}

// Aggregate classifies every cell and plaque region by the side of the
// dividing line its centroid falls on and accumulates per-side and global
// statistics. midpoint and perpendicular are in physical units; scale converts
// pixels to those units.
//
// Two overlap measures are reported and are deliberately not unified.
// Total.IntraPlaqueArea is measured on the plaque grid as given. For cohorts
// that remove intracellular plaque, the per-side OverlapArea is measured after
// that removal, so it is expected to be (near) zero for those cohorts.
//
// Overlap pixels are classified at their physical position (column*scale,
// row*scale), the same frame as the centroids. Earlier tooling compared raw
// pixel indices against the physical midpoint, so the per-side OverlapArea
// will not match its output whenever scale != 1.
//
// Neither grid is modified.
func Aggregate(cells, plaques overlay.LabelGrid, scale float64, cohort Cohort, midpoint, perpendicular geom.Point) (Result, error) {
	if err := geom.CheckScale(scale); err != nil {
		return Result{}, err
	}

	if !cells.SameSize(plaques) {
		return Result{}, &DimensionMismatchError{
			Cells:   [2]int{cells.Width, cells.Height},
			Plaques: [2]int{plaques.Width, plaques.Height},
		}
	}

	pixelArea := scale * scale

	out := Result{
		CellAreas:   make([]float64, 0),
		PlaqueAreas: make([]float64, 0),
	}

	// Measured on the original labeling
	out.Total.IntraPlaqueArea = float64(overlay.CountOverlap(cells, plaques)) * pixelArea

	if cohort.RemovesIntracellularPlaque() {
		plaques = plaques.Clone()
		for i, v := range cells.Labels {
			if v != 0 {
				plaques.Labels[i] = 0
			}
		}
	}

	for _, m := range overlay.Moments(cells) {
		area, centroid := physical(m, scale)
		out.CellAreas = append(out.CellAreas, area)
		out.side(Classify(centroid, midpoint, perpendicular)).Cells.add(m.Label, area, centroid)
	}

	for _, m := range overlay.Moments(plaques) {
		area, centroid := physical(m, scale)
		out.PlaqueAreas = append(out.PlaqueAreas, area)
		out.side(Classify(centroid, midpoint, perpendicular)).Plaques.add(m.Label, area, centroid)
	}

	// Side split of the remaining overlap, pixel by pixel
	var leftOverlap, rightOverlap int
	for y := 0; y < cells.Height; y++ {
		for x := 0; x < cells.Width; x++ {
			i := y*cells.Width + x
			if cells.Labels[i] == 0 || plaques.Labels[i] == 0 {
				continue
			}

			p := geom.Point{X: float64(x) * scale, Y: float64(y) * scale}
			if Classify(p, midpoint, perpendicular) == Left {
				leftOverlap++
			} else {
				rightOverlap++
			}
		}
	}
	out.Left.OverlapArea = float64(leftOverlap) * pixelArea
	out.Right.OverlapArea = float64(rightOverlap) * pixelArea

	out.Total.CellCount = out.Left.Cells.Count + out.Right.Cells.Count
	out.Total.CellArea = out.Left.Cells.Area + out.Right.Cells.Area
	out.Total.PlaqueCount = out.Left.Plaques.Count + out.Right.Plaques.Count
	out.Total.PlaqueArea = out.Left.Plaques.Area + out.Right.Plaques.Area
	out.Total.OverlapArea = out.Left.OverlapArea + out.Right.OverlapArea

	return out, nil
}

// physical converts a region's pixel count and centroid into physical units.
func physical(m overlay.RegionMoments, scale float64) (float64, geom.Point) {
	x, y := m.Centroid()

	return float64(m.PixelCount) * scale * scale, geom.Point{X: x * scale, Y: y * scale}
}
