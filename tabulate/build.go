package tabulate

import (
	"strconv"

	"github.com/carbocation/submorph"
	"github.com/carbocation/submorph/sides"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/guregu/null.v3"
)

// Metadata identifies the animal and image a result came from.
type Metadata struct {
	MouseID  string
	Sex      string
	Genotype string
	Age      string

	// Micrometers per pixel, and the image size in micrometers
	Scale          float64
	PhysicalWidth  float64
	PhysicalHeight float64
}

// Build flattens res into rows.
func Build(meta Metadata, res submorph.Result) Tables {
	return Tables{
		Summary:      summaryRows(meta, res),
		Distribution: distributionRows(meta, res.Stats),
		Geometry:     []GeometryRow{geometryRow(meta, res)},
		Spatial:      spatialRows(meta, res.Stats),
	}
}

func summaryRows(meta Metadata, res submorph.Result) []SummaryRow {
	s := res.Stats
	g := res.Geometry

	base := SummaryRow{
		MouseID:            meta.MouseID,
		Sex:                meta.Sex,
		Genotype:           meta.Genotype,
		Age:                meta.Age,
		PixelToMicrometer:  meta.Scale,
		WidthInMicrometer:  meta.PhysicalWidth,
		HeightInMicrometer: meta.PhysicalHeight,
		SubArea:            g.Area,
		SubWidth:           g.Width,
		SubHeight:          g.Height,
	}

	sideRow := func(name string, side sides.SideStats) SummaryRow {
		row := base
		row.Side = name
		fillCells(&row, side.Cells.Count, side.Cells.Area, side.Cells.Areas)
		fillPlaques(&row, side.Plaques.Count, side.Plaques.Area, side.Plaques.Areas)
		row.OverlapArea = side.OverlapArea
		return row
	}

	left := sideRow(sides.Left.String(), s.Left)
	right := sideRow(sides.Right.String(), s.Right)

	total := base
	total.Side = "TOTAL"
	fillCells(&total, s.Total.CellCount, s.Total.CellArea, s.CellAreas)
	fillPlaques(&total, s.Total.PlaqueCount, s.Total.PlaqueArea, s.PlaqueAreas)
	total.IntraPlaquePct = fraction(s.Total.IntraPlaqueArea, g.Area)
	total.OverlapArea = s.Total.OverlapArea

	for _, row := range []*SummaryRow{&left, &right, &total} {
		row.CellAreaPct = fraction(row.TotalCellArea, g.Area)
		row.PlaqueAreaPct = fraction(row.TotalPlaqueArea, g.Area)
	}

	return []SummaryRow{left, right, total}
}

func fillCells(row *SummaryRow, count int, area float64, areas []float64) {
	row.NCells = count
	row.TotalCellArea = area
	row.MeanCellArea = fraction(area, float64(count))
	row.MedianCellArea, row.SDCellArea = medianSD(areas)
}

func fillPlaques(row *SummaryRow, count int, area float64, areas []float64) {
	row.NPlaques = count
	row.TotalPlaqueArea = area
	row.MeanPlaqueArea = fraction(area, float64(count))
	row.MedianPlaqueArea, row.SDPlaqueArea = medianSD(areas)
}

// fraction is 0 when the denominator is not positive.
func fraction(num, denom float64) float64 {
	if denom <= 0 {
		return 0
	}

	return num / denom
}

// medianSD returns zeroes for empty input, and a zero SD for a single value.
func medianSD(x []float64) (median, sd float64) {
	if len(x) == 0 {
		return 0, 0
	}

	median, err := stats.Median(stats.Float64Data(x))
	if err != nil {
		median = 0
	}

	if len(x) > 1 {
		_, sd = stat.MeanStdDev(x, nil)
	}

	return median, sd
}

func distributionRows(meta Metadata, s sides.Result) []DistributionRow {
	out := make([]DistributionRow, 0, 2*(len(s.CellAreas)+len(s.PlaqueAreas)))

	add := func(kind, side string, areas []float64) {
		for _, a := range areas {
			out = append(out, DistributionRow{MouseID: meta.MouseID, Type: kind, Side: side, AreaUm2: a})
		}
	}

	add("cell", "GLOBAL", s.CellAreas)
	add("plaque", "GLOBAL", s.PlaqueAreas)
	for _, side := range []sides.Side{sides.Left, sides.Right} {
		ss := s.Left
		if side == sides.Right {
			ss = s.Right
		}
		add("cell", side.String(), ss.Cells.Areas)
		add("plaque", side.String(), ss.Plaques.Areas)
	}

	return out
}

func geometryRow(meta Metadata, res submorph.Result) GeometryRow {
	g := res.Geometry
	mid := res.Midline
	div := res.DividingLine

	row := GeometryRow{
		MouseID:     meta.MouseID,
		SubAreaUm2:  g.Area,
		SubWidthUm:  g.Width,
		SubHeightUm: g.Height,

		MidlineSlope:        slopeText(mid.Slope),
		MidlineIntercept:    mid.Intercept,
		MidlineIsVertical:   mid.IsVertical,
		MidlineIsHorizontal: mid.IsHorizontal,

		DivlineSlope:        slopeText(div.Slope),
		DivlineIntercept:    div.Intercept,
		DivlineIsVertical:   div.IsVertical,
		DivlineIsHorizontal: div.IsHorizontal,

		BBoxMinRow:    g.BoundingBox.MinRow,
		BBoxMaxRow:    g.BoundingBox.MaxRow,
		BBoxMinCol:    g.BoundingBox.MinCol,
		BBoxMaxCol:    g.BoundingBox.MaxCol,
		SubPixels:     g.Pixels,
		SubComponents: g.Components,
	}

	if mid.Midpoint != nil {
		row.MidlineMidpointX = mid.Midpoint.X
		row.MidlineMidpointY = mid.Midpoint.Y
	}

	return row
}

func slopeText(s null.Float) string {
	if !s.Valid {
		return ""
	}

	return strconv.FormatFloat(s.Float64, 'g', -1, 64)
}

func spatialRows(meta Metadata, s sides.Result) []SpatialRow {
	out := make([]SpatialRow, 0, s.Total.CellCount+s.Total.PlaqueCount)

	add := func(kind string, side sides.Side, r sides.RegionStats) {
		for i, c := range r.Centroids {
			out = append(out, SpatialRow{
				MouseID: meta.MouseID,
				Type:    kind,
				Side:    side.String(),
				ID:      i + 1,
				XUm:     c.X,
				YUm:     c.Y,
				Label:   int64(r.Labels[i]),
			})
		}
	}

	add("cell", sides.Left, s.Left.Cells)
	add("cell", sides.Right, s.Right.Cells)
	add("plaque", sides.Left, s.Left.Plaques)
	add("plaque", sides.Right, s.Right.Plaques)

	return out
}
