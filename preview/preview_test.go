package preview

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/carbocation/submorph"
	"github.com/carbocation/submorph/geom"
	"github.com/carbocation/submorph/overlay"
	"github.com/carbocation/submorph/sides"
	"github.com/disintegration/imaging"
)

// A 40x20 section with one 8x8 cell on each side of the dividing line at
// x = 19.5 and the midline along y = 15.
func testSection(t *testing.T) (submorph.Input, submorph.Result) {
	region := overlay.NewLabelGrid(40, 20)
	for i := range region.Labels {
		region.Labels[i] = submorph.DefaultRegionForeground
	}

	cells := overlay.NewLabelGrid(40, 20)
	for y := 2; y < 10; y++ {
		for x := 2; x < 10; x++ {
			cells.Set(x, y, 1)
			cells.Set(x+28, y, 2)
		}
	}

	in := submorph.Input{
		Cells:            cells,
		Plaques:          overlay.NewLabelGrid(40, 20),
		Region:           region,
		RegionForeground: submorph.DefaultRegionForeground,
		Scale:            0.5,
		LeftLandmark:     geom.Point{X: 0, Y: 15},
		RightLandmark:    geom.Point{X: 39, Y: 15},
		Cohort:           sides.SixMonths,
	}

	res, err := submorph.Analyze(in)
	if err != nil {
		t.Fatal(err)
	}

	return in, res
}

func sameColor(a, b color.Color) bool {
	return color.NRGBAModel.Convert(a) == color.NRGBAModel.Convert(b)
}

func TestRenderColorsBySide(t *testing.T) {
	in, res := testSection(t)

	img := Render(in, res, Options{})
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 20 {
		t.Fatalf("Expected a 40x20 preview, got %v", img.Bounds())
	}

	// Corners of each cell, away from the centroid markers and the lines
	if c := img.At(2, 9); !sameColor(c, LeftColor) {
		t.Fatalf("Expected the left cell to be drawn in %v, got %v", LeftColor, c)
	}
	if c := img.At(30, 9); !sameColor(c, RightColor) {
		t.Fatalf("Expected the right cell to be drawn in %v, got %v", RightColor, c)
	}
	if c := img.At(15, 4); !sameColor(c, RegionColor) {
		t.Fatalf("Expected the subiculum to be drawn in %v, got %v", RegionColor, c)
	}
}

func TestRenderCropsAndScales(t *testing.T) {
	in, res := testSection(t)

	// Shrink the subiculum so the crop is visible
	in.Region = overlay.NewLabelGrid(40, 20)
	for y := 5; y < 15; y++ {
		for x := 10; x < 30; x++ {
			in.Region.Set(x, y, submorph.DefaultRegionForeground)
		}
	}
	res.Geometry.BoundingBox = overlay.BoundingBox{MinRow: 5, MaxRow: 14, MinCol: 10, MaxCol: 29}

	img := Render(in, res, Options{Dilation: 2})
	if img.Bounds().Dx() != 24 || img.Bounds().Dy() != 14 {
		t.Fatalf("Expected a 24x14 crop, got %v", img.Bounds())
	}

	img = Render(in, res, Options{Dilation: 2, MaxWidth: 12})
	if img.Bounds().Dx() != 12 || img.Bounds().Dy() != 7 {
		t.Fatalf("Expected a 12x7 downscaled crop, got %v", img.Bounds())
	}
}

func TestSave(t *testing.T) {
	in, res := testSection(t)

	path := filepath.Join(t.TempDir(), "preview.png")
	if err := Save(path, Render(in, res, Options{})); err != nil {
		t.Fatal(err)
	}

	img, err := imaging.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 40 {
		t.Fatalf("Expected the saved preview to be 40 pixels wide, got %d", img.Bounds().Dx())
	}
}
