// Package preview draws a QC image of one analysis: the subiculum, cells
// colored by the side they were assigned to, plaques, the midline, the
// dividing line and every region centroid.
package preview

import (
	"image"
	"image/color"
	"math"

	"github.com/carbocation/pfx"
	"github.com/carbocation/submorph"
	"github.com/carbocation/submorph/geom"
	"github.com/carbocation/submorph/overlay"
	"github.com/carbocation/submorph/sides"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

var (
	Background  = color.NRGBA{0, 0, 0, 255}
	RegionColor = color.NRGBA{60, 60, 60, 255}
	LeftColor   = color.NRGBA{50, 130, 255, 255}
	RightColor  = color.NRGBA{255, 150, 30, 255}
	PlaqueColor = color.NRGBA{230, 30, 200, 255}
	LineColor   = color.NRGBA{255, 255, 255, 255}
)

type Options struct {
	// Pixels of context kept around the subiculum's bounding box
	Dilation int

	// If positive, the preview is downscaled to at most this width
	MaxWidth int
}

// Render draws the preview in pixel space and crops it to the subiculum.
func Render(in submorph.Input, res submorph.Result, opts Options) image.Image {
	w, h := in.Region.Width, in.Region.Height

	cellSide := make(map[uint32]sides.Side)
	for _, l := range res.Stats.Left.Cells.Labels {
		cellSide[l] = sides.Left
	}
	for _, l := range res.Stats.Right.Cells.Labels {
		cellSide[l] = sides.Right
	}

	base := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := Background
			if in.Region.At(x, y) == in.RegionForeground {
				c = RegionColor
			}

			if x < in.Cells.Width && y < in.Cells.Height {
				if l := in.Cells.At(x, y); l != 0 {
					c = RightColor
					if cellSide[l] == sides.Left {
						c = LeftColor
					}
				}
				if in.Plaques.At(x, y) != 0 {
					c = PlaqueColor
				}
			}

			base.SetNRGBA(x, y, c)
		}
	}

	dc := gg.NewContextForImage(base)
	dc.SetColor(LineColor)
	dc.SetLineWidth(1)

	// Midline, landmark to landmark
	dc.DrawLine(in.LeftLandmark.X, in.LeftLandmark.Y, in.RightLandmark.X, in.RightLandmark.Y)
	dc.Stroke()

	// Dividing line, long enough to cross the whole image
	if res.Midline.Midpoint != nil {
		mid := res.Midline.Midpoint.Scale(1 / in.Scale)
		d := res.DividingLine.Direction
		norm := math.Hypot(d.X, d.Y)
		if norm > 0 {
			reach := float64(w + h)
			d = d.Scale(reach / norm)
			dc.DrawLine(mid.X-d.X, mid.Y-d.Y, mid.X+d.X, mid.Y+d.Y)
			dc.Stroke()
		}
	}

	drawCentroids(dc, res.Stats.Left.Cells.Centroids, in.Scale)
	drawCentroids(dc, res.Stats.Right.Cells.Centroids, in.Scale)
	drawCentroids(dc, res.Stats.Left.Plaques.Centroids, in.Scale)
	drawCentroids(dc, res.Stats.Right.Plaques.Centroids, in.Scale)

	return overlay.SubsetAndRescaleImage(dc.Image(), res.Geometry.BoundingBox, opts.Dilation, opts.MaxWidth)
}

// Centroids arrive in physical units.
func drawCentroids(dc *gg.Context, centroids []geom.Point, scale float64) {
	for _, c := range centroids {
		p := c.Scale(1 / scale)
		dc.DrawCircle(p.X, p.Y, 2)
		dc.Stroke()
	}
}

// Save writes img in the format implied by the path's extension.
func Save(path string, img image.Image) error {
	return pfx.Err(imaging.Save(img, path))
}
