package overlay

import (
	"image"

	"github.com/disintegration/imaging"
)

const (
	WhichPointBottomRight = "br"
	WhichPointTopLeft     = "tl"
)

// SubsetAndRescaleImage crops baseImg to the bounding box, grown by dilation
// pixels on every side, and then resizes the crop so that it is at most
// maxWidth pixels wide. A maxWidth of 0 leaves the crop at its native size.
func SubsetAndRescaleImage(baseImg image.Image, bb BoundingBox, dilation, maxWidth int) image.Image {
	imgBounds := baseImg.Bounds()

	// BoundingBox is inclusive; image.Rectangle excludes its Max
	topLeftX := DilateDimension(bb.MinCol, imgBounds.Max.X, dilation, WhichPointTopLeft)
	topLeftY := DilateDimension(bb.MinRow, imgBounds.Max.Y, dilation, WhichPointTopLeft)
	bottomRightX := DilateDimension(bb.MaxCol+1, imgBounds.Max.X, dilation, WhichPointBottomRight)
	bottomRightY := DilateDimension(bb.MaxRow+1, imgBounds.Max.Y, dilation, WhichPointBottomRight)

	// First extract the bounded region of interest
	cutImg := imaging.Crop(baseImg, image.Rect(topLeftX, topLeftY, bottomRightX, bottomRightY))

	if maxWidth <= 0 || cutImg.Bounds().Dx() <= maxWidth {
		return cutImg
	}

	return imaging.Resize(cutImg, maxWidth, 0, imaging.Lanczos)
}

// DilateDimension expands an axis by "dilationFactor" pixels (additive). It
// basically adds or subtracts pixels, while paying attention to not allow the
// lower bound of the image to go below 0.
func DilateDimension(pos, max, dilationFactor int, direction string) int {
	out := pos
	if direction == WhichPointBottomRight {
		out = out + dilationFactor
	} else {
		out = out - dilationFactor
	}

	if out < 0 {
		out = 0
	}
	if out > max {
		out = max
	}

	return out
}
