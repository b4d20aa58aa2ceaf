package overlay

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// PixelLabel returns the label stored at (x, y). Grayscale images (8 or 16
// bit) store the label directly in the gray value, which is how most instance
// segmentation tools export masks. Any other color model must use the
// label-encoded convention (ID 1 => #010101, etc).
func PixelLabel(img image.Image, x, y int) (uint32, error) {
	switch im := img.(type) {
	case *image.Gray16:
		return uint32(im.Gray16At(x, y).Y), nil
	case *image.Gray:
		return uint32(im.GrayAt(x, y).Y), nil
	}

	return LabeledPixelToID(img.At(x, y))
}

// LabeledPixelToID converts the label-encoded pixel (e.g., #010101) which is
// alpha-premultiplied into an ID in the range of 0-255
func LabeledPixelToID(c color.Color) (uint32, error) {

	// Find the color channel values for this pixel
	pr, pg, pb, a := c.RGBA()

	// Confirm that we're mapping ID 1 => #010101, etc
	if pr != pg || pg != pb || pr != pb {
		return 0, fmt.Errorf("Encoding expected to have equal values for R, G, and B. Instead, found %d, %d, %d", pr, pg, pb)
	}

	// Fully transparent pixels are background
	if a == 0 {
		return 0, nil
	}

	// Since each color channel is "alpha-premultiplied"
	// (https://golang.org/pkg/image/color/#RGBA), we need to divide by alpha
	// (scaling 0-1), then multiply by 255, to get what we're actually looking
	// for
	pixelID := uint32(math.Round(255 * float64(pr) / float64(a)))

	return pixelID, nil
}
