package overlay

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// LabelGrid is a 2D label array stored row-major. Label 0 is background; each
// positive label is one region instance (one cell, one plaque).
type LabelGrid struct {
	Width  int
	Height int
	Labels []uint32
}

func NewLabelGrid(width, height int) LabelGrid {
	return LabelGrid{
		Width:  width,
		Height: height,
		Labels: make([]uint32, width*height),
	}
}

// LabelGridFromRows is mostly useful for building small grids by hand.
func LabelGridFromRows(rows [][]uint32) (LabelGrid, error) {
	if len(rows) == 0 {
		return LabelGrid{}, nil
	}

	out := NewLabelGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != out.Width {
			return LabelGrid{}, fmt.Errorf("Row %d has %d columns, but row 0 has %d", y, len(row), out.Width)
		}
		copy(out.Labels[y*out.Width:], row)
	}

	return out, nil
}

// LabelGridFromImage reads one label per pixel. See PixelLabel for how colors
// are interpreted.
func LabelGridFromImage(img image.Image) (LabelGrid, error) {
	b := img.Bounds()
	out := NewLabelGrid(b.Dx(), b.Dy())

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			id, err := PixelLabel(img, x, y)
			if err != nil {
				return LabelGrid{}, fmt.Errorf("pixel (%d, %d): %w", x, y, err)
			}
			out.Labels[(y-b.Min.Y)*out.Width+(x-b.Min.X)] = id
		}
	}

	return out, nil
}

func (g LabelGrid) At(x, y int) uint32 {
	return g.Labels[y*g.Width+x]
}

func (g LabelGrid) Set(x, y int, label uint32) {
	g.Labels[y*g.Width+x] = label
}

func (g LabelGrid) SameSize(other LabelGrid) bool {
	return g.Width == other.Width && g.Height == other.Height
}

// Clone returns a deep copy, so the result can be modified without touching g.
func (g LabelGrid) Clone() LabelGrid {
	out := LabelGrid{Width: g.Width, Height: g.Height, Labels: make([]uint32, len(g.Labels))}
	copy(out.Labels, g.Labels)

	return out
}

// Mask returns a grid with label 1 wherever g holds foreground and 0
// elsewhere.
func (g LabelGrid) Mask(foreground uint32) LabelGrid {
	out := NewLabelGrid(g.Width, g.Height)
	for i, v := range g.Labels {
		if v == foreground {
			out.Labels[i] = 1
		}
	}

	return out
}

// ToGray16 renders the grid as a 16-bit image holding one label per pixel, the
// inverse of LabelGridFromImage. Labels above 65535 cannot be represented.
func (g LabelGrid) ToGray16() (*image.Gray16, error) {
	out := image.NewGray16(image.Rect(0, 0, g.Width, g.Height))
	for i, v := range g.Labels {
		if v > math.MaxUint16 {
			return nil, fmt.Errorf("Label %d at (%d, %d) does not fit in 16 bits", v, i%g.Width, i/g.Width)
		}
		out.SetGray16(i%g.Width, i/g.Width, color.Gray16{Y: uint16(v)})
	}

	return out, nil
}
