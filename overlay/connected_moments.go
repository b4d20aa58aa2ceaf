package overlay

import (
	"sort"
)

// Moments computes the pixel count, coordinate sums and bounds of every
// positive label in g with a single pass over the grid. The result is sorted by
// ascending label.
func Moments(g LabelGrid) []RegionMoments {
	buckets := make(map[uint32]*RegionMoments)

	for y := 0; y < g.Height; y++ {
		row := g.Labels[y*g.Width : (y+1)*g.Width]
		for x, label := range row {
			if label == 0 {
				continue
			}

			m, exists := buckets[label]
			if !exists {
				m = &RegionMoments{
					Label: label,
					Bounds: Bounds{
						TopLeft:     Coord{X: x, Y: y},
						BottomRight: Coord{X: x, Y: y},
					},
				}
				buckets[label] = m
			}

			m.PixelCount++
			m.SumX += float64(x)
			m.SumY += float64(y)

			// Rows are visited in order, so only the bottom edge and the
			// columns can still move
			if x < m.Bounds.TopLeft.X {
				m.Bounds.TopLeft.X = x
			}
			if x > m.Bounds.BottomRight.X {
				m.Bounds.BottomRight.X = x
			}
			m.Bounds.BottomRight.Y = y
		}
	}

	out := make([]RegionMoments, 0, len(buckets))
	for _, m := range buckets {
		out = append(out, *m)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Label < out[j].Label
	})

	return out
}

// CountOverlap returns the number of positions that are foreground in both a
// and b. The grids must be the same size.
func CountOverlap(a, b LabelGrid) int {
	n := 0
	for i, v := range a.Labels {
		if v != 0 && b.Labels[i] != 0 {
			n++
		}
	}

	return n
}
