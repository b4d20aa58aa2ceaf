package overlay

import (
	"github.com/theodesp/unionfind"
)

// Following the guide at
// http://aishack.in/tutorials/connected-component-labelling/

// CountComponents returns the number of 4-connected components formed by the
// pixels of g equal to foreground. A reference region drawn as one shape
// should have exactly one.
func CountComponents(g LabelGrid, foreground uint32) int {
	// Provisional component ID per pixel; 0 means not foreground
	labels := make([]uint32, len(g.Labels))

	// Pairs of provisional IDs that touch and must be joined
	type merge struct{ a, b uint32 }
	merges := make([]merge, 0)

	var nextLabel uint32 = 1
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			i := y*g.Width + x
			if g.Labels[i] != foreground {
				continue
			}

			var up, left uint32
			if y > 0 && g.Labels[i-g.Width] == foreground {
				up = labels[i-g.Width]
			}
			if x > 0 && g.Labels[i-1] == foreground {
				left = labels[i-1]
			}

			switch {
			case up == 0 && left == 0:
				// Not adjacent to anything we've seen: it gets its own label
				labels[i] = nextLabel
				nextLabel++
			case up != 0 && left != 0:
				// Use the lower label, and note that the two must be joined
				labels[i] = up
				if left < up {
					labels[i] = left
				}
				if up != left {
					merges = append(merges, merge{up, left})
				}
			case up != 0:
				labels[i] = up
			default:
				labels[i] = left
			}
		}
	}

	// Now reconcile the adjacent labels
	uf := unionfind.New(int(nextLabel))
	for _, m := range merges {
		uf.Union(int(m.a), int(m.b))
	}

	roots := make(map[int]struct{})
	for label := 1; label < int(nextLabel); label++ {
		roots[uf.Root(label)] = struct{}{}
	}

	return len(roots)
}
