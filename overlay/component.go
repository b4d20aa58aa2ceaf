package overlay

type Coord struct {
	X, Y int
}

// Bounds is an inclusive pixel-space bounding box.
type Bounds struct {
	TopLeft     Coord
	BottomRight Coord
}

// RegionMoments are the raw per-label statistics gathered by Moments.
type RegionMoments struct {
	Label      uint32
	PixelCount int
	Bounds     Bounds

	// Sums of the column (X) and row (Y) index of every pixel in the region
	SumX, SumY float64
}

// Centroid returns the mean pixel column and mean pixel row of the region.
func (m RegionMoments) Centroid() (x, y float64) {
	if m.PixelCount == 0 {
		return 0, 0
	}

	return m.SumX / float64(m.PixelCount), m.SumY / float64(m.PixelCount)
}
