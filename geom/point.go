// Package geom holds the midline and dividing-line model used to split a
// section into left and right halves.
package geom

// Point is a 2D coordinate. Whether it is in pixels or physical units is up to
// the caller; functions in this package document which one they expect.
type Point struct {
	X, Y float64
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale multiplies both coordinates by factor, e.g., to convert from pixels to
// micrometers.
func (p Point) Scale(factor float64) Point {
	return Point{X: p.X * factor, Y: p.Y * factor}
}

// Dot is the dot product of p and q treated as vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross is the z component of the cross product of p and q treated as vectors.
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}
