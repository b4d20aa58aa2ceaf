package geom

import (
	"math"

	"gopkg.in/guregu/null.v3"
)

// Tolerance is the displacement (in physical units) below which a line is
// treated as vertical, and the slope magnitude below which it is treated as
// horizontal. Floating point deltas are rarely exactly zero, so this is not a
// zero check.
const Tolerance = 1e-6

// LineModel is a directed line in physical units.
type LineModel struct {
	// Slope is invalid (null) if and only if the line is vertical.
	Slope null.Float

	// Intercept is the y-intercept, except for vertical lines where it holds
	// the line's constant x coordinate.
	Intercept float64

	// Direction is never the zero vector.
	Direction Point

	IsVertical   bool
	IsHorizontal bool

	// Midpoint is only set on the line connecting the two landmarks.
	Midpoint *Point
}

// ConnectingLine builds the midline joining the left and right landmarks,
// which are given in pixels. scale is in physical units per pixel; the
// returned line is in physical units.
func ConnectingLine(left, right Point, scale float64) (LineModel, error) {
	if err := CheckScale(scale); err != nil {
		return LineModel{}, err
	}

	if left == right {
		return LineModel{}, &DegenerateLandmarksError{Left: left, Right: right}
	}

	p1 := left.Scale(scale)
	p2 := right.Scale(scale)

	mid := Point{X: (p1.X + p2.X) / 2, Y: (p1.Y + p2.Y) / 2}

	dx := p2.X - p1.X
	dy := p2.Y - p1.Y

	if math.Abs(dx) < Tolerance {
		return LineModel{
			Intercept:  p1.X,
			Direction:  Point{X: 0, Y: 1},
			IsVertical: true,
			Midpoint:   &mid,
		}, nil
	}

	slope := dy / dx

	return LineModel{
		Slope:        null.FloatFrom(slope),
		Intercept:    p1.Y - slope*p1.X,
		Direction:    Point{X: dx, Y: dy},
		IsHorizontal: math.Abs(slope) < Tolerance,
		Midpoint:     &mid,
	}, nil
}

// PerpendicularLine builds the dividing line: the line through the connecting
// line's midpoint, perpendicular to it. The result carries no midpoint of its
// own; its position is implied by the connecting line's midpoint.
func PerpendicularLine(connecting LineModel) (LineModel, error) {
	if connecting.Midpoint == nil {
		return LineModel{}, ErrNoMidpoint
	}
	mid := *connecting.Midpoint

	if connecting.IsVertical {
		return LineModel{
			Slope:        null.FloatFrom(0),
			Intercept:    mid.Y,
			Direction:    Point{X: 1, Y: 0},
			IsHorizontal: true,
		}, nil
	}

	if connecting.IsHorizontal {
		return LineModel{
			Intercept:  mid.X,
			Direction:  Point{X: 0, Y: 1},
			IsVertical: true,
		}, nil
	}

	slope := -1 / connecting.Slope.Float64

	return LineModel{
		Slope:     null.FloatFrom(slope),
		Intercept: mid.Y - slope*mid.X,

		// Rotate the connecting direction by 90 degrees
		Direction: Point{X: -connecting.Direction.Y, Y: connecting.Direction.X},
	}, nil
}
