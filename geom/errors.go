package geom

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoMidpoint is returned when a perpendicular is requested for a line that
// was not built from two landmarks.
var ErrNoMidpoint = errors.New("line has no midpoint")

// InvalidScaleError reports a pixel-to-physical scale that is not a positive,
// finite number.
type InvalidScaleError struct {
	Scale float64
}

func (e *InvalidScaleError) Error() string {
	return fmt.Sprintf("invalid scale %g: must be a positive, finite number of physical units per pixel", e.Scale)
}

// DegenerateLandmarksError reports two landmarks at the same position, which
// leaves the midline without a direction.
type DegenerateLandmarksError struct {
	Left, Right Point
}

func (e *DegenerateLandmarksError) Error() string {
	return fmt.Sprintf("landmarks (%g, %g) and (%g, %g) coincide", e.Left.X, e.Left.Y, e.Right.X, e.Right.Y)
}

// CheckScale returns an *InvalidScaleError unless scale is positive and
// finite.
func CheckScale(scale float64) error {
	if !(scale > 0) || math.IsInf(scale, 1) {
		return &InvalidScaleError{Scale: scale}
	}

	return nil
}
