// Package sides splits labeled cell and plaque regions into the two halves of
// a section, on either side of the dividing line, and aggregates their counts,
// areas and centroids.
package sides

import (
	"strings"

	"github.com/carbocation/submorph/geom"
)

type Side uint8

const (
	Right Side = iota
	Left
)

func (s Side) String() string {
	if s == Left {
		return "LEFT"
	}

	return "RIGHT"
}

// Classify reports which side of the dividing line p falls on. All three
// arguments must be in the same (physical) units: p, the midpoint the dividing
// line passes through, and the dividing line's direction.
//
// A point is Left when the cross product of (p - midpoint) and the direction is
// negative. This sign convention is inherited from earlier analyses and is kept
// so results remain comparable; it is not derived from anatomy. Points exactly
// on the line are Right.
func Classify(p, midpoint, perpendicular geom.Point) Side {
	if p.Sub(midpoint).Cross(perpendicular) < 0 {
		return Left
	}

	return Right
}

// Cohort is the age group of the animal a section came from.
type Cohort string

const (
	SixWeeks      Cohort = "6 weeks"
	TenWeeks      Cohort = "10 weeks"
	SixMonths     Cohort = "6 months"
	UnknownCohort Cohort = "NA"
)

// ParseCohort accepts either a menu key ("1", "2", "3") or a cohort name.
// Anything else is UnknownCohort.
func ParseCohort(input string) Cohort {
	switch c := strings.TrimSpace(input); c {
	case "1", string(SixWeeks):
		return SixWeeks
	case "2", string(TenWeeks):
		return TenWeeks
	case "3", string(SixMonths):
		return SixMonths
	}

	return UnknownCohort
}

// RemovesIntracellularPlaque is true for cohorts where plaque signal inside
// cell bodies is a segmentation artifact rather than real deposition.
func (c Cohort) RemovesIntracellularPlaque() bool {
	return c == SixWeeks
}
