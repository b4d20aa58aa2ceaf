package geom

import (
	"errors"
	"math"
	"testing"
)

func TestConnectingLineHorizontal(t *testing.T) {
	line, err := ConnectingLine(Point{0, 0}, Point{10, 0}, 1)
	if err != nil {
		t.Fatal(err)
	}

	if !line.IsHorizontal || line.IsVertical {
		t.Fatalf("Expected a horizontal line, got %+v", line)
	}
	if !line.Slope.Valid || line.Slope.Float64 != 0 {
		t.Fatalf("Expected slope 0, got %+v", line.Slope)
	}
	if line.Intercept != 0 {
		t.Fatalf("Expected intercept 0, got %g", line.Intercept)
	}
	if line.Midpoint == nil || *line.Midpoint != (Point{5, 0}) {
		t.Fatalf("Expected midpoint (5,0), got %v", line.Midpoint)
	}

	perp, err := PerpendicularLine(line)
	if err != nil {
		t.Fatal(err)
	}
	if !perp.IsVertical || perp.IsHorizontal || perp.Slope.Valid {
		t.Fatalf("Expected a vertical perpendicular, got %+v", perp)
	}
	if perp.Intercept != 5 {
		t.Fatalf("Expected perpendicular intercept 5, got %g", perp.Intercept)
	}
	if perp.Midpoint != nil {
		t.Fatalf("Perpendicular should not carry a midpoint")
	}
}

func TestConnectingLineVertical(t *testing.T) {
	for _, v := range []struct {
		Left, Right Point
		Scale       float64
	}{
		{Point{3, 0}, Point{3, 10}, 1},
		{Point{3, 10}, Point{3, 0}, 0.17},
		// dx is below the tolerance once scaled, even though it is not zero
		{Point{100, 5}, Point{100 + 1e-7, 900}, 1},
	} {
		line, err := ConnectingLine(v.Left, v.Right, v.Scale)
		if err != nil {
			t.Fatal(err)
		}

		if !line.IsVertical || line.IsHorizontal || line.Slope.Valid {
			t.Fatalf("%+v: expected vertical line with no slope, got %+v", v, line)
		}
		if line.Direction != (Point{0, 1}) {
			t.Fatalf("%+v: expected direction (0,1), got %v", v, line.Direction)
		}
		if math.Abs(line.Intercept-v.Left.X*v.Scale) > 1e-9 {
			t.Fatalf("%+v: expected intercept %g, got %g", v, v.Left.X*v.Scale, line.Intercept)
		}

		perp, err := PerpendicularLine(line)
		if err != nil {
			t.Fatal(err)
		}
		if !perp.IsHorizontal || perp.IsVertical {
			t.Fatalf("%+v: expected horizontal perpendicular, got %+v", v, perp)
		}
		if !perp.Slope.Valid || perp.Slope.Float64 != 0 {
			t.Fatalf("%+v: expected perpendicular slope 0, got %+v", v, perp.Slope)
		}
		if perp.Intercept != line.Midpoint.Y {
			t.Fatalf("%+v: expected perpendicular intercept %g, got %g", v, line.Midpoint.Y, perp.Intercept)
		}
	}
}

func TestPerpendicularIsOrthogonal(t *testing.T) {
	for _, v := range []struct {
		Left, Right Point
		Scale       float64
	}{
		{Point{0, 0}, Point{10, 10}, 1},
		{Point{1000, 2000}, Point{3500, 1200}, 0.1718},
		{Point{7, 3}, Point{-4, 12}, 2.5},
		{Point{5, 5}, Point{5, 6}, 1},
		{Point{5, 5}, Point{6, 5}, 1},
	} {
		line, err := ConnectingLine(v.Left, v.Right, v.Scale)
		if err != nil {
			t.Fatal(err)
		}

		perp, err := PerpendicularLine(line)
		if err != nil {
			t.Fatal(err)
		}

		if dot := line.Direction.Dot(perp.Direction); math.Abs(dot) > 1e-9 {
			t.Fatalf("%+v: directions %v and %v are not orthogonal (dot %g)", v, line.Direction, perp.Direction, dot)
		}
		if perp.Direction == (Point{}) {
			t.Fatalf("%+v: zero perpendicular direction", v)
		}
	}
}

func TestPerpendicularGeneralCase(t *testing.T) {
	line, err := ConnectingLine(Point{0, 0}, Point{4, 2}, 1)
	if err != nil {
		t.Fatal(err)
	}

	if line.Slope.Float64 != 0.5 || line.Intercept != 0 {
		t.Fatalf("Unexpected connecting line %+v", line)
	}

	perp, err := PerpendicularLine(line)
	if err != nil {
		t.Fatal(err)
	}

	// Passes through (2,1) with slope -2
	if perp.Slope.Float64 != -2 || perp.Intercept != 5 {
		t.Fatalf("Unexpected perpendicular %+v", perp)
	}
	if perp.Direction != (Point{-2, 4}) {
		t.Fatalf("Expected rotated direction (-2,4), got %v", perp.Direction)
	}
}

func TestConnectingLineErrors(t *testing.T) {
	for _, scale := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := ConnectingLine(Point{0, 0}, Point{1, 1}, scale)
		var scaleErr *InvalidScaleError
		if !errors.As(err, &scaleErr) {
			t.Fatalf("scale %g: expected *InvalidScaleError, got %v", scale, err)
		}
	}

	_, err := ConnectingLine(Point{4, 4}, Point{4, 4}, 1)
	var degenerate *DegenerateLandmarksError
	if !errors.As(err, &degenerate) {
		t.Fatalf("Expected *DegenerateLandmarksError, got %v", err)
	}

	if _, err := PerpendicularLine(LineModel{Direction: Point{1, 0}}); !errors.Is(err, ErrNoMidpoint) {
		t.Fatalf("Expected ErrNoMidpoint, got %v", err)
	}
}
