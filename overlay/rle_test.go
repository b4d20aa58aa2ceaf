package overlay

import (
	"testing"

	"github.com/tj/go-rle"
)

func TestRLERoundTripKeepsShape(t *testing.T) {
	grid, err := LabelGridFromRows([][]uint32{
		{0, 0, 0, 0, 0, 0},
		{0, 70000, 70000, 0, 0, 0},
		{0, 0, 0, 0, 4, 4},
	})
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := DecodeRLE(EncodeRLE(grid))
	if err != nil {
		t.Fatal(err)
	}

	if !decoded.SameSize(grid) {
		t.Fatalf("Expected %dx%d, got %dx%d", grid.Width, grid.Height, decoded.Width, decoded.Height)
	}
	for i := range grid.Labels {
		if grid.Labels[i] != decoded.Labels[i] {
			t.Fatalf("Position %d: expected %d, got %d", i, grid.Labels[i], decoded.Labels[i])
		}
	}
}

func TestDecodeRLERejectsBadShape(t *testing.T) {
	// Declares 3x3 but only carries 2 labels
	if _, err := DecodeRLE(rle.EncodeInt64([]int64{3, 3, 0, 1})); err == nil {
		t.Fatalf("Expected a shape error")
	}

	if _, err := DecodeRLE(rle.EncodeInt64([]int64{1, 1, -4})); err == nil {
		t.Fatalf("Expected an out of range label error")
	}
}

func TestDecodeRLERejectsOverflowingShape(t *testing.T) {
	cases := []struct {
		name   string
		values []int64
	}{
		// 2^32 * 2^32 wraps to 0 in 64 bits
		{"wraps to zero", []int64{1 << 32, 1 << 32}},
		{"wraps to the label count", []int64{1<<62 + 1, 4, 1, 2, 3, 4}},
		{"zero width", []int64{0, 1 << 40}},
		{"zero height", []int64{5, 0}},
		{"negative", []int64{-2, -2, 1, 2, 3, 4}},
	}

	for _, c := range cases {
		if g, err := DecodeRLE(rle.EncodeInt64(c.values)); err == nil {
			t.Fatalf("%s: expected a shape error, got a %dx%d grid with %d labels", c.name, g.Width, g.Height, len(g.Labels))
		}
	}

	empty, err := DecodeRLE(rle.EncodeInt64([]int64{0, 0}))
	if err != nil {
		t.Fatal(err)
	}
	if empty.Width != 0 || empty.Height != 0 || len(empty.Labels) != 0 {
		t.Fatalf("Expected an empty grid, got %+v", empty)
	}
}

func TestToGray16RoundTrip(t *testing.T) {
	grid, err := LabelGridFromRows([][]uint32{
		{0, 300, 300},
		{65535, 0, 1},
	})
	if err != nil {
		t.Fatal(err)
	}

	img, err := grid.ToGray16()
	if err != nil {
		t.Fatal(err)
	}

	back, err := LabelGridFromImage(img)
	if err != nil {
		t.Fatal(err)
	}
	for i := range grid.Labels {
		if back.Labels[i] != grid.Labels[i] {
			t.Fatalf("Position %d: expected %d, got %d", i, grid.Labels[i], back.Labels[i])
		}
	}

	grid.Set(0, 0, 70000)
	if _, err := grid.ToGray16(); err == nil {
		t.Fatalf("Expected an error for a label above 65535")
	}
}
