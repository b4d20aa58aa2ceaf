package main

import (
	"fmt"
	"io"

	"github.com/carbocation/submorph"
	"github.com/carbocation/submorph/tabulate"
)

func printSummary(w io.Writer, meta tabulate.Metadata, res submorph.Result) {
	s := res.Stats

	fmt.Fprintf(w, "\n=== %s (%s) ===\n", meta.MouseID, meta.Age)
	fmt.Fprintf(w, "Pixel size: %.5f μm/pixel\n", meta.Scale)
	fmt.Fprintf(w, "SUB Area: %.2f μm² (%.2f x %.2f μm)\n", res.Geometry.Area, res.Geometry.Width, res.Geometry.Height)

	fmt.Fprintf(w, "\n=== Overall Stat ===\n")
	fmt.Fprintf(w, "Cell Count: %d\n", s.Total.CellCount)
	fmt.Fprintf(w, "AB Area: %.2f μm²\n", s.Total.PlaqueArea)
	fmt.Fprintf(w, "Intra AB Area: %.2f μm²\n", s.Total.IntraPlaqueArea)

	for _, side := range []struct {
		name        string
		cellCount   int
		cellArea    float64
		plaqueCount int
		plaqueArea  float64
	}{
		{"Left", s.Left.Cells.Count, s.Left.Cells.Area, s.Left.Plaques.Count, s.Left.Plaques.Area},
		{"Right", s.Right.Cells.Count, s.Right.Cells.Area, s.Right.Plaques.Count, s.Right.Plaques.Area},
	} {
		fmt.Fprintf(w, "\n=== %s Stat ===\n", side.name)
		fmt.Fprintf(w, "%s Cell Count: %d\n", side.name, side.cellCount)
		fmt.Fprintf(w, "%s Cell Area: %.2f μm²\n", side.name, side.cellArea)
		fmt.Fprintf(w, "%s AB Count: %d\n", side.name, side.plaqueCount)
		fmt.Fprintf(w, "%s AB Area: %.2f μm²\n", side.name, side.plaqueArea)
	}
}
