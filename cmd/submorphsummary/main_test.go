package main

import (
	"bytes"
	"strings"
	"testing"
)

const distribution = `mouse_id,type,side,area_um2
m1,cell,GLOBAL,2
m1,cell,GLOBAL,4
m1,plaque,GLOBAL,1
m1,cell,LEFT,2
m1,cell,RIGHT,4
m1,plaque,LEFT,1
m2,cell,GLOBAL,6
m2,cell,RIGHT,6
`

func TestParseAndGroup(t *testing.T) {
	rows, err := parseDistribution([]byte(distribution))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 8 {
		t.Fatalf("Expected 8 rows, got %d", len(rows))
	}

	groups := groupAreas(rows, "")
	want := []struct {
		kind, side string
		n          int
	}{
		{"cell", "GLOBAL", 3},
		{"cell", "LEFT", 1},
		{"cell", "RIGHT", 2},
		{"plaque", "GLOBAL", 1},
		{"plaque", "LEFT", 1},
	}
	if len(groups) != len(want) {
		t.Fatalf("Expected %d groups, got %d", len(want), len(groups))
	}
	for i, w := range want {
		if groups[i].Type != w.kind || groups[i].Side != w.side || len(groups[i].Areas) != w.n {
			t.Fatalf("Group %d: expected %s/%s with %d areas, got %+v", i, w.kind, w.side, w.n, groups[i])
		}
	}

	if got := groupAreas(rows, "m2"); len(got) != 2 {
		t.Fatalf("Expected 2 groups for m2, got %d", len(got))
	}
}

func TestParseTabDelimited(t *testing.T) {
	rows, err := parseDistribution([]byte(strings.ReplaceAll(distribution, ",", "\t")))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 8 || rows[7].AreaUm2 != 6 || rows[7].Side != "RIGHT" {
		t.Fatalf("Unexpected rows %+v", rows)
	}
}

func TestPrintGroups(t *testing.T) {
	rows, err := parseDistribution([]byte(distribution))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := printGroups(&buf, groupAreas(rows, ""), "batch1"); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "Type\tSide\tLinePrefix\tN\tMean\tSD\tMedian\tMin\tMax" {
		t.Fatalf("Unexpected header %q", lines[0])
	}

	// Population SD of 2, 4, 6 is sqrt(8/3)
	if lines[1] != "cell\tGLOBAL\tbatch1\t3\t4.000\t1.633\t4.000\t2.000\t6.000" {
		t.Fatalf("Unexpected first row %q", lines[1])
	}

	if err := printHistograms(&buf, groupAreas(rows, ""), 5); err != nil {
		t.Fatal(err)
	}
}
