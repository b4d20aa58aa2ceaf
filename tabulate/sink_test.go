package tabulate

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/carbocation/submorph"
	"github.com/carbocation/submorph/geom"
	"github.com/carbocation/submorph/overlay"
	"github.com/carbocation/submorph/sides"
	"github.com/gocarina/gocsv"
)

func countLines(t *testing.T, path string) int {
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	return bytes.Count(b, []byte("\n"))
}

func TestCSVSinkHeaderOnce(t *testing.T) {
	sink, err := NewCSVSink(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}

	tables := Build(testMeta, testResult(t))
	for i := 0; i < 2; i++ {
		if err := sink.Write(context.Background(), tables); err != nil {
			t.Fatal(err)
		}
	}

	cases := []struct {
		table  string
		header string
		rows   int
	}{
		{SummaryTable, "mouse_id,sex,genotype,age,pixel_to_micrometer", 3},
		{DistributionTable, "mouse_id,type,side,area_um2", len(tables.Distribution)},
		{GeometryTable, "mouse_id,sub_area_um2,sub_width_um,sub_height_um,midline_slope,midline_intercept", 1},
		{SpatialTable, "mouse_id,type,side,id,x_um,y_um,label", len(tables.Spatial)},
	}

	for _, c := range cases {
		path := sink.Path(c.table)

		if got := countLines(t, path); got != 1+2*c.rows {
			t.Fatalf("%s: expected %d lines, got %d", c.table, 1+2*c.rows, got)
		}

		b, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(string(b), c.header) {
			t.Fatalf("%s: expected header to start with %q, got %q", c.table, c.header, strings.SplitN(string(b), "\n", 2)[0])
		}
		if strings.Count(string(b), c.header) != 1 {
			t.Fatalf("%s: expected exactly one header", c.table)
		}
	}
}

var geometryHeader = []string{
	"mouse_id", "sub_area_um2", "sub_width_um", "sub_height_um",
	"midline_slope", "midline_intercept", "midline_midpoint_x", "midline_midpoint_y",
	"midline_is_vertical", "midline_is_horizontal",
	"divline_slope", "divline_intercept", "divline_is_vertical", "divline_is_horizontal",
	"bbox_min_row", "bbox_max_row", "bbox_min_col", "bbox_max_col",
	"sub_pixels", "sub_components",
}

// verticalMidlineResult analyzes an empty 4x4 section whose landmarks share a
// column, so the midline has no slope.
func verticalMidlineResult(t *testing.T) submorph.Result {
	region := overlay.NewLabelGrid(4, 4)
	for i := range region.Labels {
		region.Labels[i] = submorph.DefaultRegionForeground
	}

	res, err := submorph.Analyze(submorph.Input{
		Cells:            overlay.NewLabelGrid(4, 4),
		Plaques:          overlay.NewLabelGrid(4, 4),
		Region:           region,
		RegionForeground: submorph.DefaultRegionForeground,
		Scale:            1,
		LeftLandmark:     geom.Point{X: 1, Y: 0},
		RightLandmark:    geom.Point{X: 1, Y: 3},
		Cohort:           sides.TenWeeks,
	})
	if err != nil {
		t.Fatal(err)
	}

	return res
}

func TestCSVSinkGeometryColumns(t *testing.T) {
	sink, err := NewCSVSink(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	results := []submorph.Result{testResult(t), verticalMidlineResult(t)}
	for _, res := range results {
		if err := sink.Write(context.Background(), Build(testMeta, res)); err != nil {
			t.Fatal(err)
		}
	}

	f, err := os.Open(sink.Path(GeometryTable))
	if err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(f).ReadAll()
	f.Close()
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 1+len(results) {
		t.Fatalf("Expected a header and %d rows, got %d records", len(results), len(records))
	}
	if got := strings.Join(records[0], ","); got != strings.Join(geometryHeader, ",") {
		t.Fatalf("Expected header %v, got %v", geometryHeader, records[0])
	}
	for i, rec := range records[1:] {
		if len(rec) != len(geometryHeader) {
			t.Fatalf("Row %d: expected %d columns, got %d", i, len(geometryHeader), len(rec))
		}
	}

	f, err = os.Open(sink.Path(GeometryTable))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var rows []GeometryRow
	if err := gocsv.UnmarshalCSV(csv.NewReader(f), &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 geometry rows, got %d", len(rows))
	}

	if rows[0].MidlineSlope != "0" || rows[0].DivlineSlope != "" || !rows[0].DivlineIsVertical {
		t.Fatalf("Expected a horizontal midline and vertical dividing line, got %+v", rows[0])
	}
	if rows[1].MidlineSlope != "" || !rows[1].MidlineIsVertical || rows[1].MidlineIntercept != 1 {
		t.Fatalf("Expected a vertical midline at x=1 with an empty slope, got %+v", rows[1])
	}
	if rows[1].MidlineMidpointX != 1 || rows[1].MidlineMidpointY != 1.5 {
		t.Fatalf("Expected midpoint (1, 1.5), got (%g, %g)", rows[1].MidlineMidpointX, rows[1].MidlineMidpointY)
	}
}

func TestCSVSinkSkipsEmptyTables(t *testing.T) {
	sink, err := NewCSVSink(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	tables := Build(testMeta, testResult(t))
	tables.Distribution = nil
	tables.Spatial = nil

	if err := sink.Write(context.Background(), tables); err != nil {
		t.Fatal(err)
	}

	for _, table := range []string{DistributionTable, SpatialTable} {
		if _, err := os.Stat(sink.Path(table)); !os.IsNotExist(err) {
			t.Fatalf("%s: expected no file, got err=%v", table, err)
		}
	}

	if countLines(t, sink.Path(SummaryTable)) != 4 {
		t.Fatalf("Expected a header and 3 summary rows")
	}
}

func TestCSVSinkEmptyFileGetsHeader(t *testing.T) {
	sink, err := NewCSVSink(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(sink.Path(GeometryTable), nil, 0644); err != nil {
		t.Fatal(err)
	}

	if err := sink.Write(context.Background(), Build(testMeta, testResult(t))); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(sink.Path(GeometryTable))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(b), "mouse_id,") {
		t.Fatalf("Expected a header in a previously empty file, got %q", string(b))
	}
}

func TestCSVSinkConcurrentWrites(t *testing.T) {
	sink, err := NewCSVSink(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	tables := Build(testMeta, testResult(t))

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- sink.Write(context.Background(), tables)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatal(err)
		}
	}

	if got := countLines(t, sink.Path(SummaryTable)); got != 1+3*writers {
		t.Fatalf("Expected %d lines, got %d", 1+3*writers, got)
	}
}

type recordingSink struct {
	calls int
	err   error
}

func (r *recordingSink) Write(ctx context.Context, t Tables) error {
	r.calls++
	return r.err
}

func TestMultiSinkStopsAtFirstError(t *testing.T) {
	first := &recordingSink{err: os.ErrPermission}
	second := &recordingSink{}

	err := MultiSink{first, second}.Write(context.Background(), Tables{})
	if err != os.ErrPermission {
		t.Fatalf("Expected the first sink's error, got %v", err)
	}
	if first.calls != 1 || second.calls != 0 {
		t.Fatalf("Expected only the first sink to be called, got %d and %d", first.calls, second.calls)
	}
}
