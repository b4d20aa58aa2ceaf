package tabulate

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"cloud.google.com/go/bigquery"
	"github.com/carbocation/pfx"
	"google.golang.org/api/googleapi"
)

// BigQuerySink streams rows into <Project>.<Dataset>.<table>, creating each
// table with a schema inferred from its row type the first time it is needed.
type BigQuerySink struct {
	Client  *bigquery.Client
	Project string
	Dataset string

	mu    sync.Mutex
	ready map[string]bool
}

func NewBigQuerySink(ctx context.Context, project, dataset string) (*BigQuerySink, error) {
	client, err := bigquery.NewClient(ctx, project)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return &BigQuerySink{
		Client:  client,
		Project: project,
		Dataset: dataset,
		ready:   make(map[string]bool),
	}, nil
}

func (s *BigQuerySink) Close() error {
	return s.Client.Close()
}

func (s *BigQuerySink) Write(ctx context.Context, t Tables) error {
	if err := s.put(ctx, SummaryTable, SummaryRow{}, t.Summary, len(t.Summary)); err != nil {
		return err
	}

	if err := s.put(ctx, DistributionTable, DistributionRow{}, t.Distribution, len(t.Distribution)); err != nil {
		return err
	}

	geometry, err := geometryRecords(t.Geometry)
	if err != nil {
		return err
	}
	if err := s.put(ctx, GeometryTable, geometryRecord{}, geometry, len(geometry)); err != nil {
		return err
	}

	return s.put(ctx, SpatialTable, SpatialRow{}, t.Spatial, len(t.Spatial))
}

func (s *BigQuerySink) put(ctx context.Context, name string, example, rows interface{}, n int) error {
	if n == 0 {
		return nil
	}

	table := s.Client.Dataset(s.Dataset).Table(name)

	if err := s.ensureTable(ctx, table, example); err != nil {
		return err
	}

	if err := table.Inserter().Put(ctx, rows); err != nil {
		return pfx.Err(err)
	}

	return nil
}

func (s *BigQuerySink) ensureTable(ctx context.Context, table *bigquery.Table, example interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready[table.TableID] {
		return nil
	}

	_, err := table.Metadata(ctx)
	if err != nil && !isHTTPStatus(err, http.StatusNotFound) {
		return pfx.Err(err)
	}

	if err != nil {
		schema, err := bigquery.InferSchema(example)
		if err != nil {
			return pfx.Err(err)
		}

		// Another process may have created the table in the meantime
		if err := table.Create(ctx, &bigquery.TableMetadata{Schema: schema}); err != nil && !isHTTPStatus(err, http.StatusConflict) {
			return pfx.Err(err)
		}
	}

	if s.ready == nil {
		s.ready = make(map[string]bool)
	}
	s.ready[table.TableID] = true

	return nil
}

func isHTTPStatus(err error, code int) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == code
	}

	return false
}

// geometryRecord is GeometryRow as stored in BigQuery, where a vertical line's
// slope is NULL rather than an empty string.
type geometryRecord struct {
	MouseID     string  `bigquery:"mouse_id"`
	SubAreaUm2  float64 `bigquery:"sub_area_um2"`
	SubWidthUm  float64 `bigquery:"sub_width_um"`
	SubHeightUm float64 `bigquery:"sub_height_um"`

	MidlineSlope        bigquery.NullFloat64 `bigquery:"midline_slope"`
	MidlineIntercept    float64              `bigquery:"midline_intercept"`
	MidlineMidpointX    float64              `bigquery:"midline_midpoint_x"`
	MidlineMidpointY    float64              `bigquery:"midline_midpoint_y"`
	MidlineIsVertical   bool                 `bigquery:"midline_is_vertical"`
	MidlineIsHorizontal bool                 `bigquery:"midline_is_horizontal"`

	DivlineSlope        bigquery.NullFloat64 `bigquery:"divline_slope"`
	DivlineIntercept    float64              `bigquery:"divline_intercept"`
	DivlineIsVertical   bool                 `bigquery:"divline_is_vertical"`
	DivlineIsHorizontal bool                 `bigquery:"divline_is_horizontal"`

	BBoxMinRow    int `bigquery:"bbox_min_row"`
	BBoxMaxRow    int `bigquery:"bbox_max_row"`
	BBoxMinCol    int `bigquery:"bbox_min_col"`
	BBoxMaxCol    int `bigquery:"bbox_max_col"`
	SubPixels     int `bigquery:"sub_pixels"`
	SubComponents int `bigquery:"sub_components"`
}

func geometryRecords(rows []GeometryRow) ([]geometryRecord, error) {
	out := make([]geometryRecord, 0, len(rows))
	for _, r := range rows {
		midSlope, err := parseSlope(r.MidlineSlope)
		if err != nil {
			return nil, pfx.Err(err)
		}
		divSlope, err := parseSlope(r.DivlineSlope)
		if err != nil {
			return nil, pfx.Err(err)
		}

		out = append(out, geometryRecord{
			MouseID:     r.MouseID,
			SubAreaUm2:  r.SubAreaUm2,
			SubWidthUm:  r.SubWidthUm,
			SubHeightUm: r.SubHeightUm,

			MidlineSlope:        midSlope,
			MidlineIntercept:    r.MidlineIntercept,
			MidlineMidpointX:    r.MidlineMidpointX,
			MidlineMidpointY:    r.MidlineMidpointY,
			MidlineIsVertical:   r.MidlineIsVertical,
			MidlineIsHorizontal: r.MidlineIsHorizontal,

			DivlineSlope:        divSlope,
			DivlineIntercept:    r.DivlineIntercept,
			DivlineIsVertical:   r.DivlineIsVertical,
			DivlineIsHorizontal: r.DivlineIsHorizontal,

			BBoxMinRow:    r.BBoxMinRow,
			BBoxMaxRow:    r.BBoxMaxRow,
			BBoxMinCol:    r.BBoxMinCol,
			BBoxMaxCol:    r.BBoxMaxCol,
			SubPixels:     r.SubPixels,
			SubComponents: r.SubComponents,
		})
	}

	return out, nil
}

// parseSlope maps the empty text of a vertical line to NULL.
func parseSlope(text string) (bigquery.NullFloat64, error) {
	if text == "" {
		return bigquery.NullFloat64{}, nil
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return bigquery.NullFloat64{}, err
	}

	return bigquery.NullFloat64{Float64: v, Valid: true}, nil
}
