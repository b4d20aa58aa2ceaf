// Package tabulate flattens an analysis result into the four output tables
// and appends them to CSV files or BigQuery.
package tabulate

// Table names double as CSV file stems and BigQuery table IDs.
const (
	SummaryTable      = "summary_stats"
	DistributionTable = "distribution_data"
	GeometryTable     = "geometry_metadata"
	SpatialTable      = "spatial_data"
)

// SummaryRow is one of the LEFT, RIGHT or TOTAL rows. Areas are in square
// micrometers; percentages are fractions of the subiculum area.
type SummaryRow struct {
	MouseID            string  `csv:"mouse_id" bigquery:"mouse_id"`
	Sex                string  `csv:"sex" bigquery:"sex"`
	Genotype           string  `csv:"genotype" bigquery:"genotype"`
	Age                string  `csv:"age" bigquery:"age"`
	PixelToMicrometer  float64 `csv:"pixel_to_micrometer" bigquery:"pixel_to_micrometer"`
	WidthInMicrometer  float64 `csv:"width_in_micrometer" bigquery:"width_in_micrometer"`
	HeightInMicrometer float64 `csv:"height_in_micrometer" bigquery:"height_in_micrometer"`
	Side               string  `csv:"side" bigquery:"side"`

	NCells         int     `csv:"n_cells" bigquery:"n_cells"`
	TotalCellArea  float64 `csv:"total_cell_area" bigquery:"total_cell_area"`
	MeanCellArea   float64 `csv:"mean_cell_area" bigquery:"mean_cell_area"`
	MedianCellArea float64 `csv:"median_cell_area" bigquery:"median_cell_area"`
	SDCellArea     float64 `csv:"sd_cell_area" bigquery:"sd_cell_area"`
	CellAreaPct    float64 `csv:"cell_area_pct" bigquery:"cell_area_pct"`

	NPlaques         int     `csv:"n_plaques" bigquery:"n_plaques"`
	TotalPlaqueArea  float64 `csv:"total_plaque_area" bigquery:"total_plaque_area"`
	MeanPlaqueArea   float64 `csv:"mean_plaque_area" bigquery:"mean_plaque_area"`
	MedianPlaqueArea float64 `csv:"median_plaque_area" bigquery:"median_plaque_area"`
	SDPlaqueArea     float64 `csv:"sd_plaque_area" bigquery:"sd_plaque_area"`
	PlaqueAreaPct    float64 `csv:"plaque_area_pct" bigquery:"plaque_area_pct"`

	// Only the TOTAL row carries intracellular plaque.
	IntraPlaquePct float64 `csv:"intra_plaque_pct" bigquery:"intra_plaque_pct"`
	OverlapArea    float64 `csv:"overlap_area" bigquery:"overlap_area"`

	SubArea   float64 `csv:"sub_area" bigquery:"sub_area"`
	SubWidth  float64 `csv:"sub_width" bigquery:"sub_width"`
	SubHeight float64 `csv:"sub_height" bigquery:"sub_height"`
}

type DistributionRow struct {
	MouseID string  `csv:"mouse_id" bigquery:"mouse_id"`
	Type    string  `csv:"type" bigquery:"type"`
	Side    string  `csv:"side" bigquery:"side"`
	AreaUm2 float64 `csv:"area_um2" bigquery:"area_um2"`
}

// GeometryRow describes the subiculum and its two lines. A slope is written as
// text and left empty when the line is vertical. BigQuery receives a
// geometryRecord instead, with the slopes as nullable floats.
type GeometryRow struct {
	MouseID     string  `csv:"mouse_id"`
	SubAreaUm2  float64 `csv:"sub_area_um2"`
	SubWidthUm  float64 `csv:"sub_width_um"`
	SubHeightUm float64 `csv:"sub_height_um"`

	MidlineSlope        string  `csv:"midline_slope"`
	MidlineIntercept    float64 `csv:"midline_intercept"`
	MidlineMidpointX    float64 `csv:"midline_midpoint_x"`
	MidlineMidpointY    float64 `csv:"midline_midpoint_y"`
	MidlineIsVertical   bool    `csv:"midline_is_vertical"`
	MidlineIsHorizontal bool    `csv:"midline_is_horizontal"`

	DivlineSlope        string  `csv:"divline_slope"`
	DivlineIntercept    float64 `csv:"divline_intercept"`
	DivlineIsVertical   bool    `csv:"divline_is_vertical"`
	DivlineIsHorizontal bool    `csv:"divline_is_horizontal"`

	BBoxMinRow    int `csv:"bbox_min_row"`
	BBoxMaxRow    int `csv:"bbox_max_row"`
	BBoxMinCol    int `csv:"bbox_min_col"`
	BBoxMaxCol    int `csv:"bbox_max_col"`
	SubPixels     int `csv:"sub_pixels"`
	SubComponents int `csv:"sub_components"`
}

// SpatialRow is one region centroid. ID counts from 1 within each type and
// side; Label is the region's value in the mask.
type SpatialRow struct {
	MouseID string  `csv:"mouse_id" bigquery:"mouse_id"`
	Type    string  `csv:"type" bigquery:"type"`
	Side    string  `csv:"side" bigquery:"side"`
	ID      int     `csv:"id" bigquery:"id"`
	XUm     float64 `csv:"x_um" bigquery:"x_um"`
	YUm     float64 `csv:"y_um" bigquery:"y_um"`
	Label   int64   `csv:"label" bigquery:"label"`
}

// Tables holds every row produced by one analysis.
type Tables struct {
	Summary      []SummaryRow
	Distribution []DistributionRow
	Geometry     []GeometryRow
	Spatial      []SpatialRow
}
