package config

import (
	"encoding/csv"
	"os"

	"github.com/carbocation/pfx"
	"github.com/carbocation/submorph"
	"github.com/gocarina/gocsv"
)

// ManifestRow is one section in a tab-delimited batch manifest. Columns that
// are left blank fall back to the base config.
type ManifestRow struct {
	MouseID    string  `csv:"mouse_id"`
	CellMask   string  `csv:"cell_mask"`
	PlaqueMask string  `csv:"plaque_mask"`
	RegionMask string  `csv:"region_mask"`
	LeftX      float64 `csv:"left_x"`
	LeftY      float64 `csv:"left_y"`
	RightX     float64 `csv:"right_x"`
	RightY     float64 `csv:"right_y"`
	Cohort     string  `csv:"cohort"`
	Sex        string  `csv:"sex"`
	Genotype   string  `csv:"genotype"`
	Preview    string  `csv:"preview"`
}

// ReadManifest parses a tab-delimited manifest with a header row. The manifest
// may be compressed.
func ReadManifest(path string) ([]ManifestRow, error) {
	f, err := os.Open(expandHomeDir(path))
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	rc, err := submorph.MaybeDecompress(f)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer rc.Close()

	records := []ManifestRow{}

	r := csv.NewReader(rc)
	r.Comma = '\t'
	r.LazyQuotes = true

	if err := gocsv.UnmarshalCSV(r, &records); err != nil {
		return nil, pfx.Err(err)
	}

	return records, nil
}

// Apply returns a copy of base with the manifest row's non-empty fields
// filled in. Landmarks always come from the row.
func (m ManifestRow) Apply(base Analysis) Analysis {
	out := base

	if m.MouseID != "" {
		out.MouseID = m.MouseID
	}
	if m.CellMask != "" {
		out.CellMask = m.CellMask
	}
	if m.PlaqueMask != "" {
		out.PlaqueMask = m.PlaqueMask
	}
	if m.RegionMask != "" {
		out.RegionMask = m.RegionMask
	}
	if m.Cohort != "" {
		out.Cohort = m.Cohort
	}
	if m.Sex != "" {
		out.Sex = m.Sex
	}
	if m.Genotype != "" {
		out.Genotype = m.Genotype
	}
	if m.Preview != "" {
		out.Preview = m.Preview
	}

	out.LeftLandmark = [2]float64{m.LeftX, m.LeftY}
	out.RightLandmark = [2]float64{m.RightX, m.RightY}

	out.ExpandPaths()

	return out
}
