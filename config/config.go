// Package config holds the settings for one subiculum analysis and the batch
// manifest that lists many of them.
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
	"gopkg.in/yaml.v3"
)

// Analysis describes one section: its three masks, how pixels map to
// micrometers, where the subiculum ends are, and who the animal is.
type Analysis struct {
	ConfigPath string `json:"-" yaml:"-"`

	CellMask   string `json:"cell_mask" yaml:"cell_mask"`
	PlaqueMask string `json:"plaque_mask" yaml:"plaque_mask"`
	RegionMask string `json:"region_mask" yaml:"region_mask"`

	// RegionForeground is the region mask value marking the subiculum. Zero
	// means the default of 255.
	RegionForeground uint32 `json:"region_foreground,omitempty" yaml:"region_foreground,omitempty"`

	// Physical dimensions of the image in micrometers, and its width in
	// pixels. Pixels are assumed to be square.
	PhysicalWidth  float64 `json:"physical_width" yaml:"physical_width"`
	PhysicalHeight float64 `json:"physical_height" yaml:"physical_height"`
	PixelWidth     float64 `json:"pixel_width" yaml:"pixel_width"`

	// Scale, if set, is used as micrometers per pixel instead of
	// PhysicalWidth / PixelWidth.
	Scale float64 `json:"scale,omitempty" yaml:"scale,omitempty"`

	// Subiculum ends as [x, y] in pixels
	LeftLandmark  [2]float64 `json:"left_landmark" yaml:"left_landmark"`
	RightLandmark [2]float64 `json:"right_landmark" yaml:"right_landmark"`

	MouseID  string `json:"mouse_id" yaml:"mouse_id"`
	Cohort   string `json:"cohort" yaml:"cohort"`
	Sex      string `json:"sex" yaml:"sex"`
	Genotype string `json:"genotype" yaml:"genotype"`

	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// If Project and Dataset are both set, tables are also streamed to
	// BigQuery.
	Project string `json:"project,omitempty" yaml:"project,omitempty"`
	Dataset string `json:"dataset,omitempty" yaml:"dataset,omitempty"`

	// Preview, if set, is the path of a QC PNG to render.
	Preview string `json:"preview,omitempty" yaml:"preview,omitempty"`
}

// Example is printed by the command line tools as a template.
func Example() Analysis {
	return Analysis{
		CellMask:       "~/masks/mouse01_cells.png",
		PlaqueMask:     "~/masks/mouse01_plaques.png",
		RegionMask:     "gs://bucket/masks/mouse01_sub.tif",
		PhysicalWidth:  1286.15,
		PhysicalHeight: 810.14,
		PixelWidth:     7487,
		LeftLandmark:   [2]float64{1000, 2000},
		RightLandmark:  [2]float64{3000, 2100},
		MouseID:        "mouse01",
		Cohort:         "1",
		Sex:            "1",
		Genotype:       "2",
		OutputDir:      ".",
	}
}

// ParseFromPath reads a config as YAML if the path ends in .yaml or .yml and as
// JSON otherwise.
func ParseFromPath(path string) (Analysis, error) {
	out := Analysis{ConfigPath: path}

	b, err := os.ReadFile(expandHomeDir(path))
	if err != nil {
		return out, pfx.Err(err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &out); err != nil {
			return out, pfx.Err(err)
		}
	default:
		if err := json.Unmarshal(b, &out); err != nil {
			if e, ok := err.(*json.SyntaxError); ok {
				log.Printf("syntax error at byte offset %d", e.Offset)
			}
			return out, pfx.Err(err)
		}
	}

	out.ExpandPaths()

	return out, nil
}

// ExpandPaths interprets a leading ~ in every path field.
func (a *Analysis) ExpandPaths() {
	a.ConfigPath = expandHomeDir(a.ConfigPath)
	a.CellMask = expandHomeDir(a.CellMask)
	a.PlaqueMask = expandHomeDir(a.PlaqueMask)
	a.RegionMask = expandHomeDir(a.RegionMask)
	a.OutputDir = expandHomeDir(a.OutputDir)
	a.Preview = expandHomeDir(a.Preview)
}

// PixelScale returns micrometers per pixel.
func (a Analysis) PixelScale() (float64, error) {
	if a.Scale != 0 {
		return a.Scale, nil
	}

	if a.PixelWidth <= 0 {
		return 0, fmt.Errorf("pixel_width must be positive when no scale is given, got %g", a.PixelWidth)
	}

	return a.PhysicalWidth / a.PixelWidth, nil
}

// Foreground returns the region mask value to measure.
func (a Analysis) Foreground() uint32 {
	if a.RegionForeground == 0 {
		return 255
	}

	return a.RegionForeground
}

// Validate reports the first missing required field.
func (a Analysis) Validate() error {
	switch {
	case a.CellMask == "":
		return fmt.Errorf("no cell mask was given")
	case a.PlaqueMask == "":
		return fmt.Errorf("no plaque mask was given")
	case a.RegionMask == "":
		return fmt.Errorf("no region mask was given")
	case a.LeftLandmark == a.RightLandmark:
		return fmt.Errorf("left and right landmarks are both %v", a.LeftLandmark)
	}

	if _, err := a.PixelScale(); err != nil {
		return err
	}

	return nil
}

// WantsBigQuery is true when both a project and a dataset are configured.
func (a Analysis) WantsBigQuery() bool {
	return a.Project != "" && a.Dataset != ""
}

// Via https://stackoverflow.com/a/17617721/199475
func expandHomeDir(path string) string {

	usr, err := user.Current()
	if err != nil {
		return path
	}

	dir := usr.HomeDir

	if path == "~" {
		// In case of "~", which won't be caught by the "else if"
		path = dir
	} else if strings.HasPrefix(path, "~/") {
		// Use strings.HasPrefix so we don't match paths like
		// "/something/~/something/"
		path = filepath.Join(dir, path[2:])
	}

	return path
}
