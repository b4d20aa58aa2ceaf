// submorph measures cells and amyloid plaques on each side of the line that
// divides the subiculum, and appends the results to four tables.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	_ "github.com/carbocation/submorph/compileinfoprint"
	"github.com/carbocation/submorph/config"
	"github.com/carbocation/submorph/tabulate"
)

func init() {
	flag.Usage = func() {
		flag.PrintDefaults()

		log.Println("Example config file layout (JSON, or the same keys in YAML):")
		bts, err := json.MarshalIndent(config.Example(), "", "  ")
		if err == nil {
			log.Println(string(bts))
		}
	}
}

func main() {
	start := time.Now()
	log.Println("submorph start")
	defer func() {
		log.Printf("submorph end. Took %.2f seconds\n", time.Since(start).Seconds())
	}()

	var configPath, manifest, left, right string
	var concurrency, previewWidth int
	cfg := config.Analysis{}

	flag.StringVar(&configPath, "config", "", "(Optional) JSON or YAML config file. Flags that are set override its values.")
	flag.StringVar(&manifest, "manifest", "", "(Optional) Tab-delimited manifest with one section per row. Blank columns fall back to the config and flags.")
	flag.IntVar(&concurrency, "concurrency", runtime.NumCPU(), "(Optional) Number of manifest rows to analyze at once.")
	flag.StringVar(&cfg.CellMask, "cells", "", "Cell body mask (image or .rle; local path or gs://)")
	flag.StringVar(&cfg.PlaqueMask, "plaques", "", "Amyloid plaque mask (image or .rle; local path or gs://)")
	flag.StringVar(&cfg.RegionMask, "region", "", "Subiculum mask (image or .rle; local path or gs://)")
	flag.Var(uint32Value{&cfg.RegionForeground}, "foreground", "(Optional) Subiculum mask value. Default 255.")
	flag.Float64Var(&cfg.PhysicalWidth, "physical-width", 0, "Image width in micrometers, e.g. 1286.15")
	flag.Float64Var(&cfg.PhysicalHeight, "physical-height", 0, "Image height in micrometers, e.g. 810.14")
	flag.Float64Var(&cfg.PixelWidth, "pixel-width", 0, "Image width in pixels, e.g. 7487")
	flag.Float64Var(&cfg.Scale, "scale", 0, "(Optional) Micrometers per pixel. Overrides physical-width / pixel-width.")
	flag.StringVar(&left, "left", "", "Left end of the subiculum in pixels, as x,y")
	flag.StringVar(&right, "right", "", "Right end of the subiculum in pixels, as x,y")
	flag.StringVar(&cfg.Cohort, "age", "", "Age: 1 (6 weeks), 2 (10 weeks) or 3 (6 months). 6-week sections have intracellular plaque removed.")
	flag.StringVar(&cfg.MouseID, "mouse", "", "Mouse ID")
	flag.StringVar(&cfg.Sex, "sex", "", "Sex: 1 (Female) or 2 (Male)")
	flag.StringVar(&cfg.Genotype, "genotype", "", "Genotype: 1 (WT) or 2 (5XFAD)")
	flag.StringVar(&cfg.OutputDir, "out", ".", "Folder that holds the output CSV tables")
	flag.StringVar(&cfg.Project, "project", "", "(Optional) Google Cloud project for BigQuery output")
	flag.StringVar(&cfg.Dataset, "dataset", "", "(Optional) BigQuery dataset for output. Requires -project.")
	flag.StringVar(&cfg.Preview, "preview", "", "(Optional) Path of a QC preview image to write")
	flag.IntVar(&previewWidth, "preview-width", 1200, "(Optional) Maximum width of the QC preview in pixels")
	flag.Parse()

	var err error
	if left != "" {
		if cfg.LeftLandmark, err = parsePoint(left); err != nil {
			log.Fatalln(err)
		}
	}
	if right != "" {
		if cfg.RightLandmark, err = parsePoint(right); err != nil {
			log.Fatalln(err)
		}
	}

	if configPath != "" {
		fileCfg, err := config.ParseFromPath(configPath)
		if err != nil {
			log.Println(err)
			flag.Usage()
			os.Exit(1)
		}
		cfg = overrideWithFlags(fileCfg, cfg)
	}
	cfg.ExpandPaths()

	ctx := context.Background()

	var client *storage.Client
	if needsStorage(cfg) || strings.HasPrefix(manifest, "gs://") {
		client, err = storage.NewClient(ctx)
		if err != nil {
			log.Fatalln(err)
		}
		defer client.Close()
	}

	sink, closeSink, err := openSinks(ctx, cfg)
	if err != nil {
		log.Fatalln(err)
	}
	defer closeSink()

	r := runner{
		client:       client,
		sink:         sink,
		previewWidth: previewWidth,
		stdout:       os.Stdout,
	}

	if manifest != "" {
		if err := r.runManifest(ctx, cfg, manifest, concurrency); err != nil {
			log.Fatalln(err)
		}
		return
	}

	if err := cfg.Validate(); err != nil {
		log.Println(err)
		flag.Usage()
		os.Exit(1)
	}

	if err := r.runOne(ctx, cfg); err != nil {
		log.Fatalln(err)
	}
}

// overrideWithFlags copies into base every field whose flag was set on the
// command line.
func overrideWithFlags(base, flags config.Analysis) config.Analysis {
	out := base

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "cells":
			out.CellMask = flags.CellMask
		case "plaques":
			out.PlaqueMask = flags.PlaqueMask
		case "region":
			out.RegionMask = flags.RegionMask
		case "foreground":
			out.RegionForeground = flags.RegionForeground
		case "physical-width":
			out.PhysicalWidth = flags.PhysicalWidth
		case "physical-height":
			out.PhysicalHeight = flags.PhysicalHeight
		case "pixel-width":
			out.PixelWidth = flags.PixelWidth
		case "scale":
			out.Scale = flags.Scale
		case "left":
			out.LeftLandmark = flags.LeftLandmark
		case "right":
			out.RightLandmark = flags.RightLandmark
		case "age":
			out.Cohort = flags.Cohort
		case "mouse":
			out.MouseID = flags.MouseID
		case "sex":
			out.Sex = flags.Sex
		case "genotype":
			out.Genotype = flags.Genotype
		case "out":
			out.OutputDir = flags.OutputDir
		case "project":
			out.Project = flags.Project
		case "dataset":
			out.Dataset = flags.Dataset
		case "preview":
			out.Preview = flags.Preview
		}
	})

	if out.OutputDir == "" {
		out.OutputDir = flags.OutputDir
	}

	return out
}

func needsStorage(cfg config.Analysis) bool {
	for _, p := range []string{cfg.CellMask, cfg.PlaqueMask, cfg.RegionMask} {
		if strings.HasPrefix(p, "gs://") {
			return true
		}
	}

	return false
}

func openSinks(ctx context.Context, cfg config.Analysis) (tabulate.Sink, func(), error) {
	csvSink, err := tabulate.NewCSVSink(cfg.OutputDir)
	if err != nil {
		return nil, nil, err
	}

	if !cfg.WantsBigQuery() {
		return csvSink, func() {}, nil
	}

	bq, err := tabulate.NewBigQuerySink(ctx, cfg.Project, cfg.Dataset)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("Also writing tables to BigQuery dataset %s.%s\n", cfg.Project, cfg.Dataset)

	return tabulate.MultiSink{csvSink, bq}, func() { bq.Close() }, nil
}

// parsePoint reads "x,y" (whitespace and surrounding parentheses allowed).
func parsePoint(s string) ([2]float64, error) {
	var out [2]float64

	parts := strings.Split(strings.Trim(strings.TrimSpace(s), "()"), ",")
	if len(parts) != 2 {
		return out, fmt.Errorf("expected a point as x,y but got %q", s)
	}

	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return out, fmt.Errorf("parsing %q: %w", s, err)
		}
		out[i] = v
	}

	return out, nil
}

type uint32Value struct {
	p *uint32
}

func (v uint32Value) String() string {
	if v.p == nil {
		return "0"
	}
	return strconv.FormatUint(uint64(*v.p), 10)
}

func (v uint32Value) Set(s string) error {
	u, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return err
	}
	*v.p = uint32(u)
	return nil
}
