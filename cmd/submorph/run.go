package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/carbocation/submorph"
	"github.com/carbocation/submorph/config"
	"github.com/carbocation/submorph/geom"
	"github.com/carbocation/submorph/overlay"
	"github.com/carbocation/submorph/preview"
	"github.com/carbocation/submorph/sides"
	"github.com/carbocation/submorph/tabulate"
)

type runner struct {
	// Safe for concurrent use by multiple goroutines
	client *storage.Client

	sink         tabulate.Sink
	previewWidth int

	// Console summaries from concurrent analyses are not interleaved
	stdout   io.Writer
	stdoutMu sync.Mutex
}

func (r *runner) runManifest(ctx context.Context, base config.Analysis, manifest string, concurrency int) error {
	rows, err := config.ReadManifest(manifest)
	if err != nil {
		return err
	}

	log.Printf("Analyzing %d sections from %s\n", len(rows), manifest)

	if concurrency < 1 {
		concurrency = 1
	}
	sem := make(chan bool, concurrency)

	var failedMu sync.Mutex
	failed := 0

	for i, row := range rows {
		sem <- true
		go func(i int, cfg config.Analysis) {
			defer func() { <-sem }()

			err := cfg.Validate()
			if err == nil {
				err = r.runOne(ctx, cfg)
			}
			if err != nil {
				log.Printf("Manifest row %d (%s): %v\n", i+1, cfg.MouseID, err)
				failedMu.Lock()
				failed++
				failedMu.Unlock()
			}
		}(i, row.Apply(base))

		if (i+1)%100 == 0 {
			log.Printf("Queued %d sections\n", i+1)
		}
	}

	for i := 0; i < cap(sem); i++ {
		sem <- true
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d sections failed", failed, len(rows))
	}

	return nil
}

// runOne analyzes a single section. Nothing is written unless the analysis
// succeeds.
func (r *runner) runOne(ctx context.Context, cfg config.Analysis) error {
	in, err := loadInput(cfg, r.client)
	if err != nil {
		return err
	}

	res, err := submorph.Analyze(in)
	if err != nil {
		return pfx.Err(fmt.Errorf("%s: %w", cfg.MouseID, err))
	}

	meta := tabulate.Metadata{
		MouseID:        cfg.MouseID,
		Sex:            config.ParseSex(cfg.Sex),
		Genotype:       config.ParseGenotype(cfg.Genotype),
		Age:            string(in.Cohort),
		Scale:          in.Scale,
		PhysicalWidth:  cfg.PhysicalWidth,
		PhysicalHeight: cfg.PhysicalHeight,
	}

	r.stdoutMu.Lock()
	printSummary(r.stdout, meta, res)
	r.stdoutMu.Unlock()

	if err := r.sink.Write(ctx, tabulate.Build(meta, res)); err != nil {
		return err
	}

	if cfg.Preview != "" {
		img := preview.Render(in, res, preview.Options{Dilation: 20, MaxWidth: r.previewWidth})
		if err := preview.Save(cfg.Preview, img); err != nil {
			return err
		}
	}

	return nil
}

func loadInput(cfg config.Analysis, client *storage.Client) (submorph.Input, error) {
	scale, err := cfg.PixelScale()
	if err != nil {
		return submorph.Input{}, err
	}

	in := submorph.Input{
		RegionForeground: cfg.Foreground(),
		Scale:            scale,
		LeftLandmark:     geom.Point{X: cfg.LeftLandmark[0], Y: cfg.LeftLandmark[1]},
		RightLandmark:    geom.Point{X: cfg.RightLandmark[0], Y: cfg.RightLandmark[1]},
		Cohort:           sides.ParseCohort(cfg.Cohort),
	}

	if in.Cells, err = overlay.OpenLabelGrid(cfg.CellMask, client); err != nil {
		return in, fmt.Errorf("cell mask: %w", err)
	}
	if in.Plaques, err = overlay.OpenLabelGrid(cfg.PlaqueMask, client); err != nil {
		return in, fmt.Errorf("plaque mask: %w", err)
	}
	if in.Region, err = overlay.OpenLabelGrid(cfg.RegionMask, client); err != nil {
		return in, fmt.Errorf("region mask: %w", err)
	}

	return in, nil
}
