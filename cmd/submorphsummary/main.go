// submorphsummary summarizes the distribution_data table written by submorph:
// region counts and area statistics per type and side, across every mouse in
// the table or just one.
package main

import (
	"bytes"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/submorph"
	_ "github.com/carbocation/submorph/compileinfoprint"
	"github.com/carbocation/submorph/tabulate"
	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
)

func main() {
	var input, mouse, linePrefix string
	var hist bool
	var bins int

	flag.StringVar(&input, "input", "", "The distribution_data table written by submorph (may be compressed)")
	flag.StringVar(&mouse, "mouse", "", "(Optional) Only summarize this mouse ID")
	flag.StringVar(&linePrefix, "line_prefix", "", "Column to add to each line. If empty, no column will be added.")
	flag.BoolVar(&hist, "hist", false, "(Optional) Also print a histogram of areas for each type and side")
	flag.IntVar(&bins, "bins", 25, "(Optional) Number of histogram bins")
	flag.Parse()

	if input == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	rows, err := readDistribution(input)
	if err != nil {
		log.Fatalln(err)
	}

	groups := groupAreas(rows, mouse)
	if len(groups) == 0 {
		log.Fatalln("No rows matched")
	}

	if err := printGroups(os.Stdout, groups, linePrefix); err != nil {
		log.Fatalln(err)
	}

	if hist {
		if err := printHistograms(os.Stdout, groups, bins); err != nil {
			log.Fatalln(err)
		}
	}
}

func readDistribution(path string) ([]tabulate.DistributionRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rc, err := submorph.MaybeDecompress(f)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	// Read it all so the delimiter can be sniffed and the data parsed from the
	// same bytes
	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}

	return parseDistribution(b)
}

func parseDistribution(b []byte) ([]tabulate.DistributionRow, error) {
	r := csv.NewReader(bytes.NewReader(b))
	r.Comma = submorph.DetermineDelimiter(bytes.NewReader(b))

	rows := []tabulate.DistributionRow{}
	if err := gocsv.UnmarshalCSV(r, &rows); err != nil {
		return nil, err
	}

	return rows, nil
}

type group struct {
	Type, Side string
	Areas      []float64
}

// groupAreas buckets areas by type and side, sorted by type and then by
// GLOBAL, LEFT, RIGHT.
func groupAreas(rows []tabulate.DistributionRow, mouse string) []group {
	byKey := make(map[[2]string]*group)
	for _, row := range rows {
		if mouse != "" && row.MouseID != mouse {
			continue
		}

		key := [2]string{row.Type, row.Side}
		g, ok := byKey[key]
		if !ok {
			g = &group{Type: row.Type, Side: row.Side}
			byKey[key] = g
		}
		g.Areas = append(g.Areas, row.AreaUm2)
	}

	out := make([]group, 0, len(byKey))
	for _, g := range byKey {
		out = append(out, *g)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Side < out[j].Side
	})

	return out
}

func printGroups(w io.Writer, groups []group, linePrefix string) error {
	header := []string{"Type", "Side"}
	if linePrefix != "" {
		header = append(header, "LinePrefix")
	}
	header = append(header, "N", "Mean", "SD", "Median", "Min", "Max")
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, g := range groups {
		output := []string{g.Type, g.Side}
		if linePrefix != "" {
			output = append(output, linePrefix)
		}
		output = append(output, fmt.Sprintf("%d", len(g.Areas)))

		data := stats.LoadRawData(g.Areas)
		for _, fn := range []func() (float64, error){data.Mean, data.StandardDeviation, data.Median, data.Min, data.Max} {
			fl, err := fn()
			if err != nil {
				return err
			}
			output = append(output, fmt.Sprintf("%.3f", fl))
		}

		fmt.Fprintln(w, strings.Join(output, "\t"))
	}

	return nil
}

func printHistograms(w io.Writer, groups []group, bins int) error {
	for _, g := range groups {
		fmt.Fprintf(w, "\n%s %s (μm²)\n", g.Type, g.Side)

		hist := histogram.Hist(bins, g.Areas)
		if err := histogram.Fprint(w, hist, histogram.Linear(40)); err != nil {
			return err
		}
	}

	return nil
}
