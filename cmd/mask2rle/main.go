// mask2rle converts a label mask image into the compact .rle format that
// submorph reads, or with -decode converts an .rle file back into a 16-bit PNG.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	_ "github.com/carbocation/submorph/compileinfoprint"
	"github.com/carbocation/submorph/overlay"
	"github.com/disintegration/imaging"
)

func main() {
	start := time.Now()
	log.Println("mask2rle start")
	defer func() {
		log.Printf("mask2rle end. Took %.2f seconds\n", time.Since(start).Seconds())
	}()

	var input, output string
	var decode bool

	flag.StringVar(&input, "input", "", "Mask to convert. Local path or gs://")
	flag.StringVar(&output, "output", "", "Where to write the result. Defaults to the input name with .rle (or .png with -decode) appended.")
	flag.BoolVar(&decode, "decode", false, "(Optional) Convert an .rle file back into a 16-bit PNG")
	flag.Parse()

	if input == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if output == "" {
		output = defaultOutput(input, decode)
	}

	var client *storage.Client
	if strings.HasPrefix(input, "gs://") {
		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
		defer client.Close()
	}

	if err := convert(input, output, decode, client); err != nil {
		log.Fatalln(err)
	}
}

func defaultOutput(input string, decode bool) string {
	base := input[strings.LastIndex(input, "/")+1:]
	if decode {
		return strings.TrimSuffix(base, ".rle") + ".png"
	}

	return base + ".rle"
}

func convert(input, output string, decode bool, client *storage.Client) error {
	grid, err := overlay.OpenLabelGrid(input, client)
	if err != nil {
		return err
	}

	log.Printf("Read a %dx%d mask from %s\n", grid.Width, grid.Height, input)

	if decode {
		img, err := grid.ToGray16()
		if err != nil {
			return err
		}
		return imaging.Save(img, output)
	}

	if err := os.WriteFile(output, overlay.EncodeRLE(grid), 0644); err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, "Wrote", output)

	return nil
}
