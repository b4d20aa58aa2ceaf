package overlay

import (
	"bytes"
	"fmt"
	"image"
	"io/ioutil"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// ImageFromBytes creates an image from the specified bytes. Must be PNG, GIF,
// BMP, TIFF, or JPEG formatted (based on the decoders we have imported).
func ImageFromBytes(imgBytes []byte) (image.Image, error) {
	imgReader := bytes.NewReader(imgBytes)

	// Extract and decode the image.
	img, _, err := image.Decode(imgReader)

	return img, err
}

func OpenImageFromLocalFileOrGoogleStorage(filePath string, storageClient *storage.Client) (image.Image, error) {
	imgBytes, err := readAll(filePath, storageClient)
	if err != nil {
		return nil, err
	}

	return ImageFromBytes(imgBytes)
}

// OpenLabelGrid loads a label mask from a local path or a gs:// path. Files
// ending in .rle are decoded with DecodeRLE; anything else must be an image.
func OpenLabelGrid(filePath string, storageClient *storage.Client) (LabelGrid, error) {
	fileBytes, err := readAll(filePath, storageClient)
	if err != nil {
		return LabelGrid{}, err
	}

	if strings.EqualFold(filepath.Ext(filePath), ".rle") {
		grid, err := DecodeRLE(fileBytes)
		if err != nil {
			return LabelGrid{}, fmt.Errorf("%s: %w", filePath, err)
		}
		return grid, nil
	}

	img, err := ImageFromBytes(fileBytes)
	if err != nil {
		return LabelGrid{}, fmt.Errorf("%s: %w", filePath, err)
	}

	grid, err := LabelGridFromImage(img)
	if err != nil {
		return LabelGrid{}, fmt.Errorf("%s: %w", filePath, err)
	}

	return grid, nil
}

func readAll(filePath string, storageClient *storage.Client) ([]byte, error) {
	f, _, err := MaybeOpenFromGoogleStorage(filePath, storageClient)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	// The image decoder swallows errors, so we won't see i/o errors if they
	// happen during image decoding. To capture these, we read the full file
	// into memory here.
	fileBytes, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", filePath, err))
	}

	return fileBytes, nil
}
