package overlay

import (
	"fmt"

	"github.com/tj/go-rle"
)

// EncodeRLE run-length encodes a label grid. Label masks are mostly long runs
// of background, so this is far smaller than the raw array. The first two
// values of the stream are the width and the height.
func EncodeRLE(g LabelGrid) []byte {
	values := make([]int64, 0, len(g.Labels)+2)
	values = append(values, int64(g.Width), int64(g.Height))
	for _, v := range g.Labels {
		values = append(values, int64(v))
	}

	return rle.EncodeInt64(values)
}

func DecodeRLE(rleBytes []byte) (LabelGrid, error) {
	values, err := rle.DecodeInt64(rleBytes)
	if err != nil {
		return LabelGrid{}, err
	}

	if len(values) < 2 {
		return LabelGrid{}, fmt.Errorf("RLE stream has %d values; expected at least a width and a height", len(values))
	}

	// Compare by division so a hostile header cannot overflow width*height
	width, height, n := values[0], values[1], int64(len(values)-2)
	if width < 0 || height < 0 ||
		(width == 0) != (height == 0) ||
		(width != 0 && height > n/width) ||
		width*height != n {
		return LabelGrid{}, fmt.Errorf("RLE stream declares %dx%d but holds %d labels", width, height, n)
	}

	out := NewLabelGrid(int(width), int(height))
	for i, v := range values[2:] {
		if v < 0 || v > int64(^uint32(0)) {
			return LabelGrid{}, fmt.Errorf("Label %d at position %d is out of range", v, i)
		}
		out.Labels[i] = uint32(v)
	}

	return out, nil
}
