package filters

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// FlateDecode inflates zlib-compressed data and reverses the predictor
// declared in the decode parameters, if any.
func FlateDecode(data []byte, params Params) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open zlib stream: %w", err)
	}
	defer r.Close()
	inflated, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	return unpredict(inflated, params)
}

// unpredict reverses the prediction step applied before compression.
// Predictor 1 is identity, 2 is TIFF horizontal differencing, and 10
// through 15 are the PNG row filters with a tag byte on every row.
func unpredict(data []byte, params Params) ([]byte, error) {
	pred := params.intOr("Predictor", 1)
	switch {
	case pred == 1:
		return data, nil
	case pred == 2:
		return undoTIFF(data, params)
	case pred >= 10 && pred <= 15:
		return undoPNG(data, params)
	}
	return nil, fmt.Errorf("unsupported predictor %d", pred)
}

// undoTIFF reverses horizontal differencing in place: every sample
// beyond the first pixel of a row is a delta against the sample one
// pixel to its left.
func undoTIFF(data []byte, params Params) ([]byte, error) {
	columns := params.intOr("Columns", 1)
	colors := params.intOr("Colors", 1)
	if bpc := params.intOr("BitsPerComponent", 8); bpc != 8 {
		return nil, fmt.Errorf("TIFF predictor: %d bits per component not supported", bpc)
	}
	rowLen := columns * colors
	if rowLen <= 0 || len(data)%rowLen != 0 {
		return nil, fmt.Errorf("TIFF predictor: %d bytes do not divide into rows of %d", len(data), rowLen)
	}
	for start := 0; start < len(data); start += rowLen {
		row := data[start : start+rowLen]
		for i := colors; i < len(row); i++ {
			row[i] += row[i-colors]
		}
	}
	return data, nil
}

// undoPNG strips the leading filter tag from every row and reverses
// that row's filter against the reconstructed row above it.
func undoPNG(data []byte, params Params) ([]byte, error) {
	columns := params.intOr("Columns", 1)
	colors := params.intOr("Colors", 1)
	if bpc := params.intOr("BitsPerComponent", 8); bpc != 8 {
		return nil, fmt.Errorf("PNG predictor: %d bits per component not supported", bpc)
	}
	rowLen := columns * colors
	if rowLen <= 0 || len(data)%(rowLen+1) != 0 {
		return nil, fmt.Errorf("PNG predictor: %d bytes do not divide into tagged rows of %d", len(data), rowLen+1)
	}
	out := make([]byte, 0, len(data)/(rowLen+1)*rowLen)
	prev := make([]byte, rowLen)
	for start := 0; start < len(data); start += rowLen + 1 {
		tag := data[start]
		row := make([]byte, rowLen)
		copy(row, data[start+1:start+1+rowLen])
		if err := unfilterRow(tag, row, prev, colors); err != nil {
			return nil, err
		}
		out = append(out, row...)
		prev = row
	}
	return out, nil
}

// unfilterRow reverses one PNG row filter in place. prev is the row
// above after reconstruction, all zeros above the first row. pixel is
// the byte width of one pixel.
func unfilterRow(tag byte, row, prev []byte, pixel int) error {
	switch tag {
	case 0: // None
	case 1: // Sub
		for i := pixel; i < len(row); i++ {
			row[i] += row[i-pixel]
		}
	case 2: // Up
		for i := range row {
			row[i] += prev[i]
		}
	case 3: // Average
		for i := range row {
			var left int
			if i >= pixel {
				left = int(row[i-pixel])
			}
			row[i] += byte((left + int(prev[i])) / 2)
		}
	case 4: // Paeth
		for i := range row {
			var left, diag byte
			if i >= pixel {
				left = row[i-pixel]
				diag = prev[i-pixel]
			}
			row[i] += paeth(left, prev[i], diag)
		}
	default:
		return fmt.Errorf("unknown PNG row filter %d", tag)
	}
	return nil
}

// paeth picks the neighbor closest to the linear estimate left+up-diag,
// preferring left, then up, on ties.
func paeth(left, up, diag byte) byte {
	p := int(left) + int(up) - int(diag)
	pa, pb, pc := abs(p-int(left)), abs(p-int(up)), abs(p-int(diag))
	switch {
	case pa <= pb && pa <= pc:
		return left
	case pb <= pc:
		return up
	}
	return diag
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
