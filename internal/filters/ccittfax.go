package filters

import (
	"bytes"
	"io"

	"golang.org/x/image/ccitt"
)

// CCITTFaxDecode decodes CCITT Group 3 and Group 4 fax data, the
// encoding used for bi-level scanned images. K selects the scheme:
// negative means Group 4, zero or positive Group 3. Columns defaults
// to the standard fax width of 1728; when Rows is absent the height is
// detected from the data. BlackIs1 flips the bit sense of the output.
func CCITTFaxDecode(data []byte, params Params) ([]byte, error) {
	sub := ccitt.Group3
	if params.intOr("K", 0) < 0 {
		sub = ccitt.Group4
	}
	width := params.intOr("Columns", 1728)
	height := params.intOr("Rows", 0)
	if height == 0 {
		height = ccitt.AutoDetectHeight
	}
	opts := &ccitt.Options{Invert: params.boolOr("BlackIs1", false)}
	r := ccitt.NewReader(bytes.NewReader(data), ccitt.MSB, sub, width, height, opts)
	return io.ReadAll(r)
}
