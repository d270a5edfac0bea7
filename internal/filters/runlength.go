package filters

import (
	"bytes"
	"fmt"
)

// runLengthEOD is the end-of-data marker for RunLengthDecode streams.
const runLengthEOD = 128

// RunLengthDecode decodes run-length encoded data. Each run starts with a
// length byte: 0-127 means copy the next length+1 bytes literally, 129-255
// means repeat the next byte 257-length times, and 128 marks end of data.
func RunLengthDecode(data []byte) ([]byte, error) {
	var result bytes.Buffer

	i := 0
	for i < len(data) {
		length := int(data[i])
		i++

		if length == runLengthEOD {
			break
		}

		if length < runLengthEOD {
			// Literal run of length+1 bytes
			count := length + 1
			if i+count > len(data) {
				return nil, fmt.Errorf("truncated literal run: need %d bytes, have %d", count, len(data)-i)
			}
			result.Write(data[i : i+count])
			i += count
		} else {
			// Replicated run: next byte repeated 257-length times
			if i >= len(data) {
				return nil, fmt.Errorf("truncated replicated run at offset %d", i)
			}
			count := 257 - length
			for j := 0; j < count; j++ {
				result.WriteByte(data[i])
			}
			i++
		}
	}

	return result.Bytes(), nil
}
