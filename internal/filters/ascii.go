package filters

import (
	"bytes"
	"fmt"
)

// ASCIIHexDecode decodes hexadecimal-encoded data. Pairs of hex digits
// form bytes, whitespace is skipped anywhere, and > ends the data
// early. A trailing unpaired digit is read as if followed by a zero.
func ASCIIHexDecode(data []byte) ([]byte, error) {
	var out bytes.Buffer
	var hi byte
	pending := false
	for _, c := range data {
		if isWhitespace(c) {
			continue
		}
		if c == '>' {
			break
		}
		d, err := hexDigit(c)
		if err != nil {
			return nil, err
		}
		if pending {
			out.WriteByte(hi<<4 | d)
			pending = false
		} else {
			hi, pending = d, true
		}
	}
	if pending {
		out.WriteByte(hi << 4)
	}
	return out.Bytes(), nil
}

// ASCII85Decode decodes base-85 encoded data. Five characters in the
// range ! through u encode four bytes. A lone z stands for four zero
// bytes and may not appear inside a group. The sequence ~> ends the
// data; a trailing short group of n characters yields n-1 bytes.
func ASCII85Decode(data []byte) ([]byte, error) {
	var (
		out   bytes.Buffer
		group [5]byte
		n     int
	)
scan:
	for i := 0; i < len(data); i++ {
		c := data[i]
		switch {
		case isWhitespace(c):
		case c == '~' && i+1 < len(data) && data[i+1] == '>':
			break scan
		case c == 'z' && n == 0:
			out.Write([]byte{0, 0, 0, 0})
		case c < '!' || c > 'u':
			return nil, fmt.Errorf("invalid base-85 character %q", c)
		default:
			group[n] = c - '!'
			n++
			if n == 5 {
				flush85(&out, &group, 5)
				n = 0
			}
		}
	}
	if n > 0 {
		flush85(&out, &group, n)
	}
	return out.Bytes(), nil
}

// flush85 expands one group of n base-85 digits. Short groups are
// padded with the highest digit before conversion and emit n-1 bytes.
func flush85(out *bytes.Buffer, group *[5]byte, n int) {
	for i := n; i < 5; i++ {
		group[i] = 84
	}
	v := uint32(0)
	for _, d := range group {
		v = v*85 + uint32(d)
	}
	for i := 0; i < n-1; i++ {
		out.WriteByte(byte(v >> (24 - 8*i)))
	}
}

func hexDigit(c byte) (byte, error) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', nil
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, nil
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, nil
	}
	return 0, fmt.Errorf("invalid hex digit %q", c)
}

// isWhitespace reports whether c is one of the six document whitespace
// characters.
func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}
