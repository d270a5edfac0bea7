package decode

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/traditionalchinese"
	textunicode "golang.org/x/text/encoding/unicode"
)

// candidate pairs the canonical name of a character encoding with its
// decoder.
type candidate struct {
	name string
	enc  encoding.Encoding
}

// battery lists the encodings every payload is tried against. The
// UTF-16 candidates pin their endianness and leave byte order marks in
// the output, so each one stands for exactly one interpretation of the
// bytes; DetectBOM reports marks separately.
var battery = []candidate{
	{"utf-8", textunicode.UTF8},
	{"latin-1", charmap.ISO8859_1},
	{"windows-1252", charmap.Windows1252},
	{"utf-16be", textunicode.UTF16(textunicode.BigEndian, textunicode.IgnoreBOM)},
	{"utf-16le", textunicode.UTF16(textunicode.LittleEndian, textunicode.IgnoreBOM)},
	{"shift-jis", japanese.ShiftJIS},
	{"big5", traditionalchinese.Big5},
	{"euc-kr", korean.EUCKR},
}

// boms maps well-known byte order marks to their names, longest first
// so the UTF-32 little-endian mark is not misread as UTF-16.
var boms = []struct {
	prefix []byte
	name   string
}{
	{[]byte{0xFF, 0xFE, 0x00, 0x00}, "UTF-32, little-endian"},
	{[]byte{0x00, 0x00, 0xFE, 0xFF}, "UTF-32, big-endian"},
	{[]byte{0xEF, 0xBB, 0xBF}, "UTF-8"},
	{[]byte{0x2B, 0x2F, 0x76}, "UTF-7"},
	{[]byte{0x0E, 0xFE, 0xFF}, "SCSU"},
	{[]byte{0xFE, 0xFF}, "UTF-16, big-endian"},
	{[]byte{0xFF, 0xFE}, "UTF-16, little-endian"},
}

// printableRatio scores decoded text by the share of runes an analyst
// could actually read. Newline and tab count as readable; the
// replacement character marks bytes the decoder could not map and
// always counts against the text, even when a payload contained a
// literal one.
func printableRatio(s string) float64 {
	if s == "" {
		return 0
	}
	total, printable := 0, 0
	for _, r := range s {
		total++
		switch {
		case r == utf8.RuneError:
		case r == '\n', r == '\t':
			printable++
		case unicode.IsPrint(r):
			printable++
		}
	}
	return float64(printable) / float64(total)
}
