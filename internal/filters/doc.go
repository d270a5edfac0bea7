// Package filters implements the stream compression filters needed to
// open document payloads: FlateDecode with TIFF and PNG predictors,
// ASCIIHexDecode, ASCII85Decode, RunLengthDecode, and CCITTFaxDecode.
//
// Every decoder is a pure function from encoded bytes to decoded
// bytes. Filters that take options receive them as a Params map
// already reduced to Go primitives; missing entries fall back to the
// defaults the format prescribes. The package has no opinion about
// where the bytes come from, so callers own filter chaining and the
// mapping from dictionary objects to Params.
package filters
