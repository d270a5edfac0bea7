// Package core provides the PDF object model and the in-memory document
// store the analysis layers read from.
//
// This package implements the fundamental building blocks for representing
// a PDF's logical objects: all eight basic object types, streams, indirect
// references, and a Document container that maps object numbers to decoded
// objects. It performs no byte-level file parsing; objects are registered
// already decoded.
//
// # Object Types
//
// PDF defines eight basic object types, all implemented as types satisfying
// the Object interface:
//
//   - [Null] - represents the PDF null object
//   - [Bool] - represents PDF boolean values (true/false)
//   - [Int] - represents PDF integers
//   - [Real] - represents PDF real numbers (floating point)
//   - [String] - represents PDF string objects (literal or hexadecimal)
//   - [Name] - represents PDF name objects (e.g., /Type, /Font)
//   - [Array] - represents PDF arrays
//   - [Dict] - represents PDF dictionaries
//
// Additionally, [Stream] represents a PDF stream (dictionary + binary data),
// and [IndirectRef] represents a reference to an indirect object.
//
// # The Document Store
//
// The [Document] type holds a trailer dictionary and every object of one
// document keyed by object number. It resolves ids via [Document.Object],
// follows reference chains via [Document.Resolve], and answers the
// bookkeeping questions the tree verifier asks: declared size, maximum
// generation, and object-stream membership. Objects that exist but could
// not be decoded are registered with [Document.MarkCorrupt] and resolve to
// ErrObjectCorrupt instead of disappearing.
//
// # Stream Decoding
//
// Streams can be compressed using various filters. [Stream.Decoded] applies
// the declared filter chain and caches the result, supporting FlateDecode,
// ASCIIHexDecode, ASCII85Decode, RunLengthDecode, and CCITTFaxDecode.
package core
