// Package cbor encodes and decodes Go values in a self-describing,
// length-prefixed binary format compatible with CBOR (RFC 8949)
// without indefinite lengths.
//
// # Basic Usage
//
//	type Point struct {
//	    X, Y int
//	}
//
//	data, err := cbor.Marshal(Point{1, 2})  // [1, 2]
//	var p Point
//	err = cbor.Unmarshal(data, &p)
//
// Structs are encoded positionally as arrays of their exported fields.
// See package gomap for the full mapping and for the Encodable and
// Decodable interfaces used to write tagged extension types.
//
// # Sequences
//
// Several items may be concatenated in one buffer:
//
//	for v, err := range cbor.Values[Point](data) {
//	    ...
//	}
//
// # Raw Access
//
// ParseRaw and Items expose the decoded *ir.Node tree, which keeps map
// order, non-text map keys and tags intact.
//
// # Related Packages
//
//   - github.com/signadot/go-cbor/ir - value model
//   - github.com/signadot/go-cbor/wire - headers and byte cursor
//   - github.com/signadot/go-cbor/parse - bytes to IR
//   - github.com/signadot/go-cbor/encode - IR to bytes
//   - github.com/signadot/go-cbor/gomap - Go values to and from IR
//   - github.com/signadot/go-cbor/stream - item sequences
//   - github.com/signadot/go-cbor/diag - diagnostic notation
package cbor
