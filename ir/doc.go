// Package ir provides the in-memory value model for CBOR items.
//
// # Overview
//
// Every decoded item, and every Go value on its way to the wire, is
// represented as a tree of *Node. The raw decoder in package parse
// produces these trees, package encode writes them, and package gomap
// converts them to and from native Go values.
//
// # Node Types
//
// The Type field indicates which fields of a Node are in use:
//
//   - NullType: null (and undefined on input)
//   - BoolType: Bool
//   - UintType: Uint holds the value
//   - NegIntType: Uint holds n for the value -1 - n
//   - FloatType: Float holds the value, Width its precision
//   - BytesType: Bytes
//   - TextType: String
//   - ArrayType: Values
//   - MapType: Fields (keys) and Values, in encounter order
//   - TagType: Tag holds the number, Values the single child
//
// Map keys may be any node. Maps are not sorted and may hold duplicate
// keys; Get returns the first match.
//
// Integer widths are derived from magnitude by the constructors and
// are informational: the encoder always writes minimal headers. Float
// widths are significant and select the encoded precision.
//
// Nodes have no parent pointers and are not shared; a tree is owned
// by whoever built it.
package ir
