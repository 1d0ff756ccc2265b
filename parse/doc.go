// Package parse decodes CBOR bytes into IR nodes.
//
// # Usage
//
//	// exactly one item
//	node, err := parse.Parse(data)
//
//	// the first item of a sequence and the bytes it used
//	node, n, err := parse.ParseFirst(data)
//
// Decoding is lenient about header widths: an argument written with
// more bytes than necessary is accepted. Indefinite lengths, reserved
// additional information and unassigned simple values are rejected.
//
// Every declared length is checked against the bytes that remain
// before anything is allocated for it: an array needs at least one
// byte per element, a map two per pair and a string one per octet.
// A header claiming more fails with wire.ErrTruncated at once, so
// hostile input cannot trigger allocations larger than itself.
//
// # Related Packages
//
//   - github.com/signadot/go-cbor/ir - value model
//   - github.com/signadot/go-cbor/encode - IR to bytes
//   - github.com/signadot/go-cbor/wire - headers and byte cursor
package parse
