// Package gomap converts between Go values and IR nodes.
//
// The mapping is structural and positional:
//
//   - nil pointers, nil interfaces, Unit and struct{} map to null
//   - bool, integers, float32 and float64 map to their item kinds;
//     float32 keeps single precision on the wire
//   - string maps to a text string, ByteString to a byte string;
//     a plain []byte is an array of integers
//   - structs map to an array of their exported fields in declaration
//     order; a field tagged `cbor:"-"` is skipped
//   - slices and arrays map to arrays; a fixed array only decodes from
//     an array of exactly its length
//   - maps with string keys map to maps with sorted keys; other key
//     types fail with ErrKeyDomain
//   - registered sum types (see RegisterSum) map to
//     [variant name, fields...]
//   - Tagged maps to a tag, *big.Int to an integer or bignum tag, and
//     *ir.Node passes through unchanged
//
// Decoding is strict. A node of the wrong kind, an integer that
// overflows its target or an array of the wrong length fails with an
// error wrapping ErrTypeMismatch, and a *TypeError names the field
// path where it happened.
//
// Types implementing Encodable and Decodable take over their own
// mapping. This is how tagged extension types are written:
//
//	type Point struct{ X, Y int }
//
//	func (p Point) EncodeCBOR(e *gomap.Encoder) error {
//	    return e.EncodeTag(100000, []int{p.X, p.Y})
//	}
//
//	func (p *Point) DecodeCBOR(d *gomap.Decoder) error {
//	    if _, err := d.ReadUint64(); err != nil {
//	        return err
//	    }
//	    var xy [2]int
//	    if err := d.Decode(&xy); err != nil {
//	        return err
//	    }
//	    p.X, p.Y = xy[0], xy[1]
//	    return nil
//	}
package gomap
