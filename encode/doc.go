// Package encode writes IR nodes as CBOR bytes.
//
// Headers always use the smallest argument encoding. Floats are written
// at the precision recorded in the node's Width (double when unset),
// so float32 values stay 4 bytes and float64 values 8 bytes.
//
// # Usage
//
//	node := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: ir.FromString("name"), Val: ir.FromString("alice")},
//	    {Key: ir.FromString("age"), Val: ir.FromInt(30)},
//	})
//	data, err := encode.Append(nil, node)
//
// # Related Packages
//
//   - github.com/signadot/go-cbor/ir - value model
//   - github.com/signadot/go-cbor/parse - bytes to IR
package encode
