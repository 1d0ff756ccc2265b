package gomap

import (
	"math/big"
	"reflect"

	"github.com/signadot/go-cbor/ir"
)

// ByteString is encoded as a byte string. A plain []byte is encoded as
// an array of unsigned integers.
type ByteString []byte

// Unit is the empty value; it is encoded as null.
type Unit struct{}

// Tagged is a tag number applied to a value. Decoding a tag into any
// yields a Tagged whose Value is decoded generically.
type Tagged struct {
	Number uint64
	Value  any
}

// Tag numbers for integers outside the 64-bit range.
const (
	TagPosBignum = 2
	TagNegBignum = 3
)

var (
	nodeType       = reflect.TypeFor[ir.Node]()
	nodePtrType    = reflect.TypeFor[*ir.Node]()
	byteStringType = reflect.TypeFor[ByteString]()
	taggedType     = reflect.TypeFor[Tagged]()
	bigIntType     = reflect.TypeFor[big.Int]()
	encodableType  = reflect.TypeFor[Encodable]()
	decodableType  = reflect.TypeFor[Decodable]()
	anyType        = reflect.TypeFor[any]()
)

var bigOne = big.NewInt(1)

// bigToIR encodes b as an integer when it fits in 64 bits and as a
// bignum tag otherwise.
func bigToIR(b *big.Int) *ir.Node {
	if b.Sign() >= 0 {
		if b.IsUint64() {
			return ir.FromUint(b.Uint64())
		}
		return ir.FromTag(TagPosBignum, ir.FromBytes(b.Bytes()))
	}
	// n = -1 - b
	n := new(big.Int).Neg(b)
	n.Sub(n, bigOne)
	if n.IsUint64() {
		return ir.FromNegInt(n.Uint64())
	}
	return ir.FromTag(TagNegBignum, ir.FromBytes(n.Bytes()))
}

// bigFromIR decodes integers and bignum tags. ok is false for any
// other node.
func bigFromIR(node *ir.Node) (*big.Int, bool) {
	switch node.Type {
	case ir.UintType:
		return new(big.Int).SetUint64(node.Uint), true
	case ir.NegIntType:
		n := new(big.Int).SetUint64(node.Uint)
		return n.Neg(n).Sub(n, bigOne), true
	case ir.TagType:
		c := node.Child()
		if c == nil || c.Type != ir.BytesType {
			return nil, false
		}
		switch node.Tag {
		case TagPosBignum:
			return new(big.Int).SetBytes(c.Bytes), true
		case TagNegBignum:
			n := new(big.Int).SetBytes(c.Bytes)
			return n.Neg(n).Sub(n, bigOne), true
		}
	}
	return nil, false
}
