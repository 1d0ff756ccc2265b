package ir

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

var seed = maphash.MakeSeed()

// Hash returns a 64-bit hash of the node. Nodes for which Compare
// returns 0 hash equally within one process.
// It panics if n is nil.
func (n *Node) Hash() uint64 {
	if n == nil {
		panic("ir: Hash called on nil node")
	}

	var h maphash.Hash
	h.SetSeed(seed)
	var b [8]byte

	h.WriteByte(byte(rank(n.Type)))

	switch n.Type {
	case NullType:
	case BoolType:
		if n.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case UintType, NegIntType:
		h.WriteByte(byte(n.Type))
		binary.LittleEndian.PutUint64(b[:], n.Uint)
		h.Write(b[:])
	case FloatType:
		bits := math.Float64bits(n.Float)
		switch {
		case math.IsNaN(n.Float):
			bits = math.Float64bits(math.NaN())
		case n.Float == 0:
			// -0 compares equal to 0
			bits = 0
		}
		binary.LittleEndian.PutUint64(b[:], bits)
		h.Write(b[:])
		h.WriteByte(byte(n.Width))
	case BytesType:
		h.Write(n.Bytes)
	case TextType:
		h.WriteString(n.String)
	case TagType:
		binary.LittleEndian.PutUint64(b[:], n.Tag)
		h.Write(b[:])
		for _, v := range n.Values {
			binary.LittleEndian.PutUint64(b[:], v.Hash())
			h.Write(b[:])
		}
	case ArrayType:
		for _, v := range n.Values {
			binary.LittleEndian.PutUint64(b[:], v.Hash())
			h.Write(b[:])
		}
	case MapType:
		for i, field := range n.Fields {
			binary.LittleEndian.PutUint64(b[:], field.Hash())
			h.Write(b[:])
			binary.LittleEndian.PutUint64(b[:], n.Values[i].Hash())
			h.Write(b[:])
		}
	}
	return h.Sum64()
}
