package ir

import (
	"maps"
	"math"
	"slices"

	"github.com/x448/float16"
)

// Node is one self-describing item. The fields in use depend on Type.
//
// Nodes form a strict tree: a Node owns its children and is never
// shared between parents. Nodes are treated as immutable once built;
// use Clone to derive a modified copy.
type Node struct {
	Type  Type
	Width Width

	// Uint holds the value of a UintType node and, for a NegIntType
	// node, the magnitude minus one: the node's value is -1 - Uint.
	Uint  uint64
	Float float64
	Bool  bool
	Tag   uint64

	Bytes  []byte
	String string

	// For MapType nodes Fields[i] is the key of Values[i].
	Fields []*Node
	// Values holds array elements, map values, or the single child
	// of a TagType node.
	Values []*Node
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromUint(v uint64) *Node {
	return &Node{Type: UintType, Uint: v, Width: UintWidth(v)}
}

// FromNegInt returns the node for the value -1 - n.
func FromNegInt(n uint64) *Node {
	return &Node{Type: NegIntType, Uint: n, Width: UintWidth(n)}
}

func FromInt(v int64) *Node {
	if v >= 0 {
		return FromUint(uint64(v))
	}
	// ^v == -v - 1 for negative v, without overflow at math.MinInt64.
	return FromNegInt(uint64(^v))
}

func FromFloat64(f float64) *Node {
	return &Node{Type: FloatType, Float: f, Width: Double}
}

func FromFloat32(f float32) *Node {
	return &Node{Type: FloatType, Float: float64(f), Width: Single}
}

func FromFloat16(f float16.Float16) *Node {
	return &Node{Type: FloatType, Float: float64(f.Float32()), Width: Half}
}

func FromBytes(b []byte) *Node {
	return &Node{Type: BytesType, Bytes: b}
}

func FromString(v string) *Node {
	return &Node{Type: TextType, String: v}
}

func FromSlice(nodes []*Node) *Node {
	if nodes == nil {
		nodes = []*Node{}
	}
	return &Node{Type: ArrayType, Values: nodes}
}

type KeyVal struct {
	Key *Node
	Val *Node
}

// FromKeyVals builds a map node keeping kvs in order. A nil key is
// stored as Null.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{
		Type:   MapType,
		Fields: make([]*Node, len(kvs)),
		Values: make([]*Node, len(kvs)),
	}
	for i, kv := range kvs {
		if kv.Key == nil {
			kv.Key = Null()
		}
		if kv.Val == nil {
			kv.Val = Null()
		}
		res.Fields[i] = kv.Key
		res.Values[i] = kv.Val
	}
	return res
}

// FromMap builds a map node with text keys in sorted order.
func FromMap(m map[string]*Node) *Node {
	keys := slices.Sorted(maps.Keys(m))
	kvs := make([]KeyVal, len(keys))
	for i, k := range keys {
		kvs[i] = KeyVal{Key: FromString(k), Val: m[k]}
	}
	return FromKeyVals(kvs)
}

// FromTag wraps child in tag number num.
func FromTag(num uint64, child *Node) *Node {
	if child == nil {
		child = Null()
	}
	return &Node{Type: TagType, Tag: num, Values: []*Node{child}}
}

// Child returns the tagged item of a TagType node, or nil.
func (n *Node) Child() *Node {
	if n.Type != TagType || len(n.Values) != 1 {
		return nil
	}
	return n.Values[0]
}

// Len reports the element count of arrays and maps and the payload
// length of byte and text strings.
func (n *Node) Len() int {
	switch n.Type {
	case ArrayType, MapType:
		return len(n.Values)
	case BytesType:
		return len(n.Bytes)
	case TextType:
		return len(n.String)
	default:
		return 0
	}
}

// Int64 returns the value of an integer node if it fits in an int64.
func (n *Node) Int64() (int64, bool) {
	switch n.Type {
	case UintType:
		if n.Uint > math.MaxInt64 {
			return 0, false
		}
		return int64(n.Uint), true
	case NegIntType:
		if n.Uint > math.MaxInt64 {
			return 0, false
		}
		return -1 - int64(n.Uint), true
	default:
		return 0, false
	}
}

// Get returns the value stored under the text key field, or nil.
func Get(n *Node, field string) *Node {
	if n.Type != MapType {
		return nil
	}
	for i, k := range n.Fields {
		if k.Type == TextType && k.String == field {
			return n.Values[i]
		}
	}
	return nil
}

// ToMap returns the text-keyed entries of a map node. Entries with
// other key types are skipped.
func ToMap(n *Node) map[string]*Node {
	if n.Type != MapType {
		return nil
	}
	res := make(map[string]*Node, len(n.Fields))
	for i, k := range n.Fields {
		if k.Type != TextType {
			continue
		}
		res[k.String] = n.Values[i]
	}
	return res
}

func (n *Node) Clone() *Node {
	res := *n
	if n.Bytes != nil {
		res.Bytes = slices.Clone(n.Bytes)
	}
	if n.Fields != nil {
		res.Fields = make([]*Node, len(n.Fields))
		for i, f := range n.Fields {
			res.Fields[i] = f.Clone()
		}
	}
	if n.Values != nil {
		res.Values = make([]*Node, len(n.Values))
		for i, v := range n.Values {
			res.Values[i] = v.Clone()
		}
	}
	return &res
}

// Visit walks the tree depth first, calling f before (isPost false)
// and after (isPost true) each node's children. Map keys are visited
// before their values. Returning false from the pre-order call skips
// the children.
func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for i, v := range n.Values {
			if n.Type == MapType {
				if err := n.Fields[i].Visit(f); err != nil {
					return err
				}
			}
			if err := v.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}
