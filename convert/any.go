package convert

import (
	"fmt"
	"math/big"

	"github.com/signadot/go-cbor/ir"
)

// ToAny converts node to plain Go values suitable as an expression
// environment: nil, bool, int (uint64 when it does not fit), float64,
// []byte, string, []any and map[string]any. Integers below the int64
// range become *big.Int. Tags are dropped in favor of their content and
// map keys follow KeyString.
func ToAny(node *ir.Node) (any, error) {
	switch node.Type {
	case ir.NullType:
		return nil, nil
	case ir.BoolType:
		return node.Bool, nil
	case ir.UintType, ir.NegIntType:
		if i, ok := node.Int64(); ok {
			return int(i), nil
		}
		if node.Type == ir.UintType {
			return node.Uint, nil
		}
		b := new(big.Int).SetUint64(node.Uint)
		return b.Neg(b.Add(b, big.NewInt(1))), nil
	case ir.FloatType:
		return node.Float, nil
	case ir.BytesType:
		return node.Bytes, nil
	case ir.TextType:
		return node.String, nil
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			a, err := ToAny(v)
			if err != nil {
				return nil, err
			}
			res[i] = a
		}
		return res, nil
	case ir.MapType:
		res := make(map[string]any, len(node.Values))
		for i, v := range node.Values {
			k, err := KeyString(node.Fields[i])
			if err != nil {
				return nil, err
			}
			a, err := ToAny(v)
			if err != nil {
				return nil, err
			}
			res[k] = a
		}
		return res, nil
	case ir.TagType:
		child := node.Child()
		if child == nil {
			return nil, fmt.Errorf("%w: tag %d without content", ir.ErrInvalid, node.Tag)
		}
		return ToAny(child)
	default:
		return nil, fmt.Errorf("%w: type %s", ir.ErrInvalid, node.Type)
	}
}
