package encode

import (
	"fmt"
	"io"
	"math"

	"github.com/signadot/go-cbor/ir"
	"github.com/signadot/go-cbor/wire"
	"github.com/x448/float16"
)

type EncState struct {
	w              *wire.Writer
	shortestFloats bool
	validate       bool
}

// Encode writes the encoding of node to w.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	d, err := Append(nil, node, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

// Append appends the encoding of node to dst. On error dst is returned
// unextended.
func Append(dst []byte, node *ir.Node, opts ...EncodeOption) ([]byte, error) {
	w := wire.NewWriter(dst)
	if err := EncodeTo(w, node, opts...); err != nil {
		return dst, err
	}
	return w.Bytes(), nil
}

// EncodeTo appends the encoding of node to w. On error w is truncated
// back to its length before the call.
func EncodeTo(w *wire.Writer, node *ir.Node, opts ...EncodeOption) error {
	es := &EncState{w: w}
	for _, opt := range opts {
		opt(es)
	}
	if es.validate {
		if err := node.Validate(); err != nil {
			return err
		}
	}
	start := w.Len()
	if err := es.encode(node); err != nil {
		w.Truncate(start)
		return err
	}
	return nil
}

// MustAppend is like Append but panics on invalid nodes.
func MustAppend(dst []byte, node *ir.Node, opts ...EncodeOption) []byte {
	res, err := Append(dst, node, opts...)
	if err != nil {
		panic(err)
	}
	return res
}

func (es *EncState) encode(node *ir.Node) error {
	if node == nil {
		return fmt.Errorf("%w: nil node", ir.ErrInvalid)
	}
	w := es.w
	switch node.Type {
	case ir.NullType:
		w.WriteSimple(wire.SimpleNull)
	case ir.BoolType:
		if node.Bool {
			w.WriteSimple(wire.SimpleTrue)
		} else {
			w.WriteSimple(wire.SimpleFalse)
		}
	case ir.UintType:
		w.WriteHead(wire.MajorUint, node.Uint)
	case ir.NegIntType:
		w.WriteHead(wire.MajorNegInt, node.Uint)
	case ir.FloatType:
		es.encodeFloat(node)
	case ir.BytesType:
		w.WriteHead(wire.MajorBytes, uint64(len(node.Bytes)))
		w.Write(node.Bytes)
	case ir.TextType:
		w.WriteHead(wire.MajorText, uint64(len(node.String)))
		w.WriteString(node.String)
	case ir.ArrayType:
		w.WriteHead(wire.MajorArray, uint64(len(node.Values)))
		for _, v := range node.Values {
			if err := es.encode(v); err != nil {
				return err
			}
		}
	case ir.MapType:
		if len(node.Fields) != len(node.Values) {
			return fmt.Errorf("%w: map has %d keys and %d values", ir.ErrInvalid, len(node.Fields), len(node.Values))
		}
		w.WriteHead(wire.MajorMap, uint64(len(node.Values)))
		for i, v := range node.Values {
			if err := es.encode(node.Fields[i]); err != nil {
				return err
			}
			if err := es.encode(v); err != nil {
				return err
			}
		}
	case ir.TagType:
		if len(node.Values) != 1 {
			return fmt.Errorf("%w: tag %d has %d children", ir.ErrInvalid, node.Tag, len(node.Values))
		}
		w.WriteHead(wire.MajorTag, node.Tag)
		return es.encode(node.Values[0])
	default:
		return fmt.Errorf("%w: unknown type %d", ir.ErrInvalid, int(node.Type))
	}
	return nil
}

func (es *EncState) encodeFloat(node *ir.Node) {
	width := node.Width
	if es.shortestFloats {
		width = ShortestWidth(node.Float)
	}
	switch width {
	case ir.Half:
		es.w.WriteFloat16(float16.Fromfloat32(float32(node.Float)))
	case ir.Single:
		es.w.WriteFloat32(float32(node.Float))
	default:
		es.w.WriteFloat64(node.Float)
	}
}

// ShortestWidth returns the narrowest float width that represents f
// exactly. NaN and the infinities fit in half precision.
func ShortestWidth(f float64) ir.Width {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ir.Half
	}
	f32 := float32(f)
	if float64(f32) != f {
		return ir.Double
	}
	if float16.PrecisionFromfloat32(f32) == float16.PrecisionExact {
		return ir.Half
	}
	return ir.Single
}
