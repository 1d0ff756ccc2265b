package convert

import (
	"bytes"
	"encoding/base64"
	gojson "encoding/json"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/signadot/go-cbor/diag"
	"github.com/signadot/go-cbor/ir"

	jsoniter "github.com/json-iterator/go"
)

var (
	json       = jsoniter.ConfigCompatibleWithStandardLibrary
	jsonIndent = jsoniter.Config{
		EscapeHTML:             true,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
		IndentionStep:          2,
	}.Froze()
)

type JSONOption func(*jsonOpts)

type jsonOpts struct {
	indent bool
}

// JSONIndent writes objects and arrays one element per line.
func JSONIndent(v bool) JSONOption {
	return func(o *jsonOpts) { o.indent = v }
}

// ToJSON renders node as a JSON document.
func ToJSON(node *ir.Node, opts ...JSONOption) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := WriteJSON(node, buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON writes node to w as JSON. Byte strings become base64 text,
// tags are dropped in favor of their content, non-text map keys are
// written in diagnostic notation and non-finite floats become the
// strings "NaN", "Infinity" and "-Infinity".
func WriteJSON(node *ir.Node, w io.Writer, opts ...JSONOption) error {
	o := &jsonOpts{}
	for _, opt := range opts {
		opt(o)
	}
	cfg := json
	if o.indent {
		cfg = jsonIndent
	}
	stream := jsoniter.NewStream(cfg, w, 512)
	if err := writeJSON(stream, node); err != nil {
		return err
	}
	if stream.Error != nil {
		return stream.Error
	}
	return stream.Flush()
}

func writeJSON(stream *jsoniter.Stream, node *ir.Node) error {
	switch node.Type {
	case ir.NullType:
		stream.WriteNil()
	case ir.BoolType:
		stream.WriteBool(node.Bool)
	case ir.UintType:
		stream.WriteUint64(node.Uint)
	case ir.NegIntType:
		if i, ok := node.Int64(); ok {
			stream.WriteInt64(i)
			break
		}
		stream.WriteRaw(diag.MustString(node))
	case ir.FloatType:
		if math.IsNaN(node.Float) || math.IsInf(node.Float, 0) {
			stream.WriteString(diag.FormatFloat(node.Float, node.Width))
			break
		}
		stream.WriteRaw(diag.FormatFloat(node.Float, node.Width))
	case ir.BytesType:
		stream.WriteString(base64.StdEncoding.EncodeToString(node.Bytes))
	case ir.TextType:
		stream.WriteString(node.String)
	case ir.ArrayType:
		stream.WriteArrayStart()
		for i, v := range node.Values {
			if i > 0 {
				stream.WriteMore()
			}
			if err := writeJSON(stream, v); err != nil {
				return err
			}
		}
		stream.WriteArrayEnd()
	case ir.MapType:
		stream.WriteObjectStart()
		for i, v := range node.Values {
			if i > 0 {
				stream.WriteMore()
			}
			k, err := KeyString(node.Fields[i])
			if err != nil {
				return err
			}
			stream.WriteObjectField(k)
			if err := writeJSON(stream, v); err != nil {
				return err
			}
		}
		stream.WriteObjectEnd()
	case ir.TagType:
		child := node.Child()
		if child == nil {
			return fmt.Errorf("%w: tag %d without content", ir.ErrInvalid, node.Tag)
		}
		return writeJSON(stream, child)
	default:
		return fmt.Errorf("%w: type %s", ir.ErrInvalid, node.Type)
	}
	return nil
}

// KeyString returns the string used for a map key in JSON and YAML
// objects: the text itself for text keys and the diagnostic notation
// otherwise.
func KeyString(k *ir.Node) (string, error) {
	if k.Type == ir.TextType {
		return k.String, nil
	}
	return diag.String(k)
}

// FromJSON reads the whitespace separated JSON values in data. Integers
// that fit in 64 bits become integer nodes, other numbers become double
// precision floats. Object members keep their order.
func FromJSON(data []byte) ([]*ir.Node, error) {
	iter := jsoniter.ParseBytes(json, data)
	var res []*ir.Node
	for i := 0; ; i++ {
		if iter.WhatIsNext() == jsoniter.InvalidValue {
			if iter.Error == io.EOF {
				return res, nil
			}
			if iter.Error == nil {
				iter.ReportError("FromJSON", "expected a JSON value")
			}
			return nil, fmt.Errorf("JSON value %d: %w", i, iter.Error)
		}
		node, err := readJSON(iter)
		if err != nil {
			return nil, fmt.Errorf("JSON value %d: %w", i, err)
		}
		if iter.Error != nil && iter.Error != io.EOF {
			return nil, fmt.Errorf("JSON value %d: %w", i, iter.Error)
		}
		res = append(res, node)
	}
}

func readJSON(iter *jsoniter.Iterator) (*ir.Node, error) {
	switch iter.WhatIsNext() {
	case jsoniter.NilValue:
		iter.ReadNil()
		return ir.Null(), nil
	case jsoniter.BoolValue:
		return ir.FromBool(iter.ReadBool()), nil
	case jsoniter.NumberValue:
		return numberNode(iter.ReadNumber())
	case jsoniter.StringValue:
		return ir.FromString(iter.ReadString()), nil
	case jsoniter.ArrayValue:
		values := []*ir.Node{}
		var err error
		ok := iter.ReadArrayCB(func(iter *jsoniter.Iterator) bool {
			var v *ir.Node
			v, err = readJSON(iter)
			if err != nil {
				return false
			}
			values = append(values, v)
			return true
		})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, jsonError(iter, "unterminated array")
		}
		return ir.FromSlice(values), nil
	case jsoniter.ObjectValue:
		kvs := []ir.KeyVal{}
		var err error
		ok := iter.ReadMapCB(func(iter *jsoniter.Iterator, field string) bool {
			var v *ir.Node
			v, err = readJSON(iter)
			if err != nil {
				return false
			}
			kvs = append(kvs, ir.KeyVal{Key: ir.FromString(field), Val: v})
			return true
		})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, jsonError(iter, "unterminated object")
		}
		return ir.FromKeyVals(kvs), nil
	default:
		return nil, jsonError(iter, "expected a JSON value")
	}
}

func jsonError(iter *jsoniter.Iterator, msg string) error {
	if iter.Error != nil && iter.Error != io.EOF {
		return iter.Error
	}
	return fmt.Errorf("invalid JSON: %s", msg)
}

func numberNode(num gojson.Number) (*ir.Node, error) {
	s := string(num)
	if s == "" {
		return nil, fmt.Errorf("invalid JSON: empty number")
	}
	if !strings.ContainsAny(s, ".eE") {
		if neg, ok := strings.CutPrefix(s, "-"); ok {
			// -1 - n for n up to 2^64-1
			if n, ok := new(big.Int).SetString(neg, 10); ok && n.Sign() > 0 {
				if n.Sub(n, big.NewInt(1)).IsUint64() {
					return ir.FromNegInt(n.Uint64()), nil
				}
			}
		} else if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return ir.FromUint(u), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON number %q: %w", s, err)
	}
	return ir.FromFloat64(f), nil
}
