package gomap

import (
	"fmt"
	"math"
	"reflect"

	"github.com/signadot/go-cbor/debug"
	"github.com/signadot/go-cbor/ir"
)

// FromIR converts an IR node to a Go value. v must be a non-nil
// pointer. Shapes that do not fit the target type fail with an error
// wrapping ErrTypeMismatch; nothing is coerced.
func FromIR(node *ir.Node, v any) error {
	err := fromIR(node, v, "")
	if debug.GoMap() {
		debug.Logf("gomap: FromIR(%v, %T): %v\n", node, v, err)
	}
	return err
}

func fromIR(node *ir.Node, v any, fieldPath string) error {
	if v == nil {
		return &UnmarshalError{FieldPath: fieldPath, Message: "destination value cannot be nil"}
	}
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer {
		return &UnmarshalError{FieldPath: fieldPath, Message: "destination value must be a pointer"}
	}
	if val.IsNil() {
		return &UnmarshalError{FieldPath: fieldPath, Message: "destination pointer cannot be nil"}
	}
	return fromIRValue(node, val.Elem(), fieldPath)
}

func mismatch(fieldPath string, expected string, node *ir.Node) error {
	return &TypeError{FieldPath: fieldPath, Expected: expected, Actual: node.Type.String()}
}

// fromIRValue decodes node into the settable val.
func fromIRValue(node *ir.Node, val reflect.Value, fieldPath string) error {
	if node == nil {
		return &UnmarshalError{FieldPath: fieldPath, Message: "IR node is nil"}
	}
	typ := val.Type()
	kind := typ.Kind()

	switch typ {
	case nodePtrType:
		val.Set(reflect.ValueOf(node))
		return nil
	case nodeType:
		val.Set(reflect.ValueOf(*node))
		return nil
	}

	if kind == reflect.Pointer && node.Type == ir.NullType {
		val.Set(reflect.Zero(typ))
		return nil
	}
	if typ.Implements(decodableType) && kind == reflect.Pointer {
		if val.IsNil() {
			val.Set(reflect.New(typ.Elem()))
		}
		return callDecode(val.Interface().(Decodable), node, fieldPath)
	}
	if val.CanAddr() && reflect.PointerTo(typ).Implements(decodableType) {
		return callDecode(val.Addr().Interface().(Decodable), node, fieldPath)
	}

	if vt := variantOf(typ); vt != nil {
		return variantFromIR(vt, node, val, fieldPath)
	}
	return fromIRKind(node, val, fieldPath)
}

// fromIRKind decodes node into val by the kind of val alone, without
// consulting the Decodable methods or the variant registry of its
// type.
func fromIRKind(node *ir.Node, val reflect.Value, fieldPath string) error {
	typ := val.Type()
	switch typ.Kind() {
	case reflect.Pointer:
		if val.IsNil() {
			val.Set(reflect.New(typ.Elem()))
		}
		return fromIRValue(node, val.Elem(), fieldPath)

	case reflect.Interface:
		if node.Type == ir.NullType {
			val.Set(reflect.Zero(typ))
			return nil
		}
		if s := lookupSum(typ); s != nil {
			return sumFromIR(s, node, val, fieldPath)
		}
		if typ.NumMethod() != 0 {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("cannot decode into interface %s with no registered variants", typ),
				Err:       ErrTypeMismatch,
			}
		}
		x, err := toAny(node, fieldPath)
		if err != nil {
			return err
		}
		val.Set(reflect.ValueOf(x))
		return nil

	case reflect.Bool:
		if node.Type != ir.BoolType {
			return mismatch(fieldPath, "Bool", node)
		}
		val.SetBool(node.Bool)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !node.Type.IsInt() {
			return mismatch(fieldPath, "integer", node)
		}
		i, ok := node.Int64()
		if !ok || val.OverflowInt(i) {
			return &TypeError{FieldPath: fieldPath, Message: fmt.Sprintf("%s overflows %s", intString(node), typ)}
		}
		val.SetInt(i)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if node.Type == ir.NegIntType {
			return &TypeError{FieldPath: fieldPath, Message: fmt.Sprintf("%s overflows %s", intString(node), typ)}
		}
		if node.Type != ir.UintType {
			return mismatch(fieldPath, "Uint", node)
		}
		if val.OverflowUint(node.Uint) {
			return &TypeError{FieldPath: fieldPath, Message: fmt.Sprintf("%d overflows %s", node.Uint, typ)}
		}
		val.SetUint(node.Uint)
		return nil

	case reflect.Float32:
		if node.Type != ir.FloatType {
			return mismatch(fieldPath, "Float", node)
		}
		f := node.Float
		if node.Width == ir.Double && !math.IsNaN(f) && float64(float32(f)) != f {
			return &TypeError{FieldPath: fieldPath, Message: fmt.Sprintf("%v does not fit %s", f, typ)}
		}
		val.SetFloat(f)
		return nil

	case reflect.Float64:
		if node.Type != ir.FloatType {
			return mismatch(fieldPath, "Float", node)
		}
		val.SetFloat(node.Float)
		return nil

	case reflect.String:
		if node.Type != ir.TextType {
			return mismatch(fieldPath, "Text", node)
		}
		val.SetString(node.String)
		return nil

	case reflect.Slice:
		if typ == byteStringType {
			if node.Type != ir.BytesType {
				return mismatch(fieldPath, "Bytes", node)
			}
			val.SetBytes(append([]byte{}, node.Bytes...))
			return nil
		}
		if node.Type != ir.ArrayType {
			return mismatch(fieldPath, "Array", node)
		}
		res := reflect.MakeSlice(typ, len(node.Values), len(node.Values))
		for i, v := range node.Values {
			if err := fromIRValue(v, res.Index(i), indexPath(fieldPath, i)); err != nil {
				return err
			}
		}
		val.Set(res)
		return nil

	case reflect.Array:
		if node.Type != ir.ArrayType {
			return mismatch(fieldPath, "Array", node)
		}
		if len(node.Values) != typ.Len() {
			return &TypeError{FieldPath: fieldPath, Message: fmt.Sprintf("array of %d elements for %s", len(node.Values), typ)}
		}
		for i, v := range node.Values {
			if err := fromIRValue(v, val.Index(i), indexPath(fieldPath, i)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Map:
		return fromIRMap(node, val, fieldPath)

	case reflect.Struct:
		switch typ {
		case taggedType:
			if node.Type != ir.TagType {
				return mismatch(fieldPath, "Tag", node)
			}
			x, err := toAny(node.Child(), fieldPath)
			if err != nil {
				return err
			}
			val.Set(reflect.ValueOf(Tagged{Number: node.Tag, Value: x}))
			return nil
		case bigIntType:
			b, ok := bigFromIR(node)
			if !ok {
				return mismatch(fieldPath, "integer", node)
			}
			val.Set(reflect.ValueOf(*b))
			return nil
		}
		if typ.NumField() == 0 {
			if node.Type != ir.NullType {
				return mismatch(fieldPath, "Null", node)
			}
			return nil
		}
		if node.Type != ir.ArrayType {
			return mismatch(fieldPath, "Array", node)
		}
		return fromIRFields(node.Values, val, fieldPath)

	default:
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("unsupported type: %s", typ),
			Err:       ErrUnsupportedType,
		}
	}
}

func callDecode(x Decodable, node *ir.Node, fieldPath string) error {
	return x.DecodeCBOR(&Decoder{node: node, path: fieldPath})
}

func intString(node *ir.Node) string {
	if node.Type == ir.NegIntType {
		b, _ := bigFromIR(node)
		return b.String()
	}
	return fmt.Sprintf("%d", node.Uint)
}

// fromIRFields decodes values into the encoded fields of struct val.
// The counts must match exactly.
func fromIRFields(values []*ir.Node, val reflect.Value, fieldPath string) error {
	fields, err := structFields(val.Type())
	if err != nil {
		return &UnmarshalError{FieldPath: fieldPath, Message: err.Error()}
	}
	if len(values) != len(fields) {
		return &TypeError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("%d values for %d fields of %s", len(values), len(fields), val.Type()),
		}
	}
	for i, f := range fields {
		if err := fromIRValue(values[i], val.Field(f.Index), fieldPathJoin(fieldPath, f.Name)); err != nil {
			return err
		}
	}
	return nil
}

func fromIRMap(node *ir.Node, val reflect.Value, fieldPath string) error {
	typ := val.Type()
	if typ.Key().Kind() != reflect.String {
		return &UnmarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("map keys must be strings, got %s", typ.Key()),
			Err:       ErrKeyDomain,
		}
	}
	if node.Type != ir.MapType {
		return mismatch(fieldPath, "Map", node)
	}
	res := reflect.MakeMapWithSize(typ, len(node.Values))
	for i, k := range node.Fields {
		if k.Type != ir.TextType {
			return &UnmarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("%s map key", k.Type),
				Err:       ErrKeyDomain,
			}
		}
		elem := reflect.New(typ.Elem()).Elem()
		if err := fromIRValue(node.Values[i], elem, fieldPathJoin(fieldPath, k.String)); err != nil {
			return err
		}
		res.SetMapIndex(reflect.ValueOf(k.String).Convert(typ.Key()), elem)
	}
	val.Set(res)
	return nil
}

// variantHead splits a sum-encoded array into the variant selector
// and the field values.
func variantHead(s *sum, node *ir.Node, fieldPath string) (*variant, []*ir.Node, error) {
	if node.Type != ir.ArrayType || len(node.Values) == 0 {
		return nil, nil, &TypeError{FieldPath: fieldPath, Expected: "non-empty Array", Actual: node.Type.String()}
	}
	sel := node.Values[0]
	switch sel.Type {
	case ir.TextType:
		vt := s.byName[sel.String]
		if vt == nil {
			return nil, nil, &TypeError{FieldPath: fieldPath, Message: fmt.Sprintf("unknown variant %q of %s", sel.String, s.iface)}
		}
		return vt, node.Values[1:], nil
	case ir.UintType:
		if sel.Uint >= uint64(len(s.variants)) {
			return nil, nil, &TypeError{FieldPath: fieldPath, Message: fmt.Sprintf("variant index %d out of range for %s", sel.Uint, s.iface)}
		}
		return s.variants[sel.Uint], node.Values[1:], nil
	default:
		return nil, nil, mismatch(fieldPath, "variant name", sel)
	}
}

func sumFromIR(s *sum, node *ir.Node, val reflect.Value, fieldPath string) error {
	if node.Type == ir.NullType {
		val.Set(reflect.Zero(val.Type()))
		return nil
	}
	vt, values, err := variantHead(s, node, fieldPath)
	if err != nil {
		return err
	}
	res, err := decodeVariant(vt, values, fieldPath)
	if err != nil {
		return err
	}
	val.Set(res)
	return nil
}

// variantFromIR decodes into a concrete variant type, which must
// match the encoded selector.
func variantFromIR(vt *variant, node *ir.Node, val reflect.Value, fieldPath string) error {
	got, values, err := variantHead(vt.sum, node, fieldPath)
	if err != nil {
		return err
	}
	if got != vt {
		return &TypeError{FieldPath: fieldPath, Expected: vt.name, Actual: got.name}
	}
	res, err := decodeVariant(vt, values, fieldPath)
	if err != nil {
		return err
	}
	if res.Type() != val.Type() {
		res = res.Elem()
	}
	val.Set(res)
	return nil
}

func decodeVariant(vt *variant, values []*ir.Node, fieldPath string) (reflect.Value, error) {
	path := fieldPathJoin(fieldPath, vt.name)
	base := vt.typ
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	ptr := reflect.New(base)
	if base.Kind() == reflect.Struct {
		if err := fromIRFields(values, ptr.Elem(), path); err != nil {
			return reflect.Value{}, err
		}
	} else {
		if len(values) != 1 {
			return reflect.Value{}, &TypeError{FieldPath: path, Message: fmt.Sprintf("%d values for variant %s", len(values), vt.name)}
		}
		if err := fromIRKind(values[0], ptr.Elem(), path); err != nil {
			return reflect.Value{}, err
		}
	}
	if vt.typ.Kind() == reflect.Pointer {
		return ptr, nil
	}
	return ptr.Elem(), nil
}

// toAny decodes node generically: nil, bool, uint64, int64 (*big.Int
// beyond int64 and for bignum tags), float64, ByteString, string,
// []any, map[string]any and Tagged.
func toAny(node *ir.Node, fieldPath string) (any, error) {
	if node == nil {
		return nil, &UnmarshalError{FieldPath: fieldPath, Message: "IR node is nil"}
	}
	switch node.Type {
	case ir.NullType:
		return nil, nil
	case ir.BoolType:
		return node.Bool, nil
	case ir.UintType:
		return node.Uint, nil
	case ir.NegIntType:
		if i, ok := node.Int64(); ok {
			return i, nil
		}
		b, _ := bigFromIR(node)
		return b, nil
	case ir.FloatType:
		return node.Float, nil
	case ir.BytesType:
		return ByteString(append([]byte{}, node.Bytes...)), nil
	case ir.TextType:
		return node.String, nil
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			x, err := toAny(v, indexPath(fieldPath, i))
			if err != nil {
				return nil, err
			}
			res[i] = x
		}
		return res, nil
	case ir.MapType:
		res := make(map[string]any, len(node.Values))
		for i, k := range node.Fields {
			if k.Type != ir.TextType {
				return nil, &UnmarshalError{
					FieldPath: fieldPath,
					Message:   fmt.Sprintf("%s map key", k.Type),
					Err:       ErrKeyDomain,
				}
			}
			x, err := toAny(node.Values[i], fieldPathJoin(fieldPath, k.String))
			if err != nil {
				return nil, err
			}
			res[k.String] = x
		}
		return res, nil
	case ir.TagType:
		if b, ok := bigFromIR(node); ok {
			return b, nil
		}
		x, err := toAny(node.Child(), fieldPath)
		if err != nil {
			return nil, err
		}
		return Tagged{Number: node.Tag, Value: x}, nil
	default:
		return nil, &UnmarshalError{FieldPath: fieldPath, Message: fmt.Sprintf("unknown node type %s", node.Type)}
	}
}
