package gomap

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/signadot/go-cbor/debug"
	"github.com/signadot/go-cbor/ir"
)

// ToIR converts a Go value to an IR node.
//
// Values implementing Encodable produce their own item. Otherwise the
// mapping is structural: structs and arrays become arrays, maps with
// string keys become maps with sorted keys, pointers are followed and
// nil becomes null.
func ToIR(v any) (*ir.Node, error) {
	node, err := toIR(v, "", map[uintptr]string{})
	if debug.GoMap() {
		if err != nil {
			debug.Logf("gomap: ToIR(%T): %v\n", v, err)
		} else {
			debug.Logf("gomap: ToIR(%T) = %v\n", v, node)
		}
	}
	return node, err
}

func toIR(v any, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	if v == nil {
		return ir.Null(), nil
	}
	return toIRValue(reflect.ValueOf(v), fieldPath, visited)
}

// toIRValue converts a reflect.Value to an IR node.
// fieldPath is used for error reporting (e.g., "person.address[2]").
// visited tracks pointer addresses to detect circular references.
func toIRValue(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	if !val.IsValid() {
		return ir.Null(), nil
	}
	typ := val.Type()
	kind := typ.Kind()

	switch typ {
	case nodePtrType:
		if val.IsNil() {
			return ir.Null(), nil
		}
		return val.Interface().(*ir.Node).Clone(), nil
	case nodeType:
		n := val.Interface().(ir.Node)
		return n.Clone(), nil
	}

	if (kind == reflect.Pointer || kind == reflect.Interface) && val.IsNil() {
		return ir.Null(), nil
	}

	if typ.Implements(encodableType) {
		return callEncode(val.Interface().(Encodable), fieldPath, visited)
	}
	if kind != reflect.Pointer && reflect.PointerTo(typ).Implements(encodableType) {
		ptr := val
		if val.CanAddr() {
			ptr = val.Addr()
		} else {
			ptr = reflect.New(typ)
			ptr.Elem().Set(val)
		}
		return callEncode(ptr.Interface().(Encodable), fieldPath, visited)
	}

	if vt := variantOf(typ); vt != nil {
		return variantToIR(vt, val, fieldPath, visited)
	}
	return toIRKind(val, fieldPath, visited)
}

// toIRKind converts val by its kind alone, without consulting the
// Encodable methods or the variant registry of its type.
func toIRKind(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	typ := val.Type()
	switch typ.Kind() {
	case reflect.Pointer:
		ptrAddr := val.Pointer()
		if prevPath, seen := visited[ptrAddr]; seen {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("circular reference detected: %s -> %s (previously seen at %s)", prevPath, fieldPath, prevPath),
			}
		}
		visited[ptrAddr] = fieldPath
		node, err := toIRValue(val.Elem(), fieldPath, visited)
		delete(visited, ptrAddr)
		return node, err

	case reflect.Interface:
		return toIRValue(val.Elem(), fieldPath, visited)

	case reflect.Bool:
		return ir.FromBool(val.Bool()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(val.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return ir.FromUint(val.Uint()), nil

	case reflect.Float32:
		return ir.FromFloat32(float32(val.Float())), nil

	case reflect.Float64:
		return ir.FromFloat64(val.Float()), nil

	case reflect.String:
		return ir.FromString(val.String()), nil

	case reflect.Slice:
		if typ == byteStringType {
			return ir.FromBytes(append([]byte{}, val.Bytes()...)), nil
		}
		return toIRSlice(val, fieldPath, visited)

	case reflect.Array:
		return toIRSlice(val, fieldPath, visited)

	case reflect.Map:
		return toIRMap(val, fieldPath, visited)

	case reflect.Struct:
		switch typ {
		case taggedType:
			t := val.Interface().(Tagged)
			child, err := toIR(t.Value, fieldPath, visited)
			if err != nil {
				return nil, err
			}
			return ir.FromTag(t.Number, child), nil
		case bigIntType:
			b := val.Interface().(big.Int)
			return bigToIR(&b), nil
		}
		if typ.NumField() == 0 {
			return ir.Null(), nil
		}
		return toIRStruct(val, fieldPath, visited)

	default:
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("unsupported type: %s", typ),
			Err:       ErrUnsupportedType,
		}
	}
}

func callEncode(x Encodable, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	enc := &Encoder{path: fieldPath, visited: visited}
	if err := x.EncodeCBOR(enc); err != nil {
		return nil, err
	}
	if enc.node == nil {
		return nil, &MarshalError{FieldPath: fieldPath, Message: fmt.Sprintf("%T.EncodeCBOR encoded no item", x)}
	}
	return enc.node, nil
}

// toIRSlice converts a slice or array to an IR array node. A nil slice
// is an empty array.
func toIRSlice(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	length := val.Len()
	elements := make([]*ir.Node, 0, length)

	if val.Kind() == reflect.Slice && !val.IsNil() && length > 0 {
		slicePtr := val.Pointer()
		if prevPath, seen := visited[slicePtr]; seen {
			return nil, &MarshalError{
				FieldPath: fieldPath,
				Message:   fmt.Sprintf("circular reference detected: %s -> %s (previously seen at %s)", prevPath, fieldPath, prevPath),
			}
		}
		visited[slicePtr] = fieldPath
		defer delete(visited, slicePtr)
	}

	for i := 0; i < length; i++ {
		elemNode, err := toIRValue(val.Index(i), indexPath(fieldPath, i), visited)
		if err != nil {
			return nil, err
		}
		elements = append(elements, elemNode)
	}
	return ir.FromSlice(elements), nil
}

// toIRMap converts a map with string keys to an IR map node with keys
// in sorted order. Any other key type fails with ErrKeyDomain before
// any entry is converted.
func toIRMap(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	if val.Type().Key().Kind() != reflect.String {
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("map keys must be strings, got %s", val.Type().Key()),
			Err:       ErrKeyDomain,
		}
	}
	if val.IsNil() {
		return ir.FromKeyVals(nil), nil
	}

	mapPtr := val.Pointer()
	if prevPath, seen := visited[mapPtr]; seen {
		return nil, &MarshalError{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("circular reference detected: %s -> %s (previously seen at %s)", prevPath, fieldPath, prevPath),
		}
	}
	visited[mapPtr] = fieldPath
	defer delete(visited, mapPtr)

	irMap := make(map[string]*ir.Node, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		key := iter.Key().String()
		valueNode, err := toIRValue(iter.Value(), fieldPathJoin(fieldPath, key), visited)
		if err != nil {
			return nil, err
		}
		irMap[key] = valueNode
	}
	return ir.FromMap(irMap), nil
}

// toIRStruct converts a struct to an IR array of its fields in
// declaration order.
func toIRStruct(val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	values, err := structValues(val, fieldPath, visited)
	if err != nil {
		return nil, err
	}
	return ir.FromSlice(values), nil
}

func structValues(val reflect.Value, fieldPath string, visited map[uintptr]string) ([]*ir.Node, error) {
	fields, err := structFields(val.Type())
	if err != nil {
		return nil, &MarshalError{FieldPath: fieldPath, Message: err.Error()}
	}
	values := make([]*ir.Node, 0, len(fields))
	for _, f := range fields {
		node, err := toIRValue(val.Field(f.Index), fieldPathJoin(fieldPath, f.Name), visited)
		if err != nil {
			return nil, err
		}
		values = append(values, node)
	}
	return values, nil
}

func variantToIR(vt *variant, val reflect.Value, fieldPath string, visited map[uintptr]string) (*ir.Node, error) {
	path := fieldPathJoin(fieldPath, vt.name)
	elem := val
	if elem.Kind() == reflect.Pointer {
		elem = elem.Elem()
	}
	values := []*ir.Node{ir.FromString(vt.name)}
	if elem.Kind() == reflect.Struct {
		fvals, err := structValues(elem, path, visited)
		if err != nil {
			return nil, err
		}
		values = append(values, fvals...)
	} else {
		node, err := toIRKind(elem, path, visited)
		if err != nil {
			return nil, err
		}
		values = append(values, node)
	}
	return ir.FromSlice(values), nil
}
