package convert

import (
	"encoding/base64"
	"fmt"

	"github.com/signadot/go-cbor/diag"
	"github.com/signadot/go-cbor/ir"

	"github.com/goccy/go-yaml"
)

// ToYAML renders node as a YAML document. Maps keep their order. The
// JSON conventions for bytes, tags and keys apply.
func ToYAML(node *ir.Node) ([]byte, error) {
	v, err := yamlValue(node)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(v)
}

func yamlValue(node *ir.Node) (any, error) {
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
		// no YAML int holds it; keep the digits
		return diag.MustString(node), nil
	case ir.FloatType:
		return node.Float, nil
	case ir.BytesType:
		return base64.StdEncoding.EncodeToString(node.Bytes), nil
	case ir.TextType:
		return node.String, nil
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			yv, err := yamlValue(v)
			if err != nil {
				return nil, err
			}
			res[i] = yv
		}
		return res, nil
	case ir.MapType:
		res := make(yaml.MapSlice, len(node.Values))
		for i, v := range node.Values {
			k, err := KeyString(node.Fields[i])
			if err != nil {
				return nil, err
			}
			yv, err := yamlValue(v)
			if err != nil {
				return nil, err
			}
			res[i] = yaml.MapItem{Key: k, Value: yv}
		}
		return res, nil
	case ir.TagType:
		child := node.Child()
		if child == nil {
			return nil, fmt.Errorf("%w: tag %d without content", ir.ErrInvalid, node.Tag)
		}
		return yamlValue(child)
	default:
		return nil, fmt.Errorf("%w: type %s", ir.ErrInvalid, node.Type)
	}
}
