package gomap

import (
	"github.com/signadot/go-cbor/encode"
	"github.com/signadot/go-cbor/parse"
)

// Marshal encodes v as a single item.
func Marshal(v any) ([]byte, error) {
	return AppendMarshal(nil, v)
}

// AppendMarshal appends the encoding of v to dst. On error dst is
// returned unextended.
func AppendMarshal(dst []byte, v any) ([]byte, error) {
	node, err := ToIR(v)
	if err != nil {
		return dst, err
	}
	return encode.Append(dst, node)
}

// Unmarshal decodes exactly one item from data into v, which must be a
// non-nil pointer.
func Unmarshal(data []byte, v any, opts ...parse.ParseOption) error {
	node, err := parse.Parse(data, opts...)
	if err != nil {
		return err
	}
	return FromIR(node, v)
}
