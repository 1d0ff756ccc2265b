package gomap

import (
	"fmt"

	"github.com/signadot/go-cbor/ir"
)

// Encodable is implemented by types that produce their own item,
// typically a tag wrapping a payload.
type Encodable interface {
	EncodeCBOR(*Encoder) error
}

// Decodable is implemented by types that read their own item.
type Decodable interface {
	DecodeCBOR(*Decoder) error
}

// Encoder receives exactly one item from an Encodable.
type Encoder struct {
	node    *ir.Node
	path    string
	visited map[uintptr]string
}

// NewEncoder returns an Encoder with no item.
func NewEncoder() *Encoder {
	return &Encoder{visited: map[uintptr]string{}}
}

// Node returns the encoded item, or nil if none was encoded.
func (e *Encoder) Node() *ir.Node {
	return e.node
}

func (e *Encoder) set(node *ir.Node) error {
	if e.node != nil {
		return &MarshalError{FieldPath: e.path, Message: "more than one item encoded"}
	}
	e.node = node
	return nil
}

// Encode encodes v as the item.
func (e *Encoder) Encode(v any) error {
	node, err := toIR(v, e.path, e.visited)
	if err != nil {
		return err
	}
	return e.set(node)
}

// EncodeTag encodes v wrapped in tag number num as the item.
func (e *Encoder) EncodeTag(num uint64, v any) error {
	node, err := toIR(v, e.path, e.visited)
	if err != nil {
		return err
	}
	return e.set(ir.FromTag(num, node))
}

// EncodeNode uses node verbatim as the item.
func (e *Encoder) EncodeNode(node *ir.Node) error {
	if node == nil {
		node = ir.Null()
	}
	return e.set(node)
}

// Decoder gives a Decodable access to its item. Tags are peeled off
// with ReadUint64 or ReadTag before the content is decoded.
type Decoder struct {
	node *ir.Node
	path string
}

// NewDecoder returns a Decoder positioned at node.
func NewDecoder(node *ir.Node) *Decoder {
	return &Decoder{node: node}
}

// Node returns the current item, or nil once it has been consumed.
func (d *Decoder) Node() *ir.Node {
	return d.node
}

func (d *Decoder) current() (*ir.Node, error) {
	if d.node == nil {
		return nil, &UnmarshalError{FieldPath: d.path, Message: "item already consumed"}
	}
	return d.node, nil
}

// ReadUint64 reads an unsigned integer. On a tag it returns the tag
// number and moves to the tagged item; on an unsigned integer it
// returns the value and consumes it. The tag number is not checked
// against anything: a type expecting a tag also accepts the bare
// content when it matches.
func (d *Decoder) ReadUint64() (uint64, error) {
	node, err := d.current()
	if err != nil {
		return 0, err
	}
	switch node.Type {
	case ir.TagType:
		d.node = node.Child()
		return node.Tag, nil
	case ir.UintType:
		d.node = nil
		return node.Uint, nil
	default:
		return 0, &TypeError{FieldPath: d.path, Expected: "Uint or Tag", Actual: node.Type.String()}
	}
}

// ReadTag reads a tag number and moves to the tagged item. Unlike
// ReadUint64 it requires a tag.
func (d *Decoder) ReadTag() (uint64, error) {
	node, err := d.current()
	if err != nil {
		return 0, err
	}
	if node.Type != ir.TagType {
		return 0, &TypeError{FieldPath: d.path, Expected: "Tag", Actual: node.Type.String()}
	}
	d.node = node.Child()
	return node.Tag, nil
}

// Decode decodes the current item into v, which must be a non-nil
// pointer, and consumes it.
func (d *Decoder) Decode(v any) error {
	node, err := d.current()
	if err != nil {
		return err
	}
	if err := fromIR(node, v, d.path); err != nil {
		return err
	}
	d.node = nil
	return nil
}

func (d *Decoder) String() string {
	return fmt.Sprintf("Decoder{path: %q}", d.path)
}
