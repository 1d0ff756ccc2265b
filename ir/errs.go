package ir

import (
	"errors"
	"fmt"
)

var ErrInvalid = errors.New("invalid node")

// Validate checks the structural invariants of the tree rooted at n:
// every map has one key per value, every tag has exactly one child,
// and no child is nil.
func (n *Node) Validate() error {
	return n.Visit(func(n *Node, isPost bool) (bool, error) {
		if isPost {
			return false, nil
		}
		return true, n.validateShallow()
	})
}

func (n *Node) validateShallow() error {
	switch n.Type {
	case NullType, BoolType, UintType, NegIntType, FloatType, BytesType, TextType:
		return nil
	case ArrayType:
	case MapType:
		if len(n.Fields) != len(n.Values) {
			return fmt.Errorf("%w: map has %d keys and %d values", ErrInvalid, len(n.Fields), len(n.Values))
		}
		for _, f := range n.Fields {
			if f == nil {
				return fmt.Errorf("%w: nil map key", ErrInvalid)
			}
		}
	case TagType:
		if len(n.Values) != 1 {
			return fmt.Errorf("%w: tag %d has %d children", ErrInvalid, n.Tag, len(n.Values))
		}
	default:
		return fmt.Errorf("%w: unknown type %d", ErrInvalid, int(n.Type))
	}
	for _, v := range n.Values {
		if v == nil {
			return fmt.Errorf("%w: nil child of %s", ErrInvalid, n.Type)
		}
	}
	return nil
}
