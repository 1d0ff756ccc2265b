package ir

// Truth reports whether a node counts as true: non-empty containers
// and strings, non-zero numbers and true. A tag takes the truth of its
// child.
func Truth(node *Node) bool {
	switch node.Type {
	case MapType, ArrayType:
		return len(node.Values) != 0
	case TextType:
		return node.String != ""
	case BytesType:
		return len(node.Bytes) != 0
	case UintType:
		return node.Uint != 0
	case NegIntType:
		return true
	case FloatType:
		return node.Float != 0.0
	case BoolType:
		return node.Bool
	case TagType:
		if c := node.Child(); c != nil {
			return Truth(c)
		}
		return false
	case NullType:
		return false
	default:
		panic("type")
	}
}
