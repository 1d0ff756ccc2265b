package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	BoolType
	UintType
	NegIntType
	FloatType
	BytesType
	TextType
	ArrayType
	MapType
	TagType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NullType:   "Null",
		BoolType:   "Bool",
		UintType:   "Uint",
		NegIntType: "NegInt",
		FloatType:  "Float",
		BytesType:  "Bytes",
		TextType:   "Text",
		ArrayType:  "Array",
		MapType:    "Map",
		TagType:    "Tag",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Null":   NullType,
		"Bool":   BoolType,
		"Uint":   UintType,
		"NegInt": NegIntType,
		"Float":  FloatType,
		"Bytes":  BytesType,
		"Text":   TextType,
		"Array":  ArrayType,
		"Map":    MapType,
		"Tag":    TagType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NullType,
		BoolType,
		UintType,
		NegIntType,
		FloatType,
		BytesType,
		TextType,
		ArrayType,
		MapType,
		TagType,
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case ArrayType, MapType, TagType:
		return false
	default:
		return true
	}
}

func (t Type) IsInt() bool {
	return t == UintType || t == NegIntType
}

// Width is a storage width in bits. For integers it is the smallest of
// 8, 16, 32 and 64 that holds the magnitude; for floats it is the
// precision.
type Width uint8

const (
	Width8  Width = 8
	Width16 Width = 16
	Width32 Width = 32
	Width64 Width = 64

	Half   = Width16
	Single = Width32
	Double = Width64
)

// UintWidth returns the minimal storage width of v.
func UintWidth(v uint64) Width {
	switch {
	case v <= 0xff:
		return Width8
	case v <= 0xffff:
		return Width16
	case v <= 0xffffffff:
		return Width32
	default:
		return Width64
	}
}

func (w Width) String() string {
	switch w {
	case 0:
		return "none"
	default:
		return fmt.Sprintf("%d", uint8(w))
	}
}
