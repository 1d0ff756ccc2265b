package ir

import (
	"bytes"
	"cmp"
	"math"
	"strings"
)

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
//
// Integers compare by numeric value regardless of sign type. Floats
// compare by value and then by width, so a single and a double holding
// the same value are distinct. NaN sorts before every other float.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	rankA := rank(a.Type)
	rankB := rank(b.Type)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch a.Type {
	case UintType, NegIntType:
		return compareInts(a, b)
	case FloatType:
		if c := compareFloats(a.Float, b.Float); c != 0 {
			return c
		}
		return cmp.Compare(a.Width, b.Width)
	case BytesType:
		return bytes.Compare(a.Bytes, b.Bytes)
	case TextType:
		return strings.Compare(a.String, b.String)
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case ArrayType:
		return compareArrays(a, b)
	case MapType:
		return compareMaps(a, b)
	case TagType:
		if c := cmp.Compare(a.Tag, b.Tag); c != 0 {
			return c
		}
		return compareArrays(a, b)
	case NullType:
		return 0
	}
	return 0
}

// Equal reports whether a and b hold the same value.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}

// rank returns the sorting rank of a type.
// Order: Null < Bool < Int < Float < Bytes < Text < Array < Map < Tag
func rank(t Type) int {
	switch t {
	case NullType:
		return 0
	case BoolType:
		return 1
	case UintType, NegIntType:
		return 2
	case FloatType:
		return 3
	case BytesType:
		return 4
	case TextType:
		return 5
	case ArrayType:
		return 6
	case MapType:
		return 7
	case TagType:
		return 8
	}
	return 100
}

func compareInts(a, b *Node) int {
	switch {
	case a.Type == b.Type && a.Type == UintType:
		return cmp.Compare(a.Uint, b.Uint)
	case a.Type == b.Type:
		// larger magnitude is the smaller value
		return cmp.Compare(b.Uint, a.Uint)
	case a.Type == NegIntType:
		return -1
	default:
		return 1
	}
}

func compareFloats(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	case bNaN:
		return 1
	}
	return cmp.Compare(a, b)
}

func compareArrays(a, b *Node) int {
	lenA := len(a.Values)
	lenB := len(b.Values)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

// compareMaps compares entries pairwise in stored order; maps with
// the same entries in a different order are not equal.
func compareMaps(a, b *Node) int {
	lenA := len(a.Fields)
	lenB := len(b.Fields)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Fields[i], b.Fields[i]); c != 0 {
			return c
		}
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}
