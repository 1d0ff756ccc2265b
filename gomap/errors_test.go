package gomap

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/signadot/go-cbor/ir"
)

func TestKeyDomain(t *testing.T) {
	d, err := Marshal(map[int]int{5: 5})
	if !errors.Is(err, ErrKeyDomain) {
		t.Fatalf("err = %v, want ErrKeyDomain", err)
	}
	if d != nil {
		t.Errorf("output produced: %x", d)
	}
	var me *MarshalError
	if !errors.As(err, &me) {
		t.Errorf("err is %T, want *MarshalError", err)
	}

	// nested: nothing is produced for the outer value either
	dst, err := AppendMarshal([]byte{0x01}, []any{1, map[bool]int{true: 1}})
	if !errors.Is(err, ErrKeyDomain) || len(dst) != 1 {
		t.Errorf("AppendMarshal = %x, %v", dst, err)
	}

	// {5: 5} decodes into neither map[string]int nor any
	in := []byte{0xa1, 0x05, 0x05}
	var m map[string]int
	if err := Unmarshal(in, &m); !errors.Is(err, ErrKeyDomain) {
		t.Errorf("Unmarshal into map[string]int: %v", err)
	}
	var a any
	if err := Unmarshal(in, &a); !errors.Is(err, ErrKeyDomain) {
		t.Errorf("Unmarshal into any: %v", err)
	}
	var mi map[int]int
	if err := Unmarshal(in, &mi); !errors.Is(err, ErrKeyDomain) {
		t.Errorf("Unmarshal into map[int]int: %v", err)
	}
	// but it is fine as a raw node
	var n *ir.Node
	if err := Unmarshal(in, &n); err != nil {
		t.Errorf("Unmarshal into *ir.Node: %v", err)
	}
}

func TestTypeMismatch(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		out  any
	}{
		{"text into int", []byte{0x61, 'a'}, new(int)},
		{"uint overflow", []byte{0x19, 0x01, 0x00}, new(uint8)},
		{"int8 overflow", []byte{0x18, 0x80}, new(int8)},
		{"negint into uint", []byte{0x20}, new(uint64)},
		{"negint beyond int64", []byte{0x3b, 0x80, 0, 0, 0, 0, 0, 0, 0}, new(int64)},
		{"uint beyond int64", []byte{0x1b, 0x80, 0, 0, 0, 0, 0, 0, 0}, new(int64)},
		{"int into float", []byte{0x01}, new(float64)},
		{"inexact double into float32", []byte{0xfb, 0x3f, 0xb9, 0x99, 0x99, 0x99, 0x99, 0x99, 0x9a}, new(float32)},
		{"bytes into string", []byte{0x41, 'a'}, new(string)},
		{"text into ByteString", []byte{0x61, 'a'}, new(ByteString)},
		{"bytes into []byte", []byte{0x41, 0x01}, new([]byte)},
		{"null into int", []byte{0xf6}, new(int)},
		{"null into slice", []byte{0xf6}, new([]int)},
		{"fixed array length", []byte{0x82, 0x01, 0x02}, new([3]int)},
		{"struct field count", []byte{0x81, 0x01}, new(struct{ A, B int })},
		{"array into map", []byte{0x80}, new(map[string]int)},
		{"unit from int", []byte{0x01}, new(Unit)},
		{"nested path", []byte{0x81, 0x81, 0x61, 'x'}, new([][]int)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Unmarshal(tt.in, tt.out)
			if !errors.Is(err, ErrTypeMismatch) {
				t.Fatalf("err = %v, want ErrTypeMismatch", err)
			}
		})
	}
}

func TestTypeErrorPath(t *testing.T) {
	type Inner struct{ N uint8 }
	type Outer struct {
		Items []Inner `cbor:"name=items"`
	}
	var out Outer
	err := Unmarshal([]byte{0x81, 0x82, 0x81, 0x01, 0x81, 0x19, 0x01, 0x00}, &out)
	var te *TypeError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v", err)
	}
	if te.FieldPath != "items[1].N" {
		t.Errorf("FieldPath = %q", te.FieldPath)
	}
}

func TestFloat32AcceptsExactDouble(t *testing.T) {
	var f float32
	if err := Unmarshal([]byte{0xfb, 0x3f, 0xf8, 0, 0, 0, 0, 0, 0}, &f); err != nil || f != 1.5 {
		t.Errorf("got %v, %v", f, err)
	}
	if err := Unmarshal([]byte{0xf9, 0x3e, 0x00}, &f); err != nil || f != 1.5 {
		t.Errorf("half: got %v, %v", f, err)
	}
}

func TestGenericDecode(t *testing.T) {
	// [null, true, 1, -1, -2^64, 1.5, h'01', "s", {"k": []}]
	in := []byte{
		0x89, 0xf6, 0xf5, 0x01, 0x20,
		0x3b, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xf9, 0x3e, 0x00, 0x41, 0x01, 0x61, 's',
		0xa1, 0x61, 'k', 0x80,
	}
	var out any
	if err := Unmarshal(in, &out); err != nil {
		t.Fatal(err)
	}
	xs := out.([]any)
	if xs[0] != nil || xs[1] != true || xs[2] != uint64(1) || xs[3] != int64(-1) {
		t.Errorf("scalars: %#v", xs[:4])
	}
	want := new(big.Int).Lsh(big.NewInt(1), 64)
	want.Neg(want)
	if b, ok := xs[4].(*big.Int); !ok || b.Cmp(want) != 0 {
		t.Errorf("bignum: %#v", xs[4])
	}
	if xs[5] != 1.5 || string(xs[6].(ByteString)) != "\x01" || xs[7] != "s" {
		t.Errorf("values: %#v", xs[5:8])
	}
	if m := xs[8].(map[string]any); len(m["k"].([]any)) != 0 {
		t.Errorf("map: %#v", xs[8])
	}
}

func TestBigInt(t *testing.T) {
	tests := []*big.Int{
		big.NewInt(0),
		big.NewInt(-1),
		new(big.Int).SetUint64(math.MaxUint64),
		new(big.Int).Lsh(big.NewInt(1), 64),
		new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 64)),
		new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 100)),
	}
	for _, b := range tests {
		d, err := Marshal(b)
		if err != nil {
			t.Fatal(err)
		}
		var out big.Int
		if err := Unmarshal(d, &out); err != nil {
			t.Fatalf("%s: %v", b, err)
		}
		if out.Cmp(b) != 0 {
			t.Errorf("%s came back as %s", b, &out)
		}
	}
}

func TestUnsupported(t *testing.T) {
	if _, err := Marshal(make(chan int)); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("chan: %v", err)
	}
	var fn func()
	if err := Unmarshal([]byte{0x01}, &fn); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("func: %v", err)
	}
	if err := Unmarshal([]byte{0x01}, 5); err == nil {
		t.Errorf("non-pointer destination accepted")
	}
}
