package gomap

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type Color interface{ isColor() }

type Red struct{}

type Blue struct {
	S string
	N int32
}

type Green struct {
	S string
	N int32
}

type Shade uint8

func (Red) isColor()   {}
func (Blue) isColor()  {}
func (Green) isColor() {}
func (Shade) isColor() {}

type Shape interface{ isShape() }

type Circle struct{ R uint8 }

type Dots []uint8

func (*Circle) isShape() {}
func (Dots) isShape()    {}

func init() {
	RegisterSum[Color](Red{}, Blue{}, Green{}, Shade(0))
	RegisterSum[Shape](&Circle{}, Dots(nil))
}

func TestSumEncoding(t *testing.T) {
	tests := []struct {
		name string
		in   Color
		want []byte
	}{
		{"no fields", Red{}, []byte{0x81, 0x63, 'R', 'e', 'd'}},
		{"fields", Blue{S: "x", N: -1}, []byte{0x83, 0x64, 'B', 'l', 'u', 'e', 0x61, 'x', 0x20}},
		{"non-struct", Shade(7), []byte{0x82, 0x65, 'S', 'h', 'a', 'd', 'e', 0x07}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Marshal(&tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(d, tt.want) {
				t.Errorf("Marshal = %x, want %x", d, tt.want)
			}
			var out Color
			if err := Unmarshal(d, &out); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.in, out); diff != "" {
				t.Errorf("round trip (-in +out):\n%s", diff)
			}
		})
	}
}

func TestSumInContainers(t *testing.T) {
	type Palette struct {
		Name   string
		Colors []Color
		ByName map[string]Color
	}
	in := Palette{
		Name:   "p",
		Colors: []Color{Red{}, Green{S: "g", N: 2}, Blue{S: "b", N: 3}},
		ByName: map[string]Color{"r": Red{}, "s": Shade(1)},
	}
	checkRoundTrip(t, in)
}

func TestNonStructVariant(t *testing.T) {
	d, err := Marshal(Shade(3))
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte{0x82, 0x65, 'S', 'h', 'a', 'd', 'e', 0x03}; !bytes.Equal(d, want) {
		t.Errorf("Marshal = %x, want %x", d, want)
	}
	var sh Shade
	if err := Unmarshal(d, &sh); err != nil {
		t.Fatal(err)
	}
	if sh != 3 {
		t.Errorf("got %d", sh)
	}
	var c Color
	if err := Unmarshal([]byte{0x82, 0x65, 'S', 'h', 'a', 'd', 'e', 0x61, 'x'}, &c); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("text payload for Shade: %v", err)
	}

	var s Shape = Dots{1, 2}
	d, err = Marshal(&s)
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte{0x82, 0x64, 'D', 'o', 't', 's', 0x82, 0x01, 0x02}; !bytes.Equal(d, want) {
		t.Errorf("Marshal = %x, want %x", d, want)
	}
	var out Shape
	if err := Unmarshal(d, &out); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(s, out); diff != "" {
		t.Errorf("round trip (-in +out):\n%s", diff)
	}
}

func TestPointerVariant(t *testing.T) {
	want := []byte{0x82, 0x66, 'C', 'i', 'r', 'c', 'l', 'e', 0x02}
	for _, in := range []any{Circle{R: 2}, &Circle{R: 2}} {
		d, err := Marshal(in)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(d, want) {
			t.Errorf("Marshal(%T) = %x, want %x", in, d, want)
		}
	}
	var s Shape
	if err := Unmarshal(want, &s); err != nil {
		t.Fatal(err)
	}
	if c, ok := s.(*Circle); !ok || c.R != 2 {
		t.Errorf("got %#v", s)
	}
	var c Circle
	if err := Unmarshal(want, &c); err != nil {
		t.Fatal(err)
	}
	if c.R != 2 {
		t.Errorf("got %#v", c)
	}
}

type label string

func (l label) String() string { return string(l) }

func TestNilInterfaceField(t *testing.T) {
	type labelled struct {
		Label fmt.Stringer
		Shape Shape
		N     int
	}
	d, err := Marshal(labelled{N: 1})
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte{0x83, 0xf6, 0xf6, 0x01}; !bytes.Equal(d, want) {
		t.Errorf("Marshal = %x, want %x", d, want)
	}
	out := labelled{Label: label("x"), Shape: Dots{}}
	if err := Unmarshal(d, &out); err != nil {
		t.Fatal(err)
	}
	if out.Label != nil || out.Shape != nil || out.N != 1 {
		t.Errorf("got %#v", out)
	}
}

func TestSumDecodeByIndex(t *testing.T) {
	// [1, "x", 5] selects Blue by position
	var out Color
	if err := Unmarshal([]byte{0x83, 0x01, 0x61, 'x', 0x05}, &out); err != nil {
		t.Fatal(err)
	}
	if out != (Blue{S: "x", N: 5}) {
		t.Errorf("got %#v", out)
	}
}

func TestSumDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
	}{
		{"unknown name", []byte{0x81, 0x63, 'T', 'a', 'n'}},
		{"index out of range", []byte{0x81, 0x09}},
		{"empty array", []byte{0x80}},
		{"not an array", []byte{0x01}},
		{"missing field", []byte{0x82, 0x64, 'B', 'l', 'u', 'e', 0x61, 'x'}},
		{"extra field", []byte{0x82, 0x63, 'R', 'e', 'd', 0x01}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out Color
			if err := Unmarshal(tt.in, &out); !errors.Is(err, ErrTypeMismatch) {
				t.Errorf("err = %v, want ErrTypeMismatch", err)
			}
		})
	}
}

func TestConcreteVariant(t *testing.T) {
	d, err := Marshal(Green{S: "g", N: 1})
	if err != nil {
		t.Fatal(err)
	}
	var g Green
	if err := Unmarshal(d, &g); err != nil {
		t.Fatal(err)
	}
	var b Blue
	if err := Unmarshal(d, &b); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("decoding Green into Blue: %v", err)
	}
}

func TestRegisterSumMisuse(t *testing.T) {
	expectPanic := func(name string, f func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s: no panic", name)
			}
		}()
		f()
	}
	type notIface struct{}
	expectPanic("not an interface", func() { RegisterSum[notIface]() })
	expectPanic("registered twice", func() { RegisterSum[Color]() })
	type Other interface{ isColor() }
	expectPanic("variant reused", func() { RegisterSum[Other](Red{}) })
	type Dup interface{}
	expectPanic("duplicate name", func() { RegisterSum[Dup](dupA{}, dupA{}) })
}

type dupA struct{}
