package stream

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/signadot/go-cbor/gomap"
	"github.com/signadot/go-cbor/ir"
	"github.com/signadot/go-cbor/parse"
	"github.com/signadot/go-cbor/wire"
)

func TestDecoderNext(t *testing.T) {
	dec := NewDecoder([]byte{0x01, 0x61, 'a', 0xf5})
	want := []*ir.Node{ir.FromUint(1), ir.FromString("a"), ir.FromBool(true)}
	for i, w := range want {
		got, err := dec.Next()
		if err != nil {
			t.Fatalf("item %d: %v", i, err)
		}
		if !ir.Equal(got, w) {
			t.Errorf("item %d = %s, want %s", i, got.Type, w.Type)
		}
	}
	for range 2 {
		if _, err := dec.Next(); err != io.EOF {
			t.Fatalf("err = %v, want io.EOF", err)
		}
	}
}

func TestDecoderEmpty(t *testing.T) {
	if _, err := NewDecoder(nil).Next(); err != io.EOF {
		t.Errorf("err = %v, want io.EOF", err)
	}
}

func TestDecoderStopsAtBadItem(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want error
	}{
		{"malformed", []byte{0x01, 0x1c, 0x02}, wire.ErrMalformed},
		{"truncated", []byte{0x01, 0x82, 0x01}, wire.ErrTruncated},
		{"truncated deep", []byte{0x01, 0x81, 0x81, 0x62, 'a'}, wire.ErrTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := NewDecoder(tt.in)
			if _, err := dec.Next(); err != nil {
				t.Fatal(err)
			}
			_, err := dec.Next()
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if dec.Offset() != 1 {
				t.Errorf("Offset = %d, want 1", dec.Offset())
			}
			if _, err := dec.Next(); err != io.EOF {
				t.Errorf("after failure err = %v, want io.EOF", err)
			}
		})
	}
}

func TestDecoderDecode(t *testing.T) {
	dec := NewDecoder([]byte{0x61, 'a', 0x05, 0x06})
	var n int
	if err := dec.Decode(&n); !errors.Is(err, gomap.ErrTypeMismatch) {
		t.Fatalf("err = %v, want ErrTypeMismatch", err)
	}
	if err := dec.Decode(&n); err != nil || n != 5 {
		t.Fatalf("Decode = %d, %v", n, err)
	}
	if err := dec.Decode(&n); err != nil || n != 6 {
		t.Fatalf("Decode = %d, %v", n, err)
	}
	if err := dec.Decode(&n); err != io.EOF {
		t.Errorf("err = %v, want io.EOF", err)
	}
}

func TestDecoderItems(t *testing.T) {
	dec := NewDecoder([]byte{0x01, 0x02, 0xff, 0x03})
	var got []uint64
	var errs []error
	for node, err := range dec.Items() {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		got = append(got, node.Uint)
	}
	if len(got) != 2 || len(errs) != 1 || !errors.Is(errs[0], wire.ErrMalformed) {
		t.Errorf("got %v, errs %v", got, errs)
	}
	if dec.Remaining() != 2 {
		t.Errorf("Remaining = %d, want 2", dec.Remaining())
	}
}

func TestDecoderParseOptions(t *testing.T) {
	dec := NewDecoder([]byte{0x61, 0xff}, WithParseOptions(parse.ValidateUTF8(true)))
	if _, err := dec.Next(); !errors.Is(err, wire.ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}

func TestEncoderDecoderRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	enc := NewEncoder(buf)
	type Rec struct {
		ID   uint32
		Name string
	}
	recs := []Rec{{1, "a"}, {2, "b"}, {3, "c"}}
	for _, r := range recs {
		if err := enc.Encode(r); err != nil {
			t.Fatal(err)
		}
	}
	if err := enc.Encode(map[int]int{1: 1}); !errors.Is(err, gomap.ErrKeyDomain) {
		t.Fatalf("err = %v", err)
	}
	dec := NewDecoder(buf.Bytes())
	for i := 0; ; i++ {
		var r Rec
		err := dec.Decode(&r)
		if err == io.EOF {
			if i != len(recs) {
				t.Errorf("decoded %d records, want %d", i, len(recs))
			}
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if r != recs[i] {
			t.Errorf("record %d = %+v", i, r)
		}
	}
}
