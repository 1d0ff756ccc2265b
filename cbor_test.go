package cbor

import (
	"bytes"
	"errors"
	"math"
	"runtime"
	"testing"

	fxcbor "github.com/fxamacker/cbor/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/signadot/go-cbor/ir"
)

func TestHugeDeclaredLength(t *testing.T) {
	in := []byte{0x9b, 0x00, 0xff, 0xff, 0xff, 0x00, 0xff, 0xff, 0xff}
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	var out []uint32
	err := Unmarshal(in, &out)
	runtime.ReadMemStats(&after)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("err = %v, want ErrTruncated", err)
	}
	if d := after.TotalAlloc - before.TotalAlloc; d > 1<<20 {
		t.Errorf("allocated %d bytes", d)
	}
}

func TestUnmarshalExtraneous(t *testing.T) {
	var n int
	if err := Unmarshal([]byte{0x01, 0x02}, &n); !errors.Is(err, ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}

func TestDecodeFirst(t *testing.T) {
	data := []byte{0x82, 0x01, 0x02, 0x61, 'x'}
	var xs []int
	n, err := DecodeFirst(data, &xs)
	if err != nil || n != 3 {
		t.Fatalf("DecodeFirst = %d, %v", n, err)
	}
	var s string
	n, err = DecodeFirst(data[n:], &s)
	if err != nil || n != 2 || s != "x" {
		t.Fatalf("DecodeFirst = %d, %q, %v", n, s, err)
	}
}

func TestParseRaw(t *testing.T) {
	node, n, err := ParseRaw([]byte{0xa1, 0x05, 0x05, 0xff})
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 || node.Type != ir.MapType || node.Fields[0].Uint != 5 {
		t.Errorf("ParseRaw = %s, %d", node.Type, n)
	}
}

func TestValues(t *testing.T) {
	type Pair struct {
		K string
		V int
	}
	var data []byte
	for _, p := range []Pair{{"a", 1}, {"b", -2}} {
		d, err := Marshal(p)
		if err != nil {
			t.Fatal(err)
		}
		data = append(data, d...)
	}
	data = append(data, 0x01, 0x1c)

	var got []Pair
	var errs []error
	for v, err := range Values[Pair](data) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		got = append(got, v)
	}
	if diff := cmp.Diff([]Pair{{"a", 1}, {"b", -2}}, got); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
	if len(errs) != 2 || !errors.Is(errs[0], ErrTypeMismatch) || !errors.Is(errs[1], ErrMalformed) {
		t.Errorf("errs = %v", errs)
	}
}

func TestDiagnose(t *testing.T) {
	got, err := Diagnose([]byte{0x82, 0x01, 0x41, 0xff, 0xc1, 0x00})
	if err != nil {
		t.Fatal(err)
	}
	if want := "[1, h'ff']\n1(0)"; got != want {
		t.Errorf("Diagnose = %q, want %q", got, want)
	}
}

type interopRec struct {
	_     struct{} `cbor:",toarray"`
	U     uint64
	I     int64
	F32   float32
	F64   float64
	B     bool
	S     string
	Bytes ByteString
	List  []int16
	M     map[string]int32
	Ptr   *int
}

type fxRec struct {
	_     struct{} `cbor:",toarray"`
	U     uint64
	I     int64
	F32   float32
	F64   float64
	B     bool
	S     string
	Bytes []byte
	List  []int16
	M     map[string]int32
	Ptr   *int
}

func TestInterop(t *testing.T) {
	seven := 7
	ours := interopRec{
		U: math.MaxUint64, I: math.MinInt64,
		F32: math.MaxFloat32, F64: -math.SmallestNonzeroFloat64,
		B: true, S: "héllo", Bytes: ByteString{0, 1, 2},
		List: []int16{-1, 1000}, M: map[string]int32{"a": 1, "b": -1},
		Ptr: &seven,
	}
	theirs := fxRec{
		U: ours.U, I: ours.I, F32: ours.F32, F64: ours.F64, B: ours.B, S: ours.S,
		Bytes: []byte(ours.Bytes), List: ours.List, M: ours.M, Ptr: ours.Ptr,
	}

	t.Run("ours to theirs", func(t *testing.T) {
		d, err := Marshal(ours)
		if err != nil {
			t.Fatal(err)
		}
		var got fxRec
		if err := fxcbor.Unmarshal(d, &got); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(theirs, got, cmpopts.IgnoreUnexported(fxRec{})); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
	})
	t.Run("theirs to ours", func(t *testing.T) {
		d, err := fxcbor.Marshal(theirs)
		if err != nil {
			t.Fatal(err)
		}
		var got interopRec
		if err := Unmarshal(d, &got); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(ours, got, cmpopts.IgnoreUnexported(interopRec{})); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
	})
	t.Run("same bytes", func(t *testing.T) {
		for _, v := range []any{uint64(0), uint64(24), int64(-25), uint32(math.MaxUint32), "x", []uint8{1}, true, nil, float32(1.5), 2.5} {
			ourBytes, err := Marshal(v)
			if err != nil {
				t.Fatal(err)
			}
			fxBytes, err := fxcbor.Marshal(v)
			if err != nil {
				t.Fatal(err)
			}
			if _, isBytes := v.([]uint8); isBytes {
				// a plain []byte is an array here and a byte string there
				fxBytes, _ = fxcbor.Marshal([]uint64{1})
			}
			if !bytes.Equal(ourBytes, fxBytes) {
				t.Errorf("%#v: ours %x, theirs %x", v, ourBytes, fxBytes)
			}
		}
	})
}
