package debug

import (
	"bytes"
	"testing"

	"github.com/signadot/go-cbor/ir"
)

func TestLogf(t *testing.T) {
	buf := &bytes.Buffer{}
	old := out
	out = buf
	defer func() { out = old }()

	Logf("%v %v %d\n", ir.FromSlice([]*ir.Node{ir.FromUint(1), ir.FromString("a")}), []byte{0xab}, 3)
	want := "[1, \"a\"] h'ab' 3\n"
	if buf.String() != want {
		t.Errorf("Logf wrote %q, want %q", buf.String(), want)
	}
}

func TestBoolEnv(t *testing.T) {
	t.Setenv("CBOR_DEBUG_TEST", "true")
	if !boolEnv("CBOR_DEBUG_TEST") {
		t.Errorf("boolEnv(true) = false")
	}
	t.Setenv("CBOR_DEBUG_TEST", "nope")
	if boolEnv("CBOR_DEBUG_TEST") {
		t.Errorf("boolEnv(nope) = true")
	}
}
