package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/signadot/go-cbor/format"
	"github.com/signadot/go-cbor/ir"
	"github.com/signadot/go-cbor/parse"

	jsonpatch "github.com/evanphx/json-patch"
)

func TestDecodeHex(t *testing.T) {
	tests := []struct {
		in   string
		want []byte
	}{
		{"83010203", []byte{0x83, 1, 2, 3}},
		{"0x83 01\n02 03\n", []byte{0x83, 1, 2, 3}},
		{"", []byte{}},
	}
	for _, tt := range tests {
		got, err := decodeHex([]byte(tt.in))
		if err != nil {
			t.Fatalf("decodeHex(%q): %v", tt.in, err)
		}
		if !bytes.Equal(got, tt.want) {
			t.Errorf("decodeHex(%q) = %x, want %x", tt.in, got, tt.want)
		}
	}
	if _, err := decodeHex([]byte("8")); err == nil {
		t.Error("odd length hex accepted")
	}
	if _, err := decodeHex([]byte("zz")); err == nil {
		t.Error("bad hex accepted")
	}
}

func TestUnwrapInput(t *testing.T) {
	cfg := &MainConfig{Zstd: true, Hex: true}
	in := compress([]byte("a1 61 61 f5\n"))
	got, err := cfg.unwrapInput(in)
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte{0xa1, 0x61, 0x61, 0xf5}; !bytes.Equal(got, want) {
		t.Errorf("unwrapInput = %x, want %x", got, want)
	}
	if _, err := (&MainConfig{Zstd: true}).unwrapInput([]byte{1, 2, 3}); err == nil {
		t.Error("garbage accepted as zstd")
	}
}

func TestEncodeJSONData(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	if err := encodeJSONData(buf, []byte(`{"a": [1, -1]} 1.5`), true); err != nil {
		t.Fatal(err)
	}
	want := []byte{0xa1, 0x61, 'a', 0x82, 0x01, 0x20, 0xf9, 0x3e, 0x00}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("got %x, want %x", buf.Bytes(), want)
	}
}

func TestWriteItem(t *testing.T) {
	node := ir.FromSlice([]*ir.Node{ir.FromUint(1), ir.FromString("a")})
	tests := []struct {
		name string
		cfg  *MainConfig
		want string
	}{
		{"cbor", &MainConfig{}, "\x82\x01\x61a"},
		{"hex", &MainConfig{HexOut: true}, "82016161\n"},
		{"json", &MainConfig{OutFormat: ptr(format.JSONFormat)}, "[1,\"a\"]\n"},
		{"diag", &MainConfig{OutFormat: ptr(format.DiagFormat)}, "[1, \"a\"]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := bytes.NewBuffer(nil)
			if err := tt.cfg.writeItem(buf, node, 0); err != nil {
				t.Fatal(err)
			}
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestValidateData(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		items     int
		canonical bool
		bad       bool
	}{
		{"canonical", []byte{0x01, 0x82, 0x01, 0x02}, 2, true, false},
		{"wide int", []byte{0x01, 0x18, 0x01}, 2, false, false},
		{"empty", nil, 0, true, false},
		{"truncated", []byte{0x01, 0x82, 0x01}, 1, true, true},
		{"bad utf-8", []byte{0x62, 0xff, 0xfe}, 0, true, true},
		{"duplicate key", []byte{0xa2, 0x01, 0x00, 0x01, 0x00}, 0, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := validateData(tt.data)
			if (err != nil) != tt.bad {
				t.Fatalf("validateData err = %v, want failure %t", err, tt.bad)
			}
			if v.Items != tt.items || v.Canonical != tt.canonical {
				t.Errorf("got %d items canonical %t, want %d %t", v.Items, v.Canonical, tt.items, tt.canonical)
			}
			if !v.Canonical && v.Detail == nil {
				t.Error("non-canonical without detail")
			}
		})
	}
}

func TestReport(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		canonical bool
		ok        bool
		want      []string
	}{
		{"valid", []byte{0x01, 0x02}, false, true, []string{"msg=valid file=in items=2 canonical=true"}},
		{"wide", []byte{0x18, 0x01}, false, true, []string{"level=WARN", "canonical=false"}},
		{"wide required", []byte{0x18, 0x01}, true, false, []string{"level=WARN"}},
		{"truncated", []byte{0x82, 0x01}, false, false, []string{"level=ERROR", "msg=invalid", "items=0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := bytes.NewBuffer(nil)
			v, err := validateData(tt.data)
			if ok := report(newLog(buf), "in", v, err, tt.canonical); ok != tt.ok {
				t.Errorf("report = %t, want %t", ok, tt.ok)
			}
			out := buf.String()
			if strings.Contains(out, "time=") || strings.Contains(out, "level=INFO") {
				t.Errorf("unexpected attrs in %q", out)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("%q does not contain %q", out, w)
				}
			}
		})
	}
}

func TestLineDiff(t *testing.T) {
	a := "[\n  1,\n  2\n]\n"
	b := "[\n  1,\n  3\n]\n"
	got, differs := lineDiff(a, b)
	if !differs {
		t.Fatal("expected a difference")
	}
	want := "  [\n    1,\n-   2\n+   3\n  ]\n"
	if got != want {
		t.Errorf("lineDiff =\n%s\nwant\n%s", got, want)
	}
	if _, differs := lineDiff(a, a); differs {
		t.Error("identical inputs reported different")
	}
}

func TestDiagLines(t *testing.T) {
	cfg := &DiffConfig{MainConfig: &MainConfig{}}
	got, err := diagLines([]byte{0x01, 0xf9, 0x3e, 0x00}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got != "1\n1.5\n" {
		t.Errorf("diagLines = %q", got)
	}
	cfg.Widths = true
	got, err = diagLines([]byte{0xf9, 0x3e, 0x00}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got != "1.5_1\n" {
		t.Errorf("diagLines with widths = %q", got)
	}
}

func TestFilter(t *testing.T) {
	item := func(hex string) *ir.Node {
		d, err := decodeHex([]byte(hex))
		if err != nil {
			t.Fatal(err)
		}
		node, err := parse.Parse(d)
		if err != nil {
			t.Fatal(err)
		}
		return node
	}
	tests := []struct {
		name  string
		pred  string
		node  *ir.Node
		index int
		want  bool
	}{
		// {"id": 11}
		{"map field", `kind == "Map" && item.id > 10`, item("a1626964 0b"), 0, true},
		{"map field false", `kind == "Map" && item.id > 10`, item("a1626964 01"), 0, false},
		{"kind", `kind == "Text"`, item("6161"), 0, true},
		// 1("x")
		{"tag", `tag == 1 && item == "x"`, item("c1 6178"), 0, true},
		{"untagged", `tag == nil`, item("01"), 0, true},
		{"index", `index % 2 == 1`, item("01"), 3, true},
		{"array", `len(item) == 2 && item[1] == -1`, item("82 01 20"), 0, true},
		{"truthy", `item.id`, item("a1626964 0b"), 0, true},
		{"falsy", `item`, item("80"), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prg, err := compileFilter(tt.pred)
			if err != nil {
				t.Fatal(err)
			}
			got, err := keep(prg, tt.node, tt.index, 0)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("keep(%s) = %t, want %t", tt.pred, got, tt.want)
			}
		})
	}
	if _, err := compileFilter(`item +`); err == nil {
		t.Error("bad expression compiled")
	}
}

func TestPatchNode(t *testing.T) {
	p, err := jsonpatch.DecodePatch([]byte(`[
		{"op": "replace", "path": "/a", "value": 2},
		{"op": "add", "path": "/b", "value": [true]}
	]`))
	if err != nil {
		t.Fatal(err)
	}
	node := ir.FromKeyVals([]ir.KeyVal{{Key: ir.FromString("a"), Val: ir.FromUint(1)}})
	got, err := patchNode(p, node)
	if err != nil {
		t.Fatal(err)
	}
	if a := ir.Get(got, "a"); a == nil || !ir.Equal(a, ir.FromUint(2)) {
		t.Errorf("a = %v", a)
	}
	want := ir.FromSlice([]*ir.Node{ir.FromBool(true)})
	if b := ir.Get(got, "b"); b == nil || !ir.Equal(b, want) {
		t.Errorf("b = %v", b)
	}
	bad, err := jsonpatch.DecodePatch([]byte(`[{"op": "remove", "path": "/missing"}]`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := patchNode(bad, node); err == nil {
		t.Error("removing a missing member succeeded")
	}
}

func TestInputPaths(t *testing.T) {
	if got := inputPaths(nil); len(got) != 1 || got[0] != "-" {
		t.Errorf("inputPaths(nil) = %v", got)
	}
	if got := strings.Join(inputPaths([]string{"a", "b"}), ","); got != "a,b" {
		t.Errorf("inputPaths = %s", got)
	}
}
