package gomap

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseStructTag(t *testing.T) {
	tests := []struct {
		tag     string
		want    map[string]string
		wantErr bool
	}{
		{"", map[string]string{}, false},
		{"-", map[string]string{"-": ""}, false},
		{"name=id", map[string]string{"name": "id"}, false},
		{"name='a b',-", map[string]string{"name": "a b", "-": ""}, false},
		{"name=x other", map[string]string{"name": "x", "other": ""}, false},
		{"=x", nil, true},
		{"name='open", nil, true},
	}
	for _, tt := range tests {
		got, err := ParseStructTag(tt.tag)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStructTag(%q) err = %v", tt.tag, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); !tt.wantErr && diff != "" {
			t.Errorf("ParseStructTag(%q) (-want +got):\n%s", tt.tag, diff)
		}
	}
}

func TestStructFields(t *testing.T) {
	type Embedded struct{ X int }
	type S struct {
		A int
		b int
		Embedded
		C int `cbor:"-"`
		D int `cbor:"name=dee"`
	}
	fields, err := structFields(reflect.TypeFor[S]())
	if err != nil {
		t.Fatal(err)
	}
	want := []fieldInfo{{0, "A"}, {2, "Embedded"}, {4, "dee"}}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Errorf("fields (-want +got):\n%s", diff)
	}
}
