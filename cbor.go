package cbor

import (
	"iter"
	"strings"

	"github.com/signadot/go-cbor/diag"
	"github.com/signadot/go-cbor/gomap"
	"github.com/signadot/go-cbor/ir"
	"github.com/signadot/go-cbor/parse"
	"github.com/signadot/go-cbor/stream"
	"github.com/signadot/go-cbor/wire"
)

var (
	ErrTruncated    = wire.ErrTruncated
	ErrMalformed    = wire.ErrMalformed
	ErrTypeMismatch = gomap.ErrTypeMismatch
	ErrKeyDomain    = gomap.ErrKeyDomain
)

type (
	ByteString = gomap.ByteString
	Unit       = gomap.Unit
	Tagged     = gomap.Tagged
	Encoder    = gomap.Encoder
	Decoder    = gomap.Decoder
	Encodable  = gomap.Encodable
	Decodable  = gomap.Decodable
)

// RegisterSum registers the variants of interface type I.
// See gomap.RegisterSum.
func RegisterSum[I any](variants ...I) {
	gomap.RegisterSum[I](variants...)
}

// Marshal encodes v as a single item.
func Marshal(v any) ([]byte, error) {
	return gomap.Marshal(v)
}

// Unmarshal decodes exactly one item from data into v. Bytes after
// the item fail with ErrMalformed.
func Unmarshal(data []byte, v any) error {
	return gomap.Unmarshal(data, v)
}

// DecodeFirst decodes the first item of data into v and reports the
// number of bytes it occupied.
func DecodeFirst(data []byte, v any) (int, error) {
	node, n, err := parse.ParseFirst(data)
	if err != nil {
		return 0, err
	}
	if err := gomap.FromIR(node, v); err != nil {
		return 0, err
	}
	return n, nil
}

// ParseRaw decodes the first item of data into its IR tree and
// reports the number of bytes it occupied.
func ParseRaw(data []byte) (*ir.Node, int, error) {
	return parse.ParseFirst(data)
}

// Items iterates over the concatenated items in data. Iteration stops
// after the first malformed item.
func Items(data []byte) iter.Seq2[*ir.Node, error] {
	return stream.NewDecoder(data).Items()
}

// Values iterates over the concatenated items in data, decoding each
// into a T. An item that does not fit T yields its error and iteration
// continues; a malformed item ends it.
func Values[T any](data []byte) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for node, err := range Items(data) {
			var v T
			if err == nil {
				err = gomap.FromIR(node, &v)
			}
			if !yield(v, err) {
				return
			}
		}
	}
}

// Diagnose renders every item in data in diagnostic notation, one per
// line.
func Diagnose(data []byte) (string, error) {
	var lines []string
	for node, err := range Items(data) {
		if err != nil {
			return "", err
		}
		s, err := diag.String(node)
		if err != nil {
			return "", err
		}
		lines = append(lines, s)
	}
	return strings.Join(lines, "\n"), nil
}
