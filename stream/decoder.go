package stream

import (
	"io"
	"iter"

	"github.com/signadot/go-cbor/debug"
	"github.com/signadot/go-cbor/gomap"
	"github.com/signadot/go-cbor/ir"
	"github.com/signadot/go-cbor/parse"
	"github.com/signadot/go-cbor/wire"
)

// Decoder reads a sequence of concatenated top-level items from a
// buffer. A Decoder is not safe for concurrent use.
type Decoder struct {
	r      *wire.Reader
	opts   *streamOpts
	failed bool
}

// NewDecoder creates a Decoder over data. data is not copied and must
// not change while the Decoder is in use.
func NewDecoder(data []byte, opts ...StreamOption) *Decoder {
	streamOpts := &streamOpts{}
	for _, opt := range opts {
		opt(streamOpts)
	}
	return &Decoder{r: wire.NewReader(data), opts: streamOpts}
}

// Next returns the next item. It returns io.EOF once the input is
// exhausted.
//
// If an item is malformed or truncated, Next returns that error once,
// leaves Offset at the start of the failed item and returns io.EOF
// from then on. There is no resynchronization.
func (d *Decoder) Next() (*ir.Node, error) {
	if d.failed || d.r.Remaining() == 0 {
		return nil, io.EOF
	}
	start := d.r.Offset()
	node, err := parse.ParseReader(d.r, d.opts.parseOpts...)
	if err != nil {
		d.failed = true
		if debug.Stream() {
			debug.Logf("stream: item at %d: %v\n", start, err)
		}
		return nil, err
	}
	if debug.Stream() {
		debug.Logf("stream: item at %d-%d\n", start, d.r.Offset())
	}
	return node, nil
}

// Decode reads the next item into v. An item that does not fit v is
// still consumed: the error wraps gomap.ErrTypeMismatch and the next
// call moves on to the following item.
func (d *Decoder) Decode(v any) error {
	node, err := d.Next()
	if err != nil {
		return err
	}
	return gomap.FromIR(node, v)
}

// Items iterates over the remaining items. Iteration stops after the
// first error, which is yielded with a nil node.
func (d *Decoder) Items() iter.Seq2[*ir.Node, error] {
	return func(yield func(*ir.Node, error) bool) {
		for {
			node, err := d.Next()
			if err == io.EOF {
				return
			}
			if !yield(node, err) || err != nil {
				return
			}
		}
	}
}

// Offset reports the number of bytes consumed by successfully read
// items.
func (d *Decoder) Offset() int {
	return d.r.Offset()
}

// Remaining reports the number of bytes not yet consumed.
func (d *Decoder) Remaining() int {
	return d.r.Remaining()
}
