package stream

import (
	"io"

	"github.com/signadot/go-cbor/encode"
	"github.com/signadot/go-cbor/gomap"
	"github.com/signadot/go-cbor/ir"
	"github.com/signadot/go-cbor/wire"
)

// Encoder writes a sequence of top-level items to an io.Writer, one
// Write call per item.
type Encoder struct {
	w    io.Writer
	buf  wire.Writer
	opts *streamOpts
}

func NewEncoder(w io.Writer, opts ...StreamOption) *Encoder {
	streamOpts := &streamOpts{}
	for _, opt := range opts {
		opt(streamOpts)
	}
	return &Encoder{w: w, opts: streamOpts}
}

// Encode writes v as the next item. Nothing is written if v cannot be
// encoded.
func (e *Encoder) Encode(v any) error {
	node, err := gomap.ToIR(v)
	if err != nil {
		return err
	}
	return e.EncodeNode(node)
}

// EncodeNode writes node as the next item.
func (e *Encoder) EncodeNode(node *ir.Node) error {
	e.buf.Reset()
	if err := encode.EncodeTo(&e.buf, node, e.opts.encodeOpts...); err != nil {
		return err
	}
	_, err := e.w.Write(e.buf.Bytes())
	return err
}
