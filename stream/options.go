package stream

import (
	"github.com/signadot/go-cbor/encode"
	"github.com/signadot/go-cbor/parse"
)

// StreamOption configures Encoder/Decoder behavior.
type StreamOption func(*streamOpts)

type streamOpts struct {
	parseOpts  []parse.ParseOption
	encodeOpts []encode.EncodeOption
}

// WithParseOptions passes options to the parser for every item read.
func WithParseOptions(opts ...parse.ParseOption) StreamOption {
	return func(o *streamOpts) {
		o.parseOpts = append(o.parseOpts, opts...)
	}
}

// WithEncodeOptions passes options to the encoder for every item
// written.
func WithEncodeOptions(opts ...encode.EncodeOption) StreamOption {
	return func(o *streamOpts) {
		o.encodeOpts = append(o.encodeOpts, opts...)
	}
}
