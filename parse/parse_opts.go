package parse

import "github.com/signadot/go-cbor/ir"

type parseOpts struct {
	validateUTF8 bool
	canonical    bool
	uniqueKeys   bool
	maxDepth     int
	positions    map[*ir.Node]int
}

type ParseOption func(*parseOpts)

// ValidateUTF8 makes text strings that are not valid UTF-8 fail with
// wire.ErrMalformed. By default text payloads are taken as is.
func ValidateUTF8(v bool) ParseOption {
	return func(o *parseOpts) { o.validateUTF8 = v }
}

// RequireCanonical makes headers that do not use the smallest argument
// encoding fail with wire.ErrMalformed.
func RequireCanonical(v bool) ParseOption {
	return func(o *parseOpts) { o.canonical = v }
}

// UniqueKeys makes maps holding two equal keys (see ir.Equal) fail
// with wire.ErrMalformed.
func UniqueKeys(v bool) ParseOption {
	return func(o *parseOpts) { o.uniqueKeys = v }
}

// DefaultMaxDepth is the nesting bound used when no MaxDepth option
// is given.
const DefaultMaxDepth = 1024

// MaxDepth bounds container and tag nesting. The default is
// DefaultMaxDepth. Zero or less means no limit, which lets hostile
// input exhaust the goroutine stack.
func MaxDepth(n int) ParseOption {
	return func(o *parseOpts) { o.maxDepth = n }
}

// ParsePositions records the input offset of the header of every
// parsed node in m.
func ParsePositions(m map[*ir.Node]int) ParseOption {
	return func(o *parseOpts) { o.positions = m }
}
