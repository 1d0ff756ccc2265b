package parse

import (
	"unicode/utf8"

	"github.com/signadot/go-cbor/debug"
	"github.com/signadot/go-cbor/ir"
	"github.com/signadot/go-cbor/wire"
)

// Parse decodes exactly one item from data. Bytes left over after the
// item fail with wire.ErrMalformed.
func Parse(data []byte, opts ...ParseOption) (*ir.Node, error) {
	r := wire.NewReader(data)
	node, err := ParseReader(r, opts...)
	if err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, wire.Malformed(r.Offset(), "%d extraneous bytes after item", r.Remaining())
	}
	return node, nil
}

// ParseFirst decodes the first item in data and reports the number of
// bytes it occupied.
func ParseFirst(data []byte, opts ...ParseOption) (*ir.Node, int, error) {
	r := wire.NewReader(data)
	node, err := ParseReader(r, opts...)
	if err != nil {
		return nil, 0, err
	}
	return node, r.Offset(), nil
}

// ParseReader decodes the next item from r. On error r is left at the
// start of the item.
func ParseReader(r *wire.Reader, opts ...ParseOption) (*ir.Node, error) {
	p := &parser{r: r, opts: parseOpts{maxDepth: DefaultMaxDepth}}
	for _, opt := range opts {
		opt(&p.opts)
	}
	start := r.Offset()
	node, err := p.item(0)
	if err != nil {
		r.Seek(start)
		if debug.Parse() {
			debug.Logf("parse: offset %d: %v\n", start, err)
		}
		return nil, err
	}
	if debug.Parse() {
		debug.Logf("parse: offset %d-%d: %v\n", start, r.Offset(), node)
	}
	return node, nil
}

type parser struct {
	r    *wire.Reader
	opts parseOpts
}

func (p *parser) item(depth int) (*ir.Node, error) {
	if p.opts.maxDepth > 0 && depth > p.opts.maxDepth {
		return nil, wire.Malformed(p.r.Offset(), "nesting exceeds depth %d", p.opts.maxDepth)
	}
	h, err := p.r.ReadHead()
	if err != nil {
		return nil, err
	}
	if p.opts.canonical && !h.Canonical() {
		return nil, wire.Malformed(h.Offset, "non-canonical %s header", h.Major)
	}
	node, err := p.value(h, depth)
	if err != nil {
		return nil, err
	}
	if p.opts.positions != nil {
		p.opts.positions[node] = h.Offset
	}
	return node, nil
}

func (p *parser) value(h wire.Head, depth int) (*ir.Node, error) {
	switch h.Major {
	case wire.MajorUint:
		return ir.FromUint(h.Arg), nil
	case wire.MajorNegInt:
		return ir.FromNegInt(h.Arg), nil
	case wire.MajorBytes:
		d, err := p.payload(h)
		if err != nil {
			return nil, err
		}
		return ir.FromBytes(append([]byte{}, d...)), nil
	case wire.MajorText:
		d, err := p.payload(h)
		if err != nil {
			return nil, err
		}
		if p.opts.validateUTF8 && !utf8.Valid(d) {
			return nil, wire.Malformed(h.Offset, "text string is not valid UTF-8")
		}
		return ir.FromString(string(d)), nil
	case wire.MajorArray:
		return p.array(h, depth)
	case wire.MajorMap:
		return p.mapping(h, depth)
	case wire.MajorTag:
		child, err := p.item(depth + 1)
		if err != nil {
			return nil, err
		}
		return ir.FromTag(h.Arg, child), nil
	default:
		return p.simple(h)
	}
}

// payload returns the string payload following h, aliasing the input.
func (p *parser) payload(h wire.Head) ([]byte, error) {
	if h.Arg > uint64(p.r.Remaining()) {
		return nil, wire.Truncated(h.Offset, "%s of length %d with %d bytes left", h.Major, h.Arg, p.r.Remaining())
	}
	return p.r.Take(int(h.Arg))
}

func (p *parser) array(h wire.Head, depth int) (*ir.Node, error) {
	if h.Arg > uint64(p.r.Remaining()) {
		return nil, wire.Truncated(h.Offset, "array of %d items with %d bytes left", h.Arg, p.r.Remaining())
	}
	values := make([]*ir.Node, h.Arg)
	for i := range values {
		v, err := p.item(depth + 1)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return ir.FromSlice(values), nil
}

func (p *parser) mapping(h wire.Head, depth int) (*ir.Node, error) {
	if h.Arg > uint64(p.r.Remaining()/2) {
		return nil, wire.Truncated(h.Offset, "map of %d pairs with %d bytes left", h.Arg, p.r.Remaining())
	}
	node := &ir.Node{
		Type:   ir.MapType,
		Fields: make([]*ir.Node, h.Arg),
		Values: make([]*ir.Node, h.Arg),
	}
	for i := range node.Values {
		k, err := p.item(depth + 1)
		if err != nil {
			return nil, err
		}
		v, err := p.item(depth + 1)
		if err != nil {
			return nil, err
		}
		node.Fields[i] = k
		node.Values[i] = v
	}
	if p.opts.uniqueKeys {
		if i, j := duplicateKey(node.Fields); i >= 0 {
			return nil, wire.Malformed(h.Offset, "map keys %d and %d are equal", i, j)
		}
	}
	return node, nil
}

// duplicateKey returns the positions of the first key equal to an
// earlier one, or -1.
func duplicateKey(keys []*ir.Node) (int, int) {
	seen := make(map[uint64][]int, len(keys))
	for j, k := range keys {
		hash := k.Hash()
		for _, i := range seen[hash] {
			if ir.Equal(keys[i], k) {
				return i, j
			}
		}
		seen[hash] = append(seen[hash], j)
	}
	return -1, -1
}

func (p *parser) simple(h wire.Head) (*ir.Node, error) {
	if h.IsFloat() {
		f, bits := h.Float()
		return &ir.Node{Type: ir.FloatType, Float: f, Width: ir.Width(bits)}, nil
	}
	if h.Info == wire.InfoUint8 && h.Arg < 32 {
		return nil, wire.Malformed(h.Offset, "two-byte encoding of simple value %d", h.Arg)
	}
	switch h.Arg {
	case wire.SimpleFalse:
		return ir.FromBool(false), nil
	case wire.SimpleTrue:
		return ir.FromBool(true), nil
	case wire.SimpleNull, wire.SimpleUndefined:
		return ir.Null(), nil
	default:
		return nil, wire.Malformed(h.Offset, "unassigned simple value %d", h.Arg)
	}
}
