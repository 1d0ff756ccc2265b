package wire

import (
	"math"

	"github.com/x448/float16"
)

// Major is the kind carried in the high 3 bits of an item's initial byte.
type Major byte

const (
	MajorUint Major = iota
	MajorNegInt
	MajorBytes
	MajorText
	MajorArray
	MajorMap
	MajorTag
	MajorSimple
)

func (m Major) String() string {
	switch m {
	case MajorUint:
		return "uint"
	case MajorNegInt:
		return "negint"
	case MajorBytes:
		return "bytes"
	case MajorText:
		return "text"
	case MajorArray:
		return "array"
	case MajorMap:
		return "map"
	case MajorTag:
		return "tag"
	case MajorSimple:
		return "simple"
	default:
		return "<unknown major>"
	}
}

// Additional information values (low 5 bits of the initial byte).
const (
	InfoUint8      = 24
	InfoUint16     = 25
	InfoUint32     = 26
	InfoUint64     = 27
	InfoIndefinite = 31
)

// Simple values and float markers under MajorSimple.
const (
	SimpleFalse     = 20
	SimpleTrue      = 21
	SimpleNull      = 22
	SimpleUndefined = 23
	FloatHalf       = InfoUint16
	FloatSingle     = InfoUint32
	FloatDouble     = InfoUint64
)

// Head is a decoded item header.
type Head struct {
	Major Major
	Info  byte
	// Arg is the integer value, length, tag number, simple value or
	// raw float bits, depending on Major.
	Arg uint64
	// Offset is the position of the initial byte in the input.
	Offset int
}

// Size reports the number of argument bytes following the initial byte.
func (h Head) Size() int {
	return infoSize(h.Info)
}

// Canonical reports whether the header uses the smallest encoding of
// its argument. Float headers are always canonical: their width is the
// value's precision, not a length.
func (h Head) Canonical() bool {
	if h.Major == MajorSimple {
		return h.Info != InfoUint8 || h.Arg >= 32
	}
	return h.Size() == ArgSize(h.Arg)
}

func infoSize(info byte) int {
	switch info {
	case InfoUint8:
		return 1
	case InfoUint16:
		return 2
	case InfoUint32:
		return 4
	case InfoUint64:
		return 8
	default:
		return 0
	}
}

// ArgSize reports how many bytes the canonical encoding of arg needs
// after the initial byte.
func ArgSize(arg uint64) int {
	switch {
	case arg < 24:
		return 0
	case arg <= math.MaxUint8:
		return 1
	case arg <= math.MaxUint16:
		return 2
	case arg <= math.MaxUint32:
		return 4
	default:
		return 8
	}
}

// ReadHead reads one header. Any argument width is accepted whether or
// not it is minimal. Reserved additional information and indefinite
// lengths fail with ErrMalformed.
func (r *Reader) ReadHead() (Head, error) {
	start := r.off
	ib, err := r.ReadByte()
	if err != nil {
		return Head{}, err
	}
	h := Head{Major: Major(ib >> 5), Info: ib & 0x1f, Offset: start}
	switch {
	case h.Info < InfoUint8:
		h.Arg = uint64(h.Info)
	case h.Info <= InfoUint64:
		if h.Arg, err = r.argument(h.Info); err != nil {
			r.off = start
			return Head{}, err
		}
	case h.Info == InfoIndefinite:
		r.off = start
		if h.Major == MajorSimple {
			return Head{}, Malformed(start, "unexpected break")
		}
		return Head{}, Malformed(start, "indefinite-length %s is not supported", h.Major)
	default:
		r.off = start
		return Head{}, Malformed(start, "reserved additional information %d", h.Info)
	}
	return h, nil
}

func (r *Reader) argument(info byte) (uint64, error) {
	switch info {
	case InfoUint8:
		b, err := r.ReadByte()
		return uint64(b), err
	case InfoUint16:
		v, err := r.Uint16()
		return uint64(v), err
	case InfoUint32:
		v, err := r.Uint32()
		return uint64(v), err
	default:
		return r.Uint64()
	}
}

// IsFloat reports whether h introduces a floating point value.
func (h Head) IsFloat() bool {
	return h.Major == MajorSimple && h.Info >= FloatHalf && h.Info <= FloatDouble
}

// Float decodes a float header. bits is 16, 32 or 64 according to the
// width found on the wire.
func (h Head) Float() (f float64, bits int) {
	switch h.Info {
	case FloatHalf:
		return float64(float16.Frombits(uint16(h.Arg)).Float32()), 16
	case FloatSingle:
		return float64(math.Float32frombits(uint32(h.Arg))), 32
	default:
		return math.Float64frombits(h.Arg), 64
	}
}
