package wire

import (
	"encoding/binary"
	"math"

	"github.com/x448/float16"
)

// Reader is a bounds-checked cursor over a read-only byte buffer.
// A Reader is not safe for concurrent use.
type Reader struct {
	data []byte
	off  int
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Remaining reports the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

// Offset reports the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.off
}

// Len reports the total size of the underlying buffer.
func (r *Reader) Len() int {
	return len(r.data)
}

// Seek moves the cursor to an absolute offset. It is used to rewind
// to the start of an item that failed to decode.
func (r *Reader) Seek(off int) {
	if off < 0 {
		off = 0
	}
	if off > len(r.data) {
		off = len(r.data)
	}
	r.off = off
}

// Take returns the next n bytes and advances past them. The returned
// slice aliases the underlying buffer. If fewer than n bytes remain,
// Take returns ErrTruncated and does not move.
func (r *Reader) Take(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, Truncated(r.off, "need %d bytes, have %d", n, r.Remaining())
	}
	res := r.data[r.off : r.off+n : r.off+n]
	r.off += n
	return res, nil
}

// PeekByte returns the next byte without advancing.
func (r *Reader) PeekByte() (byte, error) {
	if r.Remaining() < 1 {
		return 0, Truncated(r.off, "need 1 byte, have 0")
	}
	return r.data[r.off], nil
}

// ReadByte returns the next byte and advances past it.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.PeekByte()
	if err != nil {
		return 0, err
	}
	r.off++
	return b, nil
}

func (r *Reader) Uint16() (uint16, error) {
	d, err := r.Take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(d), nil
}

func (r *Reader) Uint32() (uint32, error) {
	d, err := r.Take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(d), nil
}

func (r *Reader) Uint64() (uint64, error) {
	d, err := r.Take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(d), nil
}

// Writer is an appendable byte buffer. The zero value is ready to use.
type Writer struct {
	buf []byte
}

// NewWriter returns a Writer appending to buf.
func NewWriter(buf []byte) *Writer {
	return &Writer{buf: buf}
}

func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) Len() int {
	return len(w.buf)
}

func (w *Writer) Reset() {
	w.buf = w.buf[:0]
}

// Truncate discards everything written after the first n bytes.
func (w *Writer) Truncate(n int) {
	w.buf = w.buf[:n]
}

func (w *Writer) WriteByte(b byte) error {
	w.buf = append(w.buf, b)
	return nil
}

func (w *Writer) Write(d []byte) (int, error) {
	w.buf = append(w.buf, d...)
	return len(d), nil
}

func (w *Writer) WriteUint16(v uint16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

func (w *Writer) WriteUint32(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

func (w *Writer) WriteUint64(v uint64) {
	w.buf = binary.BigEndian.AppendUint64(w.buf, v)
}

func (w *Writer) WriteString(s string) {
	w.buf = append(w.buf, s...)
}

// WriteHead appends the canonical-minimal header for major type m
// carrying arg.
func (w *Writer) WriteHead(m Major, arg uint64) {
	ib := byte(m) << 5
	switch ArgSize(arg) {
	case 0:
		w.WriteByte(ib | byte(arg))
	case 1:
		w.WriteByte(ib | InfoUint8)
		w.WriteByte(byte(arg))
	case 2:
		w.WriteByte(ib | InfoUint16)
		w.WriteUint16(uint16(arg))
	case 4:
		w.WriteByte(ib | InfoUint32)
		w.WriteUint32(uint32(arg))
	default:
		w.WriteByte(ib | InfoUint64)
		w.WriteUint64(arg)
	}
}

// WriteSimple appends a one-byte simple value (false, true, null).
func (w *Writer) WriteSimple(v byte) {
	w.WriteByte(byte(MajorSimple)<<5 | v)
}

// WriteFloat16 appends a half precision float.
func (w *Writer) WriteFloat16(f float16.Float16) {
	w.WriteByte(byte(MajorSimple)<<5 | FloatHalf)
	w.WriteUint16(f.Bits())
}

// WriteFloat32 appends a single precision float. The 4-byte width is
// always used.
func (w *Writer) WriteFloat32(f float32) {
	w.WriteByte(byte(MajorSimple)<<5 | FloatSingle)
	w.WriteUint32(math.Float32bits(f))
}

// WriteFloat64 appends a double precision float. The 8-byte width is
// always used.
func (w *Writer) WriteFloat64(f float64) {
	w.WriteByte(byte(MajorSimple)<<5 | FloatDouble)
	w.WriteUint64(math.Float64bits(f))
}
