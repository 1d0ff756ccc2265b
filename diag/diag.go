package diag

import (
	"bufio"
	"encoding/hex"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/go-cbor/ir"
)

type DiagState struct {
	indent      int
	floatWidths bool

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes node in diagnostic notation to w, without a trailing
// newline.
func Encode(node *ir.Node, w io.Writer, opts ...DiagOption) error {
	ds := &DiagState{}
	for _, opt := range opts {
		opt(ds)
	}
	bw := bufio.NewWriter(w)
	if err := ds.encode(bw, node, 0); err != nil {
		return err
	}
	return bw.Flush()
}

func String(node *ir.Node, opts ...DiagOption) (string, error) {
	buf := &strings.Builder{}
	if err := Encode(node, buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func MustString(node *ir.Node, opts ...DiagOption) string {
	s, err := String(node, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func (ds *DiagState) color(t ir.Type, a ColorAttr, s string) string {
	if ds.Color == nil {
		return s
	}
	return ds.Color(t, a, s)
}

func (ds *DiagState) encode(w *bufio.Writer, node *ir.Node, depth int) error {
	if node == nil {
		return ir.ErrInvalid
	}
	switch node.Type {
	case ir.ArrayType:
		return ds.encodeArray(w, node, depth)
	case ir.MapType:
		return ds.encodeMap(w, node, depth)
	case ir.TagType:
		if len(node.Values) != 1 {
			return ir.ErrInvalid
		}
		w.WriteString(ds.color(ir.TagType, TagColor, strconv.FormatUint(node.Tag, 10)))
		w.WriteString(ds.color(ir.TagType, SepColor, "("))
		if err := ds.encode(w, node.Values[0], depth); err != nil {
			return err
		}
		_, err := w.WriteString(ds.color(ir.TagType, SepColor, ")"))
		return err
	}
	s, err := ds.leaf(node)
	if err != nil {
		return err
	}
	_, err = w.WriteString(ds.color(node.Type, ValueColor, s))
	return err
}

func (ds *DiagState) leaf(node *ir.Node) (string, error) {
	switch node.Type {
	case ir.NullType:
		return "null", nil
	case ir.BoolType:
		return strconv.FormatBool(node.Bool), nil
	case ir.UintType:
		return strconv.FormatUint(node.Uint, 10), nil
	case ir.NegIntType:
		if node.Uint == math.MaxUint64 {
			return "-18446744073709551616", nil
		}
		return "-" + strconv.FormatUint(node.Uint+1, 10), nil
	case ir.FloatType:
		s := FormatFloat(node.Float, node.Width)
		if ds.floatWidths {
			s += widthIndicator(node.Width)
		}
		return s, nil
	case ir.BytesType:
		return "h'" + hex.EncodeToString(node.Bytes) + "'", nil
	case ir.TextType:
		return strconv.Quote(node.String), nil
	}
	return "", ir.ErrInvalid
}

// FormatFloat formats f the way diagnostic notation writes floats:
// always with a fraction or exponent so it does not read as an
// integer.
func FormatFloat(f float64, w ir.Width) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	bits := 64
	if w == ir.Half || w == ir.Single {
		bits = 32
	}
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if strings.Contains(s, ".") {
		return s
	}
	if i := strings.IndexByte(s, 'e'); i >= 0 {
		return s[:i] + ".0" + s[i:]
	}
	return s + ".0"
}

func widthIndicator(w ir.Width) string {
	switch w {
	case ir.Half:
		return "_1"
	case ir.Single:
		return "_2"
	default:
		return "_3"
	}
}

func (ds *DiagState) newline(w *bufio.Writer, depth int) {
	if ds.indent <= 0 {
		return
	}
	w.WriteByte('\n')
	w.WriteString(strings.Repeat(" ", depth*ds.indent))
}

func (ds *DiagState) sep(w *bufio.Writer, t ir.Type, s string) {
	w.WriteString(ds.color(t, SepColor, s))
}

func (ds *DiagState) comma(w *bufio.Writer, t ir.Type) {
	if ds.indent > 0 {
		ds.sep(w, t, ",")
		return
	}
	ds.sep(w, t, ", ")
}

func (ds *DiagState) encodeArray(w *bufio.Writer, node *ir.Node, depth int) error {
	ds.sep(w, ir.ArrayType, "[")
	for i, v := range node.Values {
		if i > 0 {
			ds.comma(w, ir.ArrayType)
		}
		ds.newline(w, depth+1)
		if err := ds.encode(w, v, depth+1); err != nil {
			return err
		}
	}
	if len(node.Values) > 0 {
		ds.newline(w, depth)
	}
	ds.sep(w, ir.ArrayType, "]")
	return nil
}

func (ds *DiagState) encodeMap(w *bufio.Writer, node *ir.Node, depth int) error {
	if len(node.Fields) != len(node.Values) {
		return ir.ErrInvalid
	}
	ds.sep(w, ir.MapType, "{")
	for i, v := range node.Values {
		if i > 0 {
			ds.comma(w, ir.MapType)
		}
		ds.newline(w, depth+1)
		k := node.Fields[i]
		if k != nil && k.Type == ir.TextType && ds.Color != nil {
			w.WriteString(ds.color(ir.MapType, FieldColor, strconv.Quote(k.String)))
		} else if err := ds.encode(w, k, depth+1); err != nil {
			return err
		}
		ds.sep(w, ir.MapType, ": ")
		if err := ds.encode(w, v, depth+1); err != nil {
			return err
		}
	}
	if len(node.Values) > 0 {
		ds.newline(w, depth)
	}
	ds.sep(w, ir.MapType, "}")
	return nil
}
