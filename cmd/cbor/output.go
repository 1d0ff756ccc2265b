package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/signadot/go-cbor/convert"
	"github.com/signadot/go-cbor/diag"
	"github.com/signadot/go-cbor/encode"
	"github.com/signadot/go-cbor/format"
	"github.com/signadot/go-cbor/ir"
)

// writeItem writes the i'th result item. Without -O it is written as
// CBOR, or as a line of hex with -X.
func (cfg *MainConfig) writeItem(w io.Writer, node *ir.Node, i int) error {
	if cfg.OutFormat != nil {
		return cfg.writeText(w, node, *cfg.OutFormat, i, false)
	}
	d, err := encode.Append(nil, node)
	if err != nil {
		return err
	}
	return cfg.writeCBOR(w, d)
}

func (cfg *MainConfig) writeCBOR(w io.Writer, d []byte) error {
	if cfg.HexOut {
		_, err := fmt.Fprintln(w, hex.EncodeToString(d))
		return err
	}
	_, err := w.Write(d)
	return err
}

// writeText renders node in f. YAML documents after the first are
// preceded by a document separator.
func (cfg *MainConfig) writeText(w io.Writer, node *ir.Node, f format.Format, i int, indent bool) error {
	switch {
	case f.IsJSON():
		if err := convert.WriteJSON(node, w, convert.JSONIndent(indent)); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	case f.IsYAML():
		d, err := convert.ToYAML(node)
		if err != nil {
			return err
		}
		if i > 0 {
			if _, err := io.WriteString(w, "---\n"); err != nil {
				return err
			}
		}
		_, err = w.Write(d)
		return err
	default:
		if err := diag.Encode(node, w, cfg.diagOpts(w)...); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}
}
