package main

import (
	"bytes"
	"fmt"

	"github.com/signadot/go-cbor/convert"
	"github.com/signadot/go-cbor/encode"

	"github.com/scott-cotton/cli"
)

func encodeJSON(cfg *EncodeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Encode.Parse(cc, args)
	if err != nil {
		cfg.Encode.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	buf := bytes.NewBuffer(nil)
	for _, path := range inputPaths(args) {
		d, err := readFile(cc, path)
		if err != nil {
			return err
		}
		if cfg.Zstd {
			if d, err = decompress(d); err != nil {
				return fmt.Errorf("error reading %q: %w", path, err)
			}
		}
		if err := encodeJSONData(buf, d, cfg.Shortest); err != nil {
			return fmt.Errorf("error encoding %s: %w", path, err)
		}
	}
	out := buf.Bytes()
	if cfg.Compress {
		out = compress(out)
	}
	return cfg.writeCBOR(cc.Out, out)
}

// encodeJSONData appends one item per JSON value in d to buf.
func encodeJSONData(buf *bytes.Buffer, d []byte, shortest bool) error {
	nodes, err := convert.FromJSON(d)
	if err != nil {
		return err
	}
	for _, node := range nodes {
		if err := encode.Encode(node, buf, encode.ShortestFloats(shortest)); err != nil {
			return err
		}
	}
	return nil
}
