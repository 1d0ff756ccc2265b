package main

import (
	"fmt"

	"github.com/signadot/go-cbor/format"
	"github.com/signadot/go-cbor/stream"

	"github.com/scott-cotton/cli"
)

func decode(cfg *DecodeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Decode.Parse(cc, args)
	if err != nil {
		cfg.Decode.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	f := format.JSONFormat
	if cfg.OutFormat != nil {
		f = *cfg.OutFormat
	}
	i := 0
	for _, path := range inputPaths(args) {
		d, err := cfg.readInput(cc, path)
		if err != nil {
			return err
		}
		dec := stream.NewDecoder(d, cfg.streamOpts()...)
		for node, err := range dec.Items() {
			if err != nil {
				return fmt.Errorf("error decoding %s at offset %d: %w", path, dec.Offset(), err)
			}
			if err := cfg.writeText(cc.Out, node, f, i, cfg.Indent); err != nil {
				return fmt.Errorf("error encoding item %d: %w", i, err)
			}
			i++
		}
	}
	return nil
}
