package main

import (
	"fmt"
	"io"

	"github.com/signadot/go-cbor/diag"
	"github.com/signadot/go-cbor/stream"

	"github.com/scott-cotton/cli"
)

func diagItems(cfg *DiagConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diag.Parse(cc, args)
	if err != nil {
		cfg.Diag.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	opts := cfg.diagOpts(cc.Out)
	for _, path := range inputPaths(args) {
		d, err := cfg.readInput(cc, path)
		if err != nil {
			return err
		}
		if err := diagData(cc.Out, d, cfg.MainConfig, opts...); err != nil {
			return fmt.Errorf("error processing %s: %w", path, err)
		}
	}
	return nil
}

func diagData(w io.Writer, d []byte, cfg *MainConfig, opts ...diag.DiagOption) error {
	dec := stream.NewDecoder(d, cfg.streamOpts()...)
	for node, err := range dec.Items() {
		if err != nil {
			return err
		}
		if err := diag.Encode(node, w, opts...); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
