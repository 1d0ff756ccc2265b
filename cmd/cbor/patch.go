package main

import (
	"fmt"

	"github.com/signadot/go-cbor/convert"
	"github.com/signadot/go-cbor/ir"
	"github.com/signadot/go-cbor/stream"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a JSON patch argument", cli.ErrUsage)
	}
	p, err := getPatch(cfg, cc, args[0])
	if err != nil {
		return err
	}
	n := 0
	for _, path := range inputPaths(args[1:]) {
		d, err := cfg.readInput(cc, path)
		if err != nil {
			return err
		}
		dec := stream.NewDecoder(d, cfg.streamOpts()...)
		for node, err := range dec.Items() {
			if err != nil {
				return fmt.Errorf("error decoding %s: %w", path, err)
			}
			res, err := patchNode(p, node)
			if err != nil {
				return fmt.Errorf("error patching %s item %d: %w", path, n, err)
			}
			if err := cfg.writeItem(cc.Out, res, n); err != nil {
				return err
			}
			n++
		}
	}
	return nil
}

func getPatch(cfg *PatchConfig, cc *cli.Context, arg string) (jsonpatch.Patch, error) {
	d := []byte(arg)
	if !cfg.String {
		var err error
		d, err = readFile(cc, arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	p, err := jsonpatch.DecodePatch(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return p, nil
}

// patchNode applies p to the JSON rendering of node. The result has no
// byte strings or tags.
func patchNode(p jsonpatch.Patch, node *ir.Node) (*ir.Node, error) {
	d, err := convert.ToJSON(node)
	if err != nil {
		return nil, err
	}
	out, err := p.Apply(d)
	if err != nil {
		return nil, err
	}
	nodes, err := convert.FromJSON(out)
	if err != nil {
		return nil, err
	}
	if len(nodes) != 1 {
		return nil, fmt.Errorf("patch produced %d values", len(nodes))
	}
	return nodes[0], nil
}
