package main

import (
	"fmt"
	"io"

	"github.com/signadot/go-cbor/convert"
	"github.com/signadot/go-cbor/gomap"
	"github.com/signadot/go-cbor/ir"
	"github.com/signadot/go-cbor/stream"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"
)

func filter(cfg *FilterConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Filter.Parse(cc, args)
	if err != nil {
		cfg.Filter.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: filter requires a predicate", cli.ErrUsage)
	}
	prg, err := compileFilter(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	n := 0
	for _, path := range inputPaths(args[1:]) {
		d, err := cfg.readInput(cc, path)
		if err != nil {
			return err
		}
		dec := stream.NewDecoder(d, cfg.streamOpts()...)
		for i := 0; ; i++ {
			off := dec.Offset()
			node, err := dec.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("error decoding %s: %w", path, err)
			}
			ok, err := keep(prg, node, i, off)
			if err != nil {
				return fmt.Errorf("%s item %d: %w", path, i, err)
			}
			if ok == cfg.Invert {
				continue
			}
			if err := cfg.writeItem(cc.Out, node, n); err != nil {
				return err
			}
			n++
		}
	}
	return nil
}

// itemEnv is the environment of a filter predicate.
type itemEnv struct {
	Item   any    `expr:"item"`
	Index  int    `expr:"index"`
	Offset int    `expr:"offset"`
	Kind   string `expr:"kind"`
	Tag    any    `expr:"tag"`
}

func newItemEnv(node *ir.Node, index, offset int) (itemEnv, error) {
	item, err := convert.ToAny(node)
	if err != nil {
		return itemEnv{}, err
	}
	env := itemEnv{Item: item, Index: index, Offset: offset, Kind: node.Type.String()}
	if node.Type == ir.TagType {
		env.Tag = node.Tag
	}
	return env, nil
}

func compileFilter(src string) (*vm.Program, error) {
	return expr.Compile(src, expr.Env(itemEnv{}))
}

func keep(prg *vm.Program, node *ir.Node, index, offset int) (bool, error) {
	env, err := newItemEnv(node, index, offset)
	if err != nil {
		return false, err
	}
	out, err := expr.Run(prg, env)
	if err != nil {
		return false, err
	}
	if ok, isBool := out.(bool); isBool {
		return ok, nil
	}
	res, err := gomap.ToIR(out)
	if err != nil {
		return false, fmt.Errorf("predicate result: %w", err)
	}
	return ir.Truth(res), nil
}
