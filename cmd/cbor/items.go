package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/signadot/go-cbor/ir"
	"github.com/signadot/go-cbor/parse"
	"github.com/signadot/go-cbor/stream"

	"github.com/scott-cotton/cli"
)

func items(cfg *ItemsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Items.Parse(cc, args)
	if err != nil {
		cfg.Items.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	tw := tabwriter.NewWriter(cc.Out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tINDEX\tOFFSET\tSIZE\tTYPE\tLEN")
	for _, path := range inputPaths(args) {
		d, err := cfg.readInput(cc, path)
		if err != nil {
			return err
		}
		if err := listItems(tw, path, d, cfg); err != nil {
			tw.Flush()
			return fmt.Errorf("error processing %s: %w", path, err)
		}
	}
	return tw.Flush()
}

// listItems writes one row per top-level item in d. With -d nested
// items follow their parent, indented by depth, without index or size.
func listItems(w io.Writer, path string, d []byte, cfg *ItemsConfig) error {
	pos := map[*ir.Node]int{}
	opts := cfg.streamOpts()
	if cfg.Deep {
		opts = append(opts, stream.WithParseOptions(parse.ParsePositions(pos)))
	}
	dec := stream.NewDecoder(d, opts...)
	for i := 0; ; i++ {
		start := dec.Offset()
		node, err := dec.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%d\n", path, i, start, dec.Offset()-start, node.Type, node.Len())
		if !cfg.Deep {
			continue
		}
		depth := 0
		err = node.Visit(func(n *ir.Node, isPost bool) (bool, error) {
			if isPost {
				depth--
				return true, nil
			}
			if depth > 0 {
				fmt.Fprintf(w, "%s\t\t%d\t\t%s%s\t%d\n", path, pos[n], strings.Repeat("  ", depth), n.Type, n.Len())
			}
			depth++
			return true, nil
		})
		if err != nil {
			return err
		}
		clear(pos)
	}
}
