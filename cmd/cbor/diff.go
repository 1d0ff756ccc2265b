package main

import (
	"fmt"
	"strings"

	"github.com/signadot/go-cbor/diag"
	"github.com/signadot/go-cbor/stream"

	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	texts := make([]string, 2)
	for i, path := range args {
		d, err := cfg.readInput(cc, path)
		if err != nil {
			return err
		}
		texts[i], err = diagLines(d, cfg)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", path, err)
		}
	}
	out, differs := lineDiff(texts[0], texts[1])
	if !differs {
		return nil
	}
	if _, err := fmt.Fprint(cc.Out, out); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}

// diagLines renders every item in d in indented diagnostic notation.
func diagLines(d []byte, cfg *DiffConfig) (string, error) {
	buf := &strings.Builder{}
	dec := stream.NewDecoder(d, cfg.streamOpts()...)
	for node, err := range dec.Items() {
		if err != nil {
			return "", err
		}
		if err := diag.Encode(node, buf, diag.Indent(2), diag.FloatWidths(cfg.Widths)); err != nil {
			return "", err
		}
		buf.WriteString("\n")
	}
	return buf.String(), nil
}

// lineDiff compares a and b line by line. Unchanged lines are prefixed
// with two spaces, removed lines with "- " and added lines with "+ ".
func lineDiff(a, b string) (string, bool) {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	buf := &strings.Builder{}
	differs := false
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
			differs = true
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
			differs = true
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			buf.WriteString(prefix)
			buf.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				buf.WriteString("\n")
			}
		}
	}
	return buf.String(), differs
}
