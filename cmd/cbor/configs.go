package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/go-cbor/diag"
	"github.com/signadot/go-cbor/format"
	"github.com/signadot/go-cbor/parse"
	"github.com/signadot/go-cbor/stream"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Hex    bool `cli:"name=x aliases=hex desc='input is hex text'"`
	Zstd   bool `cli:"name=z aliases=zstd desc='input is zstd compressed'"`
	HexOut bool `cli:"name=X desc='write CBOR output as hex text'"`
	Color  bool `cli:"name=color desc='color diagnostic output'"`
	Strict bool `cli:"name=strict desc='require text strings to be valid UTF-8'"`
	Depth  int  `cli:"name=depth desc='maximum nesting depth, negative for no limit (default 1024)'"`

	OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	return append([]parse.ParseOption{parse.ValidateUTF8(cfg.Strict)}, cfg.depthOpts()...)
}

func (cfg *MainConfig) depthOpts() []parse.ParseOption {
	if cfg.Depth == 0 {
		return nil
	}
	return []parse.ParseOption{parse.MaxDepth(cfg.Depth)}
}

func (cfg *MainConfig) streamOpts() []stream.StreamOption {
	return []stream.StreamOption{stream.WithParseOptions(cfg.parseOpts()...)}
}

func (cfg *MainConfig) diagOpts(w io.Writer) []diag.DiagOption {
	if cfg.Color {
		return []diag.DiagOption{diag.WithColors(diag.NewColors())}
	}
	colorsSet := false
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name != "color" {
				continue
			}
			colorsSet = opt.Value != nil
			break
		}
	}
	if colorsSet {
		return nil
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return []diag.DiagOption{diag.WithColors(diag.NewColors())}
	}
	return nil
}

type DiagConfig struct {
	*MainConfig
	Widths bool `cli:"name=w aliases=widths desc='show float encoding widths'"`
	Indent int  `cli:"name=i aliases=indent desc='indent nested items by n spaces'"`

	Diag *cli.Command
}

func (cfg *DiagConfig) diagOpts(w io.Writer) []diag.DiagOption {
	return append(cfg.MainConfig.diagOpts(w),
		diag.FloatWidths(cfg.Widths),
		diag.Indent(cfg.Indent))
}

type DecodeConfig struct {
	*MainConfig
	Indent bool `cli:"name=i aliases=indent desc='indent JSON output'"`

	Decode *cli.Command
}

type EncodeConfig struct {
	*MainConfig
	Shortest bool `cli:"name=s aliases=shortest desc='use the shortest float width that is exact'"`
	Compress bool `cli:"name=compress desc='zstd compress the output'"`

	Encode *cli.Command
}

type ItemsConfig struct {
	*MainConfig
	Deep bool `cli:"name=d aliases=deep desc='list nested items too'"`

	Items *cli.Command
}

type ValidateConfig struct {
	*MainConfig
	Canonical bool `cli:"name=c aliases=canonical desc='fail unless headers are canonical'"`

	Validate *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Widths bool `cli:"name=w aliases=widths desc='compare float encoding widths too'"`

	Diff *cli.Command
}

type FilterConfig struct {
	*MainConfig
	Invert bool `cli:"name=v aliases=invert desc='keep items for which the predicate is false'"`

	Filter *cli.Command
}

type PatchConfig struct {
	*MainConfig
	String bool `cli:"name=s desc='patch arg is the patch itself rather than a file'"`

	Patch *cli.Command
}
