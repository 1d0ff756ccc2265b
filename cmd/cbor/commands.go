package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: diag/d, json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "cbor").
		WithSynopsis("cbor [opts] command [opts]").
		WithDescription("cbor is a tool for inspecting and producing CBOR item sequences.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return cborMain(cfg, cc, args)
		}).
		WithSubs(
			DiagCommand(cfg),
			DecodeCommand(cfg),
			EncodeCommand(cfg),
			ItemsCommand(cfg),
			ValidateCommand(cfg),
			DiffCommand(cfg),
			FilterCommand(cfg),
			PatchCommand(cfg))
}

func DiagCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiagConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diag, "diag").
		WithAliases("d").
		WithSynopsis("diag [opts] [files]").
		WithDescription("print items in diagnostic notation, one per line").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diagItems(cfg, cc, args)
		})
}

func DecodeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DecodeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Decode, "decode").
		WithAliases("dec").
		WithSynopsis("decode [opts] [files]").
		WithDescription("decode items to JSON (default) or the format given by -O").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return decode(cfg, cc, args)
		})
}

func EncodeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EncodeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Encode, "encode").
		WithAliases("enc").
		WithSynopsis("encode [opts] [json-files]").
		WithDescription("encode each JSON value in the input as one CBOR item").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return encodeJSON(cfg, cc, args)
		})
}

func ItemsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ItemsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Items, "items").
		WithAliases("i", "ls").
		WithSynopsis("items [-d] [files]").
		WithDescription("list the offset, size and type of each item").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return items(cfg, cc, args)
		})
}

func ValidateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ValidateConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Validate, "validate").
		WithAliases("v", "check").
		WithSynopsis("validate [opts] [files]").
		WithDescription("check that inputs are well formed and report whether headers are canonical").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return validate(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("di").
		WithSynopsis("diff [opts] a b").
		WithDescription("line diff of the diagnostic notation of two inputs").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func FilterCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FilterConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Filter, "filter").
		WithAliases("f").
		WithSynopsis("filter [opts] <expr> [files]").
		WithDescription(filterDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return filter(cfg, cc, args)
		})
}

const filterDescription = `filter keeps the items for which a predicate holds.

The predicate is an expr-lang expression evaluated once per item with
these variables:

  item    the item as plain values (maps, arrays, numbers, strings)
  index   the position of the item in its input
  offset  the byte offset of the item in its input
  kind    the item's type name: Null Bool Uint NegInt Float Bytes Text
          Array Map Tag
  tag     the tag number for a tagged item, otherwise nil

Kept items are written as CBOR unless -O selects a text format.

  cbor filter 'kind == "Map" && item.id > 10' events.cbor`

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("p", "pa").
		WithSynopsis("patch [opts] <json-patch> [files]").
		WithDescription("apply an RFC 6902 JSON patch to every item and re-encode it").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
}
