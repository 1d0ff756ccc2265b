package main

import (
	"log/slog"

	"github.com/signadot/go-cbor/parse"
	"github.com/signadot/go-cbor/stream"
	"github.com/signadot/go-cbor/wire"

	"github.com/scott-cotton/cli"
)

type validation struct {
	Items     int
	Canonical bool
	// Detail describes the first non-canonical header.
	Detail error
}

func validate(cfg *ValidateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Validate.Parse(cc, args)
	if err != nil {
		cfg.Validate.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	log := newLog(cc.Out)
	failed := false
	for _, path := range inputPaths(args) {
		d, err := cfg.readInput(cc, path)
		if err != nil {
			return err
		}
		v, err := validateData(d, cfg.depthOpts()...)
		if !report(log, path, v, err, cfg.Canonical) {
			failed = true
		}
	}
	if failed {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// report logs the outcome of validating path and whether it passed.
func report(log *slog.Logger, path string, v validation, err error, canonical bool) bool {
	switch {
	case err != nil:
		log.Error("invalid", "file", path, "items", v.Items, "error", err)
		return false
	case !v.Canonical:
		log.Warn("valid", "file", path, "items", v.Items, "canonical", false, "detail", v.Detail)
		return !canonical
	default:
		log.Info("valid", "file", path, "items", v.Items, "canonical", true)
		return true
	}
}

// validateData checks that d is a well formed item sequence with valid
// UTF-8 text and unique map keys, then whether every header is
// canonical.
func validateData(d []byte, opts ...parse.ParseOption) (validation, error) {
	v := validation{Canonical: true}
	opts = append(opts, parse.ValidateUTF8(true), parse.UniqueKeys(true))
	dec := stream.NewDecoder(d, stream.WithParseOptions(opts...))
	for _, err := range dec.Items() {
		if err != nil {
			return v, err
		}
		v.Items++
	}
	r := wire.NewReader(d)
	for r.Remaining() > 0 {
		_, err := parse.ParseReader(r, append(opts, parse.RequireCanonical(true))...)
		if err != nil {
			v.Canonical = false
			v.Detail = err
			break
		}
	}
	return v, nil
}
