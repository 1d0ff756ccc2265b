package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/scott-cotton/cli"
)

// zstd.Encoder and zstd.Decoder are safe for concurrent use and are
// shared by all commands.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("cbor: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("cbor: zstd decoder initialization failed: " + err.Error())
	}
}

func inputPaths(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

func readFile(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

// readInput reads path and undoes the input encodings selected by -z
// and -x, in that order.
func (cfg *MainConfig) readInput(cc *cli.Context, path string) ([]byte, error) {
	d, err := readFile(cc, path)
	if err != nil {
		return nil, err
	}
	d, err = cfg.unwrapInput(d)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

func (cfg *MainConfig) unwrapInput(d []byte) ([]byte, error) {
	var err error
	if cfg.Zstd {
		d, err = decompress(d)
		if err != nil {
			return nil, err
		}
	}
	if cfg.Hex {
		d, err = decodeHex(d)
		if err != nil {
			return nil, err
		}
	}
	return d, nil
}

func decompress(d []byte) ([]byte, error) {
	res, err := zstdDecoder.DecodeAll(d, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	return res, nil
}

func compress(d []byte) []byte {
	return zstdEncoder.EncodeAll(d, nil)
}

// decodeHex decodes hex text, ignoring white space and an optional 0x
// prefix.
func decodeHex(d []byte) ([]byte, error) {
	d = bytes.Join(bytes.Fields(d), nil)
	if bytes.HasPrefix(d, []byte("0x")) || bytes.HasPrefix(d, []byte("0X")) {
		d = d[2:]
	}
	res := make([]byte, hex.DecodedLen(len(d)))
	if _, err := hex.Decode(res, d); err != nil {
		return nil, fmt.Errorf("hex input: %w", err)
	}
	return res, nil
}
