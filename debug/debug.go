package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse  bool
	GoMap  bool
	Stream bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("CBOR_DEBUG_PARSE")
	d.GoMap = boolEnv("CBOR_DEBUG_GOMAP")
	d.Stream = boolEnv("CBOR_DEBUG_STREAM")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func GoMap() bool {
	return d.GoMap
}
func Stream() bool {
	return d.Stream
}
