// Package format names the text renderings the cbor command can
// produce for decoded items: diagnostic notation, JSON and YAML.
package format
