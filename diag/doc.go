// Package diag renders IR nodes in the diagnostic notation of RFC 8949
// section 8.
//
//	diag.String(node) // [1, h'00ff', {"a": -2}, 1(1.5)]
//
// Byte strings are written in base16 form, tags as number(child) and
// non-finite floats as NaN, Infinity and -Infinity.
package diag
