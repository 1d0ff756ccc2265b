// Package wire implements the byte-level layer of the codec: a
// bounds-checked cursor over a byte buffer and the item headers that
// carry a major type plus an integer argument.
//
// All multi-byte quantities are big-endian. Headers are written in
// their canonical-minimal form (Writer.WriteHead) and read leniently
// (Reader.ReadHead accepts any argument width).
package wire
