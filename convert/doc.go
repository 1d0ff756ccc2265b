// Package convert moves IR nodes to and from JSON and YAML and to plain
// Go values.
//
// JSON and YAML have no byte strings, tags or non-text keys, so the
// conversion out of IR is lossy:
//
//   - byte strings become standard base64 text
//   - a tag is replaced by its content
//   - a map key that is not text is written in diagnostic notation
//   - NaN and the infinities become strings in JSON
//
// FromJSON goes the other way. Objects become maps with text keys in
// document order, integral numbers become integers and other numbers
// double precision floats.
package convert
