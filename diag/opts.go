package diag

type DiagOption func(*DiagState)

// Indent spreads containers over several lines, indenting each level
// by n spaces. Zero, the default, writes each item on one line.
func Indent(n int) DiagOption {
	return func(ds *DiagState) { ds.indent = n }
}

// FloatWidths appends the encoding indicator (_1, _2 or _3) to floats,
// making their precision visible.
func FloatWidths(v bool) DiagOption {
	return func(ds *DiagState) { ds.floatWidths = v }
}

func WithColors(c *Colors) DiagOption {
	return func(ds *DiagState) { ds.Color = c.Color }
}
