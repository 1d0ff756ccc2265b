package encode

type EncodeOption func(*EncState)

// ShortestFloats makes the encoder write each float at the narrowest
// precision that holds its value exactly, instead of the node's width.
func ShortestFloats(v bool) EncodeOption {
	return func(es *EncState) { es.shortestFloats = v }
}

// Validate checks node invariants before writing anything.
func Validate(v bool) EncodeOption {
	return func(es *EncState) { es.validate = v }
}
