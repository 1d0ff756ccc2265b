package gomap

import (
	"fmt"
	"reflect"
	"strings"
)

// fieldInfo describes one struct field that takes part in encoding.
type fieldInfo struct {
	Index int
	// Name is used in error paths; it is the Go field name unless the
	// tag sets name=.
	Name string
}

// ParseStructTag parses a struct tag string and returns a map of key-value pairs.
// Handles comma or space separated values: `cbor:"name=id,-"`
// Supports quoted values with spaces: `cbor:"name='with spaces'"`
func ParseStructTag(tag string) (map[string]string, error) {
	result := make(map[string]string)
	if tag == "" {
		return result, nil
	}

	var parts []string
	var current strings.Builder
	inQuote := false
	for i := 0; i < len(tag); i++ {
		char := tag[i]
		switch {
		case char == '\'':
			inQuote = !inQuote
			current.WriteByte(char)
		case (char == ',' || char == ' ') && !inQuote:
			if part := strings.TrimSpace(current.String()); part != "" {
				parts = append(parts, part)
			}
			current.Reset()
		default:
			current.WriteByte(char)
		}
	}
	if inQuote {
		return nil, fmt.Errorf("invalid tag: unterminated quote in %q", tag)
	}
	if part := strings.TrimSpace(current.String()); part != "" {
		parts = append(parts, part)
	}

	for _, part := range parts {
		if idx := strings.Index(part, "="); idx >= 0 {
			key := strings.TrimSpace(part[:idx])
			value := strings.TrimSpace(part[idx+1:])
			if key == "" {
				return nil, fmt.Errorf("invalid tag: empty key in %q", part)
			}
			if len(value) >= 2 && value[0] == '\'' && value[len(value)-1] == '\'' {
				value = value[1 : len(value)-1]
			}
			result[key] = value
		} else {
			result[part] = ""
		}
	}
	return result, nil
}

// structFields returns the encoded fields of a struct type in
// declaration order: exported fields whose tag is not "-". Embedded
// structs count as a single field.
func structFields(typ reflect.Type) ([]fieldInfo, error) {
	res := make([]fieldInfo, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		tags, err := ParseStructTag(f.Tag.Get("cbor"))
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", typ, f.Name, err)
		}
		if _, skip := tags["-"]; skip {
			continue
		}
		name := f.Name
		if n := tags["name"]; n != "" {
			name = n
		}
		res = append(res, fieldInfo{Index: i, Name: name})
	}
	return res, nil
}

func fieldPathJoin(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
