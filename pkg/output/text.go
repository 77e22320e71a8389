package output

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-recordfmt/pkg/tree"
)

// Text renders a node on a single line for cell-oriented formats. Nested
// mappings become "key: value" pairs joined with ", " and wrapped in braces
// below the top level.
func Text(n tree.Node) string {
	return text(n, false)
}

func text(n tree.Node, nested bool) string {
	switch typed := n.(type) {
	case tree.Scalar:
		if typed.Value == nil {
			return ""
		}
		return fmt.Sprint(typed.Value)
	case tree.Missing:
		return MissingPlaceholder
	case *tree.Map:
		parts := make([]string, 0, typed.Len())
		for _, entry := range typed.Entries {
			parts = append(parts, entry.Key.String()+": "+text(entry.Value, true))
		}
		joined := strings.Join(parts, ", ")
		if nested {
			return "{" + joined + "}"
		}
		return joined
	case tree.List:
		parts := make([]string, 0, len(typed))
		for _, item := range typed {
			parts = append(parts, text(item, true))
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// Columns returns the union of the top-level keys of maps in order of first
// appearance.
func Columns(maps []*tree.Map) []tree.Key {
	var out []tree.Key
	seen := make(map[tree.Key]struct{})
	for _, m := range maps {
		for _, key := range m.Keys() {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, key)
		}
	}
	return out
}

// Flatten expands nested mappings into path-joined keys ("Address::City",
// "Contacts::1::Description"). Lists are rendered with Text.
func Flatten(m *tree.Map, sep string) []FlatEntry {
	var out []FlatEntry
	flatten(m, "", sep, &out)
	return out
}

// FlatEntry is one leaf produced by Flatten.
type FlatEntry struct {
	Key   string
	Value string
}

func flatten(m *tree.Map, prefix, sep string, out *[]FlatEntry) {
	for _, entry := range m.Entries {
		key := entry.Key.String()
		if prefix != "" {
			key = prefix + sep + key
		}
		if nested, ok := entry.Value.(*tree.Map); ok && nested.Len() > 0 {
			flatten(nested, key, sep, out)
			continue
		}
		*out = append(*out, FlatEntry{Key: key, Value: Text(entry.Value)})
	}
}
