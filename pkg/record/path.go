package record

import "strings"

// Status reports whether a path resolved against a record.
type Status uint8

const (
	// Present means every key in the path resolved to a value (which may
	// itself be nil or blank).
	Present Status = iota
	// Missing means a key in the chain was absent or a non-container value
	// was reached before the path was exhausted.
	Missing
)

func (s Status) String() string {
	switch s {
	case Present:
		return "present"
	case Missing:
		return "missing"
	default:
		return "unknown"
	}
}

// Path is an ordered sequence of keys. A nil Path addresses the whole
// current record.
type Path []string

// P builds a Path from the provided keys, copying them so later mutation of
// the caller's slice cannot leak into field declarations.
func P(keys ...string) Path {
	if len(keys) == 0 {
		return nil
	}
	out := make(Path, len(keys))
	copy(out, keys)
	return out
}

// ParsePath splits a dotted path ("address.city"). Blank input yields nil.
func ParsePath(raw string) Path {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	parts := strings.Split(trimmed, ".")
	out := make(Path, 0, len(parts))
	for _, part := range parts {
		if segment := strings.TrimSpace(part); segment != "" {
			out = append(out, segment)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Empty reports whether the path addresses the whole record.
func (p Path) Empty() bool {
	return len(p) == 0
}

func (p Path) String() string {
	if len(p) == 0 {
		return "."
	}
	return strings.Join(p, ".")
}

// Resolve walks path against data. Keys must match exactly; sequences are not
// indexable by key and any non-container value short-circuits to Missing.
func Resolve(data any, path Path) (any, Status) {
	current := data
	for _, key := range path {
		next, ok := child(current, key)
		if !ok {
			return nil, Missing
		}
		current = next
	}
	return current, Present
}

func child(node any, key string) (any, bool) {
	switch typed := node.(type) {
	case map[string]any:
		value, ok := typed[key]
		return value, ok
	case map[any]any:
		value, ok := typed[key]
		return value, ok
	case map[string]string:
		value, ok := typed[key]
		if !ok {
			return nil, false
		}
		return value, true
	default:
		return nil, false
	}
}

// IsMapping reports whether value is a container Resolve can walk into.
func IsMapping(value any) bool {
	switch value.(type) {
	case map[string]any, map[any]any, map[string]string:
		return true
	default:
		return false
	}
}

// Sequence returns value as an ordered slice of elements when it is one.
func Sequence(value any) ([]any, bool) {
	switch typed := value.(type) {
	case []any:
		return typed, true
	case []map[string]any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = item
		}
		return out, true
	case []string:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = item
		}
		return out, true
	default:
		return nil, false
	}
}

// IsBlank reports whether a present value is semantically empty: nil, a
// whitespace-only string, or an empty sequence or mapping.
func IsBlank(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(typed) == ""
	case []any:
		return len(typed) == 0
	case []string:
		return len(typed) == 0
	case []map[string]any:
		return len(typed) == 0
	case map[string]any:
		return len(typed) == 0
	case map[any]any:
		return len(typed) == 0
	case map[string]string:
		return len(typed) == 0
	default:
		return false
	}
}
