package tree

import (
	"fmt"
	"sort"
	"strconv"
)

// Kind enumerates the node variants of a rendered tree.
type Kind uint8

const (
	KindScalar Kind = iota
	KindMap
	KindList
	KindMissing
)

// Node is one value of a rendered tree. The set of implementations is closed:
// Scalar, *Map, List and Missing.
type Node interface {
	Kind() Kind
}

// Scalar wraps a leaf value copied from a record (string, number, bool, nil).
type Scalar struct {
	Value any
}

func (Scalar) Kind() Kind { return KindScalar }

// List is an ordered sequence of nodes.
type List []Node

func (List) Kind() Kind { return KindList }

// Missing marks a field whose path did not resolve while the field asked for
// missing values to be shown. It is distinct from nil and from "".
type Missing struct{}

func (Missing) Kind() Kind { return KindMissing }

// DataMissing is the marker value placed in rendered trees.
var DataMissing Node = Missing{}

// IsMissing reports whether n is the missing marker.
func IsMissing(n Node) bool {
	_, ok := n.(Missing)
	return ok
}

// KeyKind distinguishes where a mapping key came from.
type KeyKind uint8

const (
	// KeyLabel keys are field labels; display transforms apply to them.
	KeyLabel KeyKind = iota
	// KeyIndex keys are 1-based positions of numbered collections.
	KeyIndex
	// KeyRaw keys are copied from the data itself and left untouched.
	KeyRaw
)

// Key is an ordered-mapping key.
type Key struct {
	Kind  KeyKind
	Name  string
	Index int
}

// Label builds a label key.
func Label(name string) Key { return Key{Kind: KeyLabel, Name: name} }

// Index builds a numeric collection key.
func Index(i int) Key { return Key{Kind: KeyIndex, Index: i} }

// Raw builds a data-sourced key.
func Raw(name string) Key { return Key{Kind: KeyRaw, Name: name} }

// String returns the textual form of the key used by text formats.
func (k Key) String() string {
	if k.Kind == KeyIndex {
		return strconv.Itoa(k.Index)
	}
	return k.Name
}

// Entry is a single key/value pair of a Map.
type Entry struct {
	Key   Key
	Value Node
}

// Map is an insertion-ordered mapping.
type Map struct {
	Entries []Entry
}

// NewMap builds a map from entries, later duplicates replacing earlier ones
// in place.
func NewMap(entries ...Entry) *Map {
	m := &Map{Entries: make([]Entry, 0, len(entries))}
	for _, entry := range entries {
		m.Set(entry.Key, entry.Value)
	}
	return m
}

func (*Map) Kind() Kind { return KindMap }

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Entries)
}

// Set inserts or replaces key. Replacement keeps the original position.
func (m *Map) Set(key Key, value Node) {
	for i := range m.Entries {
		if m.Entries[i].Key == key {
			m.Entries[i].Value = value
			return
		}
	}
	m.Entries = append(m.Entries, Entry{Key: key, Value: value})
}

// Get returns the value stored under key.
func (m *Map) Get(key Key) (Node, bool) {
	if m == nil {
		return nil, false
	}
	for _, entry := range m.Entries {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return nil, false
}

// Lookup finds the first entry whose textual key equals name, whatever its
// kind.
func (m *Map) Lookup(name string) (Node, bool) {
	if m == nil {
		return nil, false
	}
	for _, entry := range m.Entries {
		if entry.Key.String() == name {
			return entry.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in order.
func (m *Map) Keys() []Key {
	if m == nil {
		return nil
	}
	keys := make([]Key, len(m.Entries))
	for i, entry := range m.Entries {
		keys[i] = entry.Key
	}
	return keys
}

// RenameKeys returns a copy of m with fn applied to every key. When deep is
// true the copy recurses into nested maps and lists. Keys that collide after
// renaming are merged: the later value replaces the earlier one and keeps
// the position of the first.
func (m *Map) RenameKeys(fn func(Key) Key, deep bool) *Map {
	if m == nil {
		return nil
	}
	out := &Map{Entries: make([]Entry, 0, len(m.Entries))}
	for _, entry := range m.Entries {
		value := entry.Value
		if deep {
			value = renameNode(value, fn)
		}
		out.Set(fn(entry.Key), value)
	}
	return out
}

func renameNode(n Node, fn func(Key) Key) Node {
	switch typed := n.(type) {
	case *Map:
		return typed.RenameKeys(fn, true)
	case List:
		out := make(List, len(typed))
		for i, item := range typed {
			out[i] = renameNode(item, fn)
		}
		return out
	default:
		return n
	}
}

// ValueOf converts a raw record value into a tree node. Nested mappings keep
// their keys as Raw keys sorted lexically, since Go maps carry no order.
func ValueOf(value any) Node {
	switch typed := value.(type) {
	case Node:
		return typed
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		m := &Map{Entries: make([]Entry, 0, len(keys))}
		for _, key := range keys {
			m.Entries = append(m.Entries, Entry{Key: Raw(key), Value: ValueOf(typed[key])})
		}
		return m
	case map[string]string:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		m := &Map{Entries: make([]Entry, 0, len(keys))}
		for _, key := range keys {
			m.Entries = append(m.Entries, Entry{Key: Raw(key), Value: Scalar{Value: typed[key]}})
		}
		return m
	case map[any]any:
		keys := make([]string, 0, len(typed))
		lookup := make(map[string]any, len(typed))
		for key, item := range typed {
			name := fmt.Sprint(key)
			keys = append(keys, name)
			lookup[name] = item
		}
		sort.Strings(keys)
		m := &Map{Entries: make([]Entry, 0, len(keys))}
		for _, key := range keys {
			m.Entries = append(m.Entries, Entry{Key: Raw(key), Value: ValueOf(lookup[key])})
		}
		return m
	case []any:
		out := make(List, len(typed))
		for i, item := range typed {
			out[i] = ValueOf(item)
		}
		return out
	case []string:
		out := make(List, len(typed))
		for i, item := range typed {
			out[i] = Scalar{Value: item}
		}
		return out
	case []map[string]any:
		out := make(List, len(typed))
		for i, item := range typed {
			out[i] = ValueOf(item)
		}
		return out
	default:
		return Scalar{Value: value}
	}
}

// Plain converts a node back into plain Go values: maps become
// map[string]any keyed by Key.String(), lists []any, scalars their value and
// the missing marker nil. Ordering is lost; use it only for consumers that do
// not care, such as template contexts.
func Plain(n Node) any {
	switch typed := n.(type) {
	case Scalar:
		return typed.Value
	case *Map:
		if typed == nil {
			return map[string]any{}
		}
		out := make(map[string]any, len(typed.Entries))
		for _, entry := range typed.Entries {
			out[entry.Key.String()] = Plain(entry.Value)
		}
		return out
	case List:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = Plain(item)
		}
		return out
	default:
		return nil
	}
}
