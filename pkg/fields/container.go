package fields

import (
	"errors"

	"go.uber.org/multierr"

	"github.com/goliatone/go-recordfmt/pkg/record"
	"github.com/goliatone/go-recordfmt/pkg/tree"
)

// Label groups a nested definition under one label, rendering it against the
// sub-record found at its path.
type Label struct {
	base
	definition *Definition
}

// NewLabel declares a labelled group. Nested fields can be passed with
// WithFields or appended later through Definition.
func NewLabel(path record.Path, label string, opts ...Option) *Label {
	cfg := buildConfig(opts)
	return &Label{
		base:       newBase(path, label, cfg),
		definition: NewDefinition(cfg.nested...),
	}
}

func (*Label) isField() {}

// Definition returns the nested output definition.
func (l *Label) Definition() *Definition { return l.definition }

func (l *Label) Render(data any, ctx Context) ([]tree.Entry, error) {
	value, out := l.resolve(data)
	switch out {
	case outcomeOmit:
		return nil, nil
	case outcomeMissing:
		return l.entry(tree.DataMissing), nil
	}
	if value != nil && !record.IsMapping(value) {
		return nil, malformed(l.label, l.path, "mapping", value)
	}
	nested, err := l.definition.render(value, ctx)
	return l.entry(nested), err
}

// Collection renders a nested definition once per element of the sequence
// found at its path.
type Collection struct {
	base
	numbered   bool
	definition *Definition
}

// NewCollection declares a collection, numbered unless WithNumbered(false).
func NewCollection(path record.Path, label string, opts ...Option) *Collection {
	cfg := buildConfig(opts)
	return &Collection{
		base:       newBase(path, label, cfg),
		numbered:   cfg.numbered,
		definition: NewDefinition(cfg.nested...),
	}
}

func (*Collection) isField() {}

// Definition returns the per-element output definition.
func (c *Collection) Definition() *Definition { return c.definition }

// Numbered reports whether elements are keyed by their 1-based position.
func (c *Collection) Numbered() bool { return c.numbered }

func (c *Collection) Render(data any, ctx Context) ([]tree.Entry, error) {
	value, out := c.resolve(data)
	switch out {
	case outcomeOmit:
		return nil, nil
	case outcomeMissing:
		return c.entry(tree.DataMissing), nil
	}

	var items []any
	if value != nil {
		seq, ok := record.Sequence(value)
		if !ok {
			return nil, malformed(c.label, c.path, "sequence", value)
		}
		items = seq
	}

	rendered, err := c.renderItems(items, ctx)
	return c.entry(rendered), err
}

func (c *Collection) renderItems(items []any, ctx Context) (tree.Node, error) {
	var errs error
	nodes := make([]tree.Node, len(items))
	for idx, item := range items {
		if c.definition.Len() == 0 {
			nodes[idx] = tree.ValueOf(item)
			continue
		}
		m, err := c.definition.render(item, ctx)
		if err != nil {
			errs = multierr.Append(errs, c.attribute(err))
		}
		nodes[idx] = m
	}

	if !c.numbered {
		return tree.List(nodes), errs
	}
	numbered := &tree.Map{Entries: make([]tree.Entry, len(nodes))}
	for idx, node := range nodes {
		numbered.Entries[idx] = tree.Entry{Key: tree.Index(idx + 1), Value: node}
	}
	return numbered, errs
}

// attribute names this collection on malformed-data errors raised by
// label-less leaves.
func (c *Collection) attribute(err error) error {
	for _, single := range multierr.Errors(err) {
		var malformedErr *MalformedDataError
		if errors.As(single, &malformedErr) && malformedErr.Label == "" {
			malformedErr.Label = c.label
			malformedErr.Path = record.P(c.path...)
		}
	}
	return err
}

// KeyValueList is a collection of name/value pairs whose elements are
// rendered by a single KeyValue leaf.
type KeyValueList struct {
	Collection
}

// NewKeyValueList declares a key/value list. Nested field options are
// ignored; the element definition is always exactly one KeyValue leaf.
func NewKeyValueList(path record.Path, label string, opts ...Option) *KeyValueList {
	cfg := buildConfig(opts)
	definition := NewDefinition(NewKeyValue())
	definition.sealed.Store(true)
	return &KeyValueList{Collection: Collection{
		base:       newBase(path, label, cfg),
		numbered:   cfg.numbered,
		definition: definition,
	}}
}

func (*KeyValueList) isField() {}

// KeyValue is the label-less leaf that merges an element's own keys into the
// enclosing mapping: name and value first, then the rest in lexical order.
type KeyValue struct{}

// NewKeyValue declares a key/value leaf.
func NewKeyValue() *KeyValue { return &KeyValue{} }

func (*KeyValue) isField() {}

func (*KeyValue) Path() record.Path { return nil }
func (*KeyValue) Label() string     { return "" }

var keyValueKeys = []string{"name", "value"}

func (*KeyValue) Render(data any, _ Context) ([]tree.Entry, error) {
	if !record.IsMapping(data) {
		return nil, malformed("", nil, "mapping", data)
	}
	all, ok := tree.ValueOf(data).(*tree.Map)
	if !ok {
		return nil, nil
	}

	entries := make([]tree.Entry, 0, all.Len())
	for _, key := range keyValueKeys {
		if value, found := all.Get(tree.Raw(key)); found {
			entries = append(entries, tree.Entry{Key: tree.Raw(key), Value: value})
		}
	}
	for _, entry := range all.Entries {
		if isKeyValueKey(entry.Key.Name) {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func isKeyValueKey(name string) bool {
	for _, key := range keyValueKeys {
		if key == name {
			return true
		}
	}
	return false
}
