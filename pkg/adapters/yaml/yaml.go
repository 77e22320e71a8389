// Package yaml renders projected collections and messages as YAML
// documents. Key order follows the field declarations, and numbered
// collection keys are emitted as integers.
package yaml

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-recordfmt/pkg/fields"
	"github.com/goliatone/go-recordfmt/pkg/output"
	"github.com/goliatone/go-recordfmt/pkg/record"
	"github.com/goliatone/go-recordfmt/pkg/tree"
)

// Name is the registry key of the adapter.
const Name = "yaml"

// MissingTag marks values the field asked to show although the record did
// not carry them.
const MissingTag = "!missing"

const documentStart = "---\n"

// Option customises the adapter.
type Option func(*Adapter)

// WithStdout overrides the default stream used when no output file is set.
func WithStdout(w io.Writer) Option {
	return func(a *Adapter) {
		if w != nil {
			a.stdout = w
		}
	}
}

// WithIndent sets the number of spaces per nesting level.
func WithIndent(spaces int) Option {
	return func(a *Adapter) {
		if spaces > 0 {
			a.indent = spaces
		}
	}
}

// Adapter writes YAML documents.
type Adapter struct {
	ctx    output.Context
	stdout io.Writer
	indent int
}

var _ output.Adapter = (*Adapter)(nil)

// New constructs the adapter bound to ctx.
func New(ctx output.Context, opts ...Option) *Adapter {
	a := &Adapter{ctx: ctx, indent: 2}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Factory adapts New to the registry signature.
func Factory(ctx output.Context) (output.Adapter, error) {
	return New(ctx), nil
}

func (a *Adapter) Name() string { return Name }

// PaginateByDefault is false: YAML output is meant for machines.
func (a *Adapter) PaginateByDefault() bool { return false }

// PrintMessage writes the message document. Labels of the document are not
// capitalized.
func (a *Adapter) PrintMessage(template string, params map[string]any) error {
	doc, err := a.ctx.Message(template, params)
	if err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	node, err := mapping(doc)
	if err != nil {
		return err
	}
	return a.emit(node)
}

// PrintCollection projects records and writes them as a sequence of
// mappings, one per record.
func (a *Adapter) PrintCollection(defs []fields.Field, records record.Collection) error {
	maps, err := a.ctx.Project(Name, defs, records)
	if err != nil {
		return err
	}
	seq, err := sequence(maps)
	if err != nil {
		return err
	}
	return a.emit(seq)
}

func sequence(maps []*tree.Map) (*yaml.Node, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, m := range maps {
		item, err := mapping(m)
		if err != nil {
			return nil, err
		}
		seq.Content = append(seq.Content, item)
	}
	return seq, nil
}

func (a *Adapter) emit(node *yaml.Node) error {
	body, err := encode(node, a.indent)
	if err != nil {
		return err
	}
	payload := make([]byte, 0, len(documentStart)+len(body))
	payload = append(payload, documentStart...)
	payload = append(payload, body...)
	return a.ctx.Write(a.stdout, payload)
}

func encode(node *yaml.Node, indent int) ([]byte, error) {
	if node.Kind == yaml.SequenceNode && len(node.Content) == 0 {
		return []byte("[]\n"), nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("yaml: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yaml: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func mapping(m *tree.Map) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if m == nil {
		return node, nil
	}
	for _, entry := range m.Entries {
		value, err := valueNode(entry.Value)
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode(entry.Key), value)
	}
	return node, nil
}

func keyNode(key tree.Key) *yaml.Node {
	if key.Kind == tree.KeyIndex {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: key.String()}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key.Name}
}

func valueNode(n tree.Node) (*yaml.Node, error) {
	switch typed := n.(type) {
	case *tree.Map:
		return mapping(typed)
	case tree.List:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range typed {
			child, err := valueNode(item)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, child)
		}
		return seq, nil
	case tree.Missing:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: MissingTag}, nil
	case tree.Scalar:
		node := &yaml.Node{}
		if err := node.Encode(typed.Value); err != nil {
			return nil, fmt.Errorf("yaml: encode %T: %w", typed.Value, err)
		}
		return node, nil
	default:
		return nil, fmt.Errorf("yaml: unsupported node %T", n)
	}
}
