// Package base renders projected records as aligned "Label: value" blocks
// meant for reading in a terminal.
package base

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/goliatone/go-recordfmt/pkg/fields"
	"github.com/goliatone/go-recordfmt/pkg/output"
	"github.com/goliatone/go-recordfmt/pkg/record"
	"github.com/goliatone/go-recordfmt/pkg/tree"
)

const (
	Name   = "base"
	indent = "    "
)

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

// WithColor toggles bold labels.
func WithColor(enabled bool) Option {
	return func(a *Adapter) {
		a.color = enabled
	}
}

// Adapter writes aligned text blocks, one per record.
type Adapter struct {
	ctx    output.Context
	stdout io.Writer
	color  bool
}

var _ output.Adapter = (*Adapter)(nil)

// New constructs the adapter bound to ctx. Labels are plain unless WithColor
// is set.
func New(ctx output.Context, opts ...Option) *Adapter {
	a := &Adapter{ctx: ctx}
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

func (a *Adapter) PaginateByDefault() bool { return true }

func (a *Adapter) PrintMessage(template string, params map[string]any) error {
	doc, err := a.ctx.Message(template, params)
	if err != nil {
		return fmt.Errorf("base: %w", err)
	}
	line := output.MessageLine(doc)
	return a.ctx.Write(a.stdout, []byte(line+"\n"))
}

// PrintCollection writes one block per record separated by a blank line. An
// empty projection is an empty write.
func (a *Adapter) PrintCollection(defs []fields.Field, records record.Collection) error {
	maps, err := a.ctx.Project(Name, defs, records)
	if err != nil {
		return err
	}
	label := color.New(color.Bold)
	if a.color {
		label.EnableColor()
	} else {
		label.DisableColor()
	}
	p := printer{label: label}

	var b strings.Builder
	for i, m := range maps {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, line := range p.mapLines(m) {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return a.ctx.Write(a.stdout, []byte(b.String()))
}

type printer struct {
	label *color.Color
}

func (p printer) mapLines(m *tree.Map) []string {
	width := 0
	for _, entry := range m.Entries {
		if entry.Key.Kind != tree.KeyIndex && !container(entry.Value) {
			width = max(width, len(entry.Key.String())+1)
		}
	}

	var out []string
	for _, entry := range m.Entries {
		if entry.Key.Kind == tree.KeyIndex {
			out = append(out, prefixed(fmt.Sprintf("%d) ", entry.Key.Index), p.valueLines(entry.Value))...)
			continue
		}

		name := entry.Key.String() + ":"
		if container(entry.Value) {
			out = append(out, p.label.Sprint(name))
			for _, line := range p.valueLines(entry.Value) {
				out = append(out, indent+line)
			}
			continue
		}
		padding := strings.Repeat(" ", width-len(name))
		line := p.label.Sprint(name) + padding + " " + output.Text(entry.Value)
		out = append(out, strings.TrimRight(line, " "))
	}
	return out
}

func (p printer) valueLines(n tree.Node) []string {
	switch typed := n.(type) {
	case *tree.Map:
		return p.mapLines(typed)
	case tree.List:
		var out []string
		for _, item := range typed {
			out = append(out, prefixed("- ", p.valueLines(item))...)
		}
		return out
	default:
		return []string{output.Text(n)}
	}
}

// container reports whether n renders on lines of its own.
func container(n tree.Node) bool {
	switch typed := n.(type) {
	case *tree.Map:
		return typed.Len() > 0
	case tree.List:
		return len(typed) > 0
	default:
		return false
	}
}

// prefixed puts prefix before the first line and aligns the rest under it.
func prefixed(prefix string, lines []string) []string {
	if len(lines) == 0 {
		return []string{strings.TrimRight(prefix, " ")}
	}
	pad := strings.Repeat(" ", len(prefix))
	out := make([]string, len(lines))
	for i, line := range lines {
		if i == 0 {
			out[i] = prefix + line
			continue
		}
		out[i] = pad + line
	}
	return out
}
