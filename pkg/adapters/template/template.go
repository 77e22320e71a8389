// Package template renders each projected record through a pongo2 template.
// The template sees the record as "record" (keys are the rendered labels),
// its 1-based position as "index" and the collection size as "total".
package template

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-recordfmt/pkg/fields"
	"github.com/goliatone/go-recordfmt/pkg/output"
	"github.com/goliatone/go-recordfmt/pkg/record"
	"github.com/goliatone/go-recordfmt/pkg/tree"
)

const Name = "template"

// ErrNoTemplate is returned when neither an inline source nor a template
// file was configured.
var ErrNoTemplate = errors.New("template: template source is required")

// Option configures the adapter before construction.
type Option func(*config)

type config struct {
	stdout  io.Writer
	source  string
	files   fs.FS
	file    string
	globals map[string]any
}

// WithStdout overrides the default stream used when no output file is set.
func WithStdout(w io.Writer) Option {
	return func(cfg *config) {
		if w != nil {
			cfg.stdout = w
		}
	}
}

// WithSource sets an inline template.
func WithSource(src string) Option {
	return func(cfg *config) {
		cfg.source = src
	}
}

// WithFile loads the template name from files.
func WithFile(files fs.FS, name string) Option {
	return func(cfg *config) {
		cfg.files = files
		cfg.file = strings.TrimSpace(name)
	}
}

// WithGlobals seeds values available to every execution.
func WithGlobals(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globals[strings.TrimSpace(key)] = value
		}
	}
}

// Adapter executes a compiled pongo2 template once per record.
type Adapter struct {
	ctx     output.Context
	stdout  io.Writer
	tmpl    *pongo2.Template
	globals pongo2.Context
}

var _ output.Adapter = (*Adapter)(nil)

// New compiles the configured template.
func New(ctx output.Context, opts ...Option) (*Adapter, error) {
	cfg := &config{}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	var (
		tmpl *pongo2.Template
		err  error
	)
	switch {
	case cfg.files != nil && cfg.file != "":
		set := pongo2.NewSet("recordfmt", pongo2.NewFSLoader(cfg.files))
		tmpl, err = set.FromFile(cfg.file)
		if err != nil {
			return nil, fmt.Errorf("template: load %q: %w", cfg.file, err)
		}
	case cfg.source != "":
		tmpl, err = pongo2.FromString(cfg.source)
		if err != nil {
			return nil, fmt.Errorf("template: parse source: %w", err)
		}
	default:
		return nil, ErrNoTemplate
	}

	globals := make(pongo2.Context, len(cfg.globals))
	for key, value := range cfg.globals {
		if key != "" {
			globals[key] = value
		}
	}
	return &Adapter{ctx: ctx, stdout: cfg.stdout, tmpl: tmpl, globals: globals}, nil
}

// Factory returns a registry factory that builds the adapter with opts.
func Factory(opts ...Option) output.Factory {
	return func(ctx output.Context) (output.Adapter, error) {
		return New(ctx, opts...)
	}
}

func (a *Adapter) Name() string { return Name }

func (a *Adapter) PaginateByDefault() bool { return false }

// PrintMessage bypasses the template and writes the interpolated message.
func (a *Adapter) PrintMessage(template string, params map[string]any) error {
	doc, err := a.ctx.Message(template, params)
	if err != nil {
		return fmt.Errorf("template: %w", err)
	}
	line := output.MessageLine(doc)
	return a.ctx.Write(a.stdout, []byte(line+"\n"))
}

func (a *Adapter) PrintCollection(defs []fields.Field, records record.Collection) error {
	maps, err := a.ctx.Project(Name, defs, records)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	for i, m := range maps {
		view := pongo2.Context{}
		view.Update(a.globals)
		view["record"] = contextValue(m)
		view["index"] = i + 1
		view["total"] = len(maps)
		if err := a.tmpl.ExecuteWriter(view, &buf); err != nil {
			return fmt.Errorf("template: execute record %d: %w", i, err)
		}
	}
	return a.ctx.Write(a.stdout, buf.Bytes())
}

// contextValue converts a node into values pongo2 can walk. Missing values
// become the placeholder text-oriented formats print.
func contextValue(n tree.Node) any {
	switch typed := n.(type) {
	case *tree.Map:
		out := make(map[string]any, typed.Len())
		for _, entry := range typed.Entries {
			out[entry.Key.String()] = contextValue(entry.Value)
		}
		return out
	case tree.List:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = contextValue(item)
		}
		return out
	case tree.Missing:
		return output.MissingPlaceholder
	default:
		return tree.Plain(n)
	}
}
