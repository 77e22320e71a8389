package recordfmt

import (
	"io"

	"github.com/goliatone/go-recordfmt/pkg/adapters/base"
	"github.com/goliatone/go-recordfmt/pkg/adapters/csv"
	"github.com/goliatone/go-recordfmt/pkg/adapters/html"
	"github.com/goliatone/go-recordfmt/pkg/adapters/json"
	"github.com/goliatone/go-recordfmt/pkg/adapters/table"
	"github.com/goliatone/go-recordfmt/pkg/adapters/template"
	"github.com/goliatone/go-recordfmt/pkg/adapters/yaml"
	"github.com/goliatone/go-recordfmt/pkg/fields"
	"github.com/goliatone/go-recordfmt/pkg/output"
	"github.com/goliatone/go-recordfmt/pkg/record"
)

// Field aliases fields.Field so callers can declare output without importing
// the sub-package.
type Field = fields.Field

// Collection aliases record.Collection.
type Collection = record.Collection

// Context aliases output.Context.
type Context = output.Context

// Adapter aliases output.Adapter.
type Adapter = output.Adapter

// Options tune the adapters built by NewRegistry.
type Options struct {
	// Stdout replaces os.Stdout as the default stream of every adapter.
	Stdout io.Writer
	// Color enables bold labels and headers in the text formats.
	Color bool
	// Template configures the template adapter. Without a source or file
	// building that adapter fails with template.ErrNoTemplate.
	Template []template.Option
}

// NewRegistry returns a registry holding every bundled format.
func NewRegistry(opts Options) *output.Registry {
	reg := output.NewRegistry()
	reg.MustRegister(base.Name, func(ctx output.Context) (output.Adapter, error) {
		return base.New(ctx, base.WithStdout(opts.Stdout), base.WithColor(opts.Color)), nil
	})
	reg.MustRegister(table.Name, func(ctx output.Context) (output.Adapter, error) {
		return table.New(ctx, table.WithStdout(opts.Stdout), table.WithColor(opts.Color)), nil
	})
	reg.MustRegister(yaml.Name, func(ctx output.Context) (output.Adapter, error) {
		return yaml.New(ctx, yaml.WithStdout(opts.Stdout)), nil
	})
	reg.MustRegister(json.Name, func(ctx output.Context) (output.Adapter, error) {
		return json.New(ctx, json.WithStdout(opts.Stdout)), nil
	})
	reg.MustRegister(csv.Name, func(ctx output.Context) (output.Adapter, error) {
		return csv.New(ctx, csv.WithStdout(opts.Stdout)), nil
	})
	reg.MustRegister(html.Name, func(ctx output.Context) (output.Adapter, error) {
		return html.New(ctx, html.WithStdout(opts.Stdout)), nil
	})
	tmplOpts := append([]template.Option{template.WithStdout(opts.Stdout)}, opts.Template...)
	reg.MustRegister(template.Name, template.Factory(tmplOpts...))
	return reg
}

// DefaultRegistry returns a registry with default options.
func DefaultRegistry() *output.Registry {
	return NewRegistry(Options{})
}

// PrintCollection renders records in the named format using the default
// registry.
func PrintCollection(format string, ctx Context, defs []Field, records Collection) error {
	adapter, err := DefaultRegistry().New(format, ctx)
	if err != nil {
		return err
	}
	return adapter.PrintCollection(defs, records)
}

// PrintMessage renders a message in the named format using the default
// registry.
func PrintMessage(format string, ctx Context, template string, params map[string]any) error {
	adapter, err := DefaultRegistry().New(format, ctx)
	if err != nil {
		return err
	}
	return adapter.PrintMessage(template, params)
}
