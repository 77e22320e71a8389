// Package table renders projected collections as a text table, one row per
// record and one column per top-level label.
package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/goliatone/go-recordfmt/pkg/fields"
	"github.com/goliatone/go-recordfmt/pkg/output"
	"github.com/goliatone/go-recordfmt/pkg/record"
)

const Name = "table"

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

// WithColor toggles the bold header.
func WithColor(enabled bool) Option {
	return func(a *Adapter) {
		a.color = enabled
	}
}

// WithStyle replaces the go-pretty style. Header text formatting is always
// reset so labels keep their capitalization.
func WithStyle(style table.Style) Option {
	return func(a *Adapter) {
		a.style = style
	}
}

// Adapter writes go-pretty tables with a page footer for partial listings.
type Adapter struct {
	ctx    output.Context
	stdout io.Writer
	color  bool
	style  table.Style
}

var _ output.Adapter = (*Adapter)(nil)

// New constructs the adapter bound to ctx using table.StyleDefault.
func New(ctx output.Context, opts ...Option) *Adapter {
	a := &Adapter{ctx: ctx, style: table.StyleDefault}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	a.style.Format.Header = text.FormatDefault
	return a
}

// Factory adapts New to the registry signature.
func Factory(ctx output.Context) (output.Adapter, error) {
	return New(ctx), nil
}

func (a *Adapter) Name() string { return Name }

// PaginateByDefault is true: tables are read by people.
func (a *Adapter) PaginateByDefault() bool { return true }

// PrintMessage writes the interpolated message as a plain line.
func (a *Adapter) PrintMessage(template string, params map[string]any) error {
	doc, err := a.ctx.Message(template, params)
	if err != nil {
		return fmt.Errorf("table: %w", err)
	}
	line := output.MessageLine(doc)
	return a.ctx.Write(a.stdout, []byte(line+"\n"))
}

func (a *Adapter) PrintCollection(defs []fields.Field, records record.Collection) error {
	maps, err := a.ctx.Project(Name, defs, records)
	if err != nil {
		return err
	}

	columns := output.Columns(maps)
	if len(columns) == 0 {
		columns = a.ctx.DeclaredColumns(defs)
	}
	if len(columns) == 0 {
		return a.ctx.Write(a.stdout, nil)
	}

	header := color.New(color.Bold)
	if a.color {
		header.EnableColor()
	} else {
		header.DisableColor()
	}

	tw := table.NewWriter()
	tw.SetStyle(a.style)
	headerRow := make(table.Row, len(columns))
	for i, key := range columns {
		headerRow[i] = header.Sprint(key.String())
	}
	tw.AppendHeader(headerRow)
	for _, m := range maps {
		row := make(table.Row, len(columns))
		for i, key := range columns {
			value, ok := m.Get(key)
			if !ok {
				row[i] = ""
				continue
			}
			row[i] = output.Text(value)
		}
		tw.AppendRow(row)
	}

	var b strings.Builder
	b.WriteString(tw.Render())
	b.WriteString("\n")
	if footer := pageFooter(records); footer != "" {
		b.WriteString(footer)
		b.WriteString("\n")
	}
	return a.ctx.Write(a.stdout, []byte(b.String()))
}

func pageFooter(records record.Collection) string {
	meta := records.Meta
	if meta.PerPage <= 0 || meta.Total <= len(records.Records) {
		return ""
	}
	pages := (meta.Total + meta.PerPage - 1) / meta.PerPage
	page := meta.Page
	if page < 1 {
		page = 1
	}
	return fmt.Sprintf("Page %d of %d (%d records total)", page, pages, meta.Total)
}
