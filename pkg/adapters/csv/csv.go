// Package csv renders projected collections as comma separated values. Nested
// labels are flattened into "Parent::Child" columns.
package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/goliatone/go-recordfmt/pkg/fields"
	"github.com/goliatone/go-recordfmt/pkg/output"
	"github.com/goliatone/go-recordfmt/pkg/record"
)

const (
	Name = "csv"
	// Separator joins the labels of nested columns.
	Separator = "::"
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

// WithComma changes the field delimiter.
func WithComma(r rune) Option {
	return func(a *Adapter) {
		a.comma = r
	}
}

// Adapter writes RFC 4180 records with a header row.
type Adapter struct {
	ctx    output.Context
	stdout io.Writer
	comma  rune
}

var _ output.Adapter = (*Adapter)(nil)

// New constructs the adapter bound to ctx, comma separated by default.
func New(ctx output.Context, opts ...Option) *Adapter {
	a := &Adapter{ctx: ctx, comma: ','}
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

func (a *Adapter) PaginateByDefault() bool { return false }

// PrintMessage writes the message document as a two-line CSV.
func (a *Adapter) PrintMessage(template string, params map[string]any) error {
	doc, err := a.ctx.Message(template, params)
	if err != nil {
		return fmt.Errorf("csv: %w", err)
	}
	var header, row []string
	for _, entry := range output.Flatten(doc, Separator) {
		header = append(header, entry.Key)
		row = append(row, entry.Value)
	}
	return a.write([][]string{header, row})
}

// PrintCollection writes a header row built from the union of flattened
// columns, then one row per record. Absent cells are empty. An empty
// projection writes the header of the declared top-level labels alone.
func (a *Adapter) PrintCollection(defs []fields.Field, records record.Collection) error {
	maps, err := a.ctx.Project(Name, defs, records)
	if err != nil {
		return err
	}
	if len(maps) == 0 {
		var header []string
		for _, key := range a.ctx.DeclaredColumns(defs) {
			header = append(header, key.String())
		}
		if len(header) == 0 {
			return a.write(nil)
		}
		return a.write([][]string{header})
	}

	var columns []string
	index := make(map[string]int)
	rows := make([]map[string]string, len(maps))
	for i, m := range maps {
		rows[i] = make(map[string]string)
		for _, entry := range output.Flatten(m, Separator) {
			if _, ok := index[entry.Key]; !ok {
				index[entry.Key] = len(columns)
				columns = append(columns, entry.Key)
			}
			rows[i][entry.Key] = entry.Value
		}
	}

	out := make([][]string, 0, len(rows)+1)
	out = append(out, columns)
	for _, cells := range rows {
		row := make([]string, len(columns))
		for i, column := range columns {
			row[i] = cells[column]
		}
		out = append(out, row)
	}
	return a.write(out)
}

func (a *Adapter) write(rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = a.comma
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("csv: encode: %w", err)
	}
	return a.ctx.Write(a.stdout, buf.Bytes())
}
