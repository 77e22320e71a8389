// Package html renders projected collections as an HTML table. Cell values
// may carry markup from upstream APIs; they pass through a sanitizing policy
// that keeps inline formatting and links and drops everything else.
package html

import (
	"fmt"
	stdhtml "html"
	"io"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-recordfmt/pkg/fields"
	"github.com/goliatone/go-recordfmt/pkg/output"
	"github.com/goliatone/go-recordfmt/pkg/record"
	"github.com/goliatone/go-recordfmt/pkg/tree"
)

// Name is the registry key of the adapter.
const Name = "html"

var (
	cellPolicyOnce sync.Once
	cellPolicy     *bluemonday.Policy
)

func cellSanitizer() *bluemonday.Policy {
	cellPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "code", "br")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		policy.RequireNoFollowOnLinks(true)
		cellPolicy = policy
	})
	return cellPolicy
}

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

// WithClass sets the class attribute of the table element.
func WithClass(class string) Option {
	return func(a *Adapter) {
		a.class = strings.TrimSpace(class)
	}
}

// Adapter writes one sanitized HTML table per collection.
type Adapter struct {
	ctx    output.Context
	stdout io.Writer
	class  string
}

var _ output.Adapter = (*Adapter)(nil)

// New constructs the adapter bound to ctx. The table carries the
// "recordfmt" class unless WithClass changes it.
func New(ctx output.Context, opts ...Option) *Adapter {
	a := &Adapter{ctx: ctx, class: "recordfmt"}
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

func (a *Adapter) PrintMessage(template string, params map[string]any) error {
	doc, err := a.ctx.Message(template, params)
	if err != nil {
		return fmt.Errorf("html: %w", err)
	}
	line := output.MessageLine(doc)
	return a.ctx.Write(a.stdout, []byte(`<p class="message">`+stdhtml.EscapeString(line)+"</p>\n"))
}

func (a *Adapter) PrintCollection(defs []fields.Field, records record.Collection) error {
	maps, err := a.ctx.Project(Name, defs, records)
	if err != nil {
		return err
	}
	columns := output.Columns(maps)

	var b strings.Builder
	b.WriteString("<table")
	if a.class != "" {
		fmt.Fprintf(&b, " class=%q", stdhtml.EscapeString(a.class))
	}
	b.WriteString(">\n<thead><tr>")
	for _, key := range columns {
		b.WriteString("<th>" + stdhtml.EscapeString(key.String()) + "</th>")
	}
	b.WriteString("</tr></thead>\n<tbody>\n")
	for _, m := range maps {
		b.WriteString("<tr>")
		for _, key := range columns {
			b.WriteString("<td>")
			if value, ok := m.Get(key); ok {
				b.WriteString(cell(value))
			}
			b.WriteString("</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>\n")
	return a.ctx.Write(a.stdout, []byte(b.String()))
}

func cell(n tree.Node) string {
	return strings.TrimSpace(cellSanitizer().Sanitize(output.Text(n)))
}
