// Package json renders projected collections and messages as indented JSON.
package json

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/goliatone/go-recordfmt/pkg/fields"
	"github.com/goliatone/go-recordfmt/pkg/output"
	"github.com/goliatone/go-recordfmt/pkg/record"
	"github.com/goliatone/go-recordfmt/pkg/tree"
)

const Name = "json"

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

// WithCompact drops indentation.
func WithCompact() Option {
	return func(a *Adapter) {
		a.api = jsoniter.Config{EscapeHTML: false}.Froze()
	}
}

// Adapter writes JSON documents. Object keys keep declaration order and the
// missing marker is written as null.
type Adapter struct {
	ctx    output.Context
	stdout io.Writer
	api    jsoniter.API
}

var _ output.Adapter = (*Adapter)(nil)

// New constructs the adapter bound to ctx, indenting by two spaces.
func New(ctx output.Context, opts ...Option) *Adapter {
	a := &Adapter{
		ctx: ctx,
		api: jsoniter.Config{IndentionStep: 2, EscapeHTML: false}.Froze(),
	}
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
		return fmt.Errorf("json: %w", err)
	}
	return a.emit(func(stream *jsoniter.Stream) { writeNode(stream, doc) })
}

func (a *Adapter) PrintCollection(defs []fields.Field, records record.Collection) error {
	maps, err := a.ctx.Project(Name, defs, records)
	if err != nil {
		return err
	}
	return a.emit(func(stream *jsoniter.Stream) {
		if len(maps) == 0 {
			stream.WriteEmptyArray()
			return
		}
		stream.WriteArrayStart()
		for i, m := range maps {
			if i > 0 {
				stream.WriteMore()
			}
			writeNode(stream, m)
		}
		stream.WriteArrayEnd()
	})
}

func (a *Adapter) emit(write func(*jsoniter.Stream)) error {
	stream := a.api.BorrowStream(nil)
	defer a.api.ReturnStream(stream)

	write(stream)
	stream.WriteRaw("\n")
	if stream.Error != nil {
		return fmt.Errorf("json: encode: %w", stream.Error)
	}
	payload := append([]byte(nil), stream.Buffer()...)
	return a.ctx.Write(a.stdout, payload)
}

func writeNode(stream *jsoniter.Stream, n tree.Node) {
	switch typed := n.(type) {
	case *tree.Map:
		if typed == nil || typed.Len() == 0 {
			stream.WriteEmptyObject()
			return
		}
		stream.WriteObjectStart()
		for i, entry := range typed.Entries {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(entry.Key.String())
			writeNode(stream, entry.Value)
		}
		stream.WriteObjectEnd()
	case tree.List:
		if len(typed) == 0 {
			stream.WriteEmptyArray()
			return
		}
		stream.WriteArrayStart()
		for i, item := range typed {
			if i > 0 {
				stream.WriteMore()
			}
			writeNode(stream, item)
		}
		stream.WriteArrayEnd()
	case tree.Scalar:
		stream.WriteVal(typed.Value)
	default:
		stream.WriteNil()
	}
}
