package output

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/goliatone/go-recordfmt/pkg/capitalize"
	"github.com/goliatone/go-recordfmt/pkg/fields"
	"github.com/goliatone/go-recordfmt/pkg/message"
	"github.com/goliatone/go-recordfmt/pkg/projector"
	"github.com/goliatone/go-recordfmt/pkg/record"
	"github.com/goliatone/go-recordfmt/pkg/tree"
)

// ErrDestinationUnavailable wraps failures writing to the resolved
// destination. It is fatal for the call that hit it.
var ErrDestinationUnavailable = errors.New("output: destination unavailable")

// Context is the per-invocation configuration handed to adapters. It is
// built by the caller and treated as read-only.
type Context struct {
	// ShowIDs reveals ID fields.
	ShowIDs bool
	// OutputFile, when set, receives all structured output and the default
	// stream receives nothing. It is never closed by adapters.
	OutputFile io.Writer
	// Capitalization rewrites rendered labels; nil leaves them untouched.
	Capitalization *capitalize.Transformer
	// Logger receives diagnostics such as malformed data reports.
	Logger log.Logger
}

// FieldContext returns the subset of the context fields render with.
func (c Context) FieldContext() fields.Context {
	return fields.Context{ShowIDs: c.ShowIDs}
}

// Log returns the configured logger or a no-op one.
func (c Context) Log() log.Logger {
	if c.Logger == nil {
		return log.NewNopLogger()
	}
	return c.Logger
}

// Destination resolves where structured content goes: the output file when
// one is set, fallback otherwise, os.Stdout as a last resort.
func (c Context) Destination(fallback io.Writer) io.Writer {
	if c.OutputFile != nil {
		return c.OutputFile
	}
	if fallback != nil {
		return fallback
	}
	return os.Stdout
}

// Project renders defs over records, reports malformed data through the
// logger, and applies the capitalization transform. Only declaration errors
// are returned.
func (c Context) Project(adapter string, defs []fields.Field, records record.Collection) ([]*tree.Map, error) {
	maps, err := projector.Project(defs, records, c.FieldContext())
	if maps == nil && err != nil {
		return nil, fmt.Errorf("output: %s: %w", adapter, err)
	}
	for _, single := range projector.Errors(err) {
		var malformed *fields.MalformedDataError
		if errors.As(single, &malformed) {
			level.Warn(c.Log()).Log(
				"msg", "malformed data, field omitted",
				"adapter", adapter,
				"record", malformed.Record,
				"field", malformed.Label,
				"path", malformed.Path.String(),
				"expected", malformed.Want,
				"got", malformed.Got,
			)
			continue
		}
		level.Warn(c.Log()).Log("msg", "render failed", "adapter", adapter, "err", single)
	}
	return c.Capitalization.Apply(maps), nil
}

// DeclaredColumns returns the labels of the top-level fields that can render
// under this context, capitalized as Project would. Formats with a header
// use it when a projection is empty.
func (c Context) DeclaredColumns(defs []fields.Field) []tree.Key {
	keys := make([]tree.Key, 0, len(defs))
	for _, def := range defs {
		if def == nil || def.Label() == "" {
			continue
		}
		if _, ok := def.(*fields.ID); ok && !c.ShowIDs {
			continue
		}
		keys = append(keys, tree.Label(c.Capitalization.Transform(def.Label())))
	}
	return keys
}

// Message builds the message document for template and params and passes it
// through the capitalization transform. Its keys are raw and never renamed,
// but an unsupported mode is still reported on first use.
func (c Context) Message(template string, params map[string]any) (*tree.Map, error) {
	doc, err := message.Document(template, params)
	if err != nil {
		return nil, err
	}
	return c.Capitalization.Apply([]*tree.Map{doc})[0], nil
}

// MessageLine returns the interpolated text of a message document.
func MessageLine(doc *tree.Map) string {
	value, ok := doc.Get(tree.Raw(message.KeyMessage))
	if !ok {
		return ""
	}
	return Text(value)
}

// Write sends payload to the resolved destination in a single write.
func (c Context) Write(fallback io.Writer, payload []byte) error {
	dest := c.Destination(fallback)
	if _, err := dest.Write(payload); err != nil {
		return fmt.Errorf("%w: %w", ErrDestinationUnavailable, err)
	}
	return nil
}

// WriteFile opens path for writing, hands it to fn as the output file and
// closes it on every exit path.
func WriteFile(path string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDestinationUnavailable, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrDestinationUnavailable, closeErr)
		}
	}()
	return fn(f)
}
