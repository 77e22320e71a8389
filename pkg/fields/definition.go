package fields

import (
	"go.uber.org/atomic"

	"github.com/goliatone/go-recordfmt/pkg/tree"
)

// Definition is the ordered list of fields nested under a Label or
// Collection. It is append-only and becomes read-only once rendered.
type Definition struct {
	fields []Field
	sealed atomic.Bool
}

// NewDefinition builds a definition seeded with fields.
func NewDefinition(fields ...Field) *Definition {
	d := &Definition{}
	d.fields = append(d.fields, fields...)
	return d
}

// Append adds fields to the end of the definition.
func (d *Definition) Append(fields ...Field) error {
	if d.sealed.Load() {
		return ErrDefinitionSealed
	}
	d.fields = append(d.fields, fields...)
	return nil
}

// MustAppend panics when Append fails. Useful for declaration-time wiring.
func (d *Definition) MustAppend(fields ...Field) *Definition {
	if err := d.Append(fields...); err != nil {
		panic(err)
	}
	return d
}

// Fields returns a copy of the declared fields.
func (d *Definition) Fields() []Field {
	if d == nil {
		return nil
	}
	out := make([]Field, len(d.fields))
	copy(out, d.fields)
	return out
}

// Len returns the number of declared fields.
func (d *Definition) Len() int {
	if d == nil {
		return 0
	}
	return len(d.fields)
}

// Sealed reports whether the definition has been rendered.
func (d *Definition) Sealed() bool {
	return d.sealed.Load()
}

func (d *Definition) render(data any, ctx Context) (*tree.Map, error) {
	d.sealed.Store(true)
	return RenderAll(d.fields, data, ctx)
}
