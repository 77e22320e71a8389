package fields

import (
	"github.com/goliatone/go-recordfmt/pkg/record"
	"github.com/goliatone/go-recordfmt/pkg/tree"
)

// Plain resolves its path and contributes label -> value.
type Plain struct {
	base
}

// New declares a plain field.
func New(path record.Path, label string, opts ...Option) *Plain {
	return &Plain{base: newBase(path, label, buildConfig(opts))}
}

func (*Plain) isField() {}

func (p *Plain) Render(data any, _ Context) ([]tree.Entry, error) {
	return p.renderValue(data)
}

func (b *base) renderValue(data any) ([]tree.Entry, error) {
	value, out := b.resolve(data)
	switch out {
	case outcomeOmit:
		return nil, nil
	case outcomeMissing:
		return b.entry(tree.DataMissing), nil
	}
	return b.entry(tree.ValueOf(value)), nil
}

// ID is a plain field that stays hidden unless the context asks for ids.
type ID struct {
	base
}

// NewID declares an id field.
func NewID(path record.Path, label string, opts ...Option) *ID {
	return &ID{base: newBase(path, label, buildConfig(opts))}
}

func (*ID) isField() {}

func (i *ID) Render(data any, ctx Context) ([]tree.Entry, error) {
	if !ctx.ShowIDs {
		return nil, nil
	}
	return i.renderValue(data)
}
