package fields

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/goliatone/go-recordfmt/pkg/record"
	"github.com/goliatone/go-recordfmt/pkg/tree"
)

// Context carries the per-invocation switches that influence rendering.
type Context struct {
	// ShowIDs reveals ID fields, which are hidden otherwise.
	ShowIDs bool
}

// Field is a declarative unit describing what to extract from a record and
// how to label and shape it. The implementations in this package form a
// closed set.
type Field interface {
	// Path returns the key chain resolved against the current record.
	Path() record.Path
	// Label returns the display label; empty only for KeyValue leaves.
	Label() string
	// Render returns the entries this field contributes to the enclosing
	// mapping. No entries means the field is omitted. A *MalformedDataError
	// may accompany entries produced by nested fields.
	Render(data any, ctx Context) ([]tree.Entry, error)

	isField()
}

// Option tweaks a field declaration.
type Option func(*config)

type config struct {
	hideBlank   bool
	hideMissing bool
	numbered    bool
	nested      []Field
}

func defaultConfig() config {
	return config{
		hideMissing: true,
		numbered:    true,
	}
}

// WithHideBlank omits the field when its value is present but blank.
func WithHideBlank(hide bool) Option {
	return func(cfg *config) {
		cfg.hideBlank = hide
	}
}

// WithHideMissing controls whether an unresolved path omits the field (the
// default) or renders the DataMissing marker.
func WithHideMissing(hide bool) Option {
	return func(cfg *config) {
		cfg.hideMissing = hide
	}
}

// WithNumbered selects index-keyed (true, the default) or plain sequence
// rendering for collections. Ignored by other fields.
func WithNumbered(numbered bool) Option {
	return func(cfg *config) {
		cfg.numbered = numbered
	}
}

// WithFields seeds the nested output definition of a Label or Collection.
// Ignored by other fields.
func WithFields(fields ...Field) Option {
	return func(cfg *config) {
		cfg.nested = append(cfg.nested, fields...)
	}
}

func buildConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// base carries the attributes every labelled field shares.
type base struct {
	path        record.Path
	label       string
	hideBlank   bool
	hideMissing bool
}

func newBase(path record.Path, label string, cfg config) base {
	return base{
		path:        record.P(path...),
		label:       label,
		hideBlank:   cfg.hideBlank,
		hideMissing: cfg.hideMissing,
	}
}

func (b *base) Path() record.Path { return record.P(b.path...) }
func (b *base) Label() string     { return b.label }

// HideBlank reports the blank-value rule.
func (b *base) HideBlank() bool { return b.hideBlank }

// HideMissing reports the missing-value rule.
func (b *base) HideMissing() bool { return b.hideMissing }

type outcome uint8

const (
	outcomeRender outcome = iota
	outcomeOmit
	outcomeMissing
)

// resolve applies the presence and blankness rules shared by all labelled
// fields.
func (b *base) resolve(data any) (any, outcome) {
	value, status := record.Resolve(data, b.path)
	if status == record.Missing {
		if b.hideMissing {
			return nil, outcomeOmit
		}
		return nil, outcomeMissing
	}
	if b.hideBlank && record.IsBlank(value) {
		return nil, outcomeOmit
	}
	return value, outcomeRender
}

func (b *base) entry(value tree.Node) []tree.Entry {
	return []tree.Entry{{Key: tree.Label(b.label), Value: value}}
}

// RenderAll renders fields in order against data, merging their entries into
// a fresh mapping. Malformed data in one field omits that field only; the
// errors are combined and returned with the mapping.
func RenderAll(fields []Field, data any, ctx Context) (*tree.Map, error) {
	out := &tree.Map{Entries: make([]tree.Entry, 0, len(fields))}
	var errs error
	for _, field := range fields {
		entries, err := field.Render(data, ctx)
		if err != nil {
			errs = multierr.Append(errs, err)
		}
		for _, entry := range entries {
			out.Set(entry.Key, entry.Value)
		}
	}
	return out, errs
}

// Validate checks declarations recursively: every field other than a
// KeyValue leaf needs a label.
func Validate(fields []Field) error {
	for idx, field := range fields {
		if field == nil {
			return fmt.Errorf("fields: field %d is nil", idx)
		}
		if _, leaf := field.(*KeyValue); leaf {
			continue
		}
		if field.Label() == "" {
			return fmt.Errorf("%w (field %d at %s)", ErrLabelRequired, idx, field.Path())
		}
		if container, ok := field.(interface{ Definition() *Definition }); ok {
			if err := Validate(container.Definition().Fields()); err != nil {
				return fmt.Errorf("fields: %q: %w", field.Label(), err)
			}
		}
	}
	return nil
}

// SetRecordIndex stamps every MalformedDataError inside err with idx.
func SetRecordIndex(err error, idx int) error {
	for _, single := range multierr.Errors(err) {
		var malformedErr *MalformedDataError
		if errors.As(single, &malformedErr) {
			malformedErr.Record = idx
		}
	}
	return err
}
