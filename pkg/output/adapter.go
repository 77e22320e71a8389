package output

import (
	"github.com/goliatone/go-recordfmt/pkg/fields"
	"github.com/goliatone/go-recordfmt/pkg/record"
)

// Adapter serialises messages and projected collections in one output
// format and writes them to the destination resolved from its Context.
type Adapter interface {
	Name() string
	PrintMessage(template string, params map[string]any) error
	PrintCollection(defs []fields.Field, records record.Collection) error
	// PaginateByDefault tells callers whether the format is meant to be
	// read page by page (interactive tables) or dumped whole.
	PaginateByDefault() bool
}

// MissingPlaceholder is how text-oriented adapters print the DataMissing
// marker.
const MissingPlaceholder = "-"
