// Package projector applies a list of top-level field declarations to every
// record of a collection, producing one ordered rendered mapping per record.
package projector

import (
	"go.uber.org/multierr"

	"github.com/goliatone/go-recordfmt/pkg/fields"
	"github.com/goliatone/go-recordfmt/pkg/record"
	"github.com/goliatone/go-recordfmt/pkg/tree"
)

// Project renders defs over each record independently. Invalid declarations
// abort before any record is touched. Malformed data only omits the
// offending field: the rendered maps are always returned, together with the
// combined *fields.MalformedDataError values stamped with their record index.
func Project(defs []fields.Field, records record.Collection, ctx fields.Context) ([]*tree.Map, error) {
	if err := fields.Validate(defs); err != nil {
		return nil, err
	}

	out := make([]*tree.Map, 0, len(records.Records))
	var errs error
	for idx, data := range records.Records {
		rendered, err := fields.RenderAll(defs, data, ctx)
		if err != nil {
			errs = multierr.Append(errs, fields.SetRecordIndex(err, idx))
		}
		out = append(out, rendered)
	}
	return out, errs
}

// Errors splits a Project error into the individual record failures.
func Errors(err error) []error {
	return multierr.Errors(err)
}
