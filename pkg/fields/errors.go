package fields

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-recordfmt/pkg/record"
)

var (
	// ErrLabelRequired is returned by Validate for a labelled field declared
	// without a label.
	ErrLabelRequired = errors.New("fields: label is required")
	// ErrDefinitionSealed is returned when appending to a definition that has
	// already been rendered.
	ErrDefinitionSealed = errors.New("fields: definition already rendered")
	// ErrMalformedData matches every *MalformedDataError via errors.Is.
	ErrMalformedData = errors.New("fields: malformed data")
)

// MalformedDataError reports a container field whose path resolved to a
// value of the wrong shape. Record is the index of the offending record in
// its collection, or -1 when unknown.
type MalformedDataError struct {
	Label  string
	Path   record.Path
	Record int
	Want   string
	Got    string
}

func (e *MalformedDataError) Error() string {
	if e.Record >= 0 {
		return fmt.Sprintf("fields: record %d: field %q at %s: expected %s, got %s", e.Record, e.Label, e.Path, e.Want, e.Got)
	}
	return fmt.Sprintf("fields: field %q at %s: expected %s, got %s", e.Label, e.Path, e.Want, e.Got)
}

// Is makes errors.Is(err, ErrMalformedData) hold.
func (e *MalformedDataError) Is(target error) bool {
	return target == ErrMalformedData
}

func malformed(label string, path record.Path, want string, value any) *MalformedDataError {
	return &MalformedDataError{
		Label:  label,
		Path:   path,
		Record: -1,
		Want:   want,
		Got:    describe(value),
	}
}

func describe(value any) string {
	switch value.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return "number"
	case []any:
		return "sequence"
	case map[string]any, map[any]any, map[string]string:
		return "mapping"
	default:
		return fmt.Sprintf("%T", value)
	}
}
