package projector_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-recordfmt/pkg/fields"
	"github.com/goliatone/go-recordfmt/pkg/projector"
	"github.com/goliatone/go-recordfmt/pkg/record"
	"github.com/goliatone/go-recordfmt/pkg/testsupport"
	"github.com/goliatone/go-recordfmt/pkg/tree"
)

func TestProject_PreservesDeclarationAndRecordOrder(t *testing.T) {
	defs := []fields.Field{
		fields.New(record.P("surname"), "Surname"),
		fields.NewID(record.P("id"), "Id"),
		fields.New(record.P("name"), "Name"),
	}
	records := record.NewCollection(
		map[string]any{"id": 1, "name": "John", "surname": "Doe"},
		map[string]any{"id": 2, "name": "Jane"},
	)

	got, err := projector.Project(defs, records, fields.Context{ShowIDs: true})
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	want := []*tree.Map{
		tree.NewMap(
			tree.Entry{Key: tree.Label("Surname"), Value: tree.Scalar{Value: "Doe"}},
			tree.Entry{Key: tree.Label("Id"), Value: tree.Scalar{Value: 1}},
			tree.Entry{Key: tree.Label("Name"), Value: tree.Scalar{Value: "John"}},
		),
		tree.NewMap(
			tree.Entry{Key: tree.Label("Id"), Value: tree.Scalar{Value: 2}},
			tree.Entry{Key: tree.Label("Name"), Value: tree.Scalar{Value: "Jane"}},
		),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("projection mismatch (-want +got):\n%s", diff)
	}
}

func TestProject_MalformedRecordDoesNotStopSiblings(t *testing.T) {
	defs := []fields.Field{
		fields.New(record.P("name"), "Name"),
		fields.NewLabel(record.P("address"), "Address", fields.WithFields(fields.New(record.P("city"), "City"))),
	}
	records := record.NewCollection(
		map[string]any{"name": "Broken", "address": []any{"x"}},
		testsupport.JohnDoe(),
	)

	got, err := projector.Project(defs, records, fields.Context{})
	if len(got) != 2 {
		t.Fatalf("expected both records rendered, got %d", len(got))
	}
	if diff := cmp.Diff(tree.NewMap(tree.Entry{Key: tree.Label("Name"), Value: tree.Scalar{Value: "Broken"}}), got[0]); diff != "" {
		t.Fatalf("first record mismatch (-want +got):\n%s", diff)
	}
	if _, ok := got[1].Get(tree.Label("Address")); !ok {
		t.Fatalf("second record lost its address: %#v", got[1].Keys())
	}

	errs := projector.Errors(err)
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", err)
	}
	var malformed *fields.MalformedDataError
	if !errors.As(errs[0], &malformed) {
		t.Fatalf("expected malformed data error, got %T", errs[0])
	}
	if malformed.Record != 0 || malformed.Label != "Address" || malformed.Got != "sequence" {
		t.Fatalf("unexpected error details: %#v", malformed)
	}
	if want := `fields: record 0: field "Address" at address: expected mapping, got sequence`; malformed.Error() != want {
		t.Fatalf("error text mismatch:\nwant %s\ngot  %s", want, malformed.Error())
	}
}

func TestProject_InvalidDeclarationsAbort(t *testing.T) {
	_, err := projector.Project([]fields.Field{fields.New(record.P("name"), "")}, testsupport.Records(), fields.Context{})
	if !errors.Is(err, fields.ErrLabelRequired) {
		t.Fatalf("expected label required error, got %v", err)
	}
}

func TestProject_EmptyCollection(t *testing.T) {
	got, err := projector.Project([]fields.Field{fields.New(record.P("name"), "Name")}, record.NewCollection(), fields.Context{})
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty, non-nil projection, got %#v", got)
	}
}
