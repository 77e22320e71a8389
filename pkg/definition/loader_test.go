package definition_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-recordfmt/pkg/definition"
	"github.com/goliatone/go-recordfmt/pkg/fields"
	"github.com/goliatone/go-recordfmt/pkg/projector"
	"github.com/goliatone/go-recordfmt/pkg/record"
	"github.com/goliatone/go-recordfmt/pkg/testsupport"
	"github.com/goliatone/go-recordfmt/pkg/tree"
)

const hostDoc = `
definitions:
  host:
    - {type: id, path: id, label: Id}
    - {path: name, label: Name}
    - type: label
      path: address
      label: Address
      fields:
        - {path: city, label: City}
    - type: collection
      path: [one_contact]
      label: Contacts
      numbered: false
      fields:
        - {path: desc, label: Description}
    - {path: login, label: Login, hide_missing: false}
    - {type: key_value_list, path: params, label: Parameters}
`

func TestParse_BuildsFields(t *testing.T) {
	store, err := definition.Parse([]byte(hostDoc), "host.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	defs, ok := store.Definition("host")
	if !ok {
		t.Fatalf("expected host definition, have %v", store.Names())
	}

	maps, err := projector.Project(defs, testsupport.Records(), fields.Context{ShowIDs: true})
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	s := func(v any) tree.Node { return tree.Scalar{Value: v} }
	raw := func(name string, v any) tree.Entry { return tree.Entry{Key: tree.Raw(name), Value: s(v)} }
	want := tree.NewMap(
		tree.Entry{Key: tree.Label("Id"), Value: s(112)},
		tree.Entry{Key: tree.Label("Name"), Value: s("John")},
		tree.Entry{Key: tree.Label("Address"), Value: tree.NewMap(tree.Entry{Key: tree.Label("City"), Value: s("New York")})},
		tree.Entry{Key: tree.Label("Contacts"), Value: tree.List{
			tree.NewMap(tree.Entry{Key: tree.Label("Description"), Value: s("personal email")}),
		}},
		tree.Entry{Key: tree.Label("Login"), Value: tree.DataMissing},
		tree.Entry{Key: tree.Label("Parameters"), Value: tree.NewMap(
			tree.Entry{Key: tree.Index(1), Value: tree.NewMap(raw("name", "weight"), raw("value", "83"))},
			tree.Entry{Key: tree.Index(2), Value: tree.NewMap(raw("name", "size"), raw("value", "32"))},
		)},
	)
	if diff := cmp.Diff([]*tree.Map{want}, maps); diff != "" {
		t.Fatalf("projection mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_DottedPath(t *testing.T) {
	store, err := definition.Parse([]byte("definitions:\n  city:\n    - {path: address.city, label: City}\n"), "city.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	defs, _ := store.Definition("city")
	if diff := cmp.Diff(record.P("address", "city"), defs[0].Path()); diff != "" {
		t.Fatalf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{name: "empty file", doc: "  \n", want: "is empty"},
		{name: "unknown type", doc: "definitions:\n  x:\n    - {type: table, path: a, label: A}\n", want: `unknown field type "table"`},
		{name: "missing label", doc: "definitions:\n  x:\n    - {path: a}\n", want: "label"},
		{name: "nested fields on plain", doc: "definitions:\n  x:\n    - path: a\n      label: A\n      fields:\n        - {path: b, label: B}\n", want: "does not take nested fields"},
		{name: "mapping path", doc: "definitions:\n  x:\n    - path: {a: b}\n      label: A\n", want: "path must be a string or a list"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := definition.Parse([]byte(tt.doc), "x.yaml")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadFS(t *testing.T) {
	files := fstest.MapFS{
		"defs/host.yaml":  &fstest.MapFile{Data: []byte(hostDoc)},
		"defs/user.json":  &fstest.MapFile{Data: []byte(`{"definitions": {"user": [{"path": "name", "label": "Name"}]}}`)},
		"defs/README.txt": &fstest.MapFile{Data: []byte("ignored")},
	}
	store, err := definition.LoadFS(files)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"host", "user"}, store.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	files["defs/dup.yaml"] = &fstest.MapFile{Data: []byte("definitions:\n  user:\n    - {path: name, label: Name}\n")}
	if _, err := definition.LoadFS(files); err == nil || !strings.Contains(err.Error(), "duplicate definition") {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	empty, err := definition.LoadFS(nil)
	if err != nil || !empty.Empty() {
		t.Fatalf("nil fs should give an empty store, got %v %v", empty, err)
	}
}
