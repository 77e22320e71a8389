package tree_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-recordfmt/pkg/tree"
)

func TestMapSetKeepsPosition(t *testing.T) {
	m := tree.NewMap(
		tree.Entry{Key: tree.Label("Name"), Value: tree.Scalar{Value: "John"}},
		tree.Entry{Key: tree.Label("Surname"), Value: tree.Scalar{Value: "Doe"}},
	)
	m.Set(tree.Label("Name"), tree.Scalar{Value: "Jane"})
	m.Set(tree.Index(1), tree.DataMissing)

	want := []tree.Key{tree.Label("Name"), tree.Label("Surname"), tree.Index(1)}
	if diff := cmp.Diff(want, m.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	got, ok := m.Get(tree.Label("Name"))
	if !ok || got != (tree.Scalar{Value: "Jane"}) {
		t.Fatalf("expected replaced value, got %#v", got)
	}
	if value, ok := m.Lookup("1"); !ok || !tree.IsMissing(value) {
		t.Fatalf("expected index key lookup to find missing marker, got %#v", value)
	}
}

func TestValueOfSortsRawKeys(t *testing.T) {
	got := tree.ValueOf(map[string]any{
		"b": []any{1, "x"},
		"a": map[string]any{"z": true},
	})

	want := tree.NewMap(
		tree.Entry{Key: tree.Raw("a"), Value: tree.NewMap(
			tree.Entry{Key: tree.Raw("z"), Value: tree.Scalar{Value: true}},
		)},
		tree.Entry{Key: tree.Raw("b"), Value: tree.List{tree.Scalar{Value: 1}, tree.Scalar{Value: "x"}}},
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestRenameKeysShallowAndDeep(t *testing.T) {
	nested := tree.NewMap(tree.Entry{Key: tree.Label("City"), Value: tree.Scalar{Value: "New York"}})
	m := tree.NewMap(tree.Entry{Key: tree.Label("Address"), Value: nested})
	upper := func(k tree.Key) tree.Key {
		k.Name = strings.ToUpper(k.Name)
		return k
	}

	shallow := m.RenameKeys(upper, false)
	if _, ok := shallow.Get(tree.Label("ADDRESS")); !ok {
		t.Fatalf("expected top-level key renamed: %#v", shallow.Keys())
	}
	inner, _ := shallow.Get(tree.Label("ADDRESS"))
	if _, ok := inner.(*tree.Map).Get(tree.Label("City")); !ok {
		t.Fatalf("shallow rename must not touch nested keys")
	}

	deep := m.RenameKeys(upper, true)
	inner, _ = deep.Get(tree.Label("ADDRESS"))
	if _, ok := inner.(*tree.Map).Get(tree.Label("CITY")); !ok {
		t.Fatalf("deep rename must touch nested keys")
	}
	if _, ok := m.Get(tree.Label("Address")); !ok {
		t.Fatalf("rename must not mutate the source map")
	}
}

func TestRenameKeysMergesCollisions(t *testing.T) {
	m := tree.NewMap(
		tree.Entry{Key: tree.Label("Name"), Value: tree.Scalar{Value: 1}},
		tree.Entry{Key: tree.Label("Surname"), Value: tree.Scalar{Value: "Doe"}},
		tree.Entry{Key: tree.Label("NAME"), Value: tree.Scalar{Value: 2}},
	)
	upper := func(k tree.Key) tree.Key {
		k.Name = strings.ToUpper(k.Name)
		return k
	}

	want := tree.NewMap(
		tree.Entry{Key: tree.Label("NAME"), Value: tree.Scalar{Value: 2}},
		tree.Entry{Key: tree.Label("SURNAME"), Value: tree.Scalar{Value: "Doe"}},
	)
	if diff := cmp.Diff(want, m.RenameKeys(upper, false)); diff != "" {
		t.Fatalf("merged keys mismatch (-want +got):\n%s", diff)
	}
}

func TestPlain(t *testing.T) {
	m := tree.NewMap(
		tree.Entry{Key: tree.Label("Contacts"), Value: tree.NewMap(
			tree.Entry{Key: tree.Index(1), Value: tree.Scalar{Value: "a"}},
		)},
		tree.Entry{Key: tree.Label("Missing"), Value: tree.DataMissing},
	)
	want := map[string]any{
		"Contacts": map[string]any{"1": "a"},
		"Missing":  nil,
	}
	if diff := cmp.Diff(want, tree.Plain(m)); diff != "" {
		t.Fatalf("plain mismatch (-want +got):\n%s", diff)
	}
}
