package capitalize_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-recordfmt/pkg/capitalize"
	"github.com/goliatone/go-recordfmt/pkg/tree"
)

func rawHash() []*tree.Map {
	return []*tree.Map{tree.NewMap(
		tree.Entry{Key: tree.Label("Name"), Value: tree.Scalar{Value: "John"}},
		tree.Entry{Key: tree.Label("Surname"), Value: tree.Scalar{Value: "Doe"}},
	)}
}

func keyNames(maps []*tree.Map) []string {
	var out []string
	for _, key := range maps[0].Keys() {
		out = append(out, key.String())
	}
	return out
}

func TestTransformer_Modes(t *testing.T) {
	cases := []struct {
		mode string
		want []string
	}{
		{mode: "downcase", want: []string{"name", "surname"}},
		{mode: "capitalize", want: []string{"Name", "Surname"}},
		{mode: "upcase", want: []string{"NAME", "SURNAME"}},
		{mode: " UpCase ", want: []string{"NAME", "SURNAME"}},
		{mode: "", want: []string{"Name", "Surname"}},
		{mode: "none", want: []string{"Name", "Surname"}},
	}

	for _, tc := range cases {
		t.Run(tc.mode, func(t *testing.T) {
			var errOut bytes.Buffer
			tr := capitalize.New(tc.mode, capitalize.WithErrorOutput(&errOut))
			got := tr.Apply(rawHash())
			if diff := cmp.Diff(tc.want, keyNames(got)); diff != "" {
				t.Fatalf("keys mismatch (-want +got):\n%s", diff)
			}
			if errOut.Len() != 0 {
				t.Fatalf("unexpected diagnostic: %q", errOut.String())
			}
		})
	}
}

func TestTransformer_CapitalizeLowersTheRest(t *testing.T) {
	tr := capitalize.New("capitalize")
	if got := tr.Transform("hELLO wORLD"); got != "Hello world" {
		t.Fatalf("capitalize mismatch: %q", got)
	}
	if got := tr.Transform("élan"); got != "Élan" {
		t.Fatalf("capitalize mismatch for multibyte rune: %q", got)
	}
}

func TestTransformer_UnsupportedWarnsOnce(t *testing.T) {
	var errOut bytes.Buffer
	tr := capitalize.New("unsupported", capitalize.WithErrorOutput(&errOut))

	first := tr.Apply(rawHash())
	second := tr.Apply(rawHash())

	for _, got := range [][]*tree.Map{first, second} {
		if diff := cmp.Diff([]string{"Name", "Surname"}, keyNames(got)); diff != "" {
			t.Fatalf("keys mismatch (-want +got):\n%s", diff)
		}
	}
	if want := capitalize.Warning + "\n"; errOut.String() != want {
		t.Fatalf("diagnostic mismatch:\nwant %q\ngot  %q", want, errOut.String())
	}
	if tr.Supported() {
		t.Fatalf("expected unsupported mode")
	}

	// reconfiguring starts from a clean slate
	var fresh bytes.Buffer
	capitalize.New("downcase", capitalize.WithErrorOutput(&fresh)).Apply(rawHash())
	if fresh.Len() != 0 {
		t.Fatalf("unexpected diagnostic after reconfiguration: %q", fresh.String())
	}
}

func TestTransformer_UnsupportedWarnsOnEmptyInput(t *testing.T) {
	var errOut bytes.Buffer
	tr := capitalize.New("unsupported", capitalize.WithErrorOutput(&errOut))

	if got := tr.Apply(nil); len(got) != 0 {
		t.Fatalf("expected no maps, got %d", len(got))
	}
	tr.Apply(rawHash())
	if want := capitalize.Warning + "\n"; errOut.String() != want {
		t.Fatalf("diagnostic mismatch:\nwant %q\ngot  %q", want, errOut.String())
	}
}

func TestTransformer_MergesCollidingLabels(t *testing.T) {
	maps := []*tree.Map{tree.NewMap(
		tree.Entry{Key: tree.Label("Name"), Value: tree.Scalar{Value: 1}},
		tree.Entry{Key: tree.Label("NAME"), Value: tree.Scalar{Value: 2}},
	)}
	want := []*tree.Map{tree.NewMap(
		tree.Entry{Key: tree.Label("NAME"), Value: tree.Scalar{Value: 2}},
	)}
	if diff := cmp.Diff(want, capitalize.New("upcase").Apply(maps)); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestTransformer_LeavesIndexAndRawKeys(t *testing.T) {
	contacts := tree.NewMap(
		tree.Entry{Key: tree.Index(1), Value: tree.NewMap(
			tree.Entry{Key: tree.Raw("name"), Value: tree.Scalar{Value: "weight"}},
			tree.Entry{Key: tree.Label("Description"), Value: tree.Scalar{Value: "x"}},
		)},
	)
	maps := []*tree.Map{tree.NewMap(
		tree.Entry{Key: tree.Label("Contacts"), Value: contacts},
		tree.Entry{Key: tree.Raw("message"), Value: tree.Scalar{Value: "hi"}},
	)}

	top := capitalize.New("upcase").Apply(maps)
	wantTop := []*tree.Map{tree.NewMap(
		tree.Entry{Key: tree.Label("CONTACTS"), Value: contacts},
		tree.Entry{Key: tree.Raw("message"), Value: tree.Scalar{Value: "hi"}},
	)}
	if diff := cmp.Diff(wantTop, top); diff != "" {
		t.Fatalf("top-level scope mismatch (-want +got):\n%s", diff)
	}

	nested := capitalize.New("upcase", capitalize.WithScope(capitalize.ScopeNested)).Apply(maps)
	wantNested := []*tree.Map{tree.NewMap(
		tree.Entry{Key: tree.Label("CONTACTS"), Value: tree.NewMap(
			tree.Entry{Key: tree.Index(1), Value: tree.NewMap(
				tree.Entry{Key: tree.Raw("name"), Value: tree.Scalar{Value: "weight"}},
				tree.Entry{Key: tree.Label("DESCRIPTION"), Value: tree.Scalar{Value: "x"}},
			)},
		)},
		tree.Entry{Key: tree.Raw("message"), Value: tree.Scalar{Value: "hi"}},
	)}
	if diff := cmp.Diff(wantNested, nested); diff != "" {
		t.Fatalf("nested scope mismatch (-want +got):\n%s", diff)
	}
}

func TestTransformer_NilIsIdentity(t *testing.T) {
	var tr *capitalize.Transformer
	if got := tr.Transform("Name"); got != "Name" {
		t.Fatalf("nil transformer changed key: %q", got)
	}
	maps := rawHash()
	if got := tr.Apply(maps); len(got) != 1 || got[0] != maps[0] {
		t.Fatalf("nil transformer must return input unchanged")
	}
}
