package recordfmt_test

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	recordfmt "github.com/goliatone/go-recordfmt"
	"github.com/goliatone/go-recordfmt/pkg/adapters/template"
	"github.com/goliatone/go-recordfmt/pkg/fields"
	"github.com/goliatone/go-recordfmt/pkg/output"
	"github.com/goliatone/go-recordfmt/pkg/record"
	"github.com/goliatone/go-recordfmt/pkg/testsupport"
)

func TestDefaultRegistryListsEveryFormat(t *testing.T) {
	want := []string{"base", "csv", "html", "json", "table", "template", "yaml"}
	if diff := cmp.Diff(want, recordfmt.DefaultRegistry().List()); diff != "" {
		t.Fatalf("formats mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRegistry_RoutesToStdout(t *testing.T) {
	var stdout bytes.Buffer
	reg := recordfmt.NewRegistry(recordfmt.Options{
		Stdout:   &stdout,
		Template: []template.Option{template.WithSource("{{ record.Name }};")},
	})
	defs := []recordfmt.Field{fields.New(record.P("name"), "Name")}

	for _, format := range reg.List() {
		stdout.Reset()
		adapter, err := reg.New(format, output.Context{})
		if err != nil {
			t.Fatalf("%s: build: %v", format, err)
		}
		if err := adapter.PrintCollection(defs, testsupport.Records()); err != nil {
			t.Fatalf("%s: print: %v", format, err)
		}
		if !bytes.Contains(stdout.Bytes(), []byte("John")) {
			t.Fatalf("%s: expected John in %q", format, stdout.String())
		}
	}
}

func TestTemplateFormatNeedsSource(t *testing.T) {
	if _, err := recordfmt.DefaultRegistry().New("template", output.Context{}); !errors.Is(err, template.ErrNoTemplate) {
		t.Fatalf("expected ErrNoTemplate, got %v", err)
	}
}

func TestPrintCollectionToOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	defs := []recordfmt.Field{fields.New(record.P("name"), "Name")}
	err := output.WriteFile(path, func(w io.Writer) error {
		return recordfmt.PrintCollection("yaml", recordfmt.Context{OutputFile: w}, defs, testsupport.Records())
	})
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if got := testsupport.MustReadGoldenString(t, path); got != "---\n- Name: John\n" {
		t.Fatalf("unexpected file content %q", got)
	}
}
