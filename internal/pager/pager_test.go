package pager

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-recordfmt/pkg/adapters/base"
	"github.com/goliatone/go-recordfmt/pkg/adapters/yaml"
	"github.com/goliatone/go-recordfmt/pkg/fields"
	"github.com/goliatone/go-recordfmt/pkg/output"
	"github.com/goliatone/go-recordfmt/pkg/record"
)

type stubPrompter struct {
	answers  []bool
	err      error
	messages []string
}

func (s *stubPrompter) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.err != nil {
		return false, s.err
	}
	if len(s.answers) == 0 {
		return false, nil
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

func people(names ...string) record.Collection {
	records := make([]any, len(names))
	for i, name := range names {
		records[i] = map[string]any{"name": name}
	}
	return record.NewCollection(records...)
}

var defs = []fields.Field{fields.New(record.P("name"), "Name")}

func TestPager_PagesUntilDeclined(t *testing.T) {
	var stdout bytes.Buffer
	prompt := &stubPrompter{answers: []bool{true, false}}
	p := New(base.New(output.Context{}, base.WithStdout(&stdout)), WithPerPage(2), WithPrompter(prompt))

	if err := p.Print(context.Background(), defs, people("a", "b", "c", "d", "e", "f", "g")); err != nil {
		t.Fatalf("print: %v", err)
	}
	if want := "Name: a\n\nName: b\nName: c\n\nName: d\n"; stdout.String() != want {
		t.Fatalf("want %q, got %q", want, stdout.String())
	}
	if diff := cmp.Diff([]string{"Show page 2 of 4?", "Show page 3 of 4?"}, prompt.messages); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
}

func TestPager_RespectsAdapterPreference(t *testing.T) {
	var stdout bytes.Buffer
	prompt := &stubPrompter{}
	p := New(yaml.New(output.Context{}, yaml.WithStdout(&stdout)), WithPerPage(1), WithPrompter(prompt))

	if err := p.Print(context.Background(), defs, people("a", "b")); err != nil {
		t.Fatalf("print: %v", err)
	}
	if want := "---\n- Name: a\n- Name: b\n"; stdout.String() != want {
		t.Fatalf("want %q, got %q", want, stdout.String())
	}
	if len(prompt.messages) != 0 {
		t.Fatalf("yaml output must not prompt, got %v", prompt.messages)
	}

	forced := New(yaml.New(output.Context{}), WithPerPage(1), WithPaginate(true))
	if !forced.Enabled(people("a", "b")) {
		t.Fatalf("explicit pagination should override the adapter")
	}
}

func TestPager_Aborted(t *testing.T) {
	if !errors.Is(translateSurveyErr(terminal.InterruptErr), ErrAborted) {
		t.Fatalf("interrupt should translate to ErrAborted")
	}

	prompt := &stubPrompter{err: ErrAborted}
	p := New(base.New(output.Context{}, base.WithStdout(&bytes.Buffer{})), WithPerPage(1), WithPrompter(prompt))
	if err := p.Print(context.Background(), defs, people("a", "b")); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestSurveyPrompter_HonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewSurveyPrompter().Confirm(ctx, ConfirmConfig{Message: "?"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
