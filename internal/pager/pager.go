// Package pager prints long collections page by page through an adapter,
// asking before each following page.
package pager

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-recordfmt/pkg/fields"
	"github.com/goliatone/go-recordfmt/pkg/output"
	"github.com/goliatone/go-recordfmt/pkg/record"
)

// ErrAborted signals the user interrupted the prompt (Ctrl+C).
var ErrAborted = errors.New("pager: aborted")

// ConfirmConfig configures a yes/no prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// Prompter abstracts the terminal so paging can be tested without one.
type Prompter interface {
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
}

// SurveyPrompter asks on the controlling terminal.
type SurveyPrompter struct {
	opts []survey.AskOpt
}

// NewSurveyPrompter builds a prompter; opts are passed to every question.
func NewSurveyPrompter(opts ...survey.AskOpt) *SurveyPrompter {
	return &SurveyPrompter{opts: opts}
}

func (p *SurveyPrompter) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	prompt := &survey.Confirm{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	if err := survey.AskOne(prompt, &out, p.opts...); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

// Option configures a Pager.
type Option func(*Pager)

// WithPerPage sets the page size. Non-positive sizes disable paging.
func WithPerPage(n int) Option {
	return func(p *Pager) {
		p.perPage = n
	}
}

// WithPrompter replaces the survey prompter.
func WithPrompter(prompt Prompter) Option {
	return func(p *Pager) {
		if prompt != nil {
			p.prompt = prompt
		}
	}
}

// WithPaginate overrides the adapter's own preference.
func WithPaginate(enabled bool) Option {
	return func(p *Pager) {
		p.paginate = &enabled
	}
}

// Pager prints collections through an adapter, one page at a time.
type Pager struct {
	adapter  output.Adapter
	prompt   Prompter
	perPage  int
	paginate *bool
}

// New builds a pager over adapter with pages of 20 records and the survey
// prompter.
func New(adapter output.Adapter, opts ...Option) *Pager {
	p := &Pager{adapter: adapter, prompt: NewSurveyPrompter(), perPage: 20}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Enabled reports whether records would be split into pages.
func (p *Pager) Enabled(records record.Collection) bool {
	paginate := p.adapter.PaginateByDefault()
	if p.paginate != nil {
		paginate = *p.paginate
	}
	return paginate && p.perPage > 0 && records.Len() > p.perPage
}

// Print writes records through the adapter. When paging is enabled the user
// confirms each page after the first; declining stops quietly.
func (p *Pager) Print(ctx context.Context, defs []fields.Field, records record.Collection) error {
	if !p.Enabled(records) {
		return p.adapter.PrintCollection(defs, records)
	}

	pages := records.Pages(p.perPage)
	for n := 1; n <= pages; n++ {
		if n > 1 {
			next, err := p.prompt.Confirm(ctx, ConfirmConfig{
				Message: fmt.Sprintf("Show page %d of %d?", n, pages),
				Default: true,
			})
			if err != nil {
				return err
			}
			if !next {
				return nil
			}
		}
		if err := p.adapter.PrintCollection(defs, records.Page(n, p.perPage)); err != nil {
			return err
		}
	}
	return nil
}
