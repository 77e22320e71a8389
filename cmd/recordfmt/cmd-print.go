package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"github.com/goliatone/go-recordfmt/internal/pager"
	"github.com/goliatone/go-recordfmt/pkg/adapters/template"
	"github.com/goliatone/go-recordfmt/pkg/definition"
)

type printCmd struct {
	Definition   string `arg:"" help:"Name of the output definition to render."`
	Records      string `arg:"" optional:"" default:"-" help:"Records file (YAML or JSON). Reads stdin when omitted or -."`
	Definitions  string `short:"d" required:"" type:"existingdir" help:"Directory holding output definition files."`
	PerPage      int    `help:"Records per page when paginating. Overrides ui.per_page."`
	Paginate     string `enum:"auto,always,never" default:"auto" help:"Paginate output (auto, always, never)."`
	Template     string `help:"Inline pongo2 template used by the template format."`
	TemplateFile string `type:"existingfile" help:"pongo2 template file used by the template format."`
}

func (cmd *printCmd) Run(g *globalOptions, s *streams) (err error) {
	store, err := definition.LoadFS(os.DirFS(cmd.Definitions))
	if err != nil {
		return err
	}
	defs, ok := store.Definition(cmd.Definition)
	if !ok {
		return fmt.Errorf("definition %q not found (available: %s)", cmd.Definition, strings.Join(store.Names(), ", "))
	}

	records, err := readRecords(cmd.Records, s.in)
	if err != nil {
		return err
	}

	sess, err := g.session(s, cmd.templateOptions()...)
	if err != nil {
		return err
	}
	defer multierr.AppendInvoke(&err, multierr.Close(sess))

	adapter, err := sess.adapter()
	if err != nil {
		return err
	}

	perPage := sess.ui.PerPage
	if cmd.PerPage > 0 {
		perPage = cmd.PerPage
	}
	opts := []pager.Option{pager.WithPerPage(perPage)}
	switch {
	case cmd.Paginate == "always":
		opts = append(opts, pager.WithPaginate(true))
	case cmd.Paginate == "never", g.OutputFile != "", !isTerminal(s.out):
		opts = append(opts, pager.WithPaginate(false))
	}
	return pager.New(adapter, opts...).Print(context.Background(), defs, records)
}

func (cmd *printCmd) templateOptions() []template.Option {
	var opts []template.Option
	if cmd.Template != "" {
		opts = append(opts, template.WithSource(cmd.Template))
	}
	if cmd.TemplateFile != "" {
		opts = append(opts, template.WithFile(os.DirFS(filepath.Dir(cmd.TemplateFile)), filepath.Base(cmd.TemplateFile)))
	}
	return opts
}
