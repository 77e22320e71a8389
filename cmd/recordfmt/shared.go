package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/mattn/go-isatty"
	"go.uber.org/multierr"

	recordfmt "github.com/goliatone/go-recordfmt"
	"github.com/goliatone/go-recordfmt/internal/settings"
	"github.com/goliatone/go-recordfmt/pkg/adapters/template"
	"github.com/goliatone/go-recordfmt/pkg/output"
)

// session is everything a command needs to print: resolved settings, the
// adapter context and the format registry.
type session struct {
	ui       settings.UI
	ctx      output.Context
	registry *output.Registry
	logger   log.Logger
	closers  []io.Closer
}

func (g *globalOptions) session(s *streams, tmpl ...template.Option) (*session, error) {
	ui, err := settings.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.Format != "" {
		ui.Format = strings.ToLower(strings.TrimSpace(g.Format))
	}
	if g.Capitalization != "" {
		ui.Capitalization = g.Capitalization
	}
	if g.Color != "" {
		ui.Color = strings.ToLower(strings.TrimSpace(g.Color))
	}
	if g.ShowIDs {
		ui.ShowIDs = true
	}
	if err := ui.Validate(); err != nil {
		return nil, err
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(s.err))
	allowed := level.AllowWarn()
	if g.Verbose {
		allowed = level.AllowDebug()
	}
	logger = level.NewFilter(logger, allowed)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	sess := &session{ui: ui, logger: logger}
	sess.ctx = output.Context{
		ShowIDs:        ui.ShowIDs,
		Capitalization: ui.Capitalizer(s.err),
		Logger:         logger,
	}
	if g.OutputFile != "" {
		f, err := os.Create(g.OutputFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", output.ErrDestinationUnavailable, err)
		}
		sess.ctx.OutputFile = f
		sess.closers = append(sess.closers, f)
	}

	sess.registry = recordfmt.NewRegistry(recordfmt.Options{
		Stdout:   s.out,
		Color:    ui.UseColor(isTerminal(s.out)),
		Template: tmpl,
	})
	level.Debug(logger).Log("msg", "session ready", "format", ui.Format, "capitalization", ui.Capitalization, "show_ids", ui.ShowIDs)
	return sess, nil
}

func (s *session) adapter() (output.Adapter, error) {
	return s.registry.New(s.ui.Format, s.ctx)
}

// Close releases the output file, if any.
func (s *session) Close() error {
	var errs error
	for _, c := range s.closers {
		errs = multierr.Append(errs, c.Close())
	}
	return errs
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
