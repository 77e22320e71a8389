package main

import (
	"go.uber.org/multierr"
)

type messageCmd struct {
	Template string            `arg:"" help:"Message with %{name} placeholders."`
	Param    map[string]string `short:"p" help:"Placeholder value as name=value. Repeatable."`
}

func (cmd *messageCmd) Run(g *globalOptions, s *streams) (err error) {
	sess, err := g.session(s)
	if err != nil {
		return err
	}
	defer multierr.AppendInvoke(&err, multierr.Close(sess))

	adapter, err := sess.adapter()
	if err != nil {
		return err
	}

	var params map[string]any
	if len(cmd.Param) > 0 {
		params = make(map[string]any, len(cmd.Param))
		for key, value := range cmd.Param {
			params[key] = value
		}
	}
	return adapter.PrintMessage(cmd.Template, params)
}
