package main

import (
	"fmt"

	recordfmt "github.com/goliatone/go-recordfmt"
	"github.com/goliatone/go-recordfmt/pkg/output"
)

type formatsCmd struct{}

func (cmd *formatsCmd) Run(_ *globalOptions, s *streams) error {
	reg := recordfmt.DefaultRegistry()
	for _, name := range reg.List() {
		paging := "whole"
		if adapter, err := reg.New(name, output.Context{}); err == nil && adapter.PaginateByDefault() {
			paging = "paged"
		}
		if _, err := fmt.Fprintf(s.out, "%-10s %s\n", name, paging); err != nil {
			return err
		}
	}
	return nil
}
