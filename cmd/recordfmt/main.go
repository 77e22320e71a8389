package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

type globalOptions struct {
	Config         string `help:"Settings file (YAML, JSON or TOML)." type:"path" env:"RECORDFMT_CONFIG"`
	Format         string `short:"f" help:"Output format. Overrides ui.format."`
	OutputFile     string `short:"o" help:"Write structured output to this file instead of stdout." type:"path"`
	ShowIDs        bool   `help:"Show id fields."`
	Capitalization string `help:"Label capitalization: downcase, capitalize or upcase. Overrides ui.capitalization."`
	Color          string `help:"Color mode: auto, always or never. Overrides ui.color."`
	Verbose        bool   `short:"v" help:"Log debug diagnostics to stderr."`
}

type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

type cliRoot struct {
	globalOptions

	Print   printCmd   `cmd:"" help:"Render records through a named output definition."`
	Message messageCmd `cmd:"" help:"Render a single message."`
	Lint    lintCmd    `cmd:"" help:"Check output definition files."`
	Formats formatsCmd `cmd:"" help:"List the available output formats."`
}

func main() {
	if err := run(os.Args[1:], streams{in: os.Stdin, out: os.Stdout, err: os.Stderr}); err != nil {
		fmt.Fprintln(os.Stderr, "recordfmt:", err)
		os.Exit(1)
	}
}

func run(args []string, s streams) error {
	var cli cliRoot
	parser, err := kong.New(&cli,
		kong.Name("recordfmt"),
		kong.Description("Project records through output definitions and print them."),
		kong.UsageOnError(),
		kong.Writers(s.out, s.err),
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return ctx.Run(&cli.globalOptions, &s)
}
