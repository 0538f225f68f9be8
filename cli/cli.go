package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/tnsora/cli/cmd"
	"github.com/ardnew/tnsora/pkg"
	"github.com/ardnew/tnsora/tns"
)

// Configuration file base names under [pkg.ConfigDir].
const (
	configJSON = "config.json"
	configYAML = "config.yaml"
)

// CLI is the top-level command-line interface for tnsora.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Source   []string `help:"Input file(s), or '-' for stdin (default: $TNS_ADMIN/${file})." placeholder:"FILE" short:"s" type:"path"`
	Encoding string   `default:"${encoding}"                                                help:"Text encoding of the input."                short:"e"`
	BareLF   bool     `help:"Accept a bare line feed as a line terminator." name:"bare-lf"`

	Fmt     cmd.Fmt     `cmd:"" default:"withargs" help:"Print the canonical form."`
	Expand  cmd.Expand  `cmd:""                    help:"Split entries naming several services."`
	Lookup  cmd.Lookup  `cmd:""                    help:"Print the entry for a service."`
	Filter  cmd.Filter  `cmd:""                    help:"Print the entries matching an expression."`
	Version cmd.Version `cmd:""                    help:"Print the version."`
}

// Run executes the tnsora CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(ctx context.Context, exit func(code int), args ...string) error {
	var cli CLI

	if err := pkg.MkdirAllRequired(); err != nil {
		return err
	}

	vars := kong.Vars{
		"file":     tns.FileName,
		"encoding": tns.DefaultEncoding,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Apply logger flags before kong reports any parse error.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups([]kong.Group{cli.Log.group(), cli.Pprof.group()}),
		kong.DefaultEnvars(pkg.EnvPrefix),
		kong.BindSingletonProvider(func() context.Context { return ctx }),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			Tree:                true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(kong.JSON, pkg.ConfigPath(configJSON)),
		kong.Configuration(resolveYAML, pkg.ConfigPath(configYAML)),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithInput(ctx, cmd.Input{
		Sources:  cli.Source,
		Encoding: cli.Encoding,
		BareLF:   cli.BareLF,
		Cache:    new(tns.Cache),
	})

	defer cli.Log.start(ctx)()

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx)
}
