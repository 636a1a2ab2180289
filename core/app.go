// Package core wires command line parsing, configuration, and operation
// dispatch together.
package core

import (
	"flag"
	"fmt"
	"strings"

	"github.com/tritondatacenter/entrypoint-tool/config"
	"github.com/tritondatacenter/entrypoint-tool/subcommands"
	"github.com/tritondatacenter/entrypoint-tool/version"
	"github.com/tritondatacenter/entrypoint-tool/waiters"
)

// App encapsulates one entrypoint-tool invocation after setup: the
// operation to run and the parameters it receives. An empty Operation
// means no work was requested, which is a successful no-op so that the
// binary can be exec'd from scripts that pass no arguments.
type App struct {
	Operation string
	Params    subcommands.Params
}

// NewApp parses the given command line arguments (without the program
// name), loads the optional config file, and initializes logging
func NewApp(arguments []string) (*App, error) {
	var configFlag string
	var versionFlag bool

	flagSet := flag.NewFlagSet("entrypoint-tool", flag.ContinueOnError)
	flagSet.StringVar(&configFlag, "config", "",
		"File path to JSON5 configuration file. Defaults to ENTRYPOINT_TOOL env var.")
	flagSet.BoolVar(&versionFlag, "version", false,
		"Show version identifier and quit.")
	flagSet.Usage = func() {
		fmt.Fprintf(flagSet.Output(),
			"usage: entrypoint-tool [flags] <operation> [args...]\n\noperations:\n  %s\n\nflags:\n",
			strings.Join(subcommands.Names(), "\n  "))
		flagSet.PrintDefaults()
	}
	if err := flagSet.Parse(arguments); err != nil {
		return nil, err
	}

	if versionFlag {
		return &App{
			Operation: "version",
			Params: subcommands.Params{
				Version: version.Version,
				GitHash: version.GitHash,
			},
		}, nil
	}

	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, err
	}
	if err := cfg.InitLogging(); err != nil {
		return nil, err
	}

	args := flagSet.Args()
	if len(args) == 0 {
		return &App{}, nil
	}
	return &App{
		Operation: args[0],
		Params: subcommands.Params{
			Version: version.Version,
			GitHash: version.GitHash,
			Args:    args[1:],
			WaitPolicy: waiters.Policy{
				Interval: cfg.Wait.Interval,
				Timeout:  cfg.Wait.Timeout,
			},
		},
	}, nil
}

// Run dispatches the resolved operation and returns its error, if any
func (a *App) Run() error {
	if a.Operation == "" {
		return nil
	}
	return subcommands.Dispatch(a.Operation, a.Params)
}
