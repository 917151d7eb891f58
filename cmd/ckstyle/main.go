package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"ckstyle/lint"
	"ckstyle/misc"
	"ckstyle/plugin"
	"ckstyle/state"
)

// initializeAppContext runs after command line was parsed, before selected
// subcommand.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.NArg() == 0 {
		// help will be shown
		return ctx, nil
	}
	return ctx, state.EnvFromContext(ctx).Setup(cmd.String("config"), cmd.Bool("debug"))
}

func destroyAppContext(ctx context.Context, _ *cli.Command) error {
	return state.EnvFromContext(ctx).Close()
}

// set when subcommand error was logged and does not need to be printed again
var errWasHandled bool

// exitErrHandler is called before destroyAppContext while log is still
// available.
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		if errors.Is(err, lint.ErrProblems) {
			// findings were already printed
			env.Log.Debug("Program ended with problems", zap.Error(err))
		} else {
			env.Log.Error("Program ended with error", zap.Error(err))
		}
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	if log := state.EnvFromContext(ctx).Log; log != nil {
		log.Warn("Unknown command, nothing to do", zap.String("command", name))
	}
}

const sourceHelp = `
SOURCE:
    path to stylesheet(s) to process, following formats are supported:
        path to a file: "[path_to_file]file.css"
        path to a directory: "[path_to_directory]directory" - process all stylesheets in directory, with --recursive in subdirectories as well
        path to archive with path inside archive: "[path_to_archive]archive.zip[path_in_archive]" - check all stylesheets under archive path

	Files with names starting with "_" or "." are skipped, directory content
	is processed in natural sort order. Archives could only be checked.
`

const dumpConfigHelp = `
DESTINATION:
    file name to write configuration to, if absent - STDOUT

Actual configuration is defaults merged with values from configuration file.
To see configuration embedded into the program use --default flag.
`

func main() {

	// allow graceful shutdown on interrupt.
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	command := func(name, usage string, action cli.ActionFunc, op plugin.Operation, help string) *cli.Command {
		return &cli.Command{
			Name:               name,
			Usage:              usage,
			OnUsageError:       usageErrorHandler,
			Action:             action,
			Flags:              lint.Flags(op),
			ArgsUsage:          "SOURCE [SOURCE...]",
			CustomHelpTemplate: cli.CommandHelpTemplate + sourceHelp + help,
		}
	}

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "rule driven checker, fixer and compressor for CSS stylesheets",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		Commands: []*cli.Command{
			command("check", "Checks stylesheet(s) and reports problems", lint.Check, plugin.OperationCheck, `
Exits with error when error level problems were found.
`),
			command("fix", "Fixes problems in stylesheet(s)", lint.Fix, plugin.OperationFix, `
Source is replaced keeping backup as <source>.bak unless --no-bak or
--extension is specified.
`),
			command("compress", "Produces fixed and compressed stylesheet(s) for target browsers", lint.Compress, plugin.OperationCompress, `
Declarations which do not apply to any of target browsers are dropped.
Result is written next to the source with extension from configuration
(".min.css" by default).
`),
			command("format", "Re-formats stylesheet(s) without fixing anything", lint.Format, plugin.OperationFormat, ""),
			{
				Name:         "plugins",
				Usage:        "Lists plugins in execution order",
				OnUsageError: usageErrorHandler,
				Action:       lint.Plugins,
				Flags:        lint.PluginsFlags(),
			},
			{
				Name:               "dumpconfig",
				Usage:              "Dumps either default or actual configuration (YAML)",
				Flags:              lint.DumpConfigFlags(),
				OnUsageError:       usageErrorHandler,
				Action:             lint.DumpConfig,
				ArgsUsage:          "DESTINATION",
				CustomHelpTemplate: cli.CommandHelpTemplate + dumpConfigHelp,
			},
		},
	}

	var err error
	// os.Exit below skips deferred calls, this must stay the only one
	defer func() {
		stop()
		if err != nil {
			// log is either not ready yet or already closed
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			if errors.Is(err, lint.ErrProblems) {
				os.Exit(2)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}
