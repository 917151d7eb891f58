package lint

import (
	cli "github.com/urfave/cli/v3"

	"ckstyle/plugin"
)

func selectionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "include", Aliases: []string{"i"}, Usage: "comma separated plugin `IDS` to run (\"all\" for every plugin)"},
		&cli.StringFlag{Name: "exclude", Aliases: []string{"e"}, Usage: "comma separated plugin `IDS` to skip (\"none\" to skip nothing)"},
		&cli.BoolFlag{Name: "safe", Usage: "skip plugins which may change stylesheet semantics"},
		&cli.StringSliceFlag{Name: "ignore", Usage: "never check or fix rulesets with `SELECTOR` (may be repeated)"},
	}
}

// Flags returns command line flags supported by the operation subcommand.
func Flags(op plugin.Operation) []cli.Flag {
	flags := append(selectionFlags(),
		&cli.BoolFlag{Name: "recursive", Aliases: []string{"r"}, Usage: "process subdirectories"},
		&cli.StringFlag{Name: "charset", Usage: "decode sources without @charset which are not UTF-8 using `ENCODING` (see IANA.org for character set names)"},
	)
	switch op {
	case plugin.OperationCheck:
		flags = append(flags,
			&cli.StringFlag{Name: "error-level", Aliases: []string{"l"}, Usage: "least severe `LEVEL` to report (error, warning, info or 0, 1, 2)"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "text", Usage: "output `TYPE` (text or yaml)"},
		)
	case plugin.OperationFix, plugin.OperationFormat, plugin.OperationCompress:
		flags = append(flags,
			&cli.BoolFlag{Name: "print", Aliases: []string{"p"}, Usage: "output result to STDOUT instead of writing files"},
			&cli.BoolFlag{Name: "diff", Usage: "output unified diff of changes instead of writing files"},
			&cli.BoolFlag{Name: "no-bak", Usage: "do not keep backup when replacing source"},
			&cli.StringFlag{Name: "extension", Aliases: []string{"x"}, Usage: "write result next to the source with `EXT` instead of replacing it"},
		)
	}
	if op == plugin.OperationCompress {
		flags = append(flags,
			&cli.StringFlag{Name: "browsers", Aliases: []string{"b"}, Usage: "comma separated list of target `BROWSERS` (all, allie, ie6, ie7, ie8, ie9plus, chrome, firefox, safari, opera, ...)"},
			&cli.BoolFlag{Name: "minify", Usage: "additionally run generic minifier over the result"},
		)
	}
	return flags
}

// PluginsFlags returns command line flags of the plugins subcommand.
func PluginsFlags() []cli.Flag {
	return append(selectionFlags(),
		&cli.BoolFlag{Name: "all", Aliases: []string{"a"}, Usage: "list every known plugin ignoring selection"},
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "text", Usage: "output `TYPE` (text or yaml)"},
	)
}
