package lint

import (
	"context"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"ckstyle/config"
	"ckstyle/state"
)

// DumpConfigFlags returns flags of dumpconfig subcommand.
func DumpConfigFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
	}
}

// DumpConfig writes default or active configuration to the file named by
// the first argument or to program output.
func DumpConfig(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	log := env.Log
	if log == nil {
		log = zap.NewNop()
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	var (
		data []byte
		kind = "active"
		err  error
	)
	if cmd.Bool("default") || env.Cfg == nil {
		kind = "default"
		data, err = config.Prepare()
	} else {
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	var out io.Writer = cmd.Root().Writer
	dst := cmd.Args().First()
	if len(dst) > 0 {
		f, err := os.Create(dst)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", dst, err)
		}
		defer f.Close()
		out = f
	} else {
		dst = "STDOUT"
	}

	log.Debug("Writing configuration", zap.String("kind", kind), zap.String("to", dst))
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
