package lint

import (
	"context"
	"fmt"

	cli "github.com/urfave/cli/v3"

	"ckstyle/plugin"
	"ckstyle/state"
)

// Plugins lists plugins which would run with current options in execution
// order. With --all filtering is not applied.
func Plugins(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)

	list := env.Plugins
	if !cmd.Bool("all") {
		opts, err := options(env, cmd)
		if err != nil {
			return err
		}
		reg, err := env.Registry(opts)
		if err != nil {
			return err
		}
		list = nil
		for _, c := range []plugin.Category{plugin.CategoryStyleSheet, plugin.CategoryRuleSet, plugin.CategoryRule, plugin.CategoryExtra} {
			list = append(list, reg.Plugins(c)...)
		}
	}

	out := cmd.Root().Writer
	switch format := cmd.String("format"); format {
	case "", "text":
		return writePlugins(out, list)
	case "yaml":
		return writePluginsYAML(out, list)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
