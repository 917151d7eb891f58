// Package lint implements program subcommands: it finds stylesheets, runs
// them through the engine and reports or writes results.
package lint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"ckstyle/browser"
	"ckstyle/ledger"
	"ckstyle/plugin"
	"ckstyle/state"
)

// ErrProblems is returned by check when error level findings exist.
var ErrProblems = errors.New("stylesheet problems found")

// Check reports findings for every source.
func Check(ctx context.Context, cmd *cli.Command) error {
	return run(ctx, cmd, plugin.OperationCheck)
}

// Fix rewrites every source with fixer output.
func Fix(ctx context.Context, cmd *cli.Command) error {
	return run(ctx, cmd, plugin.OperationFix)
}

// Compress writes minified output for target browsers.
func Compress(ctx context.Context, cmd *cli.Command) error {
	return run(ctx, cmd, plugin.OperationCompress)
}

// Format re-renders sources without applying any fixes.
func Format(ctx context.Context, cmd *cli.Command) error {
	return run(ctx, cmd, plugin.OperationFormat)
}

// runner keeps state of a single subcommand invocation.
type runner struct {
	env *state.LocalEnv
	log *zap.Logger
	op  plugin.Operation
	out io.Writer

	opts      *plugin.Options
	mask      browser.Mask
	ext       string
	noBackup  bool
	print     bool
	diff      bool
	minify    bool
	recursive bool
	format    string

	files    int
	problems int
	reports  []ledger.Report
}

func run(ctx context.Context, cmd *cli.Command, op plugin.Operation) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named(string(op))

	if cmd.Args().Len() == 0 {
		return errors.New("no input source has been specified")
	}

	r, err := newRunner(env, cmd, op, log)
	if err != nil {
		return err
	}

	log.Info("Processing starting", zap.Strings("sources", cmd.Args().Slice()))
	defer func(start time.Time) {
		log.Info("Processing completed",
			zap.Duration("elapsed", time.Since(start)), zap.Int("files", r.files), zap.Int("with errors", r.problems))
	}(time.Now())

	for _, src := range cmd.Args().Slice() {
		if er := ctx.Err(); er != nil {
			return multierr.Append(err, er)
		}
		abs, er := filepath.Abs(src)
		if er != nil {
			err = multierr.Append(err, er)
			continue
		}
		err = multierr.Append(err, r.process(ctx, abs))
	}

	if er := r.flush(); er != nil {
		err = multierr.Append(err, er)
	}
	if err == nil && r.problems > 0 && op == plugin.OperationCheck {
		err = fmt.Errorf("%w in %d of %d file(s)", ErrProblems, r.problems, r.files)
	}
	return err
}

func newRunner(env *state.LocalEnv, cmd *cli.Command, op plugin.Operation, log *zap.Logger) (*runner, error) {
	r := &runner{
		env:       env,
		log:       log,
		op:        op,
		out:       cmd.Root().Writer,
		recursive: cmd.Bool("recursive"),
		format:    cmd.String("format"),
		print:     cmd.Bool("print"),
		diff:      cmd.Bool("diff"),
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	if r.format == "" {
		r.format = env.Format
	}
	if r.format != "text" && r.format != "yaml" {
		return nil, fmt.Errorf("unknown output format %q", r.format)
	}

	opts, err := options(env, cmd)
	if err != nil {
		return nil, err
	}
	r.opts = opts

	// Since stylesheets without @charset are assumed to be UTF-8 we may need
	// to force archaic code page for old sources
	if cp := cmd.String("charset"); len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil || env.CodePage == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully decoding non UTF-8 sources without @charset", zap.String("charset", n))
		}
	}

	switch op {
	case plugin.OperationFix, plugin.OperationFormat:
		if env.Cfg != nil {
			r.ext, r.noBackup = env.Cfg.Fix.Extension, env.Cfg.Fix.NoBackup
		}
	case plugin.OperationCompress:
		r.mask = browser.ALL
		if env.Cfg != nil {
			r.ext, r.minify = env.Cfg.Compress.Extension, env.Cfg.Compress.Minify
			if r.mask, err = env.Cfg.Compress.Mask(); err != nil {
				return nil, err
			}
		}
		if cmd.IsSet("browsers") {
			if r.mask, err = browser.Parse(cmd.String("browsers")); err != nil {
				return nil, err
			}
		}
		if cmd.IsSet("minify") {
			r.minify = cmd.Bool("minify")
		}
	}
	if cmd.IsSet("extension") {
		r.ext = cmd.String("extension")
	}
	if cmd.IsSet("no-bak") {
		r.noBackup = cmd.Bool("no-bak")
	}
	return r, nil
}

// options superimposes command line overrides on configured plugin options.
func options(env *state.LocalEnv, cmd *cli.Command) (*plugin.Options, error) {
	opts := env.Options()
	if cmd.IsSet("include") {
		opts.Include = plugin.ParseIDList(cmd.String("include"), plugin.IncludeAll)
	}
	if cmd.IsSet("exclude") {
		opts.Exclude = plugin.ParseIDList(cmd.String("exclude"), plugin.ExcludeNone)
	}
	if cmd.IsSet("safe") {
		opts.Safe = cmd.Bool("safe")
	}
	if cmd.IsSet("error-level") {
		level, err := ledger.ParseLevel(cmd.String("error-level"))
		if err != nil {
			return nil, err
		}
		opts.ErrorLevel = level
	}
	if cmd.IsSet("ignore") {
		opts.IgnoreRulesets = append(opts.IgnoreRulesets, cmd.StringSlice("ignore")...)
	}
	return opts, nil
}

// fresh returns per-file copy of options so plugin state never leaks
// between stylesheets.
func (r *runner) fresh() *plugin.Options {
	opts := *r.opts
	opts.State = make(map[string]any)
	return &opts
}
