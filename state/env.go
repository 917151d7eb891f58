// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"ckstyle/config"
	"ckstyle/plugin"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// Plugins is the set every stylesheet is processed with.
	Plugins []plugin.Plugin

	// used by lint subcommands
	Recursive bool
	Format    string
	CodePage  encoding.Encoding

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}

// Options returns fresh plugin options built from configuration, defaults
// are used when configuration was not loaded.
func (e *LocalEnv) Options() *plugin.Options {
	if e.Cfg == nil {
		return plugin.DefaultOptions()
	}
	return e.Cfg.Lint.Options()
}

// Registry returns a new sorted registry populated with environment plugins
// admitted by opts.
func (e *LocalEnv) Registry(opts *plugin.Options) (*plugin.Registry, error) {
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}
	reg := plugin.NewRegistry(opts, log)
	if err := reg.RegisterAll(e.Plugins...); err != nil {
		return nil, err
	}
	reg.Sort()
	return reg, nil
}
