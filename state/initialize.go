package state

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"ckstyle/config"
	"ckstyle/misc"
	"ckstyle/plugins"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:   time.Now(),
		Format:  "text",
		Plugins: plugins.All(),
	}
}

// Setup loads configuration from configFile (defaults when empty), opens
// debug report when requested and builds program logger.
func (e *LocalEnv) Setup(configFile string, report bool) (err error) {
	if e.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if report {
		if e.Rpt, err = e.Cfg.Reporting.Prepare(); err != nil {
			return fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		if len(configFile) > 0 {
			// processed configuration, not the file as given
			if data, err := config.Dump(e.Cfg); err == nil {
				e.Rpt.StoreData("config/"+filepath.Base(configFile), data)
			}
		}
	}
	if e.Log, err = e.Cfg.Logging.Prepare(e.Rpt); err != nil {
		return fmt.Errorf("unable to prepare logs: %w", err)
	}
	e.RedirectStdLog()

	e.Log.Debug("Program started",
		zap.Strings("args", os.Args),
		zap.String("ver", misc.GetVersion()),
		zap.String("runtime", runtime.Version()),
		zap.String("hash", misc.GetGitHash()),
		zap.Int("plugins", len(e.Plugins)))
	if e.Rpt != nil {
		e.Log.Info("Creating debug report", zap.String("location", e.Rpt.Name()))
	}
	if len(configFile) == 0 {
		e.Log.Debug("Using defaults (no configuration file)")
	}
	return nil
}

// Close flushes logs and finalizes debug report. Nothing could be logged
// after this point, errors are returned to be printed directly.
func (e *LocalEnv) Close() (err error) {
	if e.Log != nil {
		e.Log.Debug("Program ended", zap.Duration("elapsed", e.Uptime()))
	}
	e.RestoreStdLog()

	if e.Rpt != nil {
		if er := e.Rpt.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
		}
		e.Rpt = nil
	}

	// crash output is not needed anymore, drop panic log if nothing was written
	if e.Cfg != nil && len(e.Cfg.Logging.FileLogger.Destination) > 0 {
		debug.SetCrashOutput(nil, debug.CrashOptions{})
		name := e.Cfg.Logging.PanicLogName()
		if fi, er := os.Stat(name); er == nil && fi.Size() == 0 {
			if er := os.Remove(name); er != nil {
				err = multierr.Append(err, fmt.Errorf("unable to remove empty panic log %q: %w", name, er))
			}
		}
	}
	return err
}
