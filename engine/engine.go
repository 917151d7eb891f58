// Package engine runs registered checkers and fixers over a stylesheet.
//
// A Checker is single threaded: plugins are invoked strictly in registry
// order and a single stylesheet must not be checked and fixed at the same
// time.
package engine

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ckstyle/entity"
	"ckstyle/ledger"
	"ckstyle/plugin"
)

// Checker binds a stylesheet to a plugin registry.
type Checker struct {
	sheet  *entity.StyleSheet
	reg    *plugin.Registry
	opts   *plugin.Options
	ledger *ledger.Ledger
	timer  *timer
	log    *zap.Logger
}

// New creates a checker. The registry is sorted, parse errors of sheet are
// recorded into a fresh ledger.
func New(sheet *entity.StyleSheet, reg *plugin.Registry, opts *plugin.Options, log *zap.Logger) *Checker {
	if opts == nil {
		opts = plugin.DefaultOptions()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if opts.State == nil {
		opts.State = make(map[string]any)
	}
	reg.Sort()
	c := &Checker{
		sheet: sheet,
		reg:   reg,
		opts:  opts,
		timer: newTimer(),
		log:   log.Named("engine"),
	}
	c.resetLedger()
	return c
}

// StyleSheet returns the checked tree.
func (c *Checker) StyleSheet() *entity.StyleSheet {
	return c.sheet
}

// Ledger returns findings of the last pass.
func (c *Checker) Ledger() *ledger.Ledger {
	return c.ledger
}

// Timings returns accumulated per-plugin durations.
func (c *Checker) Timings() []Timing {
	return c.timer.report()
}

func (c *Checker) resetLedger() {
	c.ledger = ledger.New(c.opts.ErrorLevel)
	for _, e := range c.sheet.Errors {
		c.ledger.Remember(ledger.Entry{
			Level:   e.Level,
			Scope:   ledger.ScopeParse,
			Message: e.Message,
			File:    c.sheet.File,
		})
	}
}

// fail records a plugin contract violation and keeps going.
func (c *Checker) fail(id, msg string) {
	c.log.Error("Plugin contract violation", zap.String("plugin", id), zap.String("reason", msg))
	c.ledger.Fail(id, msg)
}

// invoke runs fn isolating panics to the plugin that raised them.
func (c *Checker) invoke(id string, fn func()) {
	defer c.timer.start(id)()
	defer func() {
		if r := recover(); r != nil {
			c.fail(id, fmt.Sprintf("panic: %v", r))
		}
	}()
	fn()
}

func (c *Checker) logTimings() {
	if !c.log.Core().Enabled(zap.DebugLevel) {
		return
	}
	for _, t := range c.timer.report() {
		c.log.Debug("Plugin timing", zap.String("plugin", t.ID), zap.Int("calls", t.Calls), zap.Duration("elapsed", t.Elapsed))
	}
}

// expand substitutes placeholders present in the template and appends the
// scope context when its placeholder is missing.
func expand(tmpl string, scope ledger.Scope, e ledger.Entry) string {
	key, ctx := "${selector}", e.Selector
	if scope == ledger.ScopeStyleSheet {
		key, ctx = "${file}", e.File
	}
	appendCtx := !strings.Contains(tmpl, key)

	msg := strings.NewReplacer(
		"${file}", e.File,
		"${selector}", e.Selector,
		"${name}", e.Name,
		"${value}", e.Value,
	).Replace(tmpl)
	if appendCtx {
		msg += fmt.Sprintf(" (from %q)", ctx)
	}
	return msg
}
