package engine

import (
	"ckstyle/browser"
	"ckstyle/entity"
	"ckstyle/ledger"
	"ckstyle/plugin"
)

// Check runs every checker over the stylesheet without modifying it and
// returns the fresh ledger. Parse errors are always part of the result.
func (c *Checker) Check() *ledger.Ledger {
	c.opts.Operation = plugin.OperationCheck
	c.opts.Browser = browser.ALL
	c.resetLedger()

	for _, p := range c.reg.Plugins(plugin.CategoryStyleSheet) {
		if chk, ok := p.(plugin.StyleSheetChecker); ok {
			c.checkOne(p, ledger.ScopeStyleSheet, ledger.Entry{File: c.sheet.File}, func() plugin.Result {
				return chk.CheckStyleSheet(c.sheet, c.opts)
			})
		}
	}

	for _, g := range c.sheet.Groups() {
		if g.Extra {
			c.checkExtra(g)
			continue
		}
		if c.opts.Ignored(g.Selector) {
			continue
		}
		c.checkRuleSet(g)
		for _, d := range g.Declarations() {
			c.checkRule(d)
		}
	}

	c.logTimings()
	return c.ledger
}

func (c *Checker) checkExtra(g *entity.RuleGroup) {
	for _, p := range c.reg.Plugins(plugin.CategoryExtra) {
		if chk, ok := p.(plugin.ExtraChecker); ok {
			c.checkOne(p, ledger.ScopeExtra, groupEntry(g), func() plugin.Result {
				return chk.CheckExtra(g, c.opts)
			})
		}
	}
}

func (c *Checker) checkRuleSet(g *entity.RuleGroup) {
	for _, p := range c.reg.Plugins(plugin.CategoryRuleSet) {
		if chk, ok := p.(plugin.RuleSetChecker); ok {
			c.checkOne(p, ledger.ScopeRuleSet, groupEntry(g), func() plugin.Result {
				return chk.CheckRuleSet(g, c.opts)
			})
		}
	}
}

func (c *Checker) checkRule(d *entity.Declaration) {
	for _, p := range c.reg.Plugins(plugin.CategoryRule) {
		if chk, ok := p.(plugin.RuleChecker); ok {
			c.checkOne(p, ledger.ScopeRule, declEntry(d), func() plugin.Result {
				return chk.CheckRule(d, c.opts)
			})
		}
	}
}

func groupEntry(g *entity.RuleGroup) ledger.Entry {
	return ledger.Entry{File: g.File(), Selector: g.Selector}
}

func declEntry(d *entity.Declaration) ledger.Entry {
	e := ledger.Entry{Selector: d.Selector(), Name: d.Name, Value: d.Value}
	if g := d.Group(); g != nil {
		e.File = g.File()
	}
	return e
}

// checkOne runs a single check and turns its result into ledger entries.
func (c *Checker) checkOne(p plugin.Plugin, scope ledger.Scope, ctx ledger.Entry, check func() plugin.Result) {
	d := p.Descriptor()

	var (
		res       plugin.Result
		completed bool
	)
	c.invoke(d.ID, func() {
		res = check()
		completed = true
	})
	if !completed {
		// panic already reported
		return
	}
	if !res.Valid() {
		c.fail(d.ID, "check should return a boolean or a list of messages")
		return
	}

	var msgs []string
	switch {
	case res.IsList():
		msgs = res.List()
	case !res.OK():
		msgs = []string{d.Message}
	}

	for _, msg := range msgs {
		if msg == "" {
			c.fail(d.ID, "no message for a failed check")
			continue
		}
		e := ctx
		e.Level = d.Level
		e.Scope = scope
		e.Message = expand(msg, scope, ctx)
		c.ledger.Remember(e)
	}
}
