package engine

import (
	"ckstyle/browser"
	"ckstyle/entity"
	"ckstyle/plugin"
)

// Fix rewrites the stylesheet with every fixer and returns it rendered in
// human readable form. Staged state and failures of previous passes are
// dropped first so repeated calls produce the same output.
func (c *Checker) Fix() string {
	c.opts.Operation = plugin.OperationFix
	c.opts.Browser = browser.ALL
	c.fix()
	return c.sheet.Fixed()
}

// Compress runs the fix pass and returns minified output keeping only
// declarations applicable to mask. NONE means all browsers.
func (c *Checker) Compress(mask browser.Mask) string {
	if mask == browser.NONE {
		mask = browser.ALL
	}
	c.opts.Operation = plugin.OperationCompress
	c.opts.Browser = mask
	c.fix()
	return c.sheet.Compressed(mask)
}

// Format renders the stylesheet in human readable form without running
// any fixer.
func (c *Checker) Format() string {
	c.opts.Operation = plugin.OperationFormat
	c.opts.Browser = browser.ALL
	c.resetLedger()
	c.sheet.Rebase()
	return c.sheet.Fixed()
}

func (c *Checker) fix() {
	c.resetLedger()
	c.sheet.Rebase()

	// groups may be removed by fixers, iterate over a snapshot
	groups := append([]*entity.RuleGroup(nil), c.sheet.Groups()...)
	for _, g := range groups {
		if g.Extra {
			g.Stage()
			c.fixExtra(g)
			continue
		}
		if c.opts.Ignored(g.Selector) {
			continue
		}

		// declarations first so ruleset fixers see fixed values
		decls := append([]*entity.Declaration(nil), g.Declarations()...)
		for _, d := range decls {
			d.Stage()
			c.fixRule(d)
		}
		g.Stage()
		c.fixRuleSet(g)
	}

	for _, p := range c.reg.Plugins(plugin.CategoryStyleSheet) {
		if f, ok := p.(plugin.StyleSheetFixer); ok {
			c.invoke(p.Descriptor().ID, func() { f.FixStyleSheet(c.sheet, c.opts) })
		}
	}
	c.logTimings()
}

func (c *Checker) fixExtra(g *entity.RuleGroup) {
	for _, p := range c.reg.Plugins(plugin.CategoryExtra) {
		if f, ok := p.(plugin.ExtraFixer); ok {
			c.invoke(p.Descriptor().ID, func() { f.FixExtra(g, c.opts) })
		}
	}
}

func (c *Checker) fixRuleSet(g *entity.RuleGroup) {
	for _, p := range c.reg.Plugins(plugin.CategoryRuleSet) {
		if f, ok := p.(plugin.RuleSetFixer); ok {
			c.invoke(p.Descriptor().ID, func() { f.FixRuleSet(g, c.opts) })
		}
	}
}

func (c *Checker) fixRule(d *entity.Declaration) {
	for _, p := range c.reg.Plugins(plugin.CategoryRule) {
		if f, ok := p.(plugin.RuleFixer); ok {
			c.invoke(p.Descriptor().ID, func() { f.FixRule(d, c.opts) })
		}
	}
}
