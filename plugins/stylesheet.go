package plugins

import (
	"fmt"

	"ckstyle/entity"
	"ckstyle/ledger"
	"ckstyle/plugin"
)

// NoEmptyRuleSet reports rulesets without declarations and removes them.
type NoEmptyRuleSet struct{}

func (NoEmptyRuleSet) Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		ID:    "no-empty-ruleset",
		Type:  plugin.CategoryStyleSheet,
		Level: ledger.Warning,
	}
}

func empty(g *entity.RuleGroup, opts *plugin.Options) bool {
	return !g.Extra && g.Len() == 0 && !opts.Ignored(g.Selector)
}

func (NoEmptyRuleSet) CheckStyleSheet(s *entity.StyleSheet, opts *plugin.Options) plugin.Result {
	var msgs []string
	for _, g := range s.Groups() {
		if empty(g, opts) {
			msgs = append(msgs, fmt.Sprintf("empty ruleset %q in ${file}", g.Selector))
		}
	}
	return plugin.Messages(msgs...)
}

func (NoEmptyRuleSet) FixStyleSheet(s *entity.StyleSheet, opts *plugin.Options) {
	for _, g := range append([]*entity.RuleGroup(nil), s.Groups()...) {
		if empty(g, opts) {
			s.Remove(g)
		}
	}
}
