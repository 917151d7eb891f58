package plugins

import (
	"fmt"
	"regexp"

	"ckstyle/entity"
	"ckstyle/ledger"
	"ckstyle/plugin"
)

// NoDuplicateProp reports properties declared more than once in a ruleset.
// Repeating a property is a common fallback technique, so the fixer is not
// safe.
type NoDuplicateProp struct{}

func (NoDuplicateProp) Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		ID:      "no-duplicate-prop",
		Type:    plugin.CategoryRuleSet,
		NotSafe: true,
		Level:   ledger.Warning,
		Message: "duplicated properties in ${selector}",
	}
}

func (NoDuplicateProp) CheckRuleSet(g *entity.RuleGroup, _ *plugin.Options) plugin.Result {
	counts := make(map[string]int)
	var order []string
	for _, d := range g.Declarations() {
		if counts[d.Name] == 0 {
			order = append(order, d.Name)
		}
		counts[d.Name]++
	}
	var msgs []string
	for _, name := range order {
		if n := counts[name]; n > 1 {
			msgs = append(msgs, fmt.Sprintf("%q is declared %d times in ${selector}", name, n))
		}
	}
	return plugin.Messages(msgs...)
}

// FixRuleSet keeps the last occurrence of every property.
func (NoDuplicateProp) FixRuleSet(g *entity.RuleGroup, _ *plugin.Options) {
	decls := g.Declarations()
	last := make(map[string]*entity.Declaration, len(decls))
	for _, d := range decls {
		last[d.Name] = d
	}
	for _, d := range append([]*entity.Declaration(nil), decls...) {
		if last[d.Name] != d {
			g.Remove(d)
		}
	}
}

var universal = regexp.MustCompile(`(^|[\s,>+~])\*`)

// NoUniversalSelector reports "*" in selectors.
type NoUniversalSelector struct{}

func (NoUniversalSelector) Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		ID:      "no-universal-selector",
		Type:    plugin.CategoryRuleSet,
		Level:   ledger.Warning,
		Message: "universal selector in ${selector} is slow",
	}
}

func (NoUniversalSelector) CheckRuleSet(g *entity.RuleGroup, _ *plugin.Options) plugin.Result {
	return plugin.Bool(!universal.MatchString(g.Selector))
}
