// Package plugin defines the contract between the engine and checker/fixer
// units, the options every call receives and the registry deciding which
// units run and in which order.
package plugin

import (
	"ckstyle/entity"
	"ckstyle/ledger"
)

// Category selects the entities a plugin is applied to.
type Category int

const (
	CategoryExtra Category = iota
	CategoryStyleSheet
	CategoryRuleSet
	CategoryRule
)

func (c Category) String() string {
	switch c {
	case CategoryStyleSheet:
		return "stylesheet"
	case CategoryRuleSet:
		return "ruleset"
	case CategoryRule:
		return "rule"
	default:
		return "extra"
	}
}

// DefaultOrder is the rank of plugins which do not declare one.
const DefaultOrder = 10000

// Descriptor is the static description of a plugin.
type Descriptor struct {
	ID string
	// Type and Parent both declare the category, either is enough.
	Type   Category
	Parent Category
	// Order ranks plugins within a category, lower runs first, 0 means
	// DefaultOrder.
	Order int
	// Always bypasses include/exclude/safe filtering.
	Always bool
	// NotSafe plugins are skipped in safe mode.
	NotSafe bool
	Level   ledger.Level
	// Message is the template used when a check fails without messages of
	// its own.
	Message string
}

// Category resolves the bucket the plugin belongs to.
func (d Descriptor) Category() Category {
	for _, c := range []Category{CategoryRule, CategoryRuleSet, CategoryStyleSheet} {
		if d.Type == c || d.Parent == c {
			return c
		}
	}
	return CategoryExtra
}

// Rank returns effective order.
func (d Descriptor) Rank() int {
	if d.Order == 0 {
		return DefaultOrder
	}
	return d.Order
}

// Plugin is the only mandatory part of a checker/fixer. Behavior is added by
// implementing any of the capability interfaces below matching the plugin
// category.
type Plugin interface {
	Descriptor() Descriptor
}

type StyleSheetChecker interface {
	CheckStyleSheet(sheet *entity.StyleSheet, opts *Options) Result
}

type RuleSetChecker interface {
	CheckRuleSet(group *entity.RuleGroup, opts *Options) Result
}

type RuleChecker interface {
	CheckRule(decl *entity.Declaration, opts *Options) Result
}

type ExtraChecker interface {
	CheckExtra(group *entity.RuleGroup, opts *Options) Result
}

type StyleSheetFixer interface {
	FixStyleSheet(sheet *entity.StyleSheet, opts *Options)
}

type RuleSetFixer interface {
	FixRuleSet(group *entity.RuleGroup, opts *Options)
}

type RuleFixer interface {
	FixRule(decl *entity.Declaration, opts *Options)
}

type ExtraFixer interface {
	FixExtra(group *entity.RuleGroup, opts *Options)
}
