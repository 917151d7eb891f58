// Package entity defines the stylesheet tree checkers and fixers operate on.
package entity

import (
	"slices"
	"strings"

	"ckstyle/browser"
	"ckstyle/ledger"
	"ckstyle/utils/debug"
)

// ParseError is a problem found by the parser before any plugin runs.
type ParseError struct {
	Level   ledger.Level
	Message string
}

// StyleSheet owns ordered rule groups of a single source.
type StyleSheet struct {
	File   string
	Errors []ParseError

	groups []*RuleGroup
}

// NewStyleSheet creates an empty stylesheet for file.
func NewStyleSheet(file string) *StyleSheet {
	return &StyleSheet{File: file}
}

// AddError records a parse time problem.
func (s *StyleSheet) AddError(level ledger.Level, msg string) {
	s.Errors = append(s.Errors, ParseError{Level: level, Message: msg})
}

// Add appends g as the last group of the sheet.
func (s *StyleSheet) Add(g *RuleGroup) *RuleGroup {
	g.sheet = s
	s.groups = append(s.groups, g)
	return g
}

// NewRuleGroup creates and appends a ruleset.
func (s *StyleSheet) NewRuleGroup(selector, comment string) *RuleGroup {
	return s.Add(NewRuleGroup(selector, comment))
}

// NewExtra creates and appends a non-standard statement.
func (s *StyleSheet) NewExtra(selector, statement, comment string) *RuleGroup {
	return s.Add(NewExtra(selector, statement, comment))
}

// Groups returns groups in source order. The slice must not be modified,
// use Remove instead.
func (s *StyleSheet) Groups() []*RuleGroup {
	return s.groups
}

// Len returns number of groups.
func (s *StyleSheet) Len() int {
	return len(s.groups)
}

// Remove detaches g from the sheet and reports whether it was found.
func (s *StyleSheet) Remove(g *RuleGroup) bool {
	i := slices.Index(s.groups, g)
	if i < 0 {
		return false
	}
	s.groups = slices.Delete(s.groups, i, i+1)
	g.sheet = nil
	return true
}

// Rebase clears staged fix state of every group and declaration.
func (s *StyleSheet) Rebase() {
	for _, g := range s.groups {
		g.Rebase()
	}
}

// Fixed renders the whole sheet in human readable form.
func (s *StyleSheet) Fixed() string {
	parts := make([]string, 0, len(s.groups))
	for _, g := range s.groups {
		parts = append(parts, g.Fixed())
	}
	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}

// Compressed renders the whole sheet minified for browsers in mask.
func (s *StyleSheet) Compressed(mask browser.Mask) string {
	var sb strings.Builder
	for _, g := range s.groups {
		sb.WriteString(g.Compressed(mask))
	}
	return strings.TrimSpace(sb.String())
}

// Dump renders the tree with every representation of every entity.
func (s *StyleSheet) Dump() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "stylesheet %s (%d groups, %d parse errors)", s.File, len(s.groups), len(s.Errors))
	for _, e := range s.Errors {
		tw.Line(1, "parse %s: %s", e.Level, e.Message)
	}
	for i, g := range s.groups {
		if g.Extra {
			tw.Line(1, "extra #%d", i)
		} else {
			tw.Line(1, "ruleset #%d", i)
		}
		tw.TextBlock(2, "selector", g.Selector)
		tw.Field(2, "rough selector", g.RoughSelector)
		tw.Field(2, "comment", g.Comment)
		tw.Field(2, "statement", g.Statement)
		if g.Staged() {
			tw.TextBlock(2, "fixed selector", g.fixedSelector)
			tw.Field(2, "fixed statement", g.fixedStatement)
		}
		for _, d := range g.decls {
			tw.Line(2, "declaration %s [%s]", d.Name, d.Browser)
			tw.TextBlock(3, "rough", d.RoughName+":"+d.RoughValue)
			tw.TextBlock(3, "value", d.Value)
			if d.Staged() {
				tw.TextBlock(3, "fixed", d.fixedName+":"+d.fixedValue)
			}
		}
	}
	return tw.String()
}
