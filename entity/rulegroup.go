package entity

import (
	"slices"
	"strings"

	"ckstyle/browser"
	"ckstyle/clean"
)

// RuleGroup is a selector with its declarations, or, when Extra is set, a
// non-standard statement (at-rule) kept as text.
type RuleGroup struct {
	RoughSelector    string
	Selector         string
	StrippedSelector string

	RoughComment    string
	Comment         string
	StrippedComment string

	Extra             bool
	RoughStatement    string
	Statement         string
	StrippedStatement string

	fixedSelector  string
	fixedComment   string
	fixedStatement string
	staged         bool

	decls []*Declaration
	sheet *StyleSheet
}

// NewRuleGroup creates a detached rule group.
func NewRuleGroup(selector, comment string) *RuleGroup {
	return &RuleGroup{
		RoughSelector:    selector,
		Selector:         clean.Selector(selector),
		StrippedSelector: strings.TrimSpace(selector),
		RoughComment:     comment,
		Comment:          clean.Comment(comment),
		StrippedComment:  strings.TrimSpace(comment),
	}
}

// NewExtra creates a detached group for a statement which is not a plain
// ruleset.
func NewExtra(selector, statement, comment string) *RuleGroup {
	g := NewRuleGroup(selector, comment)
	g.Extra = true
	g.RoughStatement = statement
	g.Statement = clean.Compact(statement)
	g.StrippedStatement = strings.TrimSpace(statement)
	return g
}

// Sheet returns the owning stylesheet, nil for detached groups.
func (g *RuleGroup) Sheet() *StyleSheet {
	return g.sheet
}

// File returns identifier of the owning stylesheet.
func (g *RuleGroup) File() string {
	if g.sheet == nil {
		return ""
	}
	return g.sheet.File
}

// Add appends a new declaration keeping source order.
func (g *RuleGroup) Add(name, value string) *Declaration {
	d := NewDeclaration(name, value)
	g.Append(d)
	return d
}

// Append attaches d as the last declaration of the group.
func (g *RuleGroup) Append(d *Declaration) {
	d.group = g
	g.decls = append(g.decls, d)
}

// Declarations returns declarations in source order. The slice must not be
// modified, use Remove instead.
func (g *RuleGroup) Declarations() []*Declaration {
	return g.decls
}

// Len returns number of declarations.
func (g *RuleGroup) Len() int {
	return len(g.decls)
}

// Remove detaches d from the group and reports whether it was found.
func (g *RuleGroup) Remove(d *Declaration) bool {
	i := slices.Index(g.decls, d)
	if i < 0 {
		return false
	}
	g.decls = slices.Delete(g.decls, i, i+1)
	d.group = nil
	return true
}

func (g *RuleGroup) Staged() bool {
	return g.staged
}

// Stage initializes fixed selector, comment and statement from their
// stripped forms once per pass.
func (g *RuleGroup) Stage() {
	if g.staged {
		return
	}
	g.fixedSelector = g.StrippedSelector
	g.fixedComment = g.StrippedComment
	g.fixedStatement = g.StrippedStatement
	g.staged = true
}

func (g *RuleGroup) FixedSelector() string  { return g.fixedSelector }
func (g *RuleGroup) FixedComment() string   { return g.fixedComment }
func (g *RuleGroup) FixedStatement() string { return g.fixedStatement }

func (g *RuleGroup) SetFixedSelector(s string) {
	g.Stage()
	g.fixedSelector = s
}

func (g *RuleGroup) SetFixedComment(s string) {
	g.Stage()
	g.fixedComment = s
}

func (g *RuleGroup) SetFixedStatement(s string) {
	g.Stage()
	g.fixedStatement = s
}

// Rebase clears staged state of the group and all its declarations.
func (g *RuleGroup) Rebase() {
	g.fixedSelector, g.fixedComment, g.fixedStatement = "", "", ""
	g.staged = false
	for _, d := range g.decls {
		d.Rebase()
	}
}

func (g *RuleGroup) pick(fixed, stripped string) string {
	if g.staged {
		return fixed
	}
	return stripped
}

// Fixed renders the group in human readable form.
func (g *RuleGroup) Fixed() string {
	var sb strings.Builder
	if comment := g.pick(g.fixedComment, g.StrippedComment); comment != "" {
		sb.WriteString(comment)
		sb.WriteByte('\n')
	}
	if g.Extra {
		sb.WriteString(g.pick(g.fixedStatement, g.StrippedStatement))
		return sb.String()
	}
	sb.WriteString(clean.PrettySelector(g.pick(g.fixedSelector, g.StrippedSelector)))
	sb.WriteString(" {\n")
	for _, d := range g.decls {
		sb.WriteString("    ")
		sb.WriteString(d.Fixed())
		sb.WriteByte('\n')
	}
	sb.WriteByte('}')
	return sb.String()
}

// Compressed renders the group minified keeping only declarations
// applicable to mask. Groups left without declarations render as "".
func (g *RuleGroup) Compressed(mask browser.Mask) string {
	if g.Extra {
		return clean.Compact(g.pick(g.fixedStatement, g.Statement))
	}
	var body strings.Builder
	for _, d := range g.decls {
		body.WriteString(d.Compressed(mask))
	}
	if body.Len() == 0 {
		return ""
	}
	return clean.Selector(g.pick(g.fixedSelector, g.Selector)) + "{" + body.String() + "}"
}
