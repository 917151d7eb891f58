package entity

import (
	"fmt"
	"strings"

	"ckstyle/browser"
	"ckstyle/clean"
)

// Declaration is a single property:value pair of a rule group.
//
// Raw, normalized and stripped fields are fixed at construction. Fixers work
// on the staged pair which is initialized from the stripped pair the first
// time it is touched during a pass.
type Declaration struct {
	RoughName  string
	RoughValue string

	Name  string
	Value string

	StrippedName  string
	StrippedValue string

	// Browser narrows the set of targets this declaration is emitted for
	// when compressing.
	Browser browser.Mask

	fixedName  string
	fixedValue string
	staged     bool

	group *RuleGroup
}

// NewDeclaration creates a detached declaration.
func NewDeclaration(name, value string) *Declaration {
	return &Declaration{
		RoughName:     name,
		RoughValue:    value,
		Name:          clean.Name(name),
		Value:         clean.Value(value),
		StrippedName:  strings.TrimSpace(name),
		StrippedValue: strings.TrimSpace(value),
		Browser:       browser.ALL,
	}
}

// Group returns the owning rule group, nil for detached declarations.
func (d *Declaration) Group() *RuleGroup {
	return d.group
}

// Selector returns normalized selector of the owning group.
func (d *Declaration) Selector() string {
	if d.group == nil {
		return ""
	}
	return d.group.Selector
}

// Staged reports whether a fixer has touched this declaration during the
// current pass.
func (d *Declaration) Staged() bool {
	return d.staged
}

// Stage initializes the fixed pair from the stripped pair unless that has
// already been done in this pass.
func (d *Declaration) Stage() {
	if d.staged {
		return
	}
	d.fixedName, d.fixedValue = d.StrippedName, d.StrippedValue
	d.staged = true
}

// FixedName returns staged name, "" when not staged.
func (d *Declaration) FixedName() string {
	return d.fixedName
}

// FixedValue returns staged value, "" when not staged.
func (d *Declaration) FixedValue() string {
	return d.fixedValue
}

// SetFixedName stages the declaration and replaces its fixed name.
func (d *Declaration) SetFixedName(name string) {
	d.Stage()
	d.fixedName = name
}

// SetFixedValue stages the declaration and replaces its fixed value.
func (d *Declaration) SetFixedValue(value string) {
	d.Stage()
	d.fixedValue = value
}

// Rebase drops everything a previous fix pass left behind.
func (d *Declaration) Rebase() {
	d.fixedName, d.fixedValue = "", ""
	d.staged = false
	d.Browser = browser.ALL
}

// Reset replaces the declaration completely, all representations become
// identical.
func (d *Declaration) Reset(name, value string) {
	d.RoughName, d.Name, d.StrippedName, d.fixedName = name, name, name, name
	d.RoughValue, d.Value, d.StrippedValue, d.fixedValue = value, value, value, value
	d.staged = true
}

// Compressed renders minified "name:value;" or "" when the declaration
// does not apply to any browser in mask.
func (d *Declaration) Compressed(mask browser.Mask) string {
	if !d.Browser.Contains(mask) {
		return ""
	}
	name, value := d.Name, d.Value
	if d.staged {
		name, value = strings.TrimSpace(d.fixedName), strings.TrimSpace(d.fixedValue)
	}
	return name + ":" + clean.Compact(value) + ";"
}

// Fixed renders "name: value;" from the staged pair, falling back to the
// stripped pair.
func (d *Declaration) Fixed() string {
	name, value := d.StrippedName, d.StrippedValue
	if d.staged {
		name, value = d.fixedName, d.fixedValue
	}
	return name + ": " + clean.Pretty(value) + ";"
}

func (d *Declaration) String() string {
	return fmt.Sprintf("%s: %s", d.RoughName, d.RoughValue)
}
