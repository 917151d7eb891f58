// Package plugins holds the built-in checkers and fixers.
package plugins

import (
	"slices"

	"ckstyle/plugin"
)

var builtin []plugin.Plugin

// Register adds p to the built-in set. Registration order is the discovery
// order used to break ties between plugins of equal rank.
func Register(p plugin.Plugin) {
	builtin = append(builtin, p)
}

// All returns built-in plugins in registration order.
func All() []plugin.Plugin {
	return slices.Clone(builtin)
}

func init() {
	Register(IEHack{})
	Register(LowercaseProp{})
	Register(LowercaseHex{})
	Register(NoUnitAfterZero{})
	Register(NoDuplicateProp{})
	Register(NoUniversalSelector{})
	Register(NoEmptyRuleSet{})
	Register(NoImport{})
	Register(LowercaseAtKeyword{})
}
