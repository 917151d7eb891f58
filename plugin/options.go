package plugin

import (
	"slices"
	"strings"

	"ckstyle/browser"
	"ckstyle/clean"
	"ckstyle/ledger"
)

// Operation is the mode the engine is running in.
type Operation string

const (
	OperationCheck    Operation = "check"
	OperationFix      Operation = "fix"
	OperationCompress Operation = "compress"
	OperationFormat   Operation = "format"
)

const (
	IncludeAll  = "all"
	ExcludeNone = "none"
)

// Options is passed by reference to every checker and fixer call.
type Options struct {
	// Include lists plugin ids to run, nil means all.
	Include []string
	// Exclude lists plugin ids to skip, nil means none.
	Exclude []string
	// Safe skips plugins marked NotSafe.
	Safe bool
	// ErrorLevel is the least severe level reported.
	ErrorLevel ledger.Level
	// IgnoreRulesets lists selectors skipped by every pass.
	IgnoreRulesets []string

	// Operation and Browser are maintained by the engine.
	Operation Operation
	Browser   browser.Mask

	// State is free for plugins to keep private data between calls.
	State map[string]any
}

// DefaultOptions returns a fresh options value reporting everything.
func DefaultOptions() *Options {
	return &Options{
		ErrorLevel: ledger.Info,
		Browser:    browser.ALL,
		State:      make(map[string]any),
	}
}

// Ignored reports whether rulesets with the normalized selector must be
// skipped.
func (o *Options) Ignored(selector string) bool {
	return slices.ContainsFunc(o.IgnoreRulesets, func(s string) bool {
		return clean.Selector(s) == selector
	})
}

func (o *Options) admits(d Descriptor) bool {
	if d.Always {
		return true
	}
	if o.Include != nil && !slices.Contains(o.Include, d.ID) {
		return false
	}
	if o.Exclude != nil && slices.Contains(o.Exclude, d.ID) {
		return false
	}
	return !(o.Safe && d.NotSafe)
}

// ParseIDList splits comma separated ids. Empty input or the sentinel
// yields nil.
func ParseIDList(s, sentinel string) []string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, sentinel) {
		return nil
	}
	var ids []string
	for id := range strings.SplitSeq(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
