// Package ledger accumulates findings produced while checking a stylesheet.
package ledger

import (
	"fmt"
	"strings"
)

// Level is a finding severity. Lower is more severe.
type Level int

const (
	Error Level = iota
	Warning
	Info
)

func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Valid reports whether l is one of the known severities.
func (l Level) Valid() bool {
	return l >= Error && l <= Info
}

// ParseLevel accepts level names and their numeric form.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error", "0":
		return Error, nil
	case "warning", "warn", "1":
		return Warning, nil
	case "info", "log", "2":
		return Info, nil
	}
	return Error, fmt.Errorf("unknown severity level %q", s)
}

// Scope tells which part of the stylesheet produced an entry.
type Scope string

const (
	ScopeParse      Scope = "parse"
	ScopeStyleSheet Scope = "stylesheet"
	ScopeRuleSet    Scope = "ruleset"
	ScopeRule       Scope = "rule"
	ScopeExtra      Scope = "extra"
)

// Entry is a single reportable finding.
type Entry struct {
	Level    Level  `yaml:"-"`
	Scope    Scope  `yaml:"scope"`
	Message  string `yaml:"message"`
	File     string `yaml:"file,omitempty"`
	Selector string `yaml:"selector,omitempty"`
	Name     string `yaml:"name,omitempty"`
	Value    string `yaml:"value,omitempty"`
}

// Failure is a tooling defect (misbehaving plugin), not a stylesheet problem.
type Failure struct {
	PluginID string `yaml:"plugin"`
	Message  string `yaml:"message"`
}

func (f Failure) String() string {
	return fmt.Sprintf("[TOOL] %s: %s", f.PluginID, f.Message)
}

// Ledger keeps entries in severity buckets. Not safe for concurrent use.
type Ledger struct {
	threshold Level
	infos     []Entry
	warnings  []Entry
	errors    []Entry
	failures  []Failure
}

// New creates a ledger recording entries at or above threshold severity.
func New(threshold Level) *Ledger {
	return &Ledger{threshold: threshold}
}

// Threshold returns the least severe level this ledger records.
func (l *Ledger) Threshold() Level {
	return l.threshold
}

// Remember records e if its level passes the threshold. Errors are always
// kept.
func (l *Ledger) Remember(e Entry) {
	switch e.Level {
	case Error:
		l.errors = append(l.errors, e)
	case Warning:
		if l.threshold >= Warning {
			l.warnings = append(l.warnings, e)
		}
	case Info:
		if l.threshold >= Info {
			l.infos = append(l.infos, e)
		}
	default:
		l.Fail("ledger", fmt.Sprintf("wrong level %d for %q", int(e.Level), e.Message))
	}
}

// Fail records an internal failure regardless of the threshold.
func (l *Ledger) Fail(pluginID, msg string) {
	l.failures = append(l.failures, Failure{PluginID: pluginID, Message: msg})
}

func (l *Ledger) Infos() []Entry      { return l.infos }
func (l *Ledger) Warnings() []Entry   { return l.warnings }
func (l *Ledger) Errors() []Entry     { return l.errors }
func (l *Ledger) Failures() []Failure { return l.failures }

// Buckets returns info, warning and error entries in that order.
func (l *Ledger) Buckets() [3][]Entry {
	return [3][]Entry{l.infos, l.warnings, l.errors}
}

// HasProblems reports whether any finding has been recorded.
func (l *Ledger) HasProblems() bool {
	return len(l.infos) != 0 || len(l.warnings) != 0 || len(l.errors) != 0
}

func (l *Ledger) HasErrors() bool {
	return len(l.errors) != 0
}

// Len returns total number of recorded findings, failures excluded.
func (l *Ledger) Len() int {
	return len(l.infos) + len(l.warnings) + len(l.errors)
}

// Report is a serializable snapshot of a ledger.
type Report struct {
	File     string    `yaml:"file"`
	Errors   []Entry   `yaml:"errors,omitempty"`
	Warnings []Entry   `yaml:"warnings,omitempty"`
	Infos    []Entry   `yaml:"infos,omitempty"`
	Failures []Failure `yaml:"tool_failures,omitempty"`
}

// Report snapshots the ledger for output.
func (l *Ledger) Report(file string) Report {
	return Report{
		File:     file,
		Errors:   l.errors,
		Warnings: l.warnings,
		Infos:    l.infos,
		Failures: l.failures,
	}
}
