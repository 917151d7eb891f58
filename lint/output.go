package lint

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	yaml "gopkg.in/yaml.v3"

	"ckstyle/ledger"
	"ckstyle/plugin"
)

// report outputs findings of a single file. YAML reports are collected and
// written as a single document by flush.
func (r *runner) report(rep ledger.Report) error {
	if r.format == "yaml" {
		r.reports = append(r.reports, rep)
		return nil
	}
	return writeText(r.out, rep)
}

func (r *runner) flush() error {
	if r.format != "yaml" || r.op != plugin.OperationCheck {
		return nil
	}
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(r.reports); err != nil {
		return fmt.Errorf("unable to write report: %w", err)
	}
	return enc.Close()
}

// writeText outputs one line per finding, most severe first.
func writeText(w io.Writer, rep ledger.Report) error {
	var err error
	line := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}
	for _, bucket := range [][]ledger.Entry{rep.Errors, rep.Warnings, rep.Infos} {
		for _, e := range bucket {
			line("%s: %s: %s\n", rep.File, e.Level, e.Message)
		}
	}
	for _, f := range rep.Failures {
		line("%s: %s\n", rep.File, f)
	}
	if len(rep.Errors)+len(rep.Warnings)+len(rep.Infos)+len(rep.Failures) == 0 {
		line("%s: ok\n", rep.File)
	}
	return err
}

// writePlugins outputs a table describing plugins.
func writePlugins(w io.Writer, plugins []plugin.Plugin) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCATEGORY\tORDER\tLEVEL\tCHECK\tFIX\tFLAGS")
	for _, p := range plugins {
		d := p.Descriptor()
		check, fix := capabilities(p)
		var flags []string
		if d.Always {
			flags = append(flags, "always")
		}
		if d.NotSafe {
			flags = append(flags, "not-safe")
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n", d.ID, d.Category(), d.Rank(), d.Level, check, fix, strings.Join(flags, ","))
	}
	return tw.Flush()
}

type pluginInfo struct {
	ID       string `yaml:"id"`
	Category string `yaml:"category"`
	Order    int    `yaml:"order"`
	Level    string `yaml:"level"`
	Check    bool   `yaml:"check"`
	Fix      bool   `yaml:"fix"`
	Always   bool   `yaml:"always,omitempty"`
	NotSafe  bool   `yaml:"not_safe,omitempty"`
}

func writePluginsYAML(w io.Writer, plugins []plugin.Plugin) error {
	out := make([]pluginInfo, 0, len(plugins))
	for _, p := range plugins {
		d := p.Descriptor()
		check, fix := capabilities(p)
		out = append(out, pluginInfo{
			ID:       d.ID,
			Category: d.Category().String(),
			Order:    d.Rank(),
			Level:    d.Level.String(),
			Check:    check == "yes",
			Fix:      fix == "yes",
			Always:   d.Always,
			NotSafe:  d.NotSafe,
		})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("unable to write plugins: %w", err)
	}
	return enc.Close()
}

// capabilities reports whether plugin implements checker and fixer for its
// own category.
func capabilities(p plugin.Plugin) (check, fix string) {
	yes := func(ok bool) string {
		if ok {
			return "yes"
		}
		return "-"
	}
	switch p.Descriptor().Category() {
	case plugin.CategoryRule:
		_, c := p.(plugin.RuleChecker)
		_, f := p.(plugin.RuleFixer)
		return yes(c), yes(f)
	case plugin.CategoryRuleSet:
		_, c := p.(plugin.RuleSetChecker)
		_, f := p.(plugin.RuleSetFixer)
		return yes(c), yes(f)
	case plugin.CategoryStyleSheet:
		_, c := p.(plugin.StyleSheetChecker)
		_, f := p.(plugin.StyleSheetFixer)
		return yes(c), yes(f)
	default:
		_, c := p.(plugin.ExtraChecker)
		_, f := p.(plugin.ExtraFixer)
		return yes(c), yes(f)
	}
}
