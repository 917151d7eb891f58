// Package dumputil provides shared output helpers for stylesheet debug tools.
// It operates on engine.Checker and produces entity trees, plugin timings and
// per-browser compressed renditions.
package dumputil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"ckstyle/browser"
	"ckstyle/engine"
)

// Browsers are the masks DumpBrowsers renders, one per primitive browser.
var Browsers = []browser.Mask{
	browser.STD, browser.CHROME, browser.FIREFOX, browser.SAFARI, browser.OPERA,
	browser.IE9PLUS, browser.IE8, browser.IE7, browser.IE6,
}

// DumpTree writes entity tree with every representation to <stem>-dump.txt.
func DumpTree(c *engine.Checker, inPath, outDir string, overwrite bool) error {
	return WriteOutput(inPath, outDir, "-dump.txt", []byte(c.StyleSheet().Dump()+"\n"), overwrite)
}

// DumpTimings checks and fixes the stylesheet and writes accumulated plugin
// costs to <stem>-timings.txt.
func DumpTimings(c *engine.Checker, inPath, outDir string, overwrite bool) error {
	l := c.Check()
	c.Fix()

	var sb strings.Builder
	fmt.Fprintf(&sb, "findings: %d errors, %d warnings, %d infos, %d tool failures\n\n",
		len(l.Errors()), len(l.Warnings()), len(l.Infos()), len(l.Failures()))

	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PLUGIN\tCALLS\tELAPSED")
	for _, t := range c.Timings() {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", t.ID, t.Calls, t.Elapsed)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return WriteOutput(inPath, outDir, "-timings.txt", []byte(sb.String()), overwrite)
}

// DumpBrowsers writes compressed output for every primitive browser to
// <stem>-browsers.txt.
func DumpBrowsers(c *engine.Checker, inPath, outDir string, overwrite bool) error {
	var sb strings.Builder
	for _, m := range Browsers {
		fmt.Fprintf(&sb, "[%s]\n%s\n\n", m, c.Compress(m))
	}
	return WriteOutput(inPath, outDir, "-browsers.txt", []byte(sb.String()), overwrite)
}

// WriteOutput writes data to <stem><suffix> in either the input file's directory or outDir.
func WriteOutput(inPath, outDir, suffix string, data []byte, overwrite bool) error {
	base := filepath.Base(inPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	dir := filepath.Dir(inPath)
	if outDir != "" {
		dir = outDir
	}
	outPath := filepath.Join(dir, stem+suffix)

	if _, err := os.Stat(outPath); err == nil {
		if !overwrite {
			return fmt.Errorf("output file already exists: %s (use -overwrite)", outPath)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", outPath)
	return nil
}
