// cssdump parses a stylesheet and writes internal representations next to
// it (or into outdir) for troubleshooting plugins and the parser.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"ckstyle/cmd/debug/internal/dumputil"
	"ckstyle/css"
	"ckstyle/engine"
	"ckstyle/plugin"
	"ckstyle/plugins"
)

func main() {
	all := flag.Bool("all", false, "enable all dump flags (-dump, -timings, -browsers)")
	dump := flag.Bool("dump", false, "dump entity tree into <file>-dump.txt")
	timings := flag.Bool("timings", false, "check and fix, dump plugin timings into <file>-timings.txt")
	browsers := flag.Bool("browsers", false, "dump compressed output for every browser into <file>-browsers.txt")
	verbose := flag.Bool("verbose", false, "log engine activity to stderr")
	overwrite := flag.Bool("overwrite", false, "overwrite existing output")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: cssdump [-all] [-dump] [-timings] [-browsers] [-verbose] [-overwrite] <file.css> [outdir]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(2)
	}
	if *all {
		*dump, *timings, *browsers = true, true, true
	}
	if !*dump && !*timings && !*browsers {
		*dump = true
	}

	inPath, outDir := flag.Arg(0), flag.Arg(1)
	data, err := os.ReadFile(inPath)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "read %s: %v\n", inPath, err)
		os.Exit(1)
	}
	text, _, err := css.Decode(data)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "decode %s: %v (using as is)\n", inPath, err)
	}

	log := zap.NewNop()
	if *verbose {
		if log, err = zap.NewDevelopment(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "logger: %v\n", err)
			os.Exit(1)
		}
	}
	defer func() { _ = log.Sync() }()

	// every step gets fresh checker so dumps do not depend on each other
	checker := func() *engine.Checker {
		opts := plugin.DefaultOptions()
		reg := plugin.NewRegistry(opts, log)
		if err := reg.RegisterAll(plugins.All()...); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "plugins: %v\n", err)
			os.Exit(1)
		}
		return engine.New(css.NewParser(log).Parse(text, inPath), reg, opts, log)
	}

	failed := false
	for _, step := range []struct {
		on bool
		fn func(*engine.Checker, string, string, bool) error
	}{
		{*dump, dumputil.DumpTree},
		{*timings, dumputil.DumpTimings},
		{*browsers, dumputil.DumpBrowsers},
	} {
		if !step.on {
			continue
		}
		if err := step.fn(checker(), inPath, outDir, *overwrite); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
