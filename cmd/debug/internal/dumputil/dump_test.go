package dumputil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"ckstyle/css"
	"ckstyle/engine"
	"ckstyle/plugin"
	"ckstyle/plugins"
)

func newChecker(t *testing.T, src string) *engine.Checker {
	t.Helper()
	log := zaptest.NewLogger(t)
	opts := plugin.DefaultOptions()
	reg := plugin.NewRegistry(opts, log)
	if err := reg.RegisterAll(plugins.All()...); err != nil {
		t.Fatal(err)
	}
	return engine.New(css.NewParser(log).Parse([]byte(src), "in.css"), reg, opts, log)
}

func TestWriteOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "site.css")

	if err := WriteOutput(in, "", "-x.txt", []byte("one"), false); err != nil {
		t.Fatalf("WriteOutput() error = %v", err)
	}
	if err := WriteOutput(in, "", "-x.txt", []byte("two"), false); err == nil {
		t.Error("expected error for existing output")
	}
	if err := WriteOutput(in, "", "-x.txt", []byte("two"), true); err != nil {
		t.Fatalf("WriteOutput() with overwrite error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "site-x.txt"))
	if err != nil || string(data) != "two" {
		t.Errorf("output = %q, %v", data, err)
	}

	out := t.TempDir()
	if err := WriteOutput(in, out, "-x.txt", nil, false); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(out, "site-x.txt")); err != nil {
		t.Errorf("output not written to outDir: %v", err)
	}
}

func TestDumps(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.css")
	c := newChecker(t, ".a { COLOR: red; _height: 1px; }")

	if err := DumpTree(c, in, "", false); err != nil {
		t.Fatal(err)
	}
	if err := DumpTimings(c, in, "", false); err != nil {
		t.Fatal(err)
	}
	if err := DumpBrowsers(c, in, "", false); err != nil {
		t.Fatal(err)
	}

	tree, _ := os.ReadFile(filepath.Join(dir, "in-dump.txt"))
	if !strings.Contains(string(tree), "stylesheet in.css") {
		t.Errorf("unexpected tree dump:\n%s", tree)
	}
	timings, _ := os.ReadFile(filepath.Join(dir, "in-timings.txt"))
	if !strings.Contains(string(timings), "lowercase-prop") {
		t.Errorf("timings do not mention plugin:\n%s", timings)
	}
	browsers, _ := os.ReadFile(filepath.Join(dir, "in-browsers.txt"))
	if !strings.Contains(string(browsers), "[ie6]\n.a{color:red;_height:1px;}") {
		t.Errorf("unexpected browsers dump:\n%s", browsers)
	}
	if !strings.Contains(string(browsers), "[chrome]\n.a{color:red;}") {
		t.Errorf("unexpected browsers dump:\n%s", browsers)
	}
}
