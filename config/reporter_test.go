package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readArchive(t *testing.T, name string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(name)
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer zr.Close()

	out := make(map[string]string)
	for _, f := range zr.File {
		r, err := f.Open()
		if err != nil {
			t.Fatalf("unable to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			t.Fatalf("unable to read %s: %v", f.Name, err)
		}
		out[f.Name] = string(data)
	}
	return out
}

func TestReport_Archive(t *testing.T) {
	dir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	src := filepath.Join(dir, "a.css")
	if err := os.WriteFile(src, []byte(".a{}"), 0644); err != nil {
		t.Fatal(err)
	}
	r.Store("stored.css", src)
	if err := r.StoreCopy("copy", src); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	r.StoreData("dump.txt", []byte("one"))
	r.StoreData("dump.txt", []byte("two"))
	r.Store("absent", filepath.Join(dir, "no-such-file"))

	// copy must not see later changes
	if err := os.WriteFile(src, []byte(".b{}"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	files := readArchive(t, conf.Destination)
	if files["stored.css"] != ".b{}" {
		t.Errorf("stored.css = %q", files["stored.css"])
	}
	if files["copy"] != ".a{}" {
		t.Errorf("copy = %q", files["copy"])
	}
	if files["dump.txt"] != "one" {
		t.Errorf("dump.txt = %q", files["dump.txt"])
	}
	var versioned int
	for name := range files {
		if strings.HasPrefix(name, "dump.txt-") {
			versioned++
		}
	}
	if versioned != 1 {
		t.Errorf("expected versioned duplicate entry, got %v", files)
	}
	if _, ok := files["absent"]; ok {
		t.Error("absent file must be skipped")
	}
	if !strings.Contains(files["MANIFEST"], "stored.css") {
		t.Errorf("MANIFEST = %q", files["MANIFEST"])
	}
}

func TestReport_CopyDirRemoved(t *testing.T) {
	dir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatal(err)
	}

	src := filepath.Join(dir, "styles")
	if err := os.MkdirAll(filepath.Join(src, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "sub", "b.css"), []byte("b"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := r.StoreCopy("sources", src); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	tmp := r.entries["sources"].tempDir

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := os.Stat(tmp); !os.IsNotExist(err) {
		t.Errorf("temporary copy %s still exists", tmp)
	}
	if got := readArchive(t, conf.Destination)["sources/sub/b.css"]; got != "b" {
		t.Errorf("sources/sub/b.css = %q", got)
	}
}

func TestReport_StorePanicsOnOverwrite(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("x", "/a")
	r.Store("x", "/a")
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	r.Store("x", "/b")
}

func TestReport_Nil(t *testing.T) {
	var r *Report
	r.Store("a", "b")
	r.StoreData("a", nil)
	if err := r.StoreCopy("a", "b"); err != nil {
		t.Errorf("StoreCopy on nil report error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
	if r.Name() != "" {
		t.Error("nil report has no name")
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}

func TestCleanFileName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"a.css", "a.css"},
		{"dir/sub/a.css", "dir_sub_a.css"},
		{"./a.css", "a.css"},
		{"", "_bad_file_name_"},
	}
	for _, tt := range tests {
		if got := CleanFileName(tt.in); got != tt.want {
			t.Errorf("CleanFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
