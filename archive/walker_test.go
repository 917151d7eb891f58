package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type entry struct {
	name    string
	content string
}

func makeZip(t *testing.T, files ...entry) string {
	t.Helper()

	zipPath := filepath.Join(t.TempDir(), "test.zip")
	zipFile, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer zipFile.Close()

	w := zip.NewWriter(zipFile)
	for _, f := range files {
		if f.name[len(f.name)-1] == '/' {
			hdr := &zip.FileHeader{Name: f.name}
			hdr.SetMode(os.ModeDir | 0755)
			if _, err := w.CreateHeader(hdr); err != nil {
				t.Fatalf("Failed to create directory %s: %v", f.name, err)
			}
			continue
		}
		fw, err := w.Create(f.name)
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", f.name, err)
		}
		if _, err := fw.Write([]byte(f.content)); err != nil {
			t.Fatalf("Failed to write content for %s: %v", f.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return zipPath
}

func TestWalk(t *testing.T) {
	zipPath := makeZip(t,
		entry{"css/", ""},
		entry{"css/site.css", ".a{color:red}"},
		entry{"css/_partial.css", ".b{}"},
		entry{"css/PRINT.CSS", ".c{}"},
		entry{"js/app.js", "var a"},
		entry{"root.css", "p{}"},
	)

	t.Run("all stylesheets", func(t *testing.T) {
		var visited []string
		err := Walk(zipPath, "", func(archive, name string, data []byte) error {
			if archive != zipPath {
				t.Errorf("archive = %s, want %s", archive, zipPath)
			}
			visited = append(visited, name)
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		want := []string{"css/site.css", "css/PRINT.CSS", "root.css"}
		if len(visited) != len(want) {
			t.Fatalf("visited %v, want %v", visited, want)
		}
		for i := range want {
			if visited[i] != want[i] {
				t.Errorf("visited[%d] = %s, want %s", i, visited[i], want[i])
			}
		}
	})

	t.Run("prefix", func(t *testing.T) {
		var visited []string
		err := Walk(zipPath, "css/", func(_, name string, _ []byte) error {
			visited = append(visited, name)
			return nil
		})
		if err != nil {
			t.Errorf("Walk() error = %v", err)
		}
		if len(visited) != 2 {
			t.Errorf("visited %v, want 2 files", visited)
		}
	})

	t.Run("content", func(t *testing.T) {
		err := Walk(zipPath, "css/site", func(_, _ string, data []byte) error {
			if string(data) != ".a{color:red}" {
				t.Errorf("content = %q", data)
			}
			return nil
		})
		if err != nil {
			t.Errorf("Walk() error = %v", err)
		}
	})

	t.Run("walkFn returns error", func(t *testing.T) {
		stop := errors.New("stop walking")
		var visited int
		err := Walk(zipPath, "", func(_, _ string, _ []byte) error {
			visited++
			return stop
		})
		if !errors.Is(err, stop) {
			t.Errorf("Walk() error = %v, want %v", err, stop)
		}
		if visited != 1 {
			t.Errorf("visited %d files, want 1", visited)
		}
	})
}

func TestWalk_UnsafePath(t *testing.T) {
	zipPath := makeZip(t,
		entry{"ok.css", "a{}"},
		entry{"../evil.css", "a{}"},
	)
	var visited int
	err := Walk(zipPath, "", func(_, _ string, _ []byte) error {
		visited++
		return nil
	})
	if err == nil {
		t.Error("expected error for unsafe entry")
	}
	if visited != 0 {
		t.Errorf("visited %d files before failing, want 0", visited)
	}
}

func TestWalk_InvalidArchive(t *testing.T) {
	t.Run("nonexistent file", func(t *testing.T) {
		if err := Walk("/nonexistent/file.zip", "", nil); err == nil {
			t.Error("Expected error for nonexistent file")
		}
	})

	t.Run("invalid zip file", func(t *testing.T) {
		invalidZip := filepath.Join(t.TempDir(), "invalid.zip")
		if err := os.WriteFile(invalidZip, []byte("not a zip file"), 0644); err != nil {
			t.Fatalf("Failed to create invalid zip: %v", err)
		}
		if err := Walk(invalidZip, "", nil); err == nil {
			t.Error("Expected error for invalid zip file")
		}
	})
}

func TestIsStyleSheet(t *testing.T) {
	tests := map[string]bool{
		"a.css":          true,
		"dir/b.CSS":      true,
		"dir/_c.css":     false,
		".hidden.css":    false,
		"style.css.map":  false,
		"dir/":           false,
		"scss/main.scss": false,
	}
	for name, want := range tests {
		if got := IsStyleSheet(name); got != want {
			t.Errorf("IsStyleSheet(%q) = %v, want %v", name, got, want)
		}
	}
}
