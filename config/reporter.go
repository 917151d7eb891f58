package config

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/maruel/natural"

	"ckstyle/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates initialized empty report.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	r := &Report{entries: make(map[string]entry)}

	f, err := os.Create(conf.Destination)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err != nil {
			return nil, fmt.Errorf("unable to create report: %w", err)
		}
	}
	r.file = f
	return r, nil
}

// entry is either a path to be archived when report is closed or data
// captured at the time of the call.
type entry struct {
	original string
	actual   string
	stamp    time.Time
	data     []byte
	inline   bool
	// tempDir holds copies made by StoreCopy
	tempDir string
}

// Report accumulates information necessary to prepare debug archive. All
// methods are no-op on nil report, so callers do not have to check whether
// report was requested. Not safe for concurrent use.
type Report struct {
	entries map[string]entry
	file    *os.File
}

// Close writes the archive and removes temporary copies.
func (r *Report) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	defer r.file.Close()
	defer r.cleanup()
	return r.finalize()
}

// Name returns name of underlying file.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// uniqueName versions name when it is already taken.
func (r *Report) uniqueName(name string, stamp time.Time) string {
	if _, exists := r.entries[name]; !exists {
		return name
	}
	return fmt.Sprintf("%s-%d", name, stamp.UnixNano())
}

// Store remembers path to file or directory to be archived on Close.
// Storing the same name for a different path is a programming error.
func (r *Report) Store(name, path string) {
	if r == nil {
		return
	}
	if old, exists := r.entries[name]; exists && old.original != path {
		panic(fmt.Sprintf("attempt to overwrite report entry [%s]: was %s, now %s", name, old.original, path))
	}
	e := entry{original: path, actual: path}
	if p, err := filepath.Abs(path); err == nil {
		e.actual = p
	}
	r.entries[name] = e
}

// StoreData saves data to be archived under name.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	e := entry{data: data, stamp: time.Now(), inline: true}
	r.entries[r.uniqueName(name, e.stamp)] = e
}

// StoreCopy copies file or directory into temporary location right away
// so later modifications of path do not affect the report.
func (r *Report) StoreCopy(name, path string) error {
	if r == nil {
		return nil
	}

	e := entry{stamp: time.Now(), original: path}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return err
	}

	dir, err := os.MkdirTemp("", misc.GetAppName()+"-r-")
	if err != nil {
		return err
	}
	e.tempDir = dir
	switch {
	case info.Mode().IsRegular():
		e.actual, err = copyFile(dir, absPath, info.ModTime())
	case info.Mode().IsDir():
		e.actual = dir
		err = copyDir(dir, absPath)
	default:
		err = fmt.Errorf("unsupported file mode for report: %s", path)
	}
	if err != nil {
		os.RemoveAll(dir)
		return err
	}
	r.entries[r.uniqueName(name, e.stamp)] = e
	return nil
}

func (r *Report) cleanup() {
	for _, e := range r.entries {
		if e.tempDir != "" {
			os.RemoveAll(e.tempDir)
		}
	}
}

func copyFile(dir, src string, modTime time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	dst := filepath.Join(dir, filepath.Base(src))

	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return dst, os.Chtimes(dst, modTime, modTime)
}

func copyDir(dir, src string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			// ignore links, sockets, etc.
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		_, err = copyFile(filepath.Dir(filepath.Join(dir, rel)), path, info.ModTime())
		return err
	})
}

// names returns entry names in natural order.
func (r *Report) names() []string {
	names := make([]string, 0, len(r.entries))
	for k := range r.entries {
		names = append(names, k)
	}
	slices.SortFunc(names, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})
	return names
}

func (r *Report) manifest(names []string, now time.Time) *bytes.Buffer {
	buf := new(bytes.Buffer)
	for _, k := range names {
		e := r.entries[k]
		stamp := e.stamp
		if stamp.IsZero() {
			stamp = now
		}
		if e.inline {
			fmt.Fprintf(buf, "%s\t%s\t(%d bytes)\n", stamp.UTC().Format(time.UnixDate), k, len(e.data))
			continue
		}
		fmt.Fprintf(buf, "%s\t%s\t%s : %s\n", stamp.UTC().Format(time.UnixDate), k, e.original, e.actual)
	}
	return buf
}

// finalize creates the archive with all previously stored items. Absent
// files are skipped.
func (r *Report) finalize() error {
	arc := zip.NewWriter(r.file)

	now := time.Now()
	names := r.names()
	if err := saveFile(arc, "MANIFEST", now, r.manifest(names, now)); err != nil {
		arc.Close()
		return err
	}

	for _, name := range names {
		e := r.entries[name]
		if e.inline {
			if err := saveFile(arc, name, e.stamp, bytes.NewReader(e.data)); err != nil {
				arc.Close()
				return err
			}
			continue
		}
		info, err := os.Stat(e.actual)
		if err != nil {
			continue
		}
		if info.Mode().IsDir() {
			err = saveDir(arc, name, e.actual)
		} else if info.Mode().IsRegular() {
			err = saveFilePath(arc, name, e.actual, info.ModTime())
		}
		if err != nil {
			arc.Close()
			return err
		}
	}
	return arc.Close()
}

func saveFile(dst *zip.Writer, name string, t time.Time, src io.Reader) error {
	w, err := dst.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: t})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}

func saveFilePath(dst *zip.Writer, name, path string, t time.Time) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return saveFile(dst, name, t, f)
}

func saveDir(dst *zip.Writer, name, dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		return saveFilePath(dst, filepath.ToSlash(filepath.Join(name, rel)), path, info.ModTime())
	})
}
