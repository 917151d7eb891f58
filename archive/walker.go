// Package archive builds Walk abstraction on top of "archive/zip".
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"
)

// MaxEntrySize limits amount of data ReadEntry is willing to decompress.
const MaxEntrySize = 64 << 20

// WalkFunc is called for every stylesheet found in the archive. The archive
// argument is the path passed to Walk, name is the entry name and data its
// decompressed content. If an error is returned, processing stops.
type WalkFunc func(archive, name string, data []byte) error

// IsStyleSheet reports whether entry name looks like a stylesheet which
// should be processed: ".css" extension, not hidden and not starting with
// underscore.
func IsStyleSheet(name string) bool {
	base := path.Base(name)
	if strings.HasPrefix(base, "_") || strings.HasPrefix(base, ".") {
		return false
	}
	return strings.EqualFold(path.Ext(base), ".css")
}

// Walk visits all stylesheets in the archive which start with prefix in
// the order they are stored. Entries with path traversal components ("..")
// or absolute paths make Walk fail before anything is visited.
func Walk(archive, prefix string, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	var files []*zip.File
	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if !f.FileInfo().IsDir() && strings.HasPrefix(name, prefix) && IsStyleSheet(name) {
			files = append(files, f)
		}
	}
	for _, f := range files {
		data, err := ReadEntry(f)
		if err != nil {
			return err
		}
		if err := walkFn(archive, f.Name, data); err != nil {
			return err
		}
	}
	return nil
}

// ReadEntry decompresses a single archive entry.
func ReadEntry(f *zip.File) ([]byte, error) {
	if f.UncompressedSize64 > MaxEntrySize {
		return nil, fmt.Errorf("zip entry %q: too large (%d bytes)", f.Name, f.UncompressedSize64)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("zip entry %q: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, MaxEntrySize+1))
	if err != nil {
		return nil, fmt.Errorf("zip entry %q: %w", f.Name, err)
	}
	if len(data) > MaxEntrySize {
		return nil, fmt.Errorf("zip entry %q: too large", f.Name)
	}
	return data, nil
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
