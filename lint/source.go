package lint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/h2non/filetype"
	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"ckstyle/archive"
	"ckstyle/plugin"
)

// process determines the source type (directory, archive or single file) by
// looking at path heads and handles it accordingly. Path may continue inside
// an archive: "styles.zip/css/site.css".
func (r *runner) process(ctx context.Context, src string) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			return r.processDir(ctx, head)
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			if r.op != plugin.OperationCheck {
				return fmt.Errorf("unable to %s (%s): archives could only be checked", r.op, head)
			}
			// we need to look inside to see if path makes sense
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			if err := r.processArchive(ctx, head, filepath.ToSlash(tail)); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			return nil
		}

		if len(tail) != 0 {
			return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}
		return r.processPath(ctx, head, filepath.Base(head))
	}
	return fmt.Errorf("input source was not found (%s)", src)
}

// processDir finds stylesheets in the directory, subdirectories are visited
// only when recursion was requested. Files are processed in natural order.
func (r *runner) processDir(ctx context.Context, dir string) (err error) {
	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			r.log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.IsDir() {
			if path != dir && !r.recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !archive.IsStyleSheet(filepath.ToSlash(path)) {
			r.log.Debug("Skipping file, not recognized as stylesheet", zap.String("file", path))
			return nil
		}
		if r.op != plugin.OperationCheck && len(r.ext) > 0 && strings.HasSuffix(path, r.ext) {
			// our own output
			r.log.Debug("Skipping file, produced by previous run", zap.String("file", path))
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return err
	}
	if len(files) == 0 {
		r.log.Debug("Nothing to process", zap.String("dir", dir))
		return nil
	}

	slices.SortFunc(files, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})
	for _, path := range files {
		if er := ctx.Err(); er != nil {
			return multierr.Append(err, er)
		}
		name, er := filepath.Rel(dir, path)
		if er != nil {
			name = path
		}
		err = multierr.Append(err, r.processPath(ctx, path, name))
	}
	return err
}

// processArchive checks all stylesheets inside archive under "pathIn".
func (r *runner) processArchive(ctx context.Context, path, pathIn string) (err error) {
	count := 0
	var failed error
	err = archive.Walk(path, pathIn, func(arc, name string, data []byte) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		count++
		if err := r.processFile(ctx, filepath.Join(filepath.Base(arc), name), "", data); err != nil {
			r.log.Error("Unable to process file in archive",
				zap.String("archive", arc), zap.String("file", name), zap.Error(err))
			failed = multierr.Append(failed, err)
		}
		return nil
	})
	if err == nil && count == 0 {
		r.log.Debug("Nothing to process", zap.String("archive", path), zap.String("path", pathIn))
	}
	return multierr.Append(err, failed)
}

func (r *runner) processPath(ctx context.Context, path, name string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read stylesheet: %w", err)
	}
	return r.processFile(ctx, name, path, data)
}

// isArchiveFile reports whether file has zip extension and zip signature.
func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	// 262 bytes is enough for any filetype matcher
	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	return filetype.Is(head[:n], "zip"), nil
}
