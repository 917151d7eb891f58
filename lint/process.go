package lint

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aymanbagabas/go-udiff"
	"github.com/dchest/cssmin"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"ckstyle/config"
	"ckstyle/css"
	"ckstyle/engine"
	"ckstyle/plugin"
)

// processFile runs single stylesheet through the engine. "name" is what
// findings are reported against, "path" is the file on disk and is empty for
// archive entries which could only be checked.
func (r *runner) processFile(ctx context.Context, name, path string, data []byte) (rerr error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	log := r.log.With(zap.String("file", name))
	r.files++

	log.Debug("Stylesheet processing starting")
	defer func(start time.Time) {
		// misbehaving plugin must not stop processing of other files
		if rec := recover(); rec != nil {
			log.Error("Stylesheet processing ended with panic",
				zap.Any("panic", rec), zap.Duration("elapsed", time.Since(start)), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("processing panic (%s): %v", name, rec)
		} else {
			log.Debug("Stylesheet processing completed", zap.Duration("elapsed", time.Since(start)))
		}
	}(time.Now())

	text, enc := r.decode(data, log)

	if len(path) > 0 && r.op != plugin.OperationCheck {
		if err := r.env.Rpt.StoreCopy(reportName("sources", name, ""), path); err != nil {
			log.Warn("Unable to store source in debug report", zap.Error(err))
		}
	}

	sheet := css.NewParser(log).Parse(text, name)
	opts := r.fresh()
	reg, err := r.env.Registry(opts)
	if err != nil {
		return fmt.Errorf("unable to prepare plugins: %w", err)
	}
	c := engine.New(sheet, reg, opts, log)
	defer func() {
		r.env.Rpt.StoreData(reportName("sheets", name, ".txt"), []byte(sheet.Dump()))
	}()

	var result string
	switch r.op {
	case plugin.OperationCheck:
		l := c.Check()
		if l.HasErrors() {
			r.problems++
		}
		return r.report(l.Report(name))
	case plugin.OperationFix:
		result = c.Fix()
	case plugin.OperationFormat:
		result = c.Format()
	case plugin.OperationCompress:
		result = c.Compress(r.mask)
		if r.minify {
			result = string(cssmin.Minify([]byte(result)))
		}
		log.Debug("Stylesheet compressed",
			zap.String("from", humanize.Bytes(uint64(len(text)))), zap.String("to", humanize.Bytes(uint64(len(result)))))
	default:
		return fmt.Errorf("unsupported operation %q", r.op)
	}
	if n := len(c.Ledger().Failures()); n > 0 {
		log.Warn("Some plugins failed, result may be incomplete", zap.Int("failures", n))
	}
	return r.write(name, path, data, string(text), result, enc, log)
}

// decode honors @charset rule, sources without one which are not valid UTF-8
// are decoded with forced code page if any.
func (r *runner) decode(data []byte, log *zap.Logger) ([]byte, encoding.Encoding) {
	text, enc, err := css.Decode(data)
	if err != nil {
		log.Warn("Unable to honor @charset, using source as is", zap.Error(err))
		return text, nil
	}
	if enc == nil && r.env.CodePage != nil && !utf8.Valid(text) {
		out, err := r.env.CodePage.NewDecoder().Bytes(text)
		if err != nil {
			log.Warn("Unable to decode source with forced charset, using source as is", zap.Error(err))
			return text, nil
		}
		return out, r.env.CodePage
	}
	return text, enc
}

// write outputs result: diff or full text to the program output, otherwise
// to the file next to the source or instead of it (keeping backup).
func (r *runner) write(name, src string, original []byte, text, result string, enc encoding.Encoding, log *zap.Logger) error {
	switch {
	case r.diff:
		label := name
		if len(r.ext) > 0 {
			label = replaceExt(name, r.ext)
		}
		if _, err := fmt.Fprint(r.out, udiff.Unified(name, label, text, result)); err != nil {
			return fmt.Errorf("unable to write diff: %w", err)
		}
		return nil
	case r.print:
		if _, err := fmt.Fprintln(r.out, result); err != nil {
			return fmt.Errorf("unable to write result: %w", err)
		}
		return nil
	case len(src) == 0:
		return fmt.Errorf("unable to %s (%s): no file to write result to", r.op, name)
	}

	data, err := css.Encode(result, enc)
	if err != nil {
		return err
	}

	mode := os.FileMode(0644)
	if fi, err := os.Stat(src); err == nil {
		mode = fi.Mode().Perm()
	}

	dst := src
	if len(r.ext) > 0 {
		dst = replaceExt(src, r.ext)
	} else if !r.noBackup {
		if err := os.WriteFile(src+".bak", original, mode); err != nil {
			return fmt.Errorf("unable to write backup: %w", err)
		}
	}
	if err := os.WriteFile(dst, data, mode); err != nil {
		return fmt.Errorf("unable to write result: %w", err)
	}
	log.Info("Stylesheet written", zap.String("to", dst),
		zap.String("size", humanize.Bytes(uint64(len(data)))), zap.String("was", humanize.Bytes(uint64(len(original)))))
	return nil
}

func replaceExt(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}

func reportName(dir, name, ext string) string {
	return path.Join(dir, config.CleanFileName(name)+ext)
}
