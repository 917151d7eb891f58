package config

import (
	"os"
	"path/filepath"
	"strings"
)

// CleanFileName turns path into a flat name usable as a debug report entry.
func CleanFileName(in string) string {
	in = filepath.ToSlash(filepath.Clean(in))
	out := strings.Map(func(sym rune) rune {
		switch {
		case sym == '/' || sym == os.PathListSeparator:
			return '_'
		case strings.ContainsRune(forbiddenChars, sym):
			return -1
		}
		return sym
	}, in)
	out = strings.TrimLeft(out, "._")
	if len(out) == 0 {
		out = "_bad_file_name_"
	}
	return out
}
