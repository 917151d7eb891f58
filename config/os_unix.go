//go:build !windows

package config

import (
	"os"

	"golang.org/x/term"
)

// forbiddenChars cannot appear in file names besides path separators.
const forbiddenChars = "\x00"

// EnableColorOutput checks if colorized output is possible.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
