package css

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

var ErrUnknownCharset = errors.New("unknown charset")

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
	charsetRe = regexp.MustCompile(`^\s*@charset\s+["']([^"']+)["']\s*;`)
)

// Decode converts data to UTF-8 honoring byte order mark or a leading
// @charset rule, BOM wins. Returned encoding is nil for UTF-8 input and can be
// used to encode results back. On error data is returned unchanged.
func Decode(data []byte) ([]byte, encoding.Encoding, error) {
	var enc encoding.Encoding
	switch {
	case bytes.HasPrefix(data, utf16LEBOM):
		enc = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case bytes.HasPrefix(data, utf16BEBOM):
		enc = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	}
	if enc != nil {
		out, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return data, nil, fmt.Errorf("unable to decode UTF-16: %w", err)
		}
		return out, enc, nil
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	m := charsetRe.FindSubmatch(data)
	if m == nil {
		return data, nil, nil
	}
	name := strings.ToLower(string(m[1]))
	if name == "utf-8" || name == "utf8" {
		return data, nil, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return data, nil, fmt.Errorf("%w: %q", ErrUnknownCharset, m[1])
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return data, nil, fmt.Errorf("unable to decode %q: %w", m[1], err)
	}
	return out, enc, nil
}

// Encode converts text produced from a decoded source back to its charset.
func Encode(text string, enc encoding.Encoding) ([]byte, error) {
	if enc == nil {
		return []byte(text), nil
	}
	out, err := enc.NewEncoder().String(text)
	if err != nil {
		return nil, fmt.Errorf("unable to encode result: %w", err)
	}
	return []byte(out), nil
}
