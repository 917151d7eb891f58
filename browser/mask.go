// Package browser defines the bitmask used to tag declarations with the
// browsers they apply to.
package browser

import (
	"errors"
	"fmt"
	"strings"
)

// Mask is a set of browsers, one bit per engine or legacy IE version.
//
//	STD | CHROME | FIREFOX | SAFARI | OPERA | IE9PLUS | IE8 | IE7 | IE6
type Mask uint16

const (
	IE6 Mask = 1 << iota
	IE7
	IE8
	IE9PLUS
	OPERA
	SAFARI
	FIREFOX
	CHROME
	STD
)

const (
	NONE Mask = 0

	WEBKIT = CHROME | SAFARI
	NONEIE = CHROME | FIREFOX | SAFARI | OPERA
	ALLIE  = IE6 | IE7 | IE8 | IE9PLUS

	NOIE678 = IE9PLUS | NONEIE
	NOIE67  = IE8 | NOIE678
	NOIE6   = IE7 | NOIE67

	ALL = STD | NONEIE | ALLIE
)

// ErrUnknownBrowser is returned by Parse for names it does not know.
var ErrUnknownBrowser = errors.New("unknown browser")

// primitive bits in display order
var bitNames = []struct {
	bit  Mask
	name string
}{
	{STD, "std"},
	{CHROME, "chrome"},
	{FIREFOX, "firefox"},
	{SAFARI, "safari"},
	{OPERA, "opera"},
	{IE9PLUS, "ie9plus"},
	{IE8, "ie8"},
	{IE7, "ie7"},
	{IE6, "ie6"},
}

var names = map[string]Mask{
	"none":    NONE,
	"all":     ALL,
	"webkit":  WEBKIT,
	"noneie":  NONEIE,
	"allie":   ALLIE,
	"noie6":   NOIE6,
	"noie67":  NOIE67,
	"noie678": NOIE678,
}

func init() {
	for _, b := range bitNames {
		names[b.name] = b.bit
	}
}

// Contains reports whether m and flag share at least one browser.
func (m Mask) Contains(flag Mask) bool {
	return m&flag != 0
}

// Union returns the set of browsers present in either mask.
func (m Mask) Union(other Mask) Mask {
	return m | other
}

// String lists primitive browsers present in the mask.
func (m Mask) String() string {
	switch m {
	case NONE:
		return "none"
	case ALL:
		return "all"
	}
	parts := make([]string, 0, len(bitNames))
	for _, b := range bitNames {
		if m&b.bit != 0 {
			parts = append(parts, b.name)
		}
	}
	return strings.Join(parts, ",")
}

// Parse converts comma separated browser names into a mask. Empty input
// means all browsers.
func Parse(s string) (Mask, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ALL, nil
	}
	var m Mask
	for part := range strings.SplitSeq(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		bit, ok := names[part]
		if !ok {
			return NONE, fmt.Errorf("%w: %q", ErrUnknownBrowser, part)
		}
		m |= bit
	}
	return m, nil
}
