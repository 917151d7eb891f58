package plugins

import (
	"regexp"
	"strings"

	"ckstyle/browser"
	"ckstyle/entity"
	"ckstyle/ledger"
	"ckstyle/plugin"
)

// IEHack marks declarations using IE-only syntax so compression can drop
// them for other browsers.
type IEHack struct{}

func (IEHack) Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		ID:      "ie-hack",
		Type:    plugin.CategoryRule,
		Order:   1,
		Always:  true,
		Level:   ledger.Info,
		Message: "${name} uses IE hack in ${selector}",
	}
}

func hackMask(d *entity.Declaration) browser.Mask {
	switch {
	case strings.HasPrefix(d.Name, "_"):
		return browser.IE6
	case strings.HasPrefix(d.Name, "*"):
		return browser.IE6 | browser.IE7
	case strings.HasSuffix(d.Value, `\9`):
		return browser.ALLIE
	}
	return browser.ALL
}

func (IEHack) CheckRule(d *entity.Declaration, _ *plugin.Options) plugin.Result {
	return plugin.Bool(hackMask(d) == browser.ALL)
}

func (IEHack) FixRule(d *entity.Declaration, _ *plugin.Options) {
	d.Browser = hackMask(d)
}

// LowercaseProp wants property names in lower case.
type LowercaseProp struct{}

func (LowercaseProp) Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		ID:      "lowercase-prop",
		Type:    plugin.CategoryRule,
		Level:   ledger.Warning,
		Message: `property "${name}" should be lower case in ${selector}`,
	}
}

func (LowercaseProp) CheckRule(d *entity.Declaration, _ *plugin.Options) plugin.Result {
	return plugin.Bool(d.StrippedName == strings.ToLower(d.StrippedName))
}

func (LowercaseProp) FixRule(d *entity.Declaration, _ *plugin.Options) {
	d.SetFixedName(strings.ToLower(d.FixedName()))
}

var hexColor = regexp.MustCompile(`#[0-9a-fA-F]{3,8}\b`)

// LowercaseHex wants hex colors in lower case.
type LowercaseHex struct{}

func (LowercaseHex) Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		ID:      "lowercase-hex",
		Type:    plugin.CategoryRule,
		Level:   ledger.Warning,
		Message: `hex color in "${name}: ${value}" should be lower case`,
	}
}

func (LowercaseHex) CheckRule(d *entity.Declaration, _ *plugin.Options) plugin.Result {
	for _, m := range hexColor.FindAllString(d.StrippedValue, -1) {
		if m != strings.ToLower(m) {
			return plugin.Fail()
		}
	}
	return plugin.Pass()
}

func (LowercaseHex) FixRule(d *entity.Declaration, _ *plugin.Options) {
	d.SetFixedValue(hexColor.ReplaceAllStringFunc(d.FixedValue(), strings.ToLower))
}

var zeroWithUnit = regexp.MustCompile(`(^|[\s,(/])([-+]?)0*\.?0+(px|em|ex|pt|pc|in|cm|mm|rem|vw|vh|vmin|vmax|ch)\b`)

// NoUnitAfterZero reports lengths like "0px".
type NoUnitAfterZero struct{}

func (NoUnitAfterZero) Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		ID:      "no-unit-after-zero",
		Type:    plugin.CategoryRule,
		Level:   ledger.Error,
		Message: `unit after zero in "${name}: ${value}"`,
	}
}

func (NoUnitAfterZero) CheckRule(d *entity.Declaration, _ *plugin.Options) plugin.Result {
	return plugin.Bool(!zeroWithUnit.MatchString(d.StrippedValue))
}

func (NoUnitAfterZero) FixRule(d *entity.Declaration, _ *plugin.Options) {
	d.SetFixedValue(zeroWithUnit.ReplaceAllString(d.FixedValue(), "${1}0"))
}
