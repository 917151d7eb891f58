package plugins

import (
	"strings"

	"ckstyle/entity"
	"ckstyle/ledger"
	"ckstyle/plugin"
)

// NoImport reports @import statements, they serialize stylesheet
// downloads.
type NoImport struct{}

func (NoImport) Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		ID:      "no-import",
		Level:   ledger.Error,
		Message: "@import should not be used",
	}
}

func (NoImport) CheckExtra(g *entity.RuleGroup, _ *plugin.Options) plugin.Result {
	return plugin.Bool(!strings.EqualFold(g.StrippedSelector, "@import"))
}

// LowercaseAtKeyword wants at-keywords in lower case.
type LowercaseAtKeyword struct{}

func (LowercaseAtKeyword) Descriptor() plugin.Descriptor {
	return plugin.Descriptor{
		ID:      "lowercase-at-keyword",
		Level:   ledger.Info,
		Message: "at-keyword ${selector} should be lower case",
	}
}

func (LowercaseAtKeyword) CheckExtra(g *entity.RuleGroup, _ *plugin.Options) plugin.Result {
	return plugin.Bool(g.StrippedSelector == strings.ToLower(g.StrippedSelector))
}

func (LowercaseAtKeyword) FixExtra(g *entity.RuleGroup, _ *plugin.Options) {
	keyword := g.StrippedSelector
	if rest, ok := strings.CutPrefix(g.FixedStatement(), keyword); ok {
		g.SetFixedStatement(strings.ToLower(keyword) + rest)
		g.SetFixedSelector(strings.ToLower(keyword))
	}
}
