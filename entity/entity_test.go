package entity

import (
	"strings"
	"testing"

	"ckstyle/browser"
	"ckstyle/ledger"
)

func TestDeclaration_Representations(t *testing.T) {
	d := NewDeclaration("  Color ", "  Red  ")
	if d.RoughName != "  Color " || d.RoughValue != "  Red  " {
		t.Errorf("rough pair changed: %q %q", d.RoughName, d.RoughValue)
	}
	if d.Name != "color" || d.Value != "Red" {
		t.Errorf("normalized = %q %q", d.Name, d.Value)
	}
	if d.StrippedName != "Color" || d.StrippedValue != "Red" {
		t.Errorf("stripped = %q %q", d.StrippedName, d.StrippedValue)
	}
	if d.Browser != browser.ALL {
		t.Errorf("default browser = %v", d.Browser)
	}
	if d.Staged() || d.FixedName() != "" || d.FixedValue() != "" {
		t.Error("new declaration must not be staged")
	}
}

func TestDeclaration_StageAndRebase(t *testing.T) {
	d := NewDeclaration("COLOR", "RED")
	d.SetFixedName(strings.ToLower(d.FixedName()))
	if d.FixedName() != "color" {
		t.Errorf("first fixer must see stripped name, got %q", d.FixedName())
	}
	if d.FixedValue() != "RED" {
		t.Errorf("staging must initialize value too, got %q", d.FixedValue())
	}

	// second fixer layers on top
	d.Stage()
	d.SetFixedValue(strings.ToLower(d.FixedValue()))
	if d.FixedName() != "color" || d.FixedValue() != "red" {
		t.Errorf("fixed = %q %q", d.FixedName(), d.FixedValue())
	}

	d.Browser = browser.IE6
	d.Rebase()
	if d.Staged() || d.FixedName() != "" || d.FixedValue() != "" {
		t.Error("rebase must clear staged pair")
	}
	if d.Browser != browser.ALL {
		t.Error("rebase must restore browser mask")
	}
}

func TestDeclaration_EmptyFixIsLegal(t *testing.T) {
	d := NewDeclaration("content", "'x'")
	d.SetFixedValue("")
	if !d.Staged() {
		t.Fatal("expected staged")
	}
	if got := d.Fixed(); got != "content: ;" {
		t.Errorf("Fixed() = %q", got)
	}
}

func TestDeclaration_Reset(t *testing.T) {
	d := NewDeclaration(" _width ", " 1px ")
	d.Reset("width", "2px")
	for _, s := range []string{d.RoughName, d.Name, d.StrippedName, d.FixedName()} {
		if s != "width" {
			t.Errorf("name representation = %q", s)
		}
	}
	for _, s := range []string{d.RoughValue, d.Value, d.StrippedValue, d.FixedValue()} {
		if s != "2px" {
			t.Errorf("value representation = %q", s)
		}
	}
}

func TestDeclaration_Render(t *testing.T) {
	d := NewDeclaration(" font-family ", " Arial ,  sans-serif ")
	if got := d.Fixed(); got != "font-family: Arial, sans-serif;" {
		t.Errorf("Fixed() = %q", got)
	}
	if got := d.Compressed(browser.ALL); got != "font-family:Arial,sans-serif;" {
		t.Errorf("Compressed() = %q", got)
	}

	d.Browser = browser.IE6
	if got := d.Compressed(browser.NONEIE); got != "" {
		t.Errorf("IE6 declaration rendered for NONEIE: %q", got)
	}
	if got := d.Compressed(browser.IE6 | browser.IE7); got == "" {
		t.Error("IE6 declaration dropped for IE6 target")
	}
	if got := d.Fixed(); got == "" {
		t.Error("Fixed() must ignore browser mask")
	}
}

func TestRuleGroup(t *testing.T) {
	sheet := NewStyleSheet("a.css")
	g := sheet.NewRuleGroup(" .a ,  .b ", "/* c */")
	color := g.Add("color", " red ")
	g.Add("width", "0px")

	if g.Selector != ".a,.b" {
		t.Errorf("Selector = %q", g.Selector)
	}
	if color.Group() != g || color.Selector() != ".a,.b" {
		t.Error("back reference not wired")
	}
	if g.File() != "a.css" {
		t.Errorf("File() = %q", g.File())
	}

	want := "/* c */\n.a, .b {\n    color: red;\n    width: 0px;\n}"
	if got := g.Fixed(); got != want {
		t.Errorf("Fixed() = %q, want %q", got, want)
	}
	if got := g.Compressed(browser.ALL); got != ".a,.b{color:red;width:0px;}" {
		t.Errorf("Compressed() = %q", got)
	}

	color.Browser = browser.IE6
	g.Declarations()[1].Browser = browser.IE6
	if got := g.Compressed(browser.NONEIE); got != "" {
		t.Errorf("group without surviving declarations = %q", got)
	}

	if !g.Remove(color) || g.Len() != 1 || color.Group() != nil {
		t.Error("Remove() did not detach declaration")
	}
	if g.Remove(color) {
		t.Error("second Remove() must fail")
	}
}

func TestRuleGroup_StageAndRebase(t *testing.T) {
	g := NewRuleGroup(" .a ", " /* x */ ")
	g.Add("color", "red").Stage()
	g.SetFixedSelector(".b")
	if g.FixedComment() != "/* x */" {
		t.Errorf("FixedComment() = %q", g.FixedComment())
	}
	if !strings.HasPrefix(g.Fixed(), "/* x */\n.b {") {
		t.Errorf("Fixed() = %q", g.Fixed())
	}
	g.Rebase()
	if g.Staged() || g.FixedSelector() != "" || g.Declarations()[0].Staged() {
		t.Error("rebase must be recursive")
	}
}

func TestExtraGroup(t *testing.T) {
	g := NewExtra("@import", `@import  url("a.css") ;`, "")
	if !g.Extra {
		t.Fatal("expected extra")
	}
	if got := g.Compressed(browser.ALL); got != `@import url("a.css");` {
		t.Errorf("Compressed() = %q", got)
	}
	if got := g.Fixed(); got != `@import  url("a.css") ;` {
		t.Errorf("Fixed() = %q", got)
	}
	g.SetFixedStatement(`@import url("b.css");`)
	if got := g.Fixed(); got != `@import url("b.css");` {
		t.Errorf("Fixed() after fix = %q", got)
	}
}

func TestStyleSheet(t *testing.T) {
	sheet := NewStyleSheet("x.css")
	if sheet.Fixed() != "" || sheet.Compressed(browser.ALL) != "" {
		t.Error("empty sheet must render empty")
	}
	sheet.AddError(ledger.Warning, "odd")
	a := sheet.NewRuleGroup(".a", "")
	a.Add("color", "red")
	b := sheet.NewRuleGroup(".b", "")
	b.Add("color", "blue")

	if got := sheet.Fixed(); got != ".a {\n    color: red;\n}\n\n.b {\n    color: blue;\n}" {
		t.Errorf("Fixed() = %q", got)
	}
	if got := sheet.Compressed(browser.ALL); got != ".a{color:red;}.b{color:blue;}" {
		t.Errorf("Compressed() = %q", got)
	}

	a.Declarations()[0].Stage()
	b.Stage()
	sheet.Rebase()
	if a.Declarations()[0].Staged() || b.Staged() {
		t.Error("sheet rebase must reach every entity")
	}

	if !sheet.Remove(a) || sheet.Len() != 1 || a.Sheet() != nil {
		t.Error("Remove() failed")
	}

	dump := sheet.Dump()
	if !strings.Contains(dump, "stylesheet x.css") || !strings.Contains(dump, "parse warning: odd") {
		t.Errorf("Dump() = %s", dump)
	}
}
