package css_test

import (
	"errors"
	"testing"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"ckstyle/css"
)

func TestDecode_UTF8(t *testing.T) {
	in := []byte("\xEF\xBB\xBF@charset \"UTF-8\";\n.a{content:\"ю\"}")
	out, enc, err := css.Decode(in)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if enc != nil {
		t.Error("UTF-8 input must not report an encoding")
	}
	if string(out) != "@charset \"UTF-8\";\n.a{content:\"ю\"}" {
		t.Errorf("BOM not stripped: %q", out)
	}
}

func TestDecode_NoCharset(t *testing.T) {
	out, enc, err := css.Decode([]byte(".a{}"))
	if err != nil || enc != nil || string(out) != ".a{}" {
		t.Errorf("Decode() = %q, %v, %v", out, enc, err)
	}
}

func TestDecode_Legacy(t *testing.T) {
	src, err := charmap.Windows1251.NewEncoder().String("@charset \"windows-1251\";\n.a{content:\"привет\"}")
	if err != nil {
		t.Fatal(err)
	}
	out, enc, err := css.Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if enc == nil {
		t.Fatal("expected encoding")
	}
	if string(out) != "@charset \"windows-1251\";\n.a{content:\"привет\"}" {
		t.Errorf("decoded = %q", out)
	}

	back, err := css.Encode(string(out), enc)
	if err != nil {
		t.Fatal(err)
	}
	if string(back) != src {
		t.Error("Encode() did not restore original bytes")
	}
}

func TestDecode_UTF16(t *testing.T) {
	for name, order := range map[string]unicode.Endianness{"le": unicode.LittleEndian, "be": unicode.BigEndian} {
		t.Run(name, func(t *testing.T) {
			src, err := unicode.UTF16(order, unicode.UseBOM).NewEncoder().String(".a{color:red}")
			if err != nil {
				t.Fatal(err)
			}
			out, enc, err := css.Decode([]byte(src))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if enc == nil {
				t.Fatal("expected encoding")
			}
			if string(out) != ".a{color:red}" {
				t.Errorf("decoded = %q", out)
			}
			back, err := css.Encode(string(out), enc)
			if err != nil {
				t.Fatal(err)
			}
			if string(back) != src {
				t.Errorf("Encode() = %q, want %q", back, src)
			}
		})
	}
}

func TestDecode_Unknown(t *testing.T) {
	in := []byte(`@charset "no-such-charset"; .a{}`)
	out, _, err := css.Decode(in)
	if !errors.Is(err, css.ErrUnknownCharset) {
		t.Errorf("error = %v", err)
	}
	if string(out) != string(in) {
		t.Error("input must be returned unchanged")
	}
}
