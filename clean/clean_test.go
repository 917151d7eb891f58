package clean

import "testing"

func TestName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  Color ", "color"},
		{"_width", "_width"},
		{"*ZOOM", "*zoom"},
		{"font -size", "font-size"},
	}
	for _, tt := range tests {
		if got := Name(tt.in); got != tt.want {
			t.Errorf("Name(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValue(t *testing.T) {
	tests := []struct{ in, want string }{
		{" red ", "red"},
		{"0 auto", "0 auto"},
		{"1px   solid  #FFF", "1px solid #FFF"},
		{"Arial ,  sans-serif", "Arial,sans-serif"},
		{"red !important", "red!important"},
		{"url('a  b.png')", "url('a  b.png')"},
		{"rgb( 1, 2 ,3 )", "rgb(1,2,3)"},
	}
	for _, tt := range tests {
		if got := Value(tt.in); got != tt.want {
			t.Errorf("Value(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompact(t *testing.T) {
	tests := []struct{ in, want string }{
		{"@media screen { .a { color : red ; } }", "@media screen{.a{color:red;}}"},
		{"@import url(a.css) ;", "@import url(a.css);"},
		{"@media (max-width: 100px)", "@media (max-width:100px)"},
	}
	for _, tt := range tests {
		if got := Compact(tt.in); got != tt.want {
			t.Errorf("Compact(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSelector(t *testing.T) {
	tests := []struct{ in, want string }{
		{" .a ", ".a"},
		{".a   .b", ".a .b"},
		{".a , .b", ".a,.b"},
		{"ul > li", "ul>li"},
		{"a:hover", "a:hover"},
	}
	for _, tt := range tests {
		if got := Selector(tt.in); got != tt.want {
			t.Errorf("Selector(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPretty(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Arial,sans-serif", "Arial, sans-serif"},
		{"1px   solid red", "1px solid red"},
		{"rgb( 1,2 , 3 )", "rgb(1, 2, 3)"},
		{"'a,b'", "'a,b'"},
	}
	for _, tt := range tests {
		if got := Pretty(tt.in); got != tt.want {
			t.Errorf("Pretty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrettySelector(t *testing.T) {
	tests := []struct{ in, want string }{
		{".a,.b", ".a, .b"},
		{"ul>li", "ul > li"},
		{"div   p", "div p"},
	}
	for _, tt := range tests {
		if got := PrettySelector(tt.in); got != tt.want {
			t.Errorf("PrettySelector(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestComment(t *testing.T) {
	if got := Comment("  /* a */\n\n  "); got != "/* a */" {
		t.Errorf("Comment() = %q", got)
	}
}
