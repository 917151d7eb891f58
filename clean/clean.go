// Package clean normalizes property names, values and selectors. All
// functions are pure and work on the token stream produced by the
// tdewolff CSS lexer, so quoted strings and urls are never altered.
package clean

import (
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

type token struct {
	tt   css.TokenType
	data string
}

func tokenize(s string) []token {
	l := css.NewLexer(parse.NewInputString(strings.TrimSpace(s)))
	var out []token
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			return out
		}
		if tt == css.CommentToken {
			continue
		}
		out = append(out, token{tt: tt, data: string(data)})
	}
}

func combinator(t token) bool {
	return t.tt == css.DelimToken && (t.data == ">" || t.data == "+" || t.data == "~")
}

// tight reports tokens which never need whitespace around them.
func tight(t token, selector bool) bool {
	switch t.tt {
	case css.CommaToken, css.SemicolonToken, css.LeftBraceToken, css.RightBraceToken:
		return true
	case css.ColonToken:
		return !selector
	case css.DelimToken:
		return t.data == "!" || (selector && combinator(t))
	}
	return false
}

func opens(t token) bool {
	return t.tt == css.LeftParenthesisToken || t.tt == css.FunctionToken
}

// compact rebuilds text from tokens dropping every whitespace run that is
// not needed to keep adjacent tokens apart.
func compact(tokens []token, selector bool) string {
	var (
		sb    strings.Builder
		prev  token
		have  bool
		space bool
	)
	for _, t := range tokens {
		if t.tt == css.WhitespaceToken {
			space = have
			continue
		}
		if space && !tight(prev, selector) && !tight(t, selector) &&
			!opens(prev) && t.tt != css.RightParenthesisToken {
			sb.WriteByte(' ')
		}
		space = false
		sb.WriteString(t.data)
		prev, have = t, true
	}
	return sb.String()
}

// Name normalizes a property name: no whitespace, lower case. Hack
// prefixes ("_", "*") are kept.
func Name(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// Value normalizes a property value for comparison.
func Value(s string) string {
	return compact(tokenize(s), false)
}

// Selector normalizes a selector: single spaces between compound
// selectors, nothing around commas and combinators.
func Selector(s string) string {
	return compact(tokenize(s), true)
}

// Compact renders a value or statement in minified form.
func Compact(s string) string {
	return compact(tokenize(s), false)
}

// Comment trims a comment and drops blank lines inside it.
func Comment(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, l := range lines {
		l = strings.TrimRight(l, " \t\r")
		if l == "" {
			continue
		}
		out = append(out, l)
	}
	return strings.Join(out, "\n")
}

// Pretty renders a value for human readable output: single spaces and one
// space after every comma.
func Pretty(s string) string {
	var (
		sb    strings.Builder
		prev  token
		have  bool
		space bool
	)
	for _, t := range tokenize(s) {
		if t.tt == css.WhitespaceToken {
			space = have
			continue
		}
		switch {
		case !have:
		case prev.tt == css.CommaToken:
			sb.WriteByte(' ')
		case space && t.tt != css.CommaToken && t.tt != css.RightParenthesisToken && !opens(prev):
			sb.WriteByte(' ')
		}
		space = false
		sb.WriteString(t.data)
		prev, have = t, true
	}
	return sb.String()
}

// PrettySelector renders a selector with ", " between selectors and single
// spaces around combinators.
func PrettySelector(s string) string {
	var (
		sb    strings.Builder
		prev  token
		have  bool
		space bool
	)
	for _, t := range tokenize(s) {
		if t.tt == css.WhitespaceToken {
			space = have
			continue
		}
		switch {
		case !have:
		case t.tt == css.CommaToken:
		case prev.tt == css.CommaToken, combinator(prev), combinator(t):
			sb.WriteByte(' ')
		case space:
			sb.WriteByte(' ')
		}
		space = false
		sb.WriteString(t.data)
		prev, have = t, true
	}
	return sb.String()
}
