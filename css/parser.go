// Package css turns stylesheet text into the entity tree checked by the
// engine.
//
// Parsing works on the tdewolff lexer token stream rather than on its
// grammar parser: property names and at-keywords must reach checkers in
// their original case and with browser hack prefixes intact.
package css

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"

	"ckstyle/entity"
	"ckstyle/ledger"
)

// Parser parses CSS stylesheets into rule groups.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

type token struct {
	tt   css.TokenType
	data string
}

// stream is a cursor over lexed tokens.
type stream struct {
	toks []token
	pos  int
}

func (s *stream) eof() bool {
	return s.pos >= len(s.toks)
}

func (s *stream) peek() token {
	return s.toks[s.pos]
}

func (s *stream) next() token {
	t := s.toks[s.pos]
	s.pos++
	return t
}

func (s *stream) skipSpace() {
	for !s.eof() && s.peek().tt == css.WhitespaceToken {
		s.pos++
	}
}

// Parse parses CSS text. Problems found on the way are recorded as parse
// errors of the returned sheet, parsing never fails.
func (p *Parser) Parse(data []byte, file string) *entity.StyleSheet {
	sheet := entity.NewStyleSheet(file)
	p.log.Debug("Parsing CSS", zap.String("source", file), zap.Int("bytes", len(data)))

	s := &stream{toks: p.lex(data, sheet)}

	var comments []string
	takeComment := func() string {
		c := strings.Join(comments, "\n")
		comments = comments[:0]
		return c
	}

	for s.skipSpace(); !s.eof(); s.skipSpace() {
		t := s.peek()
		switch t.tt {
		case css.CommentToken:
			comments = append(comments, t.data)
			s.next()

		case css.CDOToken, css.CDCToken, css.SemicolonToken:
			s.next()

		case css.RightBraceToken:
			s.next()
			sheet.AddError(ledger.Error, "unexpected closing brace")

		case css.AtKeywordToken:
			s.next()
			p.parseAtRule(s, t.data, sheet, takeComment())

		default:
			p.parseRuleSet(s, sheet, takeComment())
		}
	}
	return sheet
}

func (p *Parser) lex(data []byte, sheet *entity.StyleSheet) []token {
	l := css.NewLexer(parse.NewInput(bytes.NewReader(data)))
	var toks []token
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			if err := l.Err(); err != nil && !errors.Is(err, io.EOF) {
				p.log.Debug("CSS lexer error", zap.String("source", sheet.File), zap.Error(err))
				sheet.AddError(ledger.Error, err.Error())
			}
			return toks
		}
		toks = append(toks, token{tt: tt, data: string(data)})
	}
}

// parseAtRule handles everything after an at-keyword: a statement ending
// with semicolon or a block kept verbatim.
func (p *Parser) parseAtRule(s *stream, keyword string, sheet *entity.StyleSheet, comment string) {
	var prelude strings.Builder
	for !s.eof() {
		t := s.next()
		switch t.tt {
		case css.SemicolonToken:
			sheet.NewExtra(keyword, atRule(keyword, prelude.String())+";", comment)
			return
		case css.LeftBraceToken:
			body, ok := readBlock(s)
			if !ok {
				sheet.AddError(ledger.Error, fmt.Sprintf("unterminated %s block", keyword))
			}
			sheet.NewExtra(keyword, atRule(keyword, prelude.String())+"{"+body+"}", comment)
			return
		case css.CommentToken:
		default:
			prelude.WriteString(t.data)
		}
	}
	sheet.AddError(ledger.Error, fmt.Sprintf("unterminated %s statement", keyword))
	sheet.NewExtra(keyword, atRule(keyword, prelude.String())+";", comment)
}

// parseRuleSet reads selector up to the opening brace and the declaration
// block after it.
func (p *Parser) parseRuleSet(s *stream, sheet *entity.StyleSheet, comment string) {
	var selector strings.Builder
	for !s.eof() {
		t := s.next()
		switch t.tt {
		case css.LeftBraceToken:
			group := sheet.NewRuleGroup(selector.String(), comment)
			p.parseDeclarations(s, group, sheet)
			return
		case css.SemicolonToken, css.RightBraceToken:
			sheet.AddError(ledger.Error, fmt.Sprintf("unexpected %q after %q", t.data, strings.TrimSpace(selector.String())))
			return
		case css.CommentToken:
		default:
			selector.WriteString(t.data)
		}
	}
	sheet.AddError(ledger.Error, fmt.Sprintf("expected '{' after %q", strings.TrimSpace(selector.String())))
}

// parseDeclarations adds declarations to group until the closing brace.
func (p *Parser) parseDeclarations(s *stream, group *entity.RuleGroup, sheet *entity.StyleSheet) {
	for s.skipSpace(); !s.eof(); s.skipSpace() {
		switch s.peek().tt {
		case css.RightBraceToken:
			s.next()
			return
		case css.SemicolonToken, css.CommentToken:
			s.next()
			continue
		case css.LeftBraceToken:
			s.next()
			sheet.AddError(ledger.Warning, fmt.Sprintf("nested block inside %q ignored", group.Selector))
			if _, ok := readBlock(s); !ok {
				sheet.AddError(ledger.Error, fmt.Sprintf("unterminated ruleset %q", group.Selector))
				return
			}
			continue
		}

		name, ok := readName(s)
		if !ok {
			sheet.AddError(ledger.Error, fmt.Sprintf("declaration %q of %q has no colon", strings.TrimSpace(name), group.Selector))
			continue
		}
		value := readValue(s)
		if strings.TrimSpace(value) == "" {
			sheet.AddError(ledger.Warning, fmt.Sprintf("declaration %q of %q has no value", strings.TrimSpace(name), group.Selector))
			continue
		}
		group.Add(name, value)
	}
	sheet.AddError(ledger.Error, fmt.Sprintf("unterminated ruleset %q", group.Selector))
}

// readName consumes property name and the colon after it. On failure the
// cursor is left at the terminating semicolon or brace.
func readName(s *stream) (string, bool) {
	var sb strings.Builder
	for !s.eof() {
		switch t := s.peek(); t.tt {
		case css.ColonToken:
			s.next()
			return sb.String(), true
		case css.SemicolonToken, css.RightBraceToken:
			return sb.String(), false
		case css.CommentToken:
			s.next()
		default:
			sb.WriteString(t.data)
			s.next()
		}
	}
	return sb.String(), false
}

// readValue consumes value tokens up to and including the semicolon, the
// closing brace of the ruleset is left in place. Blocks nested in the value
// (custom properties) are kept whole.
func readValue(s *stream) string {
	var (
		sb    strings.Builder
		depth int
	)
	for !s.eof() {
		t := s.peek()
		switch t.tt {
		case css.SemicolonToken:
			if depth == 0 {
				s.next()
				return sb.String()
			}
		case css.RightBraceToken:
			if depth == 0 {
				return sb.String()
			}
			depth--
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken, css.LeftBraceToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			depth = max(depth-1, 0)
		case css.CommentToken:
			s.next()
			continue
		}
		sb.WriteString(t.data)
		s.next()
	}
	return sb.String()
}

// readBlock returns content up to the matching closing brace which is
// consumed. Comments are dropped.
func readBlock(s *stream) (string, bool) {
	var sb strings.Builder
	depth := 1
	for !s.eof() {
		t := s.next()
		switch t.tt {
		case css.LeftBraceToken:
			depth++
		case css.RightBraceToken:
			depth--
			if depth == 0 {
				return sb.String(), true
			}
		case css.CommentToken:
			continue
		}
		sb.WriteString(t.data)
	}
	return sb.String(), false
}

// atRule renders at-keyword with its prelude.
func atRule(keyword, prelude string) string {
	if prelude = strings.TrimSpace(prelude); prelude == "" {
		return keyword
	}
	return keyword + " " + prelude
}
