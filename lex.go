package symbolic

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is an integer or decimal number.
	tokenNum
	// tokenIdent is a variable, constant, or function name.
	tokenIdent
	// tokenOp is an operator, including the comma.
	tokenOp
	// tokenOpen is an open bracket, e.g. (.
	tokenOpen
	// tokenClose is a close bracket, e.g. ).
	tokenClose
	// tokenBar is |, which opens or closes an absolute value.
	tokenBar
)

var tokenNames = [...]string{"None", "EOF", "Num", "Ident", "Op", "Open", "Close", "Bar"}

func (k tokenKind) String() string {
	if k < 0 || int(k) >= len(tokenNames) {
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenNames[k]
}

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/^%,=<>:!×÷"

// OpenBrackets and CloseBrackets contain the runes which group expressions.
// A bracket in position k in OpenBrackets is matched with the bracket in
// position k in CloseBrackets.
const (
	OpenBrackets  = "([{"
	CloseBrackets = ")]}"
)

// longops are the operators spelled with two runes.
var longops = [...]string{"**", "!!", "==", "<=", ">=", ":="}

type lexer struct {
	src []rune
	i   int
	buf strings.Builder
	p   lexToken
}

func lex(src string) *lexer {
	return &lexer{src: []rune(norm.NFC.String(src))}
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok lexToken) {
	if l.p.kind != tokenNone {
		panic("symbolic: double push")
	}
	l.p = tok
}

// peekRune returns the rune k positions ahead, or -1 past the end.
func (l *lexer) peekRune(k int) rune {
	if l.i+k >= len(l.src) {
		return -1
	}
	return l.src[l.i+k]
}

func (l *lexer) readRune() rune {
	r := l.peekRune(0)
	if r >= 0 {
		l.i++
	}
	return r
}

// next scans the next token from the input.
func (l *lexer) next() (lexToken, error) {
	if l.p.kind != tokenNone {
		tok := l.p
		l.p = lexToken{}
		return tok, nil
	}
	defer l.buf.Reset()
	for unicode.IsSpace(l.peekRune(0)) {
		l.i++
	}
	tok := lexToken{pos: l.i + 1}
	r := l.peekRune(0)
	switch {
	case r < 0:
		tok.kind = tokenEOF
		return tok, nil
	case '0' <= r && r <= '9', r == '.':
		if err := l.scanNum(); err != nil {
			return tok, err
		}
		tok.text = l.buf.String()
		tok.kind = tokenNum
		return tok, nil
	case isLetter(r):
		l.scanIdent()
		tok.text = l.buf.String()
		tok.kind = tokenIdent
		return tok, nil
	case r == '∞':
		l.i++
		tok.text = "∞"
		tok.kind = tokenIdent
		return tok, nil
	case r == '|':
		l.i++
		tok.text = "|"
		tok.kind = tokenBar
		return tok, nil
	}
	l.i++
	if strings.ContainsRune(Operators, r) {
		tok.kind = tokenOp
		if n := l.peekRune(0); n >= 0 {
			s := string([]rune{r, n})
			for _, op := range longops {
				if s == op {
					l.i++
					tok.text = s
					return tok, nil
				}
			}
		}
		if r == ':' {
			l.buf.WriteRune(r)
			return tok, l.error("operator")
		}
		tok.text = string(r)
		return tok, nil
	}
	if k := strings.IndexRune(OpenBrackets, r); k >= 0 {
		tok.text = string(r)
		tok.kind = tokenOpen
		return tok, nil
	}
	if k := strings.IndexRune(CloseBrackets, r); k >= 0 {
		tok.text = string(r)
		tok.kind = tokenClose
		return tok, nil
	}
	// Write the rune so that it shows up in the error message.
	l.buf.WriteRune(r)
	return tok, l.error("")
}

// isLetter reports whether r can start an identifier. Only Latin and Greek
// letters are letters.
func isLetter(r rune) bool {
	return r >= 0 && unicode.IsLetter(r) && unicode.In(r, unicode.Latin, unicode.Greek)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func (l *lexer) scanNum() error {
	var dig, dot bool
	for {
		r := l.peekRune(0)
		switch {
		case isDigit(r):
			dig = true
		case r == '.':
			if dot {
				l.buf.WriteRune(l.readRune())
				return l.error("number")
			}
			dot = true
		case r == 'e' || r == 'E':
			// An exponent marker only belongs to the number if digits follow,
			// possibly after a sign. Otherwise it starts an identifier.
			n := l.peekRune(1)
			if n == '+' || n == '-' {
				n = l.peekRune(2)
			}
			if !dig || !isDigit(n) {
				return l.finishNum(dig)
			}
			l.buf.WriteRune(l.readRune())
			if s := l.peekRune(0); s == '+' || s == '-' {
				l.buf.WriteRune(l.readRune())
			}
			for isDigit(l.peekRune(0)) {
				l.buf.WriteRune(l.readRune())
			}
			if l.peekRune(0) == '.' {
				l.buf.WriteRune(l.readRune())
				return l.error("number")
			}
			return nil
		default:
			return l.finishNum(dig)
		}
		l.buf.WriteRune(l.readRune())
	}
}

func (l *lexer) finishNum(dig bool) error {
	if !dig {
		return l.error("number")
	}
	return nil
}

// scanIdent scans a letter followed by letters and digits, with an optional
// subscript introduced by an underscore.
func (l *lexer) scanIdent() {
	l.buf.WriteRune(l.readRune())
	for {
		r := l.peekRune(0)
		switch {
		case isLetter(r), isDigit(r):
			l.buf.WriteRune(l.readRune())
		case r == '_':
			n := l.peekRune(1)
			if !isLetter(n) && !isDigit(n) {
				return
			}
			l.buf.WriteRune(l.readRune())
		default:
			return
		}
	}
}

func (l *lexer) error(kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  l.i,
	}
}

// itemKind is the type of an element of a scope.
type itemKind int8

const (
	itemNum itemKind = iota + 1
	itemName
	itemOp
	// itemScope is a bracketed subexpression.
	itemScope
	// itemCall is a function name with its bracketed arguments.
	itemCall
)

type item struct {
	kind  itemKind
	tok   lexToken
	scope int
}

// scope is a bracketed level of the input.
type scope struct {
	// open is the opening bracket, or the zero token for the root.
	open   lexToken
	parent int
	items  []item
}

// tree holds every scope of an input in an arena. The root is scopes[0].
type tree struct {
	scopes []scope
}

// endsValue reports whether items end with a complete operand, so that an
// operand after it needs an operator between.
func endsValue(items []item) bool {
	if len(items) == 0 {
		return false
	}
	last := items[len(items)-1]
	switch last.kind {
	case itemNum, itemName, itemScope, itemCall:
		return true
	}
	return last.tok.text == "!" || last.tok.text == "!!"
}

func matchBracket(open, close string) bool {
	k := strings.Index(OpenBrackets, open)
	return k >= 0 && k == strings.Index(CloseBrackets, close)
}

// tokenize lexes src into nested scopes, inserting implicit multiplication.
func tokenize(src string, cfg *Config) (*tree, error) {
	l := lex(src)
	t := &tree{scopes: []scope{{parent: -1}}}
	cur := 0
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenEOF:
			if cur != 0 {
				return nil, &BracketError{Col: tok.pos, Left: t.scopes[cur].open.text}
			}
			return t, nil
		case tokenNum:
			if err := t.operand(cfg, cur, item{kind: itemNum, tok: tok}); err != nil {
				return nil, err
			}
		case tokenIdent:
			nx, err := l.next()
			if err != nil {
				return nil, err
			}
			if nx.kind == tokenOpen && cfg.lookupFunc(tok.text) != nil {
				if cur, err = t.open(cfg, cur, itemCall, tok, nx); err != nil {
					return nil, err
				}
				continue
			}
			l.push(nx)
			for _, name := range splitName(tok, cfg) {
				if err := t.operand(cfg, cur, item{kind: itemName, tok: name}); err != nil {
					return nil, err
				}
			}
		case tokenOp:
			t.scopes[cur].items = append(t.scopes[cur].items, item{kind: itemOp, tok: tok})
		case tokenOpen:
			if cur, err = t.open(cfg, cur, itemScope, tok, tok); err != nil {
				return nil, err
			}
		case tokenClose:
			if cur == 0 {
				return nil, &BracketError{Col: tok.pos, Right: tok.text}
			}
			open := t.scopes[cur].open.text
			if !matchBracket(open, tok.text) {
				return nil, &BracketError{Col: tok.pos, Left: open, Right: tok.text}
			}
			cur = t.scopes[cur].parent
		case tokenBar:
			s := t.scopes[cur]
			if s.open.text == "|" && endsValue(s.items) {
				cur = s.parent
				continue
			}
			if cur, err = t.open(cfg, cur, itemScope, tok, tok); err != nil {
				return nil, err
			}
		}
	}
}

// operand appends an operand to a scope, first inserting a multiplication if
// it follows another operand.
func (t *tree) operand(cfg *Config, cur int, it item) error {
	s := &t.scopes[cur]
	if endsValue(s.items) {
		if cfg.NoImplicitMul {
			return &MalformedError{Col: it.tok.pos, Text: it.tok.text}
		}
		mul := lexToken{text: "*", kind: tokenOp, pos: it.tok.pos}
		s.items = append(s.items, item{kind: itemOp, tok: mul})
	}
	s.items = append(s.items, it)
	return nil
}

// open starts a new scope as an item of cur and returns its index.
func (t *tree) open(cfg *Config, cur int, kind itemKind, tok, bracket lexToken) (int, error) {
	k := len(t.scopes)
	if err := t.operand(cfg, cur, item{kind: kind, tok: tok, scope: k}); err != nil {
		return cur, err
	}
	t.scopes = append(t.scopes, scope{open: bracket, parent: cur})
	return k, nil
}

// splitName splits an identifier into one-letter variables when that mode is
// enabled and the identifier has no other meaning. Digits and subscripts stay
// with the letter before them.
func splitName(tok lexToken, cfg *Config) []lexToken {
	if !cfg.SingleLetters || knownName(tok.text, cfg) {
		return []lexToken{tok}
	}
	var r []lexToken
	sub := false
	for i, c := range []rune(tok.text) {
		switch {
		case c == '_':
			sub = true
		case isLetter(c) && !sub:
			r = append(r, lexToken{text: string(c), kind: tokenIdent, pos: tok.pos + i})
			continue
		}
		r[len(r)-1].text += string(c)
	}
	return r
}

// knownName reports whether name is a function, a constant, or a bound value.
// Infinity counts as a constant.
func knownName(name string, cfg *Config) bool {
	if cfg.lookupFunc(name) != nil {
		return true
	}
	if _, ok := cfg.Values[name]; ok {
		return true
	}
	return isConstant(name) || name == "Infinity"
}
