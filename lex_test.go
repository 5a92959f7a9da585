package symbolic

import (
	"errors"
	"testing"

	"github.com/kr/pretty"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []lexToken
		err    bool
	}{
		// spaces
		{"", nil, false},
		{" \t \r\n ", nil, false},
		// numbers
		{"0", []lexToken{{text: "0", kind: tokenNum, pos: 1}}, false},
		{"9876543210", []lexToken{{text: "9876543210", kind: tokenNum, pos: 1}}, false},
		{"1 0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "0", kind: tokenNum, pos: 3}}, false},
		{"12.5", []lexToken{{text: "12.5", kind: tokenNum, pos: 1}}, false},
		{".5", []lexToken{{text: ".5", kind: tokenNum, pos: 1}}, false},
		{"1e3", []lexToken{{text: "1e3", kind: tokenNum, pos: 1}}, false},
		{"1e+3", []lexToken{{text: "1e+3", kind: tokenNum, pos: 1}}, false},
		{"1.5E-2", []lexToken{{text: "1.5E-2", kind: tokenNum, pos: 1}}, false},
		{"2e", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "e", kind: tokenIdent, pos: 2}}, false},
		{"2ex", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "ex", kind: tokenIdent, pos: 2}}, false},
		{"2e+x", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "e", kind: tokenIdent, pos: 2}, {text: "+", kind: tokenOp, pos: 3}, {text: "x", kind: tokenIdent, pos: 4}}, false},
		{"1.2.3", nil, true},
		{"1e5.5", nil, true},
		{".", nil, true},
		// identifiers
		{"x", []lexToken{{text: "x", kind: tokenIdent, pos: 1}}, false},
		{"x1y", []lexToken{{text: "x1y", kind: tokenIdent, pos: 1}}, false},
		{"x_1", []lexToken{{text: "x_1", kind: tokenIdent, pos: 1}}, false},
		{"x_max", []lexToken{{text: "x_max", kind: tokenIdent, pos: 1}}, false},
		{"π", []lexToken{{text: "π", kind: tokenIdent, pos: 1}}, false},
		{"∞", []lexToken{{text: "∞", kind: tokenIdent, pos: 1}}, false},
		{"e\u0301", []lexToken{{text: "\u00e9", kind: tokenIdent, pos: 1}}, false},
		{"x_", []lexToken{{text: "x", kind: tokenIdent, pos: 1}}, true},
		// operators
		{"+", []lexToken{{text: "+", kind: tokenOp, pos: 1}}, false},
		{"a**b", []lexToken{{text: "a", kind: tokenIdent, pos: 1}, {text: "**", kind: tokenOp, pos: 2}, {text: "b", kind: tokenIdent, pos: 4}}, false},
		{"a*-b", []lexToken{{text: "a", kind: tokenIdent, pos: 1}, {text: "*", kind: tokenOp, pos: 2}, {text: "-", kind: tokenOp, pos: 3}, {text: "b", kind: tokenIdent, pos: 4}}, false},
		{"x:=1", []lexToken{{text: "x", kind: tokenIdent, pos: 1}, {text: ":=", kind: tokenOp, pos: 2}, {text: "1", kind: tokenNum, pos: 4}}, false},
		{"<=>=", []lexToken{{text: "<=", kind: tokenOp, pos: 1}, {text: ">=", kind: tokenOp, pos: 3}}, false},
		{"3!!", []lexToken{{text: "3", kind: tokenNum, pos: 1}, {text: "!!", kind: tokenOp, pos: 2}}, false},
		{"2×3", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "×", kind: tokenOp, pos: 2}, {text: "3", kind: tokenNum, pos: 3}}, false},
		{":", nil, true},
		// brackets
		{"([{", []lexToken{{text: "(", kind: tokenOpen, pos: 1}, {text: "[", kind: tokenOpen, pos: 2}, {text: "{", kind: tokenOpen, pos: 3}}, false},
		{")]}", []lexToken{{text: ")", kind: tokenClose, pos: 1}, {text: "]", kind: tokenClose, pos: 2}, {text: "}", kind: tokenClose, pos: 3}}, false},
		{"|x|", []lexToken{{text: "|", kind: tokenBar, pos: 1}, {text: "x", kind: tokenIdent, pos: 2}, {text: "|", kind: tokenBar, pos: 3}}, false},
		// erroneous symbols
		{"$", nil, true},
		{"a$", []lexToken{{text: "a", kind: tokenIdent, pos: 1}}, true},
		{"☃", nil, true},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			l := lex(c.src)
			var toks []lexToken
			for {
				tok, err := l.next()
				if err != nil {
					if !c.err {
						t.Errorf("unexpected error: %v", err)
					}
					if !errors.Is(err, ErrLex) {
						t.Errorf("error %v does not match ErrLex", err)
					}
					break
				}
				if tok.kind == tokenEOF {
					if c.err {
						t.Error("expected an error")
					}
					break
				}
				toks = append(toks, tok)
			}
			if d := pretty.Diff(c.tokens, toks); len(d) != 0 {
				t.Errorf("wrong tokens:\n%s", d)
			}
		})
	}
}

func TestLexErrorPos(t *testing.T) {
	cases := []struct {
		src string
		col int
	}{
		{"$", 1},
		{"x+$", 3},
		{"1.2.3", 4},
		{"x_", 2},
		{"a:b", 2},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			_, err := Parse(c.src)
			var ie InputError
			if !errors.As(err, &ie) {
				t.Fatalf("%v is not an InputError", err)
			}
			if ie.Pos() != c.col {
				t.Errorf("wrong position: want %d, got %d", c.col, ie.Pos())
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		name string
		src  string
		opts []Option
		// items is the text of the root scope's items.
		items []string
		err   error
	}{
		{"implicit", "2x", nil, []string{"2", "*", "x"}, nil},
		{"implicit-scope", "2(x)", nil, []string{"2", "*", "("}, nil},
		{"implicit-scopes", "(x)(y)", nil, []string{"(", "*", "("}, nil},
		{"call", "sqrt(x)", nil, []string{"sqrt"}, nil},
		{"not-call", "f(x)", nil, []string{"f", "*", "("}, nil},
		{"factorial", "x!y", nil, []string{"x", "!", "*", "y"}, nil},
		{"abs", "2|x|", nil, []string{"2", "*", "|"}, nil},
		{"abs-adjacent", "|x||y|", nil, []string{"|", "*", "|"}, nil},
		{"letters", "xy", []Option{SingleLetters()}, []string{"x", "*", "y"}, nil},
		{"letters-subscript", "xy_1", []Option{SingleLetters()}, []string{"x", "*", "y_1"}, nil},
		{"letters-known", "pi", []Option{SingleLetters()}, []string{"pi"}, nil},
		{"letters-bound", "ab", []Option{SingleLetters(), SetVar("ab", 1)}, []string{"ab"}, nil},
		{"no-implicit", "2x", []Option{DisableImplicitMul()}, nil, ErrParse},
		{"stray-close", "(x+1))", nil, nil, ErrLex},
		{"unclosed", "(x", nil, nil, ErrLex},
		{"mismatch", "(x]", nil, nil, ErrLex},
		{"unclosed-bar", "|x", nil, nil, ErrLex},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tr, err := tokenize(c.src, derive(&defaultConfig, c.opts))
			if c.err != nil {
				if !errors.Is(err, c.err) {
					t.Errorf("wrong error: want %v, got %v", c.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var items []string
			for _, it := range tr.scopes[0].items {
				items = append(items, it.tok.text)
			}
			if d := pretty.Diff(c.items, items); len(d) != 0 {
				t.Errorf("wrong items:\n%s", d)
			}
		})
	}
}

func TestBracketErrorCol(t *testing.T) {
	cases := []struct {
		src  string
		want BracketError
	}{
		{"(x+1))", BracketError{Col: 6, Right: ")"}},
		{"(x", BracketError{Col: 3, Left: "("}},
		{"[x)", BracketError{Col: 3, Left: "[", Right: ")"}},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			_, err := tokenize(c.src, &defaultConfig)
			var be *BracketError
			if !errors.As(err, &be) {
				t.Fatalf("wrong error: %v", err)
			}
			if *be != c.want {
				t.Errorf("wrong error: want %+v, got %+v", c.want, *be)
			}
		})
	}
}
