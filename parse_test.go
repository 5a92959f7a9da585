package symbolic

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/kr/pretty"
)

func TestCanonical(t *testing.T) {
	cases := []struct {
		src  string
		text string
		kind Kind
	}{
		// numbers
		{"2+3", "5", KindNum},
		{"1/2+1/3", "5/6", KindNum},
		{"0.5+0.25", "0.75", KindNum},
		{"2^10", "1024", KindNum},
		{"2^-2", "1/4", KindNum},
		{"(2/3)^2", "4/9", KindNum},
		{"7 % 3", "1", KindNum},
		{"-7 % 3", "-1", KindNum},
		{"5!", "120", KindNum},
		{"6!!", "48", KindNum},
		// like terms and identities
		{"x", "x", KindVar},
		{"x+x", "2*x", KindVar},
		{"x-x", "0", KindNum},
		{"x/x", "1", KindNum},
		{"0*x", "0", KindNum},
		{"1*x", "x", KindVar},
		{"x+0", "x", KindVar},
		{"2x*3", "6*x", KindVar},
		{"-(x)", "-x", KindVar},
		{"x/2", "(1/2)*x", KindVar},
		{"x-2x", "-x", KindVar},
		// products
		{"x*y", "x*y", KindProduct},
		{"y*x", "x*y", KindProduct},
		{"x^2*x^3", "x^5", KindVar},
		{"x^(1/2)*x^(1/2)", "x", KindVar},
		{"(2x)^2", "4*x^2", KindVar},
		{"2^y*2^y", "2^(2*y)", KindExponential},
		{"x^y*x^y", "x^(2*y)", KindExponential},
		// sums and groups
		{"x^2+x", "x^2+x", KindGroup},
		{"x+1+x^2", "x^2+x+1", KindSum},
		{"y+x", "x+y", KindSum},
		{"2*(x+y)", "2*(x+y)", KindSum},
		{"(x+1)*(x+1)", "(x+1)^2", KindSum},
		{"x+1-x", "1", KindNum},
		// roots
		{"sqrt(4)", "2", KindNum},
		{"sqrt(8)", "2*sqrt(2)", KindExponential},
		{"4^(1/4)", "sqrt(2)", KindExponential},
		{"8^(1/6)", "sqrt(2)", KindExponential},
		{"4^(1/4) - sqrt(2)", "0", KindNum},
		{"x^-1 + (x+x^2)^-1", "(x^2+x)^(-1)+x^(-1)", KindSum},
		{"(x+x^2)^-1*(x+x^2)", "1", KindNum},
		{"sqrt(1/4)", "1/2", KindNum},
		{"sqrt(-9)", "3*i", KindVar},
		{"root(27, 3)", "3", KindNum},
		{"root(-8, 3)", "-2", KindNum},
		{"(x^4)^(1/4)", "abs(x)", KindFunction},
		{"sqrt(x^2)", "abs(x)", KindFunction},
		{"sqrt(x)^2", "x", KindVar},
		// imaginary unit
		{"i*i", "-1", KindNum},
		{"i^3", "-i", KindVar},
		{"i^4", "1", KindNum},
		{"(1+i)*(1-i)", "2", KindNum},
		// infinity
		{"Infinity", "Infinity", KindInfinity},
		{"-∞", "-Infinity", KindInfinity},
		{"2*Infinity", "Infinity", KindInfinity},
		{"1/Infinity", "0", KindNum},
		{"x+Infinity", "Infinity", KindInfinity},
		{"2^Infinity", "Infinity", KindInfinity},
		{"(1/2)^Infinity", "0", KindNum},
		{"x*Infinity + x*Infinity", "Infinity", KindInfinity},
		{"-Infinity*x", "-Infinity", KindInfinity},
		{"-(Infinity*x)", "-Infinity", KindInfinity},
		{"Infinity/x", "Infinity", KindInfinity},
		{"(-Infinity)^3", "-Infinity", KindInfinity},
		{"(-Infinity)^2", "Infinity", KindInfinity},
		// functions
		{"abs(-3)", "3", KindNum},
		{"|x^2|", "x^2", KindVar},
		{"|-2x|", "2*abs(x)", KindFunction},
		{"min(3, 1, 2)", "1", KindNum},
		{"max(3, 1, 2)", "3", KindNum},
		{"floor(7/2)", "3", KindNum},
		{"ceil(7/2)", "4", KindNum},
		{"floor(-7/2)", "-4", KindNum},
		{"x!", "fact(x)", KindFunction},
		{"mod(x, 2)", "mod(x,2)", KindFunction},
		{"exp(0)", "1", KindNum},
		{"ln(1)", "0", KindNum},
		{"sin(x)", "sin(x)", KindFunction},
		{"sin(x)+sin(x)", "2*sin(x)", KindFunction},
		{"f(x)", "f*x", KindProduct},
		// constants stay symbolic
		{"pi", "pi", KindVar},
		{"π", "pi", KindVar},
		{"e", "e", KindVar},
		// comparisons
		{"2 < 3", "1", KindNum},
		{"3 <= 2", "0", KindNum},
		{"x*y == y*x", "1", KindNum},
		{"x+1 > x", "1", KindNum},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			e, err := Parse(c.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := e.Text(); got != c.text {
				t.Errorf("wrong text: want %q, got %q", c.text, got)
			}
			if e.Kind() != c.kind {
				t.Errorf("wrong kind: want %v, got %v", c.kind, e.Kind())
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		src  string
		opts []Option
		err  error
	}{
		{"", nil, ErrParse},
		{"  ", nil, ErrParse},
		{"()", nil, ErrParse},
		{"1$", nil, ErrLex},
		{"(x+1))", nil, ErrLex},
		{"(x+1", nil, ErrLex},
		{"1.2.3", nil, ErrLex},
		{"*2", nil, ErrParse},
		{"2+", nil, ErrParse},
		{"2x", []Option{DisableImplicitMul()}, ErrParse},
		{"sqrt(1, 2)", nil, ErrParse},
		{"root(8)", nil, ErrParse},
		{"1/0", nil, ErrUndefined},
		{"x/0", nil, ErrUndefined},
		{"0^0", nil, ErrUndefined},
		{"0^-1", nil, ErrUndefined},
		{"Infinity-Infinity", nil, ErrUndefined},
		{"0*Infinity", nil, ErrUndefined},
		{"Infinity/Infinity", nil, ErrUndefined},
		{"Infinity^0", nil, ErrUndefined},
		{"1^Infinity", nil, ErrUndefined},
		{"Infinity^Infinity", nil, ErrUndefined},
		{"x*Infinity - x*Infinity", nil, ErrUndefined},
		{"x*Infinity*0", nil, ErrUndefined},
		{"(-Infinity)^(1/2)", nil, ErrUndefined},
		{"sqrt(-Infinity)", nil, ErrUndefined},
		{"x % 0", nil, ErrUndefined},
		{"(-1)!", nil, ErrUndefined},
		{"ln(0.0)", nil, ErrUndefined},
		{"[1, 2]", nil, ErrUnsupported},
		{"x = 1", nil, ErrUnsupported},
		{"x < 1", nil, ErrUnsupported},
		{"[1, 2] + [1, 2, 3]", nil, ErrUnsupported},
		{"2 := 3", nil, ErrUnsupported},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			e, err := Parse(c.src, c.opts...)
			if !errors.Is(err, c.err) {
				t.Errorf("wrong error: want %v, got %v (result %v)", c.err, err, e)
			}
		})
	}
}

// TestErrorCategories checks that every error matches exactly one category.
func TestErrorCategories(t *testing.T) {
	cats := []error{ErrLex, ErrParse, ErrUndefined, ErrUnsupported, ErrNotANumber}
	for _, src := range []string{"$", "(", "*", "1/0", "[1]+[1,2]", "sqrt()"} {
		_, err := Parse(src)
		if err == nil {
			t.Errorf("%q: no error", src)
			continue
		}
		n := 0
		for _, c := range cats {
			if errors.Is(err, c) {
				n++
			}
		}
		if n != 1 {
			t.Errorf("%q: error %v matches %d categories", src, err, n)
		}
	}
}

func TestParseValue(t *testing.T) {
	cases := []struct {
		src  string
		text string
		kind string
	}{
		{"[1, x] + 1", "[2,x+1]", "vector"},
		{"[1, 2] * [3, 4]", "[3,8]", "vector"},
		{"[[1, 2], [3, 4]] * 2", "[[2,4],[6,8]]", "vector"},
		{"[]", "[]", "vector"},
		{"[x]", "[x]", "vector"},
		{"1, 2, 3", "1,2,3", "collection"},
		{"(1, 2) + 1", "2,3", "collection"},
		{"sqrt((4, 9))", "2,3", "collection"},
		{"|[-1, 2]|", "[1,2]", "vector"},
		{"-[1, x]", "[-1,-x]", "vector"},
		{"x + 1 = 3", "x+1=3", "equation"},
		{"(x = 3) * 2", "2*x=6", "equation"},
		{"(x = 1) + (y = 2)", "x+y=3", "equation"},
		{"y := 2x", "y:=2*x", "definition"},
		{"x + 1", "x+1", "expression"},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			v, err := ParseValue(c.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := v.Text(); got != c.text {
				t.Errorf("wrong text: want %q, got %q", c.text, got)
			}
			if got := describe(v); got != c.kind {
				t.Errorf("wrong value type: want %s, got %s", c.kind, got)
			}
		})
	}
}

func TestParseReader(t *testing.T) {
	e, err := ParseReader(strings.NewReader("x + x"))
	if err != nil {
		t.Fatal(err)
	}
	if e.Text() != "2*x" {
		t.Errorf("wrong result: %v", e)
	}
}

func TestBoundValues(t *testing.T) {
	cases := []struct {
		name string
		src  string
		opts []Option
		text string
	}{
		{"int", "x + 1", []Option{SetVar("x", 2)}, "3"},
		{"float", "x + x", []Option{SetVar("x", 2.84)}, "5.68"},
		{"expr", "x^2", []Option{SetVar("x", Var("y"))}, "y^2"},
		{"string", "x * 2", []Option{SetVar("x", "y + 1")}, "2*(y+1)"},
		{"map", "x + y", []Option{Values(map[string]interface{}{"x": 1, "y": 2})}, "3"},
		{"shadow-constant", "e + 1", []Option{SetVar("e", 1)}, "2"},
		{"ignored", "x", []Option{SetVar("x", struct{}{})}, "x"},
		{"define-bound", "x := 3", []Option{SetVar("x", 2)}, "x:=3"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v, err := ParseValue(c.src, c.opts...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := v.Text(); got != c.text {
				t.Errorf("wrong text: want %q, got %q", c.text, got)
			}
		})
	}
}

func TestImmediate(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"pi", 3.141592653589793},
		{"2e", 5.43656365691809},
		{"sqrt(2)", 1.4142135623730951},
		{"3*sqrt(8)", 8.48528137423857},
		{"exp(1)", 2.718281828459045},
		{"ln(e)", 1},
		{"sin(pi/2)", 1},
		{"log(1000)", 3},
		{"2^0.5", 1.4142135623730951},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			e, err := Evaluate(c.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !e.IsNum() {
				t.Fatalf("result %v is not a number", e)
			}
			got := e.Multiplier().Float64()
			if d := got - c.want; d > 1e-12 || d < -1e-12 {
				t.Errorf("wrong value: want %v, got %v", c.want, got)
			}
		})
	}
}

func TestDecimalArgument(t *testing.T) {
	// A decimal argument asks for a numeric result even without Immediate.
	e, err := Parse("sqrt(2.0)")
	if err != nil {
		t.Fatal(err)
	}
	if !e.IsNum() || !e.Multiplier().IsDecimal() {
		t.Errorf("sqrt(2.0) = %v, want a decimal number", e)
	}
	e, err = Parse("sin(0.0)")
	if err != nil {
		t.Fatal(err)
	}
	if !e.IsZero() {
		t.Errorf("sin(0.0) = %v, want 0", e)
	}
}

func TestCustomFunc(t *testing.T) {
	double := Monadic("double", func(out, in *big.Float) *big.Float {
		return out.Add(in, in)
	})
	e, err := Parse("double(x) + double(x)", ParseFunc("double", double))
	if err != nil {
		t.Fatal(err)
	}
	if e.Text() != "2*double(x)" {
		t.Errorf("wrong result: %v", e)
	}
	e, err = Evaluate("double(3)", ParseFunc("double", double))
	if err != nil {
		t.Fatal(err)
	}
	if e.Text() != "6" {
		t.Errorf("wrong result: %v", e)
	}
	e, err = Parse("sqrt(x)", ParseFunc("sqrt", nil))
	if err != nil {
		t.Fatal(err)
	}
	if e.Text() != "sqrt*x" {
		t.Errorf("disabled function parsed as %v", e)
	}
	e, err = Parse("sin(x)", DisableDefaultFuncs())
	if err != nil {
		t.Fatal(err)
	}
	if e.Text() != "sin*x" {
		t.Errorf("disabled function parsed as %v", e)
	}
}

func TestSingleLetters(t *testing.T) {
	e, err := Parse("2xy + yx", SingleLetters())
	if err != nil {
		t.Fatal(err)
	}
	if e.Text() != "3*x*y" {
		t.Errorf("wrong result: %v", e)
	}
}

func TestDeferred(t *testing.T) {
	e, err := Parse("x + x", Defer())
	if err != nil {
		t.Fatal(err)
	}
	if !e.IsDeferred() {
		t.Fatalf("%v is not deferred", e)
	}
	if e.Text() != "x+x" {
		t.Errorf("wrong deferred text: %v", e)
	}
	if d := pretty.Diff([]string{"x", "x"}, texts(e.ComponentsArray())); len(d) != 0 {
		t.Errorf("wrong operands:\n%s", d)
	}
	c, err := e.Canonical()
	if err != nil {
		t.Fatal(err)
	}
	if c.IsDeferred() || c.Text() != "2*x" {
		t.Errorf("wrong canonical form: %v", c)
	}
	// Operations without Defer canonicalize deferred operands.
	s, err := e.Plus(Var("x"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Text() != "3*x" {
		t.Errorf("wrong sum: %v", s)
	}
}

func texts(es []*Expr) []string {
	r := make([]string, len(es))
	for i, e := range es {
		r[i] = e.Text()
	}
	return r
}
