package symbolic

import (
	"errors"
	"testing"

	"github.com/kr/pretty"
)

func TestCoeffs(t *testing.T) {
	cases := []struct {
		src  string
		name string
		want []string
	}{
		{"3x^2 + 2x + 1", "x", []string{"1", "2", "3"}},
		{"x^2 + x", "x", []string{"0", "1", "1"}},
		{"x^3 - x", "x", []string{"0", "-1", "0", "1"}},
		{"a*x^2 + b", "x", []string{"b", "0", "a"}},
		{"2*a*x*y + x", "x", []string{"0", "2*a*y+1"}},
		{"2*(x + 1)", "x", []string{"2", "2"}},
		{"x/2", "x", []string{"0", "1/2"}},
		{"y", "x", []string{"y"}},
		{"0", "x", []string{"0"}},
		{"sin(y)*x + 1", "x", []string{"1", "sin(y)"}},
		{"(x+1)^2", "x", []string{"1", "2", "1"}},
		{"x*(x+1)", "x", []string{"0", "1", "1"}},
		{"(x+1)^2*y", "x", []string{"y", "2*y", "y"}},
		{"(x+y)^2", "x", []string{"y^2", "2*y", "1"}},
		{"(x^2+x)^2", "x", []string{"0", "0", "1", "2", "1"}},
		{"3*(x-1)^3", "x", []string{"-3", "9", "-9", "3"}},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			e, err := Parse(c.src)
			if err != nil {
				t.Fatalf("unexpected parse error: %v", err)
			}
			r, err := e.Coeffs(c.name)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d := pretty.Diff(c.want, texts(r)); len(d) != 0 {
				t.Errorf("wrong coefficients:\n%s", d)
			}
		})
	}
}

func TestCoeffsErrors(t *testing.T) {
	for _, src := range []string{"1/x", "sqrt(x)", "sin(x)", "2^x", "x + sqrt(x)", "(x+1)^-1", "(x+1)^(1/2)"} {
		t.Run(src, func(t *testing.T) {
			e, err := Parse(src)
			if err != nil {
				t.Fatalf("unexpected parse error: %v", err)
			}
			_, err = e.Coeffs("x")
			if !errors.Is(err, ErrNotANumber) {
				t.Errorf("wrong error: %v", err)
			}
		})
	}
}
