package symbolic

import (
	"errors"
	"math"
	"math/big"
	"testing"
)

func TestCompile(t *testing.T) {
	cases := []struct {
		src  string
		vars []string
		args []float64
		want float64
	}{
		{"x+x", []string{"x"}, []float64{2.84}, 5.68},
		{"x^2 + y", []string{"x", "y"}, []float64{3, 1}, 10},
		{"x*y/2", []string{"x", "y"}, []float64{3, 5}, 7.5},
		{"sqrt(x)", []string{"x"}, []float64{4}, 2},
		{"root(x, 3)", []string{"x"}, []float64{27}, 3},
		{"abs(x)", []string{"x"}, []float64{-3}, 3},
		{"x^3", []string{"x"}, []float64{-2}, -8},
		{"x^-2", []string{"x"}, []float64{-2}, 0.25},
		{"2^x", []string{"x"}, []float64{3}, 8},
		{"pi*x", []string{"x"}, []float64{1}, math.Pi},
		{"e", nil, nil, math.E},
		{"mod(x, 3)", []string{"x"}, []float64{7}, 1},
		{"x!", []string{"x"}, []float64{5}, 120},
		{"x!!", []string{"x"}, []float64{7}, 105},
		{"floor(x)", []string{"x"}, []float64{2.5}, 2},
		{"ceil(x)", []string{"x"}, []float64{2.5}, 3},
		{"max(x, y, 1)", []string{"x", "y"}, []float64{-1, 0.5}, 1},
		{"min(x, y, 1)", []string{"x", "y"}, []float64{-1, 0.5}, -1},
		{"exp(x)", []string{"x"}, []float64{1}, math.E},
		{"ln(x)", []string{"x"}, []float64{math.E}, 1},
		{"sin(x)", []string{"x"}, []float64{math.Pi / 2}, 1},
		{"x+y", []string{"y", "x"}, []float64{1, 2}, 3},
		{"3", nil, nil, 3},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			e, err := Parse(c.src)
			if err != nil {
				t.Fatalf("unexpected parse error: %v", err)
			}
			f, err := e.Compile(0, c.vars...)
			if err != nil {
				t.Fatalf("unexpected compile error: %v", err)
			}
			args := make([]*big.Float, len(c.args))
			for i, a := range c.args {
				args[i] = big.NewFloat(a)
			}
			r, err := f(args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, _ := r.Float64()
			if d := got - c.want; d > 1e-12 || d < -1e-12 {
				t.Errorf("wrong value: want %v, got %v", c.want, got)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	cases := []struct {
		name string
		e    *Expr
		vars []string
		err  error
	}{
		{"unbound", Var("y"), []string{"x"}, ErrNotANumber},
		{"imaginary", Var("i"), nil, ErrNotANumber},
		{"unknown-func", Fn("g", Var("x")), []string{"x"}, ErrNotANumber},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := c.e.Compile(0, c.vars...)
			if !errors.Is(err, c.err) {
				t.Errorf("wrong error: want %v, got %v", c.err, err)
			}
		})
	}
	_, err := Var("y").Compile(0, "x")
	var ne *NameError
	if !errors.As(err, &ne) || ne.Name != "y" {
		t.Errorf("wrong error for unbound variable: %v", err)
	}
}

func TestCompiledErrors(t *testing.T) {
	cases := []struct {
		src  string
		args []float64
		err  error
	}{
		{"x^(1/2)", []float64{-4}, ErrUndefined},
		{"sqrt(x)", []float64{-4}, ErrUndefined},
		{"ln(x)", []float64{-1}, ErrUndefined},
		{"x^y", []float64{0, 0}, ErrUndefined},
		{"mod(x, y)", []float64{1, 0}, ErrUndefined},
		{"x!", []float64{-1}, ErrUndefined},
		{"x!", []float64{2.5}, ErrUndefined},
		{"x", []float64{1, 2}, ErrUnsupported},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			e, err := Parse(c.src)
			if err != nil {
				t.Fatalf("unexpected parse error: %v", err)
			}
			vars := e.Variables()
			f, err := e.Compile(0, vars...)
			if err != nil {
				t.Fatalf("unexpected compile error: %v", err)
			}
			args := make([]*big.Float, len(c.args))
			for i, a := range c.args {
				args[i] = big.NewFloat(a)
			}
			r, err := f(args...)
			if !errors.Is(err, c.err) {
				t.Errorf("wrong error: want %v, got %v (result %v)", c.err, err, r)
			}
		})
	}
}

func TestCompilePrec(t *testing.T) {
	e, err := Parse("x/3")
	if err != nil {
		t.Fatal(err)
	}
	f, err := e.Compile(200, "x")
	if err != nil {
		t.Fatal(err)
	}
	r, err := f(big.NewFloat(1))
	if err != nil {
		t.Fatal(err)
	}
	if r.Prec() != 200 {
		t.Errorf("wrong precision: want 200, got %d", r.Prec())
	}
}

func TestPowFloat(t *testing.T) {
	cases := []struct {
		x, y float64
		want float64
		err  bool
	}{
		{2, 10, 1024, false},
		{-2, 3, -8, false},
		{-2, 2, 4, false},
		{4, 0.5, 2, false},
		{0, 2, 0, false},
		{0, -1, math.Inf(1), false},
		{0, 0, 0, true},
		{-4, 0.5, 0, true},
	}
	for _, c := range cases {
		z := new(big.Float).SetPrec(64)
		err := powFloat(z, big.NewFloat(c.x), big.NewFloat(c.y))
		if c.err {
			if !errors.Is(err, ErrUndefined) {
				t.Errorf("%v^%v: wrong error: %v", c.x, c.y, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%v^%v: unexpected error: %v", c.x, c.y, err)
			continue
		}
		got, _ := z.Float64()
		if math.IsInf(c.want, 0) {
			if !math.IsInf(got, 0) {
				t.Errorf("%v^%v: want %v, got %v", c.x, c.y, c.want, got)
			}
			continue
		}
		if d := got - c.want; d > 1e-12 || d < -1e-12 {
			t.Errorf("%v^%v: want %v, got %v", c.x, c.y, c.want, got)
		}
	}
}
