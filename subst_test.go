package symbolic

import (
	"errors"
	"math"
	"testing"
)

func TestSub(t *testing.T) {
	cases := []struct {
		src   string
		name  string
		value string
		want  string
	}{
		{"x^2 + y", "x", "3", "y+9"},
		{"x + y", "x", "y", "2*y"},
		{"x*y", "x", "y", "y^2"},
		{"x^2", "x", "x + 1", "(x+1)^2"},
		{"sin(x)", "x", "0", "0"},
		{"sqrt(x)", "x", "4", "2"},
		{"2^x", "x", "3", "8"},
		{"3*x", "x", "1/3", "1"},
		{"x + 1", "y", "2", "x+1"},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			e, err := Parse(c.src)
			if err != nil {
				t.Fatalf("unexpected parse error: %v", err)
			}
			v, err := Parse(c.value)
			if err != nil {
				t.Fatalf("unexpected parse error: %v", err)
			}
			r, err := e.Sub(c.name, v)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := r.Text(); got != c.want {
				t.Errorf("wrong result: want %q, got %q", c.want, got)
			}
		})
	}
}

func TestSubUndefined(t *testing.T) {
	e, err := Parse("1/x")
	if err != nil {
		t.Fatal(err)
	}
	_, err = e.Sub("x", Int(0))
	if !errors.Is(err, ErrUndefined) {
		t.Errorf("wrong error: %v", err)
	}
}

func TestEval(t *testing.T) {
	e, err := Parse("x + pi")
	if err != nil {
		t.Fatal(err)
	}
	r, err := e.Eval(SetVar("x", 1))
	if err != nil {
		t.Fatal(err)
	}
	if r.Text() != "pi+1" {
		t.Errorf("wrong symbolic result: %v", r)
	}
	if e.Text() != "pi+x" {
		t.Errorf("Eval modified its receiver: %v", e)
	}
	r, err = e.Eval(SetVar("x", 1), Immediate())
	if err != nil {
		t.Fatal(err)
	}
	if !r.IsNum() {
		t.Fatalf("immediate result %v is not a number", r)
	}
	if got := r.Multiplier().Float64(); math.Abs(got-(math.Pi+1)) > 1e-12 {
		t.Errorf("wrong value: want %v, got %v", math.Pi+1, got)
	}
}

func TestEvalFunc(t *testing.T) {
	e, err := Parse("sqrt(x) + ln(y)")
	if err != nil {
		t.Fatal(err)
	}
	r, err := e.Eval(Values(map[string]interface{}{"x": 4, "y": 1}))
	if err != nil {
		t.Fatal(err)
	}
	if r.Text() != "2" {
		t.Errorf("wrong result: %v", r)
	}
	r, err = e.Eval(Values(map[string]interface{}{"x": 2, "y": 1}))
	if err != nil {
		t.Fatal(err)
	}
	if r.Text() != "sqrt(2)" {
		t.Errorf("wrong symbolic result: %v", r)
	}
}
