package symbolic

import (
	"testing"
)

// corpus is a set of canonical expressions that properties are checked over.
var corpus = []string{
	"0",
	"1",
	"-3/4",
	"x",
	"-x",
	"2*y",
	"x+1",
	"x^2+x",
	"x^2",
	"x^(1/2)",
	"sqrt(2)",
	"2^x",
	"x^y",
	"sin(x)",
	"abs(x)",
	"x*y",
	"(x+1)^2",
	"i",
	"1+i",
	"pi",
}

func parseCorpus(t *testing.T) []*Expr {
	t.Helper()
	r := make([]*Expr, len(corpus))
	for i, src := range corpus {
		e, err := Parse(src)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", src, err)
		}
		r[i] = e
	}
	return r
}

func TestTextRoundTrip(t *testing.T) {
	srcs := append(corpus,
		"x/2", "2*sqrt(2)", "x^(2*y)", "fact(x)", "mod(x, 2)", "3*i",
		"-Infinity", "x^2+x+1", "2*(x+y)", "0.75", "sin(x)^2",
		"1/3 + 0.5", "2.84*1.25", "0.1^30", "x/3.0",
	)
	for _, src := range srcs {
		t.Run(src, func(t *testing.T) {
			e, err := Parse(src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			f, err := Parse(e.Text())
			if err != nil {
				t.Fatalf("reparsing %q: %v", e.Text(), err)
			}
			if !e.Equal(f) {
				t.Errorf("%q reparsed as %q", e.Text(), f.Text())
			}
			if f.Text() != e.Text() {
				t.Errorf("text changed: %q became %q", e.Text(), f.Text())
			}
		})
	}
}

func TestCanonicalIdempotent(t *testing.T) {
	for _, e := range parseCorpus(t) {
		c, err := e.Canonical()
		if err != nil {
			t.Errorf("%v: unexpected error: %v", e, err)
			continue
		}
		if c != e {
			t.Errorf("Canonical of canonical %v built a new value %v", e, c)
		}
	}
}

func TestCommutative(t *testing.T) {
	es := parseCorpus(t)
	for _, a := range es {
		for _, b := range es {
			ab, err := a.Plus(b)
			if err != nil {
				t.Errorf("(%v)+(%v): unexpected error: %v", a, b, err)
				continue
			}
			ba, err := b.Plus(a)
			if err != nil {
				t.Errorf("(%v)+(%v): unexpected error: %v", b, a, err)
				continue
			}
			if !ab.Equal(ba) {
				t.Errorf("(%v)+(%v) = %v but (%v)+(%v) = %v", a, b, ab, b, a, ba)
			}
			ab, err = a.Times(b)
			if err != nil {
				t.Errorf("(%v)*(%v): unexpected error: %v", a, b, err)
				continue
			}
			ba, err = b.Times(a)
			if err != nil {
				t.Errorf("(%v)*(%v): unexpected error: %v", b, a, err)
				continue
			}
			if !ab.Equal(ba) {
				t.Errorf("(%v)*(%v) = %v but (%v)*(%v) = %v", a, b, ab, b, a, ba)
			}
		}
	}
}

func TestIdentities(t *testing.T) {
	for _, e := range parseCorpus(t) {
		s, err := e.Plus(Int(0))
		if err != nil || !s.Equal(e) {
			t.Errorf("%v+0 = %v, %v", e, s, err)
		}
		p, err := e.Times(Int(1))
		if err != nil || !p.Equal(e) {
			t.Errorf("%v*1 = %v, %v", e, p, err)
		}
		d, err := e.Minus(e)
		if err != nil || !d.IsZero() {
			t.Errorf("%v-%v = %v, %v", e, e, d, err)
		}
		n := e.Neg().Neg()
		if !n.Equal(e) {
			t.Errorf("-(-(%v)) = %v", e, n)
		}
		q, err := e.Pow(Int(1))
		if err != nil || !q.Equal(e) {
			t.Errorf("%v^1 = %v, %v", e, q, err)
		}
		if e.IsZero() {
			continue
		}
		q, err = e.Pow(Int(0))
		if err != nil || !q.IsOne() {
			t.Errorf("%v^0 = %v, %v", e, q, err)
		}
		q, err = e.Divide(e)
		if err != nil || !q.IsOne() {
			t.Errorf("%v/%v = %v, %v", e, e, q, err)
		}
	}
}
