package symbolic

import (
	"sort"
	"strings"

	"github.com/zephyrtronium/symbolic/rational"
)

var half = rational.New(1, 2)

// Text renders e in the input grammar, so that parsing the result gives back
// an equal value. Sums are ordered by the term sorting setting of the current
// configuration.
func (e *Expr) Text() string {
	return e.render(Current().SortTerms)
}

// String is the same as Text.
func (e *Expr) String() string {
	return e.Text()
}

// keyText renders e with components in key order. It is the canonical
// identity of e and never depends on configuration.
func (e *Expr) keyText() string {
	return e.render(false)
}

func (e *Expr) render(sorted bool) string {
	if e.deferred {
		return e.deferredText(sorted)
	}
	switch e.kind {
	case KindNum:
		return e.mult.String()
	case KindInfinity:
		if e.mult.Sign() < 0 {
			return "-Infinity"
		}
		return "Infinity"
	}
	return multText(e.mult, e.bodyText(sorted, !e.mult.IsOne()))
}

// multText prefixes body with the multiplier m.
func multText(m rational.Rational, body string) string {
	switch {
	case m.IsOne():
		return body
	case m.IsNegOne():
		return "-" + body
	case m.IsInteger() || m.IsDecimal() && !strings.Contains(m.String(), "/"):
		return m.String() + "*" + body
	case m.Sign() < 0:
		return "-(" + m.Neg().String() + ")*" + body
	default:
		return "(" + m.String() + ")*" + body
	}
}

// bodyText renders e without its multiplier. wrap indicates that a
// multiplier precedes the body, so sums at power 1 need brackets.
func (e *Expr) bodyText(sorted, wrap bool) string {
	var raw string
	switch e.kind {
	case KindVar:
		raw = e.value
	case KindFunction:
		raw = fnTextWith(e.name, e.args, sorted)
	case KindExponential:
		raw = e.args[0].render(sorted)
	case KindSum, KindGroup:
		raw = sumText(e, sorted)
	case KindProduct:
		raw = productText(e, sorted)
	default:
		panic("symbolic: no body for kind " + e.kind.String())
	}
	compound := e.kind == KindSum || e.kind == KindGroup || e.kind == KindProduct
	p, num := e.numericPower()
	if num && p.IsOne() && e.kind != KindExponential {
		if wrap && (e.kind == KindSum || e.kind == KindGroup) {
			return "(" + raw + ")"
		}
		return raw
	}
	if num && p.Equal(half) && !p.IsDecimal() {
		return "sqrt(" + raw + ")"
	}
	var b string
	if e.kind == KindExponential {
		b = baseText(e.args[0], sorted)
	} else if compound {
		b = "(" + raw + ")"
	} else {
		b = raw
	}
	return b + "^" + powerText(e.power, sorted)
}

// powerText renders an exponent, bracketing anything but non-negative
// integers and bare names.
func powerText(p *Expr, sorted bool) string {
	s := p.render(sorted)
	switch p.kind {
	case KindNum:
		if p.mult.IsInteger() && p.mult.Sign() >= 0 && !p.mult.IsDecimal() {
			return s
		}
	case KindVar, KindFunction:
		if p.mult.IsOne() && p.isUnitPower() {
			return s
		}
	case KindInfinity:
		if p.mult.Sign() > 0 {
			return s
		}
	}
	return "(" + s + ")"
}

// baseText renders u as the base of a power.
func baseText(u *Expr, sorted bool) string {
	s := u.render(sorted)
	switch u.kind {
	case KindNum:
		if u.mult.IsInteger() && u.mult.Sign() >= 0 && !u.mult.IsDecimal() {
			return s
		}
	case KindVar, KindFunction:
		if u.mult.IsOne() && u.isUnitPower() {
			return s
		}
	}
	return "(" + s + ")"
}

// baseKey is the canonical key of a base: the key under which all powers of
// it merge in a product.
func baseKey(u *Expr) string {
	return baseText(u, false)
}

func fnText(name string, args []*Expr) string {
	return fnTextWith(name, args, false)
}

func fnTextWith(name string, args []*Expr, sorted bool) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(a.render(sorted))
	}
	b.WriteByte(')')
	return b.String()
}

func sumText(e *Expr, sorted bool) string {
	members := e.terms.values()
	if sorted {
		sortTerms(members)
	}
	var b strings.Builder
	for i, m := range members {
		if i > 0 {
			b.WriteByte('+')
		}
		b.WriteString(m.render(sorted))
	}
	return strings.ReplaceAll(b.String(), "+-", "-")
}

func productText(e *Expr, sorted bool) string {
	var b strings.Builder
	e.terms.each(func(_ string, f *Expr) bool {
		if b.Len() > 0 {
			b.WriteByte('*')
		}
		s := f.render(sorted)
		if f.kind == KindSum || f.kind == KindGroup {
			if f.isUnitPower() && f.mult.IsOne() {
				s = "(" + s + ")"
			}
		}
		b.WriteString(s)
		return true
	})
	return b.String()
}

// sortTerms orders the terms of a sum for display: higher degrees first,
// numbers last, then by key.
//
// TODO(zeph): exponentials and functions of the same degree still fall back
// to key order; decide whether they should follow their arguments' degrees.
func sortTerms(ts []*Expr) {
	sort.SliceStable(ts, func(i, j int) bool {
		a, b := ts[i], ts[j]
		if (a.kind == KindNum) != (b.kind == KindNum) {
			return b.kind == KindNum
		}
		da, db := degree(a), degree(b)
		if c := da.Cmp(db); c != 0 {
			return c > 0
		}
		return termKey(a) < termKey(b)
	})
}

// degree is the total numeric power of a term, used only for ordering.
func degree(e *Expr) rational.Rational {
	switch e.kind {
	case KindNum:
		return rational.Rational{}
	case KindProduct:
		var d rational.Rational
		e.terms.each(func(_ string, f *Expr) bool {
			d = d.Add(degree(f))
			return true
		})
		return d
	case KindGroup:
		var d rational.Rational
		first := true
		e.terms.each(func(_ string, f *Expr) bool {
			if g := degree(f); first || g.Greater(d) {
				d, first = g, false
			}
			return true
		})
		return d
	}
	if p, ok := e.numericPower(); ok {
		return p
	}
	return rational.Int(1)
}

// deferredText renders an operation whose operands were not combined.
func (e *Expr) deferredText(sorted bool) string {
	var sep string
	switch e.op {
	case actAdd:
		sep = "+"
	case actMul:
		sep = "*"
	case actPow:
		return baseText(e.args[0], sorted) + "^" + powerText(e.args[1], sorted)
	default:
		panic("symbolic: invalid deferred operation " + e.op.String())
	}
	var b strings.Builder
	for i, a := range e.args {
		if i > 0 {
			b.WriteString(sep)
		}
		s := a.render(sorted)
		if e.op == actMul && (a.deferred || a.kind == KindSum || a.kind == KindGroup) {
			s = "(" + s + ")"
		}
		b.WriteString(s)
	}
	return multText(e.mult, strings.ReplaceAll(b.String(), "+-", "-"))
}

// termKey is the key under which e is stored in a sum: its text without the
// multiplier. Terms with equal keys are like terms.
func termKey(e *Expr) string {
	return keyValue(e, true, false)
}

// factorKey is the key under which e is stored in a product: the key of its
// base. Factors with equal keys merge by adding powers.
func factorKey(e *Expr) string {
	if e.kind == KindExponential {
		return e.value
	}
	return baseKey(e.base())
}

// groupKey is the key under which e is stored in a group: its power.
func groupKey(e *Expr) string {
	return e.Power().keyText()
}

// keyValue computes the canonical key of e. As a container key, numbers all
// share one slot; as a member key, numbers keep their literal value. The loose
// key is the stored identity, which ignores power, so x^-1 and x^2 share it.
// The strict key, used for sub-expressions, is the full text without the
// multiplier, so that x^-1 and (x+x^2)^-1 stay distinct.
func keyValue(e *Expr, sub, member bool) string {
	if e.kind == KindNum {
		if member {
			return e.mult.FractionText()
		}
		return numKey
	}
	if !sub {
		return e.value
	}
	if e.mult.IsOne() {
		return e.keyText()
	}
	return e.unit().keyText()
}
