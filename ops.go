package symbolic

import (
	"github.com/zephyrtronium/symbolic/rational"
)

// action is an operation of the evaluator.
type action int8

const (
	actNone action = iota
	actAdd
	actSub
	actMul
	actDiv
	actPow
	actMod
	actNeg
	actPos
	actFact
	actDfact
	actComma
	actEq
	actDefine
	actEqual
	actLess
	actLessEq
	actGreater
	actGreaterEq
)

var actionNames = [...]string{
	actNone:      "none",
	actAdd:       "+",
	actSub:       "-",
	actMul:       "*",
	actDiv:       "/",
	actPow:       "^",
	actMod:       "%",
	actNeg:       "neg",
	actPos:       "pos",
	actFact:      "!",
	actDfact:     "!!",
	actComma:     ",",
	actEq:        "=",
	actDefine:    ":=",
	actEqual:     "==",
	actLess:      "<",
	actLessEq:    "<=",
	actGreater:   ">",
	actGreaterEq: ">=",
}

func (a action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "action(?)"
	}
	return actionNames[a]
}

// Plus returns e+f under the current configuration.
func (e *Expr) Plus(f *Expr) (*Expr, error) {
	return add(Current(), e, f)
}

// Minus returns e-f under the current configuration.
func (e *Expr) Minus(f *Expr) (*Expr, error) {
	return sub(Current(), e, f)
}

// Times returns e*f under the current configuration.
func (e *Expr) Times(f *Expr) (*Expr, error) {
	return mul(Current(), e, f)
}

// Divide returns e/f under the current configuration.
func (e *Expr) Divide(f *Expr) (*Expr, error) {
	return div(Current(), e, f)
}

// Pow returns e^f under the current configuration.
func (e *Expr) Pow(f *Expr) (*Expr, error) {
	return pow(Current(), e, f)
}

// Neg returns -e.
func (e *Expr) Neg() *Expr {
	return scale(e, rational.Int(-1))
}

// Canonical combines the operands of a value built with canonicalization
// deferred. Values that are already canonical are returned unchanged.
func (e *Expr) Canonical() (*Expr, error) {
	return canonical(Current(), e)
}

// scale multiplies e by a rational.
func scale(e *Expr, r rational.Rational) *Expr {
	if r.IsOne() {
		return e
	}
	if e.kind == KindInfinity {
		if r.Sign() < 0 {
			return Infinity(e.mult.Sign() > 0)
		}
		return e
	}
	return e.withMult(e.mult.Mul(r))
}

// wrap builds a deferred operation.
func wrap(op action, a, b *Expr) *Expr {
	e := &Expr{
		kind:     KindSum,
		mult:     rational.Int(1),
		power:    oneExpr,
		args:     []*Expr{a, b},
		deferred: true,
		op:       op,
	}
	switch op {
	case actMul:
		e.kind = KindProduct
	case actPow:
		e.kind = KindExponential
	}
	e.value = e.keyText()
	return e
}

// operands canonicalizes deferred operands for an operation that is not
// itself deferred.
func operands(cfg *Config, a, b *Expr) (*Expr, *Expr, error) {
	var err error
	if a.deferred {
		if a, err = canonical(cfg, a); err != nil {
			return nil, nil, err
		}
	}
	if b.deferred {
		if b, err = canonical(cfg, b); err != nil {
			return nil, nil, err
		}
	}
	return a, b, nil
}

// canonical rebuilds a deferred tree with canonicalization enabled.
func canonical(cfg *Config, e *Expr) (*Expr, error) {
	if !e.deferred {
		return e, nil
	}
	if cfg.Defer {
		c := *cfg
		c.Defer = false
		cfg = &c
	}
	a, err := canonical(cfg, e.args[0])
	if err != nil {
		return nil, err
	}
	b, err := canonical(cfg, e.args[1])
	if err != nil {
		return nil, err
	}
	var r *Expr
	switch e.op {
	case actAdd:
		r, err = add(cfg, a, b)
	case actMul:
		r, err = mul(cfg, a, b)
	case actPow:
		r, err = pow(cfg, a, b)
	default:
		panic("symbolic: invalid deferred operation " + e.op.String())
	}
	if err != nil {
		return nil, err
	}
	return mul(cfg, Num(e.mult), r)
}

// add is the canonical sum.
func add(cfg *Config, a, b *Expr) (*Expr, error) {
	if cfg.Defer {
		return wrap(actAdd, a, b), nil
	}
	a, b, err := operands(cfg, a, b)
	if err != nil {
		return nil, err
	}
	if rank[a.kind] > rank[b.kind] {
		a, b = b, a
	}
	switch {
	case a.IsZero():
		return b, nil
	case b.IsZero():
		return a, nil
	case a.kind == KindNum && b.kind == KindNum:
		return Num(a.mult.Add(b.mult)), nil
	case b.kind == KindInfinity:
		if a.kind == KindInfinity && a.mult.Sign() != b.mult.Sign() {
			return nil, &UndefinedError{Op: "+", Expr: "Infinity-Infinity"}
		}
		return b, nil
	case a.kind == KindInfinity:
		return a, nil
	}
	if termKey(a) == termKey(b) {
		return like(a, b), nil
	}
	return join(a, b), nil
}

// sub is the canonical difference.
func sub(cfg *Config, a, b *Expr) (*Expr, error) {
	if cfg.Defer {
		return wrap(actAdd, a, scale(b, rational.Int(-1))), nil
	}
	a, b, err := operands(cfg, a, b)
	if err != nil {
		return nil, err
	}
	return add(cfg, a, scale(b, rational.Int(-1)))
}

// like adds two terms with the same term key.
func like(a, b *Expr) *Expr {
	m := a.mult.Add(b.mult)
	if m.IsZero() {
		return Num(m)
	}
	return a.withMult(m)
}

// appendable reports whether e's members can be spliced into a sum.
func appendable(e *Expr) bool {
	return (e.kind == KindSum || e.kind == KindGroup) && e.isUnitPower()
}

// join builds the sum of two terms that are not like terms.
func join(a, b *Expr) *Expr {
	var m *termMap
	switch {
	case appendable(a) && appendable(b):
		m = members(a)
		b.terms.each(func(_ string, t *Expr) bool {
			insertTerm(m, scale(t, b.mult))
			return true
		})
	case appendable(a):
		m = members(a)
		insertTerm(m, b)
	case appendable(b):
		m = members(b)
		insertTerm(m, a)
	default:
		m = newTermMap()
		insertTerm(m, a)
		insertTerm(m, b)
	}
	return finishSum(m)
}

// members returns the terms of an appendable container keyed by term key,
// with its multiplier distributed.
func members(c *Expr) *termMap {
	if c.kind == KindSum && c.mult.IsOne() {
		return c.terms.clone()
	}
	m := newTermMap()
	c.terms.each(func(_ string, t *Expr) bool {
		t = scale(t, c.mult)
		m.set(termKey(t), t)
		return true
	})
	return m
}

// insertTerm adds t to a sum's terms, combining it with a like term.
func insertTerm(m *termMap, t *Expr) {
	k := termKey(t)
	old, ok := m.get(k)
	if !ok {
		if !t.IsZero() {
			m.set(k, t)
		}
		return
	}
	var s *Expr
	if t.kind == KindNum {
		s = Num(old.mult.Add(t.mult))
	} else {
		s = like(old, t)
	}
	if s.IsZero() {
		m.del(k)
		return
	}
	m.set(k, s)
}

// finishSum builds the canonical value of the terms in m.
func finishSum(m *termMap) *Expr {
	switch m.len() {
	case 0:
		return zeroExpr
	case 1:
		return m.first()
	}
	if g := asGroup(m); g != nil {
		return g
	}
	e := &Expr{kind: KindSum, mult: rational.Int(1), power: oneExpr, terms: m}
	e.value = sumText(e, false)
	return e
}

// asGroup builds a group from the terms in m if they are all powers of one
// variable or of one function application.
func asGroup(m *termMap) *Expr {
	var kind Kind
	var value string
	ok := true
	m.each(func(_ string, t *Expr) bool {
		if t.kind != KindVar && t.kind != KindFunction {
			ok = false
			return false
		}
		if _, num := t.numericPower(); !num {
			ok = false
			return false
		}
		k := keyValue(t, false, false)
		if kind == KindNone {
			kind, value = t.kind, k
		}
		ok = t.kind == kind && k == value
		return ok
	})
	if !ok {
		return nil
	}
	g := newTermMap()
	m.each(func(_ string, t *Expr) bool {
		g.set(groupKey(t), t)
		return true
	})
	return &Expr{kind: KindGroup, value: value, mult: rational.Int(1), power: oneExpr, terms: g}
}
