package symbolic

import (
	"github.com/zephyrtronium/symbolic/rational"
)

// mul is the canonical product.
func mul(cfg *Config, a, b *Expr) (*Expr, error) {
	if cfg.Defer {
		return wrap(actMul, a, b), nil
	}
	a, b, err := operands(cfg, a, b)
	if err != nil {
		return nil, err
	}
	if rank[a.kind] > rank[b.kind] {
		a, b = b, a
	}
	switch a.kind {
	case KindNum:
		switch {
		case b.kind == KindNum:
			return Num(a.mult.Mul(b.mult)), nil
		case b.kind == KindInfinity:
			if a.IsZero() {
				return nil, &UndefinedError{Op: "*", Expr: "0*Infinity"}
			}
			return Infinity(a.mult.Sign() != b.mult.Sign()), nil
		case a.IsZero():
			return zeroExpr, nil
		}
		return scale(b, a.mult), nil
	case KindInfinity:
		// Infinity absorbs every nonzero factor, taking only its sign.
		return Infinity(a.mult.Sign() != b.mult.Sign()), nil
	}
	if c, ok, err := complexMul(cfg, a, b); ok || err != nil {
		return c, err
	}
	if factorKey(a) == factorKey(b) {
		return combine(cfg, a, b)
	}
	return merge(cfg, a, b)
}

// combine multiplies two factors with the same base by adding their powers.
func combine(cfg *Config, a, b *Expr) (*Expr, error) {
	p, err := add(cfg, a.Power(), b.Power())
	if err != nil {
		return nil, err
	}
	r, err := pow(cfg, a.base(), p)
	if err != nil {
		return nil, err
	}
	return mul(cfg, Num(a.mult.Mul(b.mult)), r)
}

// merge builds the product of a and b, combining factors with equal bases.
func merge(cfg *Config, a, b *Expr) (*Expr, error) {
	m := newTermMap()
	mult := rational.Int(1)
	for _, e := range [...]*Expr{a, b} {
		if e.kind == KindProduct {
			mult = mult.Mul(e.mult)
			var err error
			e.terms.each(func(_ string, f *Expr) bool {
				err = insertFactor(cfg, m, f, &mult)
				return err == nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}
		if err := insertFactor(cfg, m, e, &mult); err != nil {
			return nil, err
		}
	}
	return finishProduct(m, mult), nil
}

// insertFactor adds f to a product's factors, moving its multiplier into mult.
func insertFactor(cfg *Config, m *termMap, f *Expr, mult *rational.Rational) error {
	if f.kind == KindNum {
		*mult = mult.Mul(f.mult)
		return nil
	}
	if !f.mult.IsOne() && f.kind != KindInfinity {
		*mult = mult.Mul(f.mult)
		f = f.unit()
	}
	if f.kind == KindProduct {
		var err error
		f.terms.each(func(_ string, g *Expr) bool {
			err = insertFactor(cfg, m, g, mult)
			return err == nil
		})
		return err
	}
	k := factorKey(f)
	old, ok := m.get(k)
	if !ok {
		m.set(k, f)
		return nil
	}
	m.del(k)
	c, err := combine(cfg, old, f)
	if err != nil {
		return err
	}
	return insertFactor(cfg, m, c, mult)
}

// finishProduct builds the canonical value of factors m times mult.
func finishProduct(m *termMap, mult rational.Rational) *Expr {
	if mult.IsZero() {
		return Num(mult)
	}
	switch m.len() {
	case 0:
		return Num(mult)
	case 1:
		return scale(m.first(), mult)
	}
	e := &Expr{kind: KindProduct, mult: mult, power: oneExpr, terms: m}
	e.value = productText(e, false)
	return e
}

// div is the canonical quotient.
func div(cfg *Config, a, b *Expr) (*Expr, error) {
	if !cfg.Defer {
		var err error
		if a, b, err = operands(cfg, a, b); err != nil {
			return nil, err
		}
		switch {
		case b.IsZero():
			return nil, &UndefinedError{Op: "/", Expr: a.keyText() + "/0", Err: rational.ErrDivisionByZero}
		case a.kind == KindNum && b.kind == KindNum:
			q, err := a.mult.Div(b.mult)
			if err != nil {
				return nil, &UndefinedError{Op: "/", Expr: a.keyText() + "/0", Err: err}
			}
			return Num(q), nil
		case b.kind == KindInfinity:
			if a.kind == KindInfinity {
				return nil, &UndefinedError{Op: "/", Expr: "Infinity/Infinity"}
			}
			return zeroExpr, nil
		}
		if c, ok, err := complexDiv(cfg, a, b); ok || err != nil {
			return c, err
		}
	}
	inv, err := pow(cfg, b, Int(-1))
	if err != nil {
		return nil, err
	}
	return mul(cfg, a, inv)
}
