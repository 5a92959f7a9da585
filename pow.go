package symbolic

import (
	"errors"
	"math/big"

	"github.com/zephyrtronium/symbolic/rational"
)

// maxExpand bounds the integer powers of complex sums that are expanded.
const maxExpand = 64

// pow is the canonical power.
func pow(cfg *Config, a, b *Expr) (*Expr, error) {
	if cfg.Defer {
		return wrap(actPow, a, b), nil
	}
	a, b, err := operands(cfg, a, b)
	if err != nil {
		return nil, err
	}
	switch b.kind {
	case KindNum:
		return powNum(cfg, a, b.mult)
	case KindInfinity:
		return powInf(a, b)
	}
	return powSym(cfg, a, b)
}

func powNum(cfg *Config, a *Expr, p rational.Rational) (*Expr, error) {
	if p.IsZero() {
		switch {
		case a.IsZero():
			return nil, &UndefinedError{Op: "^", Expr: "0^0"}
		case a.kind == KindInfinity:
			return nil, &UndefinedError{Op: "^", Expr: "Infinity^0"}
		}
		return oneExpr, nil
	}
	if p.IsOne() {
		return a, nil
	}
	switch a.kind {
	case KindNum:
		return numPow(cfg, a.mult, p)
	case KindInfinity:
		if a.mult.Sign() < 0 && !p.IsInteger() {
			return nil, &UndefinedError{Op: "^", Expr: "(-Infinity)^(" + p.String() + ")"}
		}
		if p.Sign() < 0 {
			return zeroExpr, nil
		}
		return Infinity(a.mult.Sign() < 0 && !p.IsEven()), nil
	case KindProduct:
		r, err := numPow(cfg, a.mult, p)
		if err != nil {
			return nil, err
		}
		a.terms.each(func(_ string, f *Expr) bool {
			var fp *Expr
			if fp, err = powNum(cfg, f, p); err != nil {
				return false
			}
			r, err = mul(cfg, r, fp)
			return err == nil
		})
		return r, err
	}
	if p.IsInteger() && appendable(a) && a.IsImaginary() {
		if k, ok := p.Int64(); ok && k <= maxExpand && k >= -maxExpand {
			return expand(cfg, a, k)
		}
	}
	coef := oneExpr
	if !a.mult.IsOne() {
		var err error
		if coef, err = numPow(cfg, a.mult, p); err != nil {
			return nil, err
		}
	}
	u := a.unit()
	var r *Expr
	if u.kind == KindExponential {
		base := u.args[0]
		if p.IsInteger() || (base.kind == KindNum && base.mult.Sign() > 0) {
			np, err := mul(cfg, u.power, Num(p))
			if err != nil {
				return nil, err
			}
			if r, err = pow(cfg, base, np); err != nil {
				return nil, err
			}
		} else {
			r = exponential(u, Num(p))
		}
	} else {
		q, _ := u.numericPower()
		r = raise(u, q, q.Mul(p))
	}
	return mul(cfg, coef, r)
}

// raise gives the base of u, which is at power q, the power np. Even powers
// taken to odd roots become powers of the absolute value.
func raise(u *Expr, q, np rational.Rational) *Expr {
	if np.IsZero() {
		return oneExpr
	}
	b := u.base()
	if evenNum(q) && !evenNum(np) {
		b = absOf(b)
	}
	if b.kind == KindVar && b.value == imagName && np.IsInteger() {
		return imagPow(np)
	}
	if np.IsOne() {
		return b
	}
	c := b.copy()
	c.power = Num(np)
	return c
}

// evenNum reports whether the numerator of r is even.
func evenNum(r rational.Rational) bool {
	return r.Num().Bit(0) == 0
}

// absOf applies abs to a unit.
func absOf(b *Expr) *Expr {
	if b.kind == KindFunction && b.name == "abs" {
		return b
	}
	return Fn("abs", b)
}

// imagPow gives i^k for integer k.
func imagPow(k rational.Rational) *Expr {
	m, _ := k.Mod(rational.Int(4))
	if m.Sign() < 0 {
		m = m.Add(rational.Int(4))
	}
	n, _ := m.Int64()
	switch n {
	case 0:
		return oneExpr
	case 1:
		return Var(imagName)
	case 2:
		return Int(-1)
	default:
		return Var(imagName).withMult(rational.Int(-1))
	}
}

// expand computes an integer power of a complex sum by repeated
// multiplication.
func expand(cfg *Config, a *Expr, k int64) (*Expr, error) {
	n := k
	if n < 0 {
		n = -n
	}
	r := oneExpr
	for i := int64(0); i < n; i++ {
		var err error
		if r, err = mul(cfg, r, a); err != nil {
			return nil, err
		}
	}
	if k < 0 {
		return div(cfg, oneExpr, r)
	}
	return r, nil
}

// numPow computes r^p for a rational p. Exact roots are extracted, and the
// remaining irrational part is kept symbolic unless immediate evaluation is
// enabled.
func numPow(cfg *Config, r, p rational.Rational) (*Expr, error) {
	if p.IsInteger() {
		v, err := r.Pow(p, cfg.Prec)
		switch {
		case errors.Is(err, rational.ErrDivisionByZero):
			return nil, &UndefinedError{Op: "^", Expr: "0^" + p.String(), Err: err}
		case err != nil:
			return nil, &UnsupportedError{Op: "^", Reason: err.Error()}
		}
		return Num(v), nil
	}
	switch {
	case r.IsZero():
		if p.Sign() < 0 {
			return nil, &UndefinedError{Op: "^", Expr: "0^" + p.String(), Err: rational.ErrDivisionByZero}
		}
		return zeroExpr, nil
	case r.IsOne():
		return oneExpr, nil
	}
	if (r.IsDecimal() || p.IsDecimal()) && r.Sign() > 0 {
		v, err := r.Pow(p, cfg.Prec)
		if err != nil {
			return nil, &UnsupportedError{Op: "^", Reason: err.Error()}
		}
		return Num(v), nil
	}
	n := new(big.Int).Set(p.Num())
	if !p.Den().IsUint64() {
		return exponential(Num(r), Num(p)), nil
	}
	k := p.Den().Uint64()
	if n.Sign() < 0 {
		r, _ = r.Invert()
		n.Neg(n)
	}
	nr, err := rational.FromBig(n, big.NewInt(1))
	if err != nil {
		return nil, err
	}
	base, err := r.Pow(nr, cfg.Prec)
	if err != nil {
		return nil, &UnsupportedError{Op: "^", Reason: err.Error()}
	}
	neg := base.Sign() < 0
	out, in := base.Abs().Root(k)
	if neg && k%2 == 1 {
		out, neg = out.Neg(), false
	}
	if !neg {
		in, k = in.Radical(k)
	}
	res := Num(out)
	if !in.IsOne() || (neg && k != 2) {
		if neg && k != 2 {
			in = in.Neg()
		}
		root, _ := rational.FromBig(big.NewInt(1), new(big.Int).SetUint64(k))
		var ie *Expr
		if cfg.Immediate && in.Sign() > 0 {
			v, err := in.Pow(root, cfg.Prec)
			if err != nil {
				return nil, &UnsupportedError{Op: "^", Reason: err.Error()}
			}
			ie = Num(v)
		} else {
			ie = exponential(Num(in), Num(root))
		}
		if res, err = mul(cfg, res, ie); err != nil {
			return nil, err
		}
	}
	if neg && k == 2 {
		return mul(cfg, res, Var(imagName))
	}
	return res, nil
}

// powInf raises a to an infinite power.
func powInf(a, b *Expr) (*Expr, error) {
	pos := b.mult.Sign() > 0
	switch a.kind {
	case KindNum:
		m := a.mult.Abs()
		switch {
		case a.IsZero():
			if pos {
				return zeroExpr, nil
			}
			return nil, &UndefinedError{Op: "^", Expr: "0^-Infinity", Err: rational.ErrDivisionByZero}
		case m.IsOne():
			return nil, &UndefinedError{Op: "^", Expr: "1^Infinity"}
		}
		if m.Greater(rational.Int(1)) == pos {
			if a.mult.Sign() < 0 {
				return nil, &UndefinedError{Op: "^", Expr: a.keyText() + "^Infinity"}
			}
			return Infinity(false), nil
		}
		return zeroExpr, nil
	case KindInfinity:
		return nil, &UndefinedError{Op: "^", Expr: "Infinity^Infinity"}
	}
	return exponential(a, b), nil
}

// powSym raises a to a power that is not a number.
func powSym(cfg *Config, a, b *Expr) (*Expr, error) {
	switch a.kind {
	case KindNum:
		if a.IsZero() || a.IsOne() {
			return a, nil
		}
		return exponential(a, b), nil
	case KindInfinity:
		return nil, &UnsupportedError{Op: "^", Reason: "symbolic power of Infinity"}
	}
	coef := oneExpr
	if !a.mult.IsOne() {
		var err error
		if coef, err = powSym(cfg, Num(a.mult), b); err != nil {
			return nil, err
		}
	}
	u := a.unit()
	var r *Expr
	switch u.kind {
	case KindProduct:
		r = exponential(u, b)
	case KindExponential:
		base := u.args[0]
		if base.kind != KindNum || base.mult.Sign() < 0 {
			r = exponential(u, b)
			break
		}
		np, err := mul(cfg, u.power, b)
		if err != nil {
			return nil, err
		}
		if r, err = pow(cfg, base, np); err != nil {
			return nil, err
		}
	default:
		q, _ := u.numericPower()
		np := b
		if !q.IsOne() {
			var err error
			if np, err = mul(cfg, Num(q), b); err != nil {
				return nil, err
			}
		}
		r = exponential(u.base(), np)
	}
	return mul(cfg, coef, r)
}
