package symbolic

// maxDegree bounds the degree of polynomials that Coeffs expands.
const maxDegree = 1 << 16

// Coeffs returns the coefficients of e as a polynomial in the variable name,
// indexed by degree. The coefficients may contain other variables. If e is
// not a polynomial in name, the error matches ErrNotANumber.
func (e *Expr) Coeffs(name string) ([]*Expr, error) {
	cfg := Current()
	if cfg.Defer {
		c := *cfg
		c.Defer = false
		cfg = &c
	}
	if e.deferred {
		c, err := canonical(cfg, e)
		if err != nil {
			return nil, err
		}
		e = c
	}
	terms, err := expandTerms(cfg, e, name)
	if err != nil {
		return nil, err
	}
	r := []*Expr{zeroExpr}
	for _, t := range terms {
		k, c, err := monomial(cfg, t, name)
		if err != nil {
			return nil, err
		}
		for len(r) <= k {
			r = append(r, zeroExpr)
		}
		if r[k], err = add(cfg, r[k], c); err != nil {
			return nil, err
		}
	}
	for len(r) > 1 && r[len(r)-1].IsZero() {
		r = r[:len(r)-1]
	}
	return r, nil
}

// termsOf lists the terms of e if it is a sum, or e alone otherwise.
func termsOf(e *Expr) []*Expr {
	if !appendable(e) {
		return []*Expr{e}
	}
	var r []*Expr
	e.terms.each(func(_ string, t *Expr) bool {
		r = append(r, scale(t, e.mult))
		return true
	})
	return r
}

// expandTerms multiplies out the sums in e that contain name, including
// non-negative integer powers of sums, and returns the resulting terms.
// Sums under other powers are left for monomial to reject.
func expandTerms(cfg *Config, e *Expr, name string) ([]*Expr, error) {
	if !e.HasVariable(name) {
		return []*Expr{e}, nil
	}
	switch {
	case appendable(e):
		var r []*Expr
		for _, t := range termsOf(e) {
			ts, err := expandTerms(cfg, t, name)
			if err != nil {
				return nil, err
			}
			r = append(r, ts...)
		}
		return r, nil
	case e.kind == KindSum || e.kind == KindGroup:
		p, ok := e.numericPower()
		if !ok || !p.IsInteger() || p.Sign() < 0 {
			return []*Expr{e}, nil
		}
		k, ok := p.Int64()
		if !ok || k > maxDegree {
			return nil, &UnsupportedError{Op: "coefficients", Reason: "degree too large"}
		}
		base, err := expandTerms(cfg, e.base(), name)
		if err != nil {
			return nil, err
		}
		r := []*Expr{Num(e.mult)}
		for i := int64(0); i < k; i++ {
			if r, err = distribute(cfg, r, base); err != nil {
				return nil, err
			}
		}
		return r, nil
	case e.kind == KindProduct:
		r := []*Expr{Num(e.mult)}
		err := e.Each(func(_ string, f *Expr) error {
			fs, err := expandTerms(cfg, f, name)
			if err != nil {
				return err
			}
			r, err = distribute(cfg, r, fs)
			return err
		})
		return r, err
	}
	return []*Expr{e}, nil
}

// distribute multiplies two lists of terms and returns the terms of the
// collected product.
func distribute(cfg *Config, a, b []*Expr) ([]*Expr, error) {
	s := zeroExpr
	for _, x := range a {
		for _, y := range b {
			p, err := mul(cfg, x, y)
			if err != nil {
				return nil, err
			}
			if s, err = add(cfg, s, p); err != nil {
				return nil, err
			}
		}
	}
	return termsOf(s), nil
}

// monomial splits a term into its degree in name and its coefficient.
func monomial(cfg *Config, t *Expr, name string) (int, *Expr, error) {
	if !t.HasVariable(name) {
		return 0, t, nil
	}
	switch t.kind {
	case KindVar:
		k, err := varDegree(t, name)
		if err != nil {
			return 0, nil, err
		}
		return k, Num(t.mult), nil
	case KindProduct:
		deg := 0
		c := Num(t.mult)
		err := t.Each(func(_ string, f *Expr) error {
			if !f.HasVariable(name) {
				var err error
				c, err = mul(cfg, c, f)
				return err
			}
			if f.kind != KindVar {
				return notPolynomial(t, name)
			}
			k, err := varDegree(f, name)
			deg += k
			return err
		})
		if err != nil {
			return 0, nil, err
		}
		return deg, c, nil
	}
	return 0, nil, notPolynomial(t, name)
}

// varDegree gives the power of a variable as a degree.
func varDegree(v *Expr, name string) (int, error) {
	p, ok := v.numericPower()
	if !ok || !p.IsInteger() || p.Sign() < 0 {
		return 0, notPolynomial(v, name)
	}
	k, ok := p.Int64()
	if !ok || k > maxDegree {
		return 0, &UnsupportedError{Op: "coefficients", Reason: "degree too large"}
	}
	return int(k), nil
}

func notPolynomial(e *Expr, name string) error {
	return &NotANumberError{Expr: e.keyText(), Want: "a polynomial in " + name}
}
