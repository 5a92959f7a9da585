package symbolic

// split separates e into real and imaginary parts so that e = re + im*i.
// It reports false if i occurs in e other than as a plain factor of a term.
func split(cfg *Config, e *Expr) (re, im *Expr, ok bool, err error) {
	if !appendable(e) {
		re, im, ok = splitTerm(e)
		return re, im, ok, nil
	}
	re, im = zeroExpr, zeroExpr
	ok = true
	e.terms.each(func(_ string, t *Expr) bool {
		r, j, tok := splitTerm(scale(t, e.mult))
		if !tok {
			ok = false
			return false
		}
		if re, err = add(cfg, re, r); err != nil {
			return false
		}
		im, err = add(cfg, im, j)
		return err == nil
	})
	return re, im, ok, err
}

func splitTerm(t *Expr) (re, im *Expr, ok bool) {
	if !t.IsImaginary() {
		return t, zeroExpr, true
	}
	switch t.kind {
	case KindVar:
		if t.value == imagName && t.isUnitPower() {
			return zeroExpr, Num(t.mult), true
		}
	case KindProduct:
		f, ok := t.terms.get(imagName)
		if !ok || f.kind != KindVar || !f.isUnitPower() {
			return nil, nil, false
		}
		m := t.terms.clone()
		m.del(imagName)
		rest := finishProduct(m, t.mult)
		if rest.IsImaginary() {
			return nil, nil, false
		}
		return zeroExpr, rest, true
	}
	return nil, nil, false
}

// recombine builds re + im*i.
func recombine(cfg *Config, re, im *Expr) (*Expr, error) {
	j, err := mul(cfg, im, Var(imagName))
	if err != nil {
		return nil, err
	}
	return add(cfg, re, j)
}

// complexMul multiplies two complex values when at least one is a sum, as
// (a+bi)(c+di) = (ac-bd) + (ad+bc)i. It reports false if the rule does not
// apply.
func complexMul(cfg *Config, a, b *Expr) (*Expr, bool, error) {
	if !a.IsImaginary() || !b.IsImaginary() || (!appendable(a) && !appendable(b)) {
		return nil, false, nil
	}
	ar, ai, ok, err := split(cfg, a)
	if !ok || err != nil {
		return nil, false, err
	}
	br, bi, ok, err := split(cfg, b)
	if !ok || err != nil {
		return nil, false, err
	}
	rr, err := mul(cfg, ar, br)
	if err != nil {
		return nil, false, err
	}
	ii, err := mul(cfg, ai, bi)
	if err != nil {
		return nil, false, err
	}
	ri, err := mul(cfg, ar, bi)
	if err != nil {
		return nil, false, err
	}
	ir, err := mul(cfg, ai, br)
	if err != nil {
		return nil, false, err
	}
	re, err := sub(cfg, rr, ii)
	if err != nil {
		return nil, false, err
	}
	im, err := add(cfg, ri, ir)
	if err != nil {
		return nil, false, err
	}
	r, err := recombine(cfg, re, im)
	return r, true, err
}

// complexDiv divides by a complex sum by multiplying through by its
// conjugate. It reports false if the rule does not apply.
func complexDiv(cfg *Config, a, b *Expr) (*Expr, bool, error) {
	if !appendable(b) || !b.IsImaginary() {
		return nil, false, nil
	}
	br, bi, ok, err := split(cfg, b)
	if !ok || err != nil || br.IsZero() || bi.IsZero() {
		return nil, false, err
	}
	conj, err := recombine(cfg, br, bi.Neg())
	if err != nil {
		return nil, false, err
	}
	rr, err := mul(cfg, br, br)
	if err != nil {
		return nil, false, err
	}
	ii, err := mul(cfg, bi, bi)
	if err != nil {
		return nil, false, err
	}
	den, err := add(cfg, rr, ii)
	if err != nil {
		return nil, false, err
	}
	num, err := mul(cfg, a, conj)
	if err != nil {
		return nil, false, err
	}
	r, err := div(cfg, num, den)
	return r, true, err
}
