package symbolic

// Sub replaces every occurrence of the variable name in e with value and
// recanonicalizes the result under the current configuration.
func (e *Expr) Sub(name string, value *Expr) (*Expr, error) {
	return rebuild(Current(), e, func(v *Expr) *Expr {
		if v.value == name {
			return value
		}
		return nil
	})
}

// Eval recanonicalizes e under the current configuration with opts applied.
// Variables bound by Values or SetVar are replaced by their values, and with
// Immediate, constants and functions of numbers become decimal numbers.
func (e *Expr) Eval(opts ...Option) (*Expr, error) {
	cfg := derive(Current(), opts)
	var r *Expr
	err := scoped(cfg, func() error {
		var err error
		r, err = rebuild(cfg, e, func(v *Expr) *Expr {
			if x, ok := cfg.Values[v.value]; ok {
				return x
			}
			if cfg.Immediate && isConstant(v.value) {
				return Num(constant(v.value, cfg.Prec))
			}
			return nil
		})
		return err
	})
	return r, err
}

// rebuild reconstructs e through the rewrite operations, replacing each
// variable v for which leaf returns non-nil. leaf receives variables at unit
// power and multiplier.
func rebuild(cfg *Config, e *Expr, leaf func(v *Expr) *Expr) (*Expr, error) {
	if e.deferred {
		c, err := canonical(cfg, e)
		if err != nil {
			return nil, err
		}
		e = c
	}
	var body *Expr
	var err error
	switch e.kind {
	case KindNum, KindInfinity:
		return e, nil
	case KindVar:
		body = leaf(Var(e.value))
		if body == nil {
			body = Var(e.value)
		}
	case KindFunction:
		args := make([]*Expr, len(e.args))
		for i, a := range e.args {
			if args[i], err = rebuild(cfg, a, leaf); err != nil {
				return nil, err
			}
		}
		if body, err = callName(cfg, e.name, args); err != nil {
			return nil, err
		}
	case KindExponential:
		if body, err = rebuild(cfg, e.args[0], leaf); err != nil {
			return nil, err
		}
	case KindProduct:
		body = oneExpr
		err = e.Each(func(_ string, f *Expr) error {
			x, err := rebuild(cfg, f, leaf)
			if err != nil {
				return err
			}
			body, err = mul(cfg, body, x)
			return err
		})
	case KindSum, KindGroup:
		body = zeroExpr
		err = e.Each(func(_ string, t *Expr) error {
			x, err := rebuild(cfg, t, leaf)
			if err != nil {
				return err
			}
			body, err = add(cfg, body, x)
			return err
		})
	default:
		panic("symbolic: cannot rebuild kind " + e.kind.String())
	}
	if err != nil {
		return nil, err
	}
	if !e.isUnitPower() {
		p, err := rebuild(cfg, e.power, leaf)
		if err != nil {
			return nil, err
		}
		if body, err = pow(cfg, body, p); err != nil {
			return nil, err
		}
	}
	if e.mult.IsOne() {
		return body, nil
	}
	return mul(cfg, Num(e.mult), body)
}
