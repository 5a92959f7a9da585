package symbolic

import (
	"errors"
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
	"github.com/zephyrtronium/symbolic/rational"
)

// Func is a function applied to canonical expressions.
type Func interface {
	// Call applies the function. args has a length for which CanCall returned
	// true. Call must not modify args. Functions that have no rule for their
	// arguments should return an application of the function by name with Fn.
	Call(cfg *Config, args []*Expr) (*Expr, error)

	// CanCall returns whether the function can be called with n arguments.
	// A call with a different number of arguments is a parse error.
	CanCall(n int) bool
}

// PrecLimiter is implemented by functions that compute to a limited precision.
// Their arguments are converted to no more than MaxPrec bits.
type PrecLimiter interface {
	MaxPrec() uint
}

var globalfuncs = map[string]Func{
	"sqrt":  sqrtFunc{},
	"root":  rootFunc{},
	"abs":   absFunc{},
	"exp":   monadic{name: "exp", f: bigfloat.Exp}.with(exact0(1)),
	"ln":    monadic{name: "ln", f: checkPos(bigfloat.Log)}.with(exact1(0)),
	"log":   monadic{name: "log", f: checkPos(log10)}.with(exact1(0)),
	"sin":   float64Func("sin", math.Sin).with(exact0(0)),
	"cos":   float64Func("cos", math.Cos).with(exact0(1)),
	"tan":   float64Func("tan", math.Tan).with(exact0(0)),
	"asin":  float64Func("asin", math.Asin).with(exact0(0)),
	"acos":  float64Func("acos", math.Acos).with(exact1(0)),
	"atan":  float64Func("atan", math.Atan).with(exact0(0)),
	"sinh":  float64Func("sinh", math.Sinh).with(exact0(0)),
	"cosh":  float64Func("cosh", math.Cosh).with(exact0(1)),
	"tanh":  float64Func("tanh", math.Tanh).with(exact0(0)),
	"fact":  factFunc{step: 1},
	"dfact": factFunc{step: 2},
	"mod":   modFunc{},
	"floor": roundFunc{name: "floor", f: rational.Rational.Floor},
	"ceil":  roundFunc{name: "ceil", f: ceil},
	"min":   extremumFunc{name: "min", sign: -1},
	"max":   extremumFunc{name: "max", sign: 1},
}

// DisableDefaultFuncs returns an option that disables all default functions.
// Their names parse as variables instead.
func DisableDefaultFuncs() Option {
	m := make(map[string]Func, len(globalfuncs))
	for k := range globalfuncs {
		m[k] = nil
	}
	return ParseFuncs(m)
}

// callName applies the registered function name to args, or builds an
// uninterpreted application if there is none.
func callName(cfg *Config, name string, args []*Expr) (*Expr, error) {
	fn := cfg.lookupFunc(name)
	if fn == nil || !fn.CanCall(len(args)) {
		return Fn(name, args...), nil
	}
	return fn.Call(limitPrec(cfg, fn), args)
}

// limitPrec lowers the precision of cfg to the function's ceiling.
func limitPrec(cfg *Config, fn Func) *Config {
	l, ok := fn.(PrecLimiter)
	if !ok || l.MaxPrec() == 0 || l.MaxPrec() >= cfg.Prec {
		return cfg
	}
	c := *cfg
	c.Prec = l.MaxPrec()
	return &c
}

type monadic struct {
	name  string
	f     func(out, in *big.Float) *big.Float
	prec  uint
	exact func(x rational.Rational) (rational.Rational, bool)
}

// Monadic wraps a numeric function of one variable into a Func named name.
// The function is applied when its argument is a number and immediate
// evaluation is enabled or the number is a decimal; otherwise the call stays
// symbolic. f must set out to its result, to the precision of out; its return
// value is always ignored. If f is called on an argument outside its domain,
// it should panic with an error of type big.ErrNaN, or that unwraps to it.
func Monadic(name string, f func(out, in *big.Float) *big.Float) Func {
	return monadic{name: name, f: f}
}

func (m monadic) with(exact func(rational.Rational) (rational.Rational, bool)) monadic {
	m.exact = exact
	return m
}

func (m monadic) Call(cfg *Config, args []*Expr) (*Expr, error) {
	x := args[0]
	if x.kind != KindNum {
		return Fn(m.name, x), nil
	}
	if m.exact != nil {
		if r, ok := m.exact(x.mult); ok {
			return Num(r), nil
		}
	}
	if !cfg.Immediate && !x.mult.IsDecimal() {
		return Fn(m.name, x), nil
	}
	r, err := m.eval(cfg.Prec, x.mult.Float(cfg.Prec))
	if err != nil {
		return nil, err
	}
	v, err := rational.FromFloat(r)
	if err != nil {
		return nil, &UndefinedError{Op: m.name, Expr: fnText(m.name, args), Err: err}
	}
	return Num(v), nil
}

// eval applies the numeric function, converting panics from domain errors
// into errors.
func (m monadic) eval(prec uint, in *big.Float) (r *big.Float, err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		e, ok := p.(error)
		if !ok {
			panic(p)
		}
		var nan big.ErrNaN
		var dom DomainError
		if errors.As(e, &nan) || errors.As(e, &dom) {
			r, err = nil, &UndefinedError{Op: m.name, Expr: m.name + "(" + in.String() + ")", Err: e}
			return
		}
		panic(p)
	}()
	r = new(big.Float).SetPrec(prec)
	m.f(r, in)
	if r.IsInf() {
		return nil, &UndefinedError{Op: m.name, Expr: m.name + "(" + in.String() + ")"}
	}
	return r, nil
}

func (m monadic) CanCall(n int) bool {
	return n == 1
}

func (m monadic) MaxPrec() uint {
	return m.prec
}

// float64Func wraps a float64 function. Its results have at most 53 bits.
func float64Func(name string, f func(float64) float64) monadic {
	return monadic{
		name: name,
		f: func(out, in *big.Float) *big.Float {
			x, _ := in.Float64()
			r := f(x)
			if math.IsNaN(r) || math.IsInf(r, 0) {
				panic(DomainError{X: in, Func: name})
			}
			return out.SetFloat64(r)
		},
		prec: 53,
	}
}

func checkPos(f func(out, in *big.Float) *big.Float) func(out, in *big.Float) *big.Float {
	return func(out, in *big.Float) *big.Float {
		if in.Sign() <= 0 {
			panic(DomainError{X: in})
		}
		return f(out, in)
	}
}

func log10(out, in *big.Float) *big.Float {
	bigfloat.Log(out, in)
	ten := new(big.Float).SetPrec(out.Prec()).SetInt64(10)
	bigfloat.Log(ten, ten)
	return out.Quo(out, ten)
}

// exact0 gives the exact value of a function at 0.
func exact0(v int64) func(rational.Rational) (rational.Rational, bool) {
	return func(x rational.Rational) (rational.Rational, bool) {
		return rational.Int(v), x.IsZero() && !x.IsDecimal()
	}
}

// exact1 gives the exact value of a function at 1.
func exact1(v int64) func(rational.Rational) (rational.Rational, bool) {
	return func(x rational.Rational) (rational.Rational, bool) {
		return rational.Int(v), x.IsOne() && !x.IsDecimal()
	}
}

// DomainError is an error returned when a function is called on arguments
// outside its domain. It matches ErrUndefined.
type DomainError struct {
	// X is the out-of-domain argument.
	X *big.Float
	// Func is a name identifying the function.
	Func string
}

func (err DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}

func (err DomainError) Is(target error) bool { return target == ErrUndefined }

type sqrtFunc struct{}

func (sqrtFunc) Call(cfg *Config, args []*Expr) (*Expr, error) {
	return pow(cfg, args[0], Num(half))
}

func (sqrtFunc) CanCall(n int) bool { return n == 1 }

// rootFunc is root(x, n), the nth root of x.
type rootFunc struct{}

func (rootFunc) Call(cfg *Config, args []*Expr) (*Expr, error) {
	p, err := div(cfg, oneExpr, args[1])
	if err != nil {
		return nil, err
	}
	return pow(cfg, args[0], p)
}

func (rootFunc) CanCall(n int) bool { return n == 2 }

type absFunc struct{}

func (absFunc) Call(cfg *Config, args []*Expr) (*Expr, error) {
	return abs(cfg, args[0])
}

func (absFunc) CanCall(n int) bool { return n == 1 }

// abs gives the absolute value of x.
func abs(cfg *Config, x *Expr) (*Expr, error) {
	switch x.kind {
	case KindNum:
		return Num(x.mult.Abs()), nil
	case KindInfinity:
		return Infinity(false), nil
	}
	m := x.mult.Abs()
	u := x.unit()
	if u.kind == KindFunction && u.name == "abs" {
		return scale(u, m), nil
	}
	if q, ok := u.numericPower(); ok && q.IsInteger() && q.IsEven() && u.kind != KindGroup && u.kind != KindSum && !u.IsImaginary() {
		return scale(u, m), nil
	}
	if u.kind == KindExponential && u.args[0].kind == KindNum && u.args[0].mult.Sign() > 0 {
		return scale(u, m), nil
	}
	if re, im, ok, err := split(cfg, u); err != nil {
		return nil, err
	} else if ok && !im.IsZero() && re.kind == KindNum && im.kind == KindNum {
		rr, err := mul(cfg, re, re)
		if err != nil {
			return nil, err
		}
		ii, err := mul(cfg, im, im)
		if err != nil {
			return nil, err
		}
		s, err := add(cfg, rr, ii)
		if err != nil {
			return nil, err
		}
		r, err := pow(cfg, s, Num(half))
		if err != nil {
			return nil, err
		}
		return mul(cfg, Num(m), r)
	}
	return scale(Fn("abs", u), m), nil
}

// factFunc is the factorial with a step of 1, or the double factorial with a
// step of 2.
type factFunc struct {
	step int64
}

// maxFact bounds exact factorials.
const maxFact = 100000

func (f factFunc) name() string {
	if f.step == 2 {
		return "dfact"
	}
	return "fact"
}

func (f factFunc) Call(cfg *Config, args []*Expr) (*Expr, error) {
	x := args[0]
	if x.kind != KindNum || !x.mult.IsInteger() {
		return Fn(f.name(), x), nil
	}
	n, ok := x.mult.Int64()
	switch {
	case x.mult.Sign() < 0:
		if f.step == 2 && n == -1 {
			return oneExpr, nil
		}
		return nil, &UndefinedError{Op: f.name(), Expr: fnText(f.name(), args)}
	case !ok || n > maxFact:
		return nil, &UnsupportedError{Op: f.name(), Reason: "argument too large"}
	}
	r := big.NewInt(1)
	for k := n; k > 1; k -= f.step {
		r.Mul(r, big.NewInt(k))
	}
	v, _ := rational.FromBig(r, big.NewInt(1))
	return Num(v), nil
}

func (factFunc) CanCall(n int) bool { return n == 1 }

type modFunc struct{}

func (modFunc) Call(cfg *Config, args []*Expr) (*Expr, error) {
	return mod(cfg, args[0], args[1])
}

func (modFunc) CanCall(n int) bool { return n == 2 }

// mod gives the remainder of x/y truncated toward zero.
func mod(cfg *Config, x, y *Expr) (*Expr, error) {
	if y.IsZero() {
		return nil, &UndefinedError{Op: "%", Expr: x.keyText() + "%0", Err: rational.ErrDivisionByZero}
	}
	if x.kind != KindNum || y.kind != KindNum {
		return Fn("mod", x, y), nil
	}
	r, err := x.mult.Mod(y.mult)
	if err != nil {
		return nil, &UndefinedError{Op: "%", Expr: x.keyText() + "%0", Err: err}
	}
	return Num(r), nil
}

type roundFunc struct {
	name string
	f    func(rational.Rational) rational.Rational
}

func (r roundFunc) Call(cfg *Config, args []*Expr) (*Expr, error) {
	if args[0].kind != KindNum {
		return Fn(r.name, args[0]), nil
	}
	return Num(r.f(args[0].mult)), nil
}

func (roundFunc) CanCall(n int) bool { return n == 1 }

func ceil(x rational.Rational) rational.Rational {
	return x.Neg().Floor().Neg()
}

type extremumFunc struct {
	name string
	sign int
}

func (f extremumFunc) Call(cfg *Config, args []*Expr) (*Expr, error) {
	r := args[0]
	for _, a := range args {
		if a.kind != KindNum {
			return Fn(f.name, args...), nil
		}
		if a.mult.Cmp(r.mult) == f.sign {
			r = a
		}
	}
	return r, nil
}

func (extremumFunc) CanCall(n int) bool { return n > 0 }
