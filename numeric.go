package symbolic

import (
	"errors"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
	"github.com/zephyrtronium/symbolic/rational"
)

// Compiled is the numeric form of an expression. It takes the values of the
// variables named when it was compiled, in order, and returns the value of
// the expression at them.
type Compiled func(args ...*big.Float) (*big.Float, error)

// Compile converts e to a numeric function of the named variables, computing
// to prec bits. The constants pi and e are allowed unless they are named as
// variables. Every other variable in e must be named. Expressions containing
// the imaginary unit cannot be compiled.
func (e *Expr) Compile(prec uint, vars ...string) (Compiled, error) {
	cfg := Current()
	if prec == 0 {
		prec = cfg.Prec
	}
	if e.deferred {
		c, err := canonical(cfg, e)
		if err != nil {
			return nil, err
		}
		e = c
	}
	cp := compiler{cfg: cfg, prec: prec, vars: make(map[string]int, len(vars))}
	for i, v := range vars {
		cp.vars[v] = i
	}
	if err := cp.compile(e); err != nil {
		return nil, err
	}
	prog := cp.prog
	return func(args ...*big.Float) (*big.Float, error) {
		if len(args) != len(vars) {
			return nil, &UnsupportedError{Op: "compiled", Reason: "want " + strconv.Itoa(len(vars)) + " arguments, have " + strconv.Itoa(len(args))}
		}
		m := machine{prec: prec, args: args, stack: make([]*big.Float, 0, 8)}
		return m.run(prog)
	}, nil
}

// instr is one step of a compiled program.
type instr func(m *machine) error

// machine is the stack on which compiled programs run.
type machine struct {
	stack []*big.Float
	args  []*big.Float
	prec  uint
}

func (m *machine) run(prog []instr) (r *big.Float, err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		var nan big.ErrNaN
		if e, ok := p.(error); ok && errors.As(e, &nan) {
			r, err = nil, &UndefinedError{Op: "numeric", Expr: nan.Error(), Err: e}
			return
		}
		panic(p)
	}()
	for _, in := range prog {
		if err := in(m); err != nil {
			return nil, err
		}
	}
	switch len(m.stack) {
	case 1:
		return m.stack[0], nil
	default:
		panic("symbolic: inconsistent stack: " + strconv.Itoa(len(m.stack)) + " items (bad program?)")
	}
}

// push adds a new value with the machine's precision to the stack.
func (m *machine) push() *big.Float {
	r := new(big.Float).SetPrec(m.prec)
	m.stack = append(m.stack, r)
	return r
}

// pop removes the top from the stack and returns it.
func (m *machine) pop() *big.Float {
	r := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (m *machine) top() *big.Float {
	return m.stack[len(m.stack)-1]
}

// compiler translates canonical expressions to programs.
type compiler struct {
	cfg  *Config
	prec uint
	vars map[string]int
	prog []instr
}

func (cp *compiler) emit(in instr) {
	cp.prog = append(cp.prog, in)
}

func (cp *compiler) compile(e *Expr) error {
	switch e.kind {
	case KindNum:
		cp.constant(e.mult.Float(cp.prec))
		return nil
	case KindInfinity:
		cp.constant(new(big.Float).SetInf(e.mult.Sign() < 0))
		return nil
	case KindVar:
		if err := cp.variable(e.value); err != nil {
			return err
		}
	case KindFunction:
		if err := cp.call(e); err != nil {
			return err
		}
	case KindExponential:
		if err := cp.compile(e.args[0]); err != nil {
			return err
		}
	case KindProduct:
		if err := cp.fold(e, binaryInstr((*big.Float).Mul)); err != nil {
			return err
		}
	case KindSum, KindGroup:
		if err := cp.fold(e, binaryInstr((*big.Float).Add)); err != nil {
			return err
		}
	default:
		panic("symbolic: cannot compile kind " + e.kind.String())
	}
	if !e.isUnitPower() {
		if err := cp.compile(e.power); err != nil {
			return err
		}
		cp.emit(powInstr)
	}
	if !e.mult.IsOne() {
		cp.constant(e.mult.Float(cp.prec))
		cp.emit(binaryInstr((*big.Float).Mul))
	}
	return nil
}

// constant emits a push of a fixed value.
func (cp *compiler) constant(x *big.Float) {
	cp.emit(func(m *machine) error {
		m.push().Set(x)
		return nil
	})
}

func (cp *compiler) variable(name string) error {
	if k, ok := cp.vars[name]; ok {
		cp.emit(func(m *machine) error {
			m.push().Set(m.args[k])
			return nil
		})
		return nil
	}
	switch {
	case name == imagName:
		return &NotANumberError{Expr: name, Want: "a real number"}
	case isConstant(name):
		cp.constant(constantFloat(name, cp.prec))
		return nil
	}
	return &NameError{Name: name}
}

// fold emits the components of a container combined with op.
func (cp *compiler) fold(e *Expr, op instr) error {
	n := 0
	err := e.Each(func(_ string, c *Expr) error {
		if err := cp.compile(c); err != nil {
			return err
		}
		if n > 0 {
			cp.emit(op)
		}
		n++
		return nil
	})
	return err
}

func (cp *compiler) call(e *Expr) error {
	fn := cp.cfg.lookupFunc(e.name)
	nf, ok := fn.(numericFunc)
	if !ok || !fn.CanCall(len(e.args)) {
		return &NotANumberError{Expr: e.keyText(), Want: "a numeric function"}
	}
	for _, a := range e.args {
		if err := cp.compile(a); err != nil {
			return err
		}
	}
	n := len(e.args)
	name, text := e.name, e.keyText()
	cp.emit(func(m *machine) error {
		k := len(m.stack) - n
		args := m.stack[k:]
		out := new(big.Float).SetPrec(m.prec)
		if err := nf.numeric(out, args); err != nil {
			var dom DomainError
			if errors.As(err, &dom) {
				return &UndefinedError{Op: name, Expr: text, Err: err}
			}
			return err
		}
		m.stack = append(m.stack[:k], out)
		return nil
	})
	return nil
}

// binaryInstr makes an instruction from a big.Float method.
func binaryInstr(f func(z, x, y *big.Float) *big.Float) instr {
	return func(m *machine) error {
		r := m.pop()
		l := m.top()
		f(l, l, r)
		return nil
	}
}

func powInstr(m *machine) error {
	r := m.pop()
	l := m.top()
	return powFloat(l, l, r)
}

// powFloat sets z to x^y. Negative bases are allowed with integer exponents.
func powFloat(z, x, y *big.Float) error {
	switch {
	case x.Sign() == 0:
		switch y.Sign() {
		case 0:
			return DomainError{X: x, Func: "^"}
		case -1:
			z.SetInf(false)
		default:
			z.SetInt64(0)
		}
		return nil
	case y.IsInt():
		if x.Sign() > 0 {
			bigfloat.Pow(z, x, y)
			return nil
		}
		n, _ := y.Int(nil)
		bigfloat.Pow(z, new(big.Float).Neg(x), y)
		if n.Bit(0) == 1 {
			z.Neg(z)
		}
		return nil
	case x.Sign() < 0:
		return DomainError{X: x, Func: "^"}
	}
	bigfloat.Pow(z, x, y)
	return nil
}

// numericFunc is implemented by functions that Compile can evaluate. numeric
// sets out to the result at the precision of out.
type numericFunc interface {
	numeric(out *big.Float, args []*big.Float) error
}

func (m monadic) numeric(out *big.Float, args []*big.Float) error {
	prec := out.Prec()
	if m.prec != 0 && m.prec < prec {
		prec = m.prec
	}
	r, err := m.eval(prec, args[0])
	if err != nil {
		return err
	}
	out.Set(r)
	return nil
}

func (sqrtFunc) numeric(out *big.Float, args []*big.Float) error {
	if args[0].Sign() < 0 {
		return DomainError{X: args[0], Func: "sqrt"}
	}
	out.Sqrt(args[0])
	return nil
}

func (rootFunc) numeric(out *big.Float, args []*big.Float) error {
	if args[1].Sign() == 0 {
		return DomainError{X: args[1], Func: "root"}
	}
	p := new(big.Float).SetPrec(out.Prec()).SetInt64(1)
	p.Quo(p, args[1])
	return powFloat(out, args[0], p)
}

func (absFunc) numeric(out *big.Float, args []*big.Float) error {
	out.Abs(args[0])
	return nil
}

func (f factFunc) numeric(out *big.Float, args []*big.Float) error {
	x := args[0]
	if !x.IsInt() || x.Sign() < 0 {
		return DomainError{X: x, Func: f.name()}
	}
	n, acc := x.Int64()
	if acc != big.Exact || n > maxFact {
		return &UnsupportedError{Op: f.name(), Reason: "argument too large"}
	}
	out.SetInt64(1)
	for k := n; k > 1; k -= f.step {
		out.Mul(out, new(big.Float).SetInt64(k))
	}
	return nil
}

func (modFunc) numeric(out *big.Float, args []*big.Float) error {
	x, y := args[0], args[1]
	if y.Sign() == 0 || x.IsInf() {
		return DomainError{X: y, Func: "mod"}
	}
	q := new(big.Float).SetPrec(out.Prec()).Quo(x, y)
	t, _ := q.Int(nil)
	q.SetInt(t)
	q.Mul(q, y)
	out.Sub(x, q)
	return nil
}

func (r roundFunc) numeric(out *big.Float, args []*big.Float) error {
	x := args[0]
	if x.IsInf() {
		out.Set(x)
		return nil
	}
	q, _ := x.Rat(nil)
	out.Set(r.f(rational.FromRat(q)).Float(out.Prec()))
	return nil
}

func (f extremumFunc) numeric(out *big.Float, args []*big.Float) error {
	r := args[0]
	for _, a := range args[1:] {
		if a.Cmp(r) == f.sign {
			r = a
		}
	}
	out.Set(r)
	return nil
}
