package symbolic

import (
	"strconv"

	"github.com/rs/zerolog"
	"github.com/zephyrtronium/symbolic/rational"
)

// evaluator runs a converted program, building canonical values.
type evaluator struct {
	cfg  *Config
	prog *program
	log  zerolog.Logger
	// names maps values substituted for bound names back to the names, so
	// that a definition can rebind them.
	names map[*Expr]string
}

// run evaluates one scope of the program. The result is nil if the scope is
// empty.
func (ev *evaluator) run(k int) (Value, error) {
	s := &ev.prog.scopes[k]
	stack := make([]Value, 0, len(s.steps))
	pop := func() Value {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v
	}
	for _, st := range s.steps {
		var v Value
		var err error
		switch st.kind {
		case stepNum:
			v, err = ev.num(st)
		case stepName:
			v = ev.name(st.text)
		case stepScope:
			v, err = ev.scope(st)
		case stepCall:
			v, err = ev.call(st)
		case stepUnary:
			v, err = ev.unary(st, pop())
		case stepBinary:
			y := pop()
			x := pop()
			v, err = ev.binary(st, x, y)
		default:
			panic("symbolic: invalid step kind " + strconv.Itoa(int(st.kind)))
		}
		if err != nil {
			return nil, err
		}
		ev.log.Trace().Str("step", st.text).Int("pos", st.pos).Stringer("result", v).Msg("eval")
		stack = append(stack, v)
	}
	switch len(stack) {
	case 0:
		return nil, nil
	case 1:
		return stack[0], nil
	default:
		panic("symbolic: inconsistent stack: " + strconv.Itoa(len(stack)) + " items (bad program?)")
	}
}

func (ev *evaluator) num(st step) (Value, error) {
	r, err := rational.Parse(st.text)
	if err != nil {
		return nil, &LexError{Text: st.text, Kind: "number", Col: st.pos}
	}
	return Num(r), nil
}

// name resolves a name: a bound value, then a constant in immediate mode, then
// infinity, then a variable.
func (ev *evaluator) name(name string) *Expr {
	if v, ok := ev.cfg.Values[name]; ok {
		if ev.names == nil {
			ev.names = make(map[*Expr]string)
		}
		ev.names[v] = name
		return v
	}
	if isConstant(name) {
		if ev.cfg.Immediate {
			return Num(constant(name, ev.cfg.Prec))
		}
		return Var(constName(name))
	}
	if name == "Infinity" || name == "∞" {
		return Infinity(false)
	}
	return Var(name)
}

func (ev *evaluator) scope(st step) (Value, error) {
	v, err := ev.run(st.sub)
	if err != nil {
		return nil, err
	}
	open := ev.prog.scopes[st.sub].open
	if v == nil {
		if open == "[" {
			return Vector{}, nil
		}
		return nil, &EmptyExpressionError{Col: st.pos, End: closeFor(open)}
	}
	switch open {
	case "[":
		if l, ok := v.(list); ok {
			return Vector(l), nil
		}
		return Vector{v}, nil
	case "|":
		return apply("abs", v, func(x *Expr) (*Expr, error) { return abs(ev.cfg, x) })
	}
	if l, ok := v.(list); ok {
		return Collection(l), nil
	}
	return v, nil
}

func (ev *evaluator) call(st step) (Value, error) {
	fn := ev.cfg.lookupFunc(st.text)
	v, err := ev.run(st.sub)
	if err != nil {
		return nil, err
	}
	var args []Value
	switch v := v.(type) {
	case nil:
		// no arguments
	case list:
		args = v
	default:
		args = []Value{v}
	}
	if !fn.CanCall(len(args)) {
		return nil, &CallError{Col: st.pos, Func: st.text, Len: len(args)}
	}
	cfg := limitPrec(ev.cfg, fn)
	if len(args) == 1 {
		return apply(st.text, args[0], func(x *Expr) (*Expr, error) {
			return fn.Call(cfg, []*Expr{x})
		})
	}
	xs := make([]*Expr, len(args))
	for i, a := range args {
		x, ok := a.(*Expr)
		if !ok {
			return nil, &UnsupportedError{Op: st.text, Reason: "argument " + strconv.Itoa(i+1) + " is a " + describe(a)}
		}
		xs[i] = x
	}
	return fn.Call(cfg, xs)
}

func (ev *evaluator) unary(st step, v Value) (Value, error) {
	var f func(*Expr) (*Expr, error)
	switch st.act {
	case actNeg:
		f = func(x *Expr) (*Expr, error) { return x.Neg(), nil }
	case actPos:
		return v, nil
	case actFact:
		f = func(x *Expr) (*Expr, error) { return factFunc{step: 1}.Call(ev.cfg, []*Expr{x}) }
	case actDfact:
		f = func(x *Expr) (*Expr, error) { return factFunc{step: 2}.Call(ev.cfg, []*Expr{x}) }
	default:
		panic("symbolic: invalid unary operation " + st.act.String())
	}
	return apply(st.text, v, f)
}

func (ev *evaluator) binary(st step, a, b Value) (Value, error) {
	switch st.act {
	case actComma:
		if l, ok := a.(list); ok {
			return append(l[:len(l):len(l)], b), nil
		}
		return list{a, b}, nil
	case actEq:
		return &Equation{LHS: a, RHS: b}, nil
	case actDefine:
		return ev.define(a, b)
	}
	return broadcast(st.text, a, b, func(x, y *Expr) (*Expr, error) {
		return arith(ev.cfg, st.act, x, y)
	})
}

// define builds a definition of the name on the left.
func (ev *evaluator) define(a, b Value) (Value, error) {
	x, ok := a.(*Expr)
	if !ok {
		return nil, &UnsupportedError{Op: ":=", Reason: "cannot define a " + describe(a)}
	}
	if name, ok := ev.names[x]; ok {
		return &Definition{Name: name, Value: b}, nil
	}
	if x.kind != KindVar || !x.mult.IsOne() || !x.isUnitPower() || x.value == imagName {
		return nil, &UnsupportedError{Op: ":=", Reason: "cannot define " + x.keyText()}
	}
	return &Definition{Name: x.value, Value: b}, nil
}

// arith applies a binary arithmetic or comparison action to expressions.
func arith(cfg *Config, act action, x, y *Expr) (*Expr, error) {
	switch act {
	case actAdd:
		return add(cfg, x, y)
	case actSub:
		return sub(cfg, x, y)
	case actMul:
		return mul(cfg, x, y)
	case actDiv:
		return div(cfg, x, y)
	case actPow:
		return pow(cfg, x, y)
	case actMod:
		return mod(cfg, x, y)
	case actEqual, actLess, actLessEq, actGreater, actGreaterEq:
		return compare(cfg, act, x, y)
	}
	panic("symbolic: invalid binary operation " + act.String())
}

// compare gives 1 if the comparison holds and 0 if it does not. Expressions
// are equal if they have the same canonical form; ordering requires their
// difference to be a number.
func compare(cfg *Config, act action, x, y *Expr) (*Expr, error) {
	if act == actEqual && x.Equal(y) {
		return oneExpr, nil
	}
	d, err := sub(cfg, x, y)
	if err != nil {
		return nil, err
	}
	if d.kind != KindNum && d.kind != KindInfinity {
		return nil, &UnsupportedError{Op: act.String(), Reason: "cannot compare " + x.keyText() + " and " + y.keyText()}
	}
	s := d.mult.Sign()
	var r bool
	switch act {
	case actEqual:
		r = s == 0
	case actLess:
		r = s < 0
	case actLessEq:
		r = s <= 0
	case actGreater:
		r = s > 0
	case actGreaterEq:
		r = s >= 0
	}
	if r {
		return oneExpr, nil
	}
	return zeroExpr, nil
}
