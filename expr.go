package symbolic

import (
	"sort"

	"github.com/zephyrtronium/symbolic/rational"
)

// Kind is the shape of a canonical expression.
type Kind int8

const (
	KindNone Kind = iota
	// KindNum is an exact rational number. Its value is the multiplier.
	KindNum
	// KindVar is a variable raised to a numeric power.
	KindVar
	// KindExponential is a base held as a unit raised to a power that is
	// symbolic, or a non-integer power of a number.
	KindExponential
	// KindFunction is a function application.
	KindFunction
	// KindGroup is a sum of terms that share one base and differ only in
	// their powers, e.g. x+x^2.
	KindGroup
	// KindProduct is a product of factors with distinct bases.
	KindProduct
	// KindSum is a sum of terms that cannot be combined.
	KindSum
	// KindInfinity is signed infinity.
	KindInfinity
)

var kindNames = [...]string{
	KindNone:        "None",
	KindNum:         "Num",
	KindVar:         "Var",
	KindExponential: "Exponential",
	KindFunction:    "Function",
	KindGroup:       "Group",
	KindProduct:     "Product",
	KindSum:         "Sum",
	KindInfinity:    "Infinity",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(?)"
	}
	return kindNames[k]
}

// rank orders kinds for operand commutation. The rewrite rules always see the
// lower-ranked operand first.
var rank = [...]int8{
	KindNum:         0,
	KindInfinity:    1,
	KindVar:         2,
	KindFunction:    3,
	KindExponential: 4,
	KindGroup:       5,
	KindProduct:     6,
	KindSum:         7,
}

// numKey is the shared container key under which all numeric terms of a sum
// are stored.
const numKey = "#"

// imagName is the imaginary unit.
const imagName = "i"

// Expr is a canonical symbolic value. Exprs are immutable: every operation
// returns a new value, and no operation modifies its operands.
type Expr struct {
	kind Kind
	// value is the loose identity of the expression, ignoring multiplier and
	// power. See keyValue.
	value string
	mult  rational.Rational
	// power is nil only for numbers.
	power *Expr
	// terms holds the components of products, sums, and groups.
	terms *termMap
	// name is the function name of a function application.
	name string
	// args are the arguments of a function application, the base of an
	// exponential in args[0], or the operands of a deferred operation.
	args []*Expr
	// deferred marks values built with canonicalization suspended.
	deferred bool
	// op is the operation a deferred value wraps.
	op action
}

var (
	zeroExpr = Int(0)
	oneExpr  = Int(1)
)

// Num creates a number.
func Num(r rational.Rational) *Expr {
	return &Expr{kind: KindNum, value: numKey, mult: r}
}

// Int creates an integer.
func Int(n int64) *Expr {
	return Num(rational.Int(n))
}

// Frac creates the number n/d. Panics if d is zero.
func Frac(n, d int64) *Expr {
	return Num(rational.New(n, d))
}

// Var creates a variable. The name i is the imaginary unit.
func Var(name string) *Expr {
	return &Expr{kind: KindVar, value: name, mult: rational.Int(1), power: oneExpr}
}

// Infinity creates positive or negative infinity.
func Infinity(neg bool) *Expr {
	m := rational.Int(1)
	if neg {
		m = m.Neg()
	}
	return &Expr{kind: KindInfinity, value: "Infinity", mult: m, power: oneExpr}
}

// Fn creates an uninterpreted function application. Use the function
// registry to apply simplification rules for known functions.
func Fn(name string, args ...*Expr) *Expr {
	e := &Expr{
		kind:  KindFunction,
		name:  name,
		args:  append([]*Expr(nil), args...),
		mult:  rational.Int(1),
		power: oneExpr,
	}
	e.value = fnText(name, e.args)
	return e
}

// exponential creates base^p held as a unit. base must have multiplier 1.
func exponential(base, p *Expr) *Expr {
	return &Expr{
		kind:  KindExponential,
		value: baseKey(base),
		mult:  rational.Int(1),
		power: p,
		args:  []*Expr{base},
	}
}

// copy returns a shallow copy of e that is safe to modify.
func (e *Expr) copy() *Expr {
	c := *e
	if e.terms != nil {
		c.terms = e.terms.clone()
	}
	if e.args != nil {
		c.args = append([]*Expr(nil), e.args...)
	}
	return &c
}

// withMult returns e with its multiplier replaced.
func (e *Expr) withMult(m rational.Rational) *Expr {
	if e.kind == KindNum {
		return Num(m)
	}
	c := e.copy()
	c.mult = m
	return c
}

// unit returns e with multiplier 1.
func (e *Expr) unit() *Expr {
	if e.mult.IsOne() {
		return e
	}
	return e.withMult(rational.Int(1))
}

// base returns the unit that e raises to its power: the variable, function,
// or container itself at power 1, or the held base of an exponential.
func (e *Expr) base() *Expr {
	switch e.kind {
	case KindExponential:
		return e.args[0]
	case KindNum:
		return e
	}
	c := e.copy()
	c.mult = rational.Int(1)
	c.power = oneExpr
	return c
}

// Kind returns the kind of e.
func (e *Expr) Kind() Kind {
	return e.kind
}

// Value returns the loose identity string of e: the variable or function
// text, the base of an exponential or group, or the joined components of a
// product or sum. Numbers all share one value.
func (e *Expr) Value() string {
	return e.value
}

// Multiplier returns the rational coefficient of e. For numbers this is the
// number itself.
func (e *Expr) Multiplier() rational.Rational {
	return e.mult
}

// Power returns the exponent of e. Numbers report 0.
func (e *Expr) Power() *Expr {
	if e.power == nil {
		return zeroExpr
	}
	return e.power
}

// Name returns the function name of a function application.
func (e *Expr) Name() string {
	return e.name
}

// Args returns a copy of the arguments of a function application.
func (e *Expr) Args() []*Expr {
	if e.kind != KindFunction {
		return nil
	}
	return append([]*Expr(nil), e.args...)
}

// Base returns the base of an exponential, or nil for other kinds.
func (e *Expr) Base() *Expr {
	if e.kind != KindExponential {
		return nil
	}
	return e.args[0]
}

// Components returns a copy of the components of a product, sum, or group
// keyed by their canonical keys.
func (e *Expr) Components() map[string]*Expr {
	if e.terms == nil {
		return nil
	}
	r := make(map[string]*Expr, e.terms.len())
	e.terms.each(func(k string, v *Expr) bool {
		r[k] = v
		return true
	})
	return r
}

// ComponentsArray returns the components of a product, sum, or group in key
// order. For deferred values it returns the wrapped operands.
func (e *Expr) ComponentsArray() []*Expr {
	if e.deferred {
		return append([]*Expr(nil), e.args...)
	}
	return e.terms.values()
}

// Each calls f for each component in key order, stopping at the first error.
func (e *Expr) Each(f func(key string, c *Expr) error) error {
	var err error
	e.terms.each(func(k string, v *Expr) bool {
		err = f(k, v)
		return err == nil
	})
	return err
}

func (e *Expr) IsNum() bool         { return e.kind == KindNum }
func (e *Expr) IsVar() bool         { return e.kind == KindVar }
func (e *Expr) IsExponential() bool { return e.kind == KindExponential }
func (e *Expr) IsFunction() bool    { return e.kind == KindFunction }
func (e *Expr) IsGroup() bool       { return e.kind == KindGroup }
func (e *Expr) IsProduct() bool     { return e.kind == KindProduct }
func (e *Expr) IsSum() bool         { return e.kind == KindSum }
func (e *Expr) IsInfinity() bool    { return e.kind == KindInfinity }
func (e *Expr) IsDeferred() bool    { return e.deferred }

// IsZero reports whether e is the number 0.
func (e *Expr) IsZero() bool {
	return e.kind == KindNum && e.mult.IsZero()
}

// IsOne reports whether e is the number 1.
func (e *Expr) IsOne() bool {
	return e.kind == KindNum && e.mult.IsOne()
}

// IsImaginary reports whether e contains the imaginary unit.
func (e *Expr) IsImaginary() bool {
	return e.HasVariable(imagName)
}

// isUnitPower reports whether e's power is exactly 1.
func (e *Expr) isUnitPower() bool {
	return e.power != nil && e.power.IsOne()
}

// numericPower returns e's power as a rational, if it is a number.
func (e *Expr) numericPower() (rational.Rational, bool) {
	if e.power == nil || e.power.kind != KindNum {
		return rational.Rational{}, false
	}
	return e.power.mult, true
}

// Equal reports whether e and f are the same canonical value.
func (e *Expr) Equal(f *Expr) bool {
	if e.kind != f.kind || !e.mult.Equal(f.mult) {
		return false
	}
	return keyValue(e, true, true) == keyValue(f, true, true)
}

// Variables returns the sorted names of the variables in e. The imaginary unit
// is included when it occurs.
func (e *Expr) Variables() []string {
	seen := map[string]bool{}
	e.walk(func(x *Expr) {
		if x.kind == KindVar {
			seen[x.value] = true
		}
	})
	return sortedKeys(seen)
}

// Functions returns the sorted names of the functions applied in e.
func (e *Expr) Functions() []string {
	seen := map[string]bool{}
	e.walk(func(x *Expr) {
		if x.kind == KindFunction {
			seen[x.name] = true
		}
	})
	return sortedKeys(seen)
}

// HasVariable reports whether the variable name occurs anywhere in e.
func (e *Expr) HasVariable(name string) bool {
	found := false
	e.walk(func(x *Expr) {
		if x.kind == KindVar && x.value == name {
			found = true
		}
	})
	return found
}

// HasFunction reports whether the function name is applied anywhere in e.
func (e *Expr) HasFunction(name string) bool {
	found := false
	e.walk(func(x *Expr) {
		if x.kind == KindFunction && x.name == name {
			found = true
		}
	})
	return found
}

// walk calls f on e and every expression nested in it, including powers.
func (e *Expr) walk(f func(*Expr)) {
	f(e)
	if e.power != nil && e.power.kind != KindNum {
		e.power.walk(f)
	}
	for _, a := range e.args {
		a.walk(f)
	}
	e.terms.each(func(_ string, c *Expr) bool {
		c.walk(f)
		return true
	})
}

func sortedKeys(m map[string]bool) []string {
	r := make([]string, 0, len(m))
	for k := range m {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}
