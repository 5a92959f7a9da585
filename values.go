package symbolic

import (
	"strings"
)

// Value is the result of parsing: an *Expr, or a structure of them.
type Value interface {
	// Text renders the value in the input grammar.
	Text() string
	String() string
}

// Vector is a bracketed list of values, e.g. [1, x]. A vector of vectors is
// a matrix.
type Vector []Value

func (v Vector) Text() string {
	return "[" + joinValues(v) + "]"
}

func (v Vector) String() string {
	return v.Text()
}

// Collection is a parenthesized or top-level comma-separated list of values.
type Collection []Value

func (c Collection) Text() string {
	return joinValues(c)
}

func (c Collection) String() string {
	return c.Text()
}

// Equation is a pair of values joined with =.
type Equation struct {
	LHS, RHS Value
}

func (e *Equation) Text() string {
	return e.LHS.Text() + "=" + e.RHS.Text()
}

func (e *Equation) String() string {
	return e.Text()
}

// Definition binds a name to a value with :=. Parsing a definition does not
// bind anything; callers bind it with SetVar.
type Definition struct {
	Name  string
	Value Value
}

func (d *Definition) Text() string {
	return d.Name + ":=" + d.Value.Text()
}

func (d *Definition) String() string {
	return d.Text()
}

// list is a comma list still being built in one scope.
type list []Value

func (l list) Text() string {
	return joinValues(l)
}

func (l list) String() string {
	return l.Text()
}

func joinValues(vs []Value) string {
	var b strings.Builder
	for i, v := range vs {
		if i > 0 {
			b.WriteByte(',')
		}
		if c, ok := v.(Collection); ok {
			b.WriteString("(" + c.Text() + ")")
			continue
		}
		b.WriteString(v.Text())
	}
	return b.String()
}

// elements returns the members of a value-set along with a function to build a
// set of the same type from new members.
func elements(v Value) ([]Value, func([]Value) Value, bool) {
	switch v := v.(type) {
	case Vector:
		return v, func(r []Value) Value { return Vector(r) }, true
	case Collection:
		return v, func(r []Value) Value { return Collection(r) }, true
	case list:
		return v, func(r []Value) Value { return list(r) }, true
	}
	return nil, nil, false
}

// broadcast applies f to scalars, element-wise to value-sets of equal length,
// to each element of a set with a scalar, and to both sides of equations.
func broadcast(op string, a, b Value, f func(x, y *Expr) (*Expr, error)) (Value, error) {
	if x, ok := a.(*Expr); ok {
		if y, ok := b.(*Expr); ok {
			return f(x, y)
		}
	}
	if ea, ok := a.(*Equation); ok {
		rb, lb := b, b
		if eb, ok := b.(*Equation); ok {
			lb, rb = eb.LHS, eb.RHS
		}
		l, err := broadcast(op, ea.LHS, lb, f)
		if err != nil {
			return nil, err
		}
		r, err := broadcast(op, ea.RHS, rb, f)
		if err != nil {
			return nil, err
		}
		return &Equation{LHS: l, RHS: r}, nil
	}
	if eb, ok := b.(*Equation); ok {
		l, err := broadcast(op, a, eb.LHS, f)
		if err != nil {
			return nil, err
		}
		r, err := broadcast(op, a, eb.RHS, f)
		if err != nil {
			return nil, err
		}
		return &Equation{LHS: l, RHS: r}, nil
	}
	ae, amk, aset := elements(a)
	be, bmk, bset := elements(b)
	switch {
	case aset && bset:
		if len(ae) != len(be) {
			return nil, dimensionMismatch(op, len(ae), len(be))
		}
		r := make([]Value, len(ae))
		for i := range ae {
			v, err := broadcast(op, ae[i], be[i], f)
			if err != nil {
				return nil, err
			}
			r[i] = v
		}
		return amk(r), nil
	case aset:
		r := make([]Value, len(ae))
		for i := range ae {
			v, err := broadcast(op, ae[i], b, f)
			if err != nil {
				return nil, err
			}
			r[i] = v
		}
		return amk(r), nil
	case bset:
		r := make([]Value, len(be))
		for i := range be {
			v, err := broadcast(op, a, be[i], f)
			if err != nil {
				return nil, err
			}
			r[i] = v
		}
		return bmk(r), nil
	}
	return nil, &UnsupportedError{Op: op, Reason: "cannot apply to " + describe(a) + " and " + describe(b)}
}

// apply applies f to a scalar, to each element of a value-set, or to both
// sides of an equation.
func apply(op string, v Value, f func(x *Expr) (*Expr, error)) (Value, error) {
	switch v := v.(type) {
	case *Expr:
		return f(v)
	case *Equation:
		l, err := apply(op, v.LHS, f)
		if err != nil {
			return nil, err
		}
		r, err := apply(op, v.RHS, f)
		if err != nil {
			return nil, err
		}
		return &Equation{LHS: l, RHS: r}, nil
	}
	es, mk, ok := elements(v)
	if !ok {
		return nil, &UnsupportedError{Op: op, Reason: "cannot apply to " + describe(v)}
	}
	r := make([]Value, len(es))
	for i, e := range es {
		x, err := apply(op, e, f)
		if err != nil {
			return nil, err
		}
		r[i] = x
	}
	return mk(r), nil
}

func describe(v Value) string {
	switch v.(type) {
	case *Expr:
		return "expression"
	case Vector:
		return "vector"
	case Collection, list:
		return "collection"
	case *Equation:
		return "equation"
	case *Definition:
		return "definition"
	}
	return "value"
}
