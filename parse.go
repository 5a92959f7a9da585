package symbolic

import (
	"errors"
	"io"
	"math/big"
	"strings"

	"github.com/zephyrtronium/symbolic/rational"
)

// Parse parses text into a canonical expression. The options are applied in
// order on top of the current configuration. Input that evaluates to a
// vector, collection, equation, or definition is an error; use ParseValue to
// accept those.
func Parse(src string, opts ...Option) (*Expr, error) {
	v, err := ParseValue(src, opts...)
	if err != nil {
		return nil, err
	}
	e, ok := v.(*Expr)
	if !ok {
		return nil, &UnsupportedError{Op: "parse", Reason: "result is a " + describe(v)}
	}
	return e, nil
}

// ParseValue parses text into a value: an *Expr, Vector, Collection,
// Equation, or Definition.
func ParseValue(src string, opts ...Option) (Value, error) {
	cfg := derive(Current(), opts)
	var v Value
	err := scoped(cfg, func() error {
		var err error
		v, err = parse(cfg, src)
		return err
	})
	return v, err
}

// ParseReader reads src to EOF and parses the result as Parse does.
func ParseReader(src io.RuneScanner, opts ...Option) (*Expr, error) {
	var b strings.Builder
	for {
		r, _, err := src.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		b.WriteRune(r)
	}
	return Parse(b.String(), opts...)
}

// Evaluate parses text with immediate evaluation, so that constants,
// irrational powers, and functions of numbers become decimal numbers.
func Evaluate(src string, opts ...Option) (*Expr, error) {
	o := make([]Option, 0, len(opts)+1)
	o = append(o, opts...)
	o = append(o, Immediate())
	return Parse(src, o...)
}

// parse runs the tokenizer, converter, and evaluator under cfg.
func parse(cfg *Config, src string) (Value, error) {
	t, err := tokenize(src, cfg)
	if err != nil {
		return nil, err
	}
	prog, err := convert(t)
	if err != nil {
		return nil, err
	}
	cfg.Logger.Debug().Str("src", src).Stringer("rpn", prog).Msg("converted")
	ev := evaluator{cfg: cfg, prog: prog, log: cfg.Logger}
	v, err := ev.run(0)
	if err != nil {
		return nil, err
	}
	switch r := v.(type) {
	case nil:
		return nil, &EmptyExpressionError{Col: 1}
	case list:
		return Collection(r), nil
	}
	return v, nil
}

// toExpr converts a bound value to an expression, or nil if it has an
// unsupported type.
func toExpr(v interface{}, cfg *Config) *Expr {
	switch v := v.(type) {
	case *Expr:
		return v
	case string:
		r, err := parse(cfg, v)
		if err != nil {
			return nil
		}
		e, _ := r.(*Expr)
		return e
	case int:
		return Int(int64(v))
	case int64:
		return Int(v)
	case float64:
		r, err := rational.FromFloat64(v)
		if err != nil {
			return nil
		}
		return Num(r)
	case rational.Rational:
		return Num(v)
	case *big.Rat:
		return Num(rational.FromRat(v))
	case *big.Int:
		r, _ := rational.FromBig(v, big.NewInt(1))
		return Num(r)
	}
	return nil
}
