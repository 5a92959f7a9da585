package symbolic

import (
	"math/big"
	"sync"

	"github.com/zephyrtronium/bigfloat"
	"github.com/zephyrtronium/symbolic/rational"
)

// constcache holds π and e at the precision they were last computed to.
// Asking for a different precision recomputes both.
type constcache struct {
	mu   sync.Mutex
	prec uint
	pi   rational.Rational
	e    rational.Rational
}

var consts constcache

// isConstant reports whether name is a mathematical constant.
func isConstant(name string) bool {
	switch name {
	case "pi", "π", "e":
		return true
	}
	return false
}

// constName normalizes the spelling of a constant.
func constName(name string) string {
	if name == "π" {
		return "pi"
	}
	return name
}

// constant returns the value of a constant to prec bits.
func constant(name string, prec uint) rational.Rational {
	consts.mu.Lock()
	defer consts.mu.Unlock()
	if consts.prec != prec {
		consts.compute(prec)
	}
	if constName(name) == "pi" {
		return consts.pi
	}
	return consts.e
}

func (c *constcache) compute(prec uint) {
	pi := bigfloat.Pi(new(big.Float).SetPrec(prec))
	one := new(big.Float).SetPrec(prec).SetInt64(1)
	e := bigfloat.Exp(new(big.Float).SetPrec(prec), one)
	// Both are finite, so conversion cannot fail.
	c.pi, _ = rational.FromFloat(pi)
	c.e, _ = rational.FromFloat(e)
	c.prec = prec
}

// constantFloat returns the value of a constant as a float.
func constantFloat(name string, prec uint) *big.Float {
	return constant(name, prec).Float(prec)
}
