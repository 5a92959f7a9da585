// Package rational implements exact rational numbers over arbitrary-precision
// integers.
//
// A Rational is an immutable value. Every operation returns a new Rational,
// so values can be shared freely. The zero value is 0.
//
// Besides the exact value, a Rational remembers whether it was written as a
// decimal. That flag only changes how the value is rendered as text; it never
// affects arithmetic.
package rational

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zephyrtronium/bigfloat"
)

// ErrDivisionByZero is returned by operations that would divide by zero.
var ErrDivisionByZero = errors.New("rational: division by zero")

// ErrNotReal is returned when a non-integer power of a negative number is
// requested.
var ErrNotReal = errors.New("rational: result is not real")

// ErrOverflow is returned when an exact integer power has an exponent too
// large to compute.
var ErrOverflow = errors.New("rational: exponent out of range")

// DefaultPrec is the precision in bits used when no precision is given.
const DefaultPrec = 64

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

// Rational is an exact fraction num/den. The denominator is always positive
// and the fraction is always reduced.
type Rational struct {
	num *big.Int
	den *big.Int
	dec bool
}

// New creates the reduced fraction n/d. Panics if d is zero.
func New(n, d int64) Rational {
	if d == 0 {
		panic("rational: zero denominator")
	}
	return reduce(big.NewInt(n), big.NewInt(d), false)
}

// Int creates an integer Rational.
func Int(n int64) Rational {
	return Rational{num: big.NewInt(n), den: bigOne}
}

// FromBig creates the reduced fraction n/d. The arguments are not retained.
func FromBig(n, d *big.Int) (Rational, error) {
	if d.Sign() == 0 {
		return Rational{}, ErrDivisionByZero
	}
	return reduce(new(big.Int).Set(n), new(big.Int).Set(d), false), nil
}

// FromRat converts a big.Rat.
func FromRat(r *big.Rat) Rational {
	return Rational{num: new(big.Int).Set(r.Num()), den: new(big.Int).Set(r.Denom())}
}

// FromFloat64 converts f through its shortest decimal representation, so
// that e.g. 2.84 becomes exactly 71/25. The result has decimal display unless
// f is an integer.
func FromFloat64(f float64) (Rational, error) {
	return Parse(strconv.FormatFloat(f, 'g', -1, 64))
}

// FromFloat converts a big.Float by rounding it to the decimal digits its
// precision supports. The result has decimal display.
func FromFloat(f *big.Float) (Rational, error) {
	if f.IsInf() {
		return Rational{}, ErrOverflow
	}
	digits := int(float64(f.Prec())*0.30102999566398) + 1
	r, err := Parse(f.Text('g', digits))
	if err != nil {
		return Rational{}, err
	}
	r.dec = true
	return r, nil
}

// Parse parses an integer, a decimal with optional exponent, or a fraction
// written n/d. Decimal and exponent forms produce decimal-display values.
func Parse(s string) (Rational, error) {
	s = strings.TrimSpace(s)
	if k := strings.IndexByte(s, '/'); k >= 0 {
		n, err := Parse(s[:k])
		if err != nil {
			return Rational{}, err
		}
		d, err := Parse(s[k+1:])
		if err != nil {
			return Rational{}, err
		}
		return n.Div(d)
	}
	if !strings.ContainsAny(s, ".eE") {
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return Rational{}, &SyntaxError{Text: s}
		}
		return Rational{num: n, den: bigOne}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Rational{}, &SyntaxError{Text: s, Err: err}
	}
	r := fromDecimal(d)
	r.dec = true
	return r, nil
}

// fromDecimal converts coefficient*10^exponent exactly.
func fromDecimal(d decimal.Decimal) Rational {
	c := new(big.Int).Set(d.Coefficient())
	e := d.Exponent()
	p := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(abs32(e))), nil)
	if e >= 0 {
		return Rational{num: c.Mul(c, p), den: bigOne}
	}
	return reduce(c, p, false)
}

func abs32(e int32) int32 {
	if e < 0 {
		return -e
	}
	return e
}

// SyntaxError is returned by Parse for text that is not a number.
type SyntaxError struct {
	Text string
	Err  error
}

func (err *SyntaxError) Error() string {
	return "rational: invalid number " + strconv.Quote(err.Text)
}

func (err *SyntaxError) Unwrap() error {
	return err.Err
}

// reduce reduces n/d, taking ownership of both.
func reduce(n, d *big.Int, dec bool) Rational {
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	if n.Sign() == 0 {
		return Rational{num: new(big.Int), den: bigOne, dec: dec}
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(n), d)
	if g.Cmp(bigOne) != 0 {
		n.Quo(n, g)
		d.Quo(d, g)
	}
	return Rational{num: n, den: d, dec: dec}
}

func (r Rational) n() *big.Int {
	if r.num == nil {
		return bigZero
	}
	return r.num
}

func (r Rational) d() *big.Int {
	if r.den == nil {
		return bigOne
	}
	return r.den
}

// Num returns a copy of the numerator.
func (r Rational) Num() *big.Int {
	return new(big.Int).Set(r.n())
}

// Den returns a copy of the denominator.
func (r Rational) Den() *big.Int {
	return new(big.Int).Set(r.d())
}

// Rat returns the value as a big.Rat.
func (r Rational) Rat() *big.Rat {
	return new(big.Rat).SetFrac(r.n(), r.d())
}

// Sign returns -1, 0, or 1.
func (r Rational) Sign() int {
	return r.n().Sign()
}

// IsZero reports whether r is 0.
func (r Rational) IsZero() bool {
	return r.n().Sign() == 0
}

// IsOne reports whether r is 1.
func (r Rational) IsOne() bool {
	return r.n().Cmp(bigOne) == 0 && r.d().Cmp(bigOne) == 0
}

// IsNegOne reports whether r is -1.
func (r Rational) IsNegOne() bool {
	return r.d().Cmp(bigOne) == 0 && r.n().CmpAbs(bigOne) == 0 && r.n().Sign() < 0
}

// IsInteger reports whether the denominator is 1.
func (r Rational) IsInteger() bool {
	return r.d().Cmp(bigOne) == 0
}

// IsEven reports whether r is an even integer.
func (r Rational) IsEven() bool {
	return r.IsInteger() && r.n().Bit(0) == 0
}

// IsDecimal reports whether r renders as a decimal.
func (r Rational) IsDecimal() bool {
	return r.dec
}

// Decimal returns r with decimal display set to dec.
func (r Rational) Decimal(dec bool) Rational {
	r.dec = dec
	return r
}

// Int64 returns the value truncated toward zero and whether it fit.
func (r Rational) Int64() (int64, bool) {
	q := new(big.Int).Quo(r.n(), r.d())
	if !q.IsInt64() {
		return 0, false
	}
	return q.Int64(), true
}

// Add returns r + s.
func (r Rational) Add(s Rational) Rational {
	if r.IsInteger() && s.IsInteger() {
		return Rational{num: new(big.Int).Add(r.n(), s.n()), den: bigOne, dec: r.dec || s.dec}
	}
	n := new(big.Int).Mul(r.n(), s.d())
	n.Add(n, new(big.Int).Mul(s.n(), r.d()))
	return reduce(n, new(big.Int).Mul(r.d(), s.d()), r.dec || s.dec)
}

// Sub returns r - s.
func (r Rational) Sub(s Rational) Rational {
	return r.Add(s.Neg())
}

// Mul returns r * s.
func (r Rational) Mul(s Rational) Rational {
	return reduce(new(big.Int).Mul(r.n(), s.n()), new(big.Int).Mul(r.d(), s.d()), r.dec || s.dec)
}

// Div returns r / s.
func (r Rational) Div(s Rational) (Rational, error) {
	if s.IsZero() {
		return Rational{}, ErrDivisionByZero
	}
	return reduce(new(big.Int).Mul(r.n(), s.d()), new(big.Int).Mul(r.d(), s.n()), r.dec || s.dec), nil
}

// Neg returns -r.
func (r Rational) Neg() Rational {
	return Rational{num: new(big.Int).Neg(r.n()), den: r.d(), dec: r.dec}
}

// Invert returns 1/r.
func (r Rational) Invert() (Rational, error) {
	if r.IsZero() {
		return Rational{}, ErrDivisionByZero
	}
	return reduce(new(big.Int).Set(r.d()), new(big.Int).Set(r.n()), r.dec), nil
}

// Abs returns |r|.
func (r Rational) Abs() Rational {
	if r.Sign() >= 0 {
		return r
	}
	return r.Neg()
}

// Mod returns the remainder of r / s truncated toward zero, so the result has
// the sign of r.
func (r Rational) Mod(s Rational) (Rational, error) {
	q, err := r.Div(s)
	if err != nil {
		return Rational{}, err
	}
	t := Rational{num: new(big.Int).Quo(q.n(), q.d()), den: bigOne}
	return r.Sub(t.Mul(s)), nil
}

// Floor returns the greatest integer not greater than r.
func (r Rational) Floor() Rational {
	// Euclidean division floors because the denominator is positive.
	return Rational{num: new(big.Int).Div(r.n(), r.d()), den: bigOne}
}

// GCD returns the greatest common divisor of r and s, defined for fractions as
// gcd(numerators)/lcm(denominators). The result is non-negative.
func (r Rational) GCD(s Rational) Rational {
	n := new(big.Int).GCD(nil, nil, new(big.Int).Abs(r.n()), new(big.Int).Abs(s.n()))
	return reduce(n, lcm(r.d(), s.d()), r.dec || s.dec)
}

// LCM returns the least common multiple of r and s, defined for fractions as
// lcm(numerators)/gcd(denominators). The result is non-negative.
func (r Rational) LCM(s Rational) Rational {
	if r.IsZero() || s.IsZero() {
		return Rational{num: new(big.Int), den: bigOne}
	}
	d := new(big.Int).GCD(nil, nil, r.d(), s.d())
	return reduce(lcm(new(big.Int).Abs(r.n()), new(big.Int).Abs(s.n())), d, r.dec || s.dec)
}

func lcm(a, b *big.Int) *big.Int {
	g := new(big.Int).GCD(nil, nil, a, b)
	if g.Sign() == 0 {
		return new(big.Int)
	}
	l := new(big.Int).Quo(a, g)
	return l.Mul(l, b)
}

// maxExp bounds exact integer exponents.
const maxExp = 1 << 20

// Pow returns r^e. Integer exponents are computed exactly. Other exponents
// are computed to prec bits and the result has decimal display.
func (r Rational) Pow(e Rational, prec uint) (Rational, error) {
	if e.IsInteger() {
		k, ok := e.Int64()
		if !ok || k > maxExp || k < -maxExp {
			return Rational{}, ErrOverflow
		}
		return r.powInt(k)
	}
	if r.IsZero() {
		if e.Sign() < 0 {
			return Rational{}, ErrDivisionByZero
		}
		return r, nil
	}
	if r.Sign() < 0 {
		return Rational{}, ErrNotReal
	}
	if prec == 0 {
		prec = DefaultPrec
	}
	x := r.Float(prec)
	y := e.Float(prec)
	z := new(big.Float).SetPrec(prec)
	bigfloat.Pow(z, x, y)
	return FromFloat(z)
}

func (r Rational) powInt(k int64) (Rational, error) {
	if k == 0 {
		return Rational{num: big.NewInt(1), den: bigOne, dec: r.dec}, nil
	}
	if k < 0 {
		if r.IsZero() {
			return Rational{}, ErrDivisionByZero
		}
		inv, _ := r.Invert()
		return inv.powInt(-k)
	}
	x := big.NewInt(k)
	n := new(big.Int).Exp(r.n(), x, nil)
	d := new(big.Int).Exp(r.d(), x, nil)
	return Rational{num: n, den: d, dec: r.dec}, nil
}

// Cmp compares r and s, returning -1, 0, or 1.
func (r Rational) Cmp(s Rational) int {
	a := new(big.Int).Mul(r.n(), s.d())
	b := new(big.Int).Mul(s.n(), r.d())
	return a.Cmp(b)
}

// Less reports r < s.
func (r Rational) Less(s Rational) bool { return r.Cmp(s) < 0 }

// LessEq reports r <= s.
func (r Rational) LessEq(s Rational) bool { return r.Cmp(s) <= 0 }

// Equal reports r == s. Display mode is ignored.
func (r Rational) Equal(s Rational) bool { return r.Cmp(s) == 0 }

// Greater reports r > s.
func (r Rational) Greater(s Rational) bool { return r.Cmp(s) > 0 }

// GreaterEq reports r >= s.
func (r Rational) GreaterEq(s Rational) bool { return r.Cmp(s) >= 0 }

// Float returns r rounded to prec bits.
func (r Rational) Float(prec uint) *big.Float {
	return new(big.Float).SetPrec(prec).SetRat(r.Rat())
}

// Float64 returns the nearest float64.
func (r Rational) Float64() float64 {
	f, _ := r.Rat().Float64()
	return f
}

// FractionText formats r as n or n/d.
func (r Rational) FractionText() string {
	if r.IsInteger() {
		return r.n().String()
	}
	return r.n().String() + "/" + r.d().String()
}

// DecimalText formats r as a decimal rounded to at most places fractional
// digits, without trailing zeros.
func (r Rational) DecimalText(places int32) string {
	if r.IsInteger() {
		return r.n().String()
	}
	n := decimal.NewFromBigInt(r.n(), 0)
	d := decimal.NewFromBigInt(r.d(), 0)
	return n.DivRound(d, places).String()
}

// String formats r according to its display mode. Decimal-display values
// without a terminating decimal expansion are written as fractions, so that
// parsing the text always gives back r.
func (r Rational) String() string {
	if r.dec {
		if places, ok := r.terminates(); ok {
			return r.DecimalText(places)
		}
	}
	return r.FractionText()
}

// terminates reports whether r has a finite decimal expansion and the number
// of fractional digits it needs.
func (r Rational) terminates() (int32, bool) {
	d := r.d()
	twos := d.TrailingZeroBits()
	q := new(big.Int).Rsh(d, twos)
	fives := uint(0)
	five := big.NewInt(5)
	m := new(big.Int)
	for q.Cmp(bigOne) != 0 {
		q.QuoRem(q, five, m)
		if m.Sign() != 0 {
			return 0, false
		}
		fives++
	}
	if fives > twos {
		twos = fives
	}
	if twos > math.MaxInt32 {
		return 0, false
	}
	return int32(twos), true
}
