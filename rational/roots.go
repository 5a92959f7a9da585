package rational

import "math/big"

// trialLimit bounds the primes tried when factoring for root extraction.
// Cofactors left over after trial division are only extracted when they are
// themselves perfect powers.
const trialLimit = 1 << 16

// Root splits |r| into outside * inside^(1/k), where outside is as large as
// exact extraction allows and inside has no remaining k-th power factors that
// trial division finds. Root(2) of 8 is 2 and 2, so sqrt(8) = 2*sqrt(2).
// Panics if k is zero.
func (r Rational) Root(k uint64) (outside, inside Rational) {
	if k == 0 {
		panic("rational: zeroth root")
	}
	if r.IsZero() {
		return Rational{num: new(big.Int), den: bigOne}, Rational{num: big.NewInt(1), den: bigOne}
	}
	on, in := rootInt(new(big.Int).Abs(r.n()), k)
	od, id := rootInt(r.d(), k)
	// Move the denominator's leftover into the numerator so that inside is an
	// integer: (in/id)^(1/k) = (in*id^(k-1))^(1/k) / id.
	if id.Cmp(bigOne) != 0 {
		t := new(big.Int).Exp(id, new(big.Int).SetUint64(k-1), nil)
		in.Mul(in, t)
		od.Mul(od, id)
		o2, i2 := rootInt(in, k)
		on.Mul(on, o2)
		in = i2
	}
	outside = reduce(on, od, r.dec)
	inside = Rational{num: in, den: bigOne, dec: r.dec}
	return outside, inside
}

// rootInt splits n > 0 into o^k * i.
func rootInt(n *big.Int, k uint64) (o, i *big.Int) {
	o = big.NewInt(1)
	i = big.NewInt(1)
	rest := new(big.Int).Set(n)
	p := new(big.Int)
	q, m := new(big.Int), new(big.Int)
	for f := int64(2); f < trialLimit; f++ {
		p.SetInt64(f)
		if new(big.Int).Mul(p, p).Cmp(rest) > 0 {
			break
		}
		var c uint64
		for {
			q.QuoRem(rest, p, m)
			if m.Sign() != 0 {
				break
			}
			rest.Set(q)
			c++
		}
		if c == 0 {
			continue
		}
		if c/k > 0 {
			o.Mul(o, new(big.Int).Exp(p, new(big.Int).SetUint64(c/k), nil))
		}
		if c%k > 0 {
			i.Mul(i, new(big.Int).Exp(p, new(big.Int).SetUint64(c%k), nil))
		}
	}
	if rest.Cmp(bigOne) != 0 {
		if s, ok := exactRoot(rest, k); ok {
			o.Mul(o, s)
		} else {
			i.Mul(i, rest)
		}
	}
	return o, i
}

// exactRoot returns the integer k-th root of n if n is a perfect k-th power.
func exactRoot(n *big.Int, k uint64) (*big.Int, bool) {
	if k == 1 {
		return new(big.Int).Set(n), true
	}
	if k == 2 {
		s := new(big.Int).Sqrt(n)
		return s, new(big.Int).Mul(s, s).Cmp(n) == 0
	}
	// Newton's method on integers, starting above the root.
	kk := new(big.Int).SetUint64(k)
	k1 := new(big.Int).SetUint64(k - 1)
	x := new(big.Int).Lsh(bigOne, uint(n.BitLen())/uint(k)+1)
	for {
		// y = ((k-1)x + n/x^(k-1)) / k
		t := new(big.Int).Exp(x, k1, nil)
		t.Quo(n, t)
		y := new(big.Int).Mul(k1, x)
		y.Add(y, t)
		y.Quo(y, kk)
		if y.Cmp(x) >= 0 {
			break
		}
		x = y
	}
	return x, new(big.Int).Exp(x, kk, nil).Cmp(n) == 0
}

// Radical rewrites the integer radicand r^(1/k) with the smallest index j
// such that r^(1/k) = s^(1/j), so 4^(1/4) becomes 2^(1/2). r must be a
// positive integer, as the inside part from Root is.
func (r Rational) Radical(k uint64) (Rational, uint64) {
	if !r.IsInteger() || r.Sign() <= 0 {
		return r, k
	}
	n := new(big.Int).Set(r.n())
	// A d-th power greater than one has at least d bits.
	for d := uint64(2); d <= k && d <= uint64(n.BitLen()); {
		if k%d != 0 {
			d++
			continue
		}
		s, ok := exactRoot(n, d)
		if !ok {
			d++
			continue
		}
		n, k = s, k/d
	}
	return Rational{num: n, den: bigOne, dec: r.dec}, k
}
