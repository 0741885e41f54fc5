package schnorr

import (
	"io"
	"math/big"
)

// MontgomeryCurve implements Curve for B*y^2 = x^3 + A*x^2 + x over GF(p) in
// affine coordinates. Scalar multiplication runs the Montgomery ladder.
type MontgomeryCurve struct {
	name string
	p    *big.Int
	a    *big.Int
	b    *big.Int
	bInv *big.Int
}

// NewMontgomeryCurve creates a Montgomery curve; B(A^2 - 4) must not vanish mod p.
func NewMontgomeryCurve(name string, p, a, b *big.Int) (*MontgomeryCurve, error) {
	if p == nil || a == nil || b == nil {
		return nil, ErrInvalidParameter.WithDetails("curve %s: nil coefficient", name)
	}
	if p.Cmp(bigThree) <= 0 || !p.ProbablyPrime(20) {
		return nil, ErrInvalidParameter.WithDetails("curve %s: field modulus is not an odd prime", name)
	}
	c := &MontgomeryCurve{
		name: name,
		p:    new(big.Int).Set(p),
		a:    new(big.Int).Mod(a, p),
		b:    new(big.Int).Mod(b, p),
	}
	disc := new(big.Int).Mul(c.a, c.a)
	disc.Sub(disc, big.NewInt(4))
	disc.Mul(disc, c.b)
	if disc.Mod(disc, p).Sign() == 0 {
		return nil, ErrInvalidParameter.WithDetails("curve %s: singular curve", name)
	}
	c.bInv = new(big.Int).ModInverse(c.b, p)
	return c, nil
}

func (c *MontgomeryCurve) Name() string         { return c.name }
func (c *MontgomeryCurve) Field() *big.Int      { return c.p }
func (c *MontgomeryCurve) FieldByteLength() int { return (c.p.BitLen() + 7) / 8 }

// A returns the curve coefficient A
func (c *MontgomeryCurve) A() *big.Int { return c.a }

// B returns the curve coefficient B
func (c *MontgomeryCurve) B() *big.Int { return c.b }

func (c *MontgomeryCurve) Identity() Point {
	return &montgomeryPoint{curve: c, infinity: true}
}

func (c *MontgomeryCurve) NewPoint(x, y *big.Int) (Point, error) {
	if x.Sign() < 0 || x.Cmp(c.p) >= 0 || y.Sign() < 0 || y.Cmp(c.p) >= 0 {
		return nil, ErrInvalidPoint
	}
	if !c.onCurve(x, y) {
		return nil, ErrPointNotOnCurve
	}
	return &montgomeryPoint{curve: c, x: new(big.Int).Set(x), y: new(big.Int).Set(y)}, nil
}

// rhs evaluates (x^3 + A*x^2 + x) / B mod p
func (c *MontgomeryCurve) rhs(x *big.Int) *big.Int {
	r := new(big.Int).Add(x, c.a)
	r.Mul(r, x)
	r.Add(r, bigOne)
	r.Mul(r, x)
	r.Mul(r, c.bInv)
	return r.Mod(r, c.p)
}

func (c *MontgomeryCurve) onCurve(x, y *big.Int) bool {
	y2 := new(big.Int).Mul(y, y)
	y2.Mod(y2, c.p)
	return y2.Cmp(c.rhs(x)) == 0
}

func (c *MontgomeryCurve) RandomPoint(rand io.Reader) (Point, error) {
	for {
		x, err := randomFieldElement(rand, c.p)
		if err != nil {
			return nil, err
		}
		y := new(big.Int).ModSqrt(c.rhs(x), c.p)
		if y == nil {
			continue
		}
		bit, err := randomBit(rand)
		if err != nil {
			return nil, err
		}
		if bit == 1 && y.Sign() != 0 {
			y.Sub(c.p, y)
		}
		return &montgomeryPoint{curve: c, x: x, y: y}, nil
	}
}

type montgomeryPoint struct {
	curve    *MontgomeryCurve
	x, y     *big.Int
	infinity bool
}

func (p *montgomeryPoint) IsIdentity() bool { return p.infinity }

func (p *montgomeryPoint) Coordinates() (*big.Int, *big.Int) {
	if p.infinity {
		return nil, nil
	}
	return new(big.Int).Set(p.x), new(big.Int).Set(p.y)
}

func (p *montgomeryPoint) Bytes() []byte {
	return CanonicalBytes(p, p.curve.FieldByteLength())
}

func (p *montgomeryPoint) String() string { return pointString(p) }

func (p *montgomeryPoint) IsOnCurve() bool {
	return p.infinity || p.curve.onCurve(p.x, p.y)
}

func (p *montgomeryPoint) Equal(other Point) bool {
	o, ok := other.(*montgomeryPoint)
	if !ok {
		return false
	}
	if p.infinity || o.infinity {
		return p.infinity == o.infinity
	}
	return p.x.Cmp(o.x) == 0 && p.y.Cmp(o.y) == 0
}

func (p *montgomeryPoint) Negate() Point {
	if p.infinity {
		return p
	}
	y := new(big.Int).Sub(p.curve.p, p.y)
	y.Mod(y, p.curve.p)
	return &montgomeryPoint{curve: p.curve, x: p.x, y: y}
}

// Add applies the affine chord-and-tangent law:
// lambda = (y2-y1)/(x2-x1) or (3x^2 + 2Ax + 1)/(2By),
// x3 = B*lambda^2 - A - x1 - x2, y3 = lambda*(x1 - x3) - y1.
func (p *montgomeryPoint) Add(other Point) Point {
	q := other.(*montgomeryPoint)
	if p.infinity {
		return q
	}
	if q.infinity {
		return p
	}
	c := p.curve
	P := c.p

	var lambda *big.Int
	if p.x.Cmp(q.x) == 0 {
		sum := new(big.Int).Add(p.y, q.y)
		if sum.Mod(sum, P).Sign() == 0 {
			return c.Identity()
		}
		num := new(big.Int).Mul(p.x, p.x)
		num.Mul(num, bigThree)
		num.Add(num, new(big.Int).Mul(new(big.Int).Lsh(c.a, 1), p.x))
		num.Add(num, bigOne)
		den := new(big.Int).Mul(c.b, p.y)
		den.Lsh(den, 1)
		den.ModInverse(den.Mod(den, P), P)
		lambda = num.Mul(num, den)
	} else {
		num := new(big.Int).Sub(q.y, p.y)
		den := new(big.Int).Sub(q.x, p.x)
		den.ModInverse(den.Mod(den, P), P)
		lambda = num.Mul(num, den)
	}
	lambda.Mod(lambda, P)

	x3 := new(big.Int).Mul(lambda, lambda)
	x3.Mul(x3, c.b)
	x3.Sub(x3, c.a)
	x3.Sub(x3, p.x)
	x3.Sub(x3, q.x)
	x3.Mod(x3, P)

	y3 := new(big.Int).Sub(p.x, x3)
	y3.Mul(y3, lambda)
	y3.Sub(y3, p.y)
	y3.Mod(y3, P)

	return &montgomeryPoint{curve: c, x: x3, y: y3}
}

func (p *montgomeryPoint) ScalarMult(k *big.Int) Point {
	return ladder(p, k, p.curve.Identity())
}
