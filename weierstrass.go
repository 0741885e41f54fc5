package schnorr

import (
	"io"
	"math/big"
)

var (
	bigZero  = big.NewInt(0)
	bigOne   = big.NewInt(1)
	bigTwo   = big.NewInt(2)
	bigThree = big.NewInt(3)
)

// WeierstrassCurve implements Curve for y^2 = x^3 + a*x + b over GF(p) with
// Jacobian coordinates on math/big. It backs P-192, P-224, the Brainpool
// catalog and custom short Weierstrass curves.
type WeierstrassCurve struct {
	name string
	p    *big.Int
	a    *big.Int
	b    *big.Int
}

// NewWeierstrassCurve creates a short Weierstrass curve. The coefficients are
// reduced mod p; the discriminant 4a^3 + 27b^2 must not vanish.
func NewWeierstrassCurve(name string, p, a, b *big.Int) (*WeierstrassCurve, error) {
	if p == nil || a == nil || b == nil {
		return nil, ErrInvalidParameter.WithDetails("curve %s: nil coefficient", name)
	}
	if p.Cmp(bigThree) <= 0 || !p.ProbablyPrime(20) {
		return nil, ErrInvalidParameter.WithDetails("curve %s: field modulus is not an odd prime", name)
	}
	c := &WeierstrassCurve{
		name: name,
		p:    new(big.Int).Set(p),
		a:    new(big.Int).Mod(a, p),
		b:    new(big.Int).Mod(b, p),
	}

	a3 := new(big.Int).Exp(c.a, bigThree, p)
	a3.Lsh(a3, 2)
	b2 := new(big.Int).Mul(c.b, c.b)
	b2.Mul(b2, big.NewInt(27))
	if a3.Add(a3, b2).Mod(a3, p).Sign() == 0 {
		return nil, ErrInvalidParameter.WithDetails("curve %s: singular curve", name)
	}
	return c, nil
}

func (c *WeierstrassCurve) Name() string         { return c.name }
func (c *WeierstrassCurve) Field() *big.Int      { return c.p }
func (c *WeierstrassCurve) FieldByteLength() int { return (c.p.BitLen() + 7) / 8 }

// A returns the curve coefficient a
func (c *WeierstrassCurve) A() *big.Int { return c.a }

// B returns the curve coefficient b
func (c *WeierstrassCurve) B() *big.Int { return c.b }

func (c *WeierstrassCurve) Identity() Point {
	return &weierstrassPoint{curve: c, x: big.NewInt(1), y: big.NewInt(1), z: new(big.Int)}
}

func (c *WeierstrassCurve) NewPoint(x, y *big.Int) (Point, error) {
	if x.Sign() < 0 || x.Cmp(c.p) >= 0 || y.Sign() < 0 || y.Cmp(c.p) >= 0 {
		return nil, ErrInvalidPoint
	}
	if !c.onCurve(x, y) {
		return nil, ErrPointNotOnCurve
	}
	return &weierstrassPoint{curve: c, x: new(big.Int).Set(x), y: new(big.Int).Set(y), z: big.NewInt(1)}, nil
}

// rhs evaluates x^3 + a*x + b mod p
func (c *WeierstrassCurve) rhs(x *big.Int) *big.Int {
	r := new(big.Int).Mul(x, x)
	r.Add(r, c.a)
	r.Mul(r, x)
	r.Add(r, c.b)
	return r.Mod(r, c.p)
}

func (c *WeierstrassCurve) onCurve(x, y *big.Int) bool {
	y2 := new(big.Int).Mul(y, y)
	y2.Mod(y2, c.p)
	return y2.Cmp(c.rhs(x)) == 0
}

// RandomPoint samples a uniformly random x, retrying until x^3 + ax + b is a
// quadratic residue, and picks the sign of y at random.
func (c *WeierstrassCurve) RandomPoint(rand io.Reader) (Point, error) {
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
		return &weierstrassPoint{curve: c, x: x, y: y, z: big.NewInt(1)}, nil
	}
}

// weierstrassPoint holds Jacobian coordinates (X, Y, Z) representing the
// affine point (X/Z^2, Y/Z^3). Z = 0 is the point at infinity.
type weierstrassPoint struct {
	curve   *WeierstrassCurve
	x, y, z *big.Int
}

func (p *weierstrassPoint) IsIdentity() bool {
	return p.z.Sign() == 0
}

func (p *weierstrassPoint) Coordinates() (*big.Int, *big.Int) {
	if p.IsIdentity() {
		return nil, nil
	}
	P := p.curve.p
	zInv := new(big.Int).ModInverse(p.z, P)
	zInv2 := new(big.Int).Mul(zInv, zInv)
	x := new(big.Int).Mul(p.x, zInv2)
	x.Mod(x, P)
	y := new(big.Int).Mul(p.y, zInv2)
	y.Mul(y, zInv)
	y.Mod(y, P)
	return x, y
}

func (p *weierstrassPoint) Bytes() []byte {
	return CanonicalBytes(p, p.curve.FieldByteLength())
}

func (p *weierstrassPoint) String() string {
	return pointString(p)
}

func (p *weierstrassPoint) IsOnCurve() bool {
	if p.IsIdentity() {
		return true
	}
	x, y := p.Coordinates()
	return p.curve.onCurve(x, y)
}

func (p *weierstrassPoint) Equal(other Point) bool {
	o, ok := other.(*weierstrassPoint)
	if !ok {
		return false
	}
	if p.IsIdentity() || o.IsIdentity() {
		return p.IsIdentity() == o.IsIdentity()
	}
	x1, y1 := p.Coordinates()
	x2, y2 := o.Coordinates()
	return x1.Cmp(x2) == 0 && y1.Cmp(y2) == 0
}

func (p *weierstrassPoint) Negate() Point {
	if p.IsIdentity() {
		return p
	}
	y := new(big.Int).Sub(p.curve.p, p.y)
	y.Mod(y, p.curve.p)
	return &weierstrassPoint{curve: p.curve, x: p.x, y: y, z: p.z}
}

func (p *weierstrassPoint) double() *weierstrassPoint {
	P := p.curve.p
	if p.IsIdentity() || p.y.Sign() == 0 {
		return p.curve.Identity().(*weierstrassPoint)
	}
	xx := new(big.Int).Mul(p.x, p.x)
	yy := new(big.Int).Mul(p.y, p.y)
	yy.Mod(yy, P)
	yyyy := new(big.Int).Mul(yy, yy)
	zz := new(big.Int).Mul(p.z, p.z)
	zz.Mod(zz, P)

	// S = 4*X*YY
	s := new(big.Int).Mul(p.x, yy)
	s.Lsh(s, 2)
	s.Mod(s, P)

	// M = 3*XX + a*ZZ^2
	m := new(big.Int).Mul(xx, bigThree)
	t := new(big.Int).Mul(zz, zz)
	t.Mul(t, p.curve.a)
	m.Add(m, t)
	m.Mod(m, P)

	// X3 = M^2 - 2*S
	x3 := new(big.Int).Mul(m, m)
	x3.Sub(x3, new(big.Int).Lsh(s, 1))
	x3.Mod(x3, P)

	// Y3 = M*(S - X3) - 8*YYYY
	y3 := new(big.Int).Sub(s, x3)
	y3.Mul(y3, m)
	y3.Sub(y3, yyyy.Lsh(yyyy, 3))
	y3.Mod(y3, P)

	// Z3 = 2*Y*Z
	z3 := new(big.Int).Mul(p.y, p.z)
	z3.Lsh(z3, 1)
	z3.Mod(z3, P)

	return &weierstrassPoint{curve: p.curve, x: x3, y: y3, z: z3}
}

func (p *weierstrassPoint) Add(other Point) Point {
	q := other.(*weierstrassPoint)
	if p.IsIdentity() {
		return q
	}
	if q.IsIdentity() {
		return p
	}
	P := p.curve.p

	z1z1 := new(big.Int).Mul(p.z, p.z)
	z1z1.Mod(z1z1, P)
	z2z2 := new(big.Int).Mul(q.z, q.z)
	z2z2.Mod(z2z2, P)

	u1 := new(big.Int).Mul(p.x, z2z2)
	u1.Mod(u1, P)
	u2 := new(big.Int).Mul(q.x, z1z1)
	u2.Mod(u2, P)

	s1 := new(big.Int).Mul(p.y, q.z)
	s1.Mul(s1, z2z2)
	s1.Mod(s1, P)
	s2 := new(big.Int).Mul(q.y, p.z)
	s2.Mul(s2, z1z1)
	s2.Mod(s2, P)

	if u1.Cmp(u2) == 0 {
		if s1.Cmp(s2) != 0 {
			return p.curve.Identity()
		}
		return p.double()
	}

	h := new(big.Int).Sub(u2, u1)
	h.Mod(h, P)
	r := new(big.Int).Sub(s2, s1)
	r.Mod(r, P)

	hh := new(big.Int).Mul(h, h)
	hh.Mod(hh, P)
	hhh := new(big.Int).Mul(h, hh)
	hhh.Mod(hhh, P)
	v := new(big.Int).Mul(u1, hh)
	v.Mod(v, P)

	// X3 = R^2 - HHH - 2*V
	x3 := new(big.Int).Mul(r, r)
	x3.Sub(x3, hhh)
	x3.Sub(x3, new(big.Int).Lsh(v, 1))
	x3.Mod(x3, P)

	// Y3 = R*(V - X3) - S1*HHH
	y3 := new(big.Int).Sub(v, x3)
	y3.Mul(y3, r)
	y3.Sub(y3, new(big.Int).Mul(s1, hhh))
	y3.Mod(y3, P)

	// Z3 = Z1*Z2*H
	z3 := new(big.Int).Mul(p.z, q.z)
	z3.Mul(z3, h)
	z3.Mod(z3, P)

	return &weierstrassPoint{curve: p.curve, x: x3, y: y3, z: z3}
}

// ScalarMult uses left-to-right double-and-add. The loop is not constant time.
func (p *weierstrassPoint) ScalarMult(k *big.Int) Point {
	if k.Sign() < 0 {
		return p.Negate().ScalarMult(new(big.Int).Neg(k))
	}
	result := p.curve.Identity().(*weierstrassPoint)
	for i := k.BitLen() - 1; i >= 0; i-- {
		result = result.double()
		if k.Bit(i) == 1 {
			result = result.Add(p).(*weierstrassPoint)
		}
	}
	return result
}
