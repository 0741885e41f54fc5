package schnorr

import (
	"crypto/elliptic"
	"io"
	"math/big"

	"github.com/cloudflare/circl/group"
)

// nistGroups are the NIST curves circl provides a prime order group for.
// P-192 and P-224 stay on WeierstrassCurve.
var nistGroups = map[string]struct {
	group  group.Group
	params func() elliptic.Curve
}{
	"P-256": {group.P256, elliptic.P256},
	"P-384": {group.P384, elliptic.P384},
	"P-521": {group.P521, elliptic.P521},
}

// NISTCurve implements Curve for P-256, P-384 and P-521 on top of circl's
// prime order groups
type NISTCurve struct {
	name string
	g    group.Group
	p    *big.Int
	n    *big.Int
	size int
}

// NewNISTCurve returns the circl backed curve for id
func NewNISTCurve(id string) (*NISTCurve, error) {
	entry, ok := nistGroups[id]
	if !ok {
		return nil, ErrUnknownIdentifier.WithDetails("no prime order group for curve %q", id)
	}
	params := entry.params().Params()
	return &NISTCurve{
		name: id,
		g:    entry.group,
		p:    params.P,
		n:    params.N,
		size: (params.BitSize + 7) / 8,
	}, nil
}

func (c *NISTCurve) Name() string         { return c.name }
func (c *NISTCurve) Field() *big.Int      { return c.p }
func (c *NISTCurve) FieldByteLength() int { return c.size }

// Order returns the prime order of the group
func (c *NISTCurve) Order() *big.Int { return c.n }

// Generator returns the standard base point
func (c *NISTCurve) Generator() Point {
	return &nistPoint{curve: c, e: c.g.Generator().Copy()}
}

func (c *NISTCurve) Identity() Point {
	return &nistPoint{curve: c, e: c.g.Identity()}
}

func (c *NISTCurve) NewPoint(x, y *big.Int) (Point, error) {
	if x.Sign() < 0 || x.Cmp(c.p) >= 0 || y.Sign() < 0 || y.Cmp(c.p) >= 0 {
		return nil, ErrInvalidPoint
	}
	encoded := make([]byte, 1+2*c.size)
	encoded[0] = 0x04
	x.FillBytes(encoded[1 : 1+c.size])
	y.FillBytes(encoded[1+c.size:])

	e := c.g.NewElement()
	if err := e.UnmarshalBinary(encoded); err != nil {
		return nil, ErrPointNotOnCurve
	}
	return &nistPoint{curve: c, e: e}, nil
}

// RandomPoint draws a random x, retrying until it decompresses, with a random
// choice of root.
func (c *NISTCurve) RandomPoint(rand io.Reader) (Point, error) {
	compressed := make([]byte, 1+c.size)
	for {
		x, err := randomFieldElement(rand, c.p)
		if err != nil {
			return nil, err
		}
		bit, err := randomBit(rand)
		if err != nil {
			return nil, err
		}
		compressed[0] = 0x02 | byte(bit)
		x.FillBytes(compressed[1:])

		e := c.g.NewElement()
		if err := e.UnmarshalBinary(compressed); err != nil {
			continue
		}
		return &nistPoint{curve: c, e: e}, nil
	}
}

func (c *NISTCurve) scalar(k *big.Int) group.Scalar {
	// SetBigInt reduces its argument in place
	return c.g.NewScalar().SetBigInt(new(big.Int).Set(k))
}

// nistPoint wraps a circl group element. Elements are never mutated after
// construction.
type nistPoint struct {
	curve *NISTCurve
	e     group.Element
}

func (p *nistPoint) Bytes() []byte {
	return CanonicalBytes(p, p.curve.size)
}

func (p *nistPoint) String() string {
	return pointString(p)
}

// Coordinates reads x and y from the uncompressed SEC 1 encoding
func (p *nistPoint) Coordinates() (*big.Int, *big.Int) {
	if p.e.IsIdentity() {
		return nil, nil
	}
	// MarshalBinary reduces the receiver's coordinates in place
	encoded, err := p.e.Copy().MarshalBinary()
	if err != nil || len(encoded) != 1+2*p.curve.size {
		return nil, nil
	}
	size := p.curve.size
	return new(big.Int).SetBytes(encoded[1 : 1+size]), new(big.Int).SetBytes(encoded[1+size:])
}

func (p *nistPoint) Add(other Point) Point {
	o := other.(*nistPoint)
	return &nistPoint{curve: p.curve, e: p.curve.g.NewElement().Add(p.e, o.e)}
}

func (p *nistPoint) Negate() Point {
	return &nistPoint{curve: p.curve, e: p.curve.g.NewElement().Neg(p.e)}
}

// ScalarMult reduces k modulo n, which also maps negative k to n - |k|
func (p *nistPoint) ScalarMult(k *big.Int) Point {
	if p.e.IsIdentity() {
		return p
	}
	return &nistPoint{curve: p.curve, e: p.curve.g.NewElement().Mul(p.e, p.curve.scalar(k))}
}

func (p *nistPoint) Equal(other Point) bool {
	o, ok := other.(*nistPoint)
	if !ok || o.curve.name != p.curve.name {
		return false
	}
	return p.e.IsEqual(o.e)
}

func (p *nistPoint) IsIdentity() bool {
	return p.e.IsIdentity()
}

// IsOnCurve round trips the point through circl's validating decoder
func (p *nistPoint) IsOnCurve() bool {
	if p.e.IsIdentity() {
		return true
	}
	encoded, err := p.e.Copy().MarshalBinary()
	if err != nil {
		return false
	}
	return p.curve.g.NewElement().UnmarshalBinary(encoded) == nil
}

// nistGenerator multiplies the standard generator with MulGen
type nistGenerator struct {
	curve *NISTCurve
}

func (g nistGenerator) Base() Point { return g.curve.Generator() }

func (g nistGenerator) Mul(k *big.Int) Point {
	return &nistPoint{curve: g.curve, e: g.curve.g.NewElement().MulGen(g.curve.scalar(k))}
}
