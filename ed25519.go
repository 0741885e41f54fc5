package schnorr

import (
	"io"
	"math/big"

	"filippo.io/edwards25519"
	"filippo.io/edwards25519/field"
)

var (
	// ed25519Prime is 2^255 - 19
	ed25519Prime = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(19))

	// ed25519Order is the prime subgroup order 2^252 + 27742317777372353535851937790883648493
	ed25519Order, _ = new(big.Int).SetString("7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)
)

// Ed25519Curve implements the Curve interface for the twisted Edwards curve
// -x^2 + y^2 = 1 + d*x^2*y^2 on top of filippo.io/edwards25519
type Ed25519Curve struct{}

// NewEd25519Curve creates a new Ed25519 curve instance
func NewEd25519Curve() *Ed25519Curve {
	return &Ed25519Curve{}
}

func (c *Ed25519Curve) Name() string         { return "Ed25519" }
func (c *Ed25519Curve) Field() *big.Int      { return ed25519Prime }
func (c *Ed25519Curve) FieldByteLength() int { return 32 }

// Order returns the order of the prime subgroup
func (c *Ed25519Curve) Order() *big.Int { return ed25519Order }

// Generator returns the standard Ed25519 base point
func (c *Ed25519Curve) Generator() Point {
	return &Ed25519Point{inner: edwards25519.NewGeneratorPoint()}
}

func (c *Ed25519Curve) Identity() Point {
	return &Ed25519Point{inner: edwards25519.NewIdentityPoint()}
}

// NewPoint compresses (x, y) into the RFC 8032 encoding and decodes it again,
// which rejects every pair that is not on the curve.
func (c *Ed25519Curve) NewPoint(x, y *big.Int) (Point, error) {
	if x.Sign() < 0 || x.Cmp(ed25519Prime) >= 0 || y.Sign() < 0 || y.Cmp(ed25519Prime) >= 0 {
		return nil, ErrInvalidPoint
	}
	encoded := make([]byte, 32)
	y.FillBytes(encoded)
	reverse(encoded)
	encoded[31] |= byte(x.Bit(0)) << 7

	point, err := new(edwards25519.Point).SetBytes(encoded)
	if err != nil {
		return nil, ErrPointNotOnCurve
	}
	p := &Ed25519Point{inner: point}
	px, py := p.Coordinates()
	if px.Cmp(x) != 0 || py.Cmp(y) != 0 {
		return nil, ErrPointNotOnCurve
	}
	return p, nil
}

// RandomPoint decodes random 32 byte strings until one is a valid encoding.
// The result may carry a small order component.
func (c *Ed25519Curve) RandomPoint(rand io.Reader) (Point, error) {
	encoded := make([]byte, 32)
	for {
		if _, err := io.ReadFull(rand, encoded); err != nil {
			return nil, ErrRandomnessGeneration.WithCause(err)
		}
		point, err := new(edwards25519.Point).SetBytes(encoded)
		if err != nil {
			continue
		}
		return &Ed25519Point{inner: point}, nil
	}
}

// Ed25519Point implements the Point interface
type Ed25519Point struct {
	inner *edwards25519.Point
}

func (p *Ed25519Point) Bytes() []byte {
	return CanonicalBytes(p, 32)
}

func (p *Ed25519Point) String() string {
	return pointString(p)
}

// Coordinates returns the affine (x, y) recovered from extended coordinates
func (p *Ed25519Point) Coordinates() (*big.Int, *big.Int) {
	if p.IsIdentity() {
		return nil, nil
	}
	X, Y, Z, _ := p.inner.ExtendedCoordinates()
	zInv := new(field.Element).Invert(Z)
	x := new(field.Element).Multiply(X, zInv)
	y := new(field.Element).Multiply(Y, zInv)
	return fieldToBig(x), fieldToBig(y)
}

func fieldToBig(e *field.Element) *big.Int {
	b := e.Bytes()
	reverse(b)
	return new(big.Int).SetBytes(b)
}

func (p *Ed25519Point) Add(other Point) Point {
	result := edwards25519.NewIdentityPoint()
	result.Add(p.inner, other.(*Ed25519Point).inner)
	return &Ed25519Point{inner: result}
}

// ScalarMult delegates to edwards25519 for canonical scalars. Larger or
// negative multipliers fall back to the generic ladder so points outside the
// prime subgroup are still multiplied exactly.
func (p *Ed25519Point) ScalarMult(k *big.Int) Point {
	if k.Sign() < 0 || k.Cmp(ed25519Order) >= 0 {
		return ladder(p, k, edwards25519Identity())
	}
	buf := make([]byte, 32)
	k.FillBytes(buf)
	reverse(buf)
	scalar, err := edwards25519.NewScalar().SetCanonicalBytes(buf)
	if err != nil {
		return ladder(p, k, edwards25519Identity())
	}
	result := edwards25519.NewIdentityPoint()
	result.ScalarMult(scalar, p.inner)
	return &Ed25519Point{inner: result}
}

// MultByCofactor returns 8*p using the dedicated doubling chain
func (p *Ed25519Point) MultByCofactor() Point {
	result := edwards25519.NewIdentityPoint()
	result.MultByCofactor(p.inner)
	return &Ed25519Point{inner: result}
}

func edwards25519Identity() Point {
	return &Ed25519Point{inner: edwards25519.NewIdentityPoint()}
}

func (p *Ed25519Point) Negate() Point {
	result := edwards25519.NewIdentityPoint()
	result.Negate(p.inner)
	return &Ed25519Point{inner: result}
}

func (p *Ed25519Point) Equal(other Point) bool {
	o, ok := other.(*Ed25519Point)
	if !ok {
		return false
	}
	return p.inner.Equal(o.inner) == 1
}

func (p *Ed25519Point) IsIdentity() bool {
	identity := edwards25519.NewIdentityPoint()
	return p.inner.Equal(identity) == 1
}

func (p *Ed25519Point) IsOnCurve() bool {
	// Validate that the point is actually on the curve by attempting to re-parse its bytes
	// The edwards25519 library will reject invalid points during SetBytes
	_, err := new(edwards25519.Point).SetBytes(p.inner.Bytes())
	return err == nil
}

// reverse flips a byte slice in place, converting between little and big endian
func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
