package schnorr

import (
	"errors"
	"fmt"
	"io"
	"math/big"
)

// Curve defines the interface for elliptic curve arithmetic backends
type Curve interface {
	// Metadata
	Name() string
	Field() *big.Int
	FieldByteLength() int

	// Point construction
	Identity() Point
	NewPoint(x, y *big.Int) (Point, error)
	RandomPoint(rand io.Reader) (Point, error)
}

// Point represents a point on an elliptic curve. Points are immutable, every
// operation returns a fresh value.
type Point interface {
	// Serialization
	Bytes() []byte
	String() string
	Coordinates() (x, y *big.Int)

	// Arithmetic operations
	Add(Point) Point
	Negate() Point
	ScalarMult(k *big.Int) Point

	// Comparison
	Equal(Point) bool
	IsIdentity() bool

	// Validation
	IsOnCurve() bool
}

// CurveForm names the equation a curve backend implements
type CurveForm string

const (
	ShortWeierstrass CurveForm = "short-weierstrass"
	Montgomery       CurveForm = "montgomery"
	TwistedEdwards   CurveForm = "twisted-edwards"
)

// NewCurve creates a custom curve of the given form. Short Weierstrass curves
// read y^2 = x^3 + a*x + b, Montgomery curves read b*y^2 = x^3 + a*x^2 + x.
func NewCurve(form CurveForm, name string, p, a, b *big.Int) (Curve, error) {
	switch form {
	case ShortWeierstrass:
		return NewWeierstrassCurve(name, p, a, b)
	case Montgomery:
		return NewMontgomeryCurve(name, p, a, b)
	default:
		return nil, ErrInvalidParameter.WithDetails("unsupported curve form: %s", form)
	}
}

// Common errors
var (
	ErrInvalidPoint    = errors.New("invalid point")
	ErrPointNotOnCurve = errors.New("point not on curve")
)

// CanonicalBytes encodes a point as x || y, each coordinate zero-padded
// big-endian to fieldByteLength bytes. The identity encodes as all zeros.
func CanonicalBytes(p Point, fieldByteLength int) []byte {
	out := make([]byte, 2*fieldByteLength)
	if p.IsIdentity() {
		return out
	}
	x, y := p.Coordinates()
	x.FillBytes(out[:fieldByteLength])
	y.FillBytes(out[fieldByteLength:])
	return out
}

// ladder computes k*p with the Montgomery ladder over the generic group law.
func ladder(p Point, k *big.Int, identity Point) Point {
	if k.Sign() < 0 {
		return ladder(p.Negate(), new(big.Int).Neg(k), identity)
	}
	r0, r1 := identity, p
	for i := k.BitLen() - 1; i >= 0; i-- {
		if k.Bit(i) == 0 {
			r1 = r0.Add(r1)
			r0 = r0.Add(r0)
		} else {
			r0 = r0.Add(r1)
			r1 = r1.Add(r1)
		}
	}
	return r0
}

// randomFieldElement draws a value uniformly enough from [0, p) by reducing
// 64 extra bits.
func randomFieldElement(rand io.Reader, p *big.Int) (*big.Int, error) {
	buf := make([]byte, (p.BitLen()+7)/8+8)
	if _, err := io.ReadFull(rand, buf); err != nil {
		return nil, ErrRandomnessGeneration.WithCause(err)
	}
	return new(big.Int).Mod(new(big.Int).SetBytes(buf), p), nil
}

// randomBit returns one random bit from rand
func randomBit(rand io.Reader) (uint, error) {
	var b [1]byte
	if _, err := io.ReadFull(rand, b[:]); err != nil {
		return 0, ErrRandomnessGeneration.WithCause(err)
	}
	return uint(b[0] & 1), nil
}

func pointString(p Point) string {
	if p.IsIdentity() {
		return "(identity)"
	}
	x, y := p.Coordinates()
	return fmt.Sprintf("(%x, %x)", x, y)
}
