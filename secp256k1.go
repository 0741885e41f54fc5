package schnorr

import (
	"io"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
)

// Secp256k1Curve implements the Curve interface for secp256k1 on top of btcec
type Secp256k1Curve struct{}

// NewSecp256k1Curve creates a new secp256k1 curve instance
func NewSecp256k1Curve() *Secp256k1Curve {
	return &Secp256k1Curve{}
}

func (c *Secp256k1Curve) Name() string         { return "secp256k1" }
func (c *Secp256k1Curve) Field() *big.Int      { return btcec.S256().Params().P }
func (c *Secp256k1Curve) FieldByteLength() int { return 32 }

// Order returns the prime order n of the secp256k1 group
func (c *Secp256k1Curve) Order() *big.Int { return btcec.S256().Params().N }

// Generator returns the standard secp256k1 base point
func (c *Secp256k1Curve) Generator() Point {
	return &Secp256k1Point{inner: btcec.Generator()}
}

func (c *Secp256k1Curve) Identity() Point {
	// Point at infinity
	return &Secp256k1Point{inner: nil}
}

func (c *Secp256k1Curve) NewPoint(x, y *big.Int) (Point, error) {
	if x.Sign() < 0 || x.BitLen() > 256 || y.Sign() < 0 || y.BitLen() > 256 {
		return nil, ErrInvalidPoint
	}
	encoded := make([]byte, 65)
	encoded[0] = 0x04
	x.FillBytes(encoded[1:33])
	y.FillBytes(encoded[33:])

	// btcec rejects coordinates outside the field and points off the curve
	pubKey, err := btcec.ParsePubKey(encoded)
	if err != nil {
		return nil, ErrPointNotOnCurve
	}
	return &Secp256k1Point{inner: pubKey}, nil
}

// RandomPoint decompresses random x coordinates until one lies on the curve
func (c *Secp256k1Curve) RandomPoint(rand io.Reader) (Point, error) {
	compressed := make([]byte, 33)
	for {
		if _, err := io.ReadFull(rand, compressed); err != nil {
			return nil, ErrRandomnessGeneration.WithCause(err)
		}
		compressed[0] = 0x02 | (compressed[0] & 1)
		pubKey, err := btcec.ParsePubKey(compressed)
		if err != nil {
			continue
		}
		return &Secp256k1Point{inner: pubKey}, nil
	}
}

// Secp256k1Point implements the Point interface
type Secp256k1Point struct {
	inner *btcec.PublicKey
}

func fromJacobian(jac *btcec.JacobianPoint) *Secp256k1Point {
	jac.X.Normalize()
	jac.Y.Normalize()
	jac.Z.Normalize()
	if (jac.X.IsZero() && jac.Y.IsZero()) || jac.Z.IsZero() {
		return &Secp256k1Point{inner: nil}
	}
	jac.ToAffine()
	return &Secp256k1Point{inner: btcec.NewPublicKey(&jac.X, &jac.Y)}
}

func (p *Secp256k1Point) Bytes() []byte {
	return CanonicalBytes(p, 32)
}

func (p *Secp256k1Point) String() string {
	return pointString(p)
}

func (p *Secp256k1Point) Coordinates() (*big.Int, *big.Int) {
	if p.inner == nil {
		return nil, nil
	}
	return p.inner.X(), p.inner.Y()
}

func (p *Secp256k1Point) Add(other Point) Point {
	o := other.(*Secp256k1Point)
	if p.inner == nil {
		return o
	}
	if o.inner == nil {
		return p
	}

	var result, otherJac btcec.JacobianPoint
	p.inner.AsJacobian(&result)
	o.inner.AsJacobian(&otherJac)

	// WARNING: btcec/v2 only offers variable-time point addition
	btcec.AddNonConst(&result, &otherJac, &result)
	return fromJacobian(&result)
}

// ScalarMult reduces k modulo n first; every non-identity point of
// secp256k1 has order n because the cofactor is 1.
func (p *Secp256k1Point) ScalarMult(k *big.Int) Point {
	if p.inner == nil {
		return p // Point at infinity
	}

	reduced := new(big.Int).Mod(k, btcec.S256().Params().N)
	var scalar btcec.ModNScalar
	scalar.SetByteSlice(reduced.Bytes())

	var pointJac, result btcec.JacobianPoint
	p.inner.AsJacobian(&pointJac)

	// WARNING: btcec/v2 only offers variable-time scalar multiplication
	btcec.ScalarMultNonConst(&scalar, &pointJac, &result)
	return fromJacobian(&result)
}

func (p *Secp256k1Point) Negate() Point {
	if p.inner == nil {
		return p // Point at infinity
	}

	var jac btcec.JacobianPoint
	p.inner.AsJacobian(&jac)

	// Negate Y coordinate
	jac.Y.Negate(1).Normalize()
	return fromJacobian(&jac)
}

func (p *Secp256k1Point) Equal(other Point) bool {
	o, ok := other.(*Secp256k1Point)
	if !ok {
		return false
	}
	if p.inner == nil || o.inner == nil {
		return p.inner == nil && o.inner == nil
	}
	return p.inner.IsEqual(o.inner)
}

func (p *Secp256k1Point) IsIdentity() bool {
	return p.inner == nil
}

func (p *Secp256k1Point) IsOnCurve() bool {
	if p.inner == nil {
		return true // Point at infinity is valid
	}
	// btcec validates points when they are parsed, invalid points cannot exist
	return true
}
