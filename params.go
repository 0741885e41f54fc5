package schnorr

import (
	"math/big"
	"sync"
)

// PrimeCertainty is the Miller-Rabin certainty used throughout: a composite
// survives with probability at most 2^-PrimeCertainty.
const PrimeCertainty = 100

// millerRabinRounds converts PrimeCertainty into rounds for big.Int.ProbablyPrime,
// each round failing a composite with probability at least 3/4.
const millerRabinRounds = (PrimeCertainty + 1) / 2

// GroupParameters is either *MultiplicativeParams or *CurveParams
type GroupParameters interface {
	// Modulus returns the prime order q of the signing subgroup
	Modulus() *big.Int
	// Setting names the algebraic setting
	Setting() Setting

	groupParameters()
}

// Setting distinguishes the two algebraic settings
type Setting string

const (
	SettingMultiplicative Setting = "multiplicative"
	SettingEllipticCurve  Setting = "elliptic-curve"
)

// MultiplicativeParams describes the order q subgroup of Z*_p generated by G
type MultiplicativeParams struct {
	P *big.Int
	Q *big.Int
	G *big.Int
}

// NewMultiplicativeParams checks that p and q are probable primes, q divides
// p-1 and g generates a subgroup of order q.
func NewMultiplicativeParams(p, q, g *big.Int) (*MultiplicativeParams, error) {
	if p == nil || q == nil || g == nil {
		return nil, ErrInvalidGroup.WithDetails("nil group element")
	}
	if !q.ProbablyPrime(millerRabinRounds) {
		return nil, ErrInvalidGroup.WithDetails("q is not prime")
	}
	if !p.ProbablyPrime(millerRabinRounds) {
		return nil, ErrInvalidGroup.WithDetails("p is not prime")
	}
	pMinusOne := new(big.Int).Sub(p, bigOne)
	if new(big.Int).Mod(pMinusOne, q).Sign() != 0 {
		return nil, ErrInvalidGroup.WithDetails("q does not divide p-1")
	}
	if g.Cmp(bigOne) <= 0 || g.Cmp(p) >= 0 {
		return nil, ErrInvalidGroup.WithDetails("generator out of range")
	}
	if new(big.Int).Exp(g, q, p).Cmp(bigOne) != 0 {
		return nil, ErrInvalidGroup.WithDetails("generator order is not q")
	}
	return &MultiplicativeParams{
		P: new(big.Int).Set(p),
		Q: new(big.Int).Set(q),
		G: new(big.Int).Set(g),
	}, nil
}

func (m *MultiplicativeParams) Modulus() *big.Int { return m.Q }
func (m *MultiplicativeParams) Setting() Setting  { return SettingMultiplicative }
func (m *MultiplicativeParams) groupParameters()  {}

// ByteLength is the length of the canonical encoding of a group element
func (m *MultiplicativeParams) ByteLength() int { return (m.P.BitLen() + 7) / 8 }

// Equal compares the parameters by value
func (m *MultiplicativeParams) Equal(other *MultiplicativeParams) bool {
	if other == nil {
		return false
	}
	return m.P.Cmp(other.P) == 0 && m.Q.Cmp(other.Q) == 0 && m.G.Cmp(other.G) == 0
}

// CurveParams describes the subgroup of order N generated by Base on Curve.
// Base is nil for custom curves that have no published base point; such
// parameters can only be used to generate keys with a random base point.
type CurveParams struct {
	Curve    Curve
	N        *big.Int
	Cofactor *big.Int
	Base     Point
	Family   CurveFamily
	ID       string

	fixedBaseOnce sync.Once
	fixedBase     BaseMultiplier
}

// NewCurveParams validates order, cofactor and (if present) the base point
func NewCurveParams(curve Curve, order, cofactor *big.Int, base Point) (*CurveParams, error) {
	if curve == nil || order == nil || cofactor == nil {
		return nil, ErrInvalidGroup.WithDetails("nil curve parameter")
	}
	if !order.ProbablyPrime(millerRabinRounds) {
		return nil, ErrInvalidGroup.WithDetails("curve %s: order is not prime", curve.Name())
	}
	if cofactor.Sign() <= 0 {
		return nil, ErrInvalidGroup.WithDetails("curve %s: cofactor must be positive", curve.Name())
	}
	params := &CurveParams{
		Curve:    curve,
		N:        new(big.Int).Set(order),
		Cofactor: new(big.Int).Set(cofactor),
		Family:   FamilyCustom,
		ID:       curve.Name(),
	}
	if base != nil {
		if err := params.checkBasePoint(base); err != nil {
			return nil, err
		}
		params.Base = base
	}
	return params, nil
}

func (c *CurveParams) checkBasePoint(base Point) error {
	if base.IsIdentity() || !base.IsOnCurve() {
		return ErrInvalidGroup.WithDetails("curve %s: base point is not a valid curve point", c.Curve.Name())
	}
	if !base.ScalarMult(c.N).IsIdentity() {
		return ErrInvalidGroup.WithDetails("curve %s: base point order differs from group order", c.Curve.Name())
	}
	return nil
}

// WithBase returns a copy of the parameters bound to another base point of
// order N.
func (c *CurveParams) WithBase(base Point) (*CurveParams, error) {
	if err := c.checkBasePoint(base); err != nil {
		return nil, err
	}
	return &CurveParams{
		Curve:    c.Curve,
		N:        c.N,
		Cofactor: c.Cofactor,
		Base:     base,
		Family:   c.Family,
		ID:       c.ID,
	}, nil
}

func (c *CurveParams) Modulus() *big.Int { return c.N }
func (c *CurveParams) Setting() Setting  { return SettingEllipticCurve }
func (c *CurveParams) groupParameters()  {}

// BaseMultiplier computes multiples of one fixed base point
type BaseMultiplier interface {
	Base() Point
	Mul(k *big.Int) Point
}

// FixedBase returns the multiplier for Base, building it on first use. The
// standard generator of a circl backed NIST curve uses MulGen, every other
// base gets a precomputed FixedBaseTable.
func (c *CurveParams) FixedBase() BaseMultiplier {
	c.fixedBaseOnce.Do(func() {
		if nist, ok := c.Curve.(*NISTCurve); ok && c.Base.Equal(nist.Generator()) {
			c.fixedBase = nistGenerator{curve: nist}
			return
		}
		c.fixedBase = NewFixedBaseTable(c.Base, c.N.BitLen())
	})
	return c.fixedBase
}

// FieldByteLength is the width of one canonical coordinate
func (c *CurveParams) FieldByteLength() int { return c.Curve.FieldByteLength() }

// Name returns the catalog identifier of the curve
func (c *CurveParams) Name() string { return c.ID }
