package schnorr

import (
	"math/big"
)

// ExtKeyBytesLength is the length of the auxiliary secret of extended keys
const ExtKeyBytesLength = 8

// PublicKey is H = G^x in a multiplicative group or H = x*G on a curve
type PublicKey struct {
	params GroupParameters
	h      *big.Int
	point  Point
}

// NewMultiplicativePublicKey wraps an existing group element
func NewMultiplicativePublicKey(params *MultiplicativeParams, h *big.Int) (*PublicKey, error) {
	if params == nil || h == nil {
		return nil, ErrInvalidKey.WithDetails("nil parameters or element")
	}
	pub := &PublicKey{params: params, h: new(big.Int).Set(h)}
	if err := ValidatePublicKey(pub); err != nil {
		return nil, err
	}
	return pub, nil
}

// NewCurvePublicKey wraps an existing curve point
func NewCurvePublicKey(params *CurveParams, point Point) (*PublicKey, error) {
	if params == nil || point == nil {
		return nil, ErrInvalidKey.WithDetails("nil parameters or point")
	}
	pub := &PublicKey{params: params, point: point}
	if err := ValidatePublicKey(pub); err != nil {
		return nil, err
	}
	return pub, nil
}

// Params returns the group the key lives in
func (k *PublicKey) Params() GroupParameters { return k.params }

// Element returns H for multiplicative keys and nil otherwise
func (k *PublicKey) Element() *big.Int {
	if k.h == nil {
		return nil
	}
	return new(big.Int).Set(k.h)
}

// Point returns H for curve keys and nil otherwise
func (k *PublicKey) Point() Point { return k.point }

// Bytes returns the canonical encoding of H
func (k *PublicKey) Bytes() []byte {
	switch params := k.params.(type) {
	case *MultiplicativeParams:
		return k.h.FillBytes(make([]byte, params.ByteLength()))
	case *CurveParams:
		return CanonicalBytes(k.point, params.FieldByteLength())
	}
	return nil
}

// Equal reports whether both keys hold the same element of the same group
func (k *PublicKey) Equal(other *PublicKey) bool {
	if other == nil {
		return false
	}
	switch params := k.params.(type) {
	case *MultiplicativeParams:
		o, ok := other.params.(*MultiplicativeParams)
		return ok && params.Equal(o) && k.h.Cmp(other.h) == 0
	case *CurveParams:
		o, ok := other.params.(*CurveParams)
		return ok && params.Curve.Name() == o.Curve.Name() && params.Base.Equal(o.Base) && k.point.Equal(other.point)
	}
	return false
}

// PrivateKey holds the secret scalar x and, for extended keys, the auxiliary
// bytes the deterministic nonce strategies are keyed with
type PrivateKey struct {
	params GroupParameters
	x      *big.Int
	extKey []byte
}

// NewPrivateKey wraps an existing scalar 0 < x < q. extKey may be nil.
func NewPrivateKey(params GroupParameters, x *big.Int, extKey []byte) (*PrivateKey, error) {
	if params == nil || x == nil {
		return nil, ErrInvalidKey.WithDetails("nil parameters or scalar")
	}
	if x.Sign() <= 0 || x.Cmp(params.Modulus()) >= 0 {
		return nil, ErrInvalidKey.WithDetails("private scalar out of range")
	}
	key := &PrivateKey{params: params, x: new(big.Int).Set(x)}
	if extKey != nil {
		key.extKey = append([]byte(nil), extKey...)
	}
	return key, nil
}

// Params returns the group the key lives in
func (k *PrivateKey) Params() GroupParameters { return k.params }

// Scalar returns a copy of x
func (k *PrivateKey) Scalar() *big.Int { return new(big.Int).Set(k.x) }

// Extended reports whether the key carries auxiliary bytes
func (k *PrivateKey) Extended() bool { return len(k.extKey) > 0 }

// ExtKeyBytes returns a copy of the auxiliary bytes, nil if not extended
func (k *PrivateKey) ExtKeyBytes() []byte {
	if len(k.extKey) == 0 {
		return nil
	}
	return append([]byte(nil), k.extKey...)
}

// Public recomputes the matching public key
func (k *PrivateKey) Public() *PublicKey {
	switch params := k.params.(type) {
	case *MultiplicativeParams:
		return &PublicKey{params: params, h: new(big.Int).Exp(params.G, k.x, params.P)}
	case *CurveParams:
		return &PublicKey{params: params, point: params.FixedBase().Mul(k.x)}
	}
	return nil
}

// Zeroize wipes the secret material. The key is unusable afterwards.
func (k *PrivateKey) Zeroize() {
	if k.x != nil {
		k.x.SetInt64(0)
	}
	ZeroizeBytes(k.extKey)
	k.extKey = nil
}

// KeyPair holds two halves sharing one GroupParameters instance
type KeyPair struct {
	Public  *PublicKey
	Private *PrivateKey
}
