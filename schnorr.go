// Package schnorr implements Schnorr signatures over multiplicative Schnorr
// groups and over elliptic curves from the NIST, Brainpool, SafeCurves and
// SECG catalogs or supplied by the caller.
package schnorr

import (
	"fmt"
	"math/big"
)

// Signature is the pair (e, y): the challenge e and the response y, both in Z_q
type Signature struct {
	Challenge *big.Int
	Response  *big.Int
}

// ParseSignature decodes sig in the wire format of params: format A for
// multiplicative groups, format B for curves
func ParseSignature(params GroupParameters, sig []byte) (*Signature, error) {
	var e, y *big.Int
	var err error
	switch p := params.(type) {
	case *MultiplicativeParams:
		e, y, err = DecodeFormatA(sig, p.Q)
	case *CurveParams:
		e, y, err = DecodeFormatB(sig)
	default:
		return nil, ErrInvalidParameter.WithDetails("unsupported group parameters %T", params)
	}
	if err != nil {
		return nil, err
	}
	return &Signature{Challenge: e, Response: y}, nil
}

// Bytes encodes the signature in the wire format of params
func (s *Signature) Bytes(params GroupParameters) ([]byte, error) {
	switch p := params.(type) {
	case *MultiplicativeParams:
		return EncodeFormatA(s.Challenge, s.Response, p.Q)
	case *CurveParams:
		return EncodeFormatB(s.Challenge, s.Response)
	}
	return nil, ErrInvalidParameter.WithDetails("unsupported group parameters %T", params)
}

func (s *Signature) String() string {
	return fmt.Sprintf("Signature(e=%x, y=%x)", s.Challenge, s.Response)
}

// Sign signs message with a one-shot engine
func Sign(priv *PrivateKey, message []byte, opts ...EngineOption) ([]byte, error) {
	engine, err := NewEngine(opts...)
	if err != nil {
		return nil, err
	}
	if err := engine.InitSign(priv); err != nil {
		return nil, err
	}
	if err := engine.Update(message); err != nil {
		return nil, err
	}
	return engine.Sign()
}

// Verify checks sig over message with a one-shot engine
func Verify(pub *PublicKey, message, sig []byte, opts ...EngineOption) (bool, error) {
	engine, err := NewEngine(opts...)
	if err != nil {
		return false, err
	}
	if err := engine.InitVerify(pub); err != nil {
		return false, err
	}
	if err := engine.Update(message); err != nil {
		return false, err
	}
	return engine.Verify(sig)
}
