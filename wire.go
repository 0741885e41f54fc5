package schnorr

import (
	"math/big"
)

// MaxFormatBChallengeBytes is the largest challenge format B can carry
const MaxFormatBChallengeBytes = 255

// FormatAFieldLength returns Q_BYTES, the width of each field of a format A
// signature: one byte more than q needs.
func FormatAFieldLength(q *big.Int) int {
	return (q.BitLen()+7)/8 + 1
}

// EncodeFormatA encodes (e, y) as two fixed width big-endian fields of
// FormatAFieldLength(q) bytes each
func EncodeFormatA(e, y, q *big.Int) ([]byte, error) {
	width := FormatAFieldLength(q)
	if e.Sign() < 0 || y.Sign() < 0 {
		return nil, ErrInvalidParameter.WithDetails("negative signature component")
	}
	if (e.BitLen()+7)/8 > width || (y.BitLen()+7)/8 > width {
		return nil, ErrInvalidParameter.WithDetails("signature component wider than %d bytes", width)
	}
	out := make([]byte, 2*width)
	e.FillBytes(out[:width])
	y.FillBytes(out[width:])
	return out, nil
}

// DecodeFormatA splits a format A signature. Only the length is checked;
// range checks against q are left to the verifier.
func DecodeFormatA(sig []byte, q *big.Int) (e, y *big.Int, err error) {
	width := FormatAFieldLength(q)
	if len(sig) != 2*width {
		return nil, nil, ErrInvalidSignature.WithDetails("format A signature has %d bytes, want %d", len(sig), 2*width)
	}
	return new(big.Int).SetBytes(sig[:width]), new(big.Int).SetBytes(sig[width:]), nil
}

// EncodeFormatB encodes (e, y) as [len(e)] [e] [y] with minimal big-endian
// encodings. e must fit into 255 bytes.
func EncodeFormatB(e, y *big.Int) ([]byte, error) {
	if e.Sign() < 0 || y.Sign() < 0 {
		return nil, ErrInvalidParameter.WithDetails("negative signature component")
	}
	eBytes := e.Bytes()
	if len(eBytes) > MaxFormatBChallengeBytes {
		return nil, ErrInvalidParameter.WithDetails("challenge has %d bytes, at most %d fit", len(eBytes), MaxFormatBChallengeBytes)
	}
	yBytes := y.Bytes()
	out := make([]byte, 0, 1+len(eBytes)+len(yBytes))
	out = append(out, byte(len(eBytes)))
	out = append(out, eBytes...)
	return append(out, yBytes...), nil
}

// DecodeFormatB reverses EncodeFormatB. Non-minimal encodings are rejected
// so every (e, y) has exactly one byte string.
func DecodeFormatB(sig []byte) (e, y *big.Int, err error) {
	if len(sig) == 0 {
		return nil, nil, ErrInvalidSignature.WithDetails("empty format B signature")
	}
	eLen := int(sig[0])
	if len(sig) < 1+eLen {
		return nil, nil, ErrInvalidSignature.WithDetails("format B challenge length %d exceeds signature", eLen)
	}
	eBytes, yBytes := sig[1:1+eLen], sig[1+eLen:]
	// only the minimal encoding of each component is accepted
	if (len(eBytes) > 0 && eBytes[0] == 0) || (len(yBytes) > 0 && yBytes[0] == 0) {
		return nil, nil, ErrInvalidSignature.WithDetails("format B component has a leading zero byte")
	}
	return new(big.Int).SetBytes(eBytes), new(big.Int).SetBytes(yBytes), nil
}
