package schnorr

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding"
	"hash"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// DigestAlgorithm names a message digest usable by the signature engine
type DigestAlgorithm string

const (
	DigestSHA224     DigestAlgorithm = "SHA-224"
	DigestSHA256     DigestAlgorithm = "SHA-256"
	DigestSHA384     DigestAlgorithm = "SHA-384"
	DigestSHA512     DigestAlgorithm = "SHA-512"
	DigestSHA3_256   DigestAlgorithm = "SHA3-256"
	DigestSHA3_512   DigestAlgorithm = "SHA3-512"
	DigestBLAKE2b256 DigestAlgorithm = "BLAKE2b-256"
	DigestBLAKE2b512 DigestAlgorithm = "BLAKE2b-512"
)

// DigestAlgorithms lists every supported digest
func DigestAlgorithms() []DigestAlgorithm {
	return []DigestAlgorithm{
		DigestSHA224, DigestSHA256, DigestSHA384, DigestSHA512,
		DigestSHA3_256, DigestSHA3_512,
		DigestBLAKE2b256, DigestBLAKE2b512,
	}
}

// ParseDigestAlgorithm matches a digest name case-insensitively
func ParseDigestAlgorithm(name string) (DigestAlgorithm, error) {
	for _, alg := range DigestAlgorithms() {
		if strings.EqualFold(string(alg), name) {
			return alg, nil
		}
	}
	return "", ErrUnknownIdentifier.WithDetails("message digest %q", name)
}

func (a DigestAlgorithm) newHash() (hash.Hash, error) {
	switch a {
	case DigestSHA224:
		return sha256.New224(), nil
	case DigestSHA256:
		return sha256.New(), nil
	case DigestSHA384:
		return sha512.New384(), nil
	case DigestSHA512:
		return sha512.New(), nil
	case DigestSHA3_256:
		return sha3.New256(), nil
	case DigestSHA3_512:
		return sha3.New512(), nil
	case DigestBLAKE2b256:
		return blake2b.New256(nil)
	case DigestBLAKE2b512:
		return blake2b.New512(nil)
	}
	return nil, ErrUnknownIdentifier.WithDetails("message digest %q", string(a))
}

// Digest is an incremental hash that can be checkpointed: Clone returns an
// independent copy of the running state so a snapshot can be finalized while
// the original keeps accumulating.
type Digest struct {
	alg DigestAlgorithm
	h   hash.Hash

	// transcript records the input for hashes whose state cannot be marshalled
	transcript []byte
	replay     bool
}

// NewDigest creates an empty running digest
func NewDigest(alg DigestAlgorithm) (*Digest, error) {
	h, err := alg.newHash()
	if err != nil {
		return nil, err
	}
	_, marshals := h.(encoding.BinaryMarshaler)
	_, unmarshals := h.(encoding.BinaryUnmarshaler)
	return &Digest{alg: alg, h: h, replay: !(marshals && unmarshals)}, nil
}

// Algorithm returns the digest name
func (d *Digest) Algorithm() DigestAlgorithm { return d.alg }

// Size returns the output length in bytes
func (d *Digest) Size() int { return d.h.Size() }

// Write feeds p into the running digest. It never fails.
func (d *Digest) Write(p []byte) (int, error) {
	if d.replay {
		d.transcript = append(d.transcript, p...)
	}
	return d.h.Write(p)
}

// Reset empties the running digest
func (d *Digest) Reset() {
	d.h.Reset()
	ZeroizeBytes(d.transcript)
	d.transcript = d.transcript[:0]
}

// Sum finalizes a copy of the state; the running digest is left untouched
func (d *Digest) Sum() []byte {
	return d.h.Sum(nil)
}

// Clone returns an independent snapshot of the running digest
func (d *Digest) Clone() (*Digest, error) {
	h, err := d.alg.newHash()
	if err != nil {
		return nil, err
	}
	clone := &Digest{alg: d.alg, h: h, replay: d.replay}
	if d.replay {
		clone.transcript = append([]byte(nil), d.transcript...)
		h.Write(clone.transcript)
		return clone, nil
	}
	state, err := d.h.(encoding.BinaryMarshaler).MarshalBinary()
	if err != nil {
		return nil, ErrHashComputation.WithCause(err)
	}
	if err := h.(encoding.BinaryUnmarshaler).UnmarshalBinary(state); err != nil {
		return nil, ErrHashComputation.WithCause(err)
	}
	return clone, nil
}
