package schnorr

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/hkdf"
)

const (
	// digestExpansionInfo separates digest expansion from other HKDF uses
	digestExpansionInfo = "schnorr digest expansion"

	// digestMargin is the number of bits a challenge digest must exceed the
	// group order by before reduction
	digestMargin = 16

	// hkdfBlockSize is the longest output HKDF-SHA256 can produce per expansion
	hkdfBlockSize = 255 * sha256.Size
)

// expandDigest stretches a challenge digest to at least bitlen(modulus) + 16
// bits so reducing it mod the modulus leaves a negligible bias. The extra
// bytes are HKDF-SHA256 output keyed by the digest itself, so signer and
// verifier compute the same expansion from public data.
func expandDigest(digest []byte, modulus *big.Int) ([]byte, error) {
	needed := (modulus.BitLen() + digestMargin + 7) / 8
	if len(digest) >= needed {
		return digest, nil
	}
	reader := hkdf.New(sha256.New, digest, nil, []byte(digestExpansionInfo))
	expanded := make([]byte, needed)
	copy(expanded, digest)
	if _, err := io.ReadFull(reader, expanded[len(digest):]); err != nil {
		return nil, ErrHashComputation.WithDetails("digest expansion").WithCause(err)
	}
	return expanded, nil
}

// challenge reduces an expanded digest modulo q
func challenge(digest []byte, modulus *big.Int) (*big.Int, error) {
	expanded, err := expandDigest(digest, modulus)
	if err != nil {
		return nil, err
	}
	e := new(big.Int).SetBytes(expanded)
	return e.Mod(e, modulus), nil
}

// DeterministicReader is an io.Reader producing an unbounded HKDF-SHA256
// stream from a seed. It replaces the random source where reproducible key
// pairs are wanted, for instance in tests and demos. It must never stand in
// for real entropy when generating production keys.
type DeterministicReader struct {
	seed    []byte
	info    string
	counter uint32
	block   io.Reader
}

// NewDeterministicReader creates a reader whose output depends only on seed
// and info
func NewDeterministicReader(seed []byte, info string) (*DeterministicReader, error) {
	if len(seed) == 0 {
		return nil, fmt.Errorf("seed cannot be empty")
	}
	r := &DeterministicReader{seed: append([]byte(nil), seed...), info: info}
	r.nextBlock()
	return r, nil
}

// nextBlock starts a fresh HKDF expansion, each one keyed by the block index
func (r *DeterministicReader) nextBlock() {
	indexBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(indexBytes, r.counter)
	r.counter++
	info := append([]byte(r.info+":"), indexBytes...)
	r.block = io.LimitReader(hkdf.New(sha256.New, r.seed, []byte("SCHNORR_DETERMINISTIC_STREAM_v1"), info), hkdfBlockSize)
}

func (r *DeterministicReader) Read(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		n, err := r.block.Read(p[total:])
		total += n
		if err == io.EOF {
			r.nextBlock()
			continue
		}
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
