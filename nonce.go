package schnorr

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"io"
	"math/big"
	"strings"

	"golang.org/x/crypto/chacha20"
)

// NonceStrategy selects how the signing engine draws its per-signature nonce
type NonceStrategy int

const (
	// AlmostUniform reduces 2*bitlen(q) random bits mod q
	AlmostUniform NonceStrategy = iota
	// Uniform rejection-samples bitlen(q) random bits below q
	Uniform
	// HmacSHA256PRNG derives the nonce from the extended key and the message
	// with an HMAC-DRBG in the manner of RFC 6979
	HmacSHA256PRNG
	// SeededPRNG derives the nonce from a ChaCha20 stream keyed by the
	// extended key and reseeded with the message digest
	SeededPRNG
)

var nonceStrategyNames = map[NonceStrategy]string{
	AlmostUniform:  "AlmostUniform",
	Uniform:        "Uniform",
	HmacSHA256PRNG: "HmacSHA256PRNG",
	SeededPRNG:     "SeededPRNG",
}

func (s NonceStrategy) String() string {
	if name, ok := nonceStrategyNames[s]; ok {
		return name
	}
	return "NonceStrategy(unknown)"
}

// ParseNonceStrategy matches a strategy name case-insensitively
func ParseNonceStrategy(name string) (NonceStrategy, error) {
	for s, n := range nonceStrategyNames {
		if strings.EqualFold(n, name) {
			return s, nil
		}
	}
	return 0, ErrUnknownIdentifier.WithDetails("nonce strategy %q", name)
}

// MarshalText implements encoding.TextMarshaler
func (s NonceStrategy) MarshalText() ([]byte, error) {
	if _, ok := nonceStrategyNames[s]; !ok {
		return nil, ErrUnknownIdentifier.WithDetails("nonce strategy %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *NonceStrategy) UnmarshalText(text []byte) error {
	parsed, err := ParseNonceStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// NonceFamily partitions strategies by their reproducibility guarantee
type NonceFamily string

const (
	// NonceFamilyRandom strategies sign the same message differently every time
	NonceFamilyRandom NonceFamily = "random"
	// NonceFamilyDeterministic strategies sign the same (key, message) identically
	NonceFamilyDeterministic NonceFamily = "deterministic"
)

// Family reports which family the strategy belongs to
func (s NonceStrategy) Family() NonceFamily {
	switch s {
	case HmacSHA256PRNG, SeededPRNG:
		return NonceFamilyDeterministic
	default:
		return NonceFamilyRandom
	}
}

// NonceGenerator draws nonces in [0, modulus). A generator is bound with
// Reset, optionally fed the message digest with CopyDigestState and then
// asked for one or more nonces. It is not safe for concurrent use.
type NonceGenerator struct {
	strategy NonceStrategy
	rand     io.Reader
	modulus  *big.Int
	extKey   []byte
	bound    bool

	// HmacSHA256PRNG state
	k, v   []byte
	seeded bool

	// SeededPRNG state
	seedKey [32]byte
	stream  *chacha20.Cipher
}

// NewNonceGenerator creates an unbound generator for strategy
func NewNonceGenerator(strategy NonceStrategy) (*NonceGenerator, error) {
	if _, ok := nonceStrategyNames[strategy]; !ok {
		return nil, ErrUnknownIdentifier.WithDetails("nonce strategy %d", int(strategy))
	}
	return &NonceGenerator{strategy: strategy}, nil
}

// Strategy returns the strategy tag
func (n *NonceGenerator) Strategy() NonceStrategy { return n.strategy }

// Family returns the strategy's family
func (n *NonceGenerator) Family() NonceFamily { return n.strategy.Family() }

// Reset binds the generator to a modulus. Random strategies need rand,
// deterministic strategies need extKey; the other argument is ignored.
func (n *NonceGenerator) Reset(rand io.Reader, modulus *big.Int, extKey []byte) error {
	if modulus == nil || modulus.Sign() <= 0 {
		return ErrNonce.WithDetails("modulus must be positive")
	}
	switch n.strategy {
	case AlmostUniform, Uniform:
		if rand == nil {
			return ErrNonce.WithDetails("%s needs a random source", n.strategy)
		}
	case HmacSHA256PRNG, SeededPRNG:
		if len(extKey) == 0 {
			return ErrNonce.WithDetails("%s needs extended key bytes", n.strategy)
		}
	}

	n.wipe()
	n.rand = rand
	n.modulus = new(big.Int).Set(modulus)
	n.extKey = append([]byte(nil), extKey...)

	switch n.strategy {
	case HmacSHA256PRNG:
		n.v = make([]byte, sha256.Size)
		for i := range n.v {
			n.v[i] = 0x01
		}
		n.k = make([]byte, sha256.Size)
		n.seeded = false
	case SeededPRNG:
		n.seedKey = sha256.Sum256(n.extKey)
		if err := n.rekey(); err != nil {
			return err
		}
	}
	n.bound = true
	return nil
}

// UpdateByte mirrors one message byte. The message reaches the deterministic
// strategies through CopyDigestState, so this is a no-op for every strategy.
func (n *NonceGenerator) UpdateByte(b byte) {}

// Update mirrors message bytes; see UpdateByte
func (n *NonceGenerator) Update(p []byte) {}

// CopyDigestState folds a finalized snapshot of the running message digest
// into the generator's seed. Random strategies ignore it.
func (n *NonceGenerator) CopyDigestState(d *Digest) error {
	if !n.bound {
		return ErrNonce.WithDetails("generator is not bound")
	}
	switch n.strategy {
	case HmacSHA256PRNG:
		snapshot, err := d.Clone()
		if err != nil {
			return ErrNonce.WithCause(err)
		}
		n.seedHMAC(snapshot.Sum())
	case SeededPRNG:
		snapshot, err := d.Clone()
		if err != nil {
			return ErrNonce.WithCause(err)
		}
		h := sha256.New()
		h.Write(n.seedKey[:])
		h.Write(snapshot.Sum())
		h.Sum(n.seedKey[:0])
		return n.rekey()
	}
	return nil
}

// seedHMAC runs the RFC 6979 K/V update twice, with separators 0x00 and
// 0x01, over V || sep || extKey || digest.
func (n *NonceGenerator) seedHMAC(digest []byte) {
	for _, sep := range []byte{0x00, 0x01} {
		n.k = n.hmacK(n.v, []byte{sep}, n.extKey, digest)
		n.v = n.hmacK(n.v)
	}
	n.seeded = true
}

func (n *NonceGenerator) hmacK(parts ...[]byte) []byte {
	mac := hmac.New(sha256.New, n.k)
	for _, p := range parts {
		mac.Write(p)
	}
	return mac.Sum(nil)
}

func (n *NonceGenerator) rekey() error {
	var zeroNonce [chacha20.NonceSize]byte
	stream, err := chacha20.NewUnauthenticatedCipher(n.seedKey[:], zeroNonce[:])
	if err != nil {
		return ErrNonce.WithCause(err)
	}
	n.stream = stream
	return nil
}

// Nonce returns the next nonce in [0, modulus)
func (n *NonceGenerator) Nonce() (*big.Int, error) {
	if !n.bound {
		return nil, ErrNonce.WithDetails("generator is not bound")
	}
	bitLen := n.modulus.BitLen()

	switch n.strategy {
	case AlmostUniform:
		buf := make([]byte, (2*bitLen+7)/8)
		defer ZeroizeBytes(buf)
		if _, err := io.ReadFull(n.rand, buf); err != nil {
			return nil, ErrNonce.WithCause(err)
		}
		r := new(big.Int).SetBytes(buf)
		return r.Mod(r, n.modulus), nil

	case Uniform:
		r, err := rand.Int(n.rand, n.modulus)
		if err != nil {
			return nil, ErrNonce.WithCause(err)
		}
		return r, nil

	case HmacSHA256PRNG:
		if !n.seeded {
			n.seedHMAC(nil)
		}
		var t []byte
		for len(t)*8 < 2*bitLen {
			n.v = n.hmacK(n.v)
			t = append(t, n.v...)
			if len(t)*8 < bitLen {
				n.k = n.hmacK(n.v, []byte{0x00})
				n.v = n.hmacK(n.v)
			}
		}
		r := new(big.Int).SetBytes(t)
		ZeroizeBytes(t)
		return r.Mod(r, n.modulus), nil

	case SeededPRNG:
		buf := make([]byte, (bitLen+7)/8)
		defer ZeroizeBytes(buf)
		excess := uint(len(buf)*8 - bitLen)
		for {
			ZeroizeBytes(buf)
			n.stream.XORKeyStream(buf, buf)
			buf[0] &= byte(0xff >> excess)
			r := new(big.Int).SetBytes(buf)
			if r.Cmp(n.modulus) < 0 {
				return r, nil
			}
		}
	}
	return nil, ErrNonce.WithDetails("unknown strategy %d", int(n.strategy))
}

// wipe clears the key material of a previous binding
func (n *NonceGenerator) wipe() {
	ZeroizeBytes(n.extKey)
	ZeroizeBytes(n.k)
	ZeroizeBytes(n.v)
	ZeroizeBytes(n.seedKey[:])
	n.extKey, n.k, n.v, n.stream = nil, nil, nil, nil
	n.seeded, n.bound = false, false
}
