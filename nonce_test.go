package schnorr

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

var testModulus = mustBig("1461501637330902918203683518218126812711137002561", 10)

func newBoundGenerator(t *testing.T, strategy NonceStrategy, extKey []byte, message string) *NonceGenerator {
	t.Helper()
	gen, err := NewNonceGenerator(strategy)
	require.NoError(t, err)
	require.NoError(t, gen.Reset(NewTestReader(t, "nonce"), testModulus, extKey))

	digest, err := NewDigest(DigestSHA256)
	require.NoError(t, err)
	digest.Write([]byte(message))
	require.NoError(t, gen.CopyDigestState(digest))
	return gen
}

func TestNonceStrategyNames(t *testing.T) {
	for strategy, name := range nonceStrategyNames {
		parsed, err := ParseNonceStrategy(name)
		require.NoError(t, err)
		require.Equal(t, strategy, parsed)
	}
	parsed, err := ParseNonceStrategy("hmacsha256prng")
	require.NoError(t, err)
	require.Equal(t, HmacSHA256PRNG, parsed)

	_, err = ParseNonceStrategy("RFC6979")
	require.ErrorIs(t, err, ErrUnknownIdentifier)

	_, err = NewNonceGenerator(NonceStrategy(42))
	require.ErrorIs(t, err, ErrUnknownIdentifier)
}

func TestNonceFamilies(t *testing.T) {
	require.Equal(t, NonceFamilyRandom, AlmostUniform.Family())
	require.Equal(t, NonceFamilyRandom, Uniform.Family())
	require.Equal(t, NonceFamilyDeterministic, HmacSHA256PRNG.Family())
	require.Equal(t, NonceFamilyDeterministic, SeededPRNG.Family())
}

func TestNonceRange(t *testing.T) {
	extKey := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	for strategy := range nonceStrategyNames {
		t.Run(strategy.String(), func(t *testing.T) {
			gen := newBoundGenerator(t, strategy, extKey, "range")
			for i := 0; i < 64; i++ {
				r, err := gen.Nonce()
				require.NoError(t, err)
				require.True(t, r.Sign() >= 0 && r.Cmp(testModulus) < 0)
			}
		})
	}
}

func TestDeterministicNonces(t *testing.T) {
	extKey := []byte{8, 7, 6, 5, 4, 3, 2, 1}
	for _, strategy := range []NonceStrategy{HmacSHA256PRNG, SeededPRNG} {
		t.Run(strategy.String(), func(t *testing.T) {
			a := newBoundGenerator(t, strategy, extKey, "message")
			b := newBoundGenerator(t, strategy, extKey, "message")
			for i := 0; i < 4; i++ {
				ra, err := a.Nonce()
				require.NoError(t, err)
				rb, err := b.Nonce()
				require.NoError(t, err)
				require.Zero(t, ra.Cmp(rb), "draw %d differs", i)
			}

			first, err := newBoundGenerator(t, strategy, extKey, "message").Nonce()
			require.NoError(t, err)
			otherMessage, err := newBoundGenerator(t, strategy, extKey, "message!").Nonce()
			require.NoError(t, err)
			otherKey, err := newBoundGenerator(t, strategy, []byte{0, 0, 0, 0, 0, 0, 0, 1}, "message").Nonce()
			require.NoError(t, err)
			require.NotZero(t, first.Cmp(otherMessage))
			require.NotZero(t, first.Cmp(otherKey))
		})
	}
}

func TestRandomNoncesIgnoreMessage(t *testing.T) {
	a := newBoundGenerator(t, AlmostUniform, nil, "one")
	b := newBoundGenerator(t, AlmostUniform, nil, "two")
	ra, err := a.Nonce()
	require.NoError(t, err)
	rb, err := b.Nonce()
	require.NoError(t, err)
	// both read the same reproducible stream
	require.Zero(t, ra.Cmp(rb))
}

func TestNonceResetRequirements(t *testing.T) {
	for _, strategy := range []NonceStrategy{HmacSHA256PRNG, SeededPRNG} {
		gen, err := NewNonceGenerator(strategy)
		require.NoError(t, err)
		require.ErrorIs(t, gen.Reset(NewTestReader(t, "x"), testModulus, nil), ErrNonce)
		require.NoError(t, gen.Reset(nil, testModulus, []byte{1}))
	}
	for _, strategy := range []NonceStrategy{AlmostUniform, Uniform} {
		gen, err := NewNonceGenerator(strategy)
		require.NoError(t, err)
		require.ErrorIs(t, gen.Reset(nil, testModulus, nil), ErrNonce)
	}

	gen, err := NewNonceGenerator(Uniform)
	require.NoError(t, err)
	require.ErrorIs(t, gen.Reset(NewTestReader(t, "x"), big.NewInt(0), nil), ErrNonce)

	_, err = gen.Nonce()
	require.ErrorIs(t, err, ErrNonce)
}

func TestHMACNonceMatchesReferenceDRBG(t *testing.T) {
	extKey := []byte("extkey!!")
	digest, err := NewDigest(DigestSHA256)
	require.NoError(t, err)
	digest.Write([]byte("sample"))
	h := digest.Sum()

	gen := newBoundGenerator(t, HmacSHA256PRNG, extKey, "sample")
	got, err := gen.Nonce()
	require.NoError(t, err)

	// independent re-computation of the DRBG steps
	ref := &NonceGenerator{k: make([]byte, 32), v: bytes.Repeat([]byte{0x01}, 32)}
	for _, sep := range []byte{0x00, 0x01} {
		ref.k = ref.hmacK(ref.v, []byte{sep}, extKey, h)
		ref.v = ref.hmacK(ref.v)
	}
	var stream []byte
	for len(stream)*8 < 2*testModulus.BitLen() {
		ref.v = ref.hmacK(ref.v)
		stream = append(stream, ref.v...)
		if len(stream)*8 < testModulus.BitLen() {
			ref.k = ref.hmacK(ref.v, []byte{0x00})
			ref.v = ref.hmacK(ref.v)
		}
	}
	want := new(big.Int).Mod(new(big.Int).SetBytes(stream), testModulus)
	require.Zero(t, want.Cmp(got))
}

func TestNonceUpdatesAreNoOps(t *testing.T) {
	a := newBoundGenerator(t, SeededPRNG, []byte("abcdefgh"), "m")
	b := newBoundGenerator(t, SeededPRNG, []byte("abcdefgh"), "m")
	b.Update([]byte("ignored"))
	b.UpdateByte(0xff)

	ra, err := a.Nonce()
	require.NoError(t, err)
	rb, err := b.Nonce()
	require.NoError(t, err)
	require.Zero(t, ra.Cmp(rb))
}

func TestNonceStrategyText(t *testing.T) {
	text, err := SeededPRNG.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "SeededPRNG", string(text))

	var s NonceStrategy
	require.NoError(t, s.UnmarshalText([]byte("uniform")))
	require.Equal(t, Uniform, s)
	require.Error(t, s.UnmarshalText([]byte("bogus")))
}
