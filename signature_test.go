package schnorr

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"io"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var quickBrownFox = []byte("The quick brown fox jumps over the lazy dog")

func generatePair(t *testing.T, params GroupParameters, randomBase, extended bool) *KeyPair {
	t.Helper()
	pair, err := NewKeyPairGenerator(WithRandom(NewTestReader(t, t.Name()))).Generate(params, randomBase, extended)
	require.NoError(t, err)
	return pair
}

func resolveCurve(t *testing.T, family CurveFamily, id string) *CurveParams {
	t.Helper()
	params, err := ResolveCurve(family, id)
	require.NoError(t, err)
	return params
}

// requireTamperEvident flips every byte of sig, then single bytes of msg in
// place, and expects each variant to fail verification
func requireTamperEvident(t *testing.T, pub *PublicKey, msg, sig []byte) {
	t.Helper()
	for i := range sig {
		tampered := bytes.Clone(sig)
		tampered[i] ^= 0x01
		valid, err := Verify(pub, msg, tampered)
		require.NoError(t, err)
		require.False(t, valid, "signature byte %d flipped", i)
	}
	for _, i := range []int{0, len(msg) / 2, len(msg) - 1} {
		altered := bytes.Clone(msg)
		altered[i] ^= 0x80
		valid, err := Verify(pub, altered, sig)
		require.NoError(t, err)
		require.False(t, valid, "message byte %d flipped", i)
	}
}

func TestSignVerifyMultiplicative(t *testing.T) {
	params := defaultGroup(t, 0)
	pair := generatePair(t, params, false, false)

	sig, err := Sign(pair.Private, quickBrownFox)
	require.NoError(t, err)
	require.Len(t, sig, 2*FormatAFieldLength(params.Q))

	valid, err := Verify(pair.Public, quickBrownFox, sig)
	require.NoError(t, err)
	require.True(t, valid)

	valid, err = Verify(pair.Public, append(append([]byte(nil), quickBrownFox...), '.'), sig)
	require.NoError(t, err)
	require.False(t, valid, "a longer message must not verify")
	requireTamperEvident(t, pair.Public, quickBrownFox, sig)

	// e = H(M || g^y * h^e)
	parsed, err := ParseSignature(params, sig)
	require.NoError(t, err)
	s := new(big.Int).Exp(params.G, parsed.Response, params.P)
	s.Mul(s, new(big.Int).Exp(pair.Public.Element(), parsed.Challenge, params.P))
	s.Mod(s, params.P)
	h := sha256.New()
	h.Write(quickBrownFox)
	h.Write(s.FillBytes(make([]byte, params.ByteLength())))
	want, err := challenge(h.Sum(nil), params.Q)
	require.NoError(t, err)
	require.Zero(t, want.Cmp(parsed.Challenge))
}

func TestSignVerifyCurves(t *testing.T) {
	curves := map[string]*CurveParams{
		"P-384":           resolveCurve(t, FamilyNIST, "P-384"),
		"brainpoolP256r1": resolveCurve(t, FamilyBrainpool, "brainpoolP256r1"),
		"brainpoolP160t1": resolveCurve(t, FamilyBrainpool, "brainpoolP160t1"),
		"M-221":           resolveCurve(t, FamilySafeCurves, "M-221"),
		"Ed25519":         resolveCurve(t, FamilySafeCurves, "Ed25519"),
		"secp256k1":       resolveCurve(t, FamilySECG, "secp256k1"),
		"custom":          customCurve(t),
	}

	for name, params := range curves {
		t.Run(name, func(t *testing.T) {
			pair := generatePair(t, params, params.Base == nil, false)
			curve := pair.Public.Params().(*CurveParams)

			// the point strategy never changes what verifies
			sig, err := Sign(pair.Private, quickBrownFox, WithPointStrategy(FixedPoint))
			require.NoError(t, err)
			valid, err := Verify(pair.Public, quickBrownFox, sig, WithPointStrategy(UnknownPoint))
			require.NoError(t, err)
			require.True(t, valid)
			valid, err = Verify(pair.Public, quickBrownFox, sig, WithPointStrategy(FixedPoint))
			require.NoError(t, err)
			require.True(t, valid)

			// e = H(M || y*G - e*H)
			parsed, err := ParseSignature(curve, sig)
			require.NoError(t, err)
			negE := new(big.Int).Neg(parsed.Challenge)
			s := curve.Base.ScalarMult(parsed.Response).Add(pair.Public.Point().ScalarMult(negE))
			h := sha256.New()
			h.Write(quickBrownFox)
			h.Write(CanonicalBytes(s, curve.FieldByteLength()))
			want, err := challenge(h.Sum(nil), curve.N)
			require.NoError(t, err)
			require.Zero(t, want.Cmp(parsed.Challenge))

			requireTamperEvident(t, pair.Public, quickBrownFox, sig)
		})
	}
}

func TestNonceStrategiesAndDigests(t *testing.T) {
	params := resolveCurve(t, FamilyBrainpool, "brainpoolP256r1")
	pair := generatePair(t, params, false, true)

	for _, strategy := range []NonceStrategy{AlmostUniform, Uniform, HmacSHA256PRNG, SeededPRNG} {
		for _, digest := range DigestAlgorithms() {
			opts := []EngineOption{WithNonceStrategy(strategy), WithDigest(digest), WithEngineRandom(NewTestReader(t, "nonces"))}
			sig, err := Sign(pair.Private, quickBrownFox, opts...)
			require.NoError(t, err, "%s/%s", strategy, digest)

			valid, err := Verify(pair.Public, quickBrownFox, sig, WithDigest(digest))
			require.NoError(t, err)
			require.True(t, valid, "%s/%s", strategy, digest)
		}
	}
}

func TestDeterministicSignatures(t *testing.T) {
	params := resolveCurve(t, FamilySafeCurves, "Ed25519")
	pair := generatePair(t, params, false, true)

	for _, strategy := range []NonceStrategy{HmacSHA256PRNG, SeededPRNG} {
		t.Run(strategy.String(), func(t *testing.T) {
			first, err := Sign(pair.Private, quickBrownFox, WithNonceStrategy(strategy))
			require.NoError(t, err)
			second, err := Sign(pair.Private, quickBrownFox, WithNonceStrategy(strategy))
			require.NoError(t, err)
			require.Equal(t, first, second)

			other, err := Sign(pair.Private, []byte("another message"), WithNonceStrategy(strategy))
			require.NoError(t, err)
			require.NotEqual(t, first, other)
		})
	}

	// random strategies differ between draws
	first, err := Sign(pair.Private, quickBrownFox)
	require.NoError(t, err)
	second, err := Sign(pair.Private, quickBrownFox)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestDeterministicNonceNeedsExtendedKey(t *testing.T) {
	pair := generatePair(t, resolveCurve(t, FamilyNIST, "P-256"), false, false)
	engine, err := NewEngine(WithNonceStrategy(HmacSHA256PRNG))
	require.NoError(t, err)
	require.ErrorIs(t, engine.InitSign(pair.Private), ErrInvalidKey)
	require.Equal(t, Uninitialized, engine.State())
}

func TestEngineLifecycle(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)
	require.Equal(t, Uninitialized, engine.State())

	require.ErrorIs(t, engine.Update([]byte("x")), ErrNotInitialized)
	require.ErrorIs(t, engine.UpdateByte('x'), ErrNotInitialized)
	_, err = engine.Write([]byte("x"))
	require.ErrorIs(t, err, ErrNotInitialized)
	_, err = engine.Sign()
	require.ErrorIs(t, err, ErrNotInitialized)
	_, err = engine.Verify([]byte{0})
	require.ErrorIs(t, err, ErrNotInitialized)

	pair := generatePair(t, resolveCurve(t, FamilySECG, "secp256k1"), false, false)
	require.ErrorIs(t, engine.InitSign(nil), ErrInvalidKey)
	require.ErrorIs(t, engine.InitVerify(nil), ErrInvalidKey)

	require.NoError(t, engine.InitVerify(pair.Public))
	require.Equal(t, VerifyingReady, engine.State())
	_, err = engine.Sign()
	require.ErrorIs(t, err, ErrNotInitialized)

	require.NoError(t, engine.InitSign(pair.Private))
	require.Equal(t, SigningReady, engine.State())
	_, err = engine.Verify([]byte{0})
	require.ErrorIs(t, err, ErrNotInitialized)

	// the engine stays ready across messages
	messages := [][]byte{[]byte("one"), []byte("two"), {}}
	sigs := make([][]byte, len(messages))
	for i, msg := range messages {
		require.NoError(t, engine.Update(msg))
		sigs[i], err = engine.Sign()
		require.NoError(t, err)
		require.Equal(t, SigningReady, engine.State())
	}

	verifier, err := NewEngine()
	require.NoError(t, err)
	require.NoError(t, verifier.InitVerify(pair.Public))
	for i, msg := range messages {
		require.NoError(t, verifier.Update(msg))
		valid, err := verifier.Verify(sigs[i])
		require.NoError(t, err)
		require.True(t, valid, "message %d", i)
		require.Equal(t, VerifyingReady, verifier.State())
	}

	// a failed verification leaves no residue in the digest
	require.NoError(t, verifier.Update([]byte("two")))
	valid, err := verifier.Verify(sigs[0])
	require.NoError(t, err)
	require.False(t, valid)
	require.NoError(t, verifier.Update([]byte("one")))
	valid, err = verifier.Verify(sigs[0])
	require.NoError(t, err)
	require.True(t, valid)
}

func TestSessionRandomDoesNotOutliveSession(t *testing.T) {
	pair := generatePair(t, resolveCurve(t, FamilyNIST, "P-256"), false, false)
	engine, err := NewEngine(WithEngineRandom(rand.Reader))
	require.NoError(t, err)

	// one P-256 nonce worth of randomness, then EOF
	seed := make([]byte, 64)
	_, err = io.ReadFull(NewTestReader(t, "session"), seed)
	require.NoError(t, err)
	oneShot := bytes.NewReader(seed)
	require.NoError(t, engine.InitSignWithRandom(pair.Private, oneShot))
	require.NoError(t, engine.Update(quickBrownFox))
	_, err = engine.Sign()
	require.NoError(t, err)

	require.NoError(t, engine.InitSign(pair.Private))
	for i := 0; i < 3; i++ {
		require.NoError(t, engine.Update(quickBrownFox))
		sig, err := engine.Sign()
		require.NoError(t, err)
		valid, err := Verify(pair.Public, quickBrownFox, sig)
		require.NoError(t, err)
		require.True(t, valid)
	}
}

func TestStreamingMatchesOneShot(t *testing.T) {
	pair := generatePair(t, resolveCurve(t, FamilyBrainpool, "brainpoolP224r1"), false, true)
	opts := []EngineOption{WithNonceStrategy(SeededPRNG), WithDigest(DigestSHA3_256)}

	want, err := Sign(pair.Private, quickBrownFox, opts...)
	require.NoError(t, err)

	engine, err := NewEngine(opts...)
	require.NoError(t, err)
	require.NoError(t, engine.InitSign(pair.Private))
	_, err = io.Copy(engine, strings.NewReader(string(quickBrownFox)))
	require.NoError(t, err)
	got, err := engine.Sign()
	require.NoError(t, err)
	require.Equal(t, want, got)

	for _, b := range quickBrownFox {
		require.NoError(t, engine.UpdateByte(b))
	}
	got, err = engine.Sign()
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestMalformedSignatures(t *testing.T) {
	mult := generatePair(t, defaultGroup(t, 1), false, false)
	curve := generatePair(t, resolveCurve(t, FamilyNIST, "P-256"), false, false)
	q := mult.Public.Params().Modulus()
	n := curve.Public.Params().Modulus()

	zeroResponse, err := EncodeFormatB(bigOne, bigZero)
	require.NoError(t, err)
	oversized, err := EncodeFormatA(q, bigOne, q)
	require.NoError(t, err)
	wideChallenge, err := EncodeFormatB(n, bigOne)
	require.NoError(t, err)

	// a valid signature re-encoded with zero padding must not verify
	sig, err := Sign(curve.Private, quickBrownFox)
	require.NoError(t, err)
	valid, err := Verify(curve.Public, quickBrownFox, sig)
	require.NoError(t, err)
	require.True(t, valid)
	eLen := int(sig[0])
	paddedChallenge := append([]byte{sig[0] + 1, 0x00}, sig[1:]...)
	paddedResponse := append(append(bytes.Clone(sig[:1+eLen]), 0x00), sig[1+eLen:]...)

	for name, tc := range map[string]struct {
		pub *PublicKey
		sig []byte
	}{
		"empty format B":         {curve.Public, nil},
		"truncated format B":     {curve.Public, []byte{0x20, 0x01}},
		"zero response":          {curve.Public, zeroResponse},
		"challenge not below n":  {curve.Public, wideChallenge},
		"short format A":         {mult.Public, make([]byte, FormatAFieldLength(q))},
		"challenge not below q":  {mult.Public, oversized},
		"all zero format A":      {mult.Public, make([]byte, 2*FormatAFieldLength(q))},
		"format A on curve keys": {curve.Public, bytes.Repeat([]byte{0x01}, 2*FormatAFieldLength(n))},
		"zero padded challenge":  {curve.Public, paddedChallenge},
		"zero padded response":   {curve.Public, paddedResponse},
	} {
		t.Run(name, func(t *testing.T) {
			valid, err := Verify(tc.pub, quickBrownFox, tc.sig)
			require.NoError(t, err)
			require.False(t, valid)
		})
	}
}

func TestKeyMismatch(t *testing.T) {
	params := resolveCurve(t, FamilySafeCurves, "M-383")
	generator := NewKeyPairGenerator(WithRandom(NewTestReader(t, "mismatch")))
	alice, err := generator.Generate(params, false, false)
	require.NoError(t, err)
	bob, err := generator.Generate(params, false, false)
	require.NoError(t, err)

	sig, err := Sign(alice.Private, quickBrownFox)
	require.NoError(t, err)
	valid, err := Verify(bob.Public, quickBrownFox, sig)
	require.NoError(t, err)
	require.False(t, valid)

	// a key on a random base point of the same curve does not verify either
	other, err := generator.Generate(params, true, false)
	require.NoError(t, err)
	sig, err = Sign(other.Private, quickBrownFox)
	require.NoError(t, err)
	valid, err = Verify(other.Public, quickBrownFox, sig)
	require.NoError(t, err)
	require.True(t, valid)
	valid, err = Verify(alice.Public, quickBrownFox, sig)
	require.NoError(t, err)
	require.False(t, valid)
}

func TestSignWithoutBasePoint(t *testing.T) {
	priv, err := NewPrivateKey(customCurve(t), big.NewInt(5), nil)
	require.NoError(t, err)
	_, err = Sign(priv, quickBrownFox)
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestEngineConfigValidation(t *testing.T) {
	audit := NewMockAuditHandler()
	_, err := NewEngine(WithDigest("MD5"), WithEngineAuditHandler(audit))
	require.ErrorIs(t, err, ErrInvalidParameter)
	require.Len(t, audit.validationFailures, 1)
	require.Equal(t, "engine_config", audit.validationFailures[0].ValidationType)

	_, err = NewEngine(WithNonceStrategy(NonceStrategy(42)))
	require.ErrorIs(t, err, ErrInvalidParameter)
	_, err = NewEngine(WithPointStrategy(PointStrategy(7)))
	require.ErrorIs(t, err, ErrInvalidParameter)

	cfg := EngineConfig{Digest: DigestBLAKE2b512, NonceStrategy: Uniform, PointStrategy: FixedPoint}
	engine, err := NewEngine(WithEngineConfig(cfg))
	require.NoError(t, err)
	require.Equal(t, cfg, engine.Config())
}

func TestEngineAuditTrail(t *testing.T) {
	audit := NewMockAuditHandler()
	pair := generatePair(t, resolveCurve(t, FamilyBrainpool, "brainpoolP192r1"), false, false)

	sig, err := Sign(pair.Private, quickBrownFox, WithEngineAuditHandler(audit))
	require.NoError(t, err)
	require.Len(t, audit.signatures, 1)
	event := audit.signatures[0]
	require.Equal(t, AuditEventSignatureCreated, event.EventType)
	require.Equal(t, "brainpoolP192r1", event.GroupName)
	require.GreaterOrEqual(t, event.Attempts, 1)
	require.True(t, event.Valid)

	_, err = Verify(pair.Public, []byte("forged"), sig, WithEngineAuditHandler(audit))
	require.NoError(t, err)
	require.Len(t, audit.verifications, 1)
	require.False(t, audit.verifications[0].Valid)
	require.Len(t, audit.configurationChanges, 2)
}

func TestPointStrategyText(t *testing.T) {
	for _, s := range []PointStrategy{UnknownPoint, FixedPoint} {
		text, err := s.MarshalText()
		require.NoError(t, err)
		var parsed PointStrategy
		require.NoError(t, parsed.UnmarshalText(text))
		require.Equal(t, s, parsed)
	}
	var parsed PointStrategy
	require.ErrorIs(t, parsed.UnmarshalText([]byte("SLIDING_WINDOW")), ErrUnknownIdentifier)
	_, err := PointStrategy(9).MarshalText()
	require.ErrorIs(t, err, ErrUnknownIdentifier)
}
