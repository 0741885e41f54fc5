package schnorr

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProviderRegistry(t *testing.T) {
	provider := NewProvider()
	require.Equal(t, "schnorr", provider.Name())
	require.Equal(t, []string{
		AlgorithmECSchnorr, AlgorithmECSchnorrWithSHA256, AlgorithmSchnorr, AlgorithmSchnorrWithSHA256,
	}, provider.Algorithms())

	_, err := provider.NewSignature("DSA")
	require.ErrorIs(t, err, ErrUnknownIdentifier)
	_, err = provider.NewKeyPairGenerator("DSA")
	require.ErrorIs(t, err, ErrUnknownIdentifier)
}

func TestProviderProperties(t *testing.T) {
	provider := NewProvider()
	require.Equal(t, "SHA-256", provider.Property(PropertyMessageDigest))
	require.Equal(t, "UNKNOWN_POINT", provider.Property(PropertyPointMultiplication))
	require.Equal(t, "AlmostUniform", provider.Property(PropertyNonceStrategy))
	require.Empty(t, provider.Property("keySize"))

	require.ErrorIs(t, provider.SetProperty("keySize", "2048"), ErrUnknownIdentifier)
	require.ErrorIs(t, provider.SetProperty(PropertyMessageDigest, "MD5"), ErrUnknownIdentifier)
	require.ErrorIs(t, provider.SetProperty(PropertyNonceStrategy, "Counter"), ErrUnknownIdentifier)
	require.Equal(t, "SHA-256", provider.Property(PropertyMessageDigest), "rejected values leave the property unchanged")

	require.NoError(t, provider.SetProperty(PropertyMessageDigest, string(DigestSHA3_512)))
	require.NoError(t, provider.SetProperty(PropertyPointMultiplication, "fixed_point"))
	require.NoError(t, provider.SetProperty(PropertyNonceStrategy, "SeededPRNG"))

	cfg, err := provider.EngineConfig()
	require.NoError(t, err)
	require.Equal(t, EngineConfig{Digest: DigestSHA3_512, NonceStrategy: SeededPRNG, PointStrategy: FixedPoint}, cfg)

	engine, err := provider.NewSignature(AlgorithmECSchnorr)
	require.NoError(t, err)
	require.Equal(t, cfg, engine.Config())

	// caller options win over properties, the alias digest wins over both
	engine, err = provider.NewSignature(AlgorithmECSchnorrWithSHA256, WithDigest(DigestBLAKE2b256), WithNonceStrategy(Uniform))
	require.NoError(t, err)
	require.Equal(t, DigestSHA256, engine.Config().Digest)
	require.Equal(t, Uniform, engine.Config().NonceStrategy)
}

func TestProviderSettingRestriction(t *testing.T) {
	provider := NewProvider()

	generator, err := provider.NewKeyPairGenerator(AlgorithmECSchnorr, WithRandom(NewTestReader(t, "provider")))
	require.NoError(t, err)
	require.Equal(t, SettingEllipticCurve, generator.Setting())
	_, err = generator.GenerateMultiplicative(t.Context(), KeyGenSpec{Strength: StrengthDefault})
	require.ErrorIs(t, err, ErrInvalidParameter)

	pair, err := generator.GenerateCurve(t.Context(), CurveKeyGenSpec{Family: FamilyNIST, CurveID: "P-224"})
	require.NoError(t, err)

	signer, err := provider.NewSignature(AlgorithmECSchnorr)
	require.NoError(t, err)
	require.NoError(t, signer.InitSign(pair.Private))
	require.NoError(t, signer.Update(quickBrownFox))
	sig, err := signer.Sign()
	require.NoError(t, err)

	verifier, err := provider.NewSignature(AlgorithmECSchnorrWithSHA256)
	require.NoError(t, err)
	require.NoError(t, verifier.InitVerify(pair.Public))
	require.NoError(t, verifier.Update(quickBrownFox))
	valid, err := verifier.Verify(sig)
	require.NoError(t, err)
	require.True(t, valid)

	mult, err := provider.NewSignature(AlgorithmSchnorr)
	require.NoError(t, err)
	require.ErrorIs(t, mult.InitSign(pair.Private), ErrInvalidKey)
	require.ErrorIs(t, mult.InitVerify(pair.Public), ErrInvalidKey)
	require.Equal(t, Uninitialized, mult.State())
}

func TestProviderConcurrentProperties(t *testing.T) {
	provider := NewProvider()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			digest := DigestSHA256
			if i%2 == 1 {
				digest = DigestSHA512
			}
			require.NoError(t, provider.SetProperty(PropertyMessageDigest, string(digest)))
			_, err := provider.NewSignature(AlgorithmSchnorr)
			require.NoError(t, err)
		}(i)
	}
	wg.Wait()
	require.Contains(t, []string{"SHA-256", "SHA-512"}, provider.Property(PropertyMessageDigest))
}
