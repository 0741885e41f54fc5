package schnorr

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStrengthTiers(t *testing.T) {
	for strength, bits := range map[Strength][2]int{
		StrengthMinimal: {1024, 160},
		StrengthDefault: {2048, 512},
		StrengthStrong:  {4096, 1024},
	} {
		l, tt, err := strength.BitLengths()
		require.NoError(t, err)
		require.Equal(t, bits, [2]int{l, tt})

		parsed, err := ParseStrength(strength.String())
		require.NoError(t, err)
		require.Equal(t, strength, parsed)
	}
	_, _, err := StrengthCustom.BitLengths()
	require.ErrorIs(t, err, ErrInvalidParameter)
	_, err = ParseStrength("PARANOID")
	require.ErrorIs(t, err, ErrUnknownIdentifier)
	require.Equal(t, "Strength(9)", Strength(9).String())
}

func TestKeyGenSpecValidation(t *testing.T) {
	_, err := NewKeyGenSpec(1023, 160, false, false)
	require.ErrorIs(t, err, ErrInsufficientStrength)
	_, err = NewKeyGenSpec(1024, 159, false, false)
	require.ErrorIs(t, err, ErrInsufficientStrength)
	_, err = NewKeyGenSpec(1024, 1024, false, false)
	require.ErrorIs(t, err, ErrInvalidParameter)
	_, err = NewKeyGenSpec(2048, 513, true, false)
	require.ErrorIs(t, err, ErrInvalidParameter)

	spec, err := NewKeyGenSpec(2048, 512, true, true)
	require.NoError(t, err)
	require.Equal(t, StrengthCustom, spec.Strength)
	require.True(t, spec.Exact)

	_, err = NewStrengthSpec(StrengthStrong, true)
	require.ErrorIs(t, err, ErrInvalidParameter, "extended keys cap q at 512 bits")
	_, err = NewStrengthSpec(StrengthCustom, false)
	require.ErrorIs(t, err, ErrInvalidParameter)

	spec, err = NewStrengthSpec(StrengthDefault, true)
	require.NoError(t, err)
	require.Equal(t, 2048, spec.L)
}

func TestPrecomputedGroups(t *testing.T) {
	require.NotEmpty(t, defaultSchnorrGroups)
	for i, group := range defaultSchnorrGroups {
		p, q := mustBig(group.p, 10), mustBig(group.q, 10)
		require.Equal(t, 2048, p.BitLen(), "group %d", i)
		require.Equal(t, 512, q.BitLen(), "group %d", i)
		pMinusOne := new(big.Int).Sub(p, bigOne)
		require.Zero(t, new(big.Int).Mod(pMinusOne, q).Sign(), "group %d: q must divide p-1", i)
	}
	// primality of one entry keeps the test fast
	require.NotNil(t, defaultGroup(t, len(defaultSchnorrGroups)-1))
}

func TestResolveStrengthDefault(t *testing.T) {
	params, err := ResolveStrength(t.Context(), StrengthDefault, NewTestReader(t, "resolve"))
	require.NoError(t, err)
	require.Equal(t, 2048, params.P.BitLen())
	require.Equal(t, 512, params.Q.BitLen())
	require.Zero(t, new(big.Int).Exp(params.G, params.Q, params.P).Cmp(bigOne))
	require.NotZero(t, params.G.Cmp(bigOne))

	_, err = ResolveStrength(t.Context(), StrengthCustom, nil)
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestSearchGroup(t *testing.T) {
	params, stats, err := searchGroup(t.Context(), NewTestReader(t, "search"), 1024, 160, true, NopLogger{})
	require.NoError(t, err)
	require.Equal(t, 1024, params.P.BitLen())
	require.Equal(t, 160, params.Q.BitLen())
	require.GreaterOrEqual(t, stats.candidates, 1)

	pMinusOne := new(big.Int).Sub(params.P, bigOne)
	require.Zero(t, new(big.Int).Mod(pMinusOne, params.Q).Sign())
	require.True(t, params.P.ProbablyPrime(millerRabinRounds))
	require.True(t, params.Q.ProbablyPrime(millerRabinRounds))
	require.Zero(t, new(big.Int).Exp(params.G, params.Q, params.P).Cmp(bigOne))
}

func TestSearchGroupHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, _, err := searchGroup(ctx, NewTestReader(t, "cancelled"), 4096, 1024, false, NopLogger{})
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, err, ErrInvalidParameter)

	ctx, cancel = context.WithTimeout(t.Context(), time.Millisecond)
	defer cancel()
	spec, err := NewKeyGenSpec(4096, 1024, false, false)
	require.NoError(t, err)
	_, err = NewKeyPairGenerator().GenerateMultiplicative(ctx, spec)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGenerateMultiplicative(t *testing.T) {
	generator := NewKeyPairGenerator(WithRandom(NewTestReader(t, "mult")))
	spec, err := NewStrengthSpec(StrengthDefault, true)
	require.NoError(t, err)

	pair, err := generator.GenerateMultiplicative(t.Context(), spec)
	require.NoError(t, err)

	params := pair.Public.Params().(*MultiplicativeParams)
	require.Same(t, pair.Public.Params(), pair.Private.Params(), "both halves share one parameter instance")

	x := pair.Private.Scalar()
	require.True(t, x.Sign() > 0 && x.Cmp(params.Q) < 0)
	require.Zero(t, new(big.Int).Exp(params.G, x, params.P).Cmp(pair.Public.Element()), "H = G^x")
	require.Nil(t, pair.Public.Point())
	require.True(t, pair.Private.Extended())
	require.Len(t, pair.Private.ExtKeyBytes(), ExtKeyBytesLength)
	require.NoError(t, ValidatePublicKey(pair.Public))
	require.Len(t, pair.Public.Bytes(), 256)
}

func TestGenerateCurve(t *testing.T) {
	generator := NewKeyPairGenerator(WithRandom(NewTestReader(t, "curve")))

	t.Run("CatalogBase", func(t *testing.T) {
		pair, err := generator.GenerateCurve(t.Context(), CurveKeyGenSpec{Family: FamilyBrainpool, CurveID: "brainpoolP256r1"})
		require.NoError(t, err)
		params := pair.Public.Params().(*CurveParams)
		require.Same(t, pair.Public.Params(), pair.Private.Params())
		require.True(t, pair.Public.Point().Equal(params.Base.ScalarMult(pair.Private.Scalar())), "H = x*G")
		require.False(t, pair.Private.Extended())
		require.Nil(t, pair.Private.ExtKeyBytes())
		require.Nil(t, pair.Public.Element())
	})

	t.Run("RandomBase", func(t *testing.T) {
		catalog, err := ResolveCurve(FamilySafeCurves, "M-383")
		require.NoError(t, err)
		pair, err := generator.GenerateCurve(t.Context(), CurveKeyGenSpec{Params: catalog, UseRandomBasePoint: true, Extended: true})
		require.NoError(t, err)
		params := pair.Public.Params().(*CurveParams)
		require.NotSame(t, catalog, params, "catalog entries are never modified")
		require.False(t, params.Base.Equal(catalog.Base))
		require.True(t, params.Base.ScalarMult(params.N).IsIdentity())
		require.True(t, pair.Public.Point().Equal(params.Base.ScalarMult(pair.Private.Scalar())))
		require.True(t, pair.Private.Extended())
	})

	t.Run("CustomCurveNeedsRandomBase", func(t *testing.T) {
		custom := customCurve(t)
		pair, err := generator.GenerateCurve(t.Context(), CurveKeyGenSpec{Params: custom})
		require.NoError(t, err)
		params := pair.Public.Params().(*CurveParams)
		require.NotNil(t, params.Base)
		require.Nil(t, custom.Base)
		require.Equal(t, FamilyCustom, params.Family)
	})

	t.Run("ExtendedOrderLimit", func(t *testing.T) {
		_, err := generator.GenerateCurve(t.Context(), CurveKeyGenSpec{Family: FamilyNIST, CurveID: "P-521", Extended: true})
		require.ErrorIs(t, err, ErrInvalidParameter)
	})
}

func TestGenerateForKeySize(t *testing.T) {
	generator := NewKeyPairGenerator(WithRandom(NewTestReader(t, "key-size")))

	pair, err := generator.GenerateForKeySize(t.Context(), SettingEllipticCurve, 320)
	require.NoError(t, err)
	require.Equal(t, "brainpoolP320r1", pair.Public.Params().(*CurveParams).Name())

	_, err = generator.GenerateForKeySize(t.Context(), SettingEllipticCurve, 255)
	require.ErrorIs(t, err, ErrInvalidParameter)

	_, err = generator.GenerateForKeySize(t.Context(), SettingMultiplicative, 512)
	require.ErrorIs(t, err, ErrInsufficientStrength)

	_, err = generator.GenerateForKeySize(t.Context(), "lattice", 1024)
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestGeneratorSettingRestriction(t *testing.T) {
	generator := NewKeyPairGenerator(withGeneratorSetting(SettingMultiplicative))
	require.Equal(t, SettingMultiplicative, generator.Setting())

	_, err := generator.GenerateCurve(t.Context(), CurveKeyGenSpec{Family: FamilySECG, CurveID: "secp256k1"})
	require.ErrorIs(t, err, ErrInvalidParameter)

	params, err := ResolveCurve(FamilySECG, "secp256k1")
	require.NoError(t, err)
	_, err = generator.Generate(params, false, false)
	require.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewKeyPairGenerator().Generate(nil, false, false)
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestRandomScalar(t *testing.T) {
	rnd := NewTestReader(t, "scalar")
	q := big.NewInt(7)
	for i := 0; i < 100; i++ {
		x, err := randomScalar(rnd, q)
		require.NoError(t, err)
		require.True(t, x.Sign() > 0 && x.Cmp(q) < 0)
	}

	bits, err := randomBits(rnd, 13)
	require.NoError(t, err)
	require.LessOrEqual(t, bits.BitLen(), 13)

	prime, err := randomPrime(rnd, 64)
	require.NoError(t, err)
	require.Equal(t, 64, prime.BitLen())
	require.True(t, prime.ProbablyPrime(20))
}
