package schnorr

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMultiplicativeParams(t *testing.T) {
	// p = 2q + 1 with q = 1019, g = 4 generates the order q subgroup
	p, q := big.NewInt(2039), big.NewInt(1019)
	params, err := NewMultiplicativeParams(p, q, big.NewInt(4))
	require.NoError(t, err)
	require.Equal(t, SettingMultiplicative, params.Setting())
	require.Zero(t, params.Modulus().Cmp(q))
	require.Equal(t, 2, params.ByteLength())

	p.SetInt64(1) // the parameters keep their own copies
	require.Equal(t, int64(2039), params.P.Int64())

	for name, tc := range map[string][3]int64{
		"composite q":       {2039, 1020, 4},
		"composite p":       {2041, 1019, 4},
		"q does not divide": {2027, 1019, 4},
		"generator one":     {2039, 1019, 1},
		"generator order":   {2039, 1019, 2038},
	} {
		_, err := NewMultiplicativeParams(big.NewInt(tc[0]), big.NewInt(tc[1]), big.NewInt(tc[2]))
		require.ErrorIs(t, err, ErrInvalidGroup, name)
	}
	_, err = NewMultiplicativeParams(nil, q, big.NewInt(4))
	require.ErrorIs(t, err, ErrInvalidGroup)

	other, err := NewMultiplicativeParams(big.NewInt(2039), big.NewInt(1019), big.NewInt(4))
	require.NoError(t, err)
	require.True(t, params.Equal(other))
	require.False(t, params.Equal(nil))
}

func TestNewCurveParams(t *testing.T) {
	custom := customCurve(t)
	require.Equal(t, FamilyCustom, custom.Family)
	require.Equal(t, "custom-160", custom.Name())
	require.Equal(t, SettingEllipticCurve, custom.Setting())

	_, err := NewCurveParams(custom.Curve, new(big.Int).Add(custom.N, bigOne), bigOne, nil)
	require.ErrorIs(t, err, ErrInvalidGroup)
	_, err = NewCurveParams(custom.Curve, custom.N, bigZero, nil)
	require.ErrorIs(t, err, ErrInvalidGroup)
	_, err = NewCurveParams(nil, custom.N, bigOne, nil)
	require.ErrorIs(t, err, ErrInvalidGroup)
	_, err = NewCurveParams(custom.Curve, custom.N, bigOne, custom.Curve.Identity())
	require.ErrorIs(t, err, ErrInvalidGroup)

	point, err := custom.Curve.RandomPoint(NewTestReader(t, "params"))
	require.NoError(t, err)
	// the curve has prime order, so any point but the identity is a base
	withBase, err := custom.WithBase(point)
	require.NoError(t, err)
	require.Nil(t, custom.Base)
	require.True(t, withBase.Base.Equal(point))
	require.True(t, withBase.FixedBase().Base().Equal(point))

	// a base of the wrong order is rejected
	m221 := resolveCurve(t, FamilySafeCurves, "M-221")
	twoTorsion, err := m221.Curve.NewPoint(bigZero, bigZero)
	require.NoError(t, err)
	_, err = m221.WithBase(twoTorsion)
	require.ErrorIs(t, err, ErrInvalidGroup)
}
