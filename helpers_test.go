package schnorr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestReader returns a reproducible random source for label
func NewTestReader(t testing.TB, label string) *DeterministicReader {
	t.Helper()
	r, err := NewDeterministicReader([]byte("schnorr test seed"), label)
	require.NoError(t, err)
	return r
}

// defaultGroup builds one of the precomputed DEFAULT groups with a
// reproducible generator
func defaultGroup(t testing.TB, index int) *MultiplicativeParams {
	t.Helper()
	group := defaultSchnorrGroups[index]
	p, q := mustBig(group.p, 10), mustBig(group.q, 10)
	g, err := findGenerator(NewTestReader(t, "generator"), p, q)
	require.NoError(t, err)
	params, err := NewMultiplicativeParams(p, q, g)
	require.NoError(t, err)
	return params
}

// customCurve is the 160 bit Weierstrass curve y^2 = x^3 + 10x + b over
// 2^160 + 7, which has prime order and no published base point
func customCurve(t testing.TB) *CurveParams {
	t.Helper()
	p := mustBig("1461501637330902918203684832716283019655932542983", 10)
	b := mustBig("1343632762150092499701637438970764818528075565078", 10)
	order := mustBig("1461501637330902918203683518218126812711137002561", 10)

	curve, err := NewWeierstrassCurve("custom-160", p, bigTen, b)
	require.NoError(t, err)
	params, err := NewCurveParams(curve, order, bigOne, nil)
	require.NoError(t, err)
	return params
}

var bigTen = mustBig("10", 10)
