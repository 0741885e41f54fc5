package schnorr

import (
	"math/big"
	"sort"
	"strings"
	"sync"

	"github.com/ProtonMail/go-crypto/brainpool"
)

// CurveFamily names a catalog of elliptic curves
type CurveFamily string

const (
	FamilyNIST       CurveFamily = "NIST"
	FamilyBrainpool  CurveFamily = "BRAINPOOL"
	FamilySafeCurves CurveFamily = "SAFECURVES"
	FamilySECG       CurveFamily = "SECG"
	FamilyCustom     CurveFamily = "CUSTOM"
)

// ParseCurveFamily maps a case-insensitive family name to a CurveFamily
func ParseCurveFamily(name string) (CurveFamily, error) {
	family := CurveFamily(strings.ToUpper(name))
	if _, ok := curveCatalog()[family]; !ok {
		return "", ErrUnknownIdentifier.WithDetails("curve family %q", name)
	}
	return family, nil
}

type catalogEntry struct {
	id    string
	build func() (*CurveParams, error)
}

var curveCatalog = sync.OnceValue(func() map[CurveFamily]map[string]catalogEntry {
	catalog := map[CurveFamily]map[string]catalogEntry{
		FamilyNIST:       {},
		FamilyBrainpool:  {},
		FamilySafeCurves: {},
		FamilySECG:       {},
	}
	add := func(family CurveFamily, id string, build func() (*CurveParams, error)) {
		catalog[family][id] = catalogEntry{id: id, build: sync.OnceValues(build)}
	}

	for _, c := range nistCurves {
		add(FamilyNIST, c.id, func() (*CurveParams, error) {
			curve, err := nistBackend(c.id, mustBig(c.p, 10), mustBig(c.b, 16))
			if err != nil {
				return nil, err
			}
			base, err := curve.NewPoint(mustBig(c.gx, 16), mustBig(c.gy, 16))
			if err != nil {
				return nil, ErrInvalidGroup.WithDetails("curve %s: base point", c.id).WithCause(err)
			}
			return catalogParams(FamilyNIST, curve, mustBig(c.order, 10), bigOne, base)
		})
	}

	for _, c := range brainpoolCurves {
		add(FamilyBrainpool, c.id, func() (*CurveParams, error) {
			curve, err := NewWeierstrassCurve(c.id, mustBig(c.p, 16), mustBig(c.a, 16), mustBig(c.b, 16))
			if err != nil {
				return nil, err
			}
			base, err := brainpoolBasePoint(c.id, curve)
			if err != nil {
				return nil, err
			}
			return catalogParams(FamilyBrainpool, curve, mustBig(c.order, 16), bigOne, base)
		})
	}

	for _, c := range safeCurves {
		add(FamilySafeCurves, c.id, func() (*CurveParams, error) {
			curve, err := NewMontgomeryCurve(c.id, c.p(), big.NewInt(c.a), bigOne)
			if err != nil {
				return nil, err
			}
			base, err := curve.NewPoint(big.NewInt(c.gx), mustBig(c.gy, 10))
			if err != nil {
				return nil, ErrInvalidGroup.WithDetails("curve %s: base point", c.id).WithCause(err)
			}
			return catalogParams(FamilySafeCurves, curve, mustBig(c.order, 10), big.NewInt(8), base)
		})
	}
	add(FamilySafeCurves, "Ed25519", func() (*CurveParams, error) {
		curve := NewEd25519Curve()
		return catalogParams(FamilySafeCurves, curve, curve.Order(), big.NewInt(8), curve.Generator())
	})

	add(FamilySECG, "secp256k1", func() (*CurveParams, error) {
		curve := NewSecp256k1Curve()
		return catalogParams(FamilySECG, curve, curve.Order(), bigOne, curve.Generator())
	})

	return catalog
})

// nistBackend prefers circl's group and falls back to the generic
// implementation for the curves circl does not ship
func nistBackend(id string, p, b *big.Int) (Curve, error) {
	if _, ok := nistGroups[id]; ok {
		return NewNISTCurve(id)
	}
	return NewWeierstrassCurve(id, p, big.NewInt(-3), b)
}

func catalogParams(family CurveFamily, curve Curve, order, cofactor *big.Int, base Point) (*CurveParams, error) {
	params, err := NewCurveParams(curve, order, cofactor, base)
	if err != nil {
		return nil, err
	}
	params.Family = family
	params.ID = curve.Name()
	return params, nil
}

// ResolveCurve looks up a catalog curve. The returned parameters are shared
// and must not be modified.
func ResolveCurve(family CurveFamily, id string) (*CurveParams, error) {
	entries, ok := curveCatalog()[family]
	if !ok {
		return nil, ErrUnknownIdentifier.WithDetails("curve family %q", family)
	}
	entry, ok := entries[id]
	if !ok {
		return nil, ErrUnknownIdentifier.WithDetails("curve %q in family %s", id, family)
	}
	return entry.build()
}

// CurveIDs lists the curve identifiers of a family in sorted order
func CurveIDs(family CurveFamily) ([]string, error) {
	entries, ok := curveCatalog()[family]
	if !ok {
		return nil, ErrUnknownIdentifier.WithDetails("curve family %q", family)
	}
	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Families lists the catalog families
func Families() []CurveFamily {
	return []CurveFamily{FamilyNIST, FamilyBrainpool, FamilySafeCurves, FamilySECG}
}

// brainpoolBasePoint returns the RFC 5639 generator for the 256, 384 and 512
// bit curves. The remaining sizes get a base point derived from the smallest
// x coordinate >= 1 on the curve, taking the even root. Brainpool curves have
// cofactor 1, so every such point generates the full group.
func brainpoolBasePoint(id string, curve *WeierstrassCurve) (Point, error) {
	switch id {
	case "brainpoolP256r1":
		return pointFromParams(curve, brainpool.P256r1().Params().Gx, brainpool.P256r1().Params().Gy)
	case "brainpoolP256t1":
		return pointFromParams(curve, brainpool.P256t1().Params().Gx, brainpool.P256t1().Params().Gy)
	case "brainpoolP384r1":
		return pointFromParams(curve, brainpool.P384r1().Params().Gx, brainpool.P384r1().Params().Gy)
	case "brainpoolP384t1":
		return pointFromParams(curve, brainpool.P384t1().Params().Gx, brainpool.P384t1().Params().Gy)
	case "brainpoolP512r1":
		return pointFromParams(curve, brainpool.P512r1().Params().Gx, brainpool.P512r1().Params().Gy)
	case "brainpoolP512t1":
		return pointFromParams(curve, brainpool.P512t1().Params().Gx, brainpool.P512t1().Params().Gy)
	}
	return deriveBasePoint(curve)
}

func pointFromParams(curve Curve, x, y *big.Int) (Point, error) {
	point, err := curve.NewPoint(x, y)
	if err != nil {
		return nil, ErrInvalidGroup.WithDetails("curve %s: base point", curve.Name()).WithCause(err)
	}
	return point, nil
}

func deriveBasePoint(curve *WeierstrassCurve) (Point, error) {
	p := curve.Field()
	for x := big.NewInt(1); x.Cmp(p) < 0; x.Add(x, bigOne) {
		y := new(big.Int).ModSqrt(curve.rhs(x), p)
		if y == nil || y.Sign() == 0 {
			continue
		}
		if y.Bit(0) == 1 {
			y.Sub(p, y)
		}
		return curve.NewPoint(new(big.Int).Set(x), y)
	}
	return nil, ErrInvalidGroup.WithDetails("curve %s: no base point", curve.Name())
}

func mustBig(s string, base int) *big.Int {
	n, ok := new(big.Int).SetString(s, base)
	if !ok {
		panic("schnorr: malformed catalog constant " + s)
	}
	return n
}
