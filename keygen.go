package schnorr

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"
)

// Strength selects a multiplicative Schnorr group size
type Strength int

const (
	// StrengthMinimal is a 1024 bit p with a 160 bit q
	StrengthMinimal Strength = iota
	// StrengthDefault is a 2048 bit p with a 512 bit q
	StrengthDefault
	// StrengthStrong is a 4096 bit p with a 1024 bit q
	StrengthStrong
	// StrengthCustom searches a fresh group of caller chosen size
	StrengthCustom
)

var strengthNames = map[Strength]string{
	StrengthMinimal: "MINIMAL",
	StrengthDefault: "DEFAULT",
	StrengthStrong:  "STRONG",
	StrengthCustom:  "CUSTOM",
}

func (s Strength) String() string {
	if name, ok := strengthNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strength(%d)", int(s))
}

// ParseStrength matches a tier name case-insensitively
func ParseStrength(name string) (Strength, error) {
	for s, n := range strengthNames {
		if strings.EqualFold(n, name) {
			return s, nil
		}
	}
	return 0, ErrUnknownIdentifier.WithDetails("strength %q", name)
}

// BitLengths returns (bitlen(p), bitlen(q)) of a fixed tier
func (s Strength) BitLengths() (l, t int, err error) {
	switch s {
	case StrengthMinimal:
		return 1024, 160, nil
	case StrengthDefault:
		return 2048, 512, nil
	case StrengthStrong:
		return 4096, 1024, nil
	}
	return 0, 0, ErrInvalidParameter.WithDetails("strength %s has no fixed bit lengths", s)
}

const (
	// MinGroupBits and MinOrderBits are the smallest admissible bitlen(p) and bitlen(q)
	MinGroupBits = 1024
	MinOrderBits = 160

	// MaxExtendedOrderBits bounds bitlen(q) for extended keys, whose
	// deterministic nonces carry only the entropy of the digest and ext key
	MaxExtendedOrderBits = 512
)

// KeyGenSpec describes a multiplicative key pair request
type KeyGenSpec struct {
	Strength Strength
	// L and T are bitlen(p) and bitlen(q); used by StrengthCustom only
	L, T     int
	Extended bool
	// Exact rejects p candidates whose bit length is not exactly L
	Exact bool
}

// NewKeyGenSpec creates a CUSTOM spec searching a group with bitlen(p) = l
// and bitlen(q) = t
func NewKeyGenSpec(l, t int, extended, exact bool) (KeyGenSpec, error) {
	spec := KeyGenSpec{Strength: StrengthCustom, L: l, T: t, Extended: extended, Exact: exact}
	if err := spec.validate(); err != nil {
		return KeyGenSpec{}, err
	}
	return spec, nil
}

// NewStrengthSpec creates a spec resolving a fixed tier
func NewStrengthSpec(strength Strength, extended bool) (KeyGenSpec, error) {
	l, t, err := strength.BitLengths()
	if err != nil {
		return KeyGenSpec{}, err
	}
	spec := KeyGenSpec{Strength: strength, L: l, T: t, Extended: extended}
	if err := spec.validate(); err != nil {
		return KeyGenSpec{}, err
	}
	return spec, nil
}

func (s KeyGenSpec) validate() error {
	if s.Strength == StrengthCustom {
		if s.L < MinGroupBits || s.T < MinOrderBits {
			return ErrInsufficientStrength.WithDetails("bitlen(p) = %d, bitlen(q) = %d, need at least %d and %d",
				s.L, s.T, MinGroupBits, MinOrderBits)
		}
		if s.L <= s.T {
			return ErrInvalidParameter.WithDetails("bitlen(p) = %d must exceed bitlen(q) = %d", s.L, s.T)
		}
	} else if _, ok := strengthNames[s.Strength]; !ok {
		return ErrUnknownIdentifier.WithDetails("strength %d", int(s.Strength))
	}
	if s.Extended && s.T > MaxExtendedOrderBits {
		return ErrInvalidParameter.WithDetails("extended keys need bitlen(q) <= %d, got %d", MaxExtendedOrderBits, s.T)
	}
	return nil
}

// CurveKeyGenSpec describes an elliptic curve key pair request. Params, if
// set, takes precedence over Family and CurveID.
type CurveKeyGenSpec struct {
	Family             CurveFamily
	CurveID            string
	Params             *CurveParams
	UseRandomBasePoint bool
	Extended           bool
}

// ResolveStrength returns the group of a fixed tier. DEFAULT picks one of the
// precomputed groups at random; tiers without a table are searched. Either
// way the generator is drawn afresh.
func ResolveStrength(ctx context.Context, strength Strength, rnd io.Reader) (*MultiplicativeParams, error) {
	l, t, err := strength.BitLengths()
	if err != nil {
		return nil, err
	}
	if rnd == nil {
		rnd = rand.Reader
	}
	if strength != StrengthDefault {
		params, _, err := searchGroup(ctx, rnd, l, t, false, NopLogger{})
		return params, err
	}

	index, err := rand.Int(rnd, big.NewInt(int64(len(defaultSchnorrGroups))))
	if err != nil {
		return nil, ErrRandomnessGeneration.WithCause(err)
	}
	group := defaultSchnorrGroups[index.Int64()]
	p, q := mustBig(group.p, 10), mustBig(group.q, 10)
	g, err := findGenerator(rnd, p, q)
	if err != nil {
		return nil, err
	}
	return NewMultiplicativeParams(p, q, g)
}

// searchStats reports how much work a parameter search took
type searchStats struct {
	candidates int
	restarts   int
}

// searchGroup finds a Schnorr group with bitlen(q) = t and p = q*r + 1 prime.
// A q is abandoned with probability 1/1000 per rejected candidate so a q
// without nearby primes p cannot stall the search.
func searchGroup(ctx context.Context, rnd io.Reader, l, t int, exact bool, logger Logger) (*MultiplicativeParams, searchStats, error) {
	var stats searchStats
	restartBound := big.NewInt(int64(l / 1000))
	lBig := big.NewInt(int64(l))

	for {
		if err := ctx.Err(); err != nil {
			return nil, stats, ErrInvalidParameter.WithDetails("parameter search interrupted").WithCause(err)
		}
		q, err := randomPrime(rnd, t)
		if err != nil {
			return nil, stats, err
		}
		logger.Debug(ctx, "schnorr group search: new q", "bits", t, "restarts", stats.restarts)

		for {
			if err := ctx.Err(); err != nil {
				return nil, stats, ErrInvalidParameter.WithDetails("parameter search interrupted").WithCause(err)
			}
			r, err := randomBits(rnd, l-t)
			if err != nil {
				return nil, stats, err
			}
			// p = q*r + 1 is even unless r is
			r.SetBit(r, 0, 0)
			p := new(big.Int).Mul(q, r)
			p.Add(p, bigOne)
			stats.candidates++

			if (!exact || p.BitLen() == l) && p.ProbablyPrime(millerRabinRounds) {
				g, err := findGenerator(rnd, p, q)
				if err != nil {
					return nil, stats, err
				}
				logger.Debug(ctx, "schnorr group search: found",
					"p_bits", p.BitLen(), "q_bits", q.BitLen(), "candidates", stats.candidates)
				params, err := NewMultiplicativeParams(p, q, g)
				return params, stats, err
			}

			coin, err := rand.Int(rnd, lBig)
			if err != nil {
				return nil, stats, ErrRandomnessGeneration.WithCause(err)
			}
			if coin.Cmp(restartBound) < 0 {
				stats.restarts++
				break
			}
		}
	}
}

// findGenerator draws g = r^((p-1)/q) mod p until g != 1
func findGenerator(rnd io.Reader, p, q *big.Int) (*big.Int, error) {
	exponent := new(big.Int).Sub(p, bigOne)
	exponent.Div(exponent, q)
	for {
		r, err := randomBits(rnd, 2*p.BitLen())
		if err != nil {
			return nil, err
		}
		r.Mod(r, p)
		if r.Sign() == 0 {
			continue
		}
		g := r.Exp(r, exponent, p)
		if g.Cmp(bigOne) != 0 {
			return g, nil
		}
	}
}

// randomBits returns a uniform integer in [0, 2^bits)
func randomBits(rnd io.Reader, bits int) (*big.Int, error) {
	buf := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(rnd, buf); err != nil {
		return nil, ErrRandomnessGeneration.WithCause(err)
	}
	if excess := uint(len(buf)*8 - bits); excess > 0 {
		buf[0] &= byte(0xff >> excess)
	}
	return new(big.Int).SetBytes(buf), nil
}

// randomPrime returns a probable prime of exactly bits bits
func randomPrime(rnd io.Reader, bits int) (*big.Int, error) {
	for {
		candidate, err := randomBits(rnd, bits)
		if err != nil {
			return nil, err
		}
		candidate.SetBit(candidate, bits-1, 1)
		candidate.SetBit(candidate, 0, 1)
		if candidate.ProbablyPrime(millerRabinRounds) {
			return candidate, nil
		}
	}
}

// randomScalar draws x from 2*bitlen(q) bits reduced mod q, rejecting zero
func randomScalar(rnd io.Reader, q *big.Int) (*big.Int, error) {
	for {
		x, err := randomBits(rnd, 2*q.BitLen())
		if err != nil {
			return nil, err
		}
		x.Mod(x, q)
		if x.Sign() != 0 {
			return x, nil
		}
	}
}

// KeyPairGenerator produces key pairs for both settings
type KeyPairGenerator struct {
	rand   io.Reader
	audit  AuditEventHandler
	logger Logger

	// setting, if set, restricts the generator to one algebraic setting
	setting Setting
}

// KeyPairGeneratorOption configures a KeyPairGenerator
type KeyPairGeneratorOption func(*KeyPairGenerator)

// WithRandom replaces crypto/rand.Reader as the randomness source
func WithRandom(rnd io.Reader) KeyPairGeneratorOption {
	return func(g *KeyPairGenerator) { g.rand = rnd }
}

// WithAuditHandler sets the handler receiving key generation events
func WithAuditHandler(handler AuditEventHandler) KeyPairGeneratorOption {
	return func(g *KeyPairGenerator) { g.audit = handler }
}

// WithLogger sets the logger
func WithLogger(logger Logger) KeyPairGeneratorOption {
	return func(g *KeyPairGenerator) { g.logger = logger }
}

func withGeneratorSetting(setting Setting) KeyPairGeneratorOption {
	return func(g *KeyPairGenerator) { g.setting = setting }
}

// NewKeyPairGenerator creates a generator reading crypto/rand by default
func NewKeyPairGenerator(opts ...KeyPairGeneratorOption) *KeyPairGenerator {
	g := &KeyPairGenerator{
		rand:   rand.Reader,
		audit:  &NullAuditHandler{},
		logger: NopLogger{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateMultiplicative resolves or searches the group described by spec
// and generates a key pair in it
func (g *KeyPairGenerator) GenerateMultiplicative(ctx context.Context, spec KeyGenSpec) (*KeyPair, error) {
	start := time.Now()
	if err := g.checkSetting(SettingMultiplicative); err != nil {
		return nil, err
	}
	if err := spec.validate(); err != nil {
		g.validationFailure("key_gen_spec", err, map[string]interface{}{"l": spec.L, "t": spec.T, "extended": spec.Extended})
		return nil, err
	}

	var (
		params *MultiplicativeParams
		stats  searchStats
		err    error
	)
	if spec.Strength == StrengthCustom {
		params, stats, err = searchGroup(ctx, g.rand, spec.L, spec.T, spec.Exact, g.logger)
	} else {
		params, err = ResolveStrength(ctx, spec.Strength, g.rand)
	}
	if err != nil {
		g.failure(AuditEventParameterSearch, nil, err)
		return nil, err
	}

	pair, err := g.Generate(params, false, spec.Extended)
	if err != nil {
		return nil, err
	}
	event := NewAuditEventBuilder(AuditEventKeyGeneration, ReasonCallerRequest).
		WithGroup(params).
		WithMetadata("strength", spec.Strength.String()).
		BuildKeyGeneration(spec.Extended, false, time.Since(start))
	event.Candidates = stats.candidates
	event.Restarts = stats.restarts
	g.audit.OnKeyGeneration(event)
	return pair, nil
}

// GenerateCurve generates a key pair on a catalog or caller supplied curve
func (g *KeyPairGenerator) GenerateCurve(ctx context.Context, spec CurveKeyGenSpec) (*KeyPair, error) {
	start := time.Now()
	if err := g.checkSetting(SettingEllipticCurve); err != nil {
		return nil, err
	}
	params := spec.Params
	if params == nil {
		var err error
		params, err = ResolveCurve(spec.Family, spec.CurveID)
		if err != nil {
			g.validationFailure("curve_spec", err, map[string]interface{}{"family": spec.Family, "curve": spec.CurveID})
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pair, err := g.Generate(params, spec.UseRandomBasePoint, spec.Extended)
	if err != nil {
		return nil, err
	}
	g.audit.OnKeyGeneration(NewAuditEventBuilder(AuditEventKeyGeneration, ReasonCallerRequest).
		WithGroup(pair.Public.Params()).
		BuildKeyGeneration(spec.Extended, spec.UseRandomBasePoint || params.Base == nil, time.Since(start)))
	return pair, nil
}

// GenerateForKeySize maps a key size to parameters: multiplicative sizes k
// search a CUSTOM group (k, k/4), curve sizes n select brainpoolP{n}r1
func (g *KeyPairGenerator) GenerateForKeySize(ctx context.Context, setting Setting, keySize int) (*KeyPair, error) {
	switch setting {
	case SettingMultiplicative:
		spec, err := NewKeyGenSpec(keySize, keySize/4, false, false)
		if err != nil {
			return nil, err
		}
		return g.GenerateMultiplicative(ctx, spec)
	case SettingEllipticCurve:
		id := fmt.Sprintf("brainpoolP%dr1", keySize)
		if _, err := ResolveCurve(FamilyBrainpool, id); err != nil {
			return nil, ErrInvalidParameter.WithDetails("unsupported key size %d", keySize)
		}
		return g.GenerateCurve(ctx, CurveKeyGenSpec{Family: FamilyBrainpool, CurveID: id})
	}
	return nil, ErrInvalidParameter.WithDetails("unknown setting %q", setting)
}

// Generate creates a key pair in already resolved parameters. For curves a
// random base point replaces the catalog one when useRandomBasePoint is set
// or the parameters have none.
func (g *KeyPairGenerator) Generate(params GroupParameters, useRandomBasePoint, extended bool) (*KeyPair, error) {
	if params == nil {
		return nil, ErrInvalidParameter.WithDetails("nil group parameters")
	}
	if err := g.checkSetting(params.Setting()); err != nil {
		return nil, err
	}
	if extended && params.Modulus().BitLen() > MaxExtendedOrderBits {
		return nil, ErrInvalidParameter.WithDetails("extended keys need bitlen(q) <= %d, got %d",
			MaxExtendedOrderBits, params.Modulus().BitLen())
	}

	switch p := params.(type) {
	case *MultiplicativeParams:
		x, err := randomScalar(g.rand, p.Q)
		if err != nil {
			return nil, err
		}
		return g.pair(p, x, new(big.Int).Exp(p.G, x, p.P), nil, extended)

	case *CurveParams:
		if useRandomBasePoint || p.Base == nil {
			base, err := g.randomBasePoint(p)
			if err != nil {
				return nil, err
			}
			if p, err = p.WithBase(base); err != nil {
				return nil, err
			}
		}
		x, err := randomScalar(g.rand, p.N)
		if err != nil {
			return nil, err
		}
		return g.pair(p, x, nil, p.FixedBase().Mul(x), extended)
	}
	return nil, ErrInvalidParameter.WithDetails("unsupported group parameters %T", params)
}

// Setting returns the setting the generator is restricted to, empty if none
func (g *KeyPairGenerator) Setting() Setting { return g.setting }

func (g *KeyPairGenerator) checkSetting(setting Setting) error {
	if g.setting != "" && g.setting != setting {
		return ErrInvalidParameter.WithDetails("%s generator cannot produce %s keys", g.setting, setting)
	}
	return nil
}

func (g *KeyPairGenerator) pair(params GroupParameters, x, h *big.Int, point Point, extended bool) (*KeyPair, error) {
	priv := &PrivateKey{params: params, x: x}
	if extended {
		priv.extKey = make([]byte, ExtKeyBytesLength)
		if _, err := io.ReadFull(g.rand, priv.extKey); err != nil {
			return nil, ErrRandomnessGeneration.WithCause(err)
		}
	}
	g.logger.Debug(context.Background(), "key pair generated",
		"setting", params.Setting(), "order_bits", params.Modulus().BitLen(),
		"extended", extended, Redacted("x"))
	return &KeyPair{
		Public:  &PublicKey{params: params, h: h, point: point},
		Private: priv,
	}, nil
}

// randomBasePoint samples curve points, clears the cofactor and keeps the
// first result of exact order N
func (g *KeyPairGenerator) randomBasePoint(params *CurveParams) (Point, error) {
	for {
		candidate, err := params.Curve.RandomPoint(g.rand)
		if err != nil {
			return nil, err
		}
		point := candidate.ScalarMult(params.Cofactor)
		if point.IsIdentity() {
			continue
		}
		if point.ScalarMult(params.N).IsIdentity() {
			return point, nil
		}
	}
}

func (g *KeyPairGenerator) validationFailure(kind string, err error, inputs map[string]interface{}) {
	g.audit.OnValidationFailure(NewAuditEventBuilder(AuditEventValidationFailure, ReasonValidationError).
		WithError(err).
		BuildValidationFailure(kind, err.Error(), inputs))
}

func (g *KeyPairGenerator) failure(kind AuditEventType, params GroupParameters, err error) {
	g.audit.OnError(NewAuditEventBuilder(kind, ReasonCryptoFailure).WithGroup(params).WithError(err).Build())
}
