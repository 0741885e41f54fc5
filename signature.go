package schnorr

import (
	"context"
	"crypto/rand"
	"errors"
	"io"
	"math/big"
	"strings"
	"time"
)

// PointStrategy selects how the signer multiplies the base point. It has no
// effect on the signature bytes.
type PointStrategy int

const (
	// UnknownPoint uses generic variable base multiplication
	UnknownPoint PointStrategy = iota
	// FixedPoint uses the precomputed table of the base point
	FixedPoint
)

var pointStrategyNames = map[PointStrategy]string{
	UnknownPoint: "UNKNOWN_POINT",
	FixedPoint:   "FIXED_POINT",
}

func (s PointStrategy) String() string {
	if name, ok := pointStrategyNames[s]; ok {
		return name
	}
	return "PointStrategy(unknown)"
}

// ParsePointStrategy matches a strategy name case-insensitively
func ParsePointStrategy(name string) (PointStrategy, error) {
	for s, n := range pointStrategyNames {
		if strings.EqualFold(n, name) {
			return s, nil
		}
	}
	return 0, ErrUnknownIdentifier.WithDetails("point multiplication strategy %q", name)
}

// MarshalText implements encoding.TextMarshaler
func (s PointStrategy) MarshalText() ([]byte, error) {
	if _, ok := pointStrategyNames[s]; !ok {
		return nil, ErrUnknownIdentifier.WithDetails("point multiplication strategy %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *PointStrategy) UnmarshalText(text []byte) error {
	parsed, err := ParsePointStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// EngineState is the lifecycle state of an Engine
type EngineState int

const (
	Uninitialized EngineState = iota
	SigningReady
	VerifyingReady
)

func (s EngineState) String() string {
	switch s {
	case SigningReady:
		return "SigningReady"
	case VerifyingReady:
		return "VerifyingReady"
	default:
		return "Uninitialized"
	}
}

// Engine signs or verifies one message at a time. It is driven through
// InitSign or InitVerify, any number of Update calls and then Sign or Verify,
// after which it is ready for the next message under the same key. An Engine
// is not safe for concurrent use.
type Engine struct {
	cfg    EngineConfig
	rand   io.Reader
	audit  AuditEventHandler
	logger Logger

	// setting, if set, restricts the engine to keys of one algebraic setting
	setting Setting

	state  EngineState
	digest *Digest
	priv   *PrivateKey
	pub    *PublicKey
	nonce  *NonceGenerator

	// sessionRand feeds the nonce generator until the next InitSign
	sessionRand io.Reader
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithEngineConfig replaces the whole configuration
func WithEngineConfig(cfg EngineConfig) EngineOption {
	return func(e *Engine) { e.cfg = cfg }
}

// WithNonceStrategy selects the nonce strategy
func WithNonceStrategy(strategy NonceStrategy) EngineOption {
	return func(e *Engine) { e.cfg.NonceStrategy = strategy }
}

// WithPointStrategy selects the base point multiplication strategy
func WithPointStrategy(strategy PointStrategy) EngineOption {
	return func(e *Engine) { e.cfg.PointStrategy = strategy }
}

// WithDigest selects the message digest
func WithDigest(alg DigestAlgorithm) EngineOption {
	return func(e *Engine) { e.cfg.Digest = alg }
}

// WithEngineRandom replaces crypto/rand.Reader for the random nonce strategies
func WithEngineRandom(rnd io.Reader) EngineOption {
	return func(e *Engine) { e.rand = rnd }
}

// WithEngineAuditHandler sets the handler receiving signature events
func WithEngineAuditHandler(handler AuditEventHandler) EngineOption {
	return func(e *Engine) { e.audit = handler }
}

// WithEngineLogger sets the logger
func WithEngineLogger(logger Logger) EngineOption {
	return func(e *Engine) { e.logger = logger }
}

// withSetting restricts the engine to keys of one setting
func withSetting(setting Setting) EngineOption {
	return func(e *Engine) { e.setting = setting }
}

// NewEngine creates an uninitialized engine, DefaultEngineConfig unless
// overridden
func NewEngine(opts ...EngineOption) (*Engine, error) {
	e := &Engine{
		cfg:    DefaultEngineConfig(),
		rand:   rand.Reader,
		audit:  &NullAuditHandler{},
		logger: NopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if result := NewDefaultConfigurationValidator().ValidateEngineConfig(e.cfg); !result.Valid {
		err := ErrInvalidParameter.WithDetails("%s", strings.Join(result.Errors, "; "))
		e.audit.OnValidationFailure(NewAuditEventBuilder(AuditEventValidationFailure, ReasonValidationError).
			WithError(err).
			BuildValidationFailure("engine_config", err.Details, map[string]interface{}{
				"digest": e.cfg.Digest, "nonce": e.cfg.NonceStrategy.String(), "point": e.cfg.PointStrategy.String(),
			}))
		return nil, err
	}
	return e, nil
}

// Config returns the engine configuration
func (e *Engine) Config() EngineConfig { return e.cfg }

// State returns the lifecycle state
func (e *Engine) State() EngineState { return e.state }

// InitSign prepares the engine to sign with priv using the engine's random source
func (e *Engine) InitSign(priv *PrivateKey) error {
	return e.InitSignWithRandom(priv, e.rand)
}

// InitSignWithRandom prepares the engine to sign with priv, binding the nonce
// generator to rnd for this session only. A later InitSign goes back to the
// engine's random source.
func (e *Engine) InitSignWithRandom(priv *PrivateKey, rnd io.Reader) error {
	if priv == nil || priv.params == nil || priv.x == nil || priv.x.Sign() == 0 {
		return ErrInvalidKey.WithDetails("signing needs a private key")
	}
	if err := e.checkSetting(priv.params); err != nil {
		return err
	}
	if curve, ok := priv.params.(*CurveParams); ok && curve.Base == nil {
		return ErrInvalidKey.WithDetails("curve parameters carry no base point")
	}
	digest, nonce, err := e.bindSigner(priv, rnd)
	if err != nil {
		return err
	}
	e.state = SigningReady
	e.digest = digest
	e.nonce = nonce
	e.priv = priv
	e.pub = nil
	e.sessionRand = rnd
	e.configured(priv.params, "sign")
	return nil
}

// bindSigner creates an empty digest and a nonce generator bound to priv
func (e *Engine) bindSigner(priv *PrivateKey, rnd io.Reader) (*Digest, *NonceGenerator, error) {
	digest, err := NewDigest(e.cfg.Digest)
	if err != nil {
		return nil, nil, err
	}
	nonce, err := NewNonceGenerator(e.cfg.NonceStrategy)
	if err != nil {
		return nil, nil, err
	}
	if err := nonce.Reset(rnd, priv.params.Modulus(), priv.extKey); err != nil {
		if nonce.Family() == NonceFamilyDeterministic {
			return nil, nil, ErrInvalidKey.WithDetails("key unusable with %s nonces", e.cfg.NonceStrategy).WithCause(err)
		}
		return nil, nil, err
	}
	return digest, nonce, nil
}

// InitVerify prepares the engine to verify signatures of pub
func (e *Engine) InitVerify(pub *PublicKey) error {
	if pub == nil || pub.params == nil || (pub.h == nil && pub.point == nil) {
		return ErrInvalidKey.WithDetails("verification needs a public key")
	}
	if err := e.checkSetting(pub.params); err != nil {
		return err
	}
	digest, err := NewDigest(e.cfg.Digest)
	if err != nil {
		return err
	}
	e.state = VerifyingReady
	e.digest = digest
	e.pub = pub
	e.priv = nil
	e.nonce = nil
	e.configured(pub.params, "verify")
	return nil
}

func (e *Engine) checkSetting(params GroupParameters) error {
	if e.setting != "" && params.Setting() != e.setting {
		return ErrInvalidKey.WithDetails("%s engine cannot use %s keys", e.setting, params.Setting())
	}
	return nil
}

func (e *Engine) configured(params GroupParameters, mode string) {
	e.logger.Debug(context.Background(), "engine initialized",
		"mode", mode, "setting", params.Setting(), "digest", e.cfg.Digest, "nonce", e.cfg.NonceStrategy.String())
	e.audit.OnConfigurationChange(NewAuditEventBuilder(AuditEventInitialization, ReasonInitialization).
		WithGroup(params).
		WithMetadata("mode", mode).
		Build())
}

// Update feeds message bytes
func (e *Engine) Update(p []byte) error {
	if e.state == Uninitialized {
		return ErrNotInitialized
	}
	e.digest.Write(p)
	if e.state == SigningReady {
		e.nonce.Update(p)
	}
	return nil
}

// UpdateByte feeds one message byte
func (e *Engine) UpdateByte(b byte) error {
	if e.state == Uninitialized {
		return ErrNotInitialized
	}
	e.digest.Write([]byte{b})
	if e.state == SigningReady {
		e.nonce.UpdateByte(b)
	}
	return nil
}

// Write implements io.Writer so messages can be streamed into the engine
func (e *Engine) Write(p []byte) (int, error) {
	if err := e.Update(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Sign signs the message fed so far and resets the engine for the next
// message. On error the running digest is kept.
func (e *Engine) Sign() ([]byte, error) {
	if e.state != SigningReady {
		return nil, ErrNotInitialized.WithDetails("engine is %s", e.state)
	}
	start := time.Now()
	sig, attempts, err := e.sign()
	if err != nil {
		// CopyDigestState may have advanced the generator
		if resetErr := e.nonce.Reset(e.sessionRand, e.priv.params.Modulus(), e.priv.extKey); resetErr != nil {
			e.state = Uninitialized
		}
		e.audit.OnError(NewAuditEventBuilder(AuditEventOperationFailure, ReasonCryptoFailure).
			WithGroup(e.priv.params).WithError(err).Build())
		return nil, err
	}

	event := NewAuditEventBuilder(AuditEventSignatureCreated, ReasonCallerRequest).
		WithGroup(e.priv.params).
		BuildSignature(e.cfg, time.Since(start), true)
	event.Attempts = attempts
	e.audit.OnSignature(event)

	digest, nonce, err := e.bindSigner(e.priv, e.sessionRand)
	if err != nil {
		e.state = Uninitialized
		return nil, err
	}
	e.digest, e.nonce = digest, nonce
	return sig, nil
}

func (e *Engine) sign() ([]byte, int, error) {
	params := e.priv.params
	q := params.Modulus()
	x := e.priv.x

	if err := e.nonce.CopyDigestState(e.digest); err != nil {
		return nil, 0, err
	}
	for attempts := 1; ; attempts++ {
		r, err := e.nonce.Nonce()
		if err != nil {
			return nil, attempts, err
		}
		if r.Sign() == 0 {
			continue
		}
		ch, err := e.challenge(e.commitment(params, r))
		if err != nil {
			return nil, attempts, err
		}
		if ch.Sign() == 0 {
			continue
		}

		y := new(big.Int).Mul(ch, x)
		switch params.(type) {
		case *MultiplicativeParams:
			y.Sub(r, y)
		case *CurveParams:
			y.Add(y, r)
		}
		y.Mod(y, q)
		r.SetInt64(0)
		if y.Sign() == 0 {
			continue
		}

		var sig []byte
		switch params.(type) {
		case *MultiplicativeParams:
			sig, err = EncodeFormatA(ch, y, q)
		case *CurveParams:
			sig, err = EncodeFormatB(ch, y)
		}
		return sig, attempts, err
	}
}

// commitment returns the canonical bytes of G^r, or r*G on a curve
func (e *Engine) commitment(params GroupParameters, r *big.Int) []byte {
	switch p := params.(type) {
	case *MultiplicativeParams:
		s := new(big.Int).Exp(p.G, r, p.P)
		return s.FillBytes(make([]byte, p.ByteLength()))
	case *CurveParams:
		var s Point
		if e.cfg.PointStrategy == FixedPoint {
			s = p.FixedBase().Mul(r)
		} else {
			s = p.Base.ScalarMult(r)
		}
		return CanonicalBytes(s, p.FieldByteLength())
	}
	return nil
}

// challenge hashes a snapshot of the running digest followed by the
// commitment and reduces it mod q
func (e *Engine) challenge(commitment []byte) (*big.Int, error) {
	snapshot, err := e.digest.Clone()
	if err != nil {
		return nil, err
	}
	snapshot.Write(commitment)
	return challenge(snapshot.Sum(), e.modulus())
}

func (e *Engine) modulus() *big.Int {
	if e.priv != nil {
		return e.priv.params.Modulus()
	}
	return e.pub.params.Modulus()
}

// Verify checks sig against the message fed so far and resets the engine for
// the next message, whatever the outcome. Malformed signatures verify false.
func (e *Engine) Verify(sig []byte) (bool, error) {
	if e.state != VerifyingReady {
		return false, ErrNotInitialized.WithDetails("engine is %s", e.state)
	}
	start := time.Now()
	valid, err := e.verify(sig)
	e.digest.Reset()

	if err != nil {
		e.audit.OnError(NewAuditEventBuilder(AuditEventOperationFailure, ReasonCryptoFailure).
			WithGroup(e.pub.params).WithError(err).Build())
		return false, err
	}
	e.audit.OnVerification(NewAuditEventBuilder(AuditEventSignatureVerified, ReasonCallerRequest).
		WithGroup(e.pub.params).
		BuildSignature(e.cfg, time.Since(start), valid))
	return valid, nil
}

func (e *Engine) verify(sig []byte) (bool, error) {
	q := e.pub.params.Modulus()

	var ch, y *big.Int
	var err error
	switch e.pub.params.(type) {
	case *MultiplicativeParams:
		ch, y, err = DecodeFormatA(sig, q)
	case *CurveParams:
		ch, y, err = DecodeFormatB(sig)
	}
	if err != nil {
		if errors.Is(err, ErrInvalidSignature) {
			e.logger.Debug(context.Background(), "malformed signature", "error", err)
			return false, nil
		}
		return false, err
	}
	if ch.Cmp(q) >= 0 || y.Sign() <= 0 || y.Cmp(q) >= 0 {
		return false, nil
	}

	var commitment []byte
	switch p := e.pub.params.(type) {
	case *MultiplicativeParams:
		s := new(big.Int).Exp(p.G, y, p.P)
		s.Mul(s, new(big.Int).Exp(e.pub.h, ch, p.P))
		s.Mod(s, p.P)
		commitment = s.FillBytes(make([]byte, p.ByteLength()))
	case *CurveParams:
		var gy Point
		if e.cfg.PointStrategy == FixedPoint {
			gy = p.FixedBase().Mul(y)
		} else {
			gy = p.Base.ScalarMult(y)
		}
		negE := new(big.Int).Neg(ch)
		negE.Mod(negE, q)
		s := gy.Add(e.pub.point.ScalarMult(negE))
		commitment = CanonicalBytes(s, p.FieldByteLength())
	}

	e.digest.Write(commitment)
	expected, err := challenge(e.digest.Sum(), q)
	if err != nil {
		return false, err
	}
	return SecureCompare(expected.Bytes(), ch.Bytes()), nil
}
