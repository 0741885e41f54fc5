package schnorr

import (
	"fmt"
)

// EngineConfig selects the algorithms an Engine runs with
type EngineConfig struct {
	Digest        DigestAlgorithm `json:"digest" mapstructure:"digest"`
	NonceStrategy NonceStrategy   `json:"nonce_strategy" mapstructure:"nonce_strategy"`
	PointStrategy PointStrategy   `json:"point_strategy" mapstructure:"point_strategy"`
}

// DefaultEngineConfig is SHA-256, AlmostUniform nonces and generic point
// multiplication
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Digest:        DigestSHA256,
		NonceStrategy: AlmostUniform,
		PointStrategy: UnknownPoint,
	}
}

// ConfigurationValidator provides validation for key generation requests and
// engine configurations
type ConfigurationValidator struct {
	// Minimum bit lengths for custom multiplicative groups
	minGroupBits int
	minOrderBits int

	// Largest order usable with extended keys
	maxExtendedOrderBits int

	// Digests narrower than this many bits draw a warning
	minDigestBits int
}

// NewDefaultConfigurationValidator creates a validator with secure defaults
func NewDefaultConfigurationValidator() *ConfigurationValidator {
	return &ConfigurationValidator{
		minGroupBits:         MinGroupBits,
		minOrderBits:         MinOrderBits,
		maxExtendedOrderBits: MaxExtendedOrderBits,
		minDigestBits:        256,
	}
}

// ValidateKeyGenSpec validates a multiplicative key generation request
func (cv *ConfigurationValidator) ValidateKeyGenSpec(spec KeyGenSpec) *ValidationResult {
	result := newValidationResult()

	l, t := spec.L, spec.T
	if spec.Strength != StrengthCustom {
		var err error
		if l, t, err = spec.Strength.BitLengths(); err != nil {
			result.fail("unknown strength %d", int(spec.Strength))
			result.SecurityLevel = SecurityLevelLow
			return result
		}
	}

	if l < cv.minGroupBits {
		result.fail("bitlen(p) = %d is below the minimum of %d", l, cv.minGroupBits)
	}
	if t < cv.minOrderBits {
		result.fail("bitlen(q) = %d is below the minimum of %d", t, cv.minOrderBits)
	}
	if l <= t {
		result.fail("bitlen(p) = %d must exceed bitlen(q) = %d", l, t)
	}
	if spec.Extended && t > cv.maxExtendedOrderBits {
		result.fail("extended keys need bitlen(q) <= %d, got %d", cv.maxExtendedOrderBits, t)
		result.Recommendations = append(result.Recommendations, "use a random nonce strategy or a smaller subgroup")
	}
	if !result.Valid {
		result.SecurityLevel = SecurityLevelLow
		return result
	}

	result.SecurityLevel = SecurityLevelForOrder(t)
	if l < 2048 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("bitlen(p) = %d offers less than 112 bit security", l))
		result.SecurityLevel = minSecurityLevel(result.SecurityLevel, SecurityLevelMedium)
	}
	if spec.Strength == StrengthCustom {
		result.Recommendations = append(result.Recommendations, "a custom group search can take minutes for large bit lengths; consider a context deadline")
	}
	return result
}

// ValidateCurveKeyGenSpec validates an elliptic curve key generation request
func (cv *ConfigurationValidator) ValidateCurveKeyGenSpec(spec CurveKeyGenSpec) *ValidationResult {
	result := newValidationResult()

	params := spec.Params
	if params == nil {
		var err error
		if params, err = ResolveCurve(spec.Family, spec.CurveID); err != nil {
			result.fail("%v", err)
			result.SecurityLevel = SecurityLevelLow
			return result
		}
	}
	return cv.validateCurveParams(params, spec.UseRandomBasePoint, spec.Extended, result)
}

func (cv *ConfigurationValidator) validateCurveParams(params *CurveParams, randomBase, extended bool, result *ValidationResult) *ValidationResult {
	bits := params.N.BitLen()
	result.SecurityLevel = SecurityLevelForOrder(bits)

	if extended && bits > cv.maxExtendedOrderBits {
		result.fail("extended keys need an order of at most %d bits, got %d", cv.maxExtendedOrderBits, bits)
	}
	if params.Base == nil && !randomBase {
		result.Warnings = append(result.Warnings, "curve has no base point; a random one will be drawn")
	}
	if params.Cofactor.Cmp(bigOne) != 0 {
		result.Recommendations = append(result.Recommendations,
			fmt.Sprintf("cofactor %s: random base points are multiplied by it", params.Cofactor))
	}
	if bits < 224 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%d bit order offers less than 112 bit security", bits))
	}
	if !result.Valid {
		result.SecurityLevel = SecurityLevelLow
	}
	return result
}

// ValidateEngineConfig checks that every algorithm of cfg is known
func (cv *ConfigurationValidator) ValidateEngineConfig(cfg EngineConfig) *ValidationResult {
	result := newValidationResult()
	// the level is bounded by the key, not by the algorithms
	result.SecurityLevel = SecurityLevelVeryHigh

	if d, err := NewDigest(cfg.Digest); err != nil {
		result.fail("unknown message digest %q", cfg.Digest)
	} else if d.Size()*8 < cv.minDigestBits {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s is shorter than %d bits; challenges are expanded with HKDF", cfg.Digest, cv.minDigestBits))
	}
	if _, ok := nonceStrategyNames[cfg.NonceStrategy]; !ok {
		result.fail("unknown nonce strategy %d", int(cfg.NonceStrategy))
	}
	if _, ok := pointStrategyNames[cfg.PointStrategy]; !ok {
		result.fail("unknown point multiplication strategy %d", int(cfg.PointStrategy))
	}
	if result.Valid && cfg.NonceStrategy.Family() == NonceFamilyDeterministic {
		result.Recommendations = append(result.Recommendations, "deterministic nonces need extended keys")
	}
	if !result.Valid {
		result.SecurityLevel = SecurityLevelLow
	}
	return result
}

// ValidateKeyPair checks that both halves share parameters, that H matches x
// and that H passes ValidatePublicKey
func (cv *ConfigurationValidator) ValidateKeyPair(pair *KeyPair) *ValidationResult {
	result := newValidationResult()
	if pair == nil || pair.Public == nil || pair.Private == nil {
		result.fail("key pair is incomplete")
		result.SecurityLevel = SecurityLevelLow
		return result
	}
	if pair.Public.params != pair.Private.params {
		result.fail("public and private key do not share one parameter instance")
	}
	if err := ValidatePublicKey(pair.Public); err != nil {
		result.fail("%v", err)
	}
	if result.Valid && !pair.Private.Public().Equal(pair.Public) {
		result.fail("public key does not match the private scalar")
	}
	if !result.Valid {
		result.SecurityLevel = SecurityLevelLow
		return result
	}
	result.SecurityLevel = SecurityLevelForOrder(pair.Public.params.Modulus().BitLen())
	if params, ok := pair.Public.params.(*MultiplicativeParams); ok && params.P.BitLen() < 2048 {
		result.SecurityLevel = minSecurityLevel(result.SecurityLevel, SecurityLevelMedium)
	}
	return result
}

// ValidateCompleteConfiguration validates a key pair together with the
// engine configuration that will use it
func (cv *ConfigurationValidator) ValidateCompleteConfiguration(pair *KeyPair, cfg EngineConfig) *ValidationResult {
	result := newValidationResult()
	result.SecurityLevel = SecurityLevelVeryHigh

	result.merge(cv.ValidateKeyPair(pair))
	result.merge(cv.ValidateEngineConfig(cfg))

	if pair != nil && pair.Private != nil && cfg.NonceStrategy.Family() == NonceFamilyDeterministic && !pair.Private.Extended() {
		result.fail("%s nonces need an extended key", cfg.NonceStrategy)
	}
	if !result.Valid {
		result.SecurityLevel = SecurityLevelLow
	}
	return result
}
