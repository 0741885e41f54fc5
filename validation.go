package schnorr

import (
	"fmt"
	"math/big"
)

// SecurityLevel represents the security level of group parameters
type SecurityLevel string

const (
	SecurityLevelLow      SecurityLevel = "low"
	SecurityLevelMedium   SecurityLevel = "medium"
	SecurityLevelHigh     SecurityLevel = "high"
	SecurityLevelVeryHigh SecurityLevel = "very_high"
)

var securityLevelRank = map[SecurityLevel]int{
	SecurityLevelLow:      0,
	SecurityLevelMedium:   1,
	SecurityLevelHigh:     2,
	SecurityLevelVeryHigh: 3,
}

// ValidationResult contains the result of parameter validation
type ValidationResult struct {
	Valid           bool          `json:"valid"`
	SecurityLevel   SecurityLevel `json:"security_level"`
	Warnings        []string      `json:"warnings,omitempty"`
	Errors          []string      `json:"errors,omitempty"`
	Recommendations []string      `json:"recommendations,omitempty"`
}

func newValidationResult() *ValidationResult {
	return &ValidationResult{
		Valid:           true,
		SecurityLevel:   SecurityLevelMedium,
		Warnings:        []string{},
		Errors:          []string{},
		Recommendations: []string{},
	}
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// merge folds other into r, keeping the lower security level
func (r *ValidationResult) merge(other *ValidationResult) {
	if !other.Valid {
		r.Valid = false
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Recommendations = append(r.Recommendations, other.Recommendations...)
	r.SecurityLevel = minSecurityLevel(r.SecurityLevel, other.SecurityLevel)
}

// SecurityLevelForOrder classifies a subgroup by the bit length of its order
func SecurityLevelForOrder(orderBits int) SecurityLevel {
	switch {
	case orderBits < 160:
		return SecurityLevelLow
	case orderBits < 256:
		return SecurityLevelMedium
	case orderBits < 512:
		return SecurityLevelHigh
	default:
		return SecurityLevelVeryHigh
	}
}

func minSecurityLevel(a, b SecurityLevel) SecurityLevel {
	if securityLevelRank[a] <= securityLevelRank[b] {
		return a
	}
	return b
}

// ValidatePublicKey checks that H lies in the signing subgroup: 1 < h < p and
// h^q = 1 for multiplicative keys, on the curve, not the identity and of
// order n for curve keys.
func ValidatePublicKey(pub *PublicKey) error {
	if pub == nil {
		return ErrInvalidKey.WithDetails("nil public key")
	}
	switch params := pub.params.(type) {
	case *MultiplicativeParams:
		if pub.h == nil || pub.h.Cmp(bigOne) <= 0 || pub.h.Cmp(params.P) >= 0 {
			return ErrInvalidKey.WithDetails("public element out of range")
		}
		if new(big.Int).Exp(pub.h, params.Q, params.P).Cmp(bigOne) != 0 {
			return ErrInvalidKey.WithDetails("public element is not in the order q subgroup")
		}
	case *CurveParams:
		if pub.point == nil || pub.point.IsIdentity() || !pub.point.IsOnCurve() {
			return ErrInvalidKey.WithDetails("public point is not a valid curve point")
		}
		if !pub.point.ScalarMult(params.N).IsIdentity() {
			return ErrInvalidKey.WithDetails("public point is not in the order n subgroup")
		}
	default:
		return ErrInvalidKey.WithDetails("unsupported group parameters %T", pub.params)
	}
	return nil
}
