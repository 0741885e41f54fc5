package schnorr

import (
	"errors"
	"fmt"
)

// ErrorCategory represents the category of a Schnorr error
type ErrorCategory string

const (
	ErrorCategoryValidation    ErrorCategory = "validation"
	ErrorCategoryConfiguration ErrorCategory = "configuration"
	ErrorCategoryKeyGeneration ErrorCategory = "key_generation"
	ErrorCategorySigning       ErrorCategory = "signing"
	ErrorCategoryVerification  ErrorCategory = "verification"
	ErrorCategoryNonce         ErrorCategory = "nonce"
	ErrorCategoryCryptographic ErrorCategory = "cryptographic"
	ErrorCategoryInternal      ErrorCategory = "internal"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	ErrorSeverityLow      ErrorSeverity = "low"      // Non-critical, operation can continue
	ErrorSeverityMedium   ErrorSeverity = "medium"   // Caller error, fix the input and call again
	ErrorSeverityHigh     ErrorSeverity = "high"     // Critical, operation should stop
	ErrorSeverityCritical ErrorSeverity = "critical" // System-level failure
)

// SchnorrError represents a structured error in the schnorr library
type SchnorrError struct {
	Category    ErrorCategory          `json:"category"`
	Severity    ErrorSeverity          `json:"severity"`
	Code        string                 `json:"code"`
	Message     string                 `json:"message"`
	Details     string                 `json:"details,omitempty"`
	Cause       error                  `json:"-"` // Original error, not serialized
	Context     map[string]interface{} `json:"context,omitempty"`
	Recoverable bool                   `json:"recoverable"`
}

// Error implements the error interface
func (e *SchnorrError) Error() string {
	msg := fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *SchnorrError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a SchnorrError carrying the same code, so
// errors.Is(err, ErrNotInitialized) holds for every derived copy.
func (e *SchnorrError) Is(target error) bool {
	var other *SchnorrError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

func (e *SchnorrError) clone() *SchnorrError {
	newError := &SchnorrError{
		Category:    e.Category,
		Severity:    e.Severity,
		Code:        e.Code,
		Message:     e.Message,
		Details:     e.Details,
		Recoverable: e.Recoverable,
		Cause:       e.Cause,
		Context:     make(map[string]interface{}, len(e.Context)),
	}
	for k, v := range e.Context {
		newError.Context[k] = v
	}
	return newError
}

// WithContext adds context information to the error
func (e *SchnorrError) WithContext(key string, value interface{}) *SchnorrError {
	// Copy so the package level sentinels stay untouched
	newError := e.clone()
	newError.Context[key] = value
	return newError
}

// WithCause sets the underlying cause of the error
func (e *SchnorrError) WithCause(cause error) *SchnorrError {
	newError := e.clone()
	newError.Cause = cause
	return newError
}

// WithDetails returns a copy carrying a formatted detail message
func (e *SchnorrError) WithDetails(format string, args ...interface{}) *SchnorrError {
	newError := e.clone()
	newError.Details = fmt.Sprintf(format, args...)
	return newError
}

// IsRecoverable returns whether the error is recoverable
func (e *SchnorrError) IsRecoverable() bool {
	return e.Recoverable
}

// NewSchnorrError creates a new Schnorr error
func NewSchnorrError(category ErrorCategory, severity ErrorSeverity, code, message string) *SchnorrError {
	return &SchnorrError{
		Category:    category,
		Severity:    severity,
		Code:        code,
		Message:     message,
		Context:     make(map[string]interface{}),
		Recoverable: severity != ErrorSeverityCritical,
	}
}

// Parameter Errors
var (
	ErrUnknownIdentifier = NewSchnorrError(
		ErrorCategoryConfiguration, ErrorSeverityMedium, "UNKNOWN_IDENTIFIER",
		"unknown curve, family or strength identifier")

	ErrInsufficientStrength = NewSchnorrError(
		ErrorCategoryValidation, ErrorSeverityMedium, "INSUFFICIENT_STRENGTH",
		"insufficient strength")

	ErrInvalidParameter = NewSchnorrError(
		ErrorCategoryValidation, ErrorSeverityMedium, "INVALID_PARAMETER",
		"invalid parameter")

	ErrInvalidGroup = NewSchnorrError(
		ErrorCategoryValidation, ErrorSeverityHigh, "INVALID_GROUP",
		"group parameters violate their invariants")
)

// Engine Errors
var (
	ErrNotInitialized = NewSchnorrError(
		ErrorCategorySigning, ErrorSeverityMedium, "NOT_INITIALIZED",
		"signature engine hasn't been initialized for this operation")

	ErrInvalidKey = NewSchnorrError(
		ErrorCategorySigning, ErrorSeverityMedium, "INVALID_KEY",
		"key is invalid for this engine")

	ErrInvalidSignature = NewSchnorrError(
		ErrorCategoryVerification, ErrorSeverityLow, "INVALID_SIGNATURE",
		"signature is malformed")
)

// Cryptographic Errors
var (
	ErrNonce = NewSchnorrError(
		ErrorCategoryNonce, ErrorSeverityHigh, "NONCE_ERROR",
		"nonce generation failed")

	ErrRandomnessGeneration = NewSchnorrError(
		ErrorCategoryCryptographic, ErrorSeverityCritical, "RANDOMNESS_GENERATION_FAILED",
		"failed to generate secure randomness")

	ErrHashComputation = NewSchnorrError(
		ErrorCategoryCryptographic, ErrorSeverityHigh, "HASH_COMPUTATION_FAILED",
		"hash computation failed")
)

// Error helper functions

// WrapError wraps an existing error with Schnorr error context
func WrapError(err error, category ErrorCategory, severity ErrorSeverity, code, message string) *SchnorrError {
	return NewSchnorrError(category, severity, code, message).WithCause(err)
}

// IsErrorCategory checks if an error belongs to a specific category
func IsErrorCategory(err error, category ErrorCategory) bool {
	var schnorrErr *SchnorrError
	if errors.As(err, &schnorrErr) {
		return schnorrErr.Category == category
	}
	return false
}

// IsRecoverableError checks if an error is recoverable
func IsRecoverableError(err error) bool {
	var schnorrErr *SchnorrError
	if errors.As(err, &schnorrErr) {
		return schnorrErr.IsRecoverable()
	}
	return true // Foreign errors are assumed recoverable
}

// GetErrorContext extracts context from a Schnorr error
func GetErrorContext(err error) map[string]interface{} {
	var schnorrErr *SchnorrError
	if errors.As(err, &schnorrErr) {
		return schnorrErr.Context
	}
	return nil
}
