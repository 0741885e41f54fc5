package schnorr

import (
	"crypto/rand"
	"fmt"
	"time"
)

// AuditEventType represents the type of audit event
type AuditEventType string

const (
	// Key lifecycle events
	AuditEventKeyGeneration   AuditEventType = "key_generation"
	AuditEventParameterSearch AuditEventType = "parameter_search"

	// Signature events
	AuditEventSignatureCreated  AuditEventType = "signature_created"
	AuditEventSignatureVerified AuditEventType = "signature_verified"

	// Configuration events
	AuditEventConfigurationChange AuditEventType = "configuration_change"
	AuditEventInitialization      AuditEventType = "initialization"

	// Error events
	AuditEventValidationFailure AuditEventType = "validation_failure"
	AuditEventOperationFailure  AuditEventType = "operation_failure"
)

// AuditEventReason represents why an event occurred
type AuditEventReason string

const (
	ReasonCallerRequest   AuditEventReason = "caller_request"
	ReasonKeySize         AuditEventReason = "key_size"
	ReasonInitialization  AuditEventReason = "initialization"
	ReasonValidationError AuditEventReason = "validation_error"
	ReasonCryptoFailure   AuditEventReason = "crypto_failure"
)

// AuditEvent represents a single audit event in the schnorr library
type AuditEvent struct {
	// Event metadata
	EventID   string           `json:"event_id"`
	Timestamp time.Time        `json:"timestamp"`
	EventType AuditEventType   `json:"event_type"`
	Reason    AuditEventReason `json:"reason"`

	// Group information
	Setting   Setting `json:"setting,omitempty"`
	GroupName string  `json:"group_name,omitempty"`
	OrderBits int     `json:"order_bits,omitempty"`

	// Success/failure information
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	// Additional context
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// KeyGenerationEvent contains details about a generated key pair
type KeyGenerationEvent struct {
	AuditEvent

	Extended        bool          `json:"extended"`
	RandomBasePoint bool          `json:"random_base_point"`
	Duration        time.Duration `json:"duration"`
	// Candidates counts the p candidates tested by a parameter search
	Candidates int `json:"candidates,omitempty"`
	Restarts   int `json:"restarts,omitempty"`
}

// SignatureEvent contains details about a sign or verify operation
type SignatureEvent struct {
	AuditEvent

	NonceStrategy NonceStrategy   `json:"nonce_strategy"`
	PointStrategy PointStrategy   `json:"point_strategy"`
	Digest        DigestAlgorithm `json:"digest"`
	Duration      time.Duration   `json:"duration"`
	// Attempts counts the nonces drawn before e and y were non-zero
	Attempts int  `json:"attempts,omitempty"`
	Valid    bool `json:"valid"`
}

// ValidationFailureEvent contains details about validation failures
type ValidationFailureEvent struct {
	AuditEvent

	ValidationType string                 `json:"validation_type"` // "key_gen_spec", "curve_spec", "engine_config", "public_key"
	FailureReason  string                 `json:"failure_reason"`
	InputValues    map[string]interface{} `json:"input_values,omitempty"`
}

// AuditEventHandler defines the interface for handling audit events
// Applications implement this interface to record events according to their needs
type AuditEventHandler interface {
	// OnKeyGeneration is called after a key pair has been generated
	OnKeyGeneration(event *KeyGenerationEvent)

	// OnSignature is called after a signature has been created
	OnSignature(event *SignatureEvent)

	// OnVerification is called after a signature has been checked
	OnVerification(event *SignatureEvent)

	// OnValidationFailure is called when validation fails
	OnValidationFailure(event *ValidationFailureEvent)

	// OnConfigurationChange is called when an engine is (re)configured
	OnConfigurationChange(event *AuditEvent)

	// OnError is called for general error events
	OnError(event *AuditEvent)
}

// NullAuditHandler is a no-op implementation of AuditEventHandler
// Used when no audit handling is needed
type NullAuditHandler struct{}

func (n *NullAuditHandler) OnKeyGeneration(event *KeyGenerationEvent)         {}
func (n *NullAuditHandler) OnSignature(event *SignatureEvent)                 {}
func (n *NullAuditHandler) OnVerification(event *SignatureEvent)              {}
func (n *NullAuditHandler) OnValidationFailure(event *ValidationFailureEvent) {}
func (n *NullAuditHandler) OnConfigurationChange(event *AuditEvent)           {}
func (n *NullAuditHandler) OnError(event *AuditEvent)                         {}

// AuditEventBuilder helps construct audit events with proper defaults
type AuditEventBuilder struct {
	event *AuditEvent
}

// NewAuditEventBuilder creates a new audit event builder
func NewAuditEventBuilder(eventType AuditEventType, reason AuditEventReason) *AuditEventBuilder {
	return &AuditEventBuilder{
		event: &AuditEvent{
			EventID:   generateEventID(),
			Timestamp: time.Now(),
			EventType: eventType,
			Reason:    reason,
			Success:   true, // Default to success, can be overridden
			Metadata:  make(map[string]interface{}),
		},
	}
}

// WithGroup records the setting, name and order size of params
func (b *AuditEventBuilder) WithGroup(params GroupParameters) *AuditEventBuilder {
	if params == nil {
		return b
	}
	b.event.Setting = params.Setting()
	b.event.OrderBits = params.Modulus().BitLen()
	switch p := params.(type) {
	case *MultiplicativeParams:
		b.event.GroupName = fmt.Sprintf("schnorr-group-%d-%d", p.P.BitLen(), p.Q.BitLen())
	case *CurveParams:
		b.event.GroupName = p.Name()
	}
	return b
}

// WithError marks the event as failed and sets error information
func (b *AuditEventBuilder) WithError(err error) *AuditEventBuilder {
	b.event.Success = false
	if err != nil {
		b.event.Error = err.Error()
	}
	return b
}

// WithMetadata adds metadata to the event
func (b *AuditEventBuilder) WithMetadata(key string, value interface{}) *AuditEventBuilder {
	b.event.Metadata[key] = value
	return b
}

// Build returns the constructed audit event
func (b *AuditEventBuilder) Build() *AuditEvent {
	return b.event
}

// BuildKeyGeneration returns a KeyGenerationEvent
func (b *AuditEventBuilder) BuildKeyGeneration(extended, randomBasePoint bool, duration time.Duration) *KeyGenerationEvent {
	return &KeyGenerationEvent{
		AuditEvent:      *b.event,
		Extended:        extended,
		RandomBasePoint: randomBasePoint,
		Duration:        duration,
	}
}

// BuildSignature returns a SignatureEvent
func (b *AuditEventBuilder) BuildSignature(cfg EngineConfig, duration time.Duration, valid bool) *SignatureEvent {
	return &SignatureEvent{
		AuditEvent:    *b.event,
		NonceStrategy: cfg.NonceStrategy,
		PointStrategy: cfg.PointStrategy,
		Digest:        cfg.Digest,
		Duration:      duration,
		Valid:         valid,
	}
}

// BuildValidationFailure returns a ValidationFailureEvent
func (b *AuditEventBuilder) BuildValidationFailure(validationType, failureReason string, inputValues map[string]interface{}) *ValidationFailureEvent {
	return &ValidationFailureEvent{
		AuditEvent:     *b.event,
		ValidationType: validationType,
		FailureReason:  failureReason,
		InputValues:    inputValues,
	}
}

// generateEventID generates a unique event ID
// Uses a combination of timestamp and random bytes to ensure uniqueness
func generateEventID() string {
	timestamp := time.Now().Format("20060102150405.000000")

	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return fmt.Sprintf("%s.%d", timestamp, time.Now().UnixNano()%10000)
	}

	return fmt.Sprintf("%s.%x", timestamp, randomBytes)
}
