package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/canopy-network/canopy/lib/schnorr"
)

var (
	registerOnce sync.Once

	keyGenerations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "schnorr",
			Subsystem: "keygen",
			Name:      "key_pairs_total",
			Help:      "Count of generated key pairs by setting and result",
		},
		[]string{"setting", "result"},
	)

	keyGenerationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "schnorr",
			Subsystem: "keygen",
			Name:      "duration_seconds",
			Help:      "Time spent resolving parameters and generating a key pair",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30, 120},
		},
		[]string{"setting"},
	)

	searchCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "schnorr",
			Subsystem: "keygen",
			Name:      "search_candidates",
			Help:      "Number of p candidates tested per Schnorr group search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	signatures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "schnorr",
			Subsystem: "engine",
			Name:      "signatures_total",
			Help:      "Count of sign and verify operations classified by result",
		},
		[]string{"operation", "setting", "result"},
	)

	signatureSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "schnorr",
			Subsystem: "engine",
			Name:      "duration_seconds",
			Help:      "Time spent signing or verifying one message",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"operation", "setting"},
	)

	failures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "schnorr",
			Name:      "failures_total",
			Help:      "Count of validation and operation failures",
		},
		[]string{"kind"},
	)
)

func ensureRegistered() {
	registerOnce.Do(func() {
		prometheus.MustRegister(keyGenerations, keyGenerationSeconds, searchCandidates,
			signatures, signatureSeconds, failures)
	})
}

func KeyGenerationCounter() *prometheus.CounterVec {
	ensureRegistered()
	return keyGenerations
}

func KeyGenerationObserver() *prometheus.HistogramVec {
	ensureRegistered()
	return keyGenerationSeconds
}

func SearchCandidatesObserver() prometheus.Observer {
	ensureRegistered()
	return searchCandidates
}

func SignaturesCounter() *prometheus.CounterVec {
	ensureRegistered()
	return signatures
}

func SignatureObserver() *prometheus.HistogramVec {
	ensureRegistered()
	return signatureSeconds
}

func FailuresCounter() *prometheus.CounterVec {
	ensureRegistered()
	return failures
}

// AuditHandler turns audit events into prometheus samples. Next, if set,
// receives every event afterwards.
type AuditHandler struct {
	Next schnorr.AuditEventHandler
}

var _ schnorr.AuditEventHandler = (*AuditHandler)(nil)

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}

func (h *AuditHandler) OnKeyGeneration(event *schnorr.KeyGenerationEvent) {
	setting := string(event.Setting)
	KeyGenerationCounter().WithLabelValues(setting, result(event.Success)).Inc()
	KeyGenerationObserver().WithLabelValues(setting).Observe(event.Duration.Seconds())
	if event.Candidates > 0 {
		SearchCandidatesObserver().Observe(float64(event.Candidates))
	}
	if h.Next != nil {
		h.Next.OnKeyGeneration(event)
	}
}

func (h *AuditHandler) OnSignature(event *schnorr.SignatureEvent) {
	h.observeSignature("sign", event, event.Success)
	if h.Next != nil {
		h.Next.OnSignature(event)
	}
}

func (h *AuditHandler) OnVerification(event *schnorr.SignatureEvent) {
	h.observeSignature("verify", event, event.Valid)
	if h.Next != nil {
		h.Next.OnVerification(event)
	}
}

func (h *AuditHandler) observeSignature(operation string, event *schnorr.SignatureEvent, ok bool) {
	setting := string(event.Setting)
	SignaturesCounter().WithLabelValues(operation, setting, result(ok)).Inc()
	SignatureObserver().WithLabelValues(operation, setting).Observe(event.Duration.Seconds())
}

func (h *AuditHandler) OnValidationFailure(event *schnorr.ValidationFailureEvent) {
	FailuresCounter().WithLabelValues("validation").Inc()
	if h.Next != nil {
		h.Next.OnValidationFailure(event)
	}
}

func (h *AuditHandler) OnConfigurationChange(event *schnorr.AuditEvent) {
	if h.Next != nil {
		h.Next.OnConfigurationChange(event)
	}
}

func (h *AuditHandler) OnError(event *schnorr.AuditEvent) {
	FailuresCounter().WithLabelValues(string(event.EventType)).Inc()
	if h.Next != nil {
		h.Next.OnError(event)
	}
}
