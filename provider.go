package schnorr

import (
	"sort"
	"sync"
)

// ProviderName identifies the provider
const ProviderName = "schnorr"

// Algorithm names registered by the Provider
const (
	AlgorithmSchnorr             = "SchnorrSignature"
	AlgorithmECSchnorr           = "ECSchnorrSignature"
	AlgorithmSchnorrWithSHA256   = "SchnorrSignatureWithSHA256"
	AlgorithmECSchnorrWithSHA256 = "ECSchnorrSignatureWithSHA256"
)

// Provider property keys
const (
	PropertyMessageDigest       = "messageDigest"
	PropertyPointMultiplication = "pointMultiplication"
	PropertyNonceStrategy       = "nonceStrategy"
)

type service struct {
	setting Setting
	// digest pins the message digest regardless of the provider property
	digest  DigestAlgorithm
}

var services = map[string]service{
	AlgorithmSchnorr:             {setting: SettingMultiplicative},
	AlgorithmECSchnorr:           {setting: SettingEllipticCurve},
	AlgorithmSchnorrWithSHA256:   {setting: SettingMultiplicative, digest: DigestSHA256},
	AlgorithmECSchnorrWithSHA256: {setting: SettingEllipticCurve, digest: DigestSHA256},
}

// Provider maps algorithm names to engines and key pair generators. Its
// properties supply the defaults every engine it creates starts from. It is
// safe for concurrent use.
type Provider struct {
	mu         sync.RWMutex
	properties map[string]string
}

// NewProvider creates a provider with the default properties
func NewProvider() *Provider {
	return &Provider{
		properties: map[string]string{
			PropertyMessageDigest:       string(DigestSHA256),
			PropertyPointMultiplication: UnknownPoint.String(),
			PropertyNonceStrategy:       AlmostUniform.String(),
		},
	}
}

// Name returns the provider name
func (p *Provider) Name() string { return ProviderName }

// Algorithms lists the registered algorithm names
func (p *Provider) Algorithms() []string {
	names := make([]string, 0, len(services))
	for name := range services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Property returns a property value, empty if unknown
func (p *Provider) Property(key string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.properties[key]
}

// SetProperty changes a property after checking that value parses
func (p *Provider) SetProperty(key, value string) error {
	var err error
	switch key {
	case PropertyMessageDigest:
		_, err = ParseDigestAlgorithm(value)
	case PropertyPointMultiplication:
		_, err = ParsePointStrategy(value)
	case PropertyNonceStrategy:
		_, err = ParseNonceStrategy(value)
	default:
		return ErrUnknownIdentifier.WithDetails("provider property %q", key)
	}
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.properties[key] = value
	p.mu.Unlock()
	return nil
}

// EngineConfig returns the configuration the properties describe
func (p *Provider) EngineConfig() (EngineConfig, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	digest, err := ParseDigestAlgorithm(p.properties[PropertyMessageDigest])
	if err != nil {
		return EngineConfig{}, err
	}
	point, err := ParsePointStrategy(p.properties[PropertyPointMultiplication])
	if err != nil {
		return EngineConfig{}, err
	}
	nonce, err := ParseNonceStrategy(p.properties[PropertyNonceStrategy])
	if err != nil {
		return EngineConfig{}, err
	}
	return EngineConfig{Digest: digest, NonceStrategy: nonce, PointStrategy: point}, nil
}

// NewSignature creates an engine for the named algorithm. opts are applied
// after the provider properties; the WithSHA256 aliases keep SHA-256 either way.
func (p *Provider) NewSignature(name string, opts ...EngineOption) (*Engine, error) {
	svc, ok := services[name]
	if !ok {
		return nil, ErrUnknownIdentifier.WithDetails("signature algorithm %q", name)
	}
	cfg, err := p.EngineConfig()
	if err != nil {
		return nil, err
	}
	all := make([]EngineOption, 0, len(opts)+3)
	all = append(all, WithEngineConfig(cfg))
	all = append(all, opts...)
	all = append(all, withSetting(svc.setting))
	if svc.digest != "" {
		all = append(all, WithDigest(svc.digest))
	}
	return NewEngine(all...)
}

// NewKeyPairGenerator creates a key pair generator restricted to the setting
// of the named algorithm
func (p *Provider) NewKeyPairGenerator(name string, opts ...KeyPairGeneratorOption) (*KeyPairGenerator, error) {
	svc, ok := services[name]
	if !ok {
		return nil, ErrUnknownIdentifier.WithDetails("key pair generator algorithm %q", name)
	}
	all := append(append([]KeyPairGeneratorOption(nil), opts...), withGeneratorSetting(svc.setting))
	return NewKeyPairGenerator(all...), nil
}
