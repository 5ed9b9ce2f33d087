package jws

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/cybergodev/jws/internal/security"
	"github.com/cybergodev/jws/internal/signing"
)

const pemArmorPrefix = "-----BEGIN"

// Processor signs and verifies tokens with one configured key.
//
// Unlike Verify, a Processor always pins verification to its own algorithm,
// so a token whose header names the other algorithm is rejected with an
// AlgorithmMismatchError instead of being checked with the wrong primitive.
// A Processor is safe for concurrent use.
type Processor struct {
	secret       *security.SecureBytes
	privateKey   *rsa.PrivateKey
	publicKey    *rsa.PublicKey
	algorithm    SigningMethod
	keyID        string
	typ          string
	maxTokenSize int

	mu     sync.RWMutex
	closed bool
}

// New creates a Processor for key with optional configuration.
// config[0].Key and KeyFile are ignored; key is always used.
func New(key string, config ...Config) (*Processor, error) {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	} else {
		cfg = DefaultConfig()
	}

	cfg.Key = key
	cfg.KeyFile = ""

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	if key == "" {
		return nil, &ValidationError{Field: "key", Message: "must not be empty", Err: ErrInvalidKey}
	}

	algorithm := cfg.Algorithm
	if algorithm == "" {
		algorithm = processorAlgorithmForKey(key)
	}

	processor := &Processor{
		algorithm:    algorithm,
		keyID:        cfg.KeyID,
		typ:          cfg.Type,
		maxTokenSize: cfg.MaxTokenSize,
	}

	switch algorithm {
	case SigningMethodHS256:
		processor.secret = security.NewSecureBytesFromString(key)
	case SigningMethodRS256:
		if err := processor.loadRSAKey(key); err != nil {
			return nil, err
		}
	}

	runtime.SetFinalizer(processor, (*Processor).finalize)
	return processor, nil
}

// NewFromConfig creates a Processor whose key comes from cfg.Key or cfg.KeyFile
func NewFromConfig(cfg Config) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	key, err := cfg.resolveKey()
	if err != nil {
		return nil, err
	}
	return New(key, cfg)
}

// processorAlgorithmForKey treats any PEM-armored key as RSA material,
// so a public key PEM never becomes an HMAC secret.
// PEM text meant as an HMAC secret needs Config.Algorithm set to HS256.
func processorAlgorithmForKey(key string) SigningMethod {
	if strings.HasPrefix(strings.TrimSpace(key), pemArmorPrefix) {
		return SigningMethodRS256
	}
	return SigningMethodHS256
}

func (p *Processor) loadRSAKey(key string) error {
	if priv, err := signing.ParsePrivateKey([]byte(key)); err == nil {
		p.privateKey = priv
		p.publicKey = &priv.PublicKey
		return nil
	}

	pub, err := signing.ParsePublicKey([]byte(key))
	if err != nil {
		return &CryptoError{Op: "parse key", Err: err}
	}
	p.publicKey = pub
	return nil
}

// Algorithm returns the algorithm this processor signs and verifies with
func (p *Processor) Algorithm() SigningMethod {
	return p.algorithm
}

// CanSign reports whether the processor holds signing key material
func (p *Processor) CanSign() bool {
	return p.algorithm == SigningMethodHS256 || p.privateKey != nil
}

// Sign creates a token for payload
func (p *Processor) Sign(payload any) (string, error) {
	return p.SignWithContext(context.Background(), payload)
}

// SignWithContext creates a token for payload with context support
func (p *Processor) SignWithContext(ctx context.Context, payload any) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if err := p.checkClosed(); err != nil {
		return "", err
	}

	key, err := p.signingKey()
	if err != nil {
		return "", err
	}

	return signToken(payload, key, p.algorithm, p.typ, p.keyID)
}

// Verify reports whether token carries a valid signature under this processor's key
func (p *Processor) Verify(token string) (bool, error) {
	return p.VerifyWithContext(context.Background(), token)
}

// VerifyWithContext is Verify with context support
func (p *Processor) VerifyWithContext(ctx context.Context, token string) (bool, error) {
	_, valid, err := p.verify(ctx, token)
	return valid, err
}

// VerifyPayload verifies token and, only when the signature is valid,
// unmarshals its JSON payload into dest.
func (p *Processor) VerifyPayload(token string, dest any) (bool, error) {
	tok, valid, err := p.verify(context.Background(), token)
	if err != nil || !valid {
		return false, err
	}

	if err := json.Unmarshal(tok.Payload, dest); err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return true, nil
}

func (p *Processor) verify(ctx context.Context, token string) (*Token, bool, error) {
	if token == "" {
		return nil, false, &FormatError{Err: ErrEmptyToken}
	}

	if err := validateTokenSize(token, p.maxTokenSize); err != nil {
		return nil, false, err
	}

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	default:
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if err := p.checkClosed(); err != nil {
		return nil, false, err
	}

	return verifyToken(token, p.verificationKey(), p.algorithm)
}

func (p *Processor) signingKey() (any, error) {
	if p.algorithm == SigningMethodHS256 {
		return p.secret.Bytes(), nil
	}
	if p.privateKey == nil {
		return nil, &CryptoError{Op: "sign", Err: fmt.Errorf("%w: processor holds only an RSA public key", ErrInvalidKey)}
	}
	return p.privateKey, nil
}

func (p *Processor) verificationKey() any {
	if p.algorithm == SigningMethodHS256 {
		return p.secret.Bytes()
	}
	return p.publicKey
}

// Close releases the key material; the secret is zeroed
func (p *Processor) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrProcessorClosed
	}

	if p.secret != nil {
		p.secret.Destroy()
		p.secret = nil
	}
	p.privateKey = nil
	p.publicKey = nil

	p.closed = true
	runtime.SetFinalizer(p, nil)
	return nil
}

// finalize is called by the garbage collector to ensure resources are cleaned up
func (p *Processor) finalize() {
	if !p.closed {
		p.Close()
	}
}

func (p *Processor) checkClosed() error {
	if p.closed {
		return ErrProcessorClosed
	}
	return nil
}

// IsClosed returns true if the processor has been closed
func (p *Processor) IsClosed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.closed
}
