package signing

import (
	"crypto"
	"errors"
	"fmt"

	"github.com/cybergodev/jws/internal/core"
)

const (
	AlgHS256 = "HS256"
	AlgRS256 = "RS256"
)

var (
	ErrUnsupportedAlgorithm = errors.New("unsupported signing algorithm")
	ErrInvalidKey           = errors.New("invalid key")
	ErrSignatureInvalid     = errors.New("signature verification failed")
)

// Method represents a signing method for compact tokens
type Method interface {
	Alg() string
	// Sign returns the base64url-encoded signature over securedInput
	Sign(securedInput string, key any) (string, error)
	// Verify returns ErrSignatureInvalid when signature does not match
	Verify(securedInput string, signature string, key any) error
	Hash() crypto.Hash
}

// ForAlgorithm maps an alg header value onto its Method.
// The match is exact and case-sensitive; there is no fallback.
func ForAlgorithm(alg string) (Method, error) {
	switch alg {
	case AlgHS256:
		return hmacHS256, nil
	case AlgRS256:
		return rsaRS256, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, alg)
	}
}

// SignedString assembles header.payload.signature
func SignedString(header core.Header, payload []byte, method Method, key any) (string, error) {
	headerJSON, err := core.MarshalCanonical(header)
	if err != nil {
		return "", fmt.Errorf("failed to marshal header: %w", err)
	}

	securedInput := core.SecuredInput(core.EncodeSegment(headerJSON), core.EncodeSegment(payload))

	signature, err := method.Sign(securedInput, key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	tokenBuf := make([]byte, 0, len(securedInput)+1+len(signature))
	tokenBuf = append(tokenBuf, securedInput...)
	tokenBuf = append(tokenBuf, '.')
	tokenBuf = append(tokenBuf, signature...)

	return string(tokenBuf), nil
}
