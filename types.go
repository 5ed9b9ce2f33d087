package jws

import (
	"github.com/cybergodev/jws/internal/core"
	"github.com/cybergodev/jws/internal/signing"
)

// SigningMethod represents the supported JWS signature algorithms.
type SigningMethod string

const (
	// SigningMethodHS256 is HMAC with SHA-256 over a shared secret
	SigningMethodHS256 SigningMethod = signing.AlgHS256

	// SigningMethodRS256 is RSASSA-PKCS1-v1_5 with SHA-256
	SigningMethodRS256 SigningMethod = signing.AlgRS256
)

// RSAPrivateKeyMarker is the PEM armor line that makes Sign choose RS256.
const RSAPrivateKeyMarker = signing.RSAPrivateKeyMarker

// IsSupported reports whether m is HS256 or RS256.
func (m SigningMethod) IsSupported() bool {
	switch m {
	case SigningMethodHS256, SigningMethodRS256:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer
func (m SigningMethod) String() string {
	return string(m)
}

// Header is the protected header of a token.
// It serializes as {"alg":...} followed by typ and kid when they are set.
type Header struct {
	Algorithm SigningMethod `json:"alg"`
	Type      string        `json:"typ,omitempty"`
	KeyID     string        `json:"kid,omitempty"`
}

// Token is a decoded compact token. Payload holds the decoded payload bytes.
type Token struct {
	Header       Header
	Payload      []byte
	Signature    string
	SecuredInput string
	Raw          string
}

func tokenFromCore(c *core.Core) *Token {
	return &Token{
		Header: Header{
			Algorithm: SigningMethod(c.Header.Alg),
			Type:      c.Header.Type,
			KeyID:     c.Header.KeyID,
		},
		Payload:      c.Payload,
		Signature:    c.Signature,
		SecuredInput: c.SecuredInput,
		Raw:          c.Raw,
	}
}

// IsRSAPrivateKey reports whether key begins with RSAPrivateKeyMarker.
//
// Sign uses this to pick RS256 over HS256. The check is a plain prefix test:
// PKCS#8 keys, keys with leading whitespace and anything else fall through to HS256.
// Never pass attacker-influenced key material to Sign; prefer SignWithAlgorithm.
func IsRSAPrivateKey(key string) bool {
	return signing.IsRSAPrivateKey(key)
}

func algorithmForKey(key string) SigningMethod {
	if IsRSAPrivateKey(key) {
		return SigningMethodRS256
	}
	return SigningMethodHS256
}
