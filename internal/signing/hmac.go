package signing

import (
	"crypto"
	"fmt"

	gjwt "github.com/golang-jwt/jwt/v5"

	"github.com/cybergodev/jws/internal/core"
	"github.com/cybergodev/jws/internal/security"
)

type hmacSigningMethod struct {
	Name      string
	Primitive *gjwt.SigningMethodHMAC
}

func hmacKeyBytes(key any) (*security.SecureBytes, error) {
	var secureKey *security.SecureBytes

	switch k := key.(type) {
	case []byte:
		secureKey = security.NewSecureBytesFromSlice(k)
	case string:
		secureKey = security.NewSecureBytesFromString(k)
	default:
		return nil, fmt.Errorf("%w: HMAC key must be []byte or string, got %T", ErrInvalidKey, key)
	}

	if secureKey.Len() == 0 {
		secureKey.Destroy()
		return nil, fmt.Errorf("%w: HMAC secret is empty", ErrInvalidKey)
	}
	return secureKey, nil
}

func (h *hmacSigningMethod) Sign(securedInput string, key any) (string, error) {
	secureKey, err := hmacKeyBytes(key)
	if err != nil {
		return "", err
	}
	defer secureKey.Destroy()

	sig, err := h.Primitive.Sign(securedInput, secureKey.Bytes())
	if err != nil {
		return "", fmt.Errorf("hmac sign: %w", err)
	}
	defer security.ZeroBytes(sig)

	return core.EncodeSegment(sig), nil
}

// Verify recomputes the encoded signature and compares the encoded forms,
// so any change to the signature segment fails.
func (h *hmacSigningMethod) Verify(securedInput string, signature string, key any) error {
	expected, err := h.Sign(securedInput, key)
	if err != nil {
		return err
	}

	if !security.SecureCompareString(signature, expected) {
		return ErrSignatureInvalid
	}
	return nil
}

func (h *hmacSigningMethod) Alg() string {
	return h.Name
}

func (h *hmacSigningMethod) Hash() crypto.Hash {
	return h.Primitive.Hash
}

var hmacHS256 = &hmacSigningMethod{AlgHS256, gjwt.SigningMethodHS256}
