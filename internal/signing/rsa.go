package signing

import (
	"crypto"
	"crypto/rsa"
	"errors"
	"fmt"

	gjwt "github.com/golang-jwt/jwt/v5"

	"github.com/cybergodev/jws/internal/core"
)

type rsaSigningMethod struct {
	Name      string
	Primitive *gjwt.SigningMethodRSA
}

func rsaPrivateKey(key any) (*rsa.PrivateKey, error) {
	switch k := key.(type) {
	case *rsa.PrivateKey:
		if k == nil {
			return nil, fmt.Errorf("%w: nil RSA private key", ErrInvalidKey)
		}
		return k, nil
	case []byte:
		return ParsePrivateKey(k)
	case string:
		return ParsePrivateKey([]byte(k))
	default:
		return nil, fmt.Errorf("%w: RSA signing key must be *rsa.PrivateKey or PEM, got %T", ErrInvalidKey, key)
	}
}

func rsaPublicKey(key any) (*rsa.PublicKey, error) {
	switch k := key.(type) {
	case *rsa.PublicKey:
		if k == nil {
			return nil, fmt.Errorf("%w: nil RSA public key", ErrInvalidKey)
		}
		return k, nil
	case *rsa.PrivateKey:
		if k == nil {
			return nil, fmt.Errorf("%w: nil RSA private key", ErrInvalidKey)
		}
		return &k.PublicKey, nil
	case []byte:
		return ParsePublicKey(k)
	case string:
		return ParsePublicKey([]byte(k))
	default:
		return nil, fmt.Errorf("%w: RSA verification key must be *rsa.PublicKey or PEM, got %T", ErrInvalidKey, key)
	}
}

func (r *rsaSigningMethod) Sign(securedInput string, key any) (string, error) {
	priv, err := rsaPrivateKey(key)
	if err != nil {
		return "", err
	}

	sig, err := r.Primitive.Sign(securedInput, priv)
	if err != nil {
		return "", fmt.Errorf("rsa sign: %w", err)
	}

	return core.EncodeSegment(sig), nil
}

func (r *rsaSigningMethod) Verify(securedInput string, signature string, key any) error {
	pub, err := rsaPublicKey(key)
	if err != nil {
		return err
	}

	sig, err := core.DecodeSegment(signature)
	if err != nil {
		return ErrSignatureInvalid
	}

	if err := r.Primitive.Verify(securedInput, sig, pub); err != nil {
		if errors.Is(err, rsa.ErrVerification) || errors.Is(err, gjwt.ErrSignatureInvalid) {
			return ErrSignatureInvalid
		}
		return fmt.Errorf("rsa verify: %w", err)
	}
	return nil
}

func (r *rsaSigningMethod) Alg() string {
	return r.Name
}

func (r *rsaSigningMethod) Hash() crypto.Hash {
	return r.Primitive.Hash
}

var rsaRS256 = &rsaSigningMethod{AlgRS256, gjwt.SigningMethodRS256}
