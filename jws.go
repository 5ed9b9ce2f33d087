package jws

import (
	"errors"
	"fmt"

	"github.com/cybergodev/jws/internal/core"
	"github.com/cybergodev/jws/internal/signing"
)

// Sign produces a compact token for payload.
//
// Strings and byte slices are used verbatim as the payload; any other value
// is serialized as compact JSON without HTML escaping. The header is exactly
// {"alg":"RS256"} when key starts with RSAPrivateKeyMarker and
// {"alg":"HS256"} otherwise.
func Sign(payload any, key string) (string, error) {
	return signToken(payload, key, algorithmForKey(key), "", "")
}

// SignWithAlgorithm is Sign with an explicit algorithm instead of key sniffing.
// For RS256 the key must be a PEM RSA private key (PKCS#1 or PKCS#8).
func SignWithAlgorithm(payload any, key string, alg SigningMethod) (string, error) {
	return signToken(payload, key, alg, "", "")
}

// Verify checks token against key using the algorithm named in its header.
// key is the HMAC secret for HS256 or a PEM RSA public key for RS256.
func Verify(token, key string) (bool, error) {
	_, valid, err := verifyToken(token, key, "")
	return valid, err
}

// VerifyWithAlgorithm is Verify that additionally requires the header alg
// to equal alg, returning an AlgorithmMismatchError otherwise.
func VerifyWithAlgorithm(token, key string, alg SigningMethod) (bool, error) {
	if !alg.IsSupported() {
		return false, &UnsupportedAlgorithmError{Alg: string(alg)}
	}
	_, valid, err := verifyToken(token, key, alg)
	return valid, err
}

// Decode splits and decodes token without checking its signature.
// The result must not be trusted.
func Decode(token string) (*Token, error) {
	c, err := core.Parse(token)
	if err != nil {
		return nil, &FormatError{Err: err}
	}
	if !SigningMethod(c.Header.Alg).IsSupported() {
		return nil, &UnsupportedAlgorithmError{Alg: c.Header.Alg}
	}
	return tokenFromCore(c), nil
}

func signToken(payload any, key any, alg SigningMethod, typ, kid string) (string, error) {
	method, err := signing.ForAlgorithm(string(alg))
	if err != nil {
		return "", &UnsupportedAlgorithmError{Alg: string(alg)}
	}

	body, err := core.PayloadBytes(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	tokenString, err := signing.SignedString(core.NewHeader(method.Alg(), typ, kid), body, method, key)
	if err != nil {
		return "", &CryptoError{Op: "sign", Err: err}
	}
	return tokenString, nil
}

// verifyToken runs the verification pipeline. A non-empty expected pins the algorithm.
func verifyToken(tokenString string, key any, expected SigningMethod) (*Token, bool, error) {
	c, err := core.Parse(tokenString)
	if err != nil {
		return nil, false, &FormatError{Err: err}
	}

	method, err := signing.ForAlgorithm(c.Header.Alg)
	if err != nil {
		return nil, false, &UnsupportedAlgorithmError{Alg: c.Header.Alg}
	}

	if expected != "" && SigningMethod(method.Alg()) != expected {
		return nil, false, &AlgorithmMismatchError{Expected: expected, Got: SigningMethod(method.Alg())}
	}

	token := tokenFromCore(c)

	err = method.Verify(c.SecuredInput, c.Signature, key)
	switch {
	case err == nil:
		return token, true, nil
	case errors.Is(err, signing.ErrSignatureInvalid):
		return token, false, nil
	default:
		return nil, false, &CryptoError{Op: "verify", Err: err}
	}
}
