package jws

import (
	"errors"
	"fmt"

	"github.com/cybergodev/jws/internal/core"
	"github.com/cybergodev/jws/internal/signing"
)

// Predefined errors, match them with errors.Is
var (
	// Token errors
	ErrMalformedToken       = errors.New("malformed token")
	ErrEmptyToken           = core.ErrEmptyToken
	ErrUnsupportedAlgorithm = signing.ErrUnsupportedAlgorithm
	ErrAlgorithmMismatch    = errors.New("token algorithm does not match the expected algorithm")

	// Key and cryptographic errors
	ErrCrypto     = errors.New("cryptographic operation failed")
	ErrInvalidKey = signing.ErrInvalidKey

	// Input errors
	ErrInvalidPayload = errors.New("invalid payload")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")

	// System errors
	ErrProcessorClosed = errors.New("processor is closed: cannot perform operations")
)

// FormatError reports a token that is not a well-formed compact serialization:
// wrong part count, bad base64url, non-JSON header or a header without alg.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%v: %v", ErrMalformedToken, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func (e *FormatError) Is(target error) bool {
	return target == ErrMalformedToken
}

// UnsupportedAlgorithmError reports an alg other than HS256 or RS256.
type UnsupportedAlgorithmError struct {
	Alg string
}

func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnsupportedAlgorithm, e.Alg)
}

func (e *UnsupportedAlgorithmError) Is(target error) bool {
	return target == ErrUnsupportedAlgorithm
}

// AlgorithmMismatchError is returned by pinned verification when the
// header names a supported algorithm other than the expected one.
type AlgorithmMismatchError struct {
	Expected SigningMethod
	Got      SigningMethod
}

func (e *AlgorithmMismatchError) Error() string {
	return fmt.Sprintf("algorithm mismatch: expected %s, got %s", e.Expected, e.Got)
}

func (e *AlgorithmMismatchError) Is(target error) bool {
	return target == ErrAlgorithmMismatch
}

// CryptoError reports rejected key material or a failing primitive.
// A signature that simply does not match is not a CryptoError.
type CryptoError struct {
	Op  string // "sign", "verify" or "parse key"
	Err error
}

func (e *CryptoError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, ErrCrypto, e.Err)
}

func (e *CryptoError) Unwrap() error {
	return e.Err
}

func (e *CryptoError) Is(target error) bool {
	return target == ErrCrypto
}

// ValidationError represents a validation error for a specific field.
// It provides detailed information about what validation failed and why.
type ValidationError struct {
	Field   string // The field that failed validation
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("validation failed for field '%s': %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}
