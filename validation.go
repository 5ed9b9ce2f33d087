package jws

import (
	"fmt"
)

const maxHeaderParamLength = 256

var errTokenTooLarge = fmt.Errorf("token too large")

// validateHeaderParam checks a configured header value before it is ever signed
func validateHeaderParam(fieldName, value string) error {
	if len(value) == 0 {
		return nil
	}

	if len(value) > maxHeaderParamLength {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("too long: maximum %d characters", maxHeaderParamLength),
		}
	}

	for i := 0; i < len(value); i++ {
		if value[i] < 32 || value[i] == 127 {
			return &ValidationError{
				Field:   fieldName,
				Message: "contains invalid control character",
			}
		}
	}

	return nil
}

// validateTokenSize rejects tokens longer than maxSize; zero means unlimited
func validateTokenSize(tokenString string, maxSize int) error {
	if maxSize > 0 && len(tokenString) > maxSize {
		return &FormatError{Err: fmt.Errorf("%w: %d bytes exceeds the %d byte limit", errTokenTooLarge, len(tokenString), maxSize)}
	}
	return nil
}
