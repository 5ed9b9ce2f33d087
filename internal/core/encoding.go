package core

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// segmentEncoding is unpadded base64url that rejects non-zero trailing bits,
// so every segment has exactly one accepted spelling.
var segmentEncoding = base64.RawURLEncoding.Strict()

// EncodeSegment encodes data as unpadded base64url
func EncodeSegment(data []byte) string {
	return segmentEncoding.EncodeToString(data)
}

// DecodeSegment decodes an unpadded base64url segment
func DecodeSegment(segment string) ([]byte, error) {
	if !isValidBase64URL(segment) {
		return nil, fmt.Errorf("invalid base64url characters in segment")
	}

	buf := make([]byte, segmentEncoding.DecodedLen(len(segment)))
	n, err := segmentEncoding.Decode(buf, []byte(segment))
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64url: %w", err)
	}
	return buf[:n], nil
}

// SecuredInput returns the byte sequence a signature is computed over
func SecuredInput(encodedHeader, encodedPayload string) string {
	buf := make([]byte, 0, len(encodedHeader)+1+len(encodedPayload))
	buf = append(buf, encodedHeader...)
	buf = append(buf, '.')
	buf = append(buf, encodedPayload...)
	return string(buf)
}

// MarshalCanonical serializes v as compact JSON without HTML escaping.
// Struct fields keep declaration order and map keys are sorted.
func MarshalCanonical(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// PayloadBytes returns the bytes a payload contributes to a token.
// Strings and byte slices are taken verbatim, anything else is canonical JSON.
func PayloadBytes(payload any) ([]byte, error) {
	switch p := payload.(type) {
	case string:
		return []byte(p), nil
	case []byte:
		return p, nil
	case json.RawMessage:
		return p, nil
	default:
		b, err := MarshalCanonical(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		return b, nil
	}
}

// isValidBase64URL checks if string contains only valid base64url characters.
// The standard decoder silently skips CR and LF, which must not be accepted here.
func isValidBase64URL(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '-' || c == '_') {
			return false
		}
	}
	return true
}
