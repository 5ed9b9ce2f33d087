package core

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrEmptyToken         = errors.New("empty token")
	ErrInvalidTokenFormat = errors.New("invalid token format: expected exactly three dot-separated parts")
	ErrHeaderNotObject    = errors.New("header is not a JSON object")
	ErrMissingAlgorithm   = errors.New("header has no alg")
)

// NewHeader builds the header for alg in one step
func NewHeader(alg, typ, kid string) Header {
	return Header{Alg: alg, Type: typ, KeyID: kid}
}

// Split cuts a compact token into its three encoded parts.
// Anything other than exactly two separators is rejected.
func Split(s string) (string, string, string, error) {
	if len(s) == 0 {
		return "", "", "", ErrEmptyToken
	}

	first := -1
	second := -1

	for i := 0; i < len(s); i++ {
		if s[i] != '.' {
			continue
		}
		switch {
		case first == -1:
			first = i
		case second == -1:
			second = i
		default:
			return "", "", "", ErrInvalidTokenFormat
		}
	}

	if second == -1 {
		return "", "", "", ErrInvalidTokenFormat
	}

	return s[:first], s[first+1 : second], s[second+1:], nil
}

// ParseHeader decodes the JSON header and extracts alg.
// alg must be a JSON string; typ and kid are read when they are strings.
func ParseHeader(raw []byte) (Header, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Header{}, fmt.Errorf("failed to unmarshal header: %w", err)
	}
	if fields == nil {
		return Header{}, ErrHeaderNotObject
	}

	rawAlg, ok := fields["alg"]
	if !ok || string(rawAlg) == "null" {
		return Header{}, ErrMissingAlgorithm
	}

	var h Header
	if err := json.Unmarshal(rawAlg, &h.Alg); err != nil {
		return Header{}, fmt.Errorf("alg must be a string: %w", err)
	}

	h.Type = optionalString(fields["typ"])
	h.KeyID = optionalString(fields["kid"])

	return h, nil
}

// optionalString decodes raw when it is a JSON string; any other value,
// or an absent one, yields "".
func optionalString(raw json.RawMessage) string {
	if len(raw) == 0 || raw[0] != '"' {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// Parse splits and decodes a token without checking its signature or algorithm
func Parse(tokenString string) (*Core, error) {
	part1, part2, part3, err := Split(tokenString)
	if err != nil {
		return nil, err
	}

	rawHeader, err := DecodeSegment(part1)
	if err != nil {
		return nil, fmt.Errorf("failed to decode header: %w", err)
	}

	payload, err := DecodeSegment(part2)
	if err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}

	header, err := ParseHeader(rawHeader)
	if err != nil {
		return nil, err
	}

	return &Core{
		Header:       header,
		RawHeader:    rawHeader,
		Payload:      payload,
		Signature:    part3,
		SecuredInput: SecuredInput(part1, part2),
		Raw:          tokenString,
	}, nil
}
