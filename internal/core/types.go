package core

// Header is the protected JOSE header of a compact token.
// Field order is the canonical serialization order.
type Header struct {
	Alg   string `json:"alg"`
	Type  string `json:"typ,omitempty"`
	KeyID string `json:"kid,omitempty"`
}

// Core represents a decoded compact token
type Core struct {
	Header       Header
	RawHeader    []byte
	Payload      []byte
	Signature    string
	SecuredInput string
	Raw          string
}
