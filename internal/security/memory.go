package security

import (
	"crypto/subtle"
	"runtime"
	"sync"
)

// SecureBytes holds key material that is zeroed when no longer needed
type SecureBytes struct {
	data []byte
	mu   sync.Mutex
}

// NewSecureBytesFromSlice copies data into a new SecureBytes
func NewSecureBytesFromSlice(data []byte) *SecureBytes {
	secure := &SecureBytes{
		data: make([]byte, len(data)),
	}
	copy(secure.data, data)

	runtime.SetFinalizer(secure, (*SecureBytes).destroy)
	return secure
}

// NewSecureBytesFromString copies s into a new SecureBytes.
// The original string cannot be zeroed.
func NewSecureBytesFromString(s string) *SecureBytes {
	return NewSecureBytesFromSlice([]byte(s))
}

// Bytes returns the underlying byte slice (use with caution)
func (s *SecureBytes) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// Len returns the number of bytes held, zero after Destroy
func (s *SecureBytes) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// IsDestroyed reports whether Destroy has been called
func (s *SecureBytes) IsDestroyed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data == nil
}

// Destroy zeros the memory and drops the reference
func (s *SecureBytes) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroy()
	runtime.SetFinalizer(s, nil)
}

func (s *SecureBytes) destroy() {
	if s.data != nil {
		ZeroBytes(s.data)
		s.data = nil
	}
}

// ZeroBytes overwrites a byte slice with zeros
func ZeroBytes(data []byte) {
	if len(data) == 0 {
		return
	}

	for i := range data {
		data[i] = 0
	}

	runtime.KeepAlive(data)
}

// SecureCompare performs constant-time comparison of two byte slices.
// Slices of different length compare unequal.
func SecureCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// SecureCompareString is SecureCompare for strings
func SecureCompareString(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
