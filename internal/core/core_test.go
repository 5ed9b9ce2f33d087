package core

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestEncodeSegment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"alg":"HS256"}`, "eyJhbGciOiJIUzI1NiJ9"},
		{`{"alg":"RS256"}`, "eyJhbGciOiJSUzI1NiJ9"},
		{"hello", "aGVsbG8"},
		{"", ""},
		{"\xfb\xff", "-_8"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := EncodeSegment([]byte(tt.in)); got != tt.want {
				t.Errorf("EncodeSegment(%q) = %q, want %q", tt.in, got, tt.want)
			}
			back, err := DecodeSegment(tt.want)
			if err != nil {
				t.Fatalf("DecodeSegment(%q) failed: %v", tt.want, err)
			}
			if string(back) != tt.in {
				t.Errorf("DecodeSegment(%q) = %q, want %q", tt.want, back, tt.in)
			}
		})
	}
}

func TestDecodeSegmentErrors(t *testing.T) {
	tests := []struct {
		name    string
		segment string
	}{
		{"padding", "aGVsbG8="},
		{"standard alphabet", "+/8"},
		{"non-zero trailing bits", "aGVsbG9"},
		{"impossible length", "a"},
		{"embedded newline", "aGVs\nbG8"},
		{"space", "aGVs bG8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeSegment(tt.segment); err == nil {
				t.Errorf("DecodeSegment(%q) expected error", tt.segment)
			}
		})
	}
}

func TestMarshalCanonical(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"header alg only", NewHeader("HS256", "", ""), `{"alg":"HS256"}`},
		{"header field order", NewHeader("RS256", "JWT", "k1"), `{"alg":"RS256","typ":"JWT","kid":"k1"}`},
		{"map keys sorted", map[string]any{"b": 1, "a": "x"}, `{"a":"x","b":1}`},
		{"no html escaping", map[string]string{"q": "<a&b>"}, `{"q":"<a&b>"}`},
		{"nested", map[string]any{"n": []any{1, "two", nil}}, `{"n":[1,"two",null]}`},
		{"nil", nil, `null`},
		{"string value", "hello", `"hello"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalCanonical(tt.in)
			if err != nil {
				t.Fatalf("MarshalCanonical failed: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("MarshalCanonical() = %s, want %s", got, tt.want)
			}
		})
	}

	if _, err := MarshalCanonical(make(chan int)); err == nil {
		t.Error("Expected error for non-serializable value")
	}
}

func TestPayloadBytes(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		want    string
	}{
		{"string verbatim", `hello "world"`, `hello "world"`},
		{"bytes verbatim", []byte{0x00, 0x01}, "\x00\x01"},
		{"raw message verbatim", json.RawMessage(`{ "a" : 1 }`), `{ "a" : 1 }`},
		{"struct", struct {
			Sub string `json:"sub"`
			N   int    `json:"n"`
		}{"u1", 2}, `{"sub":"u1","n":2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PayloadBytes(tt.payload)
			if err != nil {
				t.Fatalf("PayloadBytes failed: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("PayloadBytes() = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := PayloadBytes(map[string]any{"c": make(chan int)}); err == nil {
		t.Error("Expected error for non-serializable payload")
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    [3]string
		wantErr error
	}{
		{"valid", "header.payload.signature", [3]string{"header", "payload", "signature"}, nil},
		{"empty payload", "h..s", [3]string{"h", "", "s"}, nil},
		{"empty signature", "h.p.", [3]string{"h", "p", ""}, nil},
		{"one separator", "header.payload", [3]string{}, ErrInvalidTokenFormat},
		{"no separator", "onlyonepart", [3]string{}, ErrInvalidTokenFormat},
		{"extra separator", "not.a.validtoken.extra", [3]string{}, ErrInvalidTokenFormat},
		{"empty", "", [3]string{}, ErrEmptyToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p1, p2, p3, err := Split(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Split(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if got := [3]string{p1, p2, p3}; got != tt.want {
				t.Errorf("Split(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Header
		wantErr bool
	}{
		{"alg only", `{"alg":"HS256"}`, Header{Alg: "HS256"}, false},
		{"typ and kid", `{"typ":"JWT","alg":"RS256","kid":"a"}`, Header{Alg: "RS256", Type: "JWT", KeyID: "a"}, false},
		{"unknown alg kept", `{"alg":"NONE"}`, Header{Alg: "NONE"}, false},
		{"non-string typ ignored", `{"alg":"HS256","typ":5}`, Header{Alg: "HS256"}, false},
		{"non-string kid ignored", `{"alg":"HS256","kid":{"id":"a"},"typ":"JWT"}`, Header{Alg: "HS256", Type: "JWT"}, false},
		{"null typ and array kid ignored", `{"alg":"RS256","typ":null,"kid":["a"]}`, Header{Alg: "RS256"}, false},
		{"escaped kid", `{"alg":"HS256","kid":"a\u0062"}`, Header{Alg: "HS256", KeyID: "ab"}, false},
		{"missing alg", `{"typ":"JWT"}`, Header{}, true},
		{"null alg", `{"alg":null}`, Header{}, true},
		{"numeric alg", `{"alg":256}`, Header{}, true},
		{"not json", `alg=HS256`, Header{}, true},
		{"array", `["HS256"]`, Header{}, true},
		{"null", `null`, Header{}, true},
		{"empty", ``, Header{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHeader([]byte(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHeader(%s) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHeader(%s) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	token := "eyJhbGciOiJIUzI1NiJ9.aGVsbG8.c2ln"

	c, err := Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if c.Header.Alg != "HS256" {
		t.Errorf("Expected alg HS256, got %q", c.Header.Alg)
	}
	if string(c.RawHeader) != `{"alg":"HS256"}` {
		t.Errorf("Unexpected raw header %s", c.RawHeader)
	}
	if string(c.Payload) != "hello" {
		t.Errorf("Expected payload hello, got %q", c.Payload)
	}
	if c.Signature != "c2ln" {
		t.Errorf("Expected signature c2ln, got %q", c.Signature)
	}
	if c.SecuredInput != "eyJhbGciOiJIUzI1NiJ9.aGVsbG8" {
		t.Errorf("Unexpected secured input %q", c.SecuredInput)
	}
	if c.Raw != token {
		t.Error("Raw not preserved")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"one part", "onlyonepart"},
		{"four parts", "not.a.validtoken.extra"},
		{"header not base64url", "e30=.aGVsbG8.c2ln"},
		{"payload not base64url", "eyJhbGciOiJIUzI1NiJ9.aGVs*G8.c2ln"},
		{"header not json", EncodeSegment([]byte("nope")) + ".aGVsbG8.c2ln"},
		{"header without alg", EncodeSegment([]byte(`{}`)) + ".aGVsbG8.c2ln"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.token); err == nil {
				t.Errorf("Parse(%q) expected error", tt.token)
			}
		})
	}
}
