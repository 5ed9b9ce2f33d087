package jws

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultMaxTokenSize is the token length limit applied by DefaultConfig
const DefaultMaxTokenSize = 8192

// Config represents Processor configuration
type Config struct {
	// Algorithm pins signing and verification. Empty infers it from the key:
	// RS256 for any PEM-armored key (private or public), HS256 for anything else.
	Algorithm SigningMethod `yaml:"algorithm" json:"algorithm"`

	// Key is the HMAC secret or PEM RSA key
	Key string `yaml:"key" json:"key"`

	// KeyFile is read when Key is empty; trailing newlines are dropped
	KeyFile string `yaml:"key_file" json:"key_file"`

	// KeyID is written to the kid header parameter when set
	KeyID string `yaml:"key_id" json:"key_id"`

	// Type is written to the typ header parameter when set
	Type string `yaml:"type" json:"type"`

	// MaxTokenSize rejects longer tokens before decoding; zero disables the check
	MaxTokenSize int `yaml:"max_token_size" json:"max_token_size"`
}

// DefaultConfig returns the configuration used by New when none is given
func DefaultConfig() Config {
	return Config{
		Algorithm:    "",
		MaxTokenSize: DefaultMaxTokenSize,
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if c == nil {
		return ErrInvalidConfig
	}

	if c.Algorithm != "" && !c.Algorithm.IsSupported() {
		return &ValidationError{
			Field:   "algorithm",
			Message: fmt.Sprintf("must be %s or %s", SigningMethodHS256, SigningMethodRS256),
			Err:     &UnsupportedAlgorithmError{Alg: string(c.Algorithm)},
		}
	}

	if c.Key != "" && c.KeyFile != "" {
		return &ValidationError{Field: "key_file", Message: "key and key_file are mutually exclusive"}
	}

	if c.MaxTokenSize < 0 {
		return &ValidationError{Field: "max_token_size", Message: "must not be negative"}
	}

	if err := validateHeaderParam("key_id", c.KeyID); err != nil {
		return err
	}
	return validateHeaderParam("type", c.Type)
}

// LoadConfig reads a YAML (or JSON) configuration file on top of DefaultConfig
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: parsing config file: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// resolveKey returns Key, or the contents of KeyFile
func (c *Config) resolveKey() (string, error) {
	if c.Key != "" || c.KeyFile == "" {
		return c.Key, nil
	}

	data, err := os.ReadFile(c.KeyFile)
	if err != nil {
		return "", &ValidationError{Field: "key_file", Message: "cannot read key file", Err: err}
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
