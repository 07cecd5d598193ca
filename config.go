package famtask

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Config defines a public type used by famtask APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	API     APIConfig
	Storage StorageConfig
	Push    PushConfig
	Token   TokenConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
API CONFIG
====================================
*/

// APIConfig defines a public type used by famtask APIs.
//
// APIConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type APIConfig struct {
	// BaseURL is the backend endpoint, e.g. "http://192.168.0.122:3000".
	// Environment-configured; there is no default.
	BaseURL string
	Timeout time.Duration
	// AuthScheme is prepended to the Authorization header value when
	// non-empty. The backend's observed contract is the raw token, so the
	// default is "". Set "Bearer" only after confirming with the backend.
	AuthScheme string
}

/*
====================================
STORAGE CONFIG
====================================
*/

// StorageConfig defines a public type used by famtask APIs.
//
// StorageConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type StorageConfig struct {
	// TokenKey is the persisted-store key holding the raw auth token.
	TokenKey string
	// SessionKey is the persisted-store key holding the session blob
	// ({"value": <user-or-null>}).
	SessionKey string
	// RedisPrefix namespaces keys when the store is Redis-backed.
	RedisPrefix string
}

/*
====================================
PUSH CONFIG
====================================
*/

// PushConfig defines a public type used by famtask APIs.
//
// PushConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PushConfig struct {
	// AutoRegister runs the push registration flow in the background after
	// each successful login when a provider is configured.
	AutoRegister bool
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig defines a public type used by famtask APIs.
//
// TokenConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TokenConfig struct {
	// IntrospectExpiry enables [Engine.TokenExpiry], which decodes the
	// stored token as an unverified JWT. Off by default: the token is
	// contractually opaque and may stop being a JWT at any backend release.
	IntrospectExpiry bool
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by famtask APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by famtask APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

const maxRequestTimeout = 2 * time.Minute

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			Timeout:    20 * time.Second,
			AuthScheme: "",
		},
		Storage: StorageConfig{
			TokenKey:    "token",
			SessionKey:  "user",
			RedisPrefix: "ft",
		},
		Push: PushConfig{
			AutoRegister: true,
		},
		Token: TokenConfig{
			IntrospectExpiry: false,
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// DefaultConfig returns the engine defaults: 20s request timeout, raw
// Authorization scheme, "token"/"user" storage keys, audit and metrics on.
func DefaultConfig() Config {
	return defaultConfig()
}

func cloneConfig(cfg Config) Config {
	// All fields are values; a shallow copy is a deep copy.
	return cfg
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return errors.New("API.BaseURL required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return errors.New("API.BaseURL must be a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("API.BaseURL must use http or https")
	}
	if c.API.Timeout <= 0 {
		return errors.New("API.Timeout must be positive")
	}
	if c.API.Timeout > maxRequestTimeout {
		return errors.New("API.Timeout exceeds the 2m ceiling")
	}
	if scheme := c.API.AuthScheme; scheme != strings.TrimSpace(scheme) || strings.Contains(scheme, " ") {
		return errors.New("API.AuthScheme must not contain spaces")
	}

	if strings.TrimSpace(c.Storage.TokenKey) == "" {
		return errors.New("Storage.TokenKey required")
	}
	if strings.TrimSpace(c.Storage.SessionKey) == "" {
		return errors.New("Storage.SessionKey required")
	}
	if c.Storage.TokenKey == c.Storage.SessionKey {
		return errors.New("Storage.TokenKey and Storage.SessionKey must differ")
	}

	if c.Audit.BufferSize < 0 {
		return errors.New("Audit.BufferSize must not be negative")
	}

	return nil
}
