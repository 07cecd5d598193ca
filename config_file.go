package famtask

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML schema for LoadConfigFile. Optional fields are
// pointers so an absent key keeps the engine default.
type fileConfig struct {
	API struct {
		BaseURL    string  `yaml:"base_url"`
		Timeout    string  `yaml:"timeout"`
		AuthScheme *string `yaml:"auth_scheme"`
	} `yaml:"api"`
	Storage struct {
		TokenKey    string `yaml:"token_key"`
		SessionKey  string `yaml:"session_key"`
		RedisPrefix string `yaml:"redis_prefix"`
	} `yaml:"storage"`
	Push struct {
		AutoRegister *bool `yaml:"auto_register"`
	} `yaml:"push"`
	Token struct {
		IntrospectExpiry *bool `yaml:"introspect_expiry"`
	} `yaml:"token"`
	Audit struct {
		Enabled    *bool `yaml:"enabled"`
		BufferSize *int  `yaml:"buffer_size"`
		DropIfFull *bool `yaml:"drop_if_full"`
	} `yaml:"audit"`
	Metrics struct {
		Enabled           *bool `yaml:"enabled"`
		LatencyHistograms *bool `yaml:"latency_histograms"`
	} `yaml:"metrics"`
}

// LoadConfigFile reads a YAML config file and overlays it on the engine
// defaults. The result is validated by [Builder.Build], not here.
func LoadConfigFile(path string) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if fc.API.BaseURL != "" {
		cfg.API.BaseURL = fc.API.BaseURL
	}
	if fc.API.Timeout != "" {
		d, err := time.ParseDuration(fc.API.Timeout)
		if err != nil {
			return cfg, fmt.Errorf("config: invalid api.timeout: %w", err)
		}
		cfg.API.Timeout = d
	}
	if fc.API.AuthScheme != nil {
		cfg.API.AuthScheme = *fc.API.AuthScheme
	}

	if fc.Storage.TokenKey != "" {
		cfg.Storage.TokenKey = fc.Storage.TokenKey
	}
	if fc.Storage.SessionKey != "" {
		cfg.Storage.SessionKey = fc.Storage.SessionKey
	}
	if fc.Storage.RedisPrefix != "" {
		cfg.Storage.RedisPrefix = fc.Storage.RedisPrefix
	}

	if fc.Push.AutoRegister != nil {
		cfg.Push.AutoRegister = *fc.Push.AutoRegister
	}
	if fc.Token.IntrospectExpiry != nil {
		cfg.Token.IntrospectExpiry = *fc.Token.IntrospectExpiry
	}

	if fc.Audit.Enabled != nil {
		cfg.Audit.Enabled = *fc.Audit.Enabled
	}
	if fc.Audit.BufferSize != nil {
		cfg.Audit.BufferSize = *fc.Audit.BufferSize
	}
	if fc.Audit.DropIfFull != nil {
		cfg.Audit.DropIfFull = *fc.Audit.DropIfFull
	}

	if fc.Metrics.Enabled != nil {
		cfg.Metrics.Enabled = *fc.Metrics.Enabled
	}
	if fc.Metrics.LatencyHistograms != nil {
		cfg.Metrics.EnableLatencyHistograms = *fc.Metrics.LatencyHistograms
	}

	return cfg, nil
}
