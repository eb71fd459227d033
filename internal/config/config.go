// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads client settings from a YAML file and the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	skladerrors "github.com/tombee/moysklad/pkg/errors"
	"github.com/tombee/moysklad/pkg/moysklad"
	"github.com/tombee/moysklad/pkg/transport"
)

// Config is the complete client configuration.
type Config struct {
	// Login is the MoySklad account, e.g. "admin@company".
	Login string `yaml:"login,omitempty"`

	// Password is normally kept in the OS keychain; a value here or in
	// MOYSKLAD_PASSWORD takes precedence.
	Password string `yaml:"password,omitempty"`

	// BaseURL is the API root including the version segment.
	BaseURL string `yaml:"base_url,omitempty"`

	HTTP  HTTPConfig  `yaml:"http,omitempty"`
	Retry RetryConfig `yaml:"retry,omitempty"`
	Log   LogConfig   `yaml:"log,omitempty"`
}

// HTTPConfig holds transport settings.
type HTTPConfig struct {
	// Timeout bounds a single attempt (default: 60s).
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// ConnectTimeout bounds TCP connect and TLS handshake (default: 60s).
	ConnectTimeout time.Duration `yaml:"connect_timeout,omitempty"`

	// InsecureSkipVerify disables TLS verification. Off by default.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"user_agent,omitempty"`
}

// RetryConfig holds pacing and retry settings.
type RetryConfig struct {
	// MaxRetries after transient failures (default: 3). Pointer so that an
	// explicit 0 in YAML survives defaulting.
	MaxRetries *int `yaml:"max_retries,omitempty"`

	// RequestDelay is the pause before every attempt (default: 250ms).
	RequestDelay *time.Duration `yaml:"request_delay,omitempty"`

	// RateLimit caps requests per second; 0 means unlimited.
	RateLimit float64 `yaml:"rate_limit,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level     string `yaml:"level,omitempty"`
	Format    string `yaml:"format,omitempty"`
	AddSource bool   `yaml:"add_source,omitempty"`
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	maxRetries := transport.DefaultMaxRetries
	delay := transport.DefaultRequestDelay
	return &Config{
		BaseURL: moysklad.DefaultBaseURL,
		HTTP: HTTPConfig{
			Timeout:        transport.DefaultTimeout,
			ConnectTimeout: transport.DefaultConnectTimeout,
			UserAgent:      transport.DefaultUserAgent,
		},
		Retry: RetryConfig{
			MaxRetries:   &maxRetries,
			RequestDelay: &delay,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads configuration from a YAML file when configPath is set, then
// applies environment overrides and validates the result. A missing file at
// the default path is not an error.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		if err := cfg.loadFromFile(configPath); err != nil {
			return nil, &skladerrors.ConfigError{
				Key:    "config_file",
				Reason: fmt.Sprintf("failed to load from %s", configPath),
				Cause:  err,
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.loadFromEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, &skladerrors.ConfigError{
			Key:    "validation",
			Reason: "configuration validation failed",
			Cause:  err,
		}
	}

	return cfg, nil
}

// LoadDefault loads from the default config path, tolerating its absence.
func LoadDefault() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, &skladerrors.ConfigError{Key: "config_file", Reason: "failed to locate config directory", Cause: err}
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		path = ""
	}
	return Load(path)
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	d := Default()
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = d.HTTP.Timeout
	}
	if c.HTTP.ConnectTimeout == 0 {
		c.HTTP.ConnectTimeout = d.HTTP.ConnectTimeout
	}
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = d.HTTP.UserAgent
	}
	if c.Retry.MaxRetries == nil {
		c.Retry.MaxRetries = d.Retry.MaxRetries
	}
	if c.Retry.RequestDelay == nil {
		c.Retry.RequestDelay = d.Retry.RequestDelay
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
}

// loadFromFile loads configuration from a YAML file.
func (c *Config) loadFromFile(path string) error {
	path, err := expandHome(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return skladerrors.Wrap(err, "failed to read config file")
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return skladerrors.Wrap(err, "failed to parse YAML")
	}

	return nil
}

// loadFromEnv applies environment overrides. Unparseable values are
// reported rather than ignored.
func (c *Config) loadFromEnv() error {
	if val := os.Getenv("MOYSKLAD_LOGIN"); val != "" {
		c.Login = val
	}
	if val := os.Getenv("MOYSKLAD_PASSWORD"); val != "" {
		c.Password = val
	}
	if val := os.Getenv("MOYSKLAD_BASE_URL"); val != "" {
		c.BaseURL = val
	}

	if val := os.Getenv("MOYSKLAD_TIMEOUT"); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			return envError("MOYSKLAD_TIMEOUT", err)
		}
		c.HTTP.Timeout = d
	}
	if val := os.Getenv("MOYSKLAD_CONNECT_TIMEOUT"); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			return envError("MOYSKLAD_CONNECT_TIMEOUT", err)
		}
		c.HTTP.ConnectTimeout = d
	}
	if val := os.Getenv("MOYSKLAD_INSECURE_SKIP_VERIFY"); val != "" {
		c.HTTP.InsecureSkipVerify = val == "1" || strings.ToLower(val) == "true"
	}

	if val := os.Getenv("MOYSKLAD_REQUEST_DELAY"); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			return envError("MOYSKLAD_REQUEST_DELAY", err)
		}
		c.Retry.RequestDelay = &d
	}
	if val := os.Getenv("MOYSKLAD_MAX_RETRIES"); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			return envError("MOYSKLAD_MAX_RETRIES", err)
		}
		c.Retry.MaxRetries = &n
	}
	if val := os.Getenv("MOYSKLAD_RATE_LIMIT"); val != "" {
		rps, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return envError("MOYSKLAD_RATE_LIMIT", err)
		}
		c.Retry.RateLimit = rps
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = strings.ToLower(val)
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = strings.ToLower(val)
	}
	if val := os.Getenv("LOG_SOURCE"); val != "" {
		c.Log.AddSource = val == "1" || strings.ToLower(val) == "true"
	}
	return nil
}

func envError(key string, err error) error {
	return &skladerrors.ConfigError{
		Key:    key,
		Reason: fmt.Sprintf("invalid value: %v", err),
		Cause:  err,
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []string

	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		errs = append(errs, fmt.Sprintf("base_url must be an absolute http(s) URL, got %q", c.BaseURL))
	}

	if c.HTTP.Timeout <= 0 {
		errs = append(errs, fmt.Sprintf("http.timeout must be positive, got %v", c.HTTP.Timeout))
	}
	if c.HTTP.ConnectTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("http.connect_timeout must be positive, got %v", c.HTTP.ConnectTimeout))
	}

	if c.Retry.MaxRetries != nil && *c.Retry.MaxRetries < 0 {
		errs = append(errs, fmt.Sprintf("retry.max_retries must be >= 0, got %d", *c.Retry.MaxRetries))
	}
	if c.Retry.RequestDelay != nil && *c.Retry.RequestDelay < 0 {
		errs = append(errs, fmt.Sprintf("retry.request_delay must be >= 0, got %v", *c.Retry.RequestDelay))
	}
	if c.Retry.RateLimit < 0 {
		errs = append(errs, fmt.Sprintf("retry.rate_limit must be >= 0, got %v", c.Retry.RateLimit))
	}

	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level must be one of [trace, debug, info, warn, error], got %q", c.Log.Level))
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Log.Format] {
		errs = append(errs, fmt.Sprintf("log.format must be one of [json, text], got %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// HTTPTransportConfig converts the HTTP section into a transport config.
func (c *Config) HTTPTransportConfig() transport.HTTPConfig {
	cfg := transport.DefaultHTTPConfig()
	cfg.Timeout = c.HTTP.Timeout
	cfg.ConnectTimeout = c.HTTP.ConnectTimeout
	cfg.InsecureSkipVerify = c.HTTP.InsecureSkipVerify
	if c.HTTP.UserAgent != "" {
		cfg.UserAgent = c.HTTP.UserAgent
	}
	return cfg
}

// ClientOptions returns the moysklad options derived from the configuration.
// The caller adds the transport and logger.
func (c *Config) ClientOptions() []moysklad.Option {
	opts := []moysklad.Option{
		moysklad.WithBaseURL(c.BaseURL),
		moysklad.WithHTTPConfig(c.HTTPTransportConfig()),
	}
	if c.Retry.MaxRetries != nil {
		opts = append(opts, moysklad.WithMaxRetries(*c.Retry.MaxRetries))
	}
	if c.Retry.RequestDelay != nil {
		opts = append(opts, moysklad.WithRequestDelay(*c.Retry.RequestDelay))
	}
	if limiter := transport.NewTokenBucket(c.Retry.RateLimit); limiter != nil {
		opts = append(opts, moysklad.WithRateLimiter(limiter))
	}
	return opts
}

// Save writes the configuration to path atomically. The password is never
// written; it belongs in the keychain.
func Save(path string, c *Config) error {
	path, err := expandHome(path)
	if err != nil {
		return err
	}

	out := *c
	out.Password = ""
	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Chmod(tempPath, 0600); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}
