// Copyright 2025 Tessero
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

package ai

import (
	"os"
	"strings"
	"time"
)

// Environment variables consumed by FromEnv.
const (
	EnvAPIKey     = "GEMINI_API_KEY"
	EnvBaseURL    = "RAGDESK_BASE_URL"
	EnvTextModel  = "RAGDESK_TEXT_MODEL"
	EnvImageModel = "RAGDESK_IMAGE_MODEL"
)

// Config holds configuration for the remote generation service.
type Config struct {
	// APIKey authenticates every request. Required; a session cannot start
	// without it.
	APIKey string

	// BaseURL is the service endpoint.
	// Default: "https://generativelanguage.googleapis.com"
	BaseURL string

	// TextModel is the model identifier used for grounded text generation.
	// Default: "gemini-2.5-flash"
	TextModel string

	// ImageModel is the model identifier used for image generation.
	// Default: "imagen-3.0"
	ImageModel string

	// HTTPTimeout bounds each individual remote call. This is distinct from
	// the polling timeout, which bounds a whole wait.
	// Default: 2 minutes
	HTTPTimeout time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithAPIKey sets the API credential.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithBaseURL sets the service endpoint.
func WithBaseURL(url string) ConfigOption {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithTextModel sets the text generation model identifier.
func WithTextModel(model string) ConfigOption {
	return func(c *Config) {
		c.TextModel = model
	}
}

// WithImageModel sets the image generation model identifier.
func WithImageModel(model string) ConfigOption {
	return func(c *Config) {
		c.ImageModel = model
	}
}

// WithHTTPTimeout sets the per-call HTTP timeout.
func WithHTTPTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.HTTPTimeout = timeout
	}
}

// DefaultConfig returns a Config with defaults for the hosted service.
// The API key has no default and must be supplied.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:     "https://generativelanguage.googleapis.com",
		TextModel:   "gemini-2.5-flash",
		ImageModel:  "imagen-3.0",
		HTTPTimeout: 2 * time.Minute,
	}
}

// NewConfig creates a Config with default values and applies the provided
// options.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithAPIKey(key),
//	    ai.WithTextModel("gemini-2.5-pro"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// FromEnv creates a Config from the process environment, falling back to
// defaults for everything except the API key. Options are applied afterwards
// and take precedence over environment values.
func FromEnv(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	cfg.APIKey = os.Getenv(EnvAPIKey)
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvTextModel); v != "" {
		cfg.TextModel = v
	}
	if v := os.Getenv(EnvImageModel); v != "" {
		cfg.ImageModel = v
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
func (c *Config) Normalize() {
	c.BaseURL = strings.TrimSuffix(strings.TrimSpace(c.BaseURL), "/")
	c.APIKey = strings.TrimSpace(c.APIKey)
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 2 * time.Minute
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.BaseURL == "" {
		return ErrMissingBaseURL
	}
	if c.TextModel == "" {
		return ErrMissingTextModel
	}
	return nil
}
