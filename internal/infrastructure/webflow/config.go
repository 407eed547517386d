// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package webflow

import (
	"os"
	"strconv"
	"time"
)

// Config holds the configuration for the Webflow collection client
type Config struct {
	// BaseURL is the Webflow API base URL
	BaseURL string `yaml:"base_url"`

	// APIToken is the bearer credential for the collection API
	APIToken string `yaml:"api_token"`

	// CollectionID is the collection that receives the items
	CollectionID string `yaml:"collection_id"`

	// Timeout is the HTTP client timeout for requests
	Timeout time.Duration `yaml:"timeout"`

	// MaxRetries is the number of transport retries; zero disables them
	MaxRetries int `yaml:"max_retries"`

	// RetryDelay is the delay between retry attempts
	RetryDelay time.Duration `yaml:"retry_delay"`

	// MockMode swaps the API for an in-memory collection
	MockMode bool `yaml:"mock_mode"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		BaseURL:    "https://api.webflow.com",
		Timeout:    30 * time.Second,
		MaxRetries: 0,
		RetryDelay: 1 * time.Second,
	}
}

// ApplyEnv overrides fields with the WEBFLOW_* variables that are set
func (c *Config) ApplyEnv() {
	if baseURL := os.Getenv("WEBFLOW_BASE_URL"); baseURL != "" {
		c.BaseURL = baseURL
	}

	if token := os.Getenv("WEBFLOW_API_TOKEN"); token != "" {
		c.APIToken = token
	}

	if collectionID := os.Getenv("WEBFLOW_COLLECTION_ID"); collectionID != "" {
		c.CollectionID = collectionID
	}

	if timeoutStr := os.Getenv("WEBFLOW_TIMEOUT"); timeoutStr != "" {
		if timeout, err := time.ParseDuration(timeoutStr); err == nil {
			c.Timeout = timeout
		}
	}

	if retriesStr := os.Getenv("WEBFLOW_MAX_RETRIES"); retriesStr != "" {
		if retries, err := strconv.Atoi(retriesStr); err == nil {
			c.MaxRetries = retries
		}
	}

	if delayStr := os.Getenv("WEBFLOW_RETRY_DELAY"); delayStr != "" {
		if delay, err := time.ParseDuration(delayStr); err == nil {
			c.RetryDelay = delay
		}
	}

	if mockStr := os.Getenv("WEBFLOW_MOCK_MODE"); mockStr != "" {
		if mock, err := strconv.ParseBool(mockStr); err == nil {
			c.MockMode = mock
		}
	}
}
