// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"os"
	"strconv"
	"time"

	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/constants"
)

// Config holds the NATS connection settings. An empty URL disables publishing.
type Config struct {
	URL           string        `yaml:"url"`
	Timeout       time.Duration `yaml:"timeout"`
	MaxReconnect  int           `yaml:"max_reconnect"`
	ReconnectWait time.Duration `yaml:"reconnect_wait"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Timeout:       10 * time.Second,
		MaxReconnect:  3,
		ReconnectWait: 2 * time.Second,
	}
}

// Enabled reports whether a server URL is configured
func (c Config) Enabled() bool {
	return c.URL != ""
}

// ApplyEnv overrides fields with the NATS_* variables that are set
func (c *Config) ApplyEnv() {
	if natsURL := os.Getenv(constants.EnvNATSURL); natsURL != "" {
		c.URL = natsURL
	}

	if timeoutStr := os.Getenv("NATS_TIMEOUT"); timeoutStr != "" {
		if timeout, err := time.ParseDuration(timeoutStr); err == nil {
			c.Timeout = timeout
		}
	}

	if maxReconnectStr := os.Getenv("NATS_MAX_RECONNECT"); maxReconnectStr != "" {
		if maxReconnect, err := strconv.Atoi(maxReconnectStr); err == nil {
			c.MaxReconnect = maxReconnect
		}
	}

	if waitStr := os.Getenv("NATS_RECONNECT_WAIT"); waitStr != "" {
		if wait, err := time.ParseDuration(waitStr); err == nil {
			c.ReconnectWait = wait
		}
	}
}
