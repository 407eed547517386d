// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package config assembles the relay configuration from an optional YAML file
// and the environment. Environment variables win over the file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/linuxfoundation/lfx-v2-content-relay/internal/infrastructure/nats"
	"github.com/linuxfoundation/lfx-v2-content-relay/internal/infrastructure/webflow"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/errors"
)

// Config is everything the relay needs at startup
type Config struct {
	// VerificationSecret authenticates inbound webhooks
	VerificationSecret string `yaml:"verification_secret"`

	Port           string         `yaml:"port"`
	DownstreamMode string         `yaml:"downstream_mode"`
	Webflow        webflow.Config `yaml:"webflow"`
	NATS           nats.Config    `yaml:"nats"`
}

// Default returns a Config with every optional setting at its default
func Default() Config {
	return Config{
		Port:           constants.DefaultPort,
		DownstreamMode: constants.DownstreamModeStrict,
		Webflow:        webflow.DefaultConfig(),
		NATS:           nats.DefaultConfig(),
	}
}

// Load reads RELAY_CONFIG_FILE when set, applies the environment on top
// and validates the result.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv(constants.EnvConfigFile); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if secret := os.Getenv(constants.EnvNotionWebhookSecret); secret != "" {
		c.VerificationSecret = secret
	}
	if port := os.Getenv(constants.EnvPort); port != "" {
		c.Port = port
	}
	if mode := os.Getenv(constants.EnvDownstreamMode); mode != "" {
		c.DownstreamMode = mode
	}

	c.Webflow.ApplyEnv()
	c.NATS.ApplyEnv()
}

// Validate rejects configurations the relay cannot run with
func (c Config) Validate() error {
	if c.VerificationSecret == "" {
		return errors.NewValidation(constants.EnvNotionWebhookSecret + " is required")
	}

	if !c.Webflow.MockMode {
		if c.Webflow.APIToken == "" {
			return errors.NewValidation("WEBFLOW_API_TOKEN is required")
		}
		if c.Webflow.CollectionID == "" {
			return errors.NewValidation("WEBFLOW_COLLECTION_ID is required")
		}
	}

	switch c.DownstreamMode {
	case constants.DownstreamModeStrict, constants.DownstreamModeForward:
	default:
		return errors.NewValidation(fmt.Sprintf("invalid %s %q, expected %q or %q",
			constants.EnvDownstreamMode, c.DownstreamMode,
			constants.DownstreamModeStrict, constants.DownstreamModeForward))
	}

	return nil
}
