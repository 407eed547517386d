// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package constants defines global constants used throughout the content relay service.
package constants

// Service constants
const (
	// ServiceName is the name of this service
	ServiceName = "content-relay"
)

// Environment variables
const (
	// EnvNATSURL is the environment variable for NATS server URL
	EnvNATSURL = "NATS_URL"
	// EnvNotionWebhookSecret is the environment variable for the webhook verification secret
	EnvNotionWebhookSecret = "NOTION_WEBHOOK_SECRET"
	// EnvPort is the environment variable for the HTTP listen port
	EnvPort = "PORT"
	// EnvConfigFile points at an optional YAML file overlaying the environment
	EnvConfigFile = "RELAY_CONFIG_FILE"
	// EnvDownstreamMode selects how downstream failures are reported to the caller
	EnvDownstreamMode = "RELAY_DOWNSTREAM_MODE"
)

// Defaults
const (
	// DefaultPort is the HTTP listen port when PORT is unset
	DefaultPort = "8080"
)
