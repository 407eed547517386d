// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// ContextKey is the unified type for all context keys to prevent type mismatches
type ContextKey string

// Context keys for various middleware and service contexts
const (
	// RequestIDContextKey is the context key for request ID
	RequestIDContextKey ContextKey = "request-id"

	// NotionWebhookBodyContextKey holds the raw webhook body captured before parsing
	NotionWebhookBodyContextKey ContextKey = "notion-webhook-body"
)
