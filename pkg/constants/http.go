// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// HTTP header constants
const (
	// RequestIDHeader is the HTTP header name for request ID
	RequestIDHeader = "X-Request-Id"

	// ContentTypeHeader is the header name for the content type
	ContentTypeHeader = "Content-Type"

	// ContentTypeJSON is the JSON media type
	ContentTypeJSON = "application/json"
)

// HTTP routes
const (
	NotionWebhookPath = "/webhooks/notion"
	LivezPath         = "/livez"
	ReadyzPath        = "/readyz"
	MetricsPath       = "/metrics"
)

// MaxWebhookBodyBytes limits the captured webhook body size
const MaxWebhookBodyBytes = 10 * 1024 * 1024
