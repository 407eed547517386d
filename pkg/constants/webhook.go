// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// Webhook header
const (
	WebhookSignatureHeader = "x-notion-signature"

	// WebhookSignaturePrefix precedes the hex encoded HMAC-SHA256 digest
	WebhookSignaturePrefix = "sha256="
)

// Webhook response bodies
const (
	VerificationTokenMismatchMessage = "Verification token mismatch"
	InvalidSignatureMessage          = "Invalid signature"
	MalformedPayloadMessage          = "Malformed payload"
	UpstreamRequestFailedMessage     = "Upstream request failed"
)

// Notion page property names read from the event payload
const (
	PropertyTitle = "Name"
	PropertySlug  = "Slug"
)

// Downstream failure reporting modes
const (
	// DownstreamModeStrict reports a non-2xx collection response as 502
	DownstreamModeStrict = "strict"
	// DownstreamModeForward always answers 200 and forwards the collection body
	DownstreamModeForward = "forward"
)
