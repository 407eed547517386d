// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

// NotionWebhookValidator defines the contract for Notion webhook authentication
type NotionWebhookValidator interface {
	// ValidateSignature validates the webhook signature against the raw body
	ValidateSignature(body []byte, signature string) error

	// ValidateVerificationToken checks the token sent with the subscription handshake
	ValidateVerificationToken(token string) error
}
