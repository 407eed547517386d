// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package notion authenticates webhook requests sent by Notion.
package notion

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-content-relay/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/errors"
)

// WebhookValidator handles validation of Notion webhook signatures
type WebhookValidator struct {
	secret []byte
}

// NewWebhookValidator creates a new Notion webhook validator
func NewWebhookValidator(secret string) port.NotionWebhookValidator {
	return &WebhookValidator{secret: []byte(secret)}
}

// Sign returns "sha256=" followed by the hex HMAC-SHA256 of body.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return constants.WebhookSignaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

// ValidateSignature validates the Notion HMAC-SHA256 signature.
// body must be the exact bytes received on the wire.
func (v *WebhookValidator) ValidateSignature(body []byte, signature string) error {
	if len(v.secret) == 0 {
		slog.Error("webhook secret not configured")
		return errors.NewUnauthorized(constants.InvalidSignatureMessage)
	}

	if signature == "" {
		return errors.NewUnauthorized(constants.InvalidSignatureMessage)
	}

	expected := []byte(Sign(body, string(v.secret)))
	provided := []byte(signature)

	if len(provided) != len(expected) || !hmac.Equal(provided, expected) {
		slog.Warn("invalid webhook signature")
		return errors.NewUnauthorized(constants.InvalidSignatureMessage)
	}

	return nil
}

// ValidateVerificationToken compares the handshake token with the secret.
func (v *WebhookValidator) ValidateVerificationToken(token string) error {
	if len(v.secret) == 0 || subtle.ConstantTimeCompare([]byte(token), v.secret) != 1 {
		slog.Warn("webhook verification token mismatch")
		return errors.NewUnauthorized(constants.VerificationTokenMismatchMessage)
	}
	return nil
}
