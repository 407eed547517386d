// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/linuxfoundation/lfx-v2-content-relay/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-content-relay/internal/middleware"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/constants"
	lfxerrors "github.com/linuxfoundation/lfx-v2-content-relay/pkg/errors"
)

// WebhookHandler serves POST /webhooks/notion
type WebhookHandler struct {
	relay port.ContentRelay
}

// NewWebhookHandler creates the webhook endpoint handler
func NewWebhookHandler(relay port.ContentRelay) *WebhookHandler {
	return &WebhookHandler{relay: relay}
}

func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, ok := middleware.NotionWebhookBody(ctx)
	if !ok {
		var err error
		body, err = io.ReadAll(http.MaxBytesReader(w, r.Body, constants.MaxWebhookBodyBytes))
		if err != nil {
			writeError(ctx, w, lfxerrors.NewValidation("Failed to read request body", err))
			return
		}
	}

	resp, err := h.relay.Handle(ctx, body, r.Header.Get(constants.WebhookSignatureHeader))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
	w.WriteHeader(resp.StatusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.ErrorContext(ctx, "failed to write webhook response", "error", err)
	}
}
