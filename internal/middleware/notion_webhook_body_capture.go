// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/constants"
)

// NotionWebhookBodyCaptureMiddleware captures the raw request body before anything parses it.
// Signature validation needs the exact bytes that were signed.
func NotionWebhookBodyCaptureMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == constants.NotionWebhookPath {
				r.Body = http.MaxBytesReader(w, r.Body, constants.MaxWebhookBodyBytes)

				body, err := io.ReadAll(r.Body)
				if err != nil {
					var maxBytesErr *http.MaxBytesError
					if errors.As(err, &maxBytesErr) {
						http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
						return
					}
					http.Error(w, "Failed to read request body", http.StatusBadRequest)
					return
				}

				// handlers downstream may still read the body
				r.Body = io.NopCloser(bytes.NewReader(body))

				ctx := context.WithValue(r.Context(), constants.NotionWebhookBodyContextKey, body)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// NotionWebhookBody returns the body captured by NotionWebhookBodyCaptureMiddleware
func NotionWebhookBody(ctx context.Context) ([]byte, bool) {
	body, ok := ctx.Value(constants.NotionWebhookBodyContextKey).([]byte)
	return body, ok
}
