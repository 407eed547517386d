// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	lfxerrors "github.com/linuxfoundation/lfx-v2-content-relay/pkg/errors"
)

// wrapError maps a domain error to the status and plain-text body answered to the caller
func wrapError(ctx context.Context, err error) (int, string) {
	var (
		validation   lfxerrors.Validation
		unauthorized lfxerrors.Unauthorized
		badGateway   lfxerrors.BadGateway
		unavailable  lfxerrors.ServiceUnavailable
	)

	switch {
	case errors.As(err, &validation):
		slog.WarnContext(ctx, "request rejected", "error", err)
		return http.StatusBadRequest, validation.Message()
	case errors.As(err, &unauthorized):
		slog.WarnContext(ctx, "request rejected", "error", err)
		return http.StatusUnauthorized, unauthorized.Message()
	case errors.As(err, &badGateway):
		slog.ErrorContext(ctx, "request failed", "error", err)
		return http.StatusBadGateway, badGateway.Message()
	case errors.As(err, &unavailable):
		slog.ErrorContext(ctx, "request failed", "error", err)
		return http.StatusServiceUnavailable, unavailable.Message()
	default:
		slog.ErrorContext(ctx, "request failed", "error", err)
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status, message := wrapError(ctx, err)
	http.Error(w, message, status)
}
