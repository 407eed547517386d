// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package webflow

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/httpclient"
)

// MapHTTPError maps httpclient errors to domain errors with proper context logging
func MapHTTPError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var statusErr *httpclient.StatusError
	if stderrors.As(err, &statusErr) {
		slog.WarnContext(ctx, "Webflow HTTP error occurred",
			"status_code", statusErr.StatusCode,
			"message", statusErr.Message,
		)

		switch statusErr.StatusCode {
		case http.StatusNotFound:
			return errors.NewNotFound("resource not found in Webflow", err)
		case http.StatusConflict:
			return errors.NewConflict("item already exists in Webflow", err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return errors.NewBadGateway("Webflow rejected the API token", err)
		case http.StatusTooManyRequests:
			return errors.NewServiceUnavailable("Webflow rate limited", err)
		case http.StatusBadRequest:
			return errors.NewValidation(fmt.Sprintf("Webflow validation error: %s", statusErr.Message), err)
		case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return errors.NewServiceUnavailable("Webflow service unavailable", err)
		default:
			slog.ErrorContext(ctx, "Unexpected Webflow HTTP status code",
				"status_code", statusErr.StatusCode,
				"message", statusErr.Message,
			)
			return errors.NewUnexpected("Webflow API error", err)
		}
	}

	slog.ErrorContext(ctx, "Webflow request failed with non-HTTP error",
		"error", err.Error(),
	)
	return errors.NewBadGateway(constants.UpstreamRequestFailedMessage, err)
}

// isStatusError reports whether err carries an HTTP response.
func isStatusError(err error) bool {
	var statusErr *httpclient.StatusError
	return stderrors.As(err, &statusErr)
}
