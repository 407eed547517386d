// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnwrap(t *testing.T) {
	rootCause := errors.New("root cause error")

	validationErr := NewValidation("validation failed", rootCause)

	if validationErr.Unwrap() == nil {
		t.Error("Expected unwrapped error to not be nil")
	}

	if !errors.Is(validationErr, rootCause) {
		t.Error("errors.Is should find the root cause in the wrapped error")
	}

	simpleErr := NewValidation("simple error")
	if simpleErr.Unwrap() != nil {
		t.Error("Expected Unwrap to return nil for error with no wrapped cause")
	}
}

func TestUnwrapWithDifferentErrorTypes(t *testing.T) {
	rootCause := errors.New("connection reset by peer")

	testCases := []struct {
		name string
		err  error
	}{
		{"Validation", NewValidation("validation error", rootCause)},
		{"Unauthorized", NewUnauthorized("unauthorized error", rootCause)},
		{"NotFound", NewNotFound("not found error", rootCause)},
		{"Conflict", NewConflict("conflict error", rootCause)},
		{"Unexpected", NewUnexpected("unexpected error", rootCause)},
		{"ServiceUnavailable", NewServiceUnavailable("service unavailable", rootCause)},
		{"BadGateway", NewBadGateway("bad gateway", rootCause)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.err, rootCause)
			assert.Contains(t, tc.err.Error(), rootCause.Error())
		})
	}
}

func TestErrorMessages(t *testing.T) {
	t.Run("message without cause", func(t *testing.T) {
		err := NewUnauthorized("Invalid signature")
		assert.Equal(t, "Invalid signature", err.Error())
		assert.Equal(t, "Invalid signature", err.Message())
	})

	t.Run("message with cause keeps fixed message", func(t *testing.T) {
		err := NewBadGateway("Upstream request failed", io.ErrUnexpectedEOF)
		assert.Equal(t, "Upstream request failed: unexpected EOF", err.Error())
		assert.Equal(t, "Upstream request failed", err.Message())
	})
}

func TestErrorsAs(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), NewValidation("missing page id"))

	var validation Validation
	if assert.True(t, errors.As(wrapped, &validation)) {
		assert.Equal(t, "missing page id", validation.Message())
	}

	var unauthorized Unauthorized
	assert.False(t, errors.As(wrapped, &unauthorized))
}
