// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import "net/http"

// RelayResponse is the JSON answer to a webhook request.
type RelayResponse struct {
	// StatusCode is the HTTP status to answer with
	StatusCode int `json:"-"`

	Success         bool `json:"success"`
	WebflowResponse any  `json:"webflowResponse,omitempty"`
}

// HandshakeAccepted is the answer to a valid verification request.
func HandshakeAccepted() *RelayResponse {
	return &RelayResponse{StatusCode: http.StatusOK, Success: true}
}
