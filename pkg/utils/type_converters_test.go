// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringPtr(t *testing.T) {
	p := StringPtr("hello")
	if assert.NotNil(t, p) {
		assert.Equal(t, "hello", *p)
	}

	q := StringPtr("hello")
	assert.NotSame(t, p, q, "each call returns a fresh pointer")
}

func TestStringValue(t *testing.T) {
	tests := []struct {
		name     string
		input    *string
		expected string
	}{
		{"nil pointer returns empty", nil, ""},
		{"empty string", StringPtr(""), ""},
		{"value", StringPtr("slug"), "slug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StringValue(tt.input))
		})
	}
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(nil))
	assert.True(t, IsBlank(StringPtr("")))
	assert.False(t, IsBlank(StringPtr(" ")))
	assert.False(t, IsBlank(StringPtr("title")))
}
