// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errItemNotVisible = errors.New("item not visible yet")

func fastRetryConfig(attempts int) RetryConfig {
	return NewRetryConfig(attempts, time.Millisecond, 5*time.Millisecond)
}

func TestNewRetryConfig(t *testing.T) {
	config := NewRetryConfig(3, 250*time.Millisecond, 2*time.Second)

	assert.Equal(t, 3, config.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, config.BaseDelay)
	assert.Equal(t, 2*time.Second, config.MaxDelay)
	assert.Nil(t, config.ShouldRetry)
}

func TestRetryWithExponentialBackoff(t *testing.T) {
	tests := []struct {
		name          string
		attempts      int
		failuresFirst int
		expectErr     bool
		expectCalls   int
	}{
		{"succeeds first time", 3, 0, false, 1},
		{"succeeds on last attempt", 3, 2, false, 3},
		{"exhausts attempts", 3, 5, true, 3},
		{"single attempt failing", 1, 1, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryWithExponentialBackoff(context.Background(), fastRetryConfig(tt.attempts), func() error {
				calls++
				if calls <= tt.failuresFirst {
					return errItemNotVisible
				}
				return nil
			})

			assert.Equal(t, tt.expectCalls, calls)
			if tt.expectErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errItemNotVisible)
				assert.Contains(t, err.Error(), "failed after")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRetryWithExponentialBackoff_ShouldRetryStops(t *testing.T) {
	permanent := errors.New("permanent")
	config := fastRetryConfig(5)
	config.ShouldRetry = func(err error) bool {
		return errors.Is(err, errItemNotVisible)
	}

	calls := 0
	err := RetryWithExponentialBackoff(context.Background(), config, func() error {
		calls++
		if calls == 1 {
			return errItemNotVisible
		}
		return permanent
	})

	assert.Equal(t, 2, calls)
	assert.Same(t, permanent, err)
}

func TestRetryWithExponentialBackoff_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	config := NewRetryConfig(3, time.Second, time.Second)

	calls := 0
	err := RetryWithExponentialBackoff(ctx, config, func() error {
		calls++
		cancel()
		return errItemNotVisible
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
