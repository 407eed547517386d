// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"log/slog"
	"sync"

	"github.com/linuxfoundation/lfx-v2-content-relay/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-content-relay/internal/domain/port"
)

// MockMessagePublisher records published events
type MockMessagePublisher struct {
	mu     sync.Mutex
	events []model.ItemUpsertedEvent
	err    error
}

// Ensure MockMessagePublisher implements the MessagePublisher interface
var _ port.MessagePublisher = (*MockMessagePublisher)(nil)

// NewMockMessagePublisher creates a new mock publisher for testing
func NewMockMessagePublisher() *MockMessagePublisher {
	return &MockMessagePublisher{}
}

// NewMockMessagePublisherWithError creates a publisher that always fails with err
func NewMockMessagePublisherWithError(err error) *MockMessagePublisher {
	return &MockMessagePublisher{err: err}
}

// ItemUpserted records the event (mock implementation)
func (m *MockMessagePublisher) ItemUpserted(ctx context.Context, event model.ItemUpsertedEvent) error {
	if m.err != nil {
		return m.err
	}

	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()

	slog.InfoContext(ctx, "mock item upserted message published",
		"page_id", event.PageID,
		"action", event.Action,
	)
	return nil
}

// IsReady always succeeds
func (m *MockMessagePublisher) IsReady(context.Context) error {
	return nil
}

// Events returns the recorded events
func (m *MockMessagePublisher) Events() []model.ItemUpsertedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.ItemUpsertedEvent(nil), m.events...)
}
