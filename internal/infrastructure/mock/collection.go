// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/linuxfoundation/lfx-v2-content-relay/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-content-relay/internal/domain/port"
)

// CollectionCall records one UpsertItem invocation
type CollectionCall struct {
	FieldData model.ItemFieldData
	Result    *model.UpsertResult
}

type simulatedResponse struct {
	statusCode int
	body       any
}

// MockCollection is an in-memory collection keyed by slug
type MockCollection struct {
	mu        sync.Mutex
	items     map[string]model.ItemFieldData
	ids       map[string]string
	nextID    int
	calls     []CollectionCall
	responses map[string]simulatedResponse
	err       error
}

// Ensure MockCollection implements the CollectionItemWriter interface
var _ port.CollectionItemWriter = (*MockCollection)(nil)

// NewMockCollection creates an empty in-memory collection
func NewMockCollection() *MockCollection {
	return &MockCollection{
		items:     make(map[string]model.ItemFieldData),
		ids:       make(map[string]string),
		responses: make(map[string]simulatedResponse),
	}
}

// UpsertItem updates the item stored under the slug or creates it
func (m *MockCollection) UpsertItem(ctx context.Context, fieldData model.ItemFieldData) (*model.UpsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}

	slug := fieldData.SlugValue()

	result := &model.UpsertResult{Action: model.UpsertActionCreated}
	id, exists := m.ids[slug]
	if exists {
		result.Action = model.UpsertActionUpdated
		result.ItemID = id
	}

	if simulated, ok := m.responses[slug]; ok {
		result.StatusCode = simulated.statusCode
		result.Body = simulated.body
	} else {
		if !exists {
			m.nextID++
			result.ItemID = fmt.Sprintf("mock-item-%d", m.nextID)
			m.ids[slug] = result.ItemID
		}
		m.items[slug] = fieldData
		result.StatusCode = http.StatusOK
		result.Body = map[string]any{
			"id":        result.ItemID,
			"fieldData": fieldData,
		}
	}

	m.calls = append(m.calls, CollectionCall{FieldData: fieldData, Result: result})

	slog.InfoContext(ctx, "mock collection item upserted",
		"slug", slug,
		"action", result.Action,
		"item_id", result.ItemID,
	)

	return result, nil
}

// IsReady always succeeds
func (m *MockCollection) IsReady(context.Context) error {
	return nil
}

// SetResponseForSlug makes upserts of slug answer with the given status and body
func (m *MockCollection) SetResponseForSlug(slug string, statusCode int, body any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[slug] = simulatedResponse{statusCode: statusCode, body: body}
}

// SetError makes every upsert fail with err, as a transport failure would
func (m *MockCollection) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Item returns the stored field data for slug
func (m *MockCollection) Item(slug string) (model.ItemFieldData, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[slug]
	return item, ok
}

// Calls returns the recorded upserts
func (m *MockCollection) Calls() []CollectionCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CollectionCall(nil), m.calls...)
}
