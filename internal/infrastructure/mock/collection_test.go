// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-content-relay/internal/domain/model"
	pkgerrors "github.com/linuxfoundation/lfx-v2-content-relay/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/utils"
)

func TestMockCollection(t *testing.T) {
	ctx := context.Background()
	fieldData := model.ItemFieldData{Name: utils.StringPtr("Hello"), Slug: utils.StringPtr("hello")}

	t.Run("create then update", func(t *testing.T) {
		collection := NewMockCollection()

		created, err := collection.UpsertItem(ctx, fieldData)
		require.NoError(t, err)
		assert.Equal(t, model.UpsertActionCreated, created.Action)
		assert.Equal(t, http.StatusOK, created.StatusCode)

		fieldData.Content = utils.StringPtr("updated")
		updated, err := collection.UpsertItem(ctx, fieldData)
		require.NoError(t, err)
		assert.Equal(t, model.UpsertActionUpdated, updated.Action)
		assert.Equal(t, created.ItemID, updated.ItemID)

		stored, ok := collection.Item("hello")
		require.True(t, ok)
		assert.Equal(t, "updated", utils.StringValue(stored.Content))
		assert.Len(t, collection.Calls(), 2)
	})

	t.Run("simulated rejection", func(t *testing.T) {
		collection := NewMockCollection()
		collection.SetResponseForSlug("hello", http.StatusBadRequest, map[string]any{"message": "bad"})

		result, err := collection.UpsertItem(ctx, fieldData)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, result.StatusCode)
		assert.False(t, result.Succeeded())

		_, stored := collection.Item("hello")
		assert.False(t, stored)

		again, err := collection.UpsertItem(ctx, fieldData)
		require.NoError(t, err)
		assert.Equal(t, model.UpsertActionCreated, again.Action, "a rejected write leaves no item behind")
		assert.Empty(t, again.ItemID)
	})

	t.Run("simulated transport failure", func(t *testing.T) {
		collection := NewMockCollection()
		expectedErr := pkgerrors.NewBadGateway("Upstream request failed")
		collection.SetError(expectedErr)

		_, err := collection.UpsertItem(ctx, fieldData)
		require.Error(t, err)
		assert.True(t, errors.Is(err, expectedErr))
	})
}

func TestMockMessagePublisher(t *testing.T) {
	ctx := context.Background()

	publisher := NewMockMessagePublisher()
	require.NoError(t, publisher.ItemUpserted(ctx, model.ItemUpsertedEvent{PageID: "p1"}))
	assert.Len(t, publisher.Events(), 1)

	failing := NewMockMessagePublisherWithError(errors.New("nats down"))
	assert.Error(t, failing.ItemUpserted(ctx, model.ItemUpsertedEvent{PageID: "p1"}))
	assert.Empty(t, failing.Events())
}
