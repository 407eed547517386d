// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-content-relay/internal/domain/model"
)

// CollectionItemWriter upserts items into the site collection, keyed by slug.
type CollectionItemWriter interface {
	// UpsertItem updates the item with the same slug, or creates one.
	// A non-2xx collection response is not an error: it is reported through
	// the result status and body. Transport failures are returned as errors.
	UpsertItem(ctx context.Context, fieldData model.ItemFieldData) (*model.UpsertResult, error)

	IsReady(ctx context.Context) error
}
