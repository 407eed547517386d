// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-content-relay/internal/domain/model"
)

// MessagePublisher announces relay outcomes to downstream consumers
type MessagePublisher interface {
	// ItemUpserted publishes a notification once a page reached the collection
	ItemUpserted(ctx context.Context, event model.ItemUpsertedEvent) error

	IsReady(ctx context.Context) error
}
