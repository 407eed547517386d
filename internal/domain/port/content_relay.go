// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-content-relay/internal/domain/model"
)

// ContentRelay handles one inbound Notion webhook request
type ContentRelay interface {
	Handle(ctx context.Context, body []byte, signature string) (*model.RelayResponse, error)
}
