// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import "time"

// ItemUpsertedEvent is published after a page event reached the collection.
type ItemUpsertedEvent struct {
	PageID     string       `json:"page_id"`
	Slug       string       `json:"slug"`
	ItemID     string       `json:"item_id,omitempty"`
	Action     UpsertAction `json:"action"`
	StatusCode int          `json:"status_code"`
	OccurredAt time.Time    `json:"occurred_at"`
}
