// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// NATS subject constants for message publishing
const (
	// ItemUpsertedSubject announces a collection item created or updated from a page event
	ItemUpsertedSubject = "lfx.content_relay.item_upserted"
)
