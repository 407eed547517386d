// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"encoding/json"
	"net/http"

	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/utils"
)

// ItemFieldData is the fieldData object of a collection item.
type ItemFieldData struct {
	Name    *string `json:"name,omitempty"`
	Slug    *string `json:"slug,omitempty"`
	Content *string `json:"content,omitempty"`
}

// SlugValue returns the slug or "" when absent.
func (f ItemFieldData) SlugValue() string {
	return utils.StringValue(f.Slug)
}

// ItemPayload is the body sent on create and update.
type ItemPayload struct {
	IsArchived bool          `json:"isArchived"`
	IsDraft    bool          `json:"isDraft"`
	FieldData  ItemFieldData `json:"fieldData"`
}

// NewPublishedItemPayload returns a live (not archived, not draft) payload.
func NewPublishedItemPayload(fieldData ItemFieldData) ItemPayload {
	return ItemPayload{
		IsArchived: false,
		IsDraft:    false,
		FieldData:  fieldData,
	}
}

// CollectionItem is a remote collection item. Older API responses use _id.
type CollectionItem struct {
	ID       string `json:"id,omitempty"`
	LegacyID string `json:"_id,omitempty"`
}

// ItemID returns _id when present, otherwise id.
func (i CollectionItem) ItemID() string {
	if i.LegacyID != "" {
		return i.LegacyID
	}
	return i.ID
}

// ListItemsResponse is the body of a collection items query.
type ListItemsResponse struct {
	Items []CollectionItem `json:"items"`
}

// UpsertAction tells whether an upsert created or updated the item.
type UpsertAction string

// Upsert actions
const (
	UpsertActionCreated UpsertAction = "created"
	UpsertActionUpdated UpsertAction = "updated"
	// UpsertActionNone means the slug lookup failed and nothing was written
	UpsertActionNone UpsertAction = "none"
)

// UpsertResult is the outcome of one upsert against the collection.
type UpsertResult struct {
	Action     UpsertAction
	ItemID     string
	StatusCode int
	// Body is the decoded JSON response, {} when it could not be decoded
	Body any
	// Err classifies a non-2xx answer, nil on success
	Err error
}

// Succeeded reports a 2xx response.
func (r *UpsertResult) Succeeded() bool {
	return r != nil && r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// DecodeResponseBody decodes a JSON response body, falling back to an empty
// object for empty, null or undecodable bodies.
func DecodeResponseBody(body []byte) any {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil || decoded == nil {
		return map[string]any{}
	}
	return decoded
}
