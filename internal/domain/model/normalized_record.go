// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"fmt"

	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/utils"
)

// NormalizedRecord is the relay's view of one page event.
// Nil fields were absent from the payload.
type NormalizedRecord struct {
	ID      string
	Title   *string
	Slug    *string
	Content *string
}

// Validate rejects records the collection API cannot store: it needs the
// page id for tracing and both a name and a slug for the item.
func (r NormalizedRecord) Validate() error {
	switch {
	case r.ID == "":
		return errors.NewValidation(fmt.Sprintf("%s: missing pageId", constants.MalformedPayloadMessage))
	case utils.IsBlank(r.Title):
		return errors.NewValidation(fmt.Sprintf("%s: missing %s title", constants.MalformedPayloadMessage, constants.PropertyTitle))
	case utils.IsBlank(r.Slug):
		return errors.NewValidation(fmt.Sprintf("%s: missing %s", constants.MalformedPayloadMessage, constants.PropertySlug))
	}
	return nil
}

// FieldData maps the record onto collection item fields.
func (r NormalizedRecord) FieldData() ItemFieldData {
	return ItemFieldData{
		Name:    r.Title,
		Slug:    r.Slug,
		Content: r.Content,
	}
}
