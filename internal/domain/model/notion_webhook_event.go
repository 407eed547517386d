// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"bytes"
	"encoding/json"

	"github.com/jomei/notionapi"

	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/errors"
)

// NotionWebhookEnvelope is the decoded body of a Notion page event or of the
// subscription verification request.
type NotionWebhookEnvelope struct {
	PageID            notionapi.PageID `json:"pageId"`
	Properties        *PageProperties  `json:"properties,omitempty"`
	VerificationToken *string          `json:"verification_token,omitempty"`
}

// PageProperties holds the page properties the relay reads.
type PageProperties struct {
	Name    *notionapi.TitleProperty    `json:"Name,omitempty"`
	Slug    *notionapi.RichTextProperty `json:"Slug,omitempty"`
	Content *notionapi.RichTextProperty `json:"Content,omitempty"`
}

// DecodeNotionWebhookEnvelope decodes a raw webhook body.
// Anything other than a JSON object is a Validation error.
func DecodeNotionWebhookEnvelope(body []byte) (*NotionWebhookEnvelope, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errors.NewValidation(constants.MalformedPayloadMessage + ": body is not a JSON object")
	}

	var envelope NotionWebhookEnvelope
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, errors.NewValidation(constants.MalformedPayloadMessage+": invalid JSON", err)
	}

	return &envelope, nil
}

// IsHandshake reports whether the body carries a verification_token.
func (e *NotionWebhookEnvelope) IsHandshake() bool {
	return e != nil && e.VerificationToken != nil
}

// NormalizedRecord derives the relay record. Missing properties leave the
// matching fields nil; validation happens separately.
func (e *NotionWebhookEnvelope) NormalizedRecord() NormalizedRecord {
	record := NormalizedRecord{ID: string(e.PageID)}
	if e.Properties == nil {
		return record
	}

	if e.Properties.Name != nil {
		record.Title = firstPlainText(e.Properties.Name.Title)
	}
	if e.Properties.Slug != nil {
		record.Slug = firstPlainText(e.Properties.Slug.RichText)
	}
	if e.Properties.Content != nil {
		record.Content = firstPlainText(e.Properties.Content.RichText)
	}

	return record
}

// firstPlainText returns the plain text of the first run, or nil when there is none.
func firstPlainText(runs []notionapi.RichText) *string {
	if len(runs) == 0 {
		return nil
	}
	text := runs[0].PlainText
	return &text
}
