// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/linuxfoundation/lfx-v2-content-relay/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-content-relay/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/log"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/metrics"
)

// contentRelay verifies Notion page events and upserts them into the collection
type contentRelay struct {
	validator      port.NotionWebhookValidator
	collection     port.CollectionItemWriter
	publisher      port.MessagePublisher
	metrics        *metrics.Metrics
	downstreamMode string
	now            func() time.Time
}

type contentRelayOption func(*contentRelay)

// WithWebhookValidator sets the request authenticator
func WithWebhookValidator(validator port.NotionWebhookValidator) contentRelayOption {
	return func(r *contentRelay) {
		r.validator = validator
	}
}

// WithCollectionWriter sets the collection the items are written to
func WithCollectionWriter(collection port.CollectionItemWriter) contentRelayOption {
	return func(r *contentRelay) {
		r.collection = collection
	}
}

// WithPublisher sets the publisher notified after each successful upsert
func WithPublisher(publisher port.MessagePublisher) contentRelayOption {
	return func(r *contentRelay) {
		r.publisher = publisher
	}
}

// WithMetrics sets the collectors updated per request
func WithMetrics(m *metrics.Metrics) contentRelayOption {
	return func(r *contentRelay) {
		r.metrics = m
	}
}

// WithDownstreamMode selects how a non-2xx collection response is answered:
// DownstreamModeStrict answers 502, DownstreamModeForward answers 200.
func WithDownstreamMode(mode string) contentRelayOption {
	return func(r *contentRelay) {
		r.downstreamMode = mode
	}
}

// NewContentRelay creates the webhook relay
func NewContentRelay(opts ...contentRelayOption) port.ContentRelay {
	r := &contentRelay{
		downstreamMode: constants.DownstreamModeStrict,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Handle answers the subscription handshake or relays one signed page event.
// Errors carry the HTTP semantics of the failure (Unauthorized, Validation, BadGateway).
func (r *contentRelay) Handle(ctx context.Context, body []byte, signature string) (*model.RelayResponse, error) {
	if signature == "" {
		envelope, err := model.DecodeNotionWebhookEnvelope(body)
		if err == nil && envelope.IsHandshake() {
			return r.handshake(ctx, envelope)
		}
	}

	if err := r.validator.ValidateSignature(body, signature); err != nil {
		slog.WarnContext(ctx, "rejected webhook with invalid signature",
			"signature_present", signature != "",
		)
		r.metrics.WebhookHandled(metrics.OutcomeUnauthorized)
		return nil, err
	}

	envelope, err := model.DecodeNotionWebhookEnvelope(body)
	if err != nil {
		slog.WarnContext(ctx, "rejected malformed webhook body", "error", err)
		r.metrics.WebhookHandled(metrics.OutcomeMalformed)
		return nil, err
	}

	record := envelope.NormalizedRecord()
	if err := record.Validate(); err != nil {
		slog.WarnContext(ctx, "rejected incomplete page event",
			"page_id", record.ID,
			"error", err,
		)
		r.metrics.WebhookHandled(metrics.OutcomeMalformed)
		return nil, err
	}

	ctx = log.AppendCtx(ctx, slog.String("page_id", record.ID))
	ctx = log.AppendCtx(ctx, slog.String("slug", *record.Slug))

	slog.DebugContext(ctx, "relaying page event",
		"title", log.LogOptionalString(record.Title),
		"has_content", record.Content != nil,
	)

	result, err := r.collection.UpsertItem(ctx, record.FieldData())
	if err != nil {
		slog.ErrorContext(ctx, "collection request failed", "error", err)
		r.metrics.WebhookHandled(metrics.OutcomeUpstreamFailed)
		return nil, errors.NewBadGateway(constants.UpstreamRequestFailedMessage, err)
	}

	if !result.Succeeded() {
		return r.downstreamFailure(ctx, result), nil
	}

	slog.InfoContext(ctx, "page event relayed",
		"action", result.Action,
		"item_id", result.ItemID,
		"status_code", result.StatusCode,
	)
	r.metrics.WebhookHandled(metrics.OutcomeProcessed)

	r.publishItemUpserted(ctx, record, result)

	return &model.RelayResponse{
		StatusCode:      http.StatusOK,
		Success:         true,
		WebflowResponse: result.Body,
	}, nil
}

func (r *contentRelay) handshake(ctx context.Context, envelope *model.NotionWebhookEnvelope) (*model.RelayResponse, error) {
	if err := r.validator.ValidateVerificationToken(*envelope.VerificationToken); err != nil {
		slog.WarnContext(ctx, "rejected webhook subscription handshake")
		r.metrics.WebhookHandled(metrics.OutcomeUnauthorized)
		return nil, err
	}

	slog.InfoContext(ctx, "webhook subscription handshake accepted")
	r.metrics.WebhookHandled(metrics.OutcomeHandshake)

	return model.HandshakeAccepted(), nil
}

func (r *contentRelay) downstreamFailure(ctx context.Context, result *model.UpsertResult) *model.RelayResponse {
	slog.WarnContext(ctx, "collection rejected the item",
		"action", result.Action,
		"status_code", result.StatusCode,
		"downstream_mode", r.downstreamMode,
		"error", result.Err,
	)
	r.metrics.WebhookHandled(metrics.OutcomeDownstreamFailed)

	if r.downstreamMode == constants.DownstreamModeForward {
		return &model.RelayResponse{
			StatusCode:      http.StatusOK,
			Success:         true,
			WebflowResponse: result.Body,
		}
	}

	return &model.RelayResponse{
		StatusCode:      http.StatusBadGateway,
		Success:         false,
		WebflowResponse: result.Body,
	}
}

// publishItemUpserted is best effort: the item is already written
func (r *contentRelay) publishItemUpserted(ctx context.Context, record model.NormalizedRecord, result *model.UpsertResult) {
	if r.publisher == nil {
		return
	}

	event := model.ItemUpsertedEvent{
		PageID:     record.ID,
		Slug:       *record.Slug,
		ItemID:     result.ItemID,
		Action:     result.Action,
		StatusCode: result.StatusCode,
		OccurredAt: r.now().UTC(),
	}

	if err := r.publisher.ItemUpserted(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish item upserted event", "error", err)
	}
}
