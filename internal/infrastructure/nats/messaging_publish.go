// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/linuxfoundation/lfx-v2-content-relay/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-content-relay/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-content-relay/internal/middleware"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/errors"
)

// messagingPublisher implements the MessagePublisher interface using NATS
type messagingPublisher struct {
	client *NATSClient
}

// ItemUpserted announces that a page reached the collection
func (m *messagingPublisher) ItemUpserted(ctx context.Context, event model.ItemUpsertedEvent) error {
	return m.publish(ctx, constants.ItemUpsertedSubject, event)
}

// IsReady delegates to the underlying connection
func (m *messagingPublisher) IsReady(ctx context.Context) error {
	return m.client.IsReady(ctx)
}

func (m *messagingPublisher) publish(ctx context.Context, subject string, message any) error {
	if err := m.client.IsReady(ctx); err != nil {
		slog.ErrorContext(ctx, "NATS client is not ready for publishing",
			"error", err,
			"subject", subject,
		)
		return errors.NewServiceUnavailable("NATS client is not ready", err)
	}

	data, err := json.Marshal(message)
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal message to JSON",
			"error", err,
			"subject", subject,
		)
		return errors.NewUnexpected("failed to marshal message", err)
	}

	if err := m.client.conn.PublishMsg(newMessage(ctx, subject, data)); err != nil {
		slog.ErrorContext(ctx, "failed to publish message to NATS",
			"error", err,
			"subject", subject,
		)
		return errors.NewServiceUnavailable("failed to publish message", err)
	}

	if m.client.timeout <= 0 {
		return nil
	}
	if err := m.client.conn.FlushTimeout(m.client.timeout); err != nil {
		slog.WarnContext(ctx, "NATS flush did not complete after publish",
			"error", err,
			"subject", subject,
		)
	}

	slog.DebugContext(ctx, "message published successfully",
		"subject", subject,
		"message_size", len(data),
	)

	return nil
}

// newMessage builds the message for subject, carrying the request id when the context has one
func newMessage(ctx context.Context, subject string, data []byte) *nats.Msg {
	msg := nats.NewMsg(subject)
	msg.Data = data
	if requestID := middleware.RequestID(ctx); requestID != "" {
		msg.Header.Set(constants.RequestIDHeader, requestID)
	}
	return msg
}

// NewMessagePublisher creates a new MessagePublisher using NATS
func NewMessagePublisher(client *NATSClient) port.MessagePublisher {
	return &messagingPublisher{
		client: client,
	}
}

// disabledPublisher is used when no NATS URL is configured
type disabledPublisher struct{}

func (disabledPublisher) ItemUpserted(ctx context.Context, event model.ItemUpsertedEvent) error {
	slog.DebugContext(ctx, "event publishing disabled, dropping item upserted event",
		"page_id", event.PageID,
		"slug", event.Slug,
	)
	return nil
}

func (disabledPublisher) IsReady(context.Context) error {
	return nil
}

// NewDisabledPublisher returns a MessagePublisher that drops every event
func NewDisabledPublisher() port.MessagePublisher {
	return disabledPublisher{}
}
