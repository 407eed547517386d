// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/linuxfoundation/lfx-v2-content-relay/internal/config"
	"github.com/linuxfoundation/lfx-v2-content-relay/internal/domain/port"
	infrastructure "github.com/linuxfoundation/lfx-v2-content-relay/internal/infrastructure/mock"
	"github.com/linuxfoundation/lfx-v2-content-relay/internal/infrastructure/nats"
	"github.com/linuxfoundation/lfx-v2-content-relay/internal/infrastructure/notion"
	"github.com/linuxfoundation/lfx-v2-content-relay/internal/infrastructure/webflow"
	relayservice "github.com/linuxfoundation/lfx-v2-content-relay/internal/service"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/metrics"
)

// Dependencies holds everything the HTTP layer serves from
type Dependencies struct {
	Relay      port.ContentRelay
	Collection port.CollectionItemWriter
	Publisher  port.MessagePublisher
	Gatherer   prometheus.Gatherer

	natsClient *nats.NATSClient
}

// NewDependencies builds the relay and its collaborators from cfg.
// Collectors are registered with reg, which also serves /metrics.
func NewDependencies(ctx context.Context, cfg config.Config, reg *prometheus.Registry) (*Dependencies, error) {
	m := metrics.New(reg)

	collection, err := CollectionWriter(ctx, cfg.Webflow, m)
	if err != nil {
		return nil, err
	}

	publisher, natsClient, err := MessagePublisher(ctx, cfg.NATS)
	if err != nil {
		return nil, err
	}

	relay := relayservice.NewContentRelay(
		relayservice.WithWebhookValidator(notion.NewWebhookValidator(cfg.VerificationSecret)),
		relayservice.WithCollectionWriter(collection),
		relayservice.WithPublisher(publisher),
		relayservice.WithMetrics(m),
		relayservice.WithDownstreamMode(cfg.DownstreamMode),
	)

	slog.InfoContext(ctx, "content relay initialized",
		"downstream_mode", cfg.DownstreamMode,
		"events_enabled", cfg.NATS.Enabled(),
		"mock_collection", cfg.Webflow.MockMode,
	)

	return &Dependencies{
		Relay:      relay,
		Collection: collection,
		Publisher:  publisher,
		Gatherer:   reg,
		natsClient: natsClient,
	}, nil
}

// Close releases the NATS connection, if any
func (d *Dependencies) Close() error {
	if d.natsClient == nil {
		return nil
	}
	return d.natsClient.Close()
}

// CollectionWriter initializes the Webflow collection client, or the in-memory
// collection in mock mode
func CollectionWriter(ctx context.Context, cfg webflow.Config, m *metrics.Metrics) (port.CollectionItemWriter, error) {
	if cfg.MockMode {
		slog.WarnContext(ctx, "initializing mock collection, items are kept in memory")
		return infrastructure.NewMockCollection(), nil
	}

	slog.InfoContext(ctx, "initializing Webflow collection client")
	client, err := webflow.NewClient(cfg, m)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Webflow client: %w", err)
	}
	return client, nil
}

// MessagePublisher initializes the NATS publisher when a URL is configured
func MessagePublisher(ctx context.Context, cfg nats.Config) (port.MessagePublisher, *nats.NATSClient, error) {
	if !cfg.Enabled() {
		slog.InfoContext(ctx, "NATS_URL not set, item events are not published")
		return nats.NewDisabledPublisher(), nil, nil
	}

	client, err := nats.NewClient(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create NATS client: %w", err)
	}
	return nats.NewMessagePublisher(client), client, nil
}
