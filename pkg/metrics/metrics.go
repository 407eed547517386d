// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "content_relay"

// Webhook outcomes
const (
	OutcomeHandshake        = "handshake"
	OutcomeProcessed        = "processed"
	OutcomeUnauthorized     = "unauthorized"
	OutcomeMalformed        = "malformed"
	OutcomeDownstreamFailed = "downstream_failed"
	OutcomeUpstreamFailed   = "upstream_failed"
)

// Metrics groups the relay collectors. A nil *Metrics records nothing.
type Metrics struct {
	webhookRequests    *prometheus.CounterVec
	upserts            *prometheus.CounterVec
	downstreamDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		webhookRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_requests_total",
			Help:      "Webhook requests handled, by outcome.",
		}, []string{"outcome"}),
		upserts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collection_upserts_total",
			Help:      "Collection item upserts, by action and response status.",
		}, []string{"action", "status"}),
		downstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "downstream_request_duration_seconds",
			Help:      "Duration of requests sent to the collection API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "status"}),
	}

	reg.MustRegister(m.webhookRequests, m.upserts, m.downstreamDuration)

	return m
}

// WebhookHandled counts one webhook request.
func (m *Metrics) WebhookHandled(outcome string) {
	if m == nil {
		return
	}
	m.webhookRequests.WithLabelValues(outcome).Inc()
}

// ItemUpserted counts one upsert.
func (m *Metrics) ItemUpserted(action string, statusCode int) {
	if m == nil {
		return
	}
	m.upserts.WithLabelValues(action, strconv.Itoa(statusCode)).Inc()
}

// DownstreamRequest records the duration of one outbound request.
// A statusCode of 0 means the request never got a response.
func (m *Metrics) DownstreamRequest(method string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	m.downstreamDuration.WithLabelValues(method, status).Observe(duration.Seconds())
}
