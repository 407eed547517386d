// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/linuxfoundation/lfx-v2-content-relay/internal/middleware"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/constants"
)

// NewRouter mounts the relay endpoints and wraps them with tracing
func NewRouter(deps *Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RequestLogMiddleware(constants.LivezPath, constants.ReadyzPath, constants.MetricsPath))
	r.Use(chimw.Recoverer)
	r.Use(middleware.NotionWebhookBodyCaptureMiddleware())

	r.Method(http.MethodPost, constants.NotionWebhookPath, NewWebhookHandler(deps.Relay))
	r.Get(constants.LivezPath, Livez)
	r.Get(constants.ReadyzPath, Readyz(deps.Collection.IsReady, deps.Publisher.IsReady))
	r.Method(http.MethodGet, constants.MetricsPath, promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))

	return otelhttp.NewHandler(r, constants.ServiceName,
		otelhttp.WithFilter(func(req *http.Request) bool {
			return req.URL.Path == constants.NotionWebhookPath
		}),
	)
}
