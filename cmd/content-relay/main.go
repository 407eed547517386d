// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// The content-relay command serves the Notion webhook and writes page events
// into the Webflow collection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/linuxfoundation/lfx-v2-content-relay/cmd/content-relay/service"
	"github.com/linuxfoundation/lfx-v2-content-relay/internal/config"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/log"
	"github.com/linuxfoundation/lfx-v2-content-relay/pkg/utils"
)

const gracefulShutdownSeconds = 25

func main() {
	log.InitStructureLogConfig()

	if err := run(); err != nil {
		slog.Error("content relay stopped with error", "error", err, log.PriorityCritical())
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	otelShutdown, err := utils.SetupOTelSDK(ctx)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if errShutdown := otelShutdown(shutdownCtx); errShutdown != nil {
			slog.Error("error shutting down OpenTelemetry SDK", "error", errShutdown)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	deps, err := service.NewDependencies(ctx, cfg, reg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           service.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.InfoContext(gctx, "starting HTTP server", "addr", srv.Addr)
		if errServe := srv.ListenAndServe(); errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			return errServe
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulShutdownSeconds*time.Second)
		defer cancel()

		errShutdown := srv.Shutdown(shutdownCtx)
		if errClose := deps.Close(); errClose != nil {
			slog.Error("error closing NATS connection", "error", errClose)
		}
		return errShutdown
	})

	return g.Wait()
}
