package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"formtrail/internal/capture/enricher"
	enrichermetrics "formtrail/internal/capture/enricher/metrics"
	"formtrail/internal/capture/identity"
	"formtrail/internal/capture/messaging"
	"formtrail/internal/capture/relay"
	"formtrail/internal/platform/config"
	"formtrail/internal/platform/httpserver"
	"formtrail/internal/platform/logger"
	"formtrail/internal/platform/metrics"
	httptransport "formtrail/internal/transport/http"
)

// main runs the background host: it listens for page messages, enriches
// submissions and relays them to the store. On shutdown it stops accepting
// messages and waits for in-flight submissions.
func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}
	cfg := config.EnricherFromEnv()
	log := logger.New(cfg.Log.Format, cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	capability := identity.FromConfig(cfg.Identity.Email, cfg.Identity.Token, cfg.Identity.TokenKey)
	if _, ok := capability.(identity.Unavailable); ok {
		log.Warn("no identity provider configured; submissions will carry the Email Not Found sentinel")
	}

	host := enricher.New(capability, relay.New(cfg.BackendURL, cfg.RelayTimeout),
		enricher.WithLogger(log),
		enricher.WithMetrics(enrichermetrics.New()),
	)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:  log,
		Metrics: metrics.New("enricher"),
	}, messaging.NewListener(host, log))
	srv := httpserver.New(cfg.Addr, router)

	log.Info("background host started", "addr", cfg.Addr, "backend", cfg.BackendURL)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.Run(gctx, srv)
	})
	err := g.Wait()

	host.Wait()
	if err != nil {
		log.Error("background host stopped", "error", err)
		os.Exit(1)
	}
	log.Info("background host stopped")
}
