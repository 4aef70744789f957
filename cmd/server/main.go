package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"formtrail/internal/platform/config"
	"formtrail/internal/platform/httpserver"
	"formtrail/internal/platform/logger"
	"formtrail/internal/platform/metrics"
	platformmongo "formtrail/internal/platform/mongo"
	"formtrail/internal/platform/postgres"
	platformredis "formtrail/internal/platform/redis"
	"formtrail/internal/submission/handler"
	submissionmetrics "formtrail/internal/submission/metrics"
	"formtrail/internal/submission/publisher"
	"formtrail/internal/submission/service"
	"formtrail/internal/submission/store"
	httptransport "formtrail/internal/transport/http"
)

// main wires the store backend, the optional change notifier and the HTTP
// router, and keeps the server lifecycle small.
func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}
	cfg := config.FromEnv()
	log := logger.New(cfg.Log.Format, cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// backend is a Store that can report its health.
type backend interface {
	service.Store
	Health(ctx context.Context) error
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	st, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(submissionmetrics.New()),
	}
	if len(cfg.Kafka.Brokers) > 0 {
		notifier, err := publisher.NewKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic, publisher.WithLogger(log))
		if err != nil {
			return err
		}
		defer notifier.Close()
		if err := notifier.EnsureTopic(ctx); err != nil {
			log.Warn("could not ensure submission topic", "topic", cfg.Kafka.Topic, "error", err)
		}
		opts = append(opts, service.WithNotifier(notifier))
		log.Info("publishing submissions to kafka", "topic", cfg.Kafka.Topic)
	}

	svc, err := service.New(st, opts...)
	if err != nil {
		return err
	}

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:         log,
		Metrics:        metrics.New("server"),
		AllowedOrigins: cfg.AllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
		HealthCheck:    st.Health,
	}, handler.New(svc, log))

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting formtrail store", "addr", cfg.Addr, "backend", cfg.Backend)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.Run(gctx, srv)
	})
	return g.Wait()
}

func openStore(ctx context.Context, cfg config.Server, log *slog.Logger) (backend, func(), error) {
	switch cfg.Backend {
	case config.BackendMemory:
		log.Warn("using in-memory store; records are lost on restart")
		return store.NewInMemoryStore(), func() {}, nil

	case config.BackendPostgres:
		db, err := postgres.Open(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		st := store.NewPostgres(db, cfg.Postgres.Table)
		if err := st.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return st, func() { db.Close() }, nil

	case config.BackendRedis:
		client, err := platformredis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		if client == nil {
			return nil, nil, fmt.Errorf("REDIS_URL is required for the redis backend")
		}
		return store.NewRedis(client.Client, cfg.Redis.KeyPrefix), func() { client.Close() }, nil

	case config.BackendMongo:
		client, db, err := platformmongo.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		return store.NewMongo(db.Collection(cfg.Mongo.Collection)), func() {
			_ = client.Disconnect(context.WithoutCancel(ctx))
		}, nil

	default:
		return nil, nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.Backend)
	}
}
