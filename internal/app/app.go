package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"vcardqr/config"
	"vcardqr/internal/controller/restapi"
	"vcardqr/internal/controller/worker/outbox"
	"vcardqr/internal/infrastructure/encoder"
	infrakafka "vcardqr/internal/infrastructure/kafka"
	"vcardqr/internal/repo/persistent"
	"vcardqr/internal/usecase/card"
	"vcardqr/internal/usecase/user"
	"vcardqr/pkg/httpserver"
	"vcardqr/pkg/kafka/producer"
	"vcardqr/pkg/logger"
	"vcardqr/pkg/postgres"
	"vcardqr/pkg/s3client"
)

func Run(cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Logger
	l := logger.New(cfg.Log.Level)

	// Repository

	// s3
	s3Ctx, s3Cancel := context.WithTimeout(ctx, cfg.S3.CfgLoadTimeout)
	defer s3Cancel()
	s3c, err := s3client.New(s3Ctx, cfg.S3.Endpoint, cfg.S3.AccessKey, cfg.S3.SecretKey)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - s3client.New: %w", err))
	}

	// postgres
	pg, err := postgres.New(cfg.PG.URL, postgres.MaxPoolSize(cfg.PG.PoolMax))
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - postgres.New: %w", err))
	}
	defer pg.Close()

	// migrations
	err = Migrate(ctx, pg, l)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - Migrate: %w", err))
	}

	// Use-Case

	// card use-case
	cardUseCase := card.New(
		persistent.NewContactRepo(pg),
		persistent.NewOutboxCardRepo(pg),
		persistent.NewArchiveRepo(s3c, cfg.S3.Bucket),
		pg,
		encoder.New(),
		l,
	)

	// user use-case
	userUseCase := user.New(
		persistent.NewUserRepo(pg),
		cfg.Auth.JWTSecret,
		cfg.Auth.TokenTTL,
		cfg.Auth.AdminPassword,
		l,
	)

	err = userUseCase.EnsureDefaultAdmin(ctx)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - userUseCase.EnsureDefaultAdmin: %w", err))
	}

	// Kafka Producer
	kafkaProducer, err := producer.New(ctx, cfg.Kafka.Brokers)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - producer.New: %w", err))
	}

	// Outbox Relay Worker
	outboxRelayWorker := outbox.New(
		cardUseCase,
		infrakafka.NewEventProducer(kafkaProducer, cfg.Kafka.Topic),
		l,
		cfg.OutboxRelay.PollInterval,
		cfg.OutboxRelay.CleanupInterval,
		cfg.OutboxRelay.MarkFailedInterval,
		cfg.OutboxRelay.ProcessBatchTimeout,
		cfg.OutboxRelay.BatchSize,
		cfg.OutboxRelay.MaxRetries,
	)

	// HTTP Server
	httpServer := httpserver.New(l, httpserver.Port(cfg.HTTP.Port))
	restapi.NewRouter(httpServer.App, cfg, cardUseCase, userUseCase, l)

	// Start Components
	err = outboxRelayWorker.Start(ctx)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - outboxRelayWorker.Start: %w", err))
	}
	httpServer.Start()

	// Waiting Signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("app - Run - signal: %s", s.String())
	case err = <-httpServer.Notify():
		l.Error(fmt.Errorf("app - Run - httpServer.Notify: %w", err))
	}

	// Shutdown
	err = httpServer.Shutdown()
	if err != nil {
		l.Error(fmt.Errorf("app - Run - httpServer.Shutdown: %w", err))
	}

	orlShutdownCtx, orlShutdownCancel := context.WithTimeout(ctx, cfg.OutboxRelay.ShutdownTimeout)
	defer orlShutdownCancel()
	err = outboxRelayWorker.Shutdown(orlShutdownCtx)
	if err != nil {
		l.Error(fmt.Errorf("app - Run - outboxRelayWorker.Shutdown: %w", err))
	}
}
