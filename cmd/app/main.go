package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"shipping/cmd"
	httpin "shipping/internal/adapters/in/http"
	"shipping/internal/adapters/out/eventbus"
	"shipping/internal/adapters/out/memory"
	"shipping/internal/adapters/out/postgres"
	"shipping/internal/adapters/out/telephony"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/merchant"
	"shipping/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	publisher, closePublisher := newEventPublisher(configs, logger)
	defer closePublisher()

	uowFactory, err := newUnitOfWorkFactory(configs, publisher, logger)
	if err != nil {
		log.Fatalf("Error opening store: %v", err)
	}

	provider, closeProvider := newCallProvider(configs, logger)
	defer closeProvider()

	app, err := cmd.NewCompositionRoot(configs, uowFactory, provider, logger)
	if err != nil {
		log.Fatalf("Error wiring application: %v", err)
	}

	seedMerchants(ctx, app, logger)

	go app.Gate().Run(ctx)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	server, err := app.CreateHTTPServer()
	if err != nil {
		log.Fatalf("Error creating HTTP server: %v", err)
	}
	startWebServer(ctx, server, configs, logger)
}

func newEventPublisher(configs cmd.Config, logger *slog.Logger) (ports.EventPublisher, func()) {
	if len(configs.KafkaBrokers) == 0 {
		return eventbus.NewLogPublisher(logger), func() {}
	}

	publisher := eventbus.NewKafkaPublisher(configs.KafkaBrokers, configs.KafkaParcelChangedTopic)
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Error("failed to close kafka writer", "error", err)
		}
	}
}

func newUnitOfWorkFactory(
	configs cmd.Config,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) (ports.UnitOfWorkFactory, error) {
	if !configs.UsesDatabase() {
		logger.Warn("DB_HOST is empty, using the in-memory store")
		return memory.NewUnitOfWorkFactory(memory.NewStore(), publisher, logger), nil
	}

	gormDB, err := gorm.Open(pgdriver.Open(configs.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := gormDB.AutoMigrate(postgres.Models()...); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger), nil
}

func newCallProvider(configs cmd.Config, logger *slog.Logger) (ports.CallProvider, func()) {
	if configs.CallWebhookSecret == "" {
		logger.Warn("CALL_WEBHOOK_SECRET is empty, call events are accepted without authentication")
	}
	if configs.CallProvider == cmd.CallProviderWebhook {
		return telephony.NewWebhookProvider(configs.CallProviderURL, configs.CallProviderAPIKey, configs.CallCallbackURL), func() {}
	}

	provider := telephony.NewSimulatedProvider(telephony.SimulatedConfig{
		ConnectAfter:  configs.SimulatedConnectAfter,
		CompleteAfter: configs.SimulatedAnswerAfter,
	}, logger)
	return provider, provider.Close
}

func seedMerchants(ctx context.Context, app *cmd.CompositionRoot, logger *slog.Logger) {
	seedCmd, err := commands.NewSeedMerchantsCommand(merchant.Seed())
	if err != nil {
		log.Fatalf("Invalid merchant seed: %v", err)
	}

	added, err := app.CreateSeedMerchantsCommandHandler().Handle(ctx, seedCmd)
	if err != nil {
		log.Fatalf("Failed to seed merchants: %v", err)
	}
	if added > 0 {
		logger.Info("seeded merchant directory", "count", added)
	}
}

func startWebServer(ctx context.Context, server *httpin.Server, configs cmd.Config, logger *slog.Logger) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(httpin.RequestLogger(logger))

	server.Register(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), configs.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
