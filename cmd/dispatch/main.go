package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/piresc/dispatch/internal/pkg/circuitbreaker"
	"github.com/piresc/dispatch/internal/pkg/config"
	"github.com/piresc/dispatch/internal/pkg/health"
	"github.com/piresc/dispatch/internal/pkg/logger"
	"github.com/piresc/dispatch/internal/pkg/metrics"
	"github.com/piresc/dispatch/internal/pkg/middleware"
	natspkg "github.com/piresc/dispatch/internal/pkg/nats"
	nrpkg "github.com/piresc/dispatch/internal/pkg/newrelic"
	"github.com/piresc/dispatch/internal/pkg/retry"
	"github.com/piresc/dispatch/internal/pkg/server"
	wspkg "github.com/piresc/dispatch/internal/pkg/websocket"
	billingHandler "github.com/piresc/dispatch/services/billing/handler"
	billingUsecase "github.com/piresc/dispatch/services/billing/usecase"
	locationGateway "github.com/piresc/dispatch/services/location/gateway"
	locationHandler "github.com/piresc/dispatch/services/location/handler"
	locationUsecase "github.com/piresc/dispatch/services/location/usecase"
	matchHandler "github.com/piresc/dispatch/services/match/handler"
	matchUsecase "github.com/piresc/dispatch/services/match/usecase"
	offerGateway "github.com/piresc/dispatch/services/offer/gateway"
	offerHandler "github.com/piresc/dispatch/services/offer/handler"
	offerUsecase "github.com/piresc/dispatch/services/offer/usecase"
	ridesGateway "github.com/piresc/dispatch/services/rides/gateway"
	ridesHandler "github.com/piresc/dispatch/services/rides/handler"
	ridesUsecase "github.com/piresc/dispatch/services/rides/usecase"
)

func main() {
	configs := config.InitConfig("config/dispatch.env")

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs.NewRelic)

	zapLogger, err := logger.NewZapLogger(logger.ZapConfig{
		Level:       configs.Logger.Level,
		FilePath:    configs.Logger.FilePath,
		ServiceName: configs.App.Name,
	}, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", configs.App.Name),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
		logger.String("storage", configs.Storage.Driver),
	)

	if err := configs.Match.Scoring.Validate(); err != nil {
		zapLogger.Fatal("Invalid scoring configuration", logger.Err(err))
	}

	// Echo server and its shutdown sequence
	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = time.Duration(configs.Server.ReadTimeout) * time.Second
	e.Server.WriteTimeout = time.Duration(configs.Server.WriteTimeout) * time.Second

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port).
		WithShutdownTimeout(time.Duration(configs.Server.ShutdownTimeout) * time.Second)
	shutdown := srv.Components()
	healthService := health.NewService(configs.App.Name, configs.App.Version)

	// Storage closes last, after everything that writes to it
	storage := server.NewShutdownManager(zapLogger)
	repos, err := openStorage(context.Background(), configs, healthService, storage)
	if err != nil {
		zapLogger.Fatal("Failed to open storage", logger.Err(err))
	}

	// NATS
	natsClient, err := natspkg.NewClient(configs.NATS.URL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
	}
	consumer := natspkg.NewConsumer(natsClient, configs.NATS.QueueGroup)
	healthService.AddChecker("nats", health.Connected(natsClient.IsConnected))

	logger.Info("NATS client initialized",
		logger.String("url", configs.NATS.URL),
		logger.Bool("connected", natsClient.IsConnected()))

	// Websocket hub, shared by every service that pushes to users
	wsManager := wspkg.NewManager(configs.JWT)

	publishRetrier := retry.NewWithDefaults(zapLogger)

	rosterBreaker := circuitbreaker.DefaultConfig("roster")
	rosterBreaker.OnStateChange = func(name string, _ circuitbreaker.State, to circuitbreaker.State) {
		metrics.BreakerState.WithLabelValues(name).Set(float64(to))
	}

	// Use cases
	locationUC := locationUsecase.NewLocationUC(configs, repos.roster, locationGateway.NewLocationGW(natsClient), wsManager)
	matchUC := matchUsecase.NewMatchUC(configs, repos.drivers, repos.roster, circuitbreaker.New(rosterBreaker, zapLogger))
	offerUC := offerUsecase.NewOfferUC(configs, repos.offers, offerGateway.NewOfferGW(natsClient, publishRetrier), wsManager, repos.roster, matchUC)
	rideUC := ridesUsecase.NewRideUC(repos.trips, ridesGateway.NewRideGW(natsClient, publishRetrier), wsManager, offerUC, repos.roster)
	billingUC := billingUsecase.NewBillingUC(repos.ledger)

	// Handlers
	locationH := locationHandler.NewHandler(locationUC, nrApp)
	offerH := offerHandler.NewHandler(offerUC, wsManager, nrApp)
	matchH := matchHandler.NewHandler(matchUC)
	ridesH := ridesHandler.NewHandler(rideUC)
	billingH := billingHandler.NewHandler(billingUC)

	if err := locationH.InitNATSConsumers(consumer); err != nil {
		zapLogger.Fatal("Failed to initialize location consumers", logger.Err(err))
	}
	if err := offerH.InitNATSConsumers(consumer); err != nil {
		zapLogger.Fatal("Failed to initialize offer consumers", logger.Err(err))
	}
	logger.Info("NATS consumers initialized", logger.Strings("subjects", consumer.Subjects()))

	locationH.RegisterWebsocketEvents(wsManager)
	offerH.RegisterWebsocketEvents(wsManager)

	// Middlewares (panic recovery first)
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	if nrApp != nil {
		e.Use(nrecho.Middleware(nrApp))
	}
	e.Use(logger.ZapEchoMiddleware(zapLogger))
	e.Use(metrics.EchoMiddleware())

	health.RegisterHealthEndpoints(e, healthService)
	metrics.Register(e)
	e.GET("/ws", wsManager.HandleConnection)

	api := e.Group("/api", middleware.JWTAuthMiddleware(configs.JWT))
	locationH.RegisterRoutes(api)
	matchH.RegisterRoutes(api)
	offerH.RegisterRoutes(api)
	ridesH.RegisterRoutes(api)
	billingH.RegisterRoutes(api)

	// Components stop in registration order once the listener is drained:
	// dispatch rounds first so nothing publishes into a closed connection.
	shutdown.Register("dispatch", func(context.Context) error {
		offerUC.Close()
		return nil
	})
	shutdown.Register("nats-consumers", func(context.Context) error { return consumer.Stop() })
	shutdown.Register("websocket", func(context.Context) error {
		wsManager.Close()
		return nil
	})
	shutdown.Register("nats", func(context.Context) error {
		err := natsClient.Drain()
		natsClient.Close()
		return err
	})
	shutdown.Register("storage", storage.Shutdown)
	if nrApp != nil {
		shutdown.Register("newrelic", func(context.Context) error {
			nrApp.Shutdown(10 * time.Second)
			return nil
		})
	}

	if err := srv.Start(); err != nil {
		zapLogger.Error("Server stopped with error", logger.Err(err))
	}

	zapLogger.Info("Server exiting gracefully")
	_ = zapLogger.Sync()
}
