package main

import (
	"context"
	"fmt"

	"github.com/piresc/dispatch/internal/pkg/database"
	"github.com/piresc/dispatch/internal/pkg/health"
	"github.com/piresc/dispatch/internal/pkg/logger"
	"github.com/piresc/dispatch/internal/pkg/models"
	"github.com/piresc/dispatch/internal/pkg/server"
	"github.com/piresc/dispatch/services/billing"
	billingRepo "github.com/piresc/dispatch/services/billing/repository"
	"github.com/piresc/dispatch/services/location"
	locationRepo "github.com/piresc/dispatch/services/location/repository"
	"github.com/piresc/dispatch/services/match"
	matchRepo "github.com/piresc/dispatch/services/match/repository"
	"github.com/piresc/dispatch/services/offer"
	offerRepo "github.com/piresc/dispatch/services/offer/repository"
	"github.com/piresc/dispatch/services/rides"
	ridesRepo "github.com/piresc/dispatch/services/rides/repository"
)

// repositories is the storage each service runs on
type repositories struct {
	roster  location.LocationRepo
	drivers match.MatchRepo
	offers  offer.OfferRepo
	trips   rides.RideRepo
	ledger  billing.BillingRepo
}

// openStorage connects the configured backend. Connections are closed by
// the shutdown manager and probed by the health service.
func openStorage(ctx context.Context, cfg *models.Config, hs *health.Service, sm *server.ShutdownManager) (*repositories, error) {
	switch cfg.Storage.Driver {
	case "memory":
		logger.Warn("Using in-memory storage, state is lost on restart")
		store := database.NewMemoryStore()
		return &repositories{
			roster:  store,
			drivers: store,
			offers:  store,
			trips:   store,
			ledger:  store,
		}, nil

	case "", "postgres":
		postgresClient, err := database.NewPostgresClient(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		if err := postgresClient.EnsureSchema(ctx); err != nil {
			postgresClient.Close()
			return nil, err
		}
		sm.Register("postgres", func(context.Context) error { return postgresClient.Close() })
		hs.AddChecker("postgres", health.CheckerFunc(postgresClient.Ping))

		redisClient, err := database.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		sm.Register("redis", func(context.Context) error { return redisClient.Close() })
		hs.AddChecker("redis", health.CheckerFunc(redisClient.Ping))

		db := postgresClient.GetDB()
		return &repositories{
			roster:  locationRepo.NewLocationRepository(redisClient),
			drivers: matchRepo.NewDriverRepository(db),
			offers:  offerRepo.NewOfferRepository(db),
			trips:   ridesRepo.NewRideRepository(db),
			ledger:  billingRepo.NewBillingRepository(db),
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown storage driver %q", models.ErrInvalidRequest, cfg.Storage.Driver)
	}
}
