package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/piresc/dispatch/internal/pkg/constants"
	"github.com/piresc/dispatch/internal/pkg/logger"
	"github.com/piresc/dispatch/internal/pkg/metrics"
	"github.com/piresc/dispatch/internal/pkg/models"
	"github.com/piresc/dispatch/internal/utils"
	"github.com/piresc/dispatch/services/location"
)

// LocationUC implements location.LocationUC
type LocationUC struct {
	repo      location.LocationRepo
	gw        location.LocationGW
	notifier  location.Notifier
	directory *Directory
	ttl       time.Duration
}

// NewLocationUC creates a new location use case
func NewLocationUC(cfg *models.Config, repo location.LocationRepo, gw location.LocationGW, notifier location.Notifier) *LocationUC {
	return &LocationUC{
		repo:      repo,
		gw:        gw,
		notifier:  notifier,
		directory: NewDirectory(cfg.Geo.Precision, cfg.Geo.MinMovementMeters),
		ttl:       time.Duration(cfg.Geo.LocationTTLSeconds) * time.Second,
	}
}

// Directory exposes the in-process tile rooms
func (uc *LocationUC) Directory() *Directory {
	return uc.directory
}

// UpdateDriverLocation records a driver position and pushes it to nearby
// observers. A driver without a roster status joins as ONLINE; a driver who
// switched itself OFFLINE is ignored until it comes back.
func (uc *LocationUC) UpdateDriverLocation(ctx context.Context, driverID string, loc models.Location, heading *float64) error {
	if driverID == "" {
		return fmt.Errorf("%w: driver_id is required", models.ErrInvalidRequest)
	}
	if err := loc.Validate(); err != nil {
		return fmt.Errorf("driver %s: %w", driverID, err)
	}

	availability, err := uc.repo.GetDriverAvailability(ctx, driverID)
	if err != nil {
		return fmt.Errorf("failed to read driver availability: %w", err)
	}
	if availability == models.DriverOffline {
		logger.DebugCtx(ctx, "Ignoring location of offline driver", logger.DriverID(driverID))
		return nil
	}

	record, moved := uc.directory.UpsertDriver(driverID, loc, heading, models.Now())

	if err := uc.repo.StoreDriverLocation(ctx, &record, uc.ttl); err != nil {
		return fmt.Errorf("failed to store driver location: %w", err)
	}
	if availability == "" {
		joined, err := uc.repo.JoinRoster(ctx, driverID)
		if err != nil {
			return fmt.Errorf("failed to mark driver online: %w", err)
		}
		if joined {
			logger.InfoCtx(ctx, "Driver joined roster", logger.DriverID(driverID), logger.String("tile", record.Tile))
		}
	} else if moved {
		logger.DebugCtx(ctx, "Driver changed tile", logger.DriverID(driverID), logger.String("tile", record.Tile))
	}

	// An OFFLINE toggle stores its status before clearing the position, so
	// it either cleared the position written above or is visible here.
	current, err := uc.repo.GetDriverAvailability(ctx, driverID)
	if err != nil {
		return fmt.Errorf("failed to read driver availability: %w", err)
	}
	if current == models.DriverOffline {
		uc.directory.RemoveDriver(driverID)
		if err := uc.repo.RemoveDriverLocation(ctx, driverID); err != nil {
			return fmt.Errorf("failed to remove driver location: %w", err)
		}
		logger.DebugCtx(ctx, "Driver went offline during update", logger.DriverID(driverID))
		return nil
	}

	if err := uc.gw.PublishDriverLocation(ctx, &record); err != nil {
		logger.WarnCtx(ctx, "Failed to publish driver location", logger.DriverID(driverID), logger.Err(err))
	}

	// a disconnect may have removed the driver in the meantime
	if _, err := uc.BroadcastDriverPosition(ctx, driverID); err != nil {
		logger.DebugCtx(ctx, "Skipped position broadcast", logger.DriverID(driverID), logger.Err(err))
	}
	return nil
}

// UpdateObserverLocation moves an observer into the room of its tile
func (uc *LocationUC) UpdateObserverLocation(ctx context.Context, observerID string, loc models.Location) error {
	if observerID == "" {
		return fmt.Errorf("%w: observer_id is required", models.ErrInvalidRequest)
	}
	if err := loc.Validate(); err != nil {
		return fmt.Errorf("observer %s: %w", observerID, err)
	}

	watch := uc.directory.UpsertObserver(observerID, loc, models.Now())
	logger.DebugCtx(ctx, "Observer location updated",
		logger.String("observer_id", observerID),
		logger.String("tile", watch.Tile))
	return nil
}

// BroadcastDriverPosition pushes the driver's latest record to observers in
// the 9-tile neighborhood of its room and returns how many received it.
// A failed push only affects that observer.
func (uc *LocationUC) BroadcastDriverPosition(ctx context.Context, driverID string) (int, error) {
	record, ok := uc.directory.Driver(driverID)
	if !ok {
		return 0, fmt.Errorf("driver %s: %w", driverID, models.ErrDriverNotFound)
	}

	payload := models.DriverPosition{
		DriverID:  record.DriverID,
		Location:  record.Location,
		Heading:   record.Heading,
		Tile:      record.Tile,
		UpdatedAt: record.UpdatedAt,
	}

	delivered := 0
	for _, observerID := range uc.directory.ObserversIn(utils.Neighborhood(record.Tile)) {
		if observerID == driverID {
			continue
		}
		if err := uc.notifier.Notify(ctx, observerID, constants.EventDriverPosition, payload); err != nil {
			metrics.BroadcastDeliveries.WithLabelValues("failed").Inc()
			logger.DebugCtx(ctx, "Position push failed",
				logger.DriverID(driverID),
				logger.String("observer_id", observerID),
				logger.Err(err))
			continue
		}
		metrics.BroadcastDeliveries.WithLabelValues("delivered").Inc()
		delivered++
	}
	return delivered, nil
}

// BroadcastAll always fails. Driver positions may only be sent to a tile
// neighborhood.
func (uc *LocationUC) BroadcastAll(ctx context.Context, event string, _ interface{}) error {
	logger.ErrorCtx(ctx, "Global broadcast attempted", logger.String("event", event))
	return models.ErrGlobalBroadcastDisabled
}

// GetDriverLocation returns the in-process record of a driver
func (uc *LocationUC) GetDriverLocation(_ context.Context, driverID string) (*models.DriverLocationRecord, error) {
	record, ok := uc.directory.Driver(driverID)
	if !ok {
		return nil, fmt.Errorf("driver %s: %w", driverID, models.ErrDriverNotFound)
	}
	return &record, nil
}

// SetDriverAvailability is the driver's own ONLINE/OFFLINE toggle. A driver
// on a trip cannot toggle until the trip ends.
func (uc *LocationUC) SetDriverAvailability(ctx context.Context, driverID string, availability models.DriverAvailability) error {
	if driverID == "" {
		return fmt.Errorf("%w: driver_id is required", models.ErrInvalidRequest)
	}
	if availability != models.DriverOnline && availability != models.DriverOffline {
		return fmt.Errorf("%w: availability must be ONLINE or OFFLINE", models.ErrInvalidRequest)
	}

	current, err := uc.repo.GetDriverAvailability(ctx, driverID)
	if err != nil {
		return fmt.Errorf("failed to read driver availability: %w", err)
	}
	if current == models.DriverBusy {
		return fmt.Errorf("driver %s: %w", driverID, models.ErrDriverBusy)
	}

	if err := uc.repo.SetDriverAvailability(ctx, driverID, availability); err != nil {
		return fmt.Errorf("failed to set driver availability: %w", err)
	}
	if availability == models.DriverOffline {
		uc.directory.RemoveDriver(driverID)
		if err := uc.repo.RemoveDriverLocation(ctx, driverID); err != nil {
			return fmt.Errorf("failed to remove driver location: %w", err)
		}
	}

	logger.InfoCtx(ctx, "Driver availability changed",
		logger.DriverID(driverID),
		logger.String("availability", string(availability)))
	return nil
}

// DisconnectDriver forgets a driver's position. A BUSY status survives the
// disconnect so a reconnecting driver is not offered a second trip.
func (uc *LocationUC) DisconnectDriver(ctx context.Context, driverID string) error {
	uc.directory.RemoveDriver(driverID)

	if err := uc.repo.RemoveDriverLocation(ctx, driverID); err != nil {
		return fmt.Errorf("failed to remove driver location: %w", err)
	}

	availability, err := uc.repo.GetDriverAvailability(ctx, driverID)
	if err != nil {
		return fmt.Errorf("failed to read driver availability: %w", err)
	}
	if availability == models.DriverBusy {
		return nil
	}
	if err := uc.repo.ClearDriverAvailability(ctx, driverID); err != nil {
		return fmt.Errorf("failed to clear driver availability: %w", err)
	}
	return nil
}

// DisconnectObserver removes an observer from its room
func (uc *LocationUC) DisconnectObserver(_ context.Context, observerID string) error {
	uc.directory.RemoveObserver(observerID)
	return nil
}
