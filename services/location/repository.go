package location

import (
	"context"
	"time"

	"github.com/piresc/dispatch/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/dispatch/services/location LocationRepo

// LocationRepo is the driver roster: positions plus availability
type LocationRepo interface {
	StoreDriverLocation(ctx context.Context, record *models.DriverLocationRecord, ttl time.Duration) error
	RemoveDriverLocation(ctx context.Context, driverID string) error

	// GetDriverAvailability returns "" when the driver has no status yet
	GetDriverAvailability(ctx context.Context, driverID string) (models.DriverAvailability, error)
	SetDriverAvailability(ctx context.Context, driverID string, availability models.DriverAvailability) error
	// JoinRoster marks the driver ONLINE only if it has no status yet
	JoinRoster(ctx context.Context, driverID string) (bool, error)
	ClearDriverAvailability(ctx context.Context, driverID string) error

	// FindOnlineDrivers returns ONLINE drivers with a live position inside bbox
	FindOnlineDrivers(ctx context.Context, bbox models.BoundingBox) ([]*models.DriverLocationRecord, error)
}
