package location

import (
	"context"

	"github.com/piresc/dispatch/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/dispatch/services/location LocationUC

// LocationUC tracks tile membership and scopes driver position pushes
type LocationUC interface {
	UpdateDriverLocation(ctx context.Context, driverID string, location models.Location, heading *float64) error
	UpdateObserverLocation(ctx context.Context, observerID string, location models.Location) error
	BroadcastDriverPosition(ctx context.Context, driverID string) (int, error)
	BroadcastAll(ctx context.Context, event string, data interface{}) error
	GetDriverLocation(ctx context.Context, driverID string) (*models.DriverLocationRecord, error)

	SetDriverAvailability(ctx context.Context, driverID string, availability models.DriverAvailability) error
	DisconnectDriver(ctx context.Context, driverID string) error
	DisconnectObserver(ctx context.Context, observerID string) error
}
