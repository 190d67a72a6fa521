package rides

import (
	"context"

	"github.com/piresc/dispatch/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/dispatch/services/rides RideGW,Notifier,Dispatcher,Roster

// RideGW publishes trip events on the bus
type RideGW interface {
	PublishTripRequested(ctx context.Context, trip *models.Trip) error
	PublishTripStatus(ctx context.Context, event *models.TripStatusEvent) error
	PublishTripCompleted(ctx context.Context, completed *models.TripCompleted) error
}

// Notifier delivers one event to one connected user
type Notifier interface {
	Notify(ctx context.Context, userID string, event string, data interface{}) error
}

// Dispatcher finds a driver for a REQUESTED trip in the background
type Dispatcher interface {
	StartDispatch(trip *models.Trip) error
	AbortDispatch(tripID string)
}

// Roster frees a driver once its trip ends
type Roster interface {
	SetDriverAvailability(ctx context.Context, driverID string, availability models.DriverAvailability) error
}
