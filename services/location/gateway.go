package location

import (
	"context"

	"github.com/piresc/dispatch/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/dispatch/services/location LocationGW,Notifier

// LocationGW publishes location events on the bus
type LocationGW interface {
	PublishDriverLocation(ctx context.Context, record *models.DriverLocationRecord) error
}

// Notifier delivers one event to one user. It has no method that reaches
// every connected user.
type Notifier interface {
	Notify(ctx context.Context, userID string, event string, data interface{}) error
}
