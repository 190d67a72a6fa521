package offer

import (
	"context"

	"github.com/piresc/dispatch/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/dispatch/services/offer OfferGW,Notifier,Roster,Matcher

// OfferGW publishes dispatch events on the bus
type OfferGW interface {
	PublishTripStatus(ctx context.Context, event *models.TripStatusEvent) error
	PublishDispatchFailed(ctx context.Context, outcome *models.DispatchOutcome) error
}

// Notifier delivers one event to one connected user
type Notifier interface {
	Notify(ctx context.Context, userID string, event string, data interface{}) error
}

// Roster flips a driver's availability once it wins a trip
type Roster interface {
	SetDriverAvailability(ctx context.Context, driverID string, availability models.DriverAvailability) error
}

// Matcher ranks drivers for a pickup
type Matcher interface {
	FindCandidates(ctx context.Context, query models.CandidateQuery) ([]*models.DriverCandidateScore, error)
}
