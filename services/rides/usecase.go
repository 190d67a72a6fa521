package rides

import (
	"context"

	"github.com/piresc/dispatch/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/dispatch/services/rides RideUC

// RideUC drives a trip from request to a terminal state
type RideUC interface {
	RequestTrip(ctx context.Context, actor models.Actor, req models.TripRequest) (*models.Trip, error)
	GetTrip(ctx context.Context, actor models.Actor, tripID string) (*models.Trip, error)
	MarkArrived(ctx context.Context, actor models.Actor, tripID string) (*models.Trip, error)
	StartTrip(ctx context.Context, actor models.Actor, tripID string) (*models.Trip, error)
	CancelTrip(ctx context.Context, actor models.Actor, tripID string, reason string) (*models.Trip, error)
	CompleteTrip(ctx context.Context, actor models.Actor, tripID string) (*models.TripCompleted, error)
	RedispatchTrip(ctx context.Context, actor models.Actor, tripID string) error
}
