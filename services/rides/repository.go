package rides

import (
	"context"
	"time"

	"github.com/piresc/dispatch/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/dispatch/services/rides RideRepo

// RideRepo stores trips. Every status change is a compare-and-set on the
// current status.
type RideRepo interface {
	CreateTrip(ctx context.Context, trip *models.Trip) error
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)
	TransitionTrip(ctx context.Context, tripID string, from []models.TripStatus, to models.TripStatus, at time.Time) (*models.Trip, error)
	// CancelTrip also cancels the trip's open offers in the same transaction
	// and reports the status it replaced
	CancelTrip(ctx context.Context, tripID string, from []models.TripStatus, reason string, at time.Time) (*models.CancelResult, error)
	// CompleteTrip moves IN_PROGRESS to COMPLETED and settles the fare atomically
	CompleteTrip(ctx context.Context, tripID string, at time.Time) (*models.Trip, []*models.LedgerEntry, error)
}
