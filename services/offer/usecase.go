package offer

import (
	"context"

	"github.com/piresc/dispatch/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/dispatch/services/offer OfferUC

// OfferUC fans a trip out to ranked drivers and settles who gets it
type OfferUC interface {
	Dispatch(ctx context.Context, trip *models.Trip, candidates []*models.DriverCandidateScore, params models.DispatchParams) (*models.RoundResult, error)
	Respond(ctx context.Context, offerID, driverID string, decision models.OfferDecision) (*models.Offer, error)
	DispatchTrip(ctx context.Context, tripID string) (*models.DispatchOutcome, error)
	StartDispatch(trip *models.Trip) error
	AbortDispatch(tripID string)
	ListOffers(ctx context.Context, tripID string) ([]*models.Offer, error)
	Close()
}
