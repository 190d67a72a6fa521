package offer

import (
	"context"
	"time"

	"github.com/piresc/dispatch/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/dispatch/services/offer OfferRepo

// OfferRepo persists offers and resolves the accept race against the trip row
type OfferRepo interface {
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)
	CreateOffers(ctx context.Context, offers []*models.Offer) error
	MarkOfferSent(ctx context.Context, offerID, driverID string, sentAt time.Time) error
	MarkOfferCancelled(ctx context.Context, offerID string, reason models.OfferReason, at time.Time) error
	GetOffer(ctx context.Context, offerID string) (*models.Offer, error)
	ListOffersByTrip(ctx context.Context, tripID string) ([]*models.Offer, error)
	AcceptOffer(ctx context.Context, offerID, driverID string, now time.Time) (*models.AcceptResult, error)
	RejectOffer(ctx context.Context, offerID, driverID string, now time.Time) (*models.Offer, error)
	ExpireRoundOffers(ctx context.Context, tripID string, round int, now time.Time) ([]*models.Offer, error)
}
