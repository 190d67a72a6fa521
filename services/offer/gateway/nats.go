package gateway

import (
	"context"
	"fmt"

	"github.com/piresc/dispatch/internal/pkg/constants"
	"github.com/piresc/dispatch/internal/pkg/models"
	natspkg "github.com/piresc/dispatch/internal/pkg/nats"
	"github.com/piresc/dispatch/internal/pkg/retry"
)

// OfferGW publishes dispatch events on NATS
type OfferGW struct {
	client  *natspkg.Client
	retrier *retry.Retrier
}

// NewOfferGW creates a new offer gateway. A nil retrier publishes once.
func NewOfferGW(client *natspkg.Client, retrier *retry.Retrier) *OfferGW {
	if retrier == nil {
		retrier = retry.New(retry.Config{}, nil)
	}
	return &OfferGW{
		client:  client,
		retrier: retrier,
	}
}

// PublishTripStatus announces the REQUESTED -> ACCEPTED transition
func (g *OfferGW) PublishTripStatus(ctx context.Context, event *models.TripStatusEvent) error {
	return g.publish(ctx, constants.SubjectTripStatusChanged, event)
}

// PublishDispatchFailed announces a trip no driver took
func (g *OfferGW) PublishDispatchFailed(ctx context.Context, outcome *models.DispatchOutcome) error {
	return g.publish(ctx, constants.SubjectTripDispatchFailed, outcome)
}

func (g *OfferGW) publish(ctx context.Context, subject string, v interface{}) error {
	err := g.retrier.Execute(ctx, func(context.Context) error {
		return g.client.PublishJSON(subject, v)
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}
	return nil
}
