package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/piresc/dispatch/internal/pkg/constants"
	"github.com/piresc/dispatch/internal/pkg/models"
	natspkg "github.com/piresc/dispatch/internal/pkg/nats"
	"github.com/piresc/dispatch/internal/pkg/retry"
)

// RideGW publishes trip lifecycle events on NATS
type RideGW struct {
	client  *natspkg.Client
	retrier *retry.Retrier
}

// NewRideGW creates a new ride gateway. A nil retrier publishes once.
func NewRideGW(client *natspkg.Client, retrier *retry.Retrier) *RideGW {
	if retrier == nil {
		retrier = retry.New(retry.Config{}, nil)
	}
	return &RideGW{
		client:  client,
		retrier: retrier,
	}
}

// PublishTripRequested announces a new trip
func (g *RideGW) PublishTripRequested(ctx context.Context, trip *models.Trip) error {
	return g.publish(ctx, constants.SubjectTripRequested, trip)
}

// PublishTripStatus announces a lifecycle transition
func (g *RideGW) PublishTripStatus(ctx context.Context, event *models.TripStatusEvent) error {
	return g.publish(ctx, constants.SubjectTripStatusChanged, event)
}

// PublishTripCompleted announces a settled trip with its ledger entries
func (g *RideGW) PublishTripCompleted(ctx context.Context, completed *models.TripCompleted) error {
	return g.publish(ctx, constants.SubjectTripCompleted, completed)
}

func (g *RideGW) publish(ctx context.Context, subject string, v interface{}) error {
	err := g.retrier.Execute(ctx, func(context.Context) error {
		err := g.client.PublishJSON(subject, v)
		// a closed connection never comes back
		if errors.Is(err, nats.ErrConnectionClosed) {
			return retry.Permanent(err)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}
	return nil
}
