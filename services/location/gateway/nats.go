package gateway

import (
	"context"
	"fmt"

	"github.com/piresc/dispatch/internal/pkg/constants"
	"github.com/piresc/dispatch/internal/pkg/models"
	natspkg "github.com/piresc/dispatch/internal/pkg/nats"
)

// LocationGW publishes location events on NATS
type LocationGW struct {
	client *natspkg.Client
}

// NewLocationGW creates a new location gateway
func NewLocationGW(client *natspkg.Client) *LocationGW {
	return &LocationGW{
		client: client,
	}
}

// PublishDriverLocation announces a driver position to other consumers
func (g *LocationGW) PublishDriverLocation(ctx context.Context, record *models.DriverLocationRecord) error {
	if err := g.client.PublishJSON(constants.SubjectDriverLocationUpdated, record); err != nil {
		return fmt.Errorf("failed to publish driver location: %w", err)
	}
	return nil
}
