package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/dispatch/internal/pkg/constants"
	"github.com/piresc/dispatch/internal/pkg/logger"
	"github.com/piresc/dispatch/internal/pkg/models"
	natspkg "github.com/piresc/dispatch/internal/pkg/nats"
	nrpkg "github.com/piresc/dispatch/internal/pkg/newrelic"
	"github.com/piresc/dispatch/services/location"
)

// LocationHandler consumes location events from the real-time transport
type LocationHandler struct {
	locationUC location.LocationUC
	nrApp      *newrelic.Application
}

// NewLocationHandler creates a new location NATS handler
func NewLocationHandler(locationUC location.LocationUC, nrApp *newrelic.Application) *LocationHandler {
	return &LocationHandler{
		locationUC: locationUC,
		nrApp:      nrApp,
	}
}

// InitNATSConsumers subscribes the driver and observer location subjects
func (h *LocationHandler) InitNATSConsumers(consumer *natspkg.Consumer) error {
	if err := consumer.Handle(constants.SubjectDriverLocation, h.HandleDriverLocation); err != nil {
		return fmt.Errorf("failed to subscribe %s: %w", constants.SubjectDriverLocation, err)
	}
	if err := consumer.Handle(constants.SubjectObserverLocation, h.HandleObserverLocation); err != nil {
		return fmt.Errorf("failed to subscribe %s: %w", constants.SubjectObserverLocation, err)
	}
	return nil
}

// HandleDriverLocation processes one driverLocation event
func (h *LocationHandler) HandleDriverLocation(msg []byte) error {
	event, err := decode(msg)
	if err != nil {
		return err
	}

	ctx, end := nrpkg.StartBackground(context.Background(), h.nrApp, "nats/"+constants.SubjectDriverLocation)
	defer end()

	return h.locationUC.UpdateDriverLocation(ctx, event.UserID, event.Location, event.Heading)
}

// HandleObserverLocation processes one observerLocation event
func (h *LocationHandler) HandleObserverLocation(msg []byte) error {
	event, err := decode(msg)
	if err != nil {
		return err
	}

	ctx, end := nrpkg.StartBackground(context.Background(), h.nrApp, "nats/"+constants.SubjectObserverLocation)
	defer end()

	return h.locationUC.UpdateObserverLocation(ctx, event.UserID, event.Location)
}

func decode(msg []byte) (*models.LocationEvent, error) {
	var event models.LocationEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		logger.Warn("Failed to unmarshal location event", logger.Err(err))
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidRequest, err)
	}
	return &event, nil
}
