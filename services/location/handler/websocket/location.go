package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/piresc/dispatch/internal/pkg/constants"
	"github.com/piresc/dispatch/internal/pkg/logger"
	"github.com/piresc/dispatch/internal/pkg/models"
	wspkg "github.com/piresc/dispatch/internal/pkg/websocket"
	"github.com/piresc/dispatch/services/location"
)

// LocationHandler turns socket frames into location updates
type LocationHandler struct {
	locationUC location.LocationUC
}

// NewLocationHandler creates a new location websocket handler
func NewLocationHandler(locationUC location.LocationUC) *LocationHandler {
	return &LocationHandler{locationUC: locationUC}
}

type locationFrame struct {
	Location models.Location `json:"location"`
	Heading  *float64        `json:"heading,omitempty"`
}

// Register binds the location events and disconnect cleanup to m
func (h *LocationHandler) Register(m *wspkg.Manager) {
	m.On(constants.EventDriverLocation, h.HandleDriverLocation)
	m.On(constants.EventObserverLocation, h.HandleObserverLocation)
	m.OnDisconnect(h.HandleDisconnect)
}

// HandleDriverLocation accepts positions only from driver sockets
func (h *LocationHandler) HandleDriverLocation(ctx context.Context, client *wspkg.Client, data json.RawMessage) error {
	if client.Role != models.RoleDriver {
		return fmt.Errorf("%s is not a driver: %w", client.UserID, models.ErrForbidden)
	}

	var frame locationFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidRequest, err)
	}
	return h.locationUC.UpdateDriverLocation(ctx, client.UserID, frame.Location, frame.Heading)
}

// HandleObserverLocation subscribes a rider or admin to the tile they are in
func (h *LocationHandler) HandleObserverLocation(ctx context.Context, client *wspkg.Client, data json.RawMessage) error {
	var frame locationFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidRequest, err)
	}
	return h.locationUC.UpdateObserverLocation(ctx, client.UserID, frame.Location)
}

// HandleDisconnect removes the closed socket's party from the directory
func (h *LocationHandler) HandleDisconnect(ctx context.Context, client *wspkg.Client) {
	var err error
	if client.Role == models.RoleDriver {
		err = h.locationUC.DisconnectDriver(ctx, client.UserID)
	} else {
		err = h.locationUC.DisconnectObserver(ctx, client.UserID)
	}
	if err != nil {
		logger.WarnCtx(ctx, "Failed to clean up disconnected client",
			logger.String("user_id", client.UserID),
			logger.Err(err))
	}
}
