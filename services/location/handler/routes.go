package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/dispatch/internal/pkg/middleware"
	"github.com/piresc/dispatch/internal/pkg/models"
	natspkg "github.com/piresc/dispatch/internal/pkg/nats"
	wspkg "github.com/piresc/dispatch/internal/pkg/websocket"
	"github.com/piresc/dispatch/services/location"
	httpHandler "github.com/piresc/dispatch/services/location/handler/http"
	natsHandler "github.com/piresc/dispatch/services/location/handler/nats"
	wsHandler "github.com/piresc/dispatch/services/location/handler/websocket"
)

// Handler combines every transport of the location service
type Handler struct {
	locationHTTP *httpHandler.LocationHandler
	locationNATS *natsHandler.LocationHandler
	locationWS   *wsHandler.LocationHandler
}

// NewHandler creates a new combined handler
func NewHandler(locationUC location.LocationUC, nrApp *newrelic.Application) *Handler {
	return &Handler{
		locationHTTP: httpHandler.NewLocationHandler(locationUC),
		locationNATS: natsHandler.NewLocationHandler(locationUC, nrApp),
		locationWS:   wsHandler.NewLocationHandler(locationUC),
	}
}

// RegisterRoutes registers the HTTP routes on an authenticated group
func (h *Handler) RegisterRoutes(api *echo.Group) {
	drivers := api.Group("/drivers")
	drivers.PUT("/me/availability", h.locationHTTP.SetAvailability, middleware.RequireRole(models.RoleDriver))
	drivers.GET("/:id/location", h.locationHTTP.GetDriverLocation, middleware.RequireRole(models.RoleAdmin))
}

// RegisterWebsocketEvents binds the socket events
func (h *Handler) RegisterWebsocketEvents(m *wspkg.Manager) {
	h.locationWS.Register(m)
}

// InitNATSConsumers subscribes the inbound location subjects
func (h *Handler) InitNATSConsumers(consumer *natspkg.Consumer) error {
	return h.locationNATS.InitNATSConsumers(consumer)
}
