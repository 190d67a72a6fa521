package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/dispatch/internal/pkg/middleware"
	"github.com/piresc/dispatch/internal/pkg/models"
	natspkg "github.com/piresc/dispatch/internal/pkg/nats"
	wspkg "github.com/piresc/dispatch/internal/pkg/websocket"
	"github.com/piresc/dispatch/services/offer"
	httpHandler "github.com/piresc/dispatch/services/offer/handler/http"
	natsHandler "github.com/piresc/dispatch/services/offer/handler/nats"
	wsHandler "github.com/piresc/dispatch/services/offer/handler/websocket"
)

// Handler combines every transport of the offer service
type Handler struct {
	offerHTTP *httpHandler.OfferHandler
	offerNATS *natsHandler.OfferHandler
	offerWS   *wsHandler.OfferHandler
}

// NewHandler creates a new combined handler
func NewHandler(offerUC offer.OfferUC, notifier offer.Notifier, nrApp *newrelic.Application) *Handler {
	return &Handler{
		offerHTTP: httpHandler.NewOfferHandler(offerUC),
		offerNATS: natsHandler.NewOfferHandler(offerUC, nrApp),
		offerWS:   wsHandler.NewOfferHandler(offerUC, notifier),
	}
}

// RegisterRoutes registers the HTTP routes on an authenticated group
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/offers/:id/respond", h.offerHTTP.Respond, middleware.RequireRole(models.RoleDriver))
	api.GET("/trips/:id/offers", h.offerHTTP.ListOffers, middleware.RequireRole(models.RoleAdmin))
}

// RegisterWebsocketEvents binds the socket events
func (h *Handler) RegisterWebsocketEvents(m *wspkg.Manager) {
	h.offerWS.Register(m)
}

// InitNATSConsumers subscribes the inbound offer subject
func (h *Handler) InitNATSConsumers(consumer *natspkg.Consumer) error {
	return h.offerNATS.InitNATSConsumers(consumer)
}
