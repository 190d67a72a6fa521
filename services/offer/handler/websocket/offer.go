package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/piresc/dispatch/internal/pkg/constants"
	"github.com/piresc/dispatch/internal/pkg/logger"
	"github.com/piresc/dispatch/internal/pkg/models"
	wspkg "github.com/piresc/dispatch/internal/pkg/websocket"
	"github.com/piresc/dispatch/services/offer"
)

// OfferHandler turns offer.response frames into offer answers
type OfferHandler struct {
	offerUC  offer.OfferUC
	notifier offer.Notifier
}

// NewOfferHandler creates a new offer websocket handler. Results go back
// through notifier.
func NewOfferHandler(offerUC offer.OfferUC, notifier offer.Notifier) *OfferHandler {
	return &OfferHandler{
		offerUC:  offerUC,
		notifier: notifier,
	}
}

type responseFrame struct {
	OfferID  string               `json:"offer_id"`
	Decision models.OfferDecision `json:"decision"`
}

// Register binds the offer events to m
func (h *OfferHandler) Register(m *wspkg.Manager) {
	m.On(constants.EventOfferResponse, h.HandleOfferResponse)
}

// HandleOfferResponse answers an offer on behalf of the socket's driver. A
// failure is returned so the manager sends the classified error frame.
func (h *OfferHandler) HandleOfferResponse(ctx context.Context, client *wspkg.Client, data json.RawMessage) error {
	if client.Role != models.RoleDriver {
		return fmt.Errorf("%s is not a driver: %w", client.UserID, models.ErrForbidden)
	}

	var frame responseFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidRequest, err)
	}

	answered, err := h.offerUC.Respond(ctx, frame.OfferID, client.UserID, frame.Decision)
	if err != nil {
		return err
	}

	if err := h.notifier.Notify(ctx, client.UserID, constants.EventOfferResult, answered); err != nil {
		logger.DebugCtx(ctx, "Driver not told offer result",
			logger.OfferID(answered.ID),
			logger.DriverID(client.UserID),
			logger.Err(err))
	}
	return nil
}
