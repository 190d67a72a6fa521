package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/dispatch/internal/pkg/constants"
	"github.com/piresc/dispatch/internal/pkg/logger"
	"github.com/piresc/dispatch/internal/pkg/models"
	natspkg "github.com/piresc/dispatch/internal/pkg/nats"
	nrpkg "github.com/piresc/dispatch/internal/pkg/newrelic"
	"github.com/piresc/dispatch/services/offer"
)

// OfferHandler consumes offer answers relayed by the real-time transport
type OfferHandler struct {
	offerUC offer.OfferUC
	nrApp   *newrelic.Application
}

// NewOfferHandler creates a new offer NATS handler
func NewOfferHandler(offerUC offer.OfferUC, nrApp *newrelic.Application) *OfferHandler {
	return &OfferHandler{
		offerUC: offerUC,
		nrApp:   nrApp,
	}
}

// InitNATSConsumers subscribes the offer response subject
func (h *OfferHandler) InitNATSConsumers(consumer *natspkg.Consumer) error {
	if err := consumer.Handle(constants.SubjectOfferResponse, h.HandleOfferResponse); err != nil {
		return fmt.Errorf("failed to subscribe %s: %w", constants.SubjectOfferResponse, err)
	}
	return nil
}

// HandleOfferResponse processes one offer.response event. Losing a race is
// an expected outcome and is not reported as a failure.
func (h *OfferHandler) HandleOfferResponse(msg []byte) error {
	var response models.OfferResponse
	if err := json.Unmarshal(msg, &response); err != nil {
		logger.Warn("Failed to unmarshal offer response", logger.Err(err))
		return fmt.Errorf("%w: %v", models.ErrInvalidRequest, err)
	}

	ctx, end := nrpkg.StartBackground(context.Background(), h.nrApp, "nats/"+constants.SubjectOfferResponse)
	defer end()

	_, err := h.offerUC.Respond(ctx, response.OfferID, response.DriverID, response.Decision)
	if errors.Is(err, models.ErrTripUnavailable) || errors.Is(err, models.ErrOfferNoLongerValid) {
		return nil
	}
	return err
}
