package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/dispatch/internal/pkg/middleware"
	"github.com/piresc/dispatch/internal/pkg/models"
	nrpkg "github.com/piresc/dispatch/internal/pkg/newrelic"
	"github.com/piresc/dispatch/internal/utils"
	"github.com/piresc/dispatch/services/offer"
)

// OfferHandler handles HTTP requests for offers
type OfferHandler struct {
	offerUC offer.OfferUC
}

// NewOfferHandler creates a new offer HTTP handler
func NewOfferHandler(offerUC offer.OfferUC) *OfferHandler {
	return &OfferHandler{
		offerUC: offerUC,
	}
}

type respondRequest struct {
	Decision models.OfferDecision `json:"decision"`
}

// Respond records the authenticated driver's answer to an offer
func (h *OfferHandler) Respond(c echo.Context) error {
	if txn := nrpkg.FromEchoContext(c); txn != nil {
		txn.SetName("POST /api/offers/:id/respond")
	}

	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req respondRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "invalid request body")
	}

	answered, err := h.offerUC.Respond(c.Request().Context(), c.Param("id"), actor.UserID, req.Decision)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Offer "+string(answered.Status), answered)
}

// ListOffers returns every offer made for a trip
func (h *OfferHandler) ListOffers(c echo.Context) error {
	offers, err := h.offerUC.ListOffers(c.Request().Context(), c.Param("id"))
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Offers retrieved", offers)
}
