package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/dispatch/internal/pkg/middleware"
	"github.com/piresc/dispatch/internal/pkg/models"
	nrpkg "github.com/piresc/dispatch/internal/pkg/newrelic"
	"github.com/piresc/dispatch/internal/utils"
	"github.com/piresc/dispatch/services/rides"
)

// RideHandler handles HTTP requests for trips
type RideHandler struct {
	rideUC rides.RideUC
}

// NewRideHandler creates a new ride HTTP handler
func NewRideHandler(rideUC rides.RideUC) *RideHandler {
	return &RideHandler{
		rideUC: rideUC,
	}
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

// RequestTrip creates a trip and starts dispatching it
func (h *RideHandler) RequestTrip(c echo.Context) error {
	if txn := nrpkg.FromEchoContext(c); txn != nil {
		txn.SetName("POST /api/trips")
	}

	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.TripRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "invalid request body")
	}

	trip, err := h.rideUC.RequestTrip(c.Request().Context(), actor, req)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusCreated, "Trip requested", trip)
}

// GetTrip returns a trip visible to the caller
func (h *RideHandler) GetTrip(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	trip, err := h.rideUC.GetTrip(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Trip retrieved", trip)
}

// MarkArrived records the driver at the pickup point
func (h *RideHandler) MarkArrived(c echo.Context) error {
	return h.move(c, "Driver arrived", h.rideUC.MarkArrived)
}

// StartTrip records the rider on board
func (h *RideHandler) StartTrip(c echo.Context) error {
	return h.move(c, "Trip started", h.rideUC.StartTrip)
}

// CancelTrip cancels a trip that has not started
func (h *RideHandler) CancelTrip(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req cancelRequest
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&req); err != nil {
			return utils.BadRequestResponse(c, "invalid request body")
		}
	}

	trip, err := h.rideUC.CancelTrip(c.Request().Context(), actor, c.Param("id"), req.Reason)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Trip cancelled", trip)
}

// CompleteTrip completes the trip and settles the fare
func (h *RideHandler) CompleteTrip(c echo.Context) error {
	if txn := nrpkg.FromEchoContext(c); txn != nil {
		txn.SetName("POST /api/trips/:id/complete")
	}

	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	completed, err := h.rideUC.CompleteTrip(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Trip completed", completed)
}

// RedispatchTrip restarts dispatch for a trip nobody took
func (h *RideHandler) RedispatchTrip(c echo.Context) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	if err := h.rideUC.RedispatchTrip(c.Request().Context(), actor, c.Param("id")); err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusAccepted, "Dispatch started", nil)
}

type transitionFunc func(ctx context.Context, actor models.Actor, tripID string) (*models.Trip, error)

func (h *RideHandler) move(c echo.Context, message string, fn transitionFunc) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	trip, err := fn(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, message, trip)
}
