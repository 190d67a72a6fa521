package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/dispatch/internal/pkg/logger"
	"github.com/piresc/dispatch/internal/pkg/middleware"
	"github.com/piresc/dispatch/internal/pkg/models"
	nrpkg "github.com/piresc/dispatch/internal/pkg/newrelic"
	"github.com/piresc/dispatch/internal/utils"
	"github.com/piresc/dispatch/services/location"
)

// LocationHandler handles HTTP requests for the driver roster
type LocationHandler struct {
	locationUC location.LocationUC
}

// NewLocationHandler creates a new location HTTP handler
func NewLocationHandler(locationUC location.LocationUC) *LocationHandler {
	return &LocationHandler{
		locationUC: locationUC,
	}
}

type availabilityRequest struct {
	Availability models.DriverAvailability `json:"availability"`
}

// SetAvailability lets the authenticated driver go ONLINE or OFFLINE
func (h *LocationHandler) SetAvailability(c echo.Context) error {
	if txn := nrpkg.FromEchoContext(c); txn != nil {
		txn.SetName("PUT /api/drivers/me/availability")
	}

	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req availabilityRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "invalid request body")
	}

	if err := h.locationUC.SetDriverAvailability(c.Request().Context(), actor.UserID, req.Availability); err != nil {
		logger.WarnCtx(c.Request().Context(), "Failed to set driver availability",
			logger.DriverID(actor.UserID),
			logger.Err(err))
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Availability updated", req)
}

// GetDriverLocation returns the latest known position of a driver
func (h *LocationHandler) GetDriverLocation(c echo.Context) error {
	driverID := c.Param("id")
	if driverID == "" {
		return utils.BadRequestResponse(c, "driver_id is required")
	}

	record, err := h.locationUC.GetDriverLocation(c.Request().Context(), driverID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Driver location retrieved", record)
}
