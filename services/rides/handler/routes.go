package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/dispatch/internal/pkg/middleware"
	"github.com/piresc/dispatch/internal/pkg/models"
	"github.com/piresc/dispatch/services/rides"
	httpHandler "github.com/piresc/dispatch/services/rides/handler/http"
)

// Handler combines all handlers for the rides service
type Handler struct {
	rideHTTP *httpHandler.RideHandler
}

// NewHandler creates a new combined handler
func NewHandler(rideUC rides.RideUC) *Handler {
	return &Handler{
		rideHTTP: httpHandler.NewRideHandler(rideUC),
	}
}

// RegisterRoutes registers the trip lifecycle routes
func (h *Handler) RegisterRoutes(api *echo.Group) {
	driver := middleware.RequireRole(models.RoleDriver)
	riderOrAdmin := middleware.RequireRole(models.RoleRider, models.RoleAdmin)

	trips := api.Group("/trips")
	trips.POST("", h.rideHTTP.RequestTrip, riderOrAdmin)
	trips.GET("/:id", h.rideHTTP.GetTrip)
	trips.POST("/:id/arrive", h.rideHTTP.MarkArrived, driver)
	trips.POST("/:id/start", h.rideHTTP.StartTrip, driver)
	trips.POST("/:id/complete", h.rideHTTP.CompleteTrip, driver)
	trips.POST("/:id/cancel", h.rideHTTP.CancelTrip, riderOrAdmin)
	trips.POST("/:id/dispatch", h.rideHTTP.RedispatchTrip, riderOrAdmin)
}
