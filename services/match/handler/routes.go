package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/dispatch/internal/pkg/middleware"
	"github.com/piresc/dispatch/internal/pkg/models"
	"github.com/piresc/dispatch/services/match"
	httpHandler "github.com/piresc/dispatch/services/match/handler/http"
)

// Handler combines all handlers for the match service
type Handler struct {
	matchHTTP *httpHandler.MatchHandler
}

// NewHandler creates a new combined handler
func NewHandler(matchUC match.MatchUC) *Handler {
	return &Handler{
		matchHTTP: httpHandler.NewMatchHandler(matchUC),
	}
}

// RegisterRoutes registers the operator endpoints; all of them are admin only
func (h *Handler) RegisterRoutes(api *echo.Group) {
	admin := middleware.RequireRole(models.RoleAdmin)

	api.GET("/match/candidates", h.matchHTTP.FindCandidates, admin)
	api.GET("/drivers/:id/profile", h.matchHTTP.GetDriverProfile, admin)
	api.PUT("/drivers/:id/profile", h.matchHTTP.UpsertDriverProfile, admin)
}
