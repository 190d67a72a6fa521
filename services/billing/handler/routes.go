package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/dispatch/internal/pkg/middleware"
	"github.com/piresc/dispatch/internal/pkg/models"
	"github.com/piresc/dispatch/services/billing"
	httpHandler "github.com/piresc/dispatch/services/billing/handler/http"
)

// Handler combines all handlers for the billing service
type Handler struct {
	billingHTTP *httpHandler.BillingHandler
}

// NewHandler creates a new combined handler
func NewHandler(billingUC billing.BillingUC) *Handler {
	return &Handler{
		billingHTTP: httpHandler.NewBillingHandler(billingUC),
	}
}

// RegisterRoutes registers the wallet and settlement routes
func (h *Handler) RegisterRoutes(api *echo.Group) {
	admin := middleware.RequireRole(models.RoleAdmin)

	wallets := api.Group("/wallets")
	wallets.GET("/:user_id", h.billingHTTP.GetWallet)
	wallets.GET("/:user_id/entries", h.billingHTTP.ListEntries)
	wallets.POST("/:user_id/topup", h.billingHTTP.TopUp, admin)

	api.POST("/settlements", h.billingHTTP.Settle, admin)
}
