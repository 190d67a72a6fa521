package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/piresc/dispatch/internal/pkg/logger"
	"github.com/piresc/dispatch/internal/pkg/middleware"
	"github.com/piresc/dispatch/internal/pkg/models"
	nrpkg "github.com/piresc/dispatch/internal/pkg/newrelic"
	"github.com/piresc/dispatch/internal/utils"
	"github.com/piresc/dispatch/services/billing"
)

// BillingHandler handles HTTP requests for wallets and settlements
type BillingHandler struct {
	billingUC billing.BillingUC
}

// NewBillingHandler creates a new billing HTTP handler
func NewBillingHandler(billingUC billing.BillingUC) *BillingHandler {
	return &BillingHandler{
		billingUC: billingUC,
	}
}

// ownerOrAdmin reports whether the caller may read userID's wallet
func ownerOrAdmin(c echo.Context, userID string) bool {
	actor, ok := middleware.ActorFrom(c)
	return ok && (actor.Role == models.RoleAdmin || actor.UserID == userID)
}

// GetWallet returns a wallet balance
func (h *BillingHandler) GetWallet(c echo.Context) error {
	userID := c.Param("user_id")
	if !ownerOrAdmin(c, userID) {
		return utils.ForbiddenResponse(c, "")
	}

	wallet, err := h.billingUC.GetWallet(c.Request().Context(), userID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Wallet retrieved", wallet)
}

// ListEntries returns a user's ledger entries
func (h *BillingHandler) ListEntries(c echo.Context) error {
	userID := c.Param("user_id")
	if !ownerOrAdmin(c, userID) {
		return utils.ForbiddenResponse(c, "")
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		var err error
		if limit, err = strconv.Atoi(raw); err != nil {
			return utils.BadRequestResponse(c, "invalid query parameter: limit")
		}
	}

	entries, err := h.billingUC.ListEntries(c.Request().Context(), userID, limit)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Ledger entries retrieved", entries)
}

type topUpRequest struct {
	Amount float64 `json:"amount"`
}

// TopUp credits a wallet
func (h *BillingHandler) TopUp(c echo.Context) error {
	var req topUpRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "invalid request body")
	}

	wallet, err := h.billingUC.TopUp(c.Request().Context(), c.Param("user_id"), req.Amount)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Wallet topped up", wallet)
}

// Settle moves an amount between two wallets outside of trip completion
func (h *BillingHandler) Settle(c echo.Context) error {
	if txn := nrpkg.FromEchoContext(c); txn != nil {
		txn.SetName("POST /api/settlements")
	}

	var req models.Settlement
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "invalid request body")
	}

	entries, err := h.billingUC.Settle(c.Request().Context(), &req)
	if err != nil {
		logger.WarnCtx(c.Request().Context(), "Settlement failed", logger.Err(err))
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusCreated, "Settlement recorded", entries)
}
