package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/piresc/dispatch/internal/pkg/logger"
	"github.com/piresc/dispatch/internal/pkg/metrics"
	"github.com/piresc/dispatch/internal/pkg/models"
	"github.com/piresc/dispatch/services/billing"
)

// DefaultEntryLimit caps ledger listings when the caller gives no limit
const DefaultEntryLimit = 50

// BillingUC implements billing.BillingUC
type BillingUC struct {
	repo billing.BillingRepo
}

// NewBillingUC creates a new billing use case
func NewBillingUC(repo billing.BillingRepo) *BillingUC {
	return &BillingUC{repo: repo}
}

// Settle moves amount from rider to driver atomically
func (uc *BillingUC) Settle(ctx context.Context, s *models.Settlement) ([]*models.LedgerEntry, error) {
	if err := ValidateSettlement(s); err != nil {
		return nil, err
	}

	entries, err := uc.repo.Settle(ctx, s)
	switch {
	case errors.Is(err, models.ErrInsufficientBalance):
		metrics.Settlements.WithLabelValues("insufficient_balance").Inc()
		logger.WarnCtx(ctx, "Settlement refused",
			logger.TripID(s.TripID),
			logger.String("rider_id", s.RiderID),
			logger.Float64("amount", s.Amount))
		return nil, err
	case err != nil:
		metrics.Settlements.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to settle: %w", err)
	}

	metrics.Settlements.WithLabelValues("settled").Inc()
	logger.InfoCtx(ctx, "Settlement recorded",
		logger.TripID(s.TripID),
		logger.String("rider_id", s.RiderID),
		logger.DriverID(s.DriverID),
		logger.Float64("amount", s.Amount))
	return entries, nil
}

// ValidateSettlement checks the parties and amount of a settlement
func ValidateSettlement(s *models.Settlement) error {
	if s == nil || s.RiderID == "" || s.DriverID == "" {
		return fmt.Errorf("%w: rider and driver are required", models.ErrInvalidRequest)
	}
	if s.RiderID == s.DriverID {
		return fmt.Errorf("%w: rider and driver must differ", models.ErrInvalidRequest)
	}
	if s.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", models.ErrInvalidRequest)
	}
	return nil
}

// GetWallet returns a user's balance
func (uc *BillingUC) GetWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", models.ErrInvalidRequest)
	}
	return uc.repo.GetWallet(ctx, userID)
}

// TopUp credits a wallet outside of any trip
func (uc *BillingUC) TopUp(ctx context.Context, userID string, amount float64) (*models.Wallet, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", models.ErrInvalidRequest)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", models.ErrInvalidRequest)
	}

	wallet, err := uc.repo.TopUp(ctx, userID, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to top up wallet: %w", err)
	}
	logger.InfoCtx(ctx, "Wallet topped up",
		logger.String("user_id", userID),
		logger.Float64("amount", amount),
		logger.Float64("balance", wallet.Balance))
	return wallet, nil
}

// ListEntries returns up to limit of the user's newest ledger entries
func (uc *BillingUC) ListEntries(ctx context.Context, userID string, limit int) ([]*models.LedgerEntry, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", models.ErrInvalidRequest)
	}
	if limit <= 0 || limit > DefaultEntryLimit {
		limit = DefaultEntryLimit
	}
	return uc.repo.ListEntries(ctx, userID, limit)
}
